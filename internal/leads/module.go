// Package leads wires the leads bounded context: repository, service and
// HTTP surface for browsing, editing and assigning leads.
package leads

import (
	"lexcrm/internal/events"
	apphttp "lexcrm/internal/http"
	"lexcrm/internal/leads/handler"
	"lexcrm/internal/leads/repository"
	"lexcrm/internal/leads/service"
	"lexcrm/platform/logger"
	"lexcrm/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the leads bounded context.
type Module struct {
	repo    *repository.Repository
	service *service.Service
	handler *handler.Handler
}

// NewModule creates the leads module. The attorney directory and the
// assignment notifier come from their owning modules.
func NewModule(
	pool *pgxpool.Pool,
	directory service.AttorneyDirectory,
	notifier service.AssignmentNotifier,
	bus events.Bus,
	log *logger.Logger,
	val *validator.Validator,
) *Module {
	repo := repository.New(pool, log)
	svc := service.New(repo, directory, notifier, bus, log)
	return &Module{
		repo:    repo,
		service: svc,
		handler: handler.New(svc, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leads" }

// Repository exposes the repository for the webhook upsert pipeline.
func (m *Module) Repository() *repository.Repository { return m.repo }

// RegisterRoutes mounts lead routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/leads", m.handler.HandleList)
	ctx.V1.POST("/leads", m.handler.HandleCreate)
	ctx.V1.GET("/leads/:id", m.handler.HandleGet)
	ctx.V1.PATCH("/leads/:id", m.handler.HandleUpdate)
	ctx.V1.POST("/leads/:id/assign-attorney", m.handler.HandleAssignAttorney)
	ctx.V1.GET("/stats", m.handler.HandleStats)
}
