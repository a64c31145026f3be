package calllogs

import (
	apphttp "lexcrm/internal/http"
	"lexcrm/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the call logs bounded context.
type Module struct {
	repo    *Repository
	handler *Handler
}

// NewModule creates the call logs module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := NewRepository(pool, log)
	return &Module{
		repo:    repo,
		handler: NewHandler(repo),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "calllogs" }

// Repository exposes the repository for modules that upsert call logs.
func (m *Module) Repository() *Repository { return m.repo }

// RegisterRoutes mounts call log routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/call-logs", m.handler.HandleList)
}
