package attorneys

import (
	apphttp "lexcrm/internal/http"
	"lexcrm/platform/logger"
	"lexcrm/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the attorney directory bounded context.
type Module struct {
	repo    *Repository
	handler *Handler
}

// NewModule creates the attorneys module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := NewRepository(pool, log)
	return &Module{
		repo:    repo,
		handler: NewHandler(repo, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "attorneys" }

// Repository exposes the repository for the assignment flow.
func (m *Module) Repository() *Repository { return m.repo }

// RegisterRoutes mounts attorney directory routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/attorneys", m.handler.HandleList)
	ctx.V1.POST("/attorneys", m.handler.HandleCreate)
}
