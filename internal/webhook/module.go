package webhook

import (
	"lexcrm/internal/events"
	apphttp "lexcrm/internal/http"
	"lexcrm/platform/logger"
)

// Module wires the webhook ingestion pipeline.
type Module struct {
	handler *Handler
}

// NewModule creates the webhook module. The stores are the leads and call
// logs repositories.
func NewModule(leads LeadStore, callLogs CallLogStore, bus events.Bus, log *logger.Logger) *Module {
	service := NewService(leads, callLogs, bus, log)
	return &Module{
		handler: NewHandler(service, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "webhook" }

// RegisterRoutes mounts the webhook route on the unthrottled webhook group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Webhooks.POST("/voice-calls", m.handler.HandleVoiceCallEvent)
}
