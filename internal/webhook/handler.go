package webhook

import (
	"net/http"

	"lexcrm/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler handles inbound provider webhook deliveries.
type Handler struct {
	service *Service
	log     *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// VoiceCallResponse is the acknowledgment body for every webhook delivery.
type VoiceCallResponse struct {
	Success bool `json:"success"`
}

// HandleVoiceCallEvent ingests a voice provider call event.
// POST /api/v1/webhook/voice-calls
//
// The response is always HTTP 200. A non-200 would put the provider into a
// redelivery loop that cannot fix a persistent processing failure, so
// failures are logged server-side and reported only via success=false.
func (h *Handler) HandleVoiceCallEvent(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warn("webhook body is not valid JSON", "error", err)
		c.JSON(http.StatusOK, VoiceCallResponse{Success: false})
		return
	}

	if err := h.service.ProcessVoiceCallEvent(c.Request.Context(), payload); err != nil {
		h.log.Error("voice call event processing failed", "error", err)
		c.JSON(http.StatusOK, VoiceCallResponse{Success: false})
		return
	}

	c.JSON(http.StatusOK, VoiceCallResponse{Success: true})
}
