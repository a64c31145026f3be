package calllogs

import (
	"time"

	"lexcrm/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles call log HTTP requests.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new call log handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CallLogResponse is the API representation of a call log, including the
// owning lead's display fields.
type CallLogResponse struct {
	ID             int64          `json:"id"`
	LeadID         int64          `json:"leadId"`
	ExternalCallID string         `json:"externalCallId"`
	AgentID        *string        `json:"agentId,omitempty"`
	PhoneNumber    *string        `json:"phoneNumber,omitempty"`
	Status         string         `json:"status"`
	Direction      string         `json:"direction"`
	Duration       int            `json:"duration"`
	RecordingURL   *string        `json:"recordingUrl,omitempty"`
	Transcript     *string        `json:"transcript,omitempty"`
	Summary        *string        `json:"summary,omitempty"`
	Sentiment      *string        `json:"sentiment,omitempty"`
	Analysis       map[string]any `json:"analysis,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	LeadName       string         `json:"leadName"`
	LeadCaseType   string         `json:"leadCaseType"`
}

// HandleList lists all call logs with their lead context.
// GET /api/v1/call-logs
func (h *Handler) HandleList(c *gin.Context) {
	entries, err := h.repo.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]CallLogResponse, len(entries))
	for i, e := range entries {
		result[i] = toCallLogResponse(e)
	}

	httpkit.OK(c, result)
}

func toCallLogResponse(e ListEntry) CallLogResponse {
	return CallLogResponse{
		ID:             e.ID,
		LeadID:         e.LeadID,
		ExternalCallID: e.ExternalCallID,
		AgentID:        e.AgentID,
		PhoneNumber:    e.PhoneNumber,
		Status:         e.Status,
		Direction:      e.Direction,
		Duration:       e.DurationSec,
		RecordingURL:   e.RecordingURL,
		Transcript:     e.Transcript,
		Summary:        e.Summary,
		Sentiment:      e.Sentiment,
		Analysis:       e.Analysis,
		CreatedAt:      e.CreatedAt,
		LeadName:       e.LeadName,
		LeadCaseType:   e.LeadCaseType,
	}
}
