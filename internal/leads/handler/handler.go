// Package handler exposes the leads module over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"lexcrm/internal/attorneys"
	"lexcrm/internal/leads/repository"
	"lexcrm/internal/leads/service"
	"lexcrm/internal/leads/transport"
	"lexcrm/platform/apperr"
	"lexcrm/platform/httpkit"
	"lexcrm/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles lead HTTP requests.
type Handler struct {
	service *service.Service
	val     *validator.Validator
}

// New creates a new lead handler.
func New(service *service.Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// HandleList lists leads with optional search and status filters.
// GET /api/v1/leads?search=&status=
func (h *Handler) HandleList(c *gin.Context) {
	filter := repository.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	leads, err := h.service.List(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]transport.LeadResponse, len(leads))
	for i, l := range leads {
		result[i] = transport.ToLeadResponse(l)
	}

	httpkit.OK(c, result)
}

// HandleGet fetches one lead by internal id.
// GET /api/v1/leads/:id
func (h *Handler) HandleGet(c *gin.Context) {
	id, ok := h.parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.service.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

// HandleCreate inserts a manually entered lead.
// POST /api/v1/leads
func (h *Handler) HandleCreate(c *gin.Context) {
	var req transport.CreateLeadRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	lead, err := h.service.Create(c.Request.Context(), repository.CreateParams{
		Name:     req.Name,
		Phone:    req.Phone,
		CaseType: req.CaseType,
		Urgency:  req.Urgency,
		Status:   req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, transport.ToLeadResponse(lead))
}

// HandleUpdate applies a partial update to a lead.
// PATCH /api/v1/leads/:id
func (h *Handler) HandleUpdate(c *gin.Context) {
	id, ok := h.parseLeadID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	lead, err := h.service.Update(c.Request.Context(), id, req.ToUpdateParams())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

// HandleAssignAttorney binds an attorney to a lead and notifies them.
// POST /api/v1/leads/:id/assign-attorney
func (h *Handler) HandleAssignAttorney(c *gin.Context) {
	id, ok := h.parseLeadID(c)
	if !ok {
		return
	}

	var req transport.AssignAttorneyRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	lead, attorney, err := h.service.AssignAttorney(c.Request.Context(), id, req.AttorneyID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.AssignmentResponse{
		Lead:     transport.ToLeadResponse(lead),
		Attorney: attorneys.ToResponse(attorney),
	})
}

// HandleStats returns the dashboard aggregates.
// GET /api/v1/stats
func (h *Handler) HandleStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.StatsResponse{
		TotalLeads:             stats.TotalLeads,
		QualifiedLeads:         stats.QualifiedLeads,
		ConvertedLeads:         stats.ConvertedLeads,
		AvgResponseTimeMinutes: stats.AvgResponseTimeMinutes,
	})
}

func (h *Handler) parseLeadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead ID"))
		return 0, false
	}
	return id, true
}

func (h *Handler) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body").WithDetails(err.Error()))
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation("validation error").WithDetails(err.Error()))
		return false
	}
	return true
}
