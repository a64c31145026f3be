package attorneys

import (
	"net/http"
	"time"

	"lexcrm/platform/apperr"
	"lexcrm/platform/httpkit"
	"lexcrm/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles attorney directory HTTP requests.
type Handler struct {
	repo *Repository
	val  *validator.Validator
}

// NewHandler creates a new attorney handler.
func NewHandler(repo *Repository, val *validator.Validator) *Handler {
	return &Handler{repo: repo, val: val}
}

// CreateAttorneyRequest is the request body for adding a directory entry.
type CreateAttorneyRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,max=30"`
	City        string   `json:"city" validate:"max=100"`
	State       string   `json:"state" validate:"max=100"`
	Specialties []string `json:"specialties" validate:"max=20,dive,min=1,max=100"`
}

// AttorneyResponse is the API representation of an attorney.
type AttorneyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Specialties []string  `json:"specialties"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HandleList lists attorneys with optional directory filters.
// GET /api/v1/attorneys?q=&city=&state=&specialty=
func (h *Handler) HandleList(c *gin.Context) {
	filter := ListFilter{
		Query:     c.Query("q"),
		City:      c.Query("city"),
		State:     c.Query("state"),
		Specialty: c.Query("specialty"),
	}

	attorneys, err := h.repo.List(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]AttorneyResponse, len(attorneys))
	for i, a := range attorneys {
		result[i] = ToResponse(a)
	}

	httpkit.OK(c, result)
}

// HandleCreate adds an attorney to the directory.
// POST /api/v1/attorneys
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateAttorneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body").WithDetails(err.Error()))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation("validation error").WithDetails(err.Error()))
		return
	}

	a, err := h.repo.Create(c.Request.Context(), CreateParams{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
		State:       req.State,
		Specialties: req.Specialties,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, ToResponse(a))
}

// ToResponse converts an attorney to its API representation. Exported for
// the assignment flow, which returns the attorney alongside the lead.
func ToResponse(a Attorney) AttorneyResponse {
	return AttorneyResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		City:        a.City,
		State:       a.State,
		Specialties: a.Specialties,
		CreatedAt:   a.CreatedAt,
	}
}
