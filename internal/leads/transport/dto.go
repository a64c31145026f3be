// Package transport defines the leads module's API request and response types.
package transport

import (
	"time"

	"lexcrm/internal/attorneys"
	"lexcrm/internal/leads/domain"
	"lexcrm/internal/leads/repository"

	"github.com/google/uuid"
)

// CreateLeadRequest is the body for manual lead entry.
type CreateLeadRequest struct {
	Name     string `json:"name" validate:"max=200"`
	Phone    string `json:"phone" validate:"required,max=30"`
	CaseType string `json:"caseType" validate:"max=100"`
	Urgency  string `json:"urgency" validate:"omitempty,oneof=Low Medium High Critical"`
	Status   string `json:"status" validate:"omitempty,oneof=New Contacted Qualified Converted Disqualified"`
}

// UpdateLeadRequest is the body for a partial lead update. Absent fields are
// left untouched; present fields must pass validation.
type UpdateLeadRequest struct {
	Name            *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Phone           *string    `json:"phone" validate:"omitempty,min=1,max=30"`
	CaseType        *string    `json:"caseType" validate:"omitempty,min=1,max=100"`
	Urgency         *string    `json:"urgency" validate:"omitempty,oneof=Low Medium High Critical"`
	Status          *string    `json:"status" validate:"omitempty,oneof=New Contacted Qualified Converted Disqualified"`
	Summary         *string    `json:"summary"`
	Transcript      *string    `json:"transcript"`
	LastContactedAt *time.Time `json:"lastContactedAt"`
}

// ToUpdateParams converts the request to repository update params.
func (r UpdateLeadRequest) ToUpdateParams() repository.UpdateParams {
	return repository.UpdateParams{
		Name:            r.Name,
		Phone:           r.Phone,
		CaseType:        r.CaseType,
		Urgency:         r.Urgency,
		Status:          r.Status,
		Summary:         r.Summary,
		Transcript:      r.Transcript,
		LastContactedAt: r.LastContactedAt,
	}
}

// AssignAttorneyRequest is the body for binding an attorney to a lead.
type AssignAttorneyRequest struct {
	AttorneyID string `json:"attorneyId" validate:"required"`
}

// LeadResponse is the API representation of a lead.
type LeadResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	CaseType        string     `json:"caseType"`
	Urgency         string     `json:"urgency"`
	Status          string     `json:"status"`
	ExternalCallID  *string    `json:"externalCallId,omitempty"`
	AgentID         *string    `json:"agentId,omitempty"`
	Summary         *string    `json:"summary,omitempty"`
	Transcript      *string    `json:"transcript,omitempty"`
	AttorneyID      *uuid.UUID `json:"attorneyId,omitempty"`
	LastContactedAt *time.Time `json:"lastContactedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ToLeadResponse converts a domain lead to its API representation.
func ToLeadResponse(l domain.Lead) LeadResponse {
	return LeadResponse{
		ID:              l.ID,
		Name:            l.Name,
		Phone:           l.Phone,
		CaseType:        l.CaseType,
		Urgency:         string(l.Urgency),
		Status:          string(l.Status),
		ExternalCallID:  l.ExternalCallID,
		AgentID:         l.AgentID,
		Summary:         l.Summary,
		Transcript:      l.Transcript,
		AttorneyID:      l.AttorneyID,
		LastContactedAt: l.LastContactedAt,
		CreatedAt:       l.CreatedAt,
	}
}

// AssignmentResponse is returned by the assign-attorney operation.
type AssignmentResponse struct {
	Lead     LeadResponse               `json:"lead"`
	Attorney attorneys.AttorneyResponse `json:"attorney"`
}

// StatsResponse is the dashboard aggregate payload.
type StatsResponse struct {
	TotalLeads             int `json:"totalLeads"`
	QualifiedLeads         int `json:"qualifiedLeads"`
	ConvertedLeads         int `json:"convertedLeads"`
	AvgResponseTimeMinutes int `json:"avgResponseTimeMinutes"`
}
