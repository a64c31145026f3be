package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective client record, created either manually by staff or
// from the first voice-call webhook event for a given provider call.
type Lead struct {
	ID              int64
	Name            string
	Phone           string
	CaseType        string
	Urgency         Urgency
	Status          Status
	ExternalCallID  *string
	AgentID         *string
	Summary         *string
	Transcript      *string
	AttorneyID      *uuid.UUID
	LastContactedAt *time.Time
	CreatedAt       time.Time
}

// Creation defaults applied when a webhook payload carries no value for a
// field. Updates never re-apply these: an absent field leaves the stored
// column untouched.
const (
	DefaultName     = "AI Lead"
	DefaultCaseType = "General"
	DefaultUrgency  = string(UrgencyMedium)
	DefaultPhone    = "Unknown"
	WebCallPhone    = "Web Call"
)
