// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"lexcrm/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Webhook Domain Events
// =============================================================================

// CallLeadCaptured is published when the voice-call webhook creates or
// updates a lead from a provider event.
type CallLeadCaptured struct {
	BaseEvent
	LeadID     int64  `json:"leadId"`
	CallLogID  int64  `json:"callLogId"`
	CallID     string `json:"callId"`
	EventType  string `json:"eventType"`
	LeadName   string `json:"leadName"`
	LeadPhone  string `json:"leadPhone"`
	CaseType   string `json:"caseType"`
	Urgency    string `json:"urgency"`
	Status     string `json:"status"`
	NewLead    bool   `json:"newLead"`
}

func (e CallLeadCaptured) EventName() string { return "webhook.call.lead_captured" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadStatusChanged is published when a user manually updates a lead's status.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    int64  `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// AttorneyAssigned is published when an attorney is bound to a lead.
type AttorneyAssigned struct {
	BaseEvent
	LeadID        int64     `json:"leadId"`
	AttorneyID    uuid.UUID `json:"attorneyId"`
	AttorneyName  string    `json:"attorneyName"`
	AttorneyEmail string    `json:"attorneyEmail"`
}

func (e AttorneyAssigned) EventName() string { return "leads.attorney.assigned" }
