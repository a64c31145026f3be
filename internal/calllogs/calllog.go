// Package calllogs records individual provider calls and links them to leads.
package calllogs

import "time"

// CallLog is one recorded provider call. Exactly one row exists per external
// call id; repeated webhook deliveries update the same row.
type CallLog struct {
	ID             int64
	LeadID         int64
	ExternalCallID string
	AgentID        *string
	PhoneNumber    *string
	Status         string
	Direction      string
	DurationSec    int
	RecordingURL   *string
	Transcript     *string
	Summary        *string
	Sentiment      *string
	Analysis       map[string]any
	CreatedAt      time.Time
}

// ListEntry is a call log joined with its lead's display fields. Lead name
// and case type are never copied onto the log; they come from the join.
type ListEntry struct {
	CallLog
	LeadName     string
	LeadCaseType string
}

// UpsertParams carries the normalized call fields for the idempotent upsert.
// Pointer fields mean "absent from this delivery": an absent field never
// overwrites a value stored by an earlier delivery for the same call.
type UpsertParams struct {
	CallID       string
	LeadID       int64
	AgentID      *string
	PhoneNumber  *string
	Status       string
	DurationSec  *int
	RecordingURL *string
	Transcript   *string
	Summary      *string
	Sentiment    *string
	Analysis     map[string]any
}
