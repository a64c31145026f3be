// Package webhook ingests voice-AI provider call events and turns them into
// lead and call log records.
package webhook

import (
	"context"
	"fmt"

	"lexcrm/internal/calllogs"
	"lexcrm/internal/events"
	"lexcrm/internal/leads/domain"
	leadsrepo "lexcrm/internal/leads/repository"
	"lexcrm/platform/logger"
	"lexcrm/platform/phone"
)

// LeadStore is the lead upsert port, implemented by the leads repository.
type LeadStore interface {
	UpsertForCall(ctx context.Context, p leadsrepo.CallUpsertParams) (domain.Lead, bool, error)
}

// CallLogStore is the call log upsert port, implemented by the call logs
// repository.
type CallLogStore interface {
	UpsertForCall(ctx context.Context, p calllogs.UpsertParams) (calllogs.CallLog, bool, error)
}

// Service orchestrates the webhook pipeline: classify, normalize, derive
// status, upsert the lead, upsert the call log, publish.
type Service struct {
	leads    LeadStore
	callLogs CallLogStore
	bus      events.Bus
	log      *logger.Logger
}

// NewService creates a new webhook service.
func NewService(leads LeadStore, callLogs CallLogStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{leads: leads, callLogs: callLogs, bus: bus, log: log}
}

// ProcessVoiceCallEvent runs one provider delivery through the pipeline.
//
// Irrelevant events and payloads without a call id return nil: they are
// acknowledged no-ops, not failures. Only genuine storage errors propagate.
func (s *Service) ProcessVoiceCallEvent(ctx context.Context, payload map[string]any) error {
	eventType, _ := firstString(
		candidate{payload, "event"},
		candidate{payload, "event_type"},
		candidate{payload, "type"},
	)

	class := Classify(eventType)
	if class == EventIrrelevant {
		s.log.WithContext(ctx).WebhookEvent(eventType, "", "ignored")
		return nil
	}

	call, ok := ExtractCall(payload)
	if !ok {
		s.log.WithContext(ctx).WebhookEvent(eventType, "", "no_call_id")
		return nil
	}

	// Status derivation is gated on analyzed events: a final-only delivery
	// must never reset a status derived from an earlier analysis.
	var status *domain.Status
	if class == EventAnalyzed {
		derived := domain.DeriveStatus(call.Successful, call.Sentiment)
		status = &derived
	}

	lead, leadCreated, err := s.leads.UpsertForCall(ctx, leadParams(call, status))
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}

	callLog, _, err := s.callLogs.UpsertForCall(ctx, callLogParams(call, lead.ID))
	if err != nil {
		return fmt.Errorf("upsert call log: %w", err)
	}

	s.log.WithContext(ctx).WebhookEvent(eventType, call.CallID, "processed")

	s.bus.Publish(ctx, events.CallLeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		CallLogID: callLog.ID,
		CallID:    call.CallID,
		EventType: class.String(),
		LeadName:  lead.Name,
		LeadPhone: lead.Phone,
		CaseType:  lead.CaseType,
		Urgency:   string(lead.Urgency),
		Status:    string(lead.Status),
		NewLead:   leadCreated,
	})

	return nil
}

func leadParams(call CallData, status *domain.Status) leadsrepo.CallUpsertParams {
	phoneDefault := domain.DefaultPhone
	if call.WebCall {
		phoneDefault = domain.WebCallPhone
	}

	return leadsrepo.CallUpsertParams{
		CallID:          call.CallID,
		Name:            call.Name,
		Phone:           normalizedPhone(call.Phone),
		PhoneDefault:    phoneDefault,
		CaseType:        call.CaseType,
		Urgency:         call.Urgency,
		AgentID:         call.AgentID,
		Summary:         call.Summary,
		SummaryOnInsert: call.SummaryOrPlaceholder(),
		Transcript:      call.Transcript,
		Status:          status,
	}
}

func callLogParams(call CallData, leadID int64) calllogs.UpsertParams {
	var sentiment *string
	if call.Sentiment != "" {
		s := call.Sentiment
		sentiment = &s
	}

	return calllogs.UpsertParams{
		CallID:       call.CallID,
		LeadID:       leadID,
		AgentID:      call.AgentID,
		PhoneNumber:  normalizedPhone(call.Phone),
		Status:       call.CallStatus,
		DurationSec:  call.DurationSec,
		RecordingURL: call.RecordingURL,
		Transcript:   call.Transcript,
		Summary:      call.Summary,
		Sentiment:    sentiment,
		Analysis:     call.Analysis,
	}
}

func normalizedPhone(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*raw)
	return &normalized
}
