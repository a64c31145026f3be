package webhook

import (
	"context"
	"errors"
	"sync"
	"testing"

	"lexcrm/internal/calllogs"
	"lexcrm/internal/events"
	"lexcrm/internal/leads/domain"
	leadsrepo "lexcrm/internal/leads/repository"
	"lexcrm/platform/logger"
)

// fakeLeadStore mirrors the repository's upsert semantics in memory:
// creation defaults apply on insert only, updates coalesce field by field.
type fakeLeadStore struct {
	leads  map[string]*domain.Lead
	nextID int64
	err    error
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: make(map[string]*domain.Lead)}
}

func (f *fakeLeadStore) UpsertForCall(_ context.Context, p leadsrepo.CallUpsertParams) (domain.Lead, bool, error) {
	if f.err != nil {
		return domain.Lead{}, false, f.err
	}

	if lead, ok := f.leads[p.CallID]; ok {
		lead.Name = override(lead.Name, p.Name)
		lead.Phone = override(lead.Phone, p.Phone)
		lead.CaseType = override(lead.CaseType, p.CaseType)
		lead.Urgency = domain.Urgency(override(string(lead.Urgency), p.Urgency))
		if p.Status != nil {
			lead.Status = *p.Status
		}
		if p.AgentID != nil {
			lead.AgentID = p.AgentID
		}
		if p.Summary != nil {
			lead.Summary = p.Summary
		} else if lead.Summary == nil && p.Transcript != nil {
			placeholder := SummaryPlaceholder
			lead.Summary = &placeholder
		}
		if p.Transcript != nil {
			lead.Transcript = p.Transcript
		}
		return *lead, false, nil
	}

	f.nextID++
	callID := p.CallID
	lead := &domain.Lead{
		ID:             f.nextID,
		Name:           valueOr(p.Name, domain.DefaultName),
		Phone:          valueOr(p.Phone, p.PhoneDefault),
		CaseType:       valueOr(p.CaseType, domain.DefaultCaseType),
		Urgency:        domain.Urgency(valueOr(p.Urgency, domain.DefaultUrgency)),
		Status:         domain.StatusNew,
		ExternalCallID: &callID,
		AgentID:        p.AgentID,
		Summary:        p.SummaryOnInsert,
		Transcript:     p.Transcript,
	}
	if p.Status != nil {
		lead.Status = *p.Status
	}
	f.leads[p.CallID] = lead
	return *lead, true, nil
}

type fakeCallLogStore struct {
	logs   map[string]*calllogs.CallLog
	nextID int64
	err    error
}

func newFakeCallLogStore() *fakeCallLogStore {
	return &fakeCallLogStore{logs: make(map[string]*calllogs.CallLog)}
}

func (f *fakeCallLogStore) UpsertForCall(_ context.Context, p calllogs.UpsertParams) (calllogs.CallLog, bool, error) {
	if f.err != nil {
		return calllogs.CallLog{}, false, f.err
	}

	if log, ok := f.logs[p.CallID]; ok {
		// lead_id is write-once and deliberately not touched here
		log.Status = p.Status
		if p.DurationSec != nil {
			log.DurationSec = *p.DurationSec
		}
		if p.Transcript != nil {
			log.Transcript = p.Transcript
		}
		if p.Summary != nil {
			log.Summary = p.Summary
		}
		if p.Sentiment != nil {
			log.Sentiment = p.Sentiment
		}
		if p.RecordingURL != nil {
			log.RecordingURL = p.RecordingURL
		}
		if p.Analysis != nil {
			log.Analysis = p.Analysis
		}
		return *log, false, nil
	}

	f.nextID++
	log := &calllogs.CallLog{
		ID:             f.nextID,
		LeadID:         p.LeadID,
		ExternalCallID: p.CallID,
		AgentID:        p.AgentID,
		PhoneNumber:    p.PhoneNumber,
		Status:         p.Status,
		Direction:      "inbound",
		Transcript:     p.Transcript,
		Summary:        p.Summary,
		Sentiment:      p.Sentiment,
		RecordingURL:   p.RecordingURL,
		Analysis:       p.Analysis,
	}
	if p.DurationSec != nil {
		log.DurationSec = *p.DurationSec
	}
	f.logs[p.CallID] = log
	return *log, true, nil
}

func override(current string, v *string) string {
	if v != nil {
		return *v
	}
	return current
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

// recordingBus captures published events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newTestService() (*Service, *fakeLeadStore, *fakeCallLogStore, *recordingBus) {
	leads := newFakeLeadStore()
	logs := newFakeCallLogStore()
	bus := &recordingBus{}
	svc := NewService(leads, logs, bus, logger.New("test"))
	return svc, leads, logs, bus
}

const scenarioAPayload = `{
	"event": "call_analyzed",
	"call_id": "abc",
	"from_number": "+15551234",
	"call_analysis": {
		"call_successful": true,
		"custom_analysis_data": {"name": "Ana", "case_type": "Divorce", "urgency": "High"}
	}
}`

func TestProcessAnalyzedEventCreatesLeadAndCallLog(t *testing.T) {
	svc, leads, logs, bus := newTestService()

	if err := svc.ProcessVoiceCallEvent(context.Background(), parsePayload(t, scenarioAPayload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lead, ok := leads.leads["abc"]
	if !ok {
		t.Fatal("expected a lead keyed by call id abc")
	}
	if lead.Status != domain.StatusConverted {
		t.Errorf("Status = %q, want Converted", lead.Status)
	}
	if lead.Name != "Ana" || lead.CaseType != "Divorce" || string(lead.Urgency) != "High" {
		t.Errorf("unexpected lead fields: %+v", lead)
	}
	if lead.Phone != "+15551234" {
		t.Errorf("Phone = %q, want +15551234", lead.Phone)
	}

	log, ok := logs.logs["abc"]
	if !ok {
		t.Fatal("expected a call log keyed by call id abc")
	}
	if log.LeadID != lead.ID {
		t.Errorf("call log LeadID = %d, want %d", log.LeadID, lead.ID)
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.events))
	}
	captured, ok := bus.events[0].(events.CallLeadCaptured)
	if !ok {
		t.Fatalf("unexpected event type %T", bus.events[0])
	}
	if !captured.NewLead || captured.LeadID != lead.ID {
		t.Errorf("unexpected event payload: %+v", captured)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	svc, leads, logs, _ := newTestService()
	payload := parsePayload(t, scenarioAPayload)

	if err := svc.ProcessVoiceCallEvent(context.Background(), payload); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	first := *leads.leads["abc"]

	if err := svc.ProcessVoiceCallEvent(context.Background(), parsePayload(t, scenarioAPayload)); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	if len(leads.leads) != 1 {
		t.Errorf("expected exactly one lead, got %d", len(leads.leads))
	}
	if len(logs.logs) != 1 {
		t.Errorf("expected exactly one call log, got %d", len(logs.logs))
	}
	if second := *leads.leads["abc"]; second != first {
		t.Errorf("repeated delivery changed the lead: %+v vs %+v", first, second)
	}
}

func TestFinalEventAfterAnalyzedKeepsStatus(t *testing.T) {
	svc, leads, logs, _ := newTestService()

	if err := svc.ProcessVoiceCallEvent(context.Background(), parsePayload(t, scenarioAPayload)); err != nil {
		t.Fatalf("analyzed delivery: %v", err)
	}

	finalPayload := parsePayload(t, `{"event": "call_ended", "call_id": "abc", "duration_ms": 42000}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), finalPayload); err != nil {
		t.Fatalf("final delivery: %v", err)
	}

	if got := leads.leads["abc"].Status; got != domain.StatusConverted {
		t.Errorf("final event reset status to %q, want Converted", got)
	}
	if got := logs.logs["abc"].DurationSec; got != 42 {
		t.Errorf("DurationSec = %d, want 42", got)
	}
}

func TestAnalyzedEventAfterFinalDerivesStatus(t *testing.T) {
	svc, leads, _, _ := newTestService()

	finalPayload := parsePayload(t, `{"event": "call_ended", "call_id": "abc", "duration_ms": 42000}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), finalPayload); err != nil {
		t.Fatalf("final delivery: %v", err)
	}
	if got := leads.leads["abc"].Status; got != domain.StatusNew {
		t.Errorf("final-only event derived status %q, want New", got)
	}

	if err := svc.ProcessVoiceCallEvent(context.Background(), parsePayload(t, scenarioAPayload)); err != nil {
		t.Fatalf("analyzed delivery: %v", err)
	}
	if got := leads.leads["abc"].Status; got != domain.StatusConverted {
		t.Errorf("late analyzed event did not apply status, got %q", got)
	}
	if len(leads.leads) != 1 {
		t.Errorf("expected one lead, got %d", len(leads.leads))
	}
}

func TestUnknownEventIsNoOp(t *testing.T) {
	svc, leads, logs, bus := newTestService()

	payload := parsePayload(t, `{"event": "call_started", "call_id": "abc"}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(leads.leads) != 0 || len(logs.logs) != 0 {
		t.Error("irrelevant event must produce no side effects")
	}
	if len(bus.events) != 0 {
		t.Error("irrelevant event must publish nothing")
	}
}

func TestMissingCallIDIsNoOp(t *testing.T) {
	svc, leads, _, _ := newTestService()

	payload := parsePayload(t, `{"event": "call_ended", "from_number": "+15551234"}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads.leads) != 0 {
		t.Error("payload without a call id must produce no lead")
	}
}

func TestDifferentCallIDsNeverMerge(t *testing.T) {
	svc, leads, _, _ := newTestService()

	a := parsePayload(t, `{"event": "call_ended", "call_id": "call-a", "from_number": "+15551234"}`)
	b := parsePayload(t, `{"event": "call_ended", "call_id": "call-b", "from_number": "+15551234"}`)

	if err := svc.ProcessVoiceCallEvent(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if err := svc.ProcessVoiceCallEvent(context.Background(), b); err != nil {
		t.Fatal(err)
	}

	if len(leads.leads) != 2 {
		t.Errorf("expected two distinct leads, got %d", len(leads.leads))
	}
}

func TestFinalOnlyEventAppliesDefaults(t *testing.T) {
	svc, leads, _, _ := newTestService()

	payload := parsePayload(t, `{"event": "call_completed", "call_id": "xyz"}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), payload); err != nil {
		t.Fatal(err)
	}

	lead := leads.leads["xyz"]
	if lead.Name != domain.DefaultName {
		t.Errorf("Name = %q, want %q", lead.Name, domain.DefaultName)
	}
	if lead.Phone != domain.DefaultPhone {
		t.Errorf("Phone = %q, want %q", lead.Phone, domain.DefaultPhone)
	}
	if lead.CaseType != domain.DefaultCaseType {
		t.Errorf("CaseType = %q, want %q", lead.CaseType, domain.DefaultCaseType)
	}
	if lead.Status != domain.StatusNew {
		t.Errorf("Status = %q, want New", lead.Status)
	}
}

func TestWebCallPhonePlaceholder(t *testing.T) {
	svc, leads, _, _ := newTestService()

	payload := parsePayload(t, `{"event": "call_ended", "call_id": "web1", "call": {"call_type": "web_call"}}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), payload); err != nil {
		t.Fatal(err)
	}

	if got := leads.leads["web1"].Phone; got != domain.WebCallPhone {
		t.Errorf("Phone = %q, want %q", got, domain.WebCallPhone)
	}
}

func TestLateTranscriptFillsSummaryPlaceholder(t *testing.T) {
	svc, leads, _, _ := newTestService()

	bare := parsePayload(t, `{"event": "call_ended", "call_id": "abc"}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), bare); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if got := leads.leads["abc"].Summary; got != nil {
		t.Fatalf("expected no summary before a transcript arrives, got %q", *got)
	}

	withTranscript := parsePayload(t, `{"event": "call_ended", "call_id": "abc", "transcript": "agent: hello"}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), withTranscript); err != nil {
		t.Fatalf("transcript delivery: %v", err)
	}
	if got := leads.leads["abc"].Summary; got == nil || *got != SummaryPlaceholder {
		t.Errorf("Summary = %v, want the transcript placeholder", got)
	}

	analyzed := parsePayload(t, `{"event": "call_analyzed", "call_id": "abc", "call_analysis": {"call_summary": "Caller needs a divorce attorney"}}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), analyzed); err != nil {
		t.Fatalf("analyzed delivery: %v", err)
	}
	if got := leads.leads["abc"].Summary; got == nil || *got != "Caller needs a divorce attorney" {
		t.Errorf("Summary = %v, want the analysis summary to replace the placeholder", got)
	}
}

func TestStorageFailurePropagates(t *testing.T) {
	svc, leads, _, _ := newTestService()
	leads.err = errors.New("connection refused")

	payload := parsePayload(t, `{"event": "call_ended", "call_id": "abc"}`)
	if err := svc.ProcessVoiceCallEvent(context.Background(), payload); err == nil {
		t.Fatal("expected a storage error to propagate")
	}
}
