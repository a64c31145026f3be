package notification

import (
	"context"
	"testing"

	"lexcrm/internal/email"
	"lexcrm/internal/events"
	"lexcrm/platform/logger"
)

type fakeSender struct {
	captured []email.LeadCapturedData
}

func (f *fakeSender) SendAttorneyAssignmentEmail(context.Context, string, email.AssignmentData) error {
	return nil
}

func (f *fakeSender) SendLeadCapturedEmail(_ context.Context, _ string, data email.LeadCapturedData) error {
	f.captured = append(f.captured, data)
	return nil
}

type testConfig struct {
	inbox string
}

func (c testConfig) GetAppBaseURL() string         { return "http://localhost:5173" }
func (c testConfig) GetIntakeInboxAddress() string { return c.inbox }

func capturedEvent() events.CallLeadCaptured {
	return events.CallLeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    1,
		CallID:    "abc",
		LeadName:  "Ana",
		LeadPhone: "+15551234",
		CaseType:  "Divorce",
		Urgency:   "High",
		Status:    "Converted",
		NewLead:   true,
	}
}

func TestLeadCapturedSendsIntakeEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, testConfig{inbox: "intake@example.com"}, logger.New("test"))

	if err := svc.handleCallLeadCaptured(context.Background(), capturedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.captured) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.captured))
	}
	if sender.captured[0].LeadName != "Ana" || !sender.captured[0].NewLead {
		t.Errorf("unexpected email data: %+v", sender.captured[0])
	}
}

func TestLeadCapturedSkipsWithoutInbox(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, testConfig{}, logger.New("test"))

	if err := svc.handleCallLeadCaptured(context.Background(), capturedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.captured) != 0 {
		t.Error("no email should be sent without a configured inbox")
	}
}
