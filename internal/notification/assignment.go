package notification

import (
	"context"

	"lexcrm/internal/attorneys"
	"lexcrm/internal/email"
	"lexcrm/internal/leads/domain"
)

// AssignmentNotifier adapts the email sender to the lead assignment flow.
// Unlike the event-driven notifications, this one is synchronous: the
// assignment operation reports the mailer's outcome to the caller.
type AssignmentNotifier struct {
	sender email.Sender
}

// NewAssignmentNotifier creates the adapter.
func NewAssignmentNotifier(sender email.Sender) *AssignmentNotifier {
	return &AssignmentNotifier{sender: sender}
}

// SendAttorneyAssignment mails the attorney about their new case.
func (n *AssignmentNotifier) SendAttorneyAssignment(ctx context.Context, attorney attorneys.Attorney, lead domain.Lead) error {
	return n.sender.SendAttorneyAssignmentEmail(ctx, attorney.Email, email.AssignmentData{
		AttorneyName: attorney.Name,
		LeadName:     lead.Name,
		LeadPhone:    lead.Phone,
		CaseType:     lead.CaseType,
		Urgency:      string(lead.Urgency),
	})
}
