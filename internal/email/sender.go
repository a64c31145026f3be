// Package email renders and delivers outbound notification emails.
package email

import (
	"context"

	"lexcrm/platform/config"
	"lexcrm/platform/logger"
)

// Sender delivers notification emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	// SendAttorneyAssignmentEmail notifies an attorney of a newly assigned case.
	SendAttorneyAssignmentEmail(ctx context.Context, toEmail string, data AssignmentData) error
	// SendLeadCapturedEmail notifies the intake inbox of a lead captured by
	// the voice agent.
	SendLeadCapturedEmail(ctx context.Context, toEmail string, data LeadCapturedData) error
}

// AssignmentData carries the fields rendered into the assignment email.
type AssignmentData struct {
	AttorneyName string
	LeadName     string
	LeadPhone    string
	CaseType     string
	Urgency      string
}

// LeadCapturedData carries the fields rendered into the intake notification.
type LeadCapturedData struct {
	LeadName  string
	LeadPhone string
	CaseType  string
	Urgency   string
	Status    string
	NewLead   bool
}

// NewSender builds the configured sender: SMTP when email is enabled,
// otherwise a log-only sender so development environments work without an
// SMTP server.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		return &LogSender{log: log}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(), cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
	)
}

// LogSender logs emails instead of delivering them.
type LogSender struct {
	log *logger.Logger
}

func (s *LogSender) SendAttorneyAssignmentEmail(_ context.Context, toEmail string, data AssignmentData) error {
	s.log.Info("email disabled, skipping attorney assignment email",
		"to", toEmail, "attorney", data.AttorneyName, "lead", data.LeadName)
	return nil
}

func (s *LogSender) SendLeadCapturedEmail(_ context.Context, toEmail string, data LeadCapturedData) error {
	s.log.Info("email disabled, skipping lead captured email",
		"to", toEmail, "lead", data.LeadName, "status", data.Status)
	return nil
}
