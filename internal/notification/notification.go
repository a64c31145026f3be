// Package notification reacts to domain events with outbound email. It is a
// pure subscriber module: no HTTP surface, no storage of its own.
package notification

import (
	"context"

	"lexcrm/internal/email"
	"lexcrm/internal/events"
	"lexcrm/platform/config"
	"lexcrm/platform/logger"
)

// Service sends event-driven notifications.
type Service struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates the notification service.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Service {
	return &Service{sender: sender, cfg: cfg, log: log}
}

// Register subscribes the service to the events it reacts to.
func (s *Service) Register(bus events.Bus) {
	bus.Subscribe(events.CallLeadCaptured{}.EventName(), events.HandlerFunc(s.handleCallLeadCaptured))
}

// handleCallLeadCaptured mails the intake inbox about a webhook-captured
// lead. Delivery is best effort: the webhook pipeline has already
// acknowledged the provider by the time this runs.
func (s *Service) handleCallLeadCaptured(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.CallLeadCaptured)
	if !ok {
		return nil
	}

	inbox := s.cfg.GetIntakeInboxAddress()
	if inbox == "" {
		return nil
	}

	err := s.sender.SendLeadCapturedEmail(ctx, inbox, email.LeadCapturedData{
		LeadName:  evt.LeadName,
		LeadPhone: evt.LeadPhone,
		CaseType:  evt.CaseType,
		Urgency:   evt.Urgency,
		Status:    evt.Status,
		NewLead:   evt.NewLead,
	})
	if err != nil {
		s.log.MailError("lead_captured", inbox, err)
		return err
	}

	return nil
}
