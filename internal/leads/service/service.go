// Package service implements lead management use cases.
package service

import (
	"context"
	"strings"

	"lexcrm/internal/attorneys"
	"lexcrm/internal/events"
	"lexcrm/internal/leads/domain"
	"lexcrm/internal/leads/repository"
	"lexcrm/platform/apperr"
	"lexcrm/platform/logger"

	"github.com/google/uuid"
)

// LeadStore is the persistence port for leads. *repository.Repository is the
// production implementation; tests substitute an in-memory fake.
type LeadStore interface {
	List(ctx context.Context, f repository.ListFilter) ([]domain.Lead, error)
	GetByID(ctx context.Context, id int64) (domain.Lead, error)
	Create(ctx context.Context, p repository.CreateParams) (domain.Lead, error)
	Update(ctx context.Context, id int64, p repository.UpdateParams) (domain.Lead, error)
	AssignAttorney(ctx context.Context, leadID int64, attorneyID uuid.UUID) (domain.Lead, error)
	GetStats(ctx context.Context) (repository.Stats, error)
}

// AttorneyDirectory resolves attorney ids during assignment.
type AttorneyDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (attorneys.Attorney, error)
}

// AssignmentNotifier delivers the assignment email. The service treats it as
// an opaque succeeds-or-fails call; it never retries or queues.
type AssignmentNotifier interface {
	SendAttorneyAssignment(ctx context.Context, attorney attorneys.Attorney, lead domain.Lead) error
}

// Service implements lead management use cases.
type Service struct {
	repo      LeadStore
	directory AttorneyDirectory
	notifier  AssignmentNotifier
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new lead service.
func New(repo LeadStore, directory AttorneyDirectory, notifier AssignmentNotifier, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		bus:       bus,
		log:       log,
	}
}

// List returns leads matching the filter.
func (s *Service) List(ctx context.Context, f repository.ListFilter) ([]domain.Lead, error) {
	if f.Status != "" && f.Status != "All" && !domain.IsValidStatus(f.Status) {
		return nil, apperr.Validation("unknown status filter: " + f.Status)
	}
	return s.repo.List(ctx, f)
}

// Get returns a single lead by internal id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a manually entered lead, applying the same creation
// defaults the webhook path uses for absent fields.
func (s *Service) Create(ctx context.Context, p repository.CreateParams) (domain.Lead, error) {
	if strings.TrimSpace(p.Phone) == "" {
		return domain.Lead{}, apperr.Validation("phone is required")
	}
	if p.Name == "" {
		p.Name = "Unknown Lead"
	}
	if p.CaseType == "" {
		p.CaseType = domain.DefaultCaseType
	}
	if p.Urgency == "" {
		p.Urgency = domain.DefaultUrgency
	} else if !domain.IsValidUrgency(p.Urgency) {
		return domain.Lead{}, apperr.Validation("unknown urgency: " + p.Urgency)
	}
	if p.Status == "" {
		p.Status = string(domain.StatusNew)
	} else if !domain.IsValidStatus(p.Status) {
		return domain.Lead{}, apperr.Validation("unknown status: " + p.Status)
	}

	return s.repo.Create(ctx, p)
}

// Update applies a partial update to a lead and publishes a status change
// event when the status moved.
func (s *Service) Update(ctx context.Context, id int64, p repository.UpdateParams) (domain.Lead, error) {
	if p.Status != nil && !domain.IsValidStatus(*p.Status) {
		return domain.Lead{}, apperr.Validation("unknown status: " + *p.Status)
	}
	if p.Urgency != nil && !domain.IsValidUrgency(*p.Urgency) {
		return domain.Lead{}, apperr.Validation("unknown urgency: " + *p.Urgency)
	}

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	lead, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return domain.Lead{}, err
	}

	if p.Status != nil && before.Status != lead.Status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			OldStatus: string(before.Status),
			NewStatus: string(lead.Status),
		})
	}

	return lead, nil
}

// AssignAttorney binds an attorney to a lead and notifies the attorney.
//
// The lead write commits before the email is attempted: a mailer failure
// surfaces as this operation's error even though the assignment is already
// stored. Callers see the failure; the data is not rolled back.
func (s *Service) AssignAttorney(ctx context.Context, leadID int64, attorneyID string) (domain.Lead, attorneys.Attorney, error) {
	if leadID <= 0 {
		return domain.Lead{}, attorneys.Attorney{}, apperr.Validation("leadId is required")
	}
	if strings.TrimSpace(attorneyID) == "" {
		return domain.Lead{}, attorneys.Attorney{}, apperr.Validation("attorneyId is required")
	}
	id, err := uuid.Parse(attorneyID)
	if err != nil {
		return domain.Lead{}, attorneys.Attorney{}, apperr.Validation("attorneyId is not a valid id")
	}

	attorney, err := s.directory.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, attorneys.Attorney{}, err
	}

	lead, err := s.repo.AssignAttorney(ctx, leadID, id)
	if err != nil {
		return domain.Lead{}, attorneys.Attorney{}, err
	}

	if err := s.notifier.SendAttorneyAssignment(ctx, attorney, lead); err != nil {
		s.log.WithContext(ctx).MailError("attorney_assignment", attorney.Email, err)
		return domain.Lead{}, attorneys.Attorney{}, apperr.Wrap(apperr.KindInternal,
			"attorney assigned but notification email failed", err)
	}

	s.bus.Publish(ctx, events.AttorneyAssigned{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		AttorneyID:    attorney.ID,
		AttorneyName:  attorney.Name,
		AttorneyEmail: attorney.Email,
	})

	return lead, attorney, nil
}

// GetStats returns the dashboard aggregates.
func (s *Service) GetStats(ctx context.Context) (repository.Stats, error) {
	return s.repo.GetStats(ctx)
}
