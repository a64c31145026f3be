// Package repository provides lead persistence backed by Postgres.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexcrm/internal/leads/domain"
	"lexcrm/platform/apperr"
	"lexcrm/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides lead data access.
type Repository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{pool: pool, log: log}
}

// storageErr logs the underlying database error and returns a typed internal
// error so the HTTP layer answers 500 without leaking driver details.
func (r *Repository) storageErr(op string, err error) error {
	r.log.DatabaseError(op, err)
	return apperr.Wrap(apperr.KindInternal, "storage operation failed", err).WithOp(op)
}

const leadColumns = `id, name, phone, case_type, urgency, status, external_call_id,
	agent_id, summary, transcript, attorney_id, last_contacted_at, created_at`

// ListFilter narrows the lead list. Search is a case-insensitive substring
// match over name, phone and case type. Status "" and "All" mean no filter.
type ListFilter struct {
	Search string
	Status string
}

// CreateParams are the fields for a manually entered lead.
type CreateParams struct {
	Name     string
	Phone    string
	CaseType string
	Urgency  string
	Status   string
}

// UpdateParams are the mutable lead fields for a partial update.
// Nil fields are left untouched.
type UpdateParams struct {
	Name            *string
	Phone           *string
	CaseType        *string
	Urgency         *string
	Status          *string
	Summary         *string
	Transcript      *string
	LastContactedAt *time.Time
}

// CallUpsertParams carries the normalized webhook fields for the idempotent
// lead upsert keyed by external call id. Nil fields are absent from the
// delivery and never overwrite stored values. SummaryOnInsert may carry a
// placeholder derived from the transcript; it applies on creation, and on
// update the placeholder only fills a still-empty summary when this delivery
// brings a transcript, so it can never clobber a real summary.
type CallUpsertParams struct {
	CallID          string
	Name            *string
	Phone           *string
	PhoneDefault    string
	CaseType        *string
	Urgency         *string
	AgentID         *string
	Summary         *string
	SummaryOnInsert *string
	Transcript      *string
	Status          *domain.Status
}

// Stats are the dashboard aggregates.
type Stats struct {
	TotalLeads             int
	QualifiedLeads         int
	ConvertedLeads         int
	AvgResponseTimeMinutes int
}

// List returns leads matching the filter, newest first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]domain.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE ($1 = ''
			OR name ILIKE '%' || $1 || '%'
			OR phone LIKE '%' || $1 || '%'
			OR case_type ILIKE '%' || $1 || '%')
		AND ($2 = '' OR $2 = 'All' OR status = $2)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, f.Search, f.Status)
	if err != nil {
		return nil, r.storageErr("leads.list", err)
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, r.storageErr("leads.list", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storageErr("leads.list", err)
	}

	return leads, nil
}

// GetByID returns a single lead by internal id.
func (r *Repository) GetByID(ctx context.Context, id int64) (domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, r.storageErr(fmt.Sprintf("leads.get %d", id), err)
	}

	return lead, nil
}

// Create inserts a manually entered lead.
func (r *Repository) Create(ctx context.Context, p CreateParams) (domain.Lead, error) {
	query := `
		INSERT INTO leads (name, phone, case_type, urgency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, p.Name, p.Phone, p.CaseType, p.Urgency, p.Status))
	if err != nil {
		return domain.Lead{}, r.storageErr("leads.create", err)
	}

	return lead, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (r *Repository) Update(ctx context.Context, id int64, p UpdateParams) (domain.Lead, error) {
	query := `
		UPDATE leads SET
			name              = COALESCE($2, name),
			phone             = COALESCE($3, phone),
			case_type         = COALESCE($4, case_type),
			urgency           = COALESCE($5, urgency),
			status            = COALESCE($6, status),
			summary           = COALESCE($7, summary),
			transcript        = COALESCE($8, transcript),
			last_contacted_at = COALESCE($9, last_contacted_at)
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id,
		p.Name, p.Phone, p.CaseType, p.Urgency, p.Status, p.Summary, p.Transcript, p.LastContactedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, r.storageErr(fmt.Sprintf("leads.update %d", id), err)
	}

	return lead, nil
}

// UpsertForCall creates or updates the lead owning the given external call
// id. The second return value reports whether a new lead was created.
//
// The unique index on external_call_id is the concurrency mechanism: two
// simultaneous deliveries for the same call race through the same statement
// and converge on one row instead of duplicating. Creation defaults live in
// the VALUES list only, so a later delivery never resets a populated field
// back to a default.
func (r *Repository) UpsertForCall(ctx context.Context, p CallUpsertParams) (domain.Lead, bool, error) {
	query := `
		INSERT INTO leads (external_call_id, name, phone, case_type, urgency, status, agent_id, summary, transcript)
		VALUES ($1,
			COALESCE($2, 'AI Lead'),
			COALESCE($3, $4),
			COALESCE($5, 'General'),
			COALESCE($6, 'Medium'),
			COALESCE($7, 'New'),
			$8, $10, $11)
		ON CONFLICT (external_call_id) DO UPDATE SET
			name       = COALESCE($2, leads.name),
			phone      = COALESCE($3, leads.phone),
			case_type  = COALESCE($5, leads.case_type),
			urgency    = COALESCE($6, leads.urgency),
			status     = COALESCE($7, leads.status),
			agent_id   = COALESCE($8, leads.agent_id),
			summary    = COALESCE($9, leads.summary,
				CASE WHEN $11::text IS NOT NULL THEN 'Call completed - transcript available' END),
			transcript = COALESCE($11, leads.transcript)
		RETURNING ` + leadColumns + `, (xmax = 0) AS created`

	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}

	var (
		lead    domain.Lead
		created bool
	)
	err := r.pool.QueryRow(ctx, query,
		p.CallID, p.Name, p.Phone, p.PhoneDefault, p.CaseType, p.Urgency, status,
		p.AgentID, p.Summary, p.SummaryOnInsert, p.Transcript,
	).Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.CaseType, &lead.Urgency, &lead.Status,
		&lead.ExternalCallID, &lead.AgentID, &lead.Summary, &lead.Transcript,
		&lead.AttorneyID, &lead.LastContactedAt, &lead.CreatedAt,
		&created,
	)
	if err != nil {
		return domain.Lead{}, false, r.storageErr("leads.upsert_for_call", err)
	}

	return lead, created, nil
}

// AssignAttorney binds an attorney to a lead.
func (r *Repository) AssignAttorney(ctx context.Context, leadID int64, attorneyID uuid.UUID) (domain.Lead, error) {
	query := `UPDATE leads SET attorney_id = $2 WHERE id = $1 RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, leadID, attorneyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, r.storageErr(fmt.Sprintf("leads.assign_attorney %d", leadID), err)
	}

	return lead, nil
}

// GetStats returns the dashboard aggregates in a single query. The response
// time is the average gap between creation and first contact, in minutes.
func (r *Repository) GetStats(ctx context.Context) (Stats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Qualified'),
			COUNT(*) FILTER (WHERE status = 'Converted'),
			COALESCE(ROUND(AVG(EXTRACT(EPOCH FROM (last_contacted_at - created_at)) / 60)
				FILTER (WHERE last_contacted_at IS NOT NULL))::int, 0)
		FROM leads`

	var s Stats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalLeads, &s.QualifiedLeads, &s.ConvertedLeads, &s.AvgResponseTimeMinutes)
	if err != nil {
		return Stats{}, r.storageErr("leads.stats", err)
	}

	return s, nil
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.CaseType, &lead.Urgency, &lead.Status,
		&lead.ExternalCallID, &lead.AgentID, &lead.Summary, &lead.Transcript,
		&lead.AttorneyID, &lead.LastContactedAt, &lead.CreatedAt,
	)
	return lead, err
}
