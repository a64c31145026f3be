package calllogs

import (
	"context"
	"encoding/json"
	"fmt"

	"lexcrm/platform/apperr"
	"lexcrm/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides call log persistence backed by Postgres.
type Repository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewRepository creates a new call log repository.
func NewRepository(pool *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{pool: pool, log: log}
}

func (r *Repository) storageErr(op string, err error) error {
	r.log.DatabaseError(op, err)
	return apperr.Wrap(apperr.KindInternal, "storage operation failed", err).WithOp(op)
}

const callLogColumns = `id, lead_id, external_call_id, agent_id, phone_number, status, direction,
	duration_sec, recording_url, transcript, summary, sentiment, analysis, created_at`

// UpsertForCall creates or updates the call log for the given external call
// id. The second return value reports whether a new row was created.
//
// The lead binding is write-once: on conflict the existing lead_id is kept,
// so a call can never retroactively move to a different lead. All other
// fields update additively; an absent field keeps the stored value.
func (r *Repository) UpsertForCall(ctx context.Context, p UpsertParams) (CallLog, bool, error) {
	analysisJSON, err := marshalAnalysis(p.Analysis)
	if err != nil {
		return CallLog{}, false, fmt.Errorf("marshal analysis: %w", err)
	}

	query := `
		INSERT INTO call_logs (
			external_call_id, lead_id, agent_id, phone_number, status,
			duration_sec, recording_url, transcript, summary, sentiment, analysis
		) VALUES ($1, $2, $3, $4, $5, COALESCE($6, 0), $7, $8, $9, $10, $11)
		ON CONFLICT (external_call_id) DO UPDATE SET
			agent_id      = COALESCE($3, call_logs.agent_id),
			phone_number  = COALESCE($4, call_logs.phone_number),
			status        = $5,
			duration_sec  = COALESCE($6, call_logs.duration_sec),
			recording_url = COALESCE($7, call_logs.recording_url),
			transcript    = COALESCE($8, call_logs.transcript),
			summary       = COALESCE($9, call_logs.summary),
			sentiment     = COALESCE($10, call_logs.sentiment),
			analysis      = COALESCE($11, call_logs.analysis)
		RETURNING ` + callLogColumns + `, (xmax = 0) AS created`

	var (
		log     CallLog
		created bool
		rawJSON []byte
	)
	err = r.pool.QueryRow(ctx, query,
		p.CallID, p.LeadID, p.AgentID, p.PhoneNumber, p.Status,
		p.DurationSec, p.RecordingURL, p.Transcript, p.Summary, p.Sentiment, analysisJSON,
	).Scan(
		&log.ID, &log.LeadID, &log.ExternalCallID, &log.AgentID, &log.PhoneNumber,
		&log.Status, &log.Direction, &log.DurationSec, &log.RecordingURL,
		&log.Transcript, &log.Summary, &log.Sentiment, &rawJSON, &log.CreatedAt,
		&created,
	)
	if err != nil {
		return CallLog{}, false, r.storageErr("call_logs.upsert_for_call", err)
	}
	log.Analysis = unmarshalAnalysis(rawJSON)

	return log, created, nil
}

// List returns all call logs joined with their lead's display fields,
// newest first.
func (r *Repository) List(ctx context.Context) ([]ListEntry, error) {
	query := `
		SELECT cl.id, cl.lead_id, cl.external_call_id, cl.agent_id, cl.phone_number,
			cl.status, cl.direction, cl.duration_sec, cl.recording_url,
			cl.transcript, cl.summary, cl.sentiment, cl.analysis, cl.created_at,
			l.name, l.case_type
		FROM call_logs cl
		JOIN leads l ON l.id = cl.lead_id
		ORDER BY cl.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, r.storageErr("call_logs.list", err)
	}
	defer rows.Close()

	entries := []ListEntry{}
	for rows.Next() {
		var (
			e       ListEntry
			rawJSON []byte
		)
		err := rows.Scan(
			&e.ID, &e.LeadID, &e.ExternalCallID, &e.AgentID, &e.PhoneNumber,
			&e.Status, &e.Direction, &e.DurationSec, &e.RecordingURL,
			&e.Transcript, &e.Summary, &e.Sentiment, &rawJSON, &e.CreatedAt,
			&e.LeadName, &e.LeadCaseType,
		)
		if err != nil {
			return nil, r.storageErr("call_logs.list", err)
		}
		e.Analysis = unmarshalAnalysis(rawJSON)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storageErr("call_logs.list", err)
	}

	return entries, nil
}

func marshalAnalysis(analysis map[string]any) ([]byte, error) {
	if len(analysis) == 0 {
		return nil, nil
	}
	return json.Marshal(analysis)
}

func unmarshalAnalysis(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var analysis map[string]any
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil
	}
	return analysis
}
