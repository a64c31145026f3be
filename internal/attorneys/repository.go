package attorneys

import (
	"context"
	"errors"
	"fmt"

	"lexcrm/platform/apperr"
	"lexcrm/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides attorney persistence backed by Postgres.
type Repository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewRepository creates a new attorney repository.
func NewRepository(pool *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{pool: pool, log: log}
}

func (r *Repository) storageErr(op string, err error) error {
	r.log.DatabaseError(op, err)
	return apperr.Wrap(apperr.KindInternal, "storage operation failed", err).WithOp(op)
}

const attorneyColumns = `id, name, email, phone, city, state, specialties, created_at`

// Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

// ListFilter narrows the attorney directory. Query matches name or email,
// city and state match exactly (case-insensitive), specialty must be one of
// the attorney's specialty tags.
type ListFilter struct {
	Query     string
	City      string
	State     string
	Specialty string
}

// CreateParams are the fields for a new directory entry.
type CreateParams struct {
	Name        string
	Email       string
	Phone       string
	City        string
	State       string
	Specialties []string
}

// List returns attorneys matching the filter, ordered by name.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Attorney, error) {
	query := `
		SELECT ` + attorneyColumns + `
		FROM attorneys
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		AND ($2 = '' OR city ILIKE $2)
		AND ($3 = '' OR state ILIKE $3)
		AND ($4 = '' OR $4 = ANY(specialties))
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, f.Query, f.City, f.State, f.Specialty)
	if err != nil {
		return nil, r.storageErr("attorneys.list", err)
	}
	defer rows.Close()

	attorneys := []Attorney{}
	for rows.Next() {
		a, err := scanAttorney(rows)
		if err != nil {
			return nil, r.storageErr("attorneys.list", err)
		}
		attorneys = append(attorneys, a)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storageErr("attorneys.list", err)
	}

	return attorneys, nil
}

// GetByID returns a single attorney.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Attorney, error) {
	query := `SELECT ` + attorneyColumns + ` FROM attorneys WHERE id = $1`

	a, err := scanAttorney(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Attorney{}, apperr.NotFound("attorney not found")
		}
		return Attorney{}, r.storageErr(fmt.Sprintf("attorneys.get %s", id), err)
	}

	return a, nil
}

// Create inserts a new attorney. The id is generated here rather than by the
// database; specialty order is preserved as entered.
func (r *Repository) Create(ctx context.Context, p CreateParams) (Attorney, error) {
	query := `
		INSERT INTO attorneys (id, name, email, phone, city, state, specialties)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attorneyColumns

	specialties := p.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	a, err := scanAttorney(r.pool.QueryRow(ctx, query,
		uuid.New(), p.Name, p.Email, p.Phone, p.City, p.State, specialties))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Attorney{}, apperr.Conflict("attorney email already registered")
		}
		return Attorney{}, r.storageErr("attorneys.create", err)
	}

	return a, nil
}

func scanAttorney(row pgx.Row) (Attorney, error) {
	var a Attorney
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.City, &a.State, &a.Specialties, &a.CreatedAt)
	return a, err
}
