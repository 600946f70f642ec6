package servicerequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
)

const uniqueViolation = "23505"

const columns = `id, user_id, model, type, location, timestamp, created_at`

// Repository implements port/servicerequest.Repository on Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, sr domainsr.ServiceRequest) (domainsr.ServiceRequest, error) {
	query := `
		INSERT INTO service_requests (id, user_id, model, type, location, timestamp, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING ` + columns

	created, err := scanOne(r.pool.QueryRow(ctx, query,
		sr.ID, sr.UserID, sr.Model, sr.Type, sr.Location, sr.Timestamp, sr.CreatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domainsr.ServiceRequest{}, fmt.Errorf("inserting service request %s: %w", sr.ID, domainsr.ErrDuplicateID)
		}
		return domainsr.ServiceRequest{}, fmt.Errorf("inserting service request: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (domainsr.ServiceRequest, error) {
	query := `SELECT ` + columns + ` FROM service_requests WHERE id = $1`

	sr, err := scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainsr.ServiceRequest{}, fmt.Errorf("service request %s: %w", id, domainsr.ErrNotFound)
		}
		return domainsr.ServiceRequest{}, fmt.Errorf("querying service request: %w", err)
	}
	return sr, nil
}

func (r *Repository) List(ctx context.Context, filters domainsr.ListFilters) ([]domainsr.ServiceRequest, error) {
	query := `SELECT ` + columns + ` FROM service_requests WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filters.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filters.UserID)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing service requests: %w", err)
	}
	defer rows.Close()

	out := make([]domainsr.ServiceRequest, 0)
	for rows.Next() {
		sr, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning service request: %w", err)
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service requests: %w", err)
	}
	return out, nil
}

func scanOne(row pgx.Row) (domainsr.ServiceRequest, error) {
	var sr domainsr.ServiceRequest
	err := row.Scan(&sr.ID, &sr.UserID, &sr.Model, &sr.Type, &sr.Location, &sr.Timestamp, &sr.CreatedAt)
	return sr, err
}
