package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintUpdateRepository stores append-only audit rows.
type ComplaintUpdateRepository interface {
	Create(ctx context.Context, update *domain.ComplaintUpdate) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.ComplaintUpdate, error)
}

type complaintUpdateRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintUpdateRepository instantiates repository.
func NewComplaintUpdateRepository(pool *pgxpool.Pool) ComplaintUpdateRepository {
	return &complaintUpdateRepository{pool: pool}
}

func (r *complaintUpdateRepository) Create(ctx context.Context, update *domain.ComplaintUpdate) error {
	const query = `
        INSERT INTO complaint_updates (complaint_id, status, message, updated_by_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		update.ComplaintID,
		update.Status,
		update.Message,
		update.UpdatedByID,
	).Scan(&update.ID, &update.CreatedAt)
}

func (r *complaintUpdateRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.ComplaintUpdate, error) {
	const query = `
        SELECT id, complaint_id, status, message, updated_by_id, created_at
        FROM complaint_updates WHERE complaint_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintUpdate
	for rows.Next() {
		var update domain.ComplaintUpdate
		if err := rows.Scan(
			&update.ID,
			&update.ComplaintID,
			&update.Status,
			&update.Message,
			&update.UpdatedByID,
			&update.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, update)
	}
	return result, rows.Err()
}
