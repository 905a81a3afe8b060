package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintCommentRepository stores append-only comments.
type ComplaintCommentRepository interface {
	Create(ctx context.Context, comment *domain.ComplaintComment) error
	ListByComplaint(ctx context.Context, complaintID string, includeInternal bool) ([]domain.ComplaintComment, error)
}

type complaintCommentRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintCommentRepository instantiates repository.
func NewComplaintCommentRepository(pool *pgxpool.Pool) ComplaintCommentRepository {
	return &complaintCommentRepository{pool: pool}
}

func (r *complaintCommentRepository) Create(ctx context.Context, comment *domain.ComplaintComment) error {
	const query = `
        INSERT INTO complaint_comments (complaint_id, author_id, content, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.ComplaintID,
		comment.AuthorID,
		comment.Content,
		comment.IsInternal,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *complaintCommentRepository) ListByComplaint(ctx context.Context, complaintID string, includeInternal bool) ([]domain.ComplaintComment, error) {
	query := `
        SELECT id, complaint_id, author_id, content, is_internal, created_at
        FROM complaint_comments WHERE complaint_id=$1`
	if !includeInternal {
		query += ` AND NOT is_internal`
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintComment
	for rows.Next() {
		var comment domain.ComplaintComment
		if err := rows.Scan(
			&comment.ID,
			&comment.ComplaintID,
			&comment.AuthorID,
			&comment.Content,
			&comment.IsInternal,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
