package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AttachmentRepository stores file metadata for complaints.
type AttachmentRepository interface {
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.ComplaintAttachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository instantiates repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.ComplaintAttachment, error) {
	const query = `
        SELECT id, complaint_id, file_name, file_url, file_type, file_size, mime_type, created_at
        FROM complaint_attachments WHERE complaint_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintAttachment
	for rows.Next() {
		var att domain.ComplaintAttachment
		if err := rows.Scan(
			&att.ID,
			&att.ComplaintID,
			&att.FileName,
			&att.FileURL,
			&att.FileType,
			&att.FileSize,
			&att.MimeType,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
