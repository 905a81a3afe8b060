package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintFilter captures listing query parameters.
type ComplaintFilter struct {
	MinistryID   *string
	UserID       *string
	AssignedToID *string
	Statuses     []domain.ComplaintStatus
	Priorities   []domain.ComplaintPriority
	SearchTerm   *string
	Limit        int
	Offset       int
}

// ComplaintListItem is one listing row: the complaint joined with its
// reporter, ministry, most recent audit entry and activity counts.
type ComplaintListItem struct {
	Complaint    domain.Complaint
	Reporter     domain.User
	Ministry     domain.Ministry
	LatestUpdate *domain.ComplaintUpdate
	UpdateCount  int64
	CommentCount int64
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	// CreateWithAttachments inserts the complaint, its attachments and the
	// initial audit row in a single transaction.
	CreateWithAttachments(ctx context.Context, complaint *domain.Complaint, attachments []domain.ComplaintAttachment, initial *domain.ComplaintUpdate) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	GetByNumber(ctx context.Context, number string) (*domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]ComplaintListItem, error)
	CountWithFilter(ctx context.Context, filter ComplaintFilter) (int64, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, complaint_number, title, description, location, latitude, longitude,
               priority, status, user_id, ministry_id, assigned_to_id, resolved_at, created_at, updated_at`

// IsUniqueViolation reports whether err is a Postgres unique constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *complaintRepository) CreateWithAttachments(ctx context.Context, complaint *domain.Complaint, attachments []domain.ComplaintAttachment, initial *domain.ComplaintUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertComplaint = `
        INSERT INTO complaints (complaint_number, title, description, location, latitude, longitude,
            priority, status, user_id, ministry_id, assigned_to_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertComplaint,
		complaint.ComplaintNumber,
		complaint.Title,
		complaint.Description,
		complaint.Location,
		complaint.Latitude,
		complaint.Longitude,
		complaint.Priority,
		complaint.Status,
		complaint.UserID,
		complaint.MinistryID,
		complaint.AssignedToID,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt); err != nil {
		return err
	}

	const insertAttachment = `
        INSERT INTO complaint_attachments (complaint_id, file_name, file_url, file_type, file_size, mime_type)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	for i := range attachments {
		attachments[i].ComplaintID = complaint.ID
		if err := tx.QueryRow(ctx, insertAttachment,
			attachments[i].ComplaintID,
			attachments[i].FileName,
			attachments[i].FileURL,
			attachments[i].FileType,
			attachments[i].FileSize,
			attachments[i].MimeType,
		).Scan(&attachments[i].ID, &attachments[i].CreatedAt); err != nil {
			return err
		}
	}

	if initial != nil {
		initial.ComplaintID = complaint.ID
		const insertUpdate = `
            INSERT INTO complaint_updates (complaint_id, status, message, updated_by_id)
            VALUES ($1,$2,$3,$4)
            RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertUpdate,
			initial.ComplaintID,
			initial.Status,
			initial.Message,
			initial.UpdatedByID,
		).Scan(&initial.ID, &initial.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET title=$1, description=$2, location=$3, latitude=$4, longitude=$5,
            priority=$6, status=$7, ministry_id=$8, assigned_to_id=$9, resolved_at=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.Location,
		complaint.Latitude,
		complaint.Longitude,
		complaint.Priority,
		complaint.Status,
		complaint.MinistryID,
		complaint.AssignedToID,
		complaint.ResolvedAt,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	return r.fetchSingle(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id=$1`, id)
}

func (r *complaintRepository) GetByNumber(ctx context.Context, number string) (*domain.Complaint, error) {
	return r.fetchSingle(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE complaint_number=$1`, number)
}

func (r *complaintRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&complaint.ID,
		&complaint.ComplaintNumber,
		&complaint.Title,
		&complaint.Description,
		&complaint.Location,
		&complaint.Latitude,
		&complaint.Longitude,
		&complaint.Priority,
		&complaint.Status,
		&complaint.UserID,
		&complaint.MinistryID,
		&complaint.AssignedToID,
		&complaint.ResolvedAt,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func buildFilterClauses(filter ComplaintFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.MinistryID != nil {
		args = append(args, *filter.MinistryID)
		clauses = append(clauses, fmt.Sprintf("c.ministry_id=$%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("c.user_id=$%d", len(args)))
	}
	if filter.AssignedToID != nil {
		args = append(args, *filter.AssignedToID)
		clauses = append(clauses, fmt.Sprintf("c.assigned_to_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("c.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("c.priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(c.title) LIKE %s OR LOWER(c.description) LIKE %s OR LOWER(c.complaint_number) LIKE %s)", placeholder, placeholder, placeholder))
	}

	return clauses, args
}

const complaintListColumns = `c.id, c.complaint_number, c.title, c.description, c.location, c.latitude, c.longitude,
               c.priority, c.status, c.user_id, c.ministry_id, c.assigned_to_id, c.resolved_at, c.created_at, c.updated_at,
               u.username, u.name, u.photo_url,
               m.name, m.icon, m.color, m.is_active,
               lu.id, lu.status, lu.message, lu.updated_by_id, lu.created_at,
               (SELECT COUNT(*) FROM complaint_updates cu WHERE cu.complaint_id=c.id),
               (SELECT COUNT(*) FROM complaint_comments cc WHERE cc.complaint_id=c.id)`

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]ComplaintListItem, error) {
	clauses, args := buildFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM complaints c
        JOIN users u ON u.id=c.user_id
        JOIN ministries m ON m.id=c.ministry_id
        LEFT JOIN LATERAL (
            SELECT id, status, message, updated_by_id, created_at
            FROM complaint_updates
            WHERE complaint_id=c.id
            ORDER BY created_at DESC
            LIMIT 1
        ) lu ON TRUE
        WHERE %s ORDER BY c.created_at DESC LIMIT %d OFFSET %d`,
		complaintListColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaintListItems(rows)
}

func (r *complaintRepository) CountWithFilter(ctx context.Context, filter ComplaintFilter) (int64, error) {
	clauses, args := buildFilterClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM complaints c WHERE %s`, strings.Join(clauses, " AND "))

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanComplaintListItems(rows pgx.Rows) ([]ComplaintListItem, error) {
	var result []ComplaintListItem
	for rows.Next() {
		var item ComplaintListItem
		var (
			updateID    *string
			updateState *domain.ComplaintStatus
			updateMsg   *string
			updateBy    *string
			updateAt    *time.Time
		)
		if err := rows.Scan(
			&item.Complaint.ID,
			&item.Complaint.ComplaintNumber,
			&item.Complaint.Title,
			&item.Complaint.Description,
			&item.Complaint.Location,
			&item.Complaint.Latitude,
			&item.Complaint.Longitude,
			&item.Complaint.Priority,
			&item.Complaint.Status,
			&item.Complaint.UserID,
			&item.Complaint.MinistryID,
			&item.Complaint.AssignedToID,
			&item.Complaint.ResolvedAt,
			&item.Complaint.CreatedAt,
			&item.Complaint.UpdatedAt,
			&item.Reporter.Username,
			&item.Reporter.Name,
			&item.Reporter.PhotoURL,
			&item.Ministry.Name,
			&item.Ministry.Icon,
			&item.Ministry.Color,
			&item.Ministry.IsActive,
			&updateID,
			&updateState,
			&updateMsg,
			&updateBy,
			&updateAt,
			&item.UpdateCount,
			&item.CommentCount,
		); err != nil {
			return nil, err
		}
		item.Reporter.ID = item.Complaint.UserID
		item.Ministry.ID = item.Complaint.MinistryID
		if updateID != nil {
			item.LatestUpdate = &domain.ComplaintUpdate{
				ID:          *updateID,
				ComplaintID: item.Complaint.ID,
				Status:      *updateState,
				Message:     *updateMsg,
				UpdatedByID: *updateBy,
				CreatedAt:   *updateAt,
			}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
