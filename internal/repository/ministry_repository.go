package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// MinistryRepository encapsulates ministry persistence.
type MinistryRepository interface {
	Create(ctx context.Context, ministry *domain.Ministry) error
	Update(ctx context.Context, ministry *domain.Ministry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Ministry, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Ministry, error)
}

type ministryRepository struct {
	pool *pgxpool.Pool
}

// NewMinistryRepository instantiates repository.
func NewMinistryRepository(pool *pgxpool.Pool) MinistryRepository {
	return &ministryRepository{pool: pool}
}

func (r *ministryRepository) Create(ctx context.Context, ministry *domain.Ministry) error {
	const query = `
        INSERT INTO ministries (name, description, icon, color, is_active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ministry.Name,
		ministry.Description,
		ministry.Icon,
		ministry.Color,
		ministry.IsActive,
	).Scan(&ministry.ID, &ministry.CreatedAt, &ministry.UpdatedAt)
}

func (r *ministryRepository) Update(ctx context.Context, ministry *domain.Ministry) error {
	const query = `
        UPDATE ministries SET name=$1, description=$2, icon=$3, color=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		ministry.Name,
		ministry.Description,
		ministry.Icon,
		ministry.Color,
		ministry.IsActive,
		ministry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ministryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ministries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ministryRepository) GetByID(ctx context.Context, id string) (*domain.Ministry, error) {
	const query = `
        SELECT id, name, description, icon, color, is_active, created_at, updated_at
        FROM ministries WHERE id=$1`
	var ministry domain.Ministry
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ministry.ID,
		&ministry.Name,
		&ministry.Description,
		&ministry.Icon,
		&ministry.Color,
		&ministry.IsActive,
		&ministry.CreatedAt,
		&ministry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ministry, nil
}

func (r *ministryRepository) List(ctx context.Context, activeOnly bool) ([]domain.Ministry, error) {
	query := `SELECT id, name, description, icon, color, is_active, created_at, updated_at
              FROM ministries`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ministry
	for rows.Next() {
		var ministry domain.Ministry
		if err := rows.Scan(
			&ministry.ID,
			&ministry.Name,
			&ministry.Description,
			&ministry.Icon,
			&ministry.Color,
			&ministry.IsActive,
			&ministry.CreatedAt,
			&ministry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ministry)
	}
	return result, rows.Err()
}
