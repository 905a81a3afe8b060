package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// StatusCount is a per-status aggregate bucket.
type StatusCount struct {
	Status domain.ComplaintStatus
	Count  int64
}

// PriorityCount is a per-priority aggregate bucket.
type PriorityCount struct {
	Priority domain.ComplaintPriority
	Count    int64
}

// MinistryCount is a per-ministry aggregate bucket.
type MinistryCount struct {
	MinistryID   string
	MinistryName string
	Count        int64
}

// ReporterCount ranks users by submitted complaints.
type ReporterCount struct {
	UserID   string
	Username string
	Name     string
	Count    int64
}

// AnalyticsRepository runs aggregate queries for the admin surface.
type AnalyticsRepository interface {
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountResolvedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountWithStatusesSince(ctx context.Context, since time.Time, statuses []domain.ComplaintStatus) (int64, error)
	CountWithPrioritySince(ctx context.Context, since time.Time, priority domain.ComplaintPriority) (int64, error)
	CountByStatusSince(ctx context.Context, since time.Time) ([]StatusCount, error)
	CountByPrioritySince(ctx context.Context, since time.Time) ([]PriorityCount, error)
	CountByMinistrySince(ctx context.Context, since time.Time) ([]MinistryCount, error)
	TopReporters(ctx context.Context, since time.Time, limit int) ([]ReporterCount, error)
	CountMinistries(ctx context.Context) (total int64, active int64, err error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository instantiates repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM complaints WHERE created_at >= $1 AND created_at < $2`
	var count int64
	err := r.pool.QueryRow(ctx, query, from, to).Scan(&count)
	return count, err
}

func (r *analyticsRepository) CountResolvedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM complaints WHERE resolved_at IS NOT NULL AND resolved_at >= $1 AND resolved_at < $2`
	var count int64
	err := r.pool.QueryRow(ctx, query, from, to).Scan(&count)
	return count, err
}

func (r *analyticsRepository) CountWithStatusesSince(ctx context.Context, since time.Time, statuses []domain.ComplaintStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM complaints WHERE created_at >= $1 AND status = ANY($2)`
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}
	var count int64
	err := r.pool.QueryRow(ctx, query, since, raw).Scan(&count)
	return count, err
}

func (r *analyticsRepository) CountWithPrioritySince(ctx context.Context, since time.Time, priority domain.ComplaintPriority) (int64, error) {
	const query = `SELECT COUNT(*) FROM complaints WHERE created_at >= $1 AND priority = $2`
	var count int64
	err := r.pool.QueryRow(ctx, query, since, priority).Scan(&count)
	return count, err
}

func (r *analyticsRepository) CountByStatusSince(ctx context.Context, since time.Time) ([]StatusCount, error) {
	const query = `
        SELECT status, COUNT(*) FROM complaints
        WHERE created_at >= $1 GROUP BY status ORDER BY COUNT(*) DESC`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var bucket StatusCount
		if err := rows.Scan(&bucket.Status, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

func (r *analyticsRepository) CountByPrioritySince(ctx context.Context, since time.Time) ([]PriorityCount, error) {
	const query = `
        SELECT priority, COUNT(*) FROM complaints
        WHERE created_at >= $1 GROUP BY priority ORDER BY COUNT(*) DESC`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PriorityCount
	for rows.Next() {
		var bucket PriorityCount
		if err := rows.Scan(&bucket.Priority, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

func (r *analyticsRepository) CountByMinistrySince(ctx context.Context, since time.Time) ([]MinistryCount, error) {
	const query = `
        SELECT m.id, m.name, COUNT(c.id)
        FROM complaints c JOIN ministries m ON m.id = c.ministry_id
        WHERE c.created_at >= $1
        GROUP BY m.id, m.name ORDER BY COUNT(c.id) DESC`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MinistryCount
	for rows.Next() {
		var bucket MinistryCount
		if err := rows.Scan(&bucket.MinistryID, &bucket.MinistryName, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

func (r *analyticsRepository) TopReporters(ctx context.Context, since time.Time, limit int) ([]ReporterCount, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT u.id, u.username, u.name, COUNT(c.id)
        FROM complaints c JOIN users u ON u.id = c.user_id
        WHERE c.created_at >= $1
        GROUP BY u.id, u.username, u.name
        ORDER BY COUNT(c.id) DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ReporterCount
	for rows.Next() {
		var entry ReporterCount
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.Name, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *analyticsRepository) CountMinistries(ctx context.Context) (int64, int64, error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM ministries`
	var total, active int64
	err := r.pool.QueryRow(ctx, query).Scan(&total, &active)
	return total, active, err
}
