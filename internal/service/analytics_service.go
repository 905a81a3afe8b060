package service

import (
	"context"
	"math"
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AnalyticsService computes admin reporting figures from live queries.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics}
}

// Overview aggregates headline counts for a time range.
type Overview struct {
	Total    int64 `json:"total"`
	Resolved int64 `json:"resolved"`
	Pending  int64 `json:"pending"`
	Urgent   int64 `json:"urgent"`
}

// Breakdown is one labelled bucket with its share of the range total.
type Breakdown struct {
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TrendPoint is one month in the rolling trend series.
type TrendPoint struct {
	Month    string `json:"month"`
	Created  int64  `json:"created"`
	Resolved int64  `json:"resolved"`
}

// TopReporter ranks a user by complaints filed in range.
type TopReporter struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Count    int64  `json:"count"`
}

// Report is the full analytics response.
type Report struct {
	TimeRangeDays int           `json:"timeRangeDays"`
	Overview      Overview      `json:"overview"`
	ByStatus      []Breakdown   `json:"complaintsByStatus"`
	ByPriority    []Breakdown   `json:"complaintsByPriority"`
	ByMinistry    []Breakdown   `json:"complaintsByMinistry"`
	Trend         []TrendPoint  `json:"monthlyTrend"`
	TopReporters  []TopReporter `json:"topReporters"`
}

const trendMonths = 6

var pendingStatuses = []domain.ComplaintStatus{
	domain.StatusSubmitted,
	domain.StatusUnderReview,
	domain.StatusInProgress,
}

// BuildReport runs the aggregate queries for the requested day range.
func (s *AnalyticsService) BuildReport(ctx context.Context, timeRangeDays int) (*Report, error) {
	if timeRangeDays <= 0 {
		timeRangeDays = 30
	}
	now := time.Now()
	since := now.AddDate(0, 0, -timeRangeDays)

	report := &Report{TimeRangeDays: timeRangeDays}

	total, err := s.analytics.CountCreatedBetween(ctx, since, now)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	resolved, err := s.analytics.CountWithStatusesSince(ctx, since, []domain.ComplaintStatus{domain.StatusResolved})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	pending, err := s.analytics.CountWithStatusesSince(ctx, since, pendingStatuses)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	urgent, err := s.analytics.CountWithPrioritySince(ctx, since, domain.PriorityUrgent)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	report.Overview = Overview{Total: total, Resolved: resolved, Pending: pending, Urgent: urgent}

	statusCounts, err := s.analytics.CountByStatusSince(ctx, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	report.ByStatus = make([]Breakdown, 0, len(statusCounts))
	for _, bucket := range statusCounts {
		report.ByStatus = append(report.ByStatus, Breakdown{
			Label:      string(bucket.Status),
			Count:      bucket.Count,
			Percentage: Percentage(bucket.Count, total),
		})
	}

	priorityCounts, err := s.analytics.CountByPrioritySince(ctx, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	report.ByPriority = make([]Breakdown, 0, len(priorityCounts))
	for _, bucket := range priorityCounts {
		report.ByPriority = append(report.ByPriority, Breakdown{
			Label:      string(bucket.Priority),
			Count:      bucket.Count,
			Percentage: Percentage(bucket.Count, total),
		})
	}

	ministryCounts, err := s.analytics.CountByMinistrySince(ctx, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	report.ByMinistry = make([]Breakdown, 0, len(ministryCounts))
	for _, bucket := range ministryCounts {
		report.ByMinistry = append(report.ByMinistry, Breakdown{
			Label:      bucket.MinistryName,
			Count:      bucket.Count,
			Percentage: Percentage(bucket.Count, total),
		})
	}

	trend, err := s.monthlyTrend(ctx, now)
	if err != nil {
		return nil, err
	}
	report.Trend = trend

	reporters, err := s.analytics.TopReporters(ctx, since, 10)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	report.TopReporters = make([]TopReporter, 0, len(reporters))
	for _, entry := range reporters {
		report.TopReporters = append(report.TopReporters, TopReporter{
			UserID:   entry.UserID,
			Username: entry.Username,
			Name:     entry.Name,
			Count:    entry.Count,
		})
	}

	return report, nil
}

// DashboardSummary holds month-over-month counts for the admin dashboard.
type DashboardSummary struct {
	Total        int64   `json:"total"`
	ThisMonth    int64   `json:"thisMonth"`
	LastMonth    int64   `json:"lastMonth"`
	TrendPercent float64 `json:"trendPercent"`
	Resolved     int64   `json:"resolved"`
	Pending      int64   `json:"pending"`
}

// ComplaintsDashboard computes the dashboard complaint summary.
func (s *AnalyticsService) ComplaintsDashboard(ctx context.Context) (*DashboardSummary, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	var epoch time.Time

	total, err := s.analytics.CountCreatedBetween(ctx, epoch, now)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	thisMonth, err := s.analytics.CountCreatedBetween(ctx, monthStart, now)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	lastMonth, err := s.analytics.CountCreatedBetween(ctx, lastMonthStart, monthStart)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	resolved, err := s.analytics.CountWithStatusesSince(ctx, epoch, []domain.ComplaintStatus{domain.StatusResolved})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	pending, err := s.analytics.CountWithStatusesSince(ctx, epoch, pendingStatuses)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &DashboardSummary{
		Total:        total,
		ThisMonth:    thisMonth,
		LastMonth:    lastMonth,
		TrendPercent: TrendPercent(thisMonth, lastMonth),
		Resolved:     resolved,
		Pending:      pending,
	}, nil
}

// MinistryDashboard summarizes ministries for the admin dashboard.
type MinistryDashboard struct {
	Total       int64                      `json:"total"`
	Active      int64                      `json:"active"`
	ByMinistry  []repository.MinistryCount `json:"byMinistry"`
	RangeInDays int                        `json:"rangeInDays"`
}

// MinistriesDashboard computes per-ministry complaint load over 30 days.
func (s *AnalyticsService) MinistriesDashboard(ctx context.Context) (*MinistryDashboard, error) {
	total, active, err := s.analytics.CountMinistries(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	const rangeDays = 30
	since := time.Now().AddDate(0, 0, -rangeDays)
	byMinistry, err := s.analytics.CountByMinistrySince(ctx, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &MinistryDashboard{
		Total:       total,
		Active:      active,
		ByMinistry:  byMinistry,
		RangeInDays: rangeDays,
	}, nil
}

func (s *AnalyticsService) monthlyTrend(ctx context.Context, now time.Time) ([]TrendPoint, error) {
	points := make([]TrendPoint, 0, trendMonths)
	currentMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := trendMonths - 1; i >= 0; i-- {
		start := currentMonthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		created, err := s.analytics.CountCreatedBetween(ctx, start, end)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		resolved, err := s.analytics.CountResolvedBetween(ctx, start, end)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		points = append(points, TrendPoint{
			Month:    start.Format("2006-01"),
			Created:  created,
			Resolved: resolved,
		})
	}
	return points, nil
}

// Percentage returns count/total*100 rounded to one decimal, 0 when total is 0.
func Percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// TrendPercent returns the month-over-month delta percentage, 0 when the
// previous month had no complaints.
func TrendPercent(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round(float64(current-previous)/float64(previous)*1000) / 10
}
