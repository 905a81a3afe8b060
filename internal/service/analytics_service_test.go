package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

type fakeAnalyticsRepo struct {
	createdBetween  int64
	resolvedBetween int64
	byStatuses      map[string]int64
	byPriority      int64
	statusCounts    []repository.StatusCount
	priorityCounts  []repository.PriorityCount
	ministryCounts  []repository.MinistryCount
	reporters       []repository.ReporterCount
	totalMinistries int64
	activeMin       int64
}

func (f *fakeAnalyticsRepo) CountCreatedBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return f.createdBetween, nil
}

func (f *fakeAnalyticsRepo) CountResolvedBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return f.resolvedBetween, nil
}

func (f *fakeAnalyticsRepo) CountWithStatusesSince(_ context.Context, _ time.Time, statuses []domain.ComplaintStatus) (int64, error) {
	key := ""
	for _, s := range statuses {
		key += string(s) + ","
	}
	return f.byStatuses[key], nil
}

func (f *fakeAnalyticsRepo) CountWithPrioritySince(_ context.Context, _ time.Time, _ domain.ComplaintPriority) (int64, error) {
	return f.byPriority, nil
}

func (f *fakeAnalyticsRepo) CountByStatusSince(_ context.Context, _ time.Time) ([]repository.StatusCount, error) {
	return f.statusCounts, nil
}

func (f *fakeAnalyticsRepo) CountByPrioritySince(_ context.Context, _ time.Time) ([]repository.PriorityCount, error) {
	return f.priorityCounts, nil
}

func (f *fakeAnalyticsRepo) CountByMinistrySince(_ context.Context, _ time.Time) ([]repository.MinistryCount, error) {
	return f.ministryCounts, nil
}

func (f *fakeAnalyticsRepo) TopReporters(_ context.Context, _ time.Time, _ int) ([]repository.ReporterCount, error) {
	return f.reporters, nil
}

func (f *fakeAnalyticsRepo) CountMinistries(_ context.Context) (int64, int64, error) {
	return f.totalMinistries, f.activeMin, nil
}

func TestBuildReportPercentages(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		createdBetween: 8,
		statusCounts: []repository.StatusCount{
			{Status: domain.StatusSubmitted, Count: 3},
			{Status: domain.StatusInProgress, Count: 3},
			{Status: domain.StatusResolved, Count: 2},
		},
		priorityCounts: []repository.PriorityCount{
			{Priority: domain.PriorityMedium, Count: 6},
			{Priority: domain.PriorityUrgent, Count: 2},
		},
		ministryCounts: []repository.MinistryCount{
			{MinistryID: "m1", MinistryName: "Public Works", Count: 8},
		},
	}
	svc := NewAnalyticsService(repo)

	report, err := svc.BuildReport(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 30, report.TimeRangeDays)

	require.Len(t, report.ByStatus, 3)
	assert.InDelta(t, 37.5, report.ByStatus[0].Percentage, 0.01)
	assert.InDelta(t, 25.0, report.ByStatus[2].Percentage, 0.01)

	var sum float64
	for _, bucket := range report.ByStatus {
		sum += bucket.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.2, "status shares should cover the whole")

	require.Len(t, report.ByMinistry, 1)
	assert.InDelta(t, 100.0, report.ByMinistry[0].Percentage, 0.01)
	assert.Equal(t, "Public Works", report.ByMinistry[0].Label)
}

func TestBuildReportZeroTotal(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		statusCounts: []repository.StatusCount{{Status: domain.StatusSubmitted, Count: 0}},
	}
	svc := NewAnalyticsService(repo)

	report, err := svc.BuildReport(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.Overview.Total)
	for _, bucket := range report.ByStatus {
		assert.Zero(t, bucket.Percentage, "percentages are 0 when nothing was filed")
	}
}

func TestBuildReportDefaultsRange(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{})

	report, err := svc.BuildReport(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, report.TimeRangeDays)
	assert.Len(t, report.Trend, trendMonths)
}

func TestBuildReportTrendMonths(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{createdBetween: 4, resolvedBetween: 2})

	report, err := svc.BuildReport(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, report.Trend, trendMonths)

	thisMonth := time.Now().Format("2006-01")
	assert.Equal(t, thisMonth, report.Trend[trendMonths-1].Month, "series ends at the current month")
	for _, point := range report.Trend {
		assert.Equal(t, int64(4), point.Created)
		assert.Equal(t, int64(2), point.Resolved)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 33.3, Percentage(1, 3))
	assert.Equal(t, 66.7, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(7, 7))
}

func TestTrendPercent(t *testing.T) {
	assert.Equal(t, 0.0, TrendPercent(10, 0))
	assert.Equal(t, 100.0, TrendPercent(20, 10))
	assert.Equal(t, -50.0, TrendPercent(5, 10))
	assert.Equal(t, 0.0, TrendPercent(10, 10))
}

func TestComplaintsDashboard(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		createdBetween: 10,
		byStatuses: map[string]int64{
			"RESOLVED,":                        4,
			"SUBMITTED,UNDER_REVIEW,IN_PROGRESS,": 5,
		},
	}
	svc := NewAnalyticsService(repo)

	dashboard, err := svc.ComplaintsDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), dashboard.Total)
	assert.Equal(t, int64(4), dashboard.Resolved)
	assert.Equal(t, int64(5), dashboard.Pending)
	assert.Equal(t, 0.0, dashboard.TrendPercent, "equal months yield a flat trend")
}

func TestMinistriesDashboard(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totalMinistries: 12,
		activeMin:       9,
		ministryCounts: []repository.MinistryCount{
			{MinistryID: "m1", MinistryName: "Public Works", Count: 40},
		},
	}
	svc := NewAnalyticsService(repo)

	dashboard, err := svc.MinistriesDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), dashboard.Total)
	assert.Equal(t, int64(9), dashboard.Active)
	assert.Equal(t, 30, dashboard.RangeInDays)
	require.Len(t, dashboard.ByMinistry, 1)
}
