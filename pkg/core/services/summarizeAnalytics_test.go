package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// mockAnalyticsStore implements SummarizeAnalyticsStore for testing
type mockAnalyticsStore struct {
	caregivers  []model.Caregiver
	assignments []model.Assignment
}

func (m *mockAnalyticsStore) GetCaregivers(ctx context.Context) ([]model.Caregiver, error) {
	return m.caregivers, nil
}

func (m *mockAnalyticsStore) GetAssignments(ctx context.Context, from, to string) ([]model.Assignment, error) {
	return m.assignments, nil
}

func TestSummarizeAnalytics(t *testing.T) {
	store := &mockAnalyticsStore{
		caregivers: []model.Caregiver{
			{
				ID: "cg-1",
				Availability: model.AvailabilityProfile{
					GeneralRules: []model.GeneralRule{
						{
							// 2026-09-07 is a Monday
							DaysOfWeek: []time.Weekday{time.Monday},
							StartTime:  "08:00",
							EndTime:    "16:00",
						},
					},
				},
			},
		},
		assignments: []model.Assignment{
			{ID: "a1", CaregiverID: "cg-1", Date: "2026-09-07", StartTime: "08:00", EndTime: "12:00", DurationHours: 4, Status: model.AssignmentConfirmed},
		},
	}

	report, err := SummarizeAnalytics(context.Background(), store, zap.NewNop(), "2026-09-07", "2026-09-07")
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalAssignments)
	assert.Equal(t, 240, report.WorkedMinutes)
	assert.Equal(t, 480, report.AvailableMinutes)
	assert.InDelta(t, 0.5, report.UtilizationRate, 1e-9)
	assert.Equal(t, 0.0, report.ConflictRate)
}

func TestSummarizeAnalyticsInvertedRange(t *testing.T) {
	_, err := SummarizeAnalytics(context.Background(), &mockAnalyticsStore{}, zap.NewNop(), "2026-09-30", "2026-09-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before from date")
}

func TestSummarizeAnalyticsBadDate(t *testing.T) {
	_, err := SummarizeAnalytics(context.Background(), &mockAnalyticsStore{}, zap.NewNop(), "09/01/2026", "2026-09-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from date")
}
