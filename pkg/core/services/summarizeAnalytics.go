package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/pkg/core/analytics"
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// SummarizeAnalyticsStore defines the database operations needed for analytics
type SummarizeAnalyticsStore interface {
	GetCaregivers(ctx context.Context) ([]model.Caregiver, error)
	GetAssignments(ctx context.Context, from, to string) ([]model.Assignment, error)
}

// SummarizeAnalytics builds a utilization and travel efficiency report
// over historical assignments in [from, to]
func SummarizeAnalytics(
	ctx context.Context,
	database SummarizeAnalyticsStore,
	logger *zap.Logger,
	from, to string,
) (*analytics.Report, error) {
	logger.Debug("Starting analytics summary",
		zap.String("from", from),
		zap.String("to", to))

	fromDate, err := timewindow.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	toDate, err := timewindow.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("to date %s is before from date %s", to, from)
	}

	caregivers, err := database.GetCaregivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caregivers: %w", err)
	}

	assignments, err := database.GetAssignments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Loaded analytics inputs",
		zap.Int("caregivers", len(caregivers)),
		zap.Int("assignments", len(assignments)))

	report := analytics.Summarize(caregivers, assignments, from, to)

	logger.Info("Analytics summary completed",
		zap.Int("assignments", report.TotalAssignments),
		zap.Float64("utilization", report.UtilizationRate),
		zap.Float64("conflict_rate", report.ConflictRate))

	return &report, nil
}
