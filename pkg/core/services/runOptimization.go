package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/internal/config"
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/optimizer"
	"github.com/brightpath-care/shiftmatch/pkg/postgres"
)

// RunOptimizationResult contains the outcome of one optimization run
type RunOptimizationResult struct {
	From        string
	To          string
	Assignments []model.Assignment
	UnmetShifts []model.Shift
	Summary     optimizer.Summary

	// Claimed and Skipped count persisted assignments and assignments
	// dropped because another run claimed the shift first
	Claimed int
	Skipped int
}

// RunOptimizationStore defines the database operations needed for an optimization run
type RunOptimizationStore interface {
	GetOpenShifts(ctx context.Context, from, to string) ([]model.Shift, error)
	GetCaregivers(ctx context.Context) ([]model.Caregiver, error)
	GetClients(ctx context.Context) ([]model.Client, error)
	GetAssignments(ctx context.Context, from, to string) ([]model.Assignment, error)
	ClaimShift(ctx context.Context, assignment model.Assignment) error
}

// RunOptimization matches caregivers to open shifts over the planning horizon
// If dryRun is true, assignments are not saved to the database
// If forceCommit is true, assignments are saved even when some shifts stay unmet
func RunOptimization(
	ctx context.Context,
	database RunOptimizationStore,
	cfg *config.Config,
	logger *zap.Logger,
	dryRun bool,
	forceCommit bool,
) (*RunOptimizationResult, error) {
	logger.Debug("Starting optimization run",
		zap.Bool("dry_run", dryRun),
		zap.Bool("force_commit", forceCommit))

	from, to := planningWindow(time.Now(), cfg.PlanningHorizonWeeks)
	logger.Debug("Planning window", zap.String("from", from), zap.String("to", to))

	logger.Debug("Fetching open shifts")
	shifts, err := database.GetOpenShifts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open shifts: %w", err)
	}
	logger.Debug("Found open shifts", zap.Int("count", len(shifts)))

	if len(shifts) == 0 {
		logger.Info("No open shifts in planning window")
		return &RunOptimizationResult{From: from, To: to}, nil
	}

	logger.Debug("Fetching caregivers")
	caregivers, err := database.GetCaregivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caregivers: %w", err)
	}
	logger.Debug("Found caregivers", zap.Int("count", len(caregivers)))

	if len(caregivers) == 0 {
		return nil, fmt.Errorf("no active caregivers found - import a caregiver feed first")
	}

	logger.Debug("Fetching clients")
	clients, err := database.GetClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	if err := checkShiftClients(shifts, clients); err != nil {
		return nil, err
	}

	logger.Debug("Fetching existing assignments")
	existing, err := database.GetAssignments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Found existing assignments", zap.Int("count", len(existing)))

	logger.Info("Running matching algorithm",
		zap.Int("shifts", len(shifts)),
		zap.Int("caregivers", len(caregivers)))
	outcome := optimizer.Optimize(optimizer.Config{
		Shifts:              shifts,
		Caregivers:          caregivers,
		Clients:             clients,
		ExistingAssignments: existing,
	})

	logger.Info("Matching completed",
		zap.Int("filled", outcome.Summary.FilledShifts),
		zap.Int("unmet", outcome.Summary.UnmetShifts))

	for _, unmet := range outcome.UnmetShifts {
		logger.Warn("Shift could not be filled",
			zap.String("shift_id", unmet.ID),
			zap.String("date", unmet.Date),
			zap.String("client_id", unmet.ClientID))
	}

	result := &RunOptimizationResult{
		From:        from,
		To:          to,
		Assignments: outcome.Assignments,
		UnmetShifts: outcome.UnmetShifts,
		Summary:     outcome.Summary,
	}

	fullyFilled := len(outcome.UnmetShifts) == 0
	shouldSave := !dryRun && (fullyFilled || forceCommit)

	if shouldSave {
		logger.Info("Saving assignments to database",
			zap.Bool("fully_filled", fullyFilled),
			zap.Bool("forced", forceCommit && !fullyFilled))
		for i := range result.Assignments {
			result.Assignments[i].ID = uuid.New().String()
			if err := database.ClaimShift(ctx, result.Assignments[i]); err != nil {
				if errors.Is(err, postgres.ErrShiftClaimed) {
					logger.Warn("Shift claimed by a concurrent run, skipping",
						zap.String("shift_id", result.Assignments[i].ShiftID))
					result.Skipped++
					continue
				}
				return nil, fmt.Errorf("failed to save assignment: %w", err)
			}
			result.Claimed++
		}
		logger.Info("Assignments saved",
			zap.Int("claimed", result.Claimed),
			zap.Int("skipped", result.Skipped))
	} else if dryRun {
		logger.Info("Dry run mode - assignments not saved")
	} else {
		logger.Warn("Some shifts unmet - not saving to database (use forceCommit to save anyway)")
	}

	return result, nil
}

// checkShiftClients verifies every open shift references a known client
func checkShiftClients(shifts []model.Shift, clients []model.Client) error {
	known := make(map[string]bool, len(clients))
	for _, client := range clients {
		known[client.ID] = true
	}
	for _, shift := range shifts {
		if !known[shift.ClientID] {
			return fmt.Errorf("shift %s references unknown client %s", shift.ID, shift.ClientID)
		}
	}
	return nil
}
