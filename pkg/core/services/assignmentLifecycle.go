package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// AssignmentLifecycleStore defines the database operations needed for
// assignment state transitions
type AssignmentLifecycleStore interface {
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status model.AssignmentStatus) error
}

// ConfirmAssignment marks a pending assignment as accepted by the caregiver
func ConfirmAssignment(ctx context.Context, database AssignmentLifecycleStore, logger *zap.Logger, assignmentID string) error {
	if assignmentID == "" {
		return fmt.Errorf("assignment id is required")
	}

	if err := database.UpdateAssignmentStatus(ctx, assignmentID, model.AssignmentConfirmed); err != nil {
		return fmt.Errorf("failed to confirm assignment: %w", err)
	}

	logger.Info("Assignment confirmed", zap.String("assignment_id", assignmentID))
	return nil
}

// RejectAssignment marks an assignment as declined. The underlying shift
// returns to the unassigned pool for the next optimization run.
func RejectAssignment(ctx context.Context, database AssignmentLifecycleStore, logger *zap.Logger, assignmentID string) error {
	if assignmentID == "" {
		return fmt.Errorf("assignment id is required")
	}

	if err := database.UpdateAssignmentStatus(ctx, assignmentID, model.AssignmentRejected); err != nil {
		return fmt.Errorf("failed to reject assignment: %w", err)
	}

	logger.Info("Assignment rejected", zap.String("assignment_id", assignmentID))
	return nil
}
