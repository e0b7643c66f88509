package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// GetAssignments retrieves assignments in the given date range, including
// rejected ones so that callers can filter by status themselves.
func (d *DB) GetAssignments(ctx context.Context, from, to string) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_id, caregiver_id, date, start_time, end_time,
		       duration_hours, status, score
		FROM assignment
		WHERE date >= $1 AND date <= $2
		ORDER BY date, start_time, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.ShiftID, &a.CaregiverID, &a.Date, &a.StartTime,
			&a.EndTime, &a.DurationHours, &a.Status, &a.Score); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// ClaimShift atomically records an assignment against an unassigned shift.
// The shift row is locked for the duration of the transaction so a shift
// assigned by a concurrent run surfaces as ErrShiftClaimed rather than a
// double booking.
func (d *DB) ClaimShift(ctx context.Context, assignment model.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status model.ShiftStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM shift WHERE id = $1 FOR UPDATE
	`, assignment.ShiftID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("shift %s not found", assignment.ShiftID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock shift %s: %w", assignment.ShiftID, err)
	}
	if status != model.ShiftUnassigned {
		return fmt.Errorf("shift %s: %w", assignment.ShiftID, ErrShiftClaimed)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO assignment (id, shift_id, caregiver_id, date, start_time,
		                        end_time, duration_hours, status, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, assignment.ID, assignment.ShiftID, assignment.CaregiverID, assignment.Date,
		assignment.StartTime, assignment.EndTime, assignment.DurationHours,
		assignment.Status, assignment.Score); err != nil {
		return fmt.Errorf("failed to insert assignment for shift %s: %w", assignment.ShiftID, err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE shift SET status = $1 WHERE id = $2
	`, model.ShiftAssigned, assignment.ShiftID); err != nil {
		return fmt.Errorf("failed to mark shift %s assigned: %w", assignment.ShiftID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit claim for shift %s: %w", assignment.ShiftID, err)
	}
	return nil
}

// UpdateAssignmentStatus transitions an assignment to the given status.
// Rejecting an assignment re-queues the underlying shift.
func (d *DB) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status model.AssignmentStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid assignment status %q", status)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var shiftID string
	err = tx.QueryRow(ctx, `
		UPDATE assignment SET status = $1 WHERE id = $2 RETURNING shift_id
	`, status, assignmentID).Scan(&shiftID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("assignment %s not found", assignmentID)
	}
	if err != nil {
		return fmt.Errorf("failed to update assignment %s: %w", assignmentID, err)
	}

	if status == model.AssignmentRejected {
		if _, err := tx.Exec(ctx, `
			UPDATE shift SET status = $1 WHERE id = $2
		`, model.ShiftUnassigned, shiftID); err != nil {
			return fmt.Errorf("failed to re-queue shift %s: %w", shiftID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit status update for assignment %s: %w", assignmentID, err)
	}
	return nil
}
