package postgres

import (
	"context"
	"fmt"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// GetOpenShifts retrieves unassigned shifts in the given date range,
// ordered by date then start time.
func (d *DB) GetOpenShifts(ctx context.Context, from, to string) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT s.id, s.client_id, c.name, s.date, s.start_time, s.end_time,
		       s.duration_hours, s.required_skills, s.latitude, s.longitude,
		       c.bus_line_accessible, s.status
		FROM shift s
		JOIN client c ON c.id = s.client_id
		WHERE s.status = $1 AND s.date >= $2 AND s.date <= $3
		ORDER BY s.date, s.start_time, s.id
	`, model.ShiftUnassigned, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query open shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var (
			shift    model.Shift
			lat, lon *float64
		)
		if err := rows.Scan(&shift.ID, &shift.ClientID, &shift.ClientName, &shift.Date,
			&shift.StartTime, &shift.EndTime, &shift.DurationHours, &shift.RequiredSkills,
			&lat, &lon, &shift.BusLineAccessible, &shift.Status); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shift.Location = location(lat, lon)
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// InsertShifts persists newly generated shifts. Shifts whose id already
// exists are left untouched so that regeneration is idempotent.
func (d *DB) InsertShifts(ctx context.Context, shifts []model.Shift) (int, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, shift := range shifts {
		var lat, lon *float64
		if shift.Location != nil {
			lat = &shift.Location.Latitude
			lon = &shift.Location.Longitude
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO shift (id, client_id, date, start_time, end_time,
			                   duration_hours, required_skills, latitude, longitude, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING
		`, shift.ID, shift.ClientID, shift.Date, shift.StartTime, shift.EndTime,
			shift.DurationHours, shift.RequiredSkills, lat, lon, model.ShiftUnassigned)
		if err != nil {
			return 0, fmt.Errorf("failed to insert shift %s: %w", shift.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit shifts: %w", err)
	}
	return inserted, nil
}

// UpdateShiftStatus sets the status of a single shift.
func (d *DB) UpdateShiftStatus(ctx context.Context, shiftID string, status model.ShiftStatus) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift SET status = $1 WHERE id = $2
	`, status, shiftID)
	if err != nil {
		return fmt.Errorf("failed to update shift %s: %w", shiftID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %s not found", shiftID)
	}
	return nil
}
