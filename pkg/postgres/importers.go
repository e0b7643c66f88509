package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// UpsertCaregivers inserts or replaces caregiver profiles from a feed.
// Availability rows are rewritten wholesale per caregiver since feeds
// carry the full profile.
func (d *DB) UpsertCaregivers(ctx context.Context, caregivers []model.Caregiver) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, caregiver := range caregivers {
		var lat, lon *float64
		if caregiver.Location != nil {
			lat = &caregiver.Location.Latitude
			lon = &caregiver.Location.Longitude
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO caregiver (id, name, skills, drives_car, max_days_per_week,
			                       max_hours_per_week, target_weekly_hours, latitude, longitude, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				skills = EXCLUDED.skills,
				drives_car = EXCLUDED.drives_car,
				max_days_per_week = EXCLUDED.max_days_per_week,
				max_hours_per_week = EXCLUDED.max_hours_per_week,
				target_weekly_hours = EXCLUDED.target_weekly_hours,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude,
				active = TRUE
		`, caregiver.ID, caregiver.Name, caregiver.Skills, caregiver.DrivesCar,
			caregiver.MaxDaysPerWeek, caregiver.MaxHoursPerWeek, caregiver.TargetWeeklyHours,
			lat, lon); err != nil {
			return fmt.Errorf("failed to upsert caregiver %s: %w", caregiver.ID, err)
		}

		if err := replaceAvailability(ctx, tx, caregiver); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit caregiver import: %w", err)
	}
	return nil
}

// UpsertClients inserts or replaces client records from a feed. The
// preference list is rewritten wholesale per client since feeds carry
// the full record.
func (d *DB) UpsertClients(ctx context.Context, clients []model.Client) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, client := range clients {
		var lat, lon *float64
		if client.Location != nil {
			lat = &client.Location.Latitude
			lon = &client.Location.Longitude
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO client (id, name, bus_line_accessible, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				bus_line_accessible = EXCLUDED.bus_line_accessible,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude
		`, client.ID, client.Name, client.BusLineAccessible, lat, lon); err != nil {
			return fmt.Errorf("failed to upsert client %s: %w", client.ID, err)
		}

		if _, err := tx.Exec(ctx,
			"DELETE FROM client_preference WHERE client_id = $1", client.ID); err != nil {
			return fmt.Errorf("failed to clear preferences for client %s: %w", client.ID, err)
		}
		for _, caregiverID := range client.PreferredCaregiverIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO client_preference (client_id, caregiver_id)
				VALUES ($1, $2)
			`, client.ID, caregiverID); err != nil {
				return fmt.Errorf("failed to insert preference for client %s: %w", client.ID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit client import: %w", err)
	}
	return nil
}

func replaceAvailability(ctx context.Context, tx pgx.Tx, caregiver model.Caregiver) error {
	for _, table := range []string{"availability_rule", "specific_slot", "time_off"} {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE caregiver_id = $1", table), caregiver.ID); err != nil {
			return fmt.Errorf("failed to clear %s for caregiver %s: %w", table, caregiver.ID, err)
		}
	}

	for _, rule := range caregiver.Availability.GeneralRules {
		days := make([]int, 0, len(rule.DaysOfWeek))
		for _, day := range rule.DaysOfWeek {
			days = append(days, int(day))
		}
		var from, until *string
		if rule.EffectiveFrom != "" {
			from = &rule.EffectiveFrom
		}
		if rule.EffectiveUntil != "" {
			until = &rule.EffectiveUntil
		}

		ruleID := uuid.New().String()
		if _, err := tx.Exec(ctx, `
			INSERT INTO availability_rule (id, caregiver_id, days_of_week, start_time, end_time, effective_from, effective_until)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, ruleID, caregiver.ID, days, rule.StartTime, rule.EndTime, from, until); err != nil {
			return fmt.Errorf("failed to insert availability rule for caregiver %s: %w", caregiver.ID, err)
		}

		for _, exc := range rule.Exceptions {
			var start, end *string
			if !exc.FullDay {
				start = &exc.StartTime
				end = &exc.EndTime
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO availability_exception (id, rule_id, date, full_day, start_time, end_time)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, uuid.New().String(), ruleID, exc.Date, exc.FullDay, start, end); err != nil {
				return fmt.Errorf("failed to insert availability exception for caregiver %s: %w", caregiver.ID, err)
			}
		}
	}

	for _, slot := range caregiver.Availability.SpecificSlots {
		if _, err := tx.Exec(ctx, `
			INSERT INTO specific_slot (id, caregiver_id, date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), caregiver.ID, slot.Date, slot.StartTime, slot.EndTime); err != nil {
			return fmt.Errorf("failed to insert specific slot for caregiver %s: %w", caregiver.ID, err)
		}
	}

	for _, off := range caregiver.Availability.TimeOff {
		if _, err := tx.Exec(ctx, `
			INSERT INTO time_off (id, caregiver_id, start_date, end_date, reason)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), caregiver.ID, off.StartDate, off.EndDate, off.Reason); err != nil {
			return fmt.Errorf("failed to insert time off for caregiver %s: %w", caregiver.ID, err)
		}
	}

	return nil
}
