package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/db"
)

// GetCaregivers retrieves all active caregivers with their availability
// profiles assembled from the rule, exception, slot and time-off tables.
func (d *DB) GetCaregivers(ctx context.Context) ([]model.Caregiver, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, skills, drives_car, max_days_per_week,
		       max_hours_per_week, target_weekly_hours, latitude, longitude
		FROM caregiver
		WHERE active
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query caregivers: %w", err)
	}
	defer rows.Close()

	var records []db.Caregiver
	for rows.Next() {
		var c db.Caregiver
		if err := rows.Scan(&c.ID, &c.Name, &c.Skills, &c.DrivesCar, &c.MaxDaysPerWeek,
			&c.MaxHoursPerWeek, &c.TargetWeeklyHours, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan caregiver: %w", err)
		}
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating caregivers: %w", err)
	}

	rules, exceptions, err := d.getAvailabilityRules(ctx)
	if err != nil {
		return nil, err
	}
	slots, err := d.getSpecificSlots(ctx)
	if err != nil {
		return nil, err
	}
	timeOff, err := d.getTimeOff(ctx)
	if err != nil {
		return nil, err
	}

	caregivers := make([]model.Caregiver, 0, len(records))
	for _, record := range records {
		caregiver := model.Caregiver{
			ID:                record.ID,
			Name:              record.Name,
			Skills:            record.Skills,
			DrivesCar:         record.DrivesCar,
			MaxDaysPerWeek:    record.MaxDaysPerWeek,
			MaxHoursPerWeek:   record.MaxHoursPerWeek,
			TargetWeeklyHours: record.TargetWeeklyHours,
			Location:          location(record.Latitude, record.Longitude),
		}

		for _, rule := range rules[record.ID] {
			general := model.GeneralRule{
				DaysOfWeek: weekdays(rule.DaysOfWeek),
				StartTime:  rule.StartTime,
				EndTime:    rule.EndTime,
			}
			if rule.EffectiveFrom != nil {
				general.EffectiveFrom = *rule.EffectiveFrom
			}
			if rule.EffectiveUntil != nil {
				general.EffectiveUntil = *rule.EffectiveUntil
			}
			for _, exc := range exceptions[rule.ID] {
				ruleExc := model.RuleException{Date: exc.Date, FullDay: exc.FullDay}
				if exc.StartTime != nil {
					ruleExc.StartTime = *exc.StartTime
				}
				if exc.EndTime != nil {
					ruleExc.EndTime = *exc.EndTime
				}
				general.Exceptions = append(general.Exceptions, ruleExc)
			}
			caregiver.Availability.GeneralRules = append(caregiver.Availability.GeneralRules, general)
		}

		for _, slot := range slots[record.ID] {
			caregiver.Availability.SpecificSlots = append(caregiver.Availability.SpecificSlots, model.SpecificSlot{
				Date:      slot.Date,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}

		for _, off := range timeOff[record.ID] {
			caregiver.Availability.TimeOff = append(caregiver.Availability.TimeOff, model.TimeOff{
				StartDate: off.StartDate,
				EndDate:   off.EndDate,
				Reason:    off.Reason,
			})
		}

		caregivers = append(caregivers, caregiver)
	}

	return caregivers, nil
}

func (d *DB) getAvailabilityRules(ctx context.Context) (map[string][]db.AvailabilityRule, map[string][]db.AvailabilityException, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, caregiver_id, days_of_week, start_time, end_time, effective_from, effective_until
		FROM availability_rule
		ORDER BY id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query availability rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[string][]db.AvailabilityRule)
	for rows.Next() {
		var r db.AvailabilityRule
		if err := rows.Scan(&r.ID, &r.CaregiverID, &r.DaysOfWeek, &r.StartTime, &r.EndTime,
			&r.EffectiveFrom, &r.EffectiveUntil); err != nil {
			return nil, nil, fmt.Errorf("failed to scan availability rule: %w", err)
		}
		rules[r.CaregiverID] = append(rules[r.CaregiverID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating availability rules: %w", err)
	}

	excRows, err := d.pool.Query(ctx, `
		SELECT id, rule_id, date, full_day, start_time, end_time
		FROM availability_exception
		ORDER BY id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query availability exceptions: %w", err)
	}
	defer excRows.Close()

	exceptions := make(map[string][]db.AvailabilityException)
	for excRows.Next() {
		var e db.AvailabilityException
		if err := excRows.Scan(&e.ID, &e.RuleID, &e.Date, &e.FullDay, &e.StartTime, &e.EndTime); err != nil {
			return nil, nil, fmt.Errorf("failed to scan availability exception: %w", err)
		}
		exceptions[e.RuleID] = append(exceptions[e.RuleID], e)
	}
	if err := excRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating availability exceptions: %w", err)
	}

	return rules, exceptions, nil
}

func (d *DB) getSpecificSlots(ctx context.Context) (map[string][]db.SpecificSlot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, caregiver_id, date, start_time, end_time
		FROM specific_slot
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query specific slots: %w", err)
	}
	defer rows.Close()

	slots := make(map[string][]db.SpecificSlot)
	for rows.Next() {
		var s db.SpecificSlot
		if err := rows.Scan(&s.ID, &s.CaregiverID, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan specific slot: %w", err)
		}
		slots[s.CaregiverID] = append(slots[s.CaregiverID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating specific slots: %w", err)
	}
	return slots, nil
}

func (d *DB) getTimeOff(ctx context.Context) (map[string][]db.TimeOff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, caregiver_id, start_date, end_date, reason
		FROM time_off
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query time off: %w", err)
	}
	defer rows.Close()

	periods := make(map[string][]db.TimeOff)
	for rows.Next() {
		var t db.TimeOff
		if err := rows.Scan(&t.ID, &t.CaregiverID, &t.StartDate, &t.EndDate, &t.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan time off: %w", err)
		}
		periods[t.CaregiverID] = append(periods[t.CaregiverID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time off: %w", err)
	}
	return periods, nil
}

func weekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}

func location(lat, lon *float64) *model.Location {
	if lat == nil || lon == nil {
		return nil
	}
	return &model.Location{Latitude: *lat, Longitude: *lon}
}
