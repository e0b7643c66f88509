// Package analytics aggregates historical assignment data into
// utilization and efficiency metrics. It is a read-only consumer of the
// engine's data model with no side effects.
package analytics

import (
	"slices"
	"sort"
	"time"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// Report summarizes a period of historical assignments
type Report struct {
	From string
	To   string

	TotalAssignments int

	// WorkedMinutes is the total assigned time in the period
	WorkedMinutes int

	// AvailableMinutes is the total time caregivers' general rules
	// offered in the period, net of time-off and exceptions
	AvailableMinutes int

	// UtilizationRate is WorkedMinutes / AvailableMinutes, 0 when no
	// availability was offered
	UtilizationRate float64

	// TravelEfficiency is work time over work plus inferred gap time
	// between consecutive same-day assignments, averaged across
	// caregiver-days. 1.0 means back-to-back schedules with no gaps.
	TravelEfficiency float64

	// ConflictRate is the fraction of caregiver-day schedules containing
	// at least one same-caregiver overlap
	ConflictRate float64

	CaregiverDays  int
	ConflictedDays int
}

// Summarize computes period metrics over historical assignments.
// Rejected assignments and records with malformed dates or windows are
// excluded rather than failing the aggregation.
func Summarize(caregivers []model.Caregiver, assignments []model.Assignment, from, to string) Report {
	report := Report{From: from, To: to}

	fromDate, errFrom := timewindow.ParseDate(from)
	toDate, errTo := timewindow.ParseDate(to)
	if errFrom != nil || errTo != nil || toDate.Before(fromDate) {
		return report
	}

	// Group usable assignments by caregiver and date
	type dayKey struct {
		caregiverID string
		date        string
	}
	days := make(map[dayKey][]timewindow.Window)

	for _, a := range assignments {
		if a.Status == model.AssignmentRejected {
			continue
		}
		date, err := timewindow.ParseDate(a.Date)
		if err != nil || date.Before(fromDate) || date.After(toDate) {
			continue
		}
		window, err := timewindow.Parse(a.StartTime, a.EndTime)
		if err != nil {
			continue
		}
		report.TotalAssignments++
		report.WorkedMinutes += window.Minutes()
		key := dayKey{a.CaregiverID, a.Date}
		days[key] = append(days[key], window)
	}

	// Walk each caregiver-day schedule once for gaps and overlaps
	efficiencySum := 0.0
	for _, windows := range days {
		report.CaregiverDays++

		sort.Slice(windows, func(i, j int) bool {
			return windows[i].Start < windows[j].Start
		})

		work := 0
		gap := 0
		conflicted := false
		for i, w := range windows {
			work += w.Minutes()
			if i == 0 {
				continue
			}
			prev := windows[i-1]
			if w.Start < prev.End {
				conflicted = true
			} else {
				gap += w.Start - prev.End
			}
		}
		if conflicted {
			report.ConflictedDays++
		}
		if work+gap > 0 {
			efficiencySum += float64(work) / float64(work+gap)
		}
	}

	if report.CaregiverDays > 0 {
		report.TravelEfficiency = efficiencySum / float64(report.CaregiverDays)
		report.ConflictRate = float64(report.ConflictedDays) / float64(report.CaregiverDays)
	}

	report.AvailableMinutes = availableMinutes(caregivers, fromDate, toDate)
	if report.AvailableMinutes > 0 {
		report.UtilizationRate = float64(report.WorkedMinutes) / float64(report.AvailableMinutes)
	}

	return report
}

// availableMinutes sums the minutes caregivers' general rules offered
// across the period, honoring time-off, effective ranges and exceptions
func availableMinutes(caregivers []model.Caregiver, fromDate, toDate time.Time) int {
	total := 0
	for _, caregiver := range caregivers {
		for date := fromDate; !date.After(toDate); date = date.AddDate(0, 0, 1) {
			total += availableMinutesOn(caregiver.Availability, date)
		}
	}
	return total
}

func availableMinutesOn(profile model.AvailabilityProfile, date time.Time) int {
	dateStr := date.Format(timewindow.DateLayout)

	for _, off := range profile.TimeOff {
		start, startErr := timewindow.ParseDate(off.StartDate)
		end, endErr := timewindow.ParseDate(off.EndDate)
		if startErr != nil || endErr != nil {
			return 0
		}
		if !date.Before(start) && !date.After(end) {
			return 0
		}
	}

	minutes := 0
	for _, rule := range profile.GeneralRules {
		if !slices.Contains(rule.DaysOfWeek, date.Weekday()) {
			continue
		}
		if !timewindow.DateInRange(date, rule.EffectiveFrom, rule.EffectiveUntil) {
			continue
		}
		window, err := timewindow.Parse(rule.StartTime, rule.EndTime)
		if err != nil {
			continue
		}

		offered := window.Minutes()
		blocked := 0
		for _, exc := range rule.Exceptions {
			if exc.Date != dateStr {
				continue
			}
			if exc.FullDay {
				offered = 0
				break
			}
			excWindow, err := timewindow.Parse(exc.StartTime, exc.EndTime)
			if err != nil {
				offered = 0
				break
			}
			blocked += overlapMinutes(window, excWindow)
		}
		if offered > blocked {
			minutes += offered - blocked
		}
	}
	return minutes
}

func overlapMinutes(a, b timewindow.Window) int {
	start := max(a.Start, b.Start)
	end := min(a.End, b.End)
	if end <= start {
		return 0
	}
	return end - start
}
