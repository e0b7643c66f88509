// Package optimizer drives the greedy assignment loop that matches
// caregivers to open shifts.
//
// The optimizer is a single-pass, non-backtracking heuristic: shifts are
// processed in input order, every caregiver is screened through a fixed
// chain of hard filters, survivors are scored, and the highest score wins
// with ties broken by caregiver input order. The result is deterministic
// and explainable, not provably optimal.
package optimizer

import (
	"github.com/brightpath-care/shiftmatch/pkg/core/availability"
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/scoring"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// PartTimeHourThreshold separates part-time from full-time workloads in
// the run summary
const PartTimeHourThreshold = 24.0

// Config is the input snapshot for one optimization run. The caller must
// pass independent copies per run: the optimizer keeps per-run state in a
// side table rather than on the profiles, but sharing one Config between
// concurrent runs is not supported.
type Config struct {
	Shifts     []model.Shift
	Caregivers []model.Caregiver
	Clients    []model.Client

	// ExistingAssignments seed the workload accumulators so the run
	// respects hours and days already committed
	ExistingAssignments []model.Assignment
}

// Result is the outcome of one optimization run
type Result struct {
	// Assignments created by this run, all pending confirmation
	Assignments []model.Assignment

	// UnmetShifts could not be filled by any eligible caregiver and
	// need manual handling
	UnmetShifts []model.Shift

	Summary Summary
}

// Summary aggregates the run for reporting
type Summary struct {
	TotalShifts    int
	FilledShifts   int
	UnmetShifts    int
	CaregiversUsed int

	// Workloads lists per-caregiver hours and days accumulated in this
	// run, in caregiver input order, for caregivers that received work
	Workloads []CaregiverWorkload
}

// CaregiverWorkload reports one caregiver's share of the run
type CaregiverWorkload struct {
	CaregiverID string
	Name        string
	Hours       float64
	Days        int
	Shifts      int

	// TargetHours is the caregiver's preferred weekly workload, echoed
	// so reports can show assigned hours against it
	TargetHours float64

	// PositionType classifies the workload as "Part-time" (at or below
	// 24 hours) or "Full-time"
	PositionType string
}

// Optimize assigns caregivers to shifts and reports what could not be
// filled. It never returns an error: an unfillable shift is an expected
// outcome, recorded in UnmetShifts, and processing always continues.
func Optimize(cfg Config) *Result {
	resolver := availability.NewResolver()
	scorer := scoring.NewScorer()
	table := newWorkloadTable(cfg.ExistingAssignments)

	clientsByID := make(map[string]*model.Client, len(cfg.Clients))
	for i := range cfg.Clients {
		clientsByID[cfg.Clients[i].ID] = &cfg.Clients[i]
	}

	result := &Result{
		Assignments: []model.Assignment{},
		UnmetShifts: []model.Shift{},
	}

	// Shifts are processed in input order; no prioritization or
	// reordering is applied
	for i := range cfg.Shifts {
		shift := &cfg.Shifts[i]

		week := ""
		if date, err := timewindow.ParseDate(shift.Date); err == nil {
			week = timewindow.WeekKey(date)
		}
		duration := shiftDuration(shift)

		var best *model.Caregiver
		bestScore := 0

		for j := range cfg.Caregivers {
			caregiver := &cfg.Caregivers[j]
			load := table.get(caregiver.ID)

			cand := candidate{
				caregiver: caregiver,
				shift:     shift,
				week:      week,
				duration:  duration,
				load:      load,
				resolver:  resolver,
			}
			if rejectionReason(cand) != "" {
				continue
			}

			score := scorer.Score(caregiver, shift, clientsByID[shift.ClientID], load.assignments)

			// A zero score marks the pairing as ineligible even when
			// every hard filter passed
			if score == 0 {
				continue
			}

			// Strict greater-than keeps the first-found candidate on
			// ties, which makes runs reproducible
			if best == nil || score > bestScore {
				best = caregiver
				bestScore = score
			}
		}

		if best == nil {
			result.UnmetShifts = append(result.UnmetShifts, *shift)
			continue
		}

		assignment := model.Assignment{
			ShiftID:       shift.ID,
			CaregiverID:   best.ID,
			Date:          shift.Date,
			StartTime:     shift.StartTime,
			EndTime:       shift.EndTime,
			DurationHours: duration,
			Status:        model.AssignmentPending,
			Score:         bestScore,
		}
		table.get(best.ID).record(assignment)
		result.Assignments = append(result.Assignments, assignment)
	}

	result.Summary = buildSummary(cfg, table, result)
	return result
}

// shiftDuration prefers the feed-provided duration and falls back to the
// window length when the feed omitted it
func shiftDuration(shift *model.Shift) float64 {
	if shift.DurationHours > 0 {
		return shift.DurationHours
	}
	window, err := timewindow.Parse(shift.StartTime, shift.EndTime)
	if err != nil {
		return 0
	}
	return window.Hours()
}

func buildSummary(cfg Config, table *workloadTable, result *Result) Summary {
	summary := Summary{
		TotalShifts:  len(cfg.Shifts),
		FilledShifts: len(result.Assignments),
		UnmetShifts:  len(result.UnmetShifts),
	}

	assignedShifts := make(map[string]int)
	for _, a := range result.Assignments {
		assignedShifts[a.CaregiverID]++
	}

	for i := range cfg.Caregivers {
		caregiver := &cfg.Caregivers[i]
		count := assignedShifts[caregiver.ID]
		if count == 0 {
			continue
		}
		summary.CaregiversUsed++

		load := table.get(caregiver.ID)
		hours := load.totalHours()
		positionType := "Full-time"
		if hours <= PartTimeHourThreshold {
			positionType = "Part-time"
		}

		summary.Workloads = append(summary.Workloads, CaregiverWorkload{
			CaregiverID:  caregiver.ID,
			Name:         caregiver.Name,
			Hours:        hours,
			Days:         load.totalDays(),
			Shifts:       count,
			TargetHours:  caregiver.TargetWeeklyHours,
			PositionType: positionType,
		})
	}

	return summary
}
