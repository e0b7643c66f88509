// Package conflict detects time-overlap conflicts between a shift and a
// caregiver's existing assignments on the same date.
package conflict

import (
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// FindConflicts returns the subset of existing assignments whose windows
// overlap the shift's window. Callers pass assignments already filtered to
// the same caregiver and date; assignments on other dates are ignored here
// as a safety net.
//
// Windows are half-open, so back-to-back assignments (one ending exactly
// when the next starts) are not conflicts. Malformed time strings on
// either side yield no conflict for that pair, the conservative choice
// for a detector whose callers treat conflicts as penalties.
func FindConflicts(shift model.Shift, existing []model.Assignment) []model.Assignment {
	shiftWindow, err := timewindow.Parse(shift.StartTime, shift.EndTime)
	if err != nil {
		return nil
	}

	var conflicts []model.Assignment
	for _, assignment := range existing {
		if assignment.Date != shift.Date {
			continue
		}
		if assignment.Status == model.AssignmentRejected {
			continue
		}
		window, err := timewindow.Parse(assignment.StartTime, assignment.EndTime)
		if err != nil {
			continue
		}
		if shiftWindow.Overlaps(window) {
			conflicts = append(conflicts, assignment)
		}
	}
	return conflicts
}

// Overlapping reports whether two assignments for the same caregiver
// collide on date and window. Used by post-hoc validation of externally
// edited assignments.
func Overlapping(a, b model.Assignment) bool {
	if a.Date != b.Date {
		return false
	}
	wa, err := timewindow.Parse(a.StartTime, a.EndTime)
	if err != nil {
		return false
	}
	wb, err := timewindow.Parse(b.StartTime, b.EndTime)
	if err != nil {
		return false
	}
	return wa.Overlaps(wb)
}
