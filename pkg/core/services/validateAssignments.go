package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/pkg/core/conflict"
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// AssignmentIssue describes one problem found with an existing assignment
type AssignmentIssue struct {
	CaregiverID  string
	AssignmentID string
	Date         string
	Description  string
}

// ValidateAssignmentsResult contains the validation report
type ValidateAssignmentsResult struct {
	From    string
	To      string
	Checked int
	Issues  []AssignmentIssue
}

// ValidateAssignmentsStore defines the database operations needed for validation
type ValidateAssignmentsStore interface {
	GetCaregivers(ctx context.Context) ([]model.Caregiver, error)
	GetAssignments(ctx context.Context, from, to string) ([]model.Assignment, error)
}

// ValidateAssignments checks assignments in the given date range for
// double bookings and exceeded weekly limits. Assignments edited outside
// the matching run are the usual source. The report never mutates data.
func ValidateAssignments(
	ctx context.Context,
	database ValidateAssignmentsStore,
	logger *zap.Logger,
	from, to string,
) (*ValidateAssignmentsResult, error) {
	logger.Debug("Starting assignment validation",
		zap.String("from", from),
		zap.String("to", to))

	if _, err := timewindow.ParseDate(from); err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	if _, err := timewindow.ParseDate(to); err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}

	caregivers, err := database.GetCaregivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caregivers: %w", err)
	}

	assignments, err := database.GetAssignments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Found assignments", zap.Int("count", len(assignments)))

	caregiversByID := make(map[string]model.Caregiver, len(caregivers))
	for _, caregiver := range caregivers {
		caregiversByID[caregiver.ID] = caregiver
	}

	active := make([]model.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.Status != model.AssignmentRejected {
			active = append(active, assignment)
		}
	}

	result := &ValidateAssignmentsResult{From: from, To: to, Checked: len(active)}

	byCaregiver := make(map[string][]model.Assignment)
	order := make([]string, 0)
	for _, assignment := range active {
		if _, seen := byCaregiver[assignment.CaregiverID]; !seen {
			order = append(order, assignment.CaregiverID)
		}
		byCaregiver[assignment.CaregiverID] = append(byCaregiver[assignment.CaregiverID], assignment)
	}

	for _, caregiverID := range order {
		caregiver, known := caregiversByID[caregiverID]
		if !known {
			result.Issues = append(result.Issues, AssignmentIssue{
				CaregiverID: caregiverID,
				Description: "assignments reference an unknown or inactive caregiver",
			})
		}

		own := byCaregiver[caregiverID]
		result.Issues = append(result.Issues, findDoubleBookings(own)...)
		if known {
			result.Issues = append(result.Issues, findLimitBreaches(caregiver, own)...)
		}
	}

	logger.Info("Assignment validation completed",
		zap.Int("checked", result.Checked),
		zap.Int("issues", len(result.Issues)))

	return result, nil
}

// findDoubleBookings reports overlapping assignment pairs for one caregiver
func findDoubleBookings(assignments []model.Assignment) []AssignmentIssue {
	var issues []AssignmentIssue
	for i := 0; i < len(assignments); i++ {
		for j := i + 1; j < len(assignments); j++ {
			if conflict.Overlapping(assignments[i], assignments[j]) {
				issues = append(issues, AssignmentIssue{
					CaregiverID:  assignments[i].CaregiverID,
					AssignmentID: assignments[j].ID,
					Date:         assignments[j].Date,
					Description: fmt.Sprintf("overlaps assignment %s (%s-%s)",
						assignments[i].ID, assignments[i].StartTime, assignments[i].EndTime),
				})
			}
		}
	}
	return issues
}

// findLimitBreaches reports exceeded weekly hour and day caps for one caregiver
// A zero cap means the caregiver has no limit on that axis
func findLimitBreaches(caregiver model.Caregiver, assignments []model.Assignment) []AssignmentIssue {
	hoursByWeek := make(map[string]float64)
	datesByWeek := make(map[string]map[string]bool)

	for _, assignment := range assignments {
		date, err := timewindow.ParseDate(assignment.Date)
		if err != nil {
			continue
		}
		week := timewindow.WeekKey(date)
		hoursByWeek[week] += assignment.DurationHours
		if datesByWeek[week] == nil {
			datesByWeek[week] = make(map[string]bool)
		}
		datesByWeek[week][assignment.Date] = true
	}

	var issues []AssignmentIssue
	for week, hours := range hoursByWeek {
		if caregiver.MaxHoursPerWeek > 0 && hours > caregiver.MaxHoursPerWeek {
			issues = append(issues, AssignmentIssue{
				CaregiverID: caregiver.ID,
				Description: fmt.Sprintf("week %s has %.1f hours, limit is %.1f",
					week, hours, caregiver.MaxHoursPerWeek),
			})
		}
		if caregiver.MaxDaysPerWeek > 0 && len(datesByWeek[week]) > caregiver.MaxDaysPerWeek {
			issues = append(issues, AssignmentIssue{
				CaregiverID: caregiver.ID,
				Description: fmt.Sprintf("week %s has %d working days, limit is %d",
					week, len(datesByWeek[week]), caregiver.MaxDaysPerWeek),
			})
		}
	}
	return issues
}
