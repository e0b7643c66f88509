package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

func historyCaregiver(id string) model.Caregiver {
	return model.Caregiver{
		ID: id,
		Availability: model.AvailabilityProfile{
			GeneralRules: []model.GeneralRule{
				{
					DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday},
					StartTime:  "08:00",
					EndTime:    "16:00", // 480 minutes per covered day
				},
			},
		},
	}
}

func historyAssignment(id, caregiverID, date, start, end string) model.Assignment {
	return model.Assignment{
		ID:          id,
		CaregiverID: caregiverID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Status:      model.AssignmentConfirmed,
	}
}

func TestSummarize_Utilization(t *testing.T) {
	caregivers := []model.Caregiver{historyCaregiver("cg-1")}
	assignments := []model.Assignment{
		// Monday 2025-01-06, 4 of 8 available hours
		historyAssignment("a1", "cg-1", "2025-01-06", "08:00", "12:00"),
	}

	// Period covers exactly one Monday and one Tuesday
	report := Summarize(caregivers, assignments, "2025-01-06", "2025-01-07")

	assert.Equal(t, 1, report.TotalAssignments)
	assert.Equal(t, 240, report.WorkedMinutes)
	assert.Equal(t, 960, report.AvailableMinutes)
	assert.InDelta(t, 0.25, report.UtilizationRate, 1e-9)
}

func TestSummarize_TimeOffRemovesAvailability(t *testing.T) {
	caregiver := historyCaregiver("cg-1")
	caregiver.Availability.TimeOff = []model.TimeOff{
		{StartDate: "2025-01-06", EndDate: "2025-01-06"},
	}

	report := Summarize([]model.Caregiver{caregiver}, nil, "2025-01-06", "2025-01-07")

	// Only the Tuesday contributes
	assert.Equal(t, 480, report.AvailableMinutes)
}

func TestSummarize_FullDayExceptionRemovesAvailability(t *testing.T) {
	caregiver := historyCaregiver("cg-1")
	caregiver.Availability.GeneralRules[0].Exceptions = []model.RuleException{
		{Date: "2025-01-06", FullDay: true},
	}

	report := Summarize([]model.Caregiver{caregiver}, nil, "2025-01-06", "2025-01-07")
	assert.Equal(t, 480, report.AvailableMinutes)
}

func TestSummarize_TimeBoundedExceptionSubtractsOverlap(t *testing.T) {
	caregiver := historyCaregiver("cg-1")
	caregiver.Availability.GeneralRules[0].Exceptions = []model.RuleException{
		{Date: "2025-01-06", StartTime: "10:00", EndTime: "12:00"},
	}

	report := Summarize([]model.Caregiver{caregiver}, nil, "2025-01-06", "2025-01-06")
	assert.Equal(t, 360, report.AvailableMinutes)
}

func TestSummarize_TravelEfficiency(t *testing.T) {
	caregivers := []model.Caregiver{historyCaregiver("cg-1")}
	assignments := []model.Assignment{
		// 2h work, 1h gap, 2h work: 240 / 300 = 0.8
		historyAssignment("a1", "cg-1", "2025-01-06", "08:00", "10:00"),
		historyAssignment("a2", "cg-1", "2025-01-06", "11:00", "13:00"),
	}

	report := Summarize(caregivers, assignments, "2025-01-06", "2025-01-06")

	assert.Equal(t, 1, report.CaregiverDays)
	assert.InDelta(t, 0.8, report.TravelEfficiency, 1e-9)
	assert.Zero(t, report.ConflictRate)
}

func TestSummarize_BackToBackIsFullyEfficient(t *testing.T) {
	caregivers := []model.Caregiver{historyCaregiver("cg-1")}
	assignments := []model.Assignment{
		historyAssignment("a1", "cg-1", "2025-01-06", "08:00", "10:00"),
		historyAssignment("a2", "cg-1", "2025-01-06", "10:00", "12:00"),
	}

	report := Summarize(caregivers, assignments, "2025-01-06", "2025-01-06")
	assert.InDelta(t, 1.0, report.TravelEfficiency, 1e-9)
}

func TestSummarize_ConflictRate(t *testing.T) {
	caregivers := []model.Caregiver{historyCaregiver("cg-1")}
	assignments := []model.Assignment{
		// Overlapping pair on Monday
		historyAssignment("a1", "cg-1", "2025-01-06", "08:00", "11:00"),
		historyAssignment("a2", "cg-1", "2025-01-06", "10:00", "13:00"),
		// Clean day on Tuesday
		historyAssignment("a3", "cg-1", "2025-01-07", "08:00", "10:00"),
	}

	report := Summarize(caregivers, assignments, "2025-01-06", "2025-01-07")

	assert.Equal(t, 2, report.CaregiverDays)
	assert.Equal(t, 1, report.ConflictedDays)
	assert.InDelta(t, 0.5, report.ConflictRate, 1e-9)
}

func TestSummarize_ExcludesRejectedAndOutOfRange(t *testing.T) {
	caregivers := []model.Caregiver{historyCaregiver("cg-1")}
	rejected := historyAssignment("a1", "cg-1", "2025-01-06", "08:00", "10:00")
	rejected.Status = model.AssignmentRejected
	assignments := []model.Assignment{
		rejected,
		historyAssignment("a2", "cg-1", "2024-12-30", "08:00", "10:00"), // before period
		historyAssignment("a3", "cg-1", "2025-01-06", "bad", "10:00"),   // malformed
	}

	report := Summarize(caregivers, assignments, "2025-01-06", "2025-01-07")

	assert.Zero(t, report.TotalAssignments)
	assert.Zero(t, report.WorkedMinutes)
}

func TestSummarize_InvalidPeriod(t *testing.T) {
	report := Summarize(nil, nil, "2025-01-07", "2025-01-06")
	assert.Zero(t, report.TotalAssignments)
	assert.Zero(t, report.AvailableMinutes)

	report = Summarize(nil, nil, "garbage", "2025-01-06")
	assert.Zero(t, report.AvailableMinutes)
}
