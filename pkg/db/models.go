// Package db defines the row-level records of the scheduling system of
// record that do not map one-to-one onto core model types. The postgres
// package scans into these and assembles the profiles the engine
// consumes; rows with a direct model counterpart (clients, shifts,
// assignments) are scanned straight into pkg/core/model.
package db

// Caregiver is a caregiver profile row
type Caregiver struct {
	ID                string
	Name              string
	Skills            []string
	DrivesCar         bool
	MaxDaysPerWeek    int
	MaxHoursPerWeek   float64
	TargetWeeklyHours float64
	Latitude          *float64
	Longitude         *float64
	Active            bool
}

// AvailabilityRule is a recurring weekly availability row
type AvailabilityRule struct {
	ID          string
	CaregiverID string

	// DaysOfWeek holds time.Weekday numbers (0 = Sunday)
	DaysOfWeek []int

	StartTime string
	EndTime   string

	// EffectiveFrom and EffectiveUntil are nullable date bounds
	EffectiveFrom  *string
	EffectiveUntil *string
}

// AvailabilityException is a dated carve-out from a rule
type AvailabilityException struct {
	ID      string
	RuleID  string
	Date    string
	FullDay bool

	// StartTime and EndTime are null for full-day exceptions
	StartTime *string
	EndTime   *string
}

// SpecificSlot is a one-off availability window row
type SpecificSlot struct {
	ID          string
	CaregiverID string
	Date        string
	StartTime   string
	EndTime     string
}

// TimeOff is a blocked date range row
type TimeOff struct {
	ID          string
	CaregiverID string
	StartDate   string
	EndDate     string
	Reason      string
}
