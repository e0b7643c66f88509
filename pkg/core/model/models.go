package model

import "time"

// AssignmentStatus is the lifecycle state of an assignment
type AssignmentStatus string

const (
	// AssignmentPending is the status of an assignment awaiting confirmation
	AssignmentPending AssignmentStatus = "pending_confirmation"
	// AssignmentConfirmed is the status of a confirmed assignment
	AssignmentConfirmed AssignmentStatus = "assigned"
	// AssignmentRejected is the status of a rejected assignment (the shift is re-queued)
	AssignmentRejected AssignmentStatus = "rejected"
)

func (s AssignmentStatus) IsValid() bool {
	return s == AssignmentPending || s == AssignmentConfirmed || s == AssignmentRejected
}

// ShiftStatus is the lifecycle state of a shift
type ShiftStatus string

const (
	ShiftUnassigned ShiftStatus = "unassigned"
	ShiftAssigned   ShiftStatus = "assigned"
	ShiftCancelled  ShiftStatus = "cancelled"
)

// Location is a geographic coordinate pair
type Location struct {
	Latitude  float64
	Longitude float64
}

// Shift represents a single client care visit that needs a caregiver
type Shift struct {
	ID         string
	ClientID   string
	ClientName string

	// Date in "2006-01-02" format
	Date string

	// StartTime and EndTime as "HH:MM" wall-clock (single facility timezone)
	StartTime string
	EndTime   string

	DurationHours float64

	RequiredSkills []string

	// Location of the visit (nil when the client address is not geocoded)
	Location *Location

	// BusLineAccessible indicates the visit can be reached without a car
	BusLineAccessible bool

	Status ShiftStatus
}

// Caregiver represents a caregiver profile including work limits and availability
type Caregiver struct {
	ID   string
	Name string

	Skills    []string
	DrivesCar bool

	MaxDaysPerWeek  int
	MaxHoursPerWeek float64

	// TargetWeeklyHours is the preferred workload, used for reporting only
	TargetWeeklyHours float64

	Location *Location

	Availability AvailabilityProfile
}

// AvailabilityProfile is the combined set of recurring rules, one-off slots
// and time-off periods describing when a caregiver can work
type AvailabilityProfile struct {
	GeneralRules  []GeneralRule
	SpecificSlots []SpecificSlot
	TimeOff       []TimeOff
}

// GeneralRule is a recurring weekly availability window
type GeneralRule struct {
	DaysOfWeek []time.Weekday

	StartTime string
	EndTime   string

	// EffectiveFrom and EffectiveUntil bound the rule to a date range.
	// Empty string means unbounded on that side.
	EffectiveFrom  string
	EffectiveUntil string

	Exceptions []RuleException
}

// RuleException blocks a general rule on a single date, either for the
// whole day or for a bounded window
type RuleException struct {
	Date    string
	FullDay bool

	// StartTime and EndTime are only meaningful when FullDay is false
	StartTime string
	EndTime   string
}

// SpecificSlot is a one-off availability window on a single date
type SpecificSlot struct {
	Date      string
	StartTime string
	EndTime   string
}

// TimeOff is a date range during which the caregiver must not be scheduled
type TimeOff struct {
	StartDate string
	EndDate   string
	Reason    string
}

// Client represents the recipient of care visits
type Client struct {
	ID   string
	Name string

	PreferredCaregiverIDs []string

	BusLineAccessible bool
	Location          *Location
}

// Assignment pairs a caregiver with a shift
type Assignment struct {
	ID          string
	ShiftID     string
	CaregiverID string

	Date      string
	StartTime string
	EndTime   string

	DurationHours float64

	Status AssignmentStatus

	// Score is the fitness score at the moment of assignment
	Score int
}
