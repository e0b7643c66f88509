package optimizer

import (
	"slices"

	"github.com/brightpath-care/shiftmatch/pkg/core/availability"
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// candidate bundles everything a hard filter needs to judge a
// (caregiver, shift) pair within the current run
type candidate struct {
	caregiver *model.Caregiver
	shift     *model.Shift

	// week is the ISO week key of the shift date
	week string

	// duration of the shift in hours
	duration float64

	load     *workload
	resolver *availability.Resolver
}

// hardFilter rejects ineligible candidates before scoring. Filters run in
// a fixed order and reject on the first failure; the name explains why.
type hardFilter struct {
	name    string
	rejects func(c candidate) bool
}

// hardFilters is the ordered filter chain applied to every candidate.
// A zero MaxHoursPerWeek or MaxDaysPerWeek on a profile means the limit
// was never set and is not enforced.
var hardFilters = []hardFilter{
	{
		name: "WeeklyHoursLimit",
		rejects: func(c candidate) bool {
			if c.caregiver.MaxHoursPerWeek <= 0 {
				return false
			}
			return c.load.hoursInWeek(c.week)+c.duration > c.caregiver.MaxHoursPerWeek
		},
	},
	{
		name: "OneShiftPerDay",
		rejects: func(c candidate) bool {
			return len(c.load.assignmentsOn(c.shift.Date)) > 0
		},
	},
	{
		name: "WeeklyDaysLimit",
		rejects: func(c candidate) bool {
			if c.caregiver.MaxDaysPerWeek <= 0 {
				return false
			}
			if c.load.workedOn(c.week, c.shift.Date) {
				return false
			}
			return c.load.daysInWeek(c.week)+1 > c.caregiver.MaxDaysPerWeek
		},
	},
	{
		name: "Availability",
		rejects: func(c candidate) bool {
			return !c.resolver.IsAvailable(c.caregiver.Availability, c.shift.Date, c.shift.StartTime, c.shift.EndTime)
		},
	},
	{
		name: "RequiredSkills",
		rejects: func(c candidate) bool {
			for _, skill := range c.shift.RequiredSkills {
				if !slices.Contains(c.caregiver.Skills, skill) {
					return true
				}
			}
			return false
		},
	},
	{
		name: "Transportation",
		rejects: func(c candidate) bool {
			// Reject only when the caregiver cannot drive AND the visit
			// cannot be reached by bus
			return !c.caregiver.DrivesCar && !c.shift.BusLineAccessible
		},
	},
}

// rejectionReason returns the name of the first filter that rejects the
// candidate, or "" when all filters pass
func rejectionReason(c candidate) string {
	for _, f := range hardFilters {
		if f.rejects(c) {
			return f.name
		}
	}
	return ""
}
