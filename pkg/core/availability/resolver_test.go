package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// 2025-01-06 is a Monday
const monday = "2025-01-06"

func weekdayProfile() model.AvailabilityProfile {
	return model.AvailabilityProfile{
		GeneralRules: []model.GeneralRule{
			{
				DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
				StartTime:  "08:00",
				EndTime:    "16:00",
			},
		},
	}
}

func TestIsAvailable_GeneralRuleMatch(t *testing.T) {
	resolver := NewResolver()

	// Weekly Mon 08:00-16:00 rule, shift Mon 09:00-11:00
	assert.True(t, resolver.IsAvailable(weekdayProfile(), monday, "09:00", "11:00"))
}

func TestIsAvailable_GeneralRuleWrongDay(t *testing.T) {
	resolver := NewResolver()

	// 2025-01-07 is a Tuesday - not covered by the rule
	assert.False(t, resolver.IsAvailable(weekdayProfile(), "2025-01-07", "09:00", "11:00"))
}

func TestIsAvailable_WindowNotContained(t *testing.T) {
	resolver := NewResolver()

	assert.False(t, resolver.IsAvailable(weekdayProfile(), monday, "07:00", "11:00"))
	assert.False(t, resolver.IsAvailable(weekdayProfile(), monday, "15:00", "17:00"))
	// Window ending exactly at the rule boundary is contained
	assert.True(t, resolver.IsAvailable(weekdayProfile(), monday, "14:00", "16:00"))
}

func TestIsAvailable_FullDayException(t *testing.T) {
	resolver := NewResolver()

	profile := weekdayProfile()
	profile.GeneralRules[0].Exceptions = []model.RuleException{
		{Date: monday, FullDay: true},
	}

	assert.False(t, resolver.IsAvailable(profile, monday, "09:00", "11:00"))
	// Other Mondays remain available
	assert.True(t, resolver.IsAvailable(profile, "2025-01-13", "09:00", "11:00"))
}

func TestIsAvailable_TimeBoundedException(t *testing.T) {
	resolver := NewResolver()

	profile := weekdayProfile()
	profile.GeneralRules[0].Exceptions = []model.RuleException{
		{Date: monday, StartTime: "10:00", EndTime: "12:00"},
	}

	// Overlapping the exception blocks
	assert.False(t, resolver.IsAvailable(profile, monday, "09:00", "11:00"))
	// Outside the exception window is still fine
	assert.True(t, resolver.IsAvailable(profile, monday, "13:00", "15:00"))
	// Touching the exception boundary does not overlap
	assert.True(t, resolver.IsAvailable(profile, monday, "08:00", "10:00"))
}

func TestIsAvailable_TimeOffOverridesEverything(t *testing.T) {
	resolver := NewResolver()

	profile := weekdayProfile()
	profile.SpecificSlots = []model.SpecificSlot{
		{Date: monday, StartTime: "08:00", EndTime: "18:00"},
	}
	profile.TimeOff = []model.TimeOff{
		{StartDate: "2025-01-01", EndDate: "2025-01-10", Reason: "vacation"},
	}

	// Time-off beats both the general rule and the specific slot
	assert.False(t, resolver.IsAvailable(profile, monday, "09:00", "11:00"))
	// After the time-off period the rule applies again
	assert.True(t, resolver.IsAvailable(profile, "2025-01-13", "09:00", "11:00"))
}

func TestIsAvailable_SpecificSlot(t *testing.T) {
	resolver := NewResolver()

	profile := model.AvailabilityProfile{
		SpecificSlots: []model.SpecificSlot{
			{Date: "2025-01-11", StartTime: "10:00", EndTime: "14:00"},
		},
	}

	// Saturday one-off slot with no general rules
	assert.True(t, resolver.IsAvailable(profile, "2025-01-11", "10:00", "12:00"))
	// Not fully contained
	assert.False(t, resolver.IsAvailable(profile, "2025-01-11", "13:00", "15:00"))
	// Different date
	assert.False(t, resolver.IsAvailable(profile, "2025-01-12", "10:00", "12:00"))
}

func TestIsAvailable_EffectiveDateRange(t *testing.T) {
	resolver := NewResolver()

	profile := weekdayProfile()
	profile.GeneralRules[0].EffectiveFrom = "2025-02-01"

	assert.False(t, resolver.IsAvailable(profile, monday, "09:00", "11:00"))
	// 2025-02-03 is a Monday inside the effective range
	assert.True(t, resolver.IsAvailable(profile, "2025-02-03", "09:00", "11:00"))
}

func TestIsAvailable_MultipleRulesOrSemantics(t *testing.T) {
	resolver := NewResolver()

	profile := model.AvailabilityProfile{
		GeneralRules: []model.GeneralRule{
			{DaysOfWeek: []time.Weekday{time.Monday}, StartTime: "08:00", EndTime: "12:00"},
			{DaysOfWeek: []time.Weekday{time.Monday}, StartTime: "14:00", EndTime: "18:00"},
		},
	}

	assert.True(t, resolver.IsAvailable(profile, monday, "09:00", "11:00"))
	assert.True(t, resolver.IsAvailable(profile, monday, "15:00", "17:00"))
	// Spans the gap between the two rules; neither contains it
	assert.False(t, resolver.IsAvailable(profile, monday, "11:00", "15:00"))
}

func TestIsAvailable_MalformedInputFailsClosed(t *testing.T) {
	resolver := NewResolver()
	profile := weekdayProfile()

	assert.False(t, resolver.IsAvailable(profile, monday, "nine", "11:00"))
	assert.False(t, resolver.IsAvailable(profile, monday, "09:00", ""))
	assert.False(t, resolver.IsAvailable(profile, "01/06/2025", "09:00", "11:00"))
	// Inverted window
	assert.False(t, resolver.IsAvailable(profile, monday, "11:00", "09:00"))
}

func TestIsAvailable_EmptyProfile(t *testing.T) {
	resolver := NewResolver()

	assert.False(t, resolver.IsAvailable(model.AvailabilityProfile{}, monday, "09:00", "11:00"))
}
