package availability

import (
	"slices"
	"time"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// timeOffRule blocks any request whose date falls inside a time-off period.
// It overrides every other rule, including specific slots on the same date.
type timeOffRule struct{}

func (timeOffRule) Name() string {
	return "TimeOff"
}

func (timeOffRule) Evaluate(profile model.AvailabilityProfile, date time.Time, dateStr string, requested timewindow.Window) Decision {
	for _, off := range profile.TimeOff {
		start, startErr := timewindow.ParseDate(off.StartDate)
		end, endErr := timewindow.ParseDate(off.EndDate)
		if startErr != nil || endErr != nil {
			// A time-off record we cannot interpret still blocks: the
			// conservative reading of an opaque absence is "absent".
			return DecisionUnavailable
		}
		if !date.Before(start) && !date.After(end) {
			return DecisionUnavailable
		}
	}
	return DecisionSkip
}

// specificSlotRule grants a request when a one-off slot on the exact date
// fully contains the requested window.
type specificSlotRule struct{}

func (specificSlotRule) Name() string {
	return "SpecificSlot"
}

func (specificSlotRule) Evaluate(profile model.AvailabilityProfile, date time.Time, dateStr string, requested timewindow.Window) Decision {
	for _, slot := range profile.SpecificSlots {
		if slot.Date != dateStr {
			continue
		}
		window, err := timewindow.Parse(slot.StartTime, slot.EndTime)
		if err != nil {
			continue
		}
		if window.Contains(requested) {
			return DecisionAvailable
		}
	}
	return DecisionSkip
}

// generalRuleSet grants a request when any recurring rule covers the date
// and fully contains the window, and no exception for that date blocks it.
// Rules combine with OR semantics; within a rule, window containment and
// exception clearance combine with AND semantics.
type generalRuleSet struct{}

func (generalRuleSet) Name() string {
	return "GeneralRules"
}

func (generalRuleSet) Evaluate(profile model.AvailabilityProfile, date time.Time, dateStr string, requested timewindow.Window) Decision {
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
		if !window.Contains(requested) {
			continue
		}

		if exceptionBlocks(rule.Exceptions, dateStr, requested) {
			continue
		}

		return DecisionAvailable
	}
	return DecisionSkip
}

// exceptionBlocks reports whether any exception on the given date blocks
// the requested window. A full-day exception always blocks; a time-bounded
// exception blocks only when its window overlaps the request. Exceptions
// with unparseable windows block, failing closed.
func exceptionBlocks(exceptions []model.RuleException, dateStr string, requested timewindow.Window) bool {
	for _, exc := range exceptions {
		if exc.Date != dateStr {
			continue
		}
		if exc.FullDay {
			return true
		}
		window, err := timewindow.Parse(exc.StartTime, exc.EndTime)
		if err != nil {
			return true
		}
		if window.Overlaps(requested) {
			return true
		}
	}
	return false
}
