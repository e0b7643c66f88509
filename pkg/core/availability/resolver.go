// Package availability decides whether a caregiver can work a requested
// time window on a given date.
//
// The decision is made by an ordered chain of rule strategies evaluated
// with short-circuit semantics:
//
//  1. Time-off periods (highest precedence, always block)
//  2. One-off specific slots (grant when fully containing the window)
//  3. General recurring rules minus their exceptions (grant on match)
//  4. Fail-closed default: no decisive rule means unavailable
package availability

import (
	"time"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// Decision is the outcome of evaluating a single rule strategy
type Decision int

const (
	// DecisionSkip means the rule has no opinion; evaluation continues
	DecisionSkip Decision = iota
	// DecisionAvailable grants the request and stops evaluation
	DecisionAvailable
	// DecisionUnavailable denies the request and stops evaluation
	DecisionUnavailable
)

// Rule is a single strategy in the availability precedence chain
type Rule interface {
	Name() string
	Evaluate(profile model.AvailabilityProfile, date time.Time, dateStr string, requested timewindow.Window) Decision
}

// Resolver evaluates availability requests against the precedence chain
type Resolver struct {
	rules []Rule
}

// NewResolver creates a Resolver with the standard precedence chain
func NewResolver() *Resolver {
	return &Resolver{
		rules: []Rule{
			timeOffRule{},
			specificSlotRule{},
			generalRuleSet{},
		},
	}
}

// IsAvailable reports whether the profile permits working [start, end) on
// the given date. Malformed date or time input resolves to false rather
// than an error: a bad record must never halt a batch.
func (r *Resolver) IsAvailable(profile model.AvailabilityProfile, date, start, end string) bool {
	requested, err := timewindow.Parse(start, end)
	if err != nil {
		return false
	}

	day, err := timewindow.ParseDate(date)
	if err != nil {
		return false
	}

	for _, rule := range r.rules {
		switch rule.Evaluate(profile, day, date, requested) {
		case DecisionAvailable:
			return true
		case DecisionUnavailable:
			return false
		}
	}

	// No rule matched the request
	return false
}
