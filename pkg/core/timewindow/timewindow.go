package timewindow

import (
	"fmt"
	"time"
)

// DateLayout is the date format used throughout the engine
const DateLayout = "2006-01-02"

// ClockLayout is the wall-clock format used throughout the engine
const ClockLayout = "15:04"

// Window is a half-open time window [Start, End) in minutes since midnight
type Window struct {
	Start int
	End   int
}

// ParseClock parses an "HH:MM" wall-clock string into minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Parse builds a Window from "HH:MM" start and end strings
func Parse(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	w := Window{Start: s, End: e}
	if !w.Valid() {
		return Window{}, fmt.Errorf("invalid window %s-%s: start must precede end", start, end)
	}
	return w, nil
}

// Valid reports whether the window has positive length
func (w Window) Valid() bool {
	return w.Start < w.End
}

// Overlaps reports whether two half-open windows intersect.
// Touching boundaries (w.End == o.Start) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}

// Contains reports whether o lies entirely within w
func (w Window) Contains(o Window) bool {
	return w.Start <= o.Start && o.End <= w.End
}

// Minutes returns the window length in minutes
func (w Window) Minutes() int {
	return w.End - w.Start
}

// Hours returns the window length in hours
func (w Window) Hours() float64 {
	return float64(w.Minutes()) / 60
}

// ParseDate parses a "2006-01-02" date string
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// WeekKey returns a stable identifier for the ISO week containing the date.
// Used to bucket weekly workload accumulators.
func WeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// DateInRange reports whether date falls within [from, until], where empty
// bounds are treated as open. Malformed bounds exclude the date (fail closed).
func DateInRange(date time.Time, from, until string) bool {
	if from != "" {
		f, err := ParseDate(from)
		if err != nil || date.Before(f) {
			return false
		}
	}
	if until != "" {
		u, err := ParseDate(until)
		if err != nil || date.After(u) {
			return false
		}
	}
	return true
}
