package optimizer

import (
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// workload is the per-run accumulator for a single caregiver. Caregiver
// profiles themselves are never mutated; all state a run builds up lives
// here, keyed by caregiver id in the workloadTable side table, so two runs
// over independent snapshots can never share counters.
type workload struct {
	// hoursByWeek accumulates assigned hours per ISO week key
	hoursByWeek map[string]float64

	// datesByWeek tracks the distinct worked dates per ISO week key
	datesByWeek map[string]map[string]bool

	// assignments holds seeded and newly created assignments for the run
	assignments []model.Assignment
}

func newWorkload() *workload {
	return &workload{
		hoursByWeek: make(map[string]float64),
		datesByWeek: make(map[string]map[string]bool),
	}
}

func (w *workload) record(a model.Assignment) {
	date, err := timewindow.ParseDate(a.Date)
	if err != nil {
		// Unparseable dates still count as held assignments but cannot
		// contribute to weekly buckets
		w.assignments = append(w.assignments, a)
		return
	}
	week := timewindow.WeekKey(date)

	w.hoursByWeek[week] += a.DurationHours
	if w.datesByWeek[week] == nil {
		w.datesByWeek[week] = make(map[string]bool)
	}
	w.datesByWeek[week][a.Date] = true
	w.assignments = append(w.assignments, a)
}

func (w *workload) hoursInWeek(week string) float64 {
	return w.hoursByWeek[week]
}

func (w *workload) daysInWeek(week string) int {
	return len(w.datesByWeek[week])
}

func (w *workload) workedOn(week, date string) bool {
	return w.datesByWeek[week][date]
}

func (w *workload) assignmentsOn(date string) []model.Assignment {
	var out []model.Assignment
	for _, a := range w.assignments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

func (w *workload) totalHours() float64 {
	total := 0.0
	for _, h := range w.hoursByWeek {
		total += h
	}
	return total
}

func (w *workload) totalDays() int {
	total := 0
	for _, dates := range w.datesByWeek {
		total += len(dates)
	}
	return total
}

// workloadTable maps caregiver ids to their per-run accumulators
type workloadTable struct {
	byCaregiver map[string]*workload
}

// newWorkloadTable seeds accumulators from assignments already on the
// books, so a run respects hours and days committed before it started.
// Rejected assignments do not consume capacity.
func newWorkloadTable(existing []model.Assignment) *workloadTable {
	table := &workloadTable{byCaregiver: make(map[string]*workload)}
	for _, a := range existing {
		if a.Status == model.AssignmentRejected {
			continue
		}
		table.get(a.CaregiverID).record(a)
	}
	return table
}

func (t *workloadTable) get(caregiverID string) *workload {
	w, ok := t.byCaregiver[caregiverID]
	if !ok {
		w = newWorkload()
		t.byCaregiver[caregiverID] = w
	}
	return w
}
