package services

import (
	"time"

	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// planningWindow returns the inclusive date range starting today and
// covering the given number of weeks
func planningWindow(now time.Time, weeks int) (string, string) {
	if weeks < 1 {
		weeks = 1
	}
	from := now.Format(timewindow.DateLayout)
	to := now.AddDate(0, 0, weeks*7-1).Format(timewindow.DateLayout)
	return from, to
}
