package calculator

import (
	"time"

	"github.com/mmynk/spendwise/internal/models"
)

// WindowStart returns the inclusive start of the rolling window
// [start, now] for a budget duration.
//
// Boundaries are exact instants, not midnights. Month and year steps use
// time.AddDate, so a day that does not exist in the target month
// normalizes forward (March 31 minus one month is March 2 or 3).
// An unknown duration yields an empty window starting at now.
func WindowStart(now time.Time, duration models.Duration) time.Time {
	switch duration {
	case models.DurationWeekly:
		return now.AddDate(0, 0, -7)
	case models.DurationMonthly:
		return now.AddDate(0, -1, 0)
	case models.DurationYearly:
		return now.AddDate(-1, 0, 0)
	default:
		return now
	}
}
