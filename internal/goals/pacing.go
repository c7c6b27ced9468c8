package goals

import (
	"math"
	"time"
)

// PacingStatus is derived on every evaluation and never persisted. It must
// not be confused with Status: auto-transitions read only the persisted
// lifecycle status.
type PacingStatus string

const (
	// deadline-bound goals
	PacingCompleted PacingStatus = "completed"
	PacingOnTrack   PacingStatus = "on-track"

	// period-bound goals
	PacingAchieved PacingStatus = "achieved"
	PacingOnPace   PacingStatus = "on-pace"

	// shared
	PacingAhead  PacingStatus = "ahead"
	PacingBehind PacingStatus = "behind"
	PacingAtRisk PacingStatus = "at-risk"
)

// ExpectedProgress linearly interpolates where progress should be between
// start and end, clamped to [0,100].
func ExpectedProgress(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(start)
	return clampPercent(float64(elapsed) / float64(total) * 100)
}

// DeadlinePacing classifies progress of a deadline-bound goal.
func DeadlinePacing(current, expected float64, daysRemaining int) PacingStatus {
	switch {
	case current >= 100:
		return PacingCompleted
	case daysRemaining < 14 && current < 80:
		return PacingAtRisk
	case current > expected+10:
		return PacingAhead
	case current < expected-10:
		return PacingBehind
	default:
		return PacingOnTrack
	}
}

// PeriodPacing classifies progress of a period-bound goal against the elapsed
// fraction of the period. Thresholds are tighter than the deadline rule since
// a period is at most a month: ahead above expected+5, behind below
// expected-10, at risk when under 20% of the period remains with progress
// still below 80.
func PeriodPacing(current, expected float64, periodStart, periodEnd, now time.Time) PacingStatus {
	if current >= 100 {
		return PacingAchieved
	}

	total := periodEnd.Sub(periodStart)
	remaining := periodEnd.Sub(now)
	if total > 0 && remaining > 0 && float64(remaining)/float64(total) < 0.2 && current < 80 {
		return PacingAtRisk
	}

	switch {
	case current > expected+5:
		return PacingAhead
	case current < expected-10:
		return PacingBehind
	default:
		return PacingOnPace
	}
}

// PeriodBounds resolves the period window containing ref: Monday 00:00:00
// through Sunday 23:59:59 for a week, first through last calendar day for a
// month. Bounds are in ref's location.
func PeriodBounds(period Period, ref time.Time) (start, end time.Time) {
	switch period {
	case PeriodMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	default: // week
		daysSinceMonday := (int(ref.Weekday()) + 6) % 7
		start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).
			AddDate(0, 0, -daysSinceMonday)
		end = start.AddDate(0, 0, 7).Add(-time.Second)
	}
	return start, end
}

// DaysRemaining counts days from now until the given moment, rounded up.
// Never negative.
func DaysRemaining(until, now time.Time) int {
	remaining := until.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
