package goals

import (
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
)

const (
	dailyStreakWindowDays   = 365
	weeklyStreakWindowWeeks = 52
)

const dayKeyLayout = "2006-01-02"

// StreakProgress measures the current unbroken run of training days (or
// Monday-start weeks) against the target. The walk goes backward from now
// through the full window, so the longest streak inside the window is
// computed as well.
func StreakProgress(target StreakTarget, history []sessions.Session, now time.Time) Snapshot {
	var stats StreakStats
	var targetUnits, daysRemaining int

	switch target.Kind {
	case StreakWeekly:
		stats = weeklyStreak(history, now)
		targetUnits = target.TargetWeeks
		daysRemaining = maxInt(targetUnits-stats.Current, 0) * 7
	default:
		stats = dailyStreak(history, now, target.AllowRestDays, target.MaxRestDays)
		targetUnits = target.TargetDays
		daysRemaining = maxInt(targetUnits-stats.Current, 0)
	}

	var percent float64
	if targetUnits > 0 {
		percent = clampPercent(float64(stats.Current) / float64(targetUnits) * 100)
	}

	// streaks carry no time-based expectation, only broken or not
	pacing := PacingOnPace
	if percent >= 100 {
		pacing = PacingAchieved
	}

	return Snapshot{
		CurrentValue:  float64(stats.Current),
		Percent:       percent,
		Expected:      percent,
		Pacing:        pacing,
		DaysRemaining: daysRemaining,
		Streak:        &stats,
	}
}

// dailyStreak walks backward day by day. A day with no session is a
// transparent grace day while the consecutive-miss count stays within
// maxRestDays (when rest days are allowed at all); one miss beyond that
// breaks the run. The rest-day cap deliberately tracks consecutive misses
// irrespective of week boundaries.
func dailyStreak(history []sessions.Session, now time.Time, allowRestDays bool, maxRestDays int) StreakStats {
	trained := make(map[string]bool, len(history))
	for i := range history {
		trained[history[i].CompletedAt.In(now.Location()).Format(dayKeyLayout)] = true
	}

	var current, longest, run, misses int
	currentSet := false

	for i := 0; i < dailyStreakWindowDays; i++ {
		day := now.AddDate(0, 0, -i)
		if trained[day.Format(dayKeyLayout)] {
			run++
			misses = 0
			continue
		}

		misses++
		if allowRestDays && misses <= maxRestDays {
			continue
		}

		// the run breaks; a break at the very start of the walk means the
		// current streak is 0
		if !currentSet {
			current = run
			currentSet = true
		}
		if run > longest {
			longest = run
		}
		run = 0
		misses = 0
	}

	if !currentSet {
		current = run
	}
	if run > longest {
		longest = run
	}

	return StreakStats{Current: current, Longest: longest}
}

// weeklyStreak walks backward Monday-start week by week; a week counts when
// it contains at least one session. No rest allowance exists at week level.
func weeklyStreak(history []sessions.Session, now time.Time) StreakStats {
	trainedWeeks := make(map[string]bool, len(history))
	for i := range history {
		weekStart, _ := PeriodBounds(PeriodWeek, history[i].CompletedAt.In(now.Location()))
		trainedWeeks[weekStart.Format(dayKeyLayout)] = true
	}

	thisWeekStart, _ := PeriodBounds(PeriodWeek, now)

	var current, longest, run int
	currentSet := false

	for i := 0; i < weeklyStreakWindowWeeks; i++ {
		weekStart := thisWeekStart.AddDate(0, 0, -7*i)
		if trainedWeeks[weekStart.Format(dayKeyLayout)] {
			run++
			continue
		}

		if !currentSet {
			current = run
			currentSet = true
		}
		if run > longest {
			longest = run
		}
		run = 0
	}

	if !currentSet {
		current = run
	}
	if run > longest {
		longest = run
	}

	return StreakStats{Current: current, Longest: longest}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
