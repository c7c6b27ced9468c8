package goals

import (
	"sort"
	"strings"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
)

// the Epley estimate is only considered reliable for this rep range
const (
	epleyMinReps = 1
	epleyMaxReps = 15
)

// Epley estimates the one rep max from a single set: weight x (1 + reps/30).
func Epley(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// StrengthProgress builds a chronological per-session series of estimated one
// rep maxes for the target exercise and measures progress of the maximum of
// that series against the target weight. The maximum (a personal-record
// semantic) is used instead of the most recent estimate: a bad last session
// must not erase progress already proven.
func StrengthProgress(target StrengthTarget, history []sessions.Session, now time.Time) Snapshot {
	series := OneRepMaxSeries(target.ExerciseName, history)

	var current float64
	for _, estimate := range series {
		if estimate > current {
			current = estimate
		}
	}

	var percent float64
	if target.TargetWeight > 0 {
		percent = clampPercent(current / target.TargetWeight * 100)
	}

	expected := ExpectedProgress(target.StartDate, target.Deadline, now)
	daysRemaining := DaysRemaining(target.Deadline, now)

	return Snapshot{
		CurrentValue:  current,
		Percent:       percent,
		Expected:      expected,
		Pacing:        DeadlinePacing(percent, expected, daysRemaining),
		DaysRemaining: daysRemaining,
		Trend:         EstimateTrend(series),
	}
}

// OneRepMaxSeries returns one Epley estimate per session containing the
// exercise, oldest session first. Per session the best set (the one
// maximizing weight x reps, within the reliable rep range) is used; sessions
// with no usable set contribute no point.
func OneRepMaxSeries(exerciseName string, history []sessions.Session) []float64 {
	ordered := make([]sessions.Session, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CompletedAt.Before(ordered[j].CompletedAt)
	})

	var series []float64
	for _, session := range ordered {
		best, ok := bestSetOfSession(&session, exerciseName)
		if !ok {
			continue
		}
		series = append(series, Epley(best.Weight, best.Reps))
	}
	return series
}

// BestOneRepMax is the maximum of the series, 0 when the exercise was never
// performed. The validator uses it as the history-derived current estimate.
func BestOneRepMax(exerciseName string, history []sessions.Session) float64 {
	var best float64
	for _, estimate := range OneRepMaxSeries(exerciseName, history) {
		if estimate > best {
			best = estimate
		}
	}
	return best
}

func bestSetOfSession(session *sessions.Session, exerciseName string) (sessions.Set, bool) {
	var best sessions.Set
	found := false
	for _, ex := range session.Exercises {
		if !strings.EqualFold(ex.Name, exerciseName) {
			continue
		}
		for _, set := range ex.Sets {
			if set.Reps < epleyMinReps || set.Reps > epleyMaxReps || set.Weight <= 0 {
				continue
			}
			if !found || set.Volume() > best.Volume() {
				best = set
				found = true
			}
		}
	}
	return best, found
}
