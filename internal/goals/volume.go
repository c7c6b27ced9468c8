package goals

import (
	"strings"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/catalog"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
)

// VolumeProgress sums lifted load (weight x reps) over the sessions falling
// inside the goal's current period window, scoped to a single exercise or a
// muscle group where requested.
func VolumeProgress(
	target VolumeTarget,
	history []sessions.Session,
	muscles catalog.Index,
	now time.Time,
) Snapshot {
	periodStart, periodEnd := PeriodBounds(target.Period, now)

	var total float64
	for i := range history {
		session := &history[i]
		if !inWindow(session.CompletedAt, periodStart, periodEnd) {
			continue
		}
		for _, ex := range session.Exercises {
			if !volumeScopeIncludes(target, ex.Name, muscles) {
				continue
			}
			for _, set := range ex.Sets {
				total += set.Volume()
			}
		}
	}

	var percent float64
	if target.Target > 0 {
		percent = clampPercent(total / target.Target * 100)
	}

	expected := ExpectedProgress(periodStart, periodEnd, now)

	return Snapshot{
		CurrentValue:  total,
		Percent:       percent,
		Expected:      expected,
		Pacing:        PeriodPacing(percent, expected, periodStart, periodEnd, now),
		DaysRemaining: DaysRemaining(periodEnd, now),
	}
}

func volumeScopeIncludes(target VolumeTarget, exerciseName string, muscles catalog.Index) bool {
	switch target.Scope {
	case VolumeScopeExercise:
		return strings.EqualFold(exerciseName, target.ExerciseName)
	case VolumeScopeMuscleGroup:
		return muscles.Matches(exerciseName, target.MuscleGroup)
	default:
		return true
	}
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
