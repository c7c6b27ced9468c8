package goals

import (
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/catalog"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
)

// FrequencyProgress counts sessions inside the goal's current period window.
// For muscle-group goals a session only counts when it contains at least one
// exercise working the target muscle group.
func FrequencyProgress(
	target FrequencyTarget,
	history []sessions.Session,
	muscles catalog.Index,
	now time.Time,
) Snapshot {
	periodStart, periodEnd := PeriodBounds(target.Period, now)

	count := 0
	for i := range history {
		session := &history[i]
		if !inWindow(session.CompletedAt, periodStart, periodEnd) {
			continue
		}
		if target.Scope == FrequencyScopeMuscleGroup && !sessionWorksMuscleGroup(session, target.MuscleGroup, muscles) {
			continue
		}
		count++
	}

	var percent float64
	if target.TargetCount > 0 {
		percent = clampPercent(float64(count) / float64(target.TargetCount) * 100)
	}

	expected := ExpectedProgress(periodStart, periodEnd, now)

	return Snapshot{
		CurrentValue:  float64(count),
		Percent:       percent,
		Expected:      expected,
		Pacing:        PeriodPacing(percent, expected, periodStart, periodEnd, now),
		DaysRemaining: DaysRemaining(periodEnd, now),
	}
}

func sessionWorksMuscleGroup(session *sessions.Session, muscleGroup string, muscles catalog.Index) bool {
	for _, ex := range session.Exercises {
		if muscles.Matches(ex.Name, muscleGroup) {
			return true
		}
	}
	return false
}
