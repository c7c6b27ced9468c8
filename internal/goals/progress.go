package goals

import (
	"fmt"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/catalog"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
)

// Snapshot is the derived progress state of a goal. It is recomputed from the
// goal and the session history on every evaluation and never persisted.
type Snapshot struct {
	CurrentValue  float64      `json:"currentValue"`
	Percent       float64      `json:"progressPercent"`
	Expected      float64      `json:"expectedProgress"`
	Pacing        PacingStatus `json:"pacingStatus"`
	DaysRemaining int          `json:"daysRemaining"`

	// strength goals only
	Trend *Trend `json:"trend,omitempty"`
	// streak goals only
	Streak *StreakStats `json:"streak,omitempty"`
}

type StreakStats struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Progress dispatches to the calculator matching the goal's type tag. The
// muscle index is only consulted by muscle-group scoped goals; history is
// assumed chronologically orderable, nothing else.
func Progress(
	goal *Goal,
	history []sessions.Session,
	muscles catalog.Index,
	now time.Time,
) (Snapshot, error) {
	switch goal.Type {
	case TypeStrength:
		if goal.Strength == nil {
			return Snapshot{}, fmt.Errorf("goal %s: missing strength target", goal.ID)
		}
		return StrengthProgress(*goal.Strength, history, now), nil
	case TypeVolume:
		if goal.Volume == nil {
			return Snapshot{}, fmt.Errorf("goal %s: missing volume target", goal.ID)
		}
		return VolumeProgress(*goal.Volume, history, muscles, now), nil
	case TypeFrequency:
		if goal.Frequency == nil {
			return Snapshot{}, fmt.Errorf("goal %s: missing frequency target", goal.ID)
		}
		return FrequencyProgress(*goal.Frequency, history, muscles, now), nil
	case TypeStreak:
		if goal.Streak == nil {
			return Snapshot{}, fmt.Errorf("goal %s: missing streak target", goal.ID)
		}
		return StreakProgress(*goal.Streak, history, now), nil
	default:
		return Snapshot{}, fmt.Errorf("goal %s: unknown type %q", goal.ID, goal.Type)
	}
}
