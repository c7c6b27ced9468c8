package goals_test

import (
	"testing"

	"github.com/bohdan-kov/Obsessed-sub003/internal/goals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, goals.StatusActive.CanTransitionTo(goals.StatusCompleted))
	assert.True(t, goals.StatusActive.CanTransitionTo(goals.StatusFailed))
	assert.True(t, goals.StatusActive.CanTransitionTo(goals.StatusPaused))
	assert.True(t, goals.StatusPaused.CanTransitionTo(goals.StatusActive))

	// terminal states
	assert.False(t, goals.StatusCompleted.CanTransitionTo(goals.StatusActive))
	assert.False(t, goals.StatusFailed.CanTransitionTo(goals.StatusActive))
	assert.False(t, goals.StatusCompleted.CanTransitionTo(goals.StatusPaused))

	assert.False(t, goals.StatusPaused.CanTransitionTo(goals.StatusCompleted))
	assert.False(t, goals.StatusActive.CanTransitionTo(goals.StatusActive))
}

func TestGoalHasDeadline(t *testing.T) {
	strength := &goals.Goal{Type: goals.TypeStrength, Strength: &goals.StrengthTarget{}}
	assert.True(t, strength.HasDeadline())

	assert.False(t, (&goals.Goal{Type: goals.TypeVolume, Volume: &goals.VolumeTarget{}}).HasDeadline())
	assert.False(t, (&goals.Goal{Type: goals.TypeStreak, Streak: &goals.StreakTarget{}}).HasDeadline())
}

func TestGoalMilestoneReached(t *testing.T) {
	goal := &goals.Goal{MilestonesReached: []int{25, 50}}
	assert.True(t, goal.MilestoneReached(25))
	assert.True(t, goal.MilestoneReached(50))
	assert.False(t, goal.MilestoneReached(75))
}

func TestProgress_DispatchesOnType(t *testing.T) {
	goal := &goals.Goal{
		ID:   "g1",
		Type: goals.TypeStreak,
		Streak: &goals.StreakTarget{
			Kind:       goals.StreakDaily,
			TargetDays: 3,
		},
	}
	history := sessionsOnDays(17, 18)

	snapshot, err := goals.Progress(goal, history, testMuscles, testNow)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Streak)
	assert.Equal(t, 2, snapshot.Streak.Current)
}

func TestProgress_MissingPayload(t *testing.T) {
	_, err := goals.Progress(&goals.Goal{ID: "g1", Type: goals.TypeStrength}, nil, testMuscles, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing strength target")

	_, err = goals.Progress(&goals.Goal{ID: "g1", Type: "cardio"}, nil, testMuscles, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}
