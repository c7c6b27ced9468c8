package goals_test

import (
	"testing"

	"github.com/bohdan-kov/Obsessed-sub003/internal/goals"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyProgress_TotalWeekly(t *testing.T) {
	target := goals.FrequencyTarget{
		Scope:       goals.FrequencyScopeTotal,
		TargetCount: 4,
		Period:      goals.PeriodWeek,
	}
	history := []sessions.Session{
		trainingSession(day(2026, 3, 16), exerciseLog("squat", sessions.Set{Weight: 100, Reps: 5})),
		trainingSession(day(2026, 3, 17), exerciseLog("bench press", sessions.Set{Weight: 80, Reps: 8})),
		trainingSession(day(2026, 3, 18), exerciseLog("deadlift", sessions.Set{Weight: 140, Reps: 5})),
		// previous week
		trainingSession(day(2026, 3, 13), exerciseLog("squat", sessions.Set{Weight: 100, Reps: 5})),
	}

	snapshot := goals.FrequencyProgress(target, history, testMuscles, testNow)

	assert.InDelta(t, 3, snapshot.CurrentValue, 0.0001)
	assert.InDelta(t, 75, snapshot.Percent, 0.0001)
	assert.Equal(t, goals.PacingAhead, snapshot.Pacing)
	assert.Equal(t, 5, snapshot.DaysRemaining)
}

func TestFrequencyProgress_CappedWhenOverTarget(t *testing.T) {
	target := goals.FrequencyTarget{
		Scope:       goals.FrequencyScopeTotal,
		TargetCount: 2,
		Period:      goals.PeriodWeek,
	}
	history := []sessions.Session{
		trainingSession(day(2026, 3, 16), exerciseLog("squat", sessions.Set{Weight: 100, Reps: 5})),
		trainingSession(day(2026, 3, 17), exerciseLog("squat", sessions.Set{Weight: 100, Reps: 5})),
		trainingSession(day(2026, 3, 18), exerciseLog("squat", sessions.Set{Weight: 100, Reps: 5})),
	}

	snapshot := goals.FrequencyProgress(target, history, testMuscles, testNow)

	assert.InDelta(t, 3, snapshot.CurrentValue, 0.0001)
	assert.InDelta(t, 100, snapshot.Percent, 0.0001)
	assert.Equal(t, goals.PacingAchieved, snapshot.Pacing)
}

func TestFrequencyProgress_MuscleGroupScoped(t *testing.T) {
	target := goals.FrequencyTarget{
		Scope:       goals.FrequencyScopeMuscleGroup,
		MuscleGroup: "glutes",
		TargetCount: 3,
		Period:      goals.PeriodWeek,
	}
	history := []sessions.Session{
		// squat works glutes as a secondary muscle
		trainingSession(day(2026, 3, 16), exerciseLog("squat", sessions.Set{Weight: 100, Reps: 5})),
		// bench press does not
		trainingSession(day(2026, 3, 17), exerciseLog("bench press", sessions.Set{Weight: 80, Reps: 8})),
		trainingSession(day(2026, 3, 18), exerciseLog("deadlift", sessions.Set{Weight: 140, Reps: 5})),
	}

	snapshot := goals.FrequencyProgress(target, history, testMuscles, testNow)

	assert.InDelta(t, 2, snapshot.CurrentValue, 0.0001)
	assert.InDelta(t, 66.66, snapshot.Percent, 0.01)
}

func TestFrequencyProgress_EmptyHistory(t *testing.T) {
	target := goals.FrequencyTarget{
		Scope:       goals.FrequencyScopeTotal,
		TargetCount: 4,
		Period:      goals.PeriodWeek,
	}

	snapshot := goals.FrequencyProgress(target, nil, testMuscles, testNow)

	assert.Zero(t, snapshot.CurrentValue)
	assert.Zero(t, snapshot.Percent)
	assert.Equal(t, goals.PacingBehind, snapshot.Pacing)
}
