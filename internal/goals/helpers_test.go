package goals_test

import (
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/catalog"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"

	"github.com/google/uuid"
)

const testOwnerID = "owner-rastko"

// a Wednesday at noon; the week window around it is Mar 16 - Mar 22
var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

var testMuscles = catalog.Index{
	"bench press": {Primary: "chest", Secondary: []string{"triceps", "front delts"}},
	"squat":       {Primary: "quads", Secondary: []string{"glutes"}},
	"deadlift":    {Primary: "back", Secondary: []string{"hamstrings", "glutes"}},
}

func trainingSession(completedAt time.Time, exercises ...sessions.ExerciseLog) sessions.Session {
	return sessions.Session{
		ID:          uuid.NewString(),
		OwnerID:     testOwnerID,
		CompletedAt: completedAt,
		Exercises:   exercises,
	}
}

func exerciseLog(name string, sets ...sessions.Set) sessions.ExerciseLog {
	return sessions.ExerciseLog{Name: name, Sets: sets}
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 18, 30, 0, 0, time.UTC)
}
