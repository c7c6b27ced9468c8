package catalog

import (
	"errors"
	"strings"
)

var ErrExerciseNotFound = errors.New("exercise not found in catalog")

// Muscles describes which muscles an exercise works.
type Muscles struct {
	Primary   string   `json:"primaryMuscle"`
	Secondary []string `json:"secondaryMuscles"`
}

// Works reports whether the exercise works the given muscle group,
// either as its primary or one of its secondary muscles.
func (m Muscles) Works(muscleGroup string) bool {
	if strings.EqualFold(m.Primary, muscleGroup) {
		return true
	}
	for _, secondary := range m.Secondary {
		if strings.EqualFold(secondary, muscleGroup) {
			return true
		}
	}
	return false
}

// Index is a point-in-time snapshot of the whole catalog, keyed by lowercased
// exercise name. The goal store prefetches one and hands it to the progress
// calculators, which keeps them free of I/O.
type Index map[string]Muscles

func (ix Index) Lookup(exerciseName string) (Muscles, bool) {
	m, ok := ix[strings.ToLower(exerciseName)]
	return m, ok
}

// Matches reports whether the named exercise works the given muscle group.
// Unknown exercises match nothing.
func (ix Index) Matches(exerciseName, muscleGroup string) bool {
	m, ok := ix.Lookup(exerciseName)
	if !ok {
		return false
	}
	return m.Works(muscleGroup)
}
