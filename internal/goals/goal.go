package goals

import (
	"errors"
	"time"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrNotOwner          = errors.New("goal not owned by caller")
	ErrInvalidTransition = errors.New("invalid goal status transition")
)

// Type is the closed set of goal kinds. Exactly one target payload on the
// Goal envelope corresponds to the type tag; calculators switch on it.
type Type string

const (
	TypeStrength  Type = "strength"
	TypeVolume    Type = "volume"
	TypeFrequency Type = "frequency"
	TypeStreak    Type = "streak"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStrength, TypeVolume, TypeFrequency, TypeStreak:
		return true
	default:
		return false
	}
}

// Status is the persisted lifecycle status. It is deliberately a separate
// type from PacingStatus: only Status drives transitions, PacingStatus is a
// display-time projection and is never stored.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusPaused    Status = "paused"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusFailed, StatusPaused:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the permitted lifecycle edges. Deletion is not a
// status, a goal in any status may be removed.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusActive:
		return to == StatusCompleted || to == StatusFailed || to == StatusPaused
	case StatusPaused:
		return to == StatusActive
	default:
		return false
	}
}

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func (p Period) IsValid() bool {
	return p == PeriodWeek || p == PeriodMonth
}

type VolumeScope string

const (
	VolumeScopeTotal       VolumeScope = "total"
	VolumeScopeExercise    VolumeScope = "exercise"
	VolumeScopeMuscleGroup VolumeScope = "muscle-group"
)

func (s VolumeScope) IsValid() bool {
	return s == VolumeScopeTotal || s == VolumeScopeExercise || s == VolumeScopeMuscleGroup
}

type FrequencyScope string

const (
	FrequencyScopeTotal       FrequencyScope = "total"
	FrequencyScopeMuscleGroup FrequencyScope = "muscle-group"
)

func (s FrequencyScope) IsValid() bool {
	return s == FrequencyScopeTotal || s == FrequencyScopeMuscleGroup
}

type StreakKind string

const (
	StreakDaily  StreakKind = "daily"
	StreakWeekly StreakKind = "weekly"
)

func (k StreakKind) IsValid() bool {
	return k == StreakDaily || k == StreakWeekly
}

// StrengthTarget aims for an estimated one rep max on a single exercise by a
// deadline. CurrentWeight is the owner's estimate at creation time and is kept
// for reference only, progress is always derived from the session history.
type StrengthTarget struct {
	ExerciseName  string    `json:"exerciseName"`
	TargetWeight  float64   `json:"targetWeight"`
	CurrentWeight float64   `json:"currentWeight"`
	StartDate     time.Time `json:"startDate"`
	Deadline      time.Time `json:"deadline"`
	Notes         string    `json:"notes,omitempty"`
}

// VolumeTarget aims for a total lifted load within the current period window.
type VolumeTarget struct {
	Scope        VolumeScope `json:"volumeType"`
	ExerciseName string      `json:"exerciseName,omitempty"`
	MuscleGroup  string      `json:"muscleGroup,omitempty"`
	Target       float64     `json:"target"`
	Period       Period      `json:"period"`
}

// FrequencyTarget aims for a number of sessions within the current period window.
type FrequencyTarget struct {
	Scope       FrequencyScope `json:"frequencyType"`
	MuscleGroup string         `json:"muscleGroup,omitempty"`
	TargetCount int            `json:"targetCount"`
	Period      Period         `json:"period"`
}

// StreakTarget aims for an unbroken run of training days or weeks.
// MaxRestDays bounds consecutive missed days, irrespective of week
// boundaries, and only applies to daily streaks.
type StreakTarget struct {
	Kind          StreakKind `json:"streakType"`
	TargetDays    int        `json:"targetDays,omitempty"`
	TargetWeeks   int        `json:"targetWeeks,omitempty"`
	AllowRestDays bool       `json:"allowRestDays"`
	MaxRestDays   int        `json:"maxRestDays,omitempty"`
}

// Goal is the persisted envelope. The payload matching the Type tag is set,
// the other three are nil.
type Goal struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"ownerId"`
	Type              Type      `json:"type"`
	Status            Status    `json:"status"`
	MilestonesReached []int     `json:"milestonesReached"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	Strength  *StrengthTarget  `json:"strength,omitempty"`
	Volume    *VolumeTarget    `json:"volume,omitempty"`
	Frequency *FrequencyTarget `json:"frequency,omitempty"`
	Streak    *StreakTarget    `json:"streak,omitempty"`
}

// HasDeadline reports whether the goal is deadline-bound. Only such goals can
// auto-fail when the deadline has passed.
func (g *Goal) HasDeadline() bool {
	return g.Type == TypeStrength && g.Strength != nil
}

// MilestoneReached reports whether the threshold is already persisted.
func (g *Goal) MilestoneReached(threshold int) bool {
	for _, m := range g.MilestonesReached {
		if m == threshold {
			return true
		}
	}
	return false
}
