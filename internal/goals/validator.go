package goals

import (
	"fmt"
	"strings"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/catalog"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
)

// realistic strength gain heuristic: ~5% of the current estimate per 4 weeks,
// with some slack on top before a goal is called ambitious
const (
	strengthGainPctPer4Weeks = 0.05
	strengthGainSafetyFactor = 1.5
	volumeJumpWarnFactor     = 1.5
	weeklyFrequencyWarnLimit = 7
)

// ValidationError carries every reason a goal was rejected at creation.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "goal validation failed: " + strings.Join(e.Reasons, "; ")
}

// Warning is advisory only and never blocks goal creation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the prospective goal against the domain rules. Hard
// violations come back as a *ValidationError; feasibility concerns derived
// from the owner's history come back as warnings alongside a nil error.
func (v *Validator) Validate(
	goal *Goal,
	history []sessions.Session,
	muscles catalog.Index,
	now time.Time,
) ([]Warning, error) {
	var reasons []string
	var warnings []Warning

	if !goal.Type.IsValid() {
		return nil, &ValidationError{Reasons: []string{fmt.Sprintf("unknown goal type %q", goal.Type)}}
	}

	switch goal.Type {
	case TypeStrength:
		reasons, warnings = v.validateStrength(goal.Strength, history, now)
	case TypeVolume:
		reasons, warnings = v.validateVolume(goal.Volume, history, muscles, now)
	case TypeFrequency:
		reasons, warnings = v.validateFrequency(goal.Frequency)
	case TypeStreak:
		reasons = v.validateStreak(goal.Streak)
	}

	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}
	return warnings, nil
}

func (v *Validator) validateStrength(
	target *StrengthTarget,
	history []sessions.Session,
	now time.Time,
) (reasons []string, warnings []Warning) {
	if target == nil {
		return []string{"strength target missing"}, nil
	}

	if target.ExerciseName == "" {
		reasons = append(reasons, "exercise name required")
	}
	if target.TargetWeight <= 0 {
		reasons = append(reasons, "target weight must be positive")
	}
	if target.Deadline.IsZero() {
		reasons = append(reasons, "deadline required")
	} else if !target.Deadline.After(now) {
		reasons = append(reasons, "deadline must be in the future")
	}
	if !target.StartDate.IsZero() && !target.Deadline.IsZero() && !target.Deadline.After(target.StartDate) {
		reasons = append(reasons, "deadline must be after the start date")
	}

	best := BestOneRepMax(target.ExerciseName, history)
	if best > 0 && target.TargetWeight <= best {
		reasons = append(reasons, fmt.Sprintf(
			"target weight %.1f must exceed the current estimated 1RM of %.1f",
			target.TargetWeight, best,
		))
	}

	if len(reasons) > 0 {
		return reasons, nil
	}

	// feasibility: how much gain does the deadline leave room for
	base := best
	if base == 0 {
		base = target.CurrentWeight
	}
	if base > 0 {
		weeksAvailable := target.Deadline.Sub(now).Hours() / (24 * 7)
		allowedGain := base * strengthGainPctPer4Weeks * (weeksAvailable / 4) * strengthGainSafetyFactor
		if target.TargetWeight-base > allowedGain {
			warnings = append(warnings, Warning{
				Code: "ambitious-strength-gain",
				Message: fmt.Sprintf(
					"a gain of %.1f kilos in %.0f weeks is above the usual pace, consider a later deadline",
					target.TargetWeight-base, weeksAvailable,
				),
			})
		}
	}

	return nil, warnings
}

func (v *Validator) validateVolume(
	target *VolumeTarget,
	history []sessions.Session,
	muscles catalog.Index,
	now time.Time,
) (reasons []string, warnings []Warning) {
	if target == nil {
		return []string{"volume target missing"}, nil
	}

	if !target.Scope.IsValid() {
		reasons = append(reasons, fmt.Sprintf("unknown volume type %q", target.Scope))
	}
	if target.Scope == VolumeScopeExercise && target.ExerciseName == "" {
		reasons = append(reasons, "exercise name required for exercise-scoped volume goals")
	}
	if target.Scope == VolumeScopeMuscleGroup && target.MuscleGroup == "" {
		reasons = append(reasons, "muscle group required for muscle-group-scoped volume goals")
	}
	if target.Target <= 0 {
		reasons = append(reasons, "volume target must be positive")
	}
	if !target.Period.IsValid() {
		reasons = append(reasons, fmt.Sprintf("unknown period %q", target.Period))
	}

	if len(reasons) > 0 {
		return reasons, nil
	}

	// compare against the previous full period as the current baseline
	previousPeriodStart, _ := PeriodBounds(target.Period, now)
	baselineSnapshot := VolumeProgress(*target, history, muscles, previousPeriodStart.Add(-time.Second))
	if baseline := baselineSnapshot.CurrentValue; baseline > 0 && target.Target > baseline*volumeJumpWarnFactor {
		warnings = append(warnings, Warning{
			Code: "volume-jump",
			Message: fmt.Sprintf(
				"target volume %.0f is more than 50%% above the last period's %.0f",
				target.Target, baseline,
			),
		})
	}

	return nil, warnings
}

func (v *Validator) validateFrequency(target *FrequencyTarget) (reasons []string, warnings []Warning) {
	if target == nil {
		return []string{"frequency target missing"}, nil
	}

	if !target.Scope.IsValid() {
		reasons = append(reasons, fmt.Sprintf("unknown frequency type %q", target.Scope))
	}
	if target.Scope == FrequencyScopeMuscleGroup && target.MuscleGroup == "" {
		reasons = append(reasons, "muscle group required for muscle-group-scoped frequency goals")
	}
	if target.TargetCount <= 0 {
		reasons = append(reasons, "target count must be positive")
	}
	if !target.Period.IsValid() {
		reasons = append(reasons, fmt.Sprintf("unknown period %q", target.Period))
	}

	if len(reasons) > 0 {
		return reasons, nil
	}

	weeklyEquivalent := target.TargetCount
	if target.Period == PeriodMonth {
		weeklyEquivalent = (target.TargetCount + 3) / 4
	}
	if weeklyEquivalent > weeklyFrequencyWarnLimit {
		warnings = append(warnings, Warning{
			Code:    "overtraining-risk",
			Message: fmt.Sprintf("more than %d sessions per week risks overtraining", weeklyFrequencyWarnLimit),
		})
	}

	return nil, warnings
}

func (v *Validator) validateStreak(target *StreakTarget) (reasons []string) {
	if target == nil {
		return []string{"streak target missing"}
	}

	switch target.Kind {
	case StreakDaily:
		if target.TargetDays <= 0 {
			reasons = append(reasons, "target days must be positive")
		}
	case StreakWeekly:
		if target.TargetWeeks <= 0 {
			reasons = append(reasons, "target weeks must be positive")
		}
		if target.AllowRestDays {
			reasons = append(reasons, "rest days only apply to daily streaks")
		}
	default:
		reasons = append(reasons, fmt.Sprintf("unknown streak type %q", target.Kind))
	}

	if target.AllowRestDays && target.MaxRestDays <= 0 {
		reasons = append(reasons, "max rest days must be positive when rest days are allowed")
	}

	return reasons
}
