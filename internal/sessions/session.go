package sessions

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Session is a completed training session, read-only for the goals engine.
// Sessions arrive already validated and are never mutated here.
type Session struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"ownerId"`
	CompletedAt time.Time     `json:"completedAt"`
	Exercises   []ExerciseLog `json:"exercises"`
}

type ExerciseLog struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// Volume is the total load of the set.
func (s Set) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// HasExercise reports whether the session contains the named exercise.
// Names are matched case-insensitively, the mobile clients are not
// consistent about casing.
func (s *Session) HasExercise(name string) bool {
	for _, ex := range s.Exercises {
		if strings.EqualFold(ex.Name, name) {
			return true
		}
	}
	return false
}

// Volume sums weight x reps over every set of every exercise in the session.
func (s *Session) Volume() float64 {
	var total float64
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			total += set.Volume()
		}
	}
	return total
}

// Timestamp is the canonical time type at the ingestion boundary. The clients
// and the remote store historically sent completion times as RFC3339 strings,
// plain dates, or unix milliseconds; everything is normalized to UTC here so
// that no calculator ever has to branch on the representation.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		return nil
	}

	if !strings.HasPrefix(raw, `"`) {
		// unix milliseconds
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", raw, err)
		}
		t.Time = time.UnixMilli(millis).UTC()
		return nil
	}

	str := strings.Trim(raw, `"`)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		parsed, err := time.Parse(layout, str)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format: %q", str)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Time.UTC().Format(time.RFC3339))), nil
}

// CompletedEvent is the payload published on the session-completed feed.
type CompletedEvent struct {
	SessionID   string    `json:"sessionId"`
	OwnerID     string    `json:"ownerId"`
	CompletedAt Timestamp `json:"completedAt"`
}
