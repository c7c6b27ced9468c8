package sessions

import (
	"context"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListCompleted returns every completed session of the owner, oldest first,
// with exercises and sets attached.
func (r *Repo) ListCompleted(ctx context.Context, ownerID string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.listcompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner.id", ownerID))

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.completed_at, e.name, st.weight, st.reps
		FROM training_session s
			JOIN session_exercise e ON e.session_id = s.id
			JOIN exercise_set st ON st.session_exercise_id = e.id
		WHERE s.owner_id = $1 AND s.status = 'completed'
		ORDER BY s.completed_at ASC, s.id, e.position, st.position;
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Session
	for rows.Next() {
		var (
			sessionID    string
			completedAt  time.Time
			exerciseName string
			set          Set
		)
		if err := rows.Scan(&sessionID, &completedAt, &exerciseName, &set.Weight, &set.Reps); err != nil {
			return nil, err
		}

		if len(result) == 0 || result[len(result)-1].ID != sessionID {
			result = append(result, Session{
				ID:          sessionID,
				OwnerID:     ownerID,
				CompletedAt: completedAt.UTC(),
			})
		}
		session := &result[len(result)-1]

		if len(session.Exercises) == 0 || session.Exercises[len(session.Exercises)-1].Name != exerciseName {
			session.Exercises = append(session.Exercises, ExerciseLog{Name: exerciseName})
		}
		exercise := &session.Exercises[len(session.Exercises)-1]
		exercise.Sets = append(exercise.Sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sessions.count", len(result)))
	return result, nil
}
