package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
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

func (r *Repo) Get(ctx context.Context, exerciseName string) (_ *Muscles, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exerciseName))

	muscles := &Muscles{}
	err = r.db.
		QueryRow(ctx, `
			SELECT primary_muscle, secondary_muscles
			FROM exercise_catalog
			WHERE lower(name) = lower($1)
		`, exerciseName).
		Scan(&muscles.Primary, &muscles.Secondary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return muscles, nil
}

// Index loads the full catalog in one go.
func (r *Repo) Index(ctx context.Context) (_ Index, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.index")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT name, primary_muscle, secondary_muscles
		FROM exercise_catalog;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(Index)
	for rows.Next() {
		var name string
		var muscles Muscles
		if err := rows.Scan(&name, &muscles.Primary, &muscles.Secondary); err != nil {
			return nil, err
		}
		index[strings.ToLower(name)] = muscles
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("catalog.size", len(index)))
	return index, nil
}
