package logs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymstreak/internal/telemetry/tracing"
	"github.com/2beens/gymstreak/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrLogNotFound = errors.New("workout log not found")
	ErrLogExists   = errors.New("workout log already exists")
)

const Schema = `
CREATE TABLE IF NOT EXISTS workout_log (
	id              UUID PRIMARY KEY,
	user_id         TEXT NOT NULL,
	exercise_id     TEXT NOT NULL,
	muscle_group    TEXT NOT NULL DEFAULT '',
	workout_instant TIMESTAMPTZ NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS workout_log_user_id_idx ON workout_log (user_id, workout_instant DESC);
`

type ListParams struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type Repo struct {
	db *pgxpool.Pool
	// ability to inject the id generator (for unit and dev testing)
	NewIDFunc func() string
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:        db,
		NewIDFunc: uuid.NewString,
	}
}

func (r *Repo) EnsureSchema(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.logs.schema")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create workout_log schema: %w", err)
	}
	return nil
}

func (r *Repo) Add(ctx context.Context, workoutLog WorkoutLog) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.logs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", workoutLog.UserID))

	if workoutLog.ID == "" {
		workoutLog.ID = r.NewIDFunc()
	}
	id, err := uuid.Parse(workoutLog.ID)
	if err != nil {
		return nil, fmt.Errorf("parse log id [%s]: %w", workoutLog.ID, err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_log
				(id, user_id, exercise_id, muscle_group, workout_instant)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at;`,
		id, workoutLog.UserID, workoutLog.ExerciseID, workoutLog.MuscleGroup, workoutLog.WorkoutInstant,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrLogExists
		}
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			if pkg.IsUniqueViolationError(err) {
				return nil, ErrLogExists
			}
			return nil, err
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	if err := rows.Scan(&workoutLog.CreatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.String("log.id", workoutLog.ID))

	return &workoutLog, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.logs.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	logID, err := uuid.Parse(id)
	if err != nil {
		return ErrLogNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_log WHERE id = $1`, logID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

// ListByUser returns all workout logs for a user, most recent first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]WorkoutLog, error) {
	return r.List(ctx, ListParams{UserID: userID})
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.logs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id::text, user_id, exercise_id, muscle_group, workout_instant, created_at
			FROM workout_log
				WHERE user_id = $1
				AND ($2::timestamptz IS NULL OR workout_instant >= $2)
				AND ($3::timestamptz IS NULL OR workout_instant <= $3)
			ORDER BY workout_instant DESC;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	workoutLogs, err := rows2logs(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2logs: %w", err)
	}

	span.SetAttributes(attribute.Int("logs.count", len(workoutLogs)))

	return workoutLogs, nil
}

func rows2logs(rows pgx.Rows) ([]WorkoutLog, error) {
	workoutLogs := make([]WorkoutLog, 0)
	for rows.Next() {
		var l WorkoutLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.ExerciseID, &l.MuscleGroup, &l.WorkoutInstant, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.WorkoutInstant = l.WorkoutInstant.UTC()
		workoutLogs = append(workoutLogs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workoutLogs, nil
}
