package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrGoalNotFound = errors.New("goal not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO goal
				(type, title, target_date, target_distance, target_time, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		goal.Type, goal.Title, goal.TargetDate, goal.TargetDistance, goal.TargetTime, goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("goal.id", id))

	goal.ID = id
	return &goal, nil
}

func (r *Repo) Update(ctx context.Context, goal *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", goal.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE goal SET
			type = $1, title = $2, target_date = $3, target_distance = $4, target_time = $5
		WHERE id = $6;`,
		goal.Type, goal.Title, goal.TargetDate, goal.TargetDistance, goal.TargetTime, goal.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM goal WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, type, title, target_date, target_distance, target_time, created_at
			FROM goal
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	found, err := r.rows2goals(rows)
	if err != nil {
		return nil, err
	}

	if len(found) != 1 {
		return nil, ErrGoalNotFound
	}

	return &found[0], nil
}

// GetActive returns the next upcoming goal by target date.
func (r *Repo) GetActive(ctx context.Context, now time.Time) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.getactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, type, title, target_date, target_distance, target_time, created_at
			FROM goal
			WHERE target_date >= $1
			ORDER BY target_date ASC
			LIMIT 1;`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	found, err := r.rows2goals(rows)
	if err != nil {
		return nil, err
	}

	if len(found) != 1 {
		return nil, ErrGoalNotFound
	}

	return &found[0], nil
}

func (r *Repo) ListAll(ctx context.Context) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, type, title, target_date, target_distance, target_time, created_at
			FROM goal
			ORDER BY target_date ASC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	found, err := r.rows2goals(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2goals: %w", err)
	}
	return found, nil
}

func (r *Repo) rows2goals(rows pgx.Rows) ([]Goal, error) {
	var found []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(
			&g.ID, &g.Type, &g.Title, &g.TargetDate,
			&g.TargetDistance, &g.TargetTime, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, g)
	}

	if found == nil {
		found = make([]Goal, 0)
	}

	return found, nil
}
