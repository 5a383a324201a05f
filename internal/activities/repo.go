package activities

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

var ErrActivityNotFound = errors.New("activity not found")

type ActivityParams struct {
	Type string
	From *time.Time
	To   *time.Time
}

type ListParams struct {
	ActivityParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, activity Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO activity
				(type, distance_km, duration_seconds, avg_heart_rate, max_heart_rate,
				 pace_min_per_km, elevation_gain_meters, perceived_exertion, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id;`,
		activity.Type, activity.DistanceKm, activity.DurationSeconds,
		activity.AvgHeartRate, activity.MaxHeartRate, activity.PaceMinPerKm,
		activity.ElevationGainMeters, activity.PerceivedExertion, activity.Notes,
		activity.CreatedAt,
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

	span.SetAttributes(attribute.Int("activity.id", id))

	activity.ID = id
	return &activity, nil
}

func (r *Repo) Update(ctx context.Context, activity *Activity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", activity.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE activity SET
			type = $1, distance_km = $2, duration_seconds = $3, avg_heart_rate = $4,
			max_heart_rate = $5, pace_min_per_km = $6, elevation_gain_meters = $7,
			perceived_exertion = $8, notes = $9, created_at = $10
		WHERE id = $11;`,
		activity.Type, activity.DistanceKm, activity.DurationSeconds,
		activity.AvgHeartRate, activity.MaxHeartRate, activity.PaceMinPerKm,
		activity.ElevationGainMeters, activity.PerceivedExertion, activity.Notes,
		activity.CreatedAt, activity.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM activity WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, type, distance_km, duration_seconds, avg_heart_rate, max_heart_rate,
				pace_min_per_km, elevation_gain_meters, perceived_exertion, notes, created_at
			FROM activity
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

	found, err := r.rows2activities(rows)
	if err != nil {
		return nil, err
	}

	if len(found) != 1 {
		return nil, ErrActivityNotFound
	}

	return &found[0], nil
}

// ListAll returns all activities matching the given params, newest first.
func (r *Repo) ListAll(ctx context.Context, params ActivityParams) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", params.Type))
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
				id, type, distance_km, duration_seconds, avg_heart_rate, max_heart_rate,
				pace_min_per_km, elevation_gain_meters, perceived_exertion, notes, created_at
			FROM activity
				WHERE ($1::text = '' OR type ILIKE '%' || $1 || '%')
				AND ($2::timestamp IS NULL OR created_at >= $2)
				AND ($3::timestamp IS NULL OR created_at <= $3)
			ORDER BY created_at DESC;`,
		params.Type, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	found, err := r.rows2activities(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2activities: %w", err)
	}
	return found, nil
}

// List is like ListAll, but returns the specific PAGE of activities,
// i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Activity, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("type", params.Type))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.ActivitiesCount(ctx, params.ActivityParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, type, distance_km, duration_seconds, avg_heart_rate, max_heart_rate,
				pace_min_per_km, elevation_gain_meters, perceived_exertion, notes, created_at
			FROM activity
				WHERE ($1::text = '' OR type ILIKE '%' || $1 || '%')
				AND ($2::timestamp IS NULL OR created_at >= $2)
				AND ($3::timestamp IS NULL OR created_at <= $3)
			ORDER BY created_at DESC
			LIMIT $4
			OFFSET $5;`,
		params.Type, params.From, params.To,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	found, err := r.rows2activities(rows)
	if err != nil {
		return nil, -1, err
	}
	return found, countAll, nil
}

func (r *Repo) ActivitiesCount(ctx context.Context, params ActivityParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM activity
			WHERE ($1::text = '' OR type ILIKE '%' || $1 || '%')
			AND ($2::timestamp IS NULL OR created_at >= $2)
			AND ($3::timestamp IS NULL OR created_at <= $3);
	`,
		params.Type, params.From, params.To,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get activities count")
}

func (r *Repo) rows2activities(rows pgx.Rows) ([]Activity, error) {
	var found []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(
			&a.ID, &a.Type, &a.DistanceKm, &a.DurationSeconds,
			&a.AvgHeartRate, &a.MaxHeartRate, &a.PaceMinPerKm,
			&a.ElevationGainMeters, &a.PerceivedExertion, &a.Notes, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, a)
	}

	if found == nil {
		found = make([]Activity, 0)
	}

	return found, nil
}
