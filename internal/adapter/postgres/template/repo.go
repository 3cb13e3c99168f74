// Package template implements the weekly template repository using PostgreSQL.
package template

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkulagin/fencing-club-backend/internal/adapter/postgres"
	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

const insertSQL = `
INSERT INTO weekly_templates (weekday, start_time, duration_minutes, trainer_id, place, training_type, active)
VALUES ($1, $2::time, $3, $4, $5, $6, $7)
RETURNING id`

const selectSQL = `
SELECT id, weekday, TO_CHAR(start_time, 'HH24:MI'), duration_minutes, trainer_id, place, training_type, active
FROM weekly_templates`

// Repo provides weekly template persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new template repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Add validates and persists a new template, returning the generated id.
// Out-of-range weekday or non-positive duration is rejected with
// domain.ErrValidation before any write.
func (r *Repo) Add(ctx context.Context, tpl domain.WeeklyTemplate) (int64, error) {
	if err := tpl.Validate(); err != nil {
		return 0, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, insertSQL,
		tpl.Weekday, tpl.StartTime, tpl.DurationMinutes,
		tpl.TrainerID, tpl.Place, tpl.TrainingType, tpl.Active,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "weekly_template", 0)
	}

	return id, nil
}

// GetAll returns every template, active or not.
func (r *Repo) GetAll(ctx context.Context) ([]domain.WeeklyTemplate, error) {
	return r.query(ctx, selectSQL+" ORDER BY weekday, start_time, id")
}

// GetActive returns templates with active=true only.
func (r *Repo) GetActive(ctx context.Context) ([]domain.WeeklyTemplate, error) {
	return r.query(ctx, selectSQL+" WHERE active ORDER BY weekday, start_time, id")
}

func (r *Repo) query(ctx context.Context, sql string) ([]domain.WeeklyTemplate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query weekly_templates: %w", err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

func scanTemplates(rows pgx.Rows) ([]domain.WeeklyTemplate, error) {
	var tpls []domain.WeeklyTemplate
	for rows.Next() {
		var t domain.WeeklyTemplate
		if err := rows.Scan(&t.ID, &t.Weekday, &t.StartTime, &t.DurationMinutes,
			&t.TrainerID, &t.Place, &t.TrainingType, &t.Active); err != nil {
			return nil, fmt.Errorf("scan weekly_template: %w", err)
		}
		tpls = append(tpls, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly_templates: %w", err)
	}
	return tpls, nil
}
