// Package instance implements the training instance repository using PostgreSQL.
// Instances are never deleted; mutations go through full-row Update.
package instance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkulagin/fencing-club-backend/internal/adapter/postgres"
	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

const columns = `id, date, TO_CHAR(start_time, 'HH24:MI'), duration_minutes, trainer_id,
       place, training_type, source_template_id, status, comment`

const insertSQL = `
INSERT INTO training_instances
    (date, start_time, duration_minutes, trainer_id, place, training_type, source_template_id, status, comment)
VALUES ($1, $2::time, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

const getByDateSQL = `
SELECT ` + columns + `
FROM training_instances
WHERE date = $1
ORDER BY start_time, id`

const getByIDSQL = `
SELECT ` + columns + `
FROM training_instances
WHERE id = $1`

const updateSQL = `
UPDATE training_instances
SET date = $2, start_time = $3::time, duration_minutes = $4, trainer_id = $5,
    place = $6, training_type = $7, source_template_id = $8, status = $9, comment = $10
WHERE id = $1`

// Repo provides training instance persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new instance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Add inserts a new instance and returns the generated id.
func (r *Repo) Add(ctx context.Context, inst domain.TrainingInstance) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, insertSQL,
		inst.Date, inst.StartTime, inst.DurationMinutes, inst.TrainerID,
		inst.Place, inst.TrainingType, inst.SourceTemplateID,
		string(inst.Status), nullable(inst.Comment),
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "training_instance", 0)
	}

	return id, nil
}

// GetByDate returns all instances for a calendar date, ordered by start time.
func (r *Repo) GetByDate(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getByDateSQL, date)
	if err != nil {
		return nil, fmt.Errorf("get instances by date: %w", err)
	}
	defer rows.Close()

	return scanInstances(rows)
}

// GetByID returns an instance by primary key, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.TrainingInstance, error) {
	return r.getByID(ctx, id, getByIDSQL)
}

// GetByIDForUpdate is GetByID with a row lock. It must run inside a
// transaction; the lock serializes concurrent mutations of one instance
// for the whole read-modify-write-log sequence.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id int64) (domain.TrainingInstance, error) {
	return r.getByID(ctx, id, getByIDSQL+" FOR UPDATE")
}

func (r *Repo) getByID(ctx context.Context, id int64, sql string) (domain.TrainingInstance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		inst    domain.TrainingInstance
		status  string
		comment *string
	)
	err := q.QueryRow(ctx, sql, id).Scan(
		&inst.ID, &inst.Date, &inst.StartTime, &inst.DurationMinutes, &inst.TrainerID,
		&inst.Place, &inst.TrainingType, &inst.SourceTemplateID, &status, &comment,
	)
	if err != nil {
		return domain.TrainingInstance{}, postgres.MapError(err, "training_instance", id)
	}

	inst.Status = domain.InstanceStatus(status)
	if comment != nil {
		inst.Comment = *comment
	}
	return inst, nil
}

// Update replaces the full row identified by inst.ID.
// Returns domain.ErrNotFound if the id does not exist.
func (r *Repo) Update(ctx context.Context, inst domain.TrainingInstance) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateSQL,
		inst.ID, inst.Date, inst.StartTime, inst.DurationMinutes, inst.TrainerID,
		inst.Place, inst.TrainingType, inst.SourceTemplateID,
		string(inst.Status), nullable(inst.Comment),
	)
	if err != nil {
		return postgres.MapError(err, "training_instance", inst.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("training_instance %d: %w", inst.ID, domain.ErrNotFound)
	}

	return nil
}

func scanInstances(rows pgx.Rows) ([]domain.TrainingInstance, error) {
	var insts []domain.TrainingInstance
	for rows.Next() {
		var (
			inst    domain.TrainingInstance
			status  string
			comment *string
		)
		if err := rows.Scan(
			&inst.ID, &inst.Date, &inst.StartTime, &inst.DurationMinutes, &inst.TrainerID,
			&inst.Place, &inst.TrainingType, &inst.SourceTemplateID, &status, &comment,
		); err != nil {
			return nil, fmt.Errorf("scan training_instance: %w", err)
		}
		inst.Status = domain.InstanceStatus(status)
		if comment != nil {
			inst.Comment = *comment
		}
		insts = append(insts, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training_instances: %w", err)
	}
	return insts, nil
}

// nullable maps an empty comment to NULL so ad-hoc SQL reads stay clean.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
