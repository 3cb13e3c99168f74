// Package changelog implements the schedule change-log repository using
// PostgreSQL. The log is append-only: there is no update or delete
// operation by design, to keep the audit trail trustworthy.
package changelog

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkulagin/fencing-club-backend/internal/adapter/postgres"
	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

const insertSQL = `
INSERT INTO schedule_change_log (training_id, admin_user_id, change_type, old_value, new_value, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

var selectBuilder = sq.
	Select("id", "training_id", "admin_user_id", "change_type", "old_value", "new_value", "created_at").
	From("schedule_change_log").
	OrderBy("created_at DESC", "id DESC").
	PlaceholderFormat(sq.Dollar)

// Repo provides change-log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new change-log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Add appends an entry and returns the generated id. The timestamp is
// assigned by the caller at mutation time, not by the store.
func (r *Repo) Add(ctx context.Context, entry domain.ChangeLogEntry) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	oldJSON, err := marshalValue(entry.OldValue)
	if err != nil {
		return 0, fmt.Errorf("change_log marshal old_value: %w", err)
	}
	newJSON, err := marshalValue(entry.NewValue)
	if err != nil {
		return 0, fmt.Errorf("change_log marshal new_value: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, insertSQL,
		entry.TrainingID, entry.AdminUserID, string(entry.ChangeType),
		oldJSON, newJSON, entry.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "change_log", 0)
	}

	return id, nil
}

// GetByTraining returns all entries for one instance, newest first.
func (r *Repo) GetByTraining(ctx context.Context, trainingID int64) ([]domain.ChangeLogEntry, error) {
	sql, args, err := selectBuilder.Where(sq.Eq{"training_id": trainingID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build change_log query: %w", err)
	}
	return r.query(ctx, sql, args)
}

// GetAll returns the most recent entries across all instances, newest
// first, bounded by limit.
func (r *Repo) GetAll(ctx context.Context, limit int) ([]domain.ChangeLogEntry, error) {
	sql, args, err := selectBuilder.Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build change_log query: %w", err)
	}
	return r.query(ctx, sql, args)
}

func (r *Repo) query(ctx context.Context, sql string, args []any) ([]domain.ChangeLogEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query change_log: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]domain.ChangeLogEntry, error) {
	var entries []domain.ChangeLogEntry
	for rows.Next() {
		var (
			e                domain.ChangeLogEntry
			changeType       string
			oldJSON, newJSON []byte
		)
		if err := rows.Scan(&e.ID, &e.TrainingID, &e.AdminUserID, &changeType,
			&oldJSON, &newJSON, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan change_log entry: %w", err)
		}
		e.ChangeType = domain.ChangeType(changeType)

		var err error
		if e.OldValue, err = unmarshalValue(oldJSON); err != nil {
			return nil, fmt.Errorf("change_log %d unmarshal old_value: %w", e.ID, err)
		}
		if e.NewValue, err = unmarshalValue(newJSON); err != nil {
			return nil, fmt.Errorf("change_log %d unmarshal new_value: %w", e.ID, err)
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate change_log: %w", err)
	}
	return entries, nil
}

// unmarshalValue deserializes a JSONB snapshot, mapping NULL to nil.
func unmarshalValue(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	m := make(map[string]any)
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// marshalValue serializes a snapshot map to JSONB, mapping nil to NULL.
func marshalValue(v map[string]any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
