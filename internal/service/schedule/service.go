// Package schedule implements the scheduling engine: materializing a
// day's trainings from the weekly template and applying administrative
// mutations, each of which produces exactly one change-log entry.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkulagin/fencing-club-backend/internal/config"
	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type templateRepo interface {
	Add(ctx context.Context, tpl domain.WeeklyTemplate) (int64, error)
	GetAll(ctx context.Context) ([]domain.WeeklyTemplate, error)
	GetActive(ctx context.Context) ([]domain.WeeklyTemplate, error)
}

type instanceRepo interface {
	Add(ctx context.Context, inst domain.TrainingInstance) (int64, error)
	GetByDate(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error)
	GetByID(ctx context.Context, id int64) (domain.TrainingInstance, error)
	GetByIDForUpdate(ctx context.Context, id int64) (domain.TrainingInstance, error)
	Update(ctx context.Context, inst domain.TrainingInstance) error
}

type changeLogRepo interface {
	Add(ctx context.Context, entry domain.ChangeLogEntry) (int64, error)
	GetByTraining(ctx context.Context, trainingID int64) ([]domain.ChangeLogEntry, error)
	GetAll(ctx context.Context, limit int) ([]domain.ChangeLogEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockKey(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

// Service is the schedule engine. It is the only component that writes
// training instances or change-log entries.
type Service struct {
	templates templateRepo
	instances instanceRepo
	changes   changeLogRepo
	tx        txManager
	log       *slog.Logger

	// defaultLimit is the change-log feed page size when the caller
	// passes no limit.
	defaultLimit int

	// now supplies change-log timestamps; injectable for deterministic tests.
	now func() time.Time
}

// NewService creates a new schedule Service.
func NewService(log *slog.Logger, templates templateRepo, instances instanceRepo, changes changeLogRepo, tx txManager, cfg config.ScheduleConfig) *Service {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	return &Service{
		templates:    templates,
		instances:    instances,
		changes:      changes,
		tx:           tx,
		log:          log.With("service", "schedule"),
		defaultLimit: limit,
		now:          time.Now,
	}
}

// appendLog writes the single change-log entry for one mutation. It runs
// inside the mutation's transaction, so a failed log write rolls the
// whole mutation back: an applied update is never left unaudited.
func (s *Service) appendLog(ctx context.Context, trainingID, adminID int64, changeType domain.ChangeType, oldValue, newValue map[string]any) error {
	_, err := s.changes.Add(ctx, domain.ChangeLogEntry{
		TrainingID:  trainingID,
		AdminUserID: adminID,
		ChangeType:  changeType,
		OldValue:    oldValue,
		NewValue:    newValue,
		Timestamp:   s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("append change log: %w", err)
	}
	return nil
}
