package schedule

import (
	"context"
	"fmt"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// History returns the change log for one training instance, newest first.
func (s *Service) History(ctx context.Context, trainingID int64) ([]domain.ChangeLogEntry, error) {
	if trainingID <= 0 {
		return nil, domain.NewValidationError("training_id", "required")
	}

	entries, err := s.changes.GetByTraining(ctx, trainingID)
	if err != nil {
		return nil, fmt.Errorf("get change log: %w", err)
	}
	return entries, nil
}

// RecentChanges returns the latest change-log entries across all
// trainings, newest first. A non-positive limit falls back to the
// default; oversized limits are clamped.
func (s *Service) RecentChanges(ctx context.Context, limit int) ([]domain.ChangeLogEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := s.changes.GetAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent changes: %w", err)
	}
	return entries, nil
}
