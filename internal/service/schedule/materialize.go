package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// GetInstancesForDate returns the trainings already stored for a date,
// without materializing anything.
func (s *Service) GetInstancesForDate(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error) {
	insts, err := s.instances.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get instances for date: %w", err)
	}
	return insts, nil
}

// BuildDailySchedule assembles the actual schedule for a day:
//  1. load the instances already stored for the date (manual additions,
//     moves, cancellations included) and note which template ids they
//     came from;
//  2. for every active template matching the date's weekday that is not
//     yet represented, materialize a planned instance;
//  3. return the union sorted by start time.
//
// Idempotent per (date, template): the represented set is recomputed
// from storage on every call, so a second call creates no duplicates.
// The whole step runs in one transaction under a per-date advisory
// lock, serializing concurrent materialization of the same day.
func (s *Service) BuildDailySchedule(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error) {
	var result []domain.TrainingInstance

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tx.LockKey(txCtx, "materialize:"+date.Format(time.DateOnly)); err != nil {
			return err
		}

		existing, err := s.instances.GetByDate(txCtx, date)
		if err != nil {
			return fmt.Errorf("get existing instances: %w", err)
		}

		represented := make(map[int64]struct{}, len(existing))
		for _, inst := range existing {
			if inst.SourceTemplateID != nil {
				represented[*inst.SourceTemplateID] = struct{}{}
			}
		}

		templates, err := s.templates.GetActive(txCtx)
		if err != nil {
			return fmt.Errorf("get active templates: %w", err)
		}

		weekday := domain.Weekday(date)
		created := 0
		for _, tpl := range templates {
			if tpl.Weekday != weekday {
				continue
			}
			if _, ok := represented[tpl.ID]; ok {
				continue
			}

			inst := domain.InstanceFromTemplate(tpl, date)
			id, err := s.instances.Add(txCtx, inst)
			if err != nil {
				return fmt.Errorf("materialize template %d: %w", tpl.ID, err)
			}
			inst.ID = id
			existing = append(existing, inst)
			created++
		}

		sortByStartTime(existing)
		result = existing

		if created > 0 {
			s.log.InfoContext(txCtx, "materialized schedule",
				slog.String("date", date.Format(time.DateOnly)),
				slog.Int("created", created),
				slog.Int("total", len(existing)),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func sortByStartTime(insts []domain.TrainingInstance) {
	sort.SliceStable(insts, func(i, j int) bool {
		if insts[i].StartTime != insts[j].StartTime {
			return insts[i].StartTime < insts[j].StartTime
		}
		return insts[i].ID < insts[j].ID
	})
}
