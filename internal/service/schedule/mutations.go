package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// Every mutation follows one protocol inside a single transaction:
// lock and load the instance, snapshot the old state, apply the change,
// persist, snapshot the new state, append exactly one change-log entry.
// A miss on load is domain.ErrNotFound and nothing is written.

// Cancel marks a training as canceled and stores the reason as its comment.
func (s *Service) Cancel(ctx context.Context, input CancelInput) (domain.TrainingInstance, error) {
	if err := input.Validate(); err != nil {
		return domain.TrainingInstance{}, err
	}

	var updated domain.TrainingInstance
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inst, err := s.instances.GetByIDForUpdate(txCtx, input.InstanceID)
		if err != nil {
			return fmt.Errorf("get instance: %w", err)
		}

		old := inst.Snapshot()
		inst.Status = domain.StatusCanceled
		inst.Comment = input.Reason

		if err := s.instances.Update(txCtx, inst); err != nil {
			return fmt.Errorf("update instance: %w", err)
		}

		if err := s.appendLog(txCtx, inst.ID, input.AdminID, domain.ChangeCanceled, old, inst.Snapshot()); err != nil {
			return err
		}

		updated = inst
		return nil
	})
	if err != nil {
		return domain.TrainingInstance{}, err
	}

	s.log.InfoContext(ctx, "training canceled",
		slog.Int64("instance_id", updated.ID),
		slog.Int64("admin_id", input.AdminID),
	)
	return updated, nil
}

// AddExtra creates a one-off training not backed by any template and
// logs it with change_type "added" (old value is nil: nothing existed
// before).
func (s *Service) AddExtra(ctx context.Context, input AddExtraInput) (domain.TrainingInstance, error) {
	if err := input.Validate(); err != nil {
		return domain.TrainingInstance{}, err
	}

	inst := domain.TrainingInstance{
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		TrainerID:       input.TrainerID,
		Place:           input.Place,
		TrainingType:    input.TrainingType,
		Status:          domain.StatusExtra,
		Comment:         input.Comment,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.instances.Add(txCtx, inst)
		if err != nil {
			return fmt.Errorf("add instance: %w", err)
		}
		inst.ID = id

		return s.appendLog(txCtx, inst.ID, input.AdminID, domain.ChangeAdded, nil, inst.Snapshot())
	})
	if err != nil {
		return domain.TrainingInstance{}, err
	}

	s.log.InfoContext(ctx, "extra training added",
		slog.Int64("instance_id", inst.ID),
		slog.Int64("admin_id", input.AdminID),
	)
	return inst, nil
}

// Move relocates a training by creating an independent copy with the new
// slot fields and flipping the original's status to "moved". The
// original row keeps all its other fields (comment included) as a marker
// of where the session used to be; the two rows are linked only through
// the log entry's old/new snapshots, written against the new id.
func (s *Service) Move(ctx context.Context, input MoveInput) (domain.TrainingInstance, error) {
	if err := input.Validate(); err != nil {
		return domain.TrainingInstance{}, err
	}

	var moved domain.TrainingInstance
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		orig, err := s.instances.GetByIDForUpdate(txCtx, input.InstanceID)
		if err != nil {
			return fmt.Errorf("get instance: %w", err)
		}

		old := orig.Snapshot()

		cp := orig.MovedCopy(input.NewTime, input.DurationMinutes, input.NewTrainerID, input.NewPlace)
		cp.Comment = input.Comment

		id, err := s.instances.Add(txCtx, cp)
		if err != nil {
			return fmt.Errorf("add moved copy: %w", err)
		}
		cp.ID = id

		orig.Status = domain.StatusMoved
		if err := s.instances.Update(txCtx, orig); err != nil {
			return fmt.Errorf("update original: %w", err)
		}

		if err := s.appendLog(txCtx, cp.ID, input.AdminID, domain.ChangeMoved, old, cp.Snapshot()); err != nil {
			return err
		}

		moved = cp
		return nil
	})
	if err != nil {
		return domain.TrainingInstance{}, err
	}

	s.log.InfoContext(ctx, "training moved",
		slog.Int64("from_instance_id", input.InstanceID),
		slog.Int64("to_instance_id", moved.ID),
		slog.Int64("admin_id", input.AdminID),
	)
	return moved, nil
}

// ChangeTrainer reassigns the trainer of a training in place.
func (s *Service) ChangeTrainer(ctx context.Context, input ChangeTrainerInput) (domain.TrainingInstance, error) {
	if err := input.Validate(); err != nil {
		return domain.TrainingInstance{}, err
	}

	var updated domain.TrainingInstance
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inst, err := s.instances.GetByIDForUpdate(txCtx, input.InstanceID)
		if err != nil {
			return fmt.Errorf("get instance: %w", err)
		}

		old := inst.Snapshot()
		inst.TrainerID = input.TrainerID

		if err := s.instances.Update(txCtx, inst); err != nil {
			return fmt.Errorf("update instance: %w", err)
		}

		if err := s.appendLog(txCtx, inst.ID, input.AdminID, domain.ChangeTrainerChanged, old, inst.Snapshot()); err != nil {
			return err
		}

		updated = inst
		return nil
	})
	if err != nil {
		return domain.TrainingInstance{}, err
	}

	s.log.InfoContext(ctx, "trainer changed",
		slog.Int64("instance_id", updated.ID),
		slog.Int64("trainer_id", input.TrainerID),
		slog.Int64("admin_id", input.AdminID),
	)
	return updated, nil
}

// ChangeTime reschedules a training's start time and duration in place.
func (s *Service) ChangeTime(ctx context.Context, input ChangeTimeInput) (domain.TrainingInstance, error) {
	if err := input.Validate(); err != nil {
		return domain.TrainingInstance{}, err
	}

	var updated domain.TrainingInstance
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inst, err := s.instances.GetByIDForUpdate(txCtx, input.InstanceID)
		if err != nil {
			return fmt.Errorf("get instance: %w", err)
		}

		old := inst.Snapshot()
		inst.StartTime = input.NewTime
		inst.DurationMinutes = input.DurationMinutes

		if err := s.instances.Update(txCtx, inst); err != nil {
			return fmt.Errorf("update instance: %w", err)
		}

		if err := s.appendLog(txCtx, inst.ID, input.AdminID, domain.ChangeTimeChanged, old, inst.Snapshot()); err != nil {
			return err
		}

		updated = inst
		return nil
	})
	if err != nil {
		return domain.TrainingInstance{}, err
	}

	s.log.InfoContext(ctx, "training time changed",
		slog.Int64("instance_id", updated.ID),
		slog.String("new_time", input.NewTime),
		slog.Int64("admin_id", input.AdminID),
	)
	return updated, nil
}
