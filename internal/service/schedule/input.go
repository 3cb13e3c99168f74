package schedule

import (
	"time"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// CancelInput holds the parameters for canceling a training.
type CancelInput struct {
	InstanceID int64
	AdminID    int64
	Reason     string
}

// Validate checks all fields and collects all errors.
func (i *CancelInput) Validate() error {
	var errs []domain.FieldError

	if i.InstanceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "instance_id", Message: "required"})
	}
	if i.AdminID <= 0 {
		errs = append(errs, domain.FieldError{Field: "admin_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddExtraInput holds the parameters for adding a one-off training.
type AddExtraInput struct {
	Date            time.Time
	StartTime       string
	DurationMinutes int
	TrainerID       int64
	Place           string
	TrainingType    string
	AdminID         int64
	Comment         string
}

// Validate checks all fields and collects all errors.
func (i *AddExtraInput) Validate() error {
	var errs []domain.FieldError

	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}
	if !domain.ValidClock(i.StartTime) {
		errs = append(errs, domain.FieldError{Field: "start_time", Message: "must be HH:MM"})
	}
	if i.DurationMinutes <= 0 {
		errs = append(errs, domain.FieldError{Field: "duration_minutes", Message: "must be positive"})
	}
	if i.TrainerID <= 0 {
		errs = append(errs, domain.FieldError{Field: "trainer_id", Message: "required"})
	}
	if i.Place == "" {
		errs = append(errs, domain.FieldError{Field: "place", Message: "required"})
	}
	if i.TrainingType == "" {
		errs = append(errs, domain.FieldError{Field: "training_type", Message: "required"})
	}
	if i.AdminID <= 0 {
		errs = append(errs, domain.FieldError{Field: "admin_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MoveInput holds the parameters for relocating a training.
type MoveInput struct {
	InstanceID      int64
	NewTime         string
	DurationMinutes int
	NewTrainerID    int64
	NewPlace        string
	AdminID         int64
	Comment         string
}

// Validate checks all fields and collects all errors.
func (i *MoveInput) Validate() error {
	var errs []domain.FieldError

	if i.InstanceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "instance_id", Message: "required"})
	}
	if !domain.ValidClock(i.NewTime) {
		errs = append(errs, domain.FieldError{Field: "new_time", Message: "must be HH:MM"})
	}
	if i.DurationMinutes <= 0 {
		errs = append(errs, domain.FieldError{Field: "duration_minutes", Message: "must be positive"})
	}
	if i.NewTrainerID <= 0 {
		errs = append(errs, domain.FieldError{Field: "new_trainer_id", Message: "required"})
	}
	if i.NewPlace == "" {
		errs = append(errs, domain.FieldError{Field: "new_place", Message: "required"})
	}
	if i.AdminID <= 0 {
		errs = append(errs, domain.FieldError{Field: "admin_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ChangeTrainerInput holds the parameters for reassigning a trainer.
type ChangeTrainerInput struct {
	InstanceID int64
	TrainerID  int64
	AdminID    int64
}

// Validate checks all fields and collects all errors.
func (i *ChangeTrainerInput) Validate() error {
	var errs []domain.FieldError

	if i.InstanceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "instance_id", Message: "required"})
	}
	if i.TrainerID <= 0 {
		errs = append(errs, domain.FieldError{Field: "trainer_id", Message: "required"})
	}
	if i.AdminID <= 0 {
		errs = append(errs, domain.FieldError{Field: "admin_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ChangeTimeInput holds the parameters for rescheduling a training in place.
type ChangeTimeInput struct {
	InstanceID      int64
	NewTime         string
	DurationMinutes int
	AdminID         int64
}

// Validate checks all fields and collects all errors.
func (i *ChangeTimeInput) Validate() error {
	var errs []domain.FieldError

	if i.InstanceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "instance_id", Message: "required"})
	}
	if !domain.ValidClock(i.NewTime) {
		errs = append(errs, domain.FieldError{Field: "new_time", Message: "must be HH:MM"})
	}
	if i.DurationMinutes <= 0 {
		errs = append(errs, domain.FieldError{Field: "duration_minutes", Message: "must be positive"})
	}
	if i.AdminID <= 0 {
		errs = append(errs, domain.FieldError{Field: "admin_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
