package domain

import (
	"time"
)

// ClockLayout is the wire and storage format for times of day.
const ClockLayout = "15:04"

// Weekday maps t's weekday to the 0=Monday..6=Sunday numbering used by
// weekly templates (Go's time.Weekday starts at Sunday).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ValidClock reports whether s is a 24-hour "HH:MM" time of day.
func ValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil && len(s) == len(ClockLayout)
}

// WeeklyTemplate is a recurring session definition tied to a weekday,
// not to a calendar date. Templates are deactivated, never deleted, so
// materialized instances can keep referencing them by id.
type WeeklyTemplate struct {
	ID              int64
	Weekday         int // 0=Monday .. 6=Sunday
	StartTime       string
	DurationMinutes int
	TrainerID       int64
	Place           string
	TrainingType    string
	Active          bool
}

// Validate checks all fields and collects all errors.
func (t *WeeklyTemplate) Validate() error {
	var errs []FieldError

	if t.Weekday < 0 || t.Weekday > 6 {
		errs = append(errs, FieldError{Field: "weekday", Message: "must be between 0 (Monday) and 6 (Sunday)"})
	}
	if !ValidClock(t.StartTime) {
		errs = append(errs, FieldError{Field: "start_time", Message: "must be HH:MM"})
	}
	if t.DurationMinutes <= 0 {
		errs = append(errs, FieldError{Field: "duration_minutes", Message: "must be positive"})
	}
	if t.TrainerID <= 0 {
		errs = append(errs, FieldError{Field: "trainer_id", Message: "required"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// TrainingInstance is a concrete calendar-dated session. It is either
// materialized from a weekly template (SourceTemplateID set) or created
// ad hoc by an admin (SourceTemplateID nil).
type TrainingInstance struct {
	ID               int64
	Date             time.Time // date component only
	StartTime        string
	DurationMinutes  int
	TrainerID        int64
	Place            string
	TrainingType     string
	SourceTemplateID *int64
	Status           InstanceStatus
	Comment          string
}

// InstanceFromTemplate materializes a template for a concrete date.
func InstanceFromTemplate(t WeeklyTemplate, date time.Time) TrainingInstance {
	id := t.ID
	return TrainingInstance{
		Date:             date,
		StartTime:        t.StartTime,
		DurationMinutes:  t.DurationMinutes,
		TrainerID:        t.TrainerID,
		Place:            t.Place,
		TrainingType:     t.TrainingType,
		SourceTemplateID: &id,
		Status:           StatusPlanned,
	}
}

// MovedCopy builds the relocated twin of an instance: same date and
// training type, new slot fields. The copy is always one-off, so it
// carries no source template id.
func (i TrainingInstance) MovedCopy(newTime string, newDuration int, newTrainer int64, newPlace string) TrainingInstance {
	return TrainingInstance{
		Date:             i.Date,
		StartTime:        newTime,
		DurationMinutes:  newDuration,
		TrainerID:        newTrainer,
		Place:            newPlace,
		TrainingType:     i.TrainingType,
		SourceTemplateID: nil,
		Status:           StatusMoved,
	}
}

// Snapshot returns a flat field map of the instance for change-log
// old/new values. Keys mirror the storage column names and stay stable
// even if the struct layout changes.
func (i TrainingInstance) Snapshot() map[string]any {
	snap := map[string]any{
		"id":               i.ID,
		"date":             i.Date.Format(time.DateOnly),
		"start_time":       i.StartTime,
		"duration_minutes": i.DurationMinutes,
		"trainer_id":       i.TrainerID,
		"place":            i.Place,
		"training_type":    i.TrainingType,
		"status":           string(i.Status),
		"comment":          i.Comment,
	}
	if i.SourceTemplateID != nil {
		snap["source_template_id"] = *i.SourceTemplateID
	} else {
		snap["source_template_id"] = nil
	}
	return snap
}
