package domain

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekday_MondayIsZero(t *testing.T) {
	t.Parallel()

	// 2024-06-03 is a Monday, 2024-06-09 is a Sunday.
	if got := Weekday(date(2024, time.June, 3)); got != 0 {
		t.Errorf("Monday: got %d, want 0", got)
	}
	if got := Weekday(date(2024, time.June, 5)); got != 2 {
		t.Errorf("Wednesday: got %d, want 2", got)
	}
	if got := Weekday(date(2024, time.June, 9)); got != 6 {
		t.Errorf("Sunday: got %d, want 6", got)
	}
}

func TestValidClock(t *testing.T) {
	t.Parallel()

	valid := []string{"00:00", "09:30", "20:00", "23:59"}
	for _, s := range valid {
		if !ValidClock(s) {
			t.Errorf("ValidClock(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "noon", "12:30:00"}
	for _, s := range invalid {
		if ValidClock(s) {
			t.Errorf("ValidClock(%q) = true, want false", s)
		}
	}
}

func TestWeeklyTemplate_Validate(t *testing.T) {
	t.Parallel()

	tpl := WeeklyTemplate{
		Weekday:         0,
		StartTime:       "20:00",
		DurationMinutes: 90,
		TrainerID:       101,
		Place:           "Hall A",
		TrainingType:    "Foil",
		Active:          true,
	}
	if err := tpl.Validate(); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	bad := tpl
	bad.Weekday = 7
	bad.DurationMinutes = 0
	err := bad.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(vErr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(vErr.Errors), vErr.Errors)
	}
}

func TestInstanceFromTemplate(t *testing.T) {
	t.Parallel()

	tpl := WeeklyTemplate{
		ID:              7,
		Weekday:         0,
		StartTime:       "20:00",
		DurationMinutes: 90,
		TrainerID:       101,
		Place:           "Hall A",
		TrainingType:    "Foil",
		Active:          true,
	}
	d := date(2024, time.June, 3)

	inst := InstanceFromTemplate(tpl, d)

	if inst.Status != StatusPlanned {
		t.Errorf("status: got %s, want planned", inst.Status)
	}
	if inst.SourceTemplateID == nil || *inst.SourceTemplateID != 7 {
		t.Errorf("source template id: got %v, want 7", inst.SourceTemplateID)
	}
	if !inst.Date.Equal(d) || inst.StartTime != "20:00" || inst.DurationMinutes != 90 {
		t.Errorf("fields not copied verbatim: %+v", inst)
	}
	if inst.TrainerID != 101 || inst.Place != "Hall A" || inst.TrainingType != "Foil" {
		t.Errorf("fields not copied verbatim: %+v", inst)
	}
}

func TestMovedCopy(t *testing.T) {
	t.Parallel()

	srcID := int64(7)
	orig := TrainingInstance{
		ID:               5,
		Date:             date(2024, time.June, 3),
		StartTime:        "20:00",
		DurationMinutes:  90,
		TrainerID:        101,
		Place:            "Hall A",
		TrainingType:     "Foil",
		SourceTemplateID: &srcID,
		Status:           StatusPlanned,
		Comment:          "original note",
	}

	cp := orig.MovedCopy("18:30", 60, 202, "Hall B")

	if cp.ID != 0 {
		t.Errorf("copy must be unpersisted, got id %d", cp.ID)
	}
	if cp.SourceTemplateID != nil {
		t.Error("moved copy must not reference a template")
	}
	if cp.Status != StatusMoved {
		t.Errorf("status: got %s, want moved", cp.Status)
	}
	if cp.TrainingType != "Foil" {
		t.Errorf("training type must carry over, got %q", cp.TrainingType)
	}
	if cp.StartTime != "18:30" || cp.DurationMinutes != 60 || cp.TrainerID != 202 || cp.Place != "Hall B" {
		t.Errorf("new slot fields not applied: %+v", cp)
	}
	if !cp.Date.Equal(orig.Date) {
		t.Errorf("date must carry over, got %v", cp.Date)
	}
	if cp.Comment != "" {
		t.Errorf("copy comment must start empty, got %q", cp.Comment)
	}
}

func TestSnapshot_StableKeys(t *testing.T) {
	t.Parallel()

	srcID := int64(7)
	inst := TrainingInstance{
		ID:               5,
		Date:             date(2024, time.June, 3),
		StartTime:        "20:00",
		DurationMinutes:  90,
		TrainerID:        101,
		Place:            "Hall A",
		TrainingType:     "Foil",
		SourceTemplateID: &srcID,
		Status:           StatusPlanned,
	}

	snap := inst.Snapshot()

	want := map[string]any{
		"id":                 int64(5),
		"date":               "2024-06-03",
		"start_time":         "20:00",
		"duration_minutes":   90,
		"trainer_id":         int64(101),
		"place":              "Hall A",
		"training_type":      "Foil",
		"source_template_id": int64(7),
		"status":             "planned",
		"comment":            "",
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("snapshot[%q]: got %v (%T), want %v (%T)", k, snap[k], snap[k], v, v)
		}
	}
	if len(snap) != len(want) {
		t.Errorf("snapshot has %d keys, want %d", len(snap), len(want))
	}

	inst.SourceTemplateID = nil
	if v := inst.Snapshot()["source_template_id"]; v != nil {
		t.Errorf("nil source template id must snapshot as nil, got %v", v)
	}
}
