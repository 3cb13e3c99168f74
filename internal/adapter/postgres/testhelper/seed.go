package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedTemplate inserts a weekly template directly into the DB.
// Zero-valued fields get sensible defaults. Returns the filled template.
func SeedTemplate(t *testing.T, pool *pgxpool.Pool, tpl domain.WeeklyTemplate) domain.WeeklyTemplate {
	t.Helper()
	ctx := context.Background()

	if tpl.StartTime == "" {
		tpl.StartTime = "18:00"
	}
	if tpl.DurationMinutes == 0 {
		tpl.DurationMinutes = 90
	}
	if tpl.TrainerID == 0 {
		tpl.TrainerID = 1
	}
	if tpl.Place == "" {
		tpl.Place = "Hall " + UniqueSuffix()
	}
	if tpl.TrainingType == "" {
		tpl.TrainingType = "sabre"
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO weekly_templates (weekday, start_time, duration_minutes, trainer_id, place, training_type, active)
		 VALUES ($1, $2::time, $3, $4, $5, $6, $7)
		 RETURNING id`,
		tpl.Weekday, tpl.StartTime, tpl.DurationMinutes, tpl.TrainerID, tpl.Place, tpl.TrainingType, tpl.Active,
	).Scan(&tpl.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedTemplate insert: %v", err)
	}

	return tpl
}

// SeedInstance inserts a training instance directly into the DB.
// Zero-valued fields get sensible defaults. Returns the filled instance.
func SeedInstance(t *testing.T, pool *pgxpool.Pool, inst domain.TrainingInstance) domain.TrainingInstance {
	t.Helper()
	ctx := context.Background()

	if inst.Date.IsZero() {
		inst.Date = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	}
	if inst.StartTime == "" {
		inst.StartTime = "18:00"
	}
	if inst.DurationMinutes == 0 {
		inst.DurationMinutes = 90
	}
	if inst.TrainerID == 0 {
		inst.TrainerID = 1
	}
	if inst.Place == "" {
		inst.Place = "Hall " + UniqueSuffix()
	}
	if inst.TrainingType == "" {
		inst.TrainingType = "sabre"
	}
	if inst.Status == "" {
		inst.Status = domain.StatusPlanned
	}

	var comment *string
	if inst.Comment != "" {
		comment = &inst.Comment
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO training_instances (date, start_time, duration_minutes, trainer_id, place, training_type, source_template_id, status, comment)
		 VALUES ($1, $2::time, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		inst.Date, inst.StartTime, inst.DurationMinutes, inst.TrainerID,
		inst.Place, inst.TrainingType, inst.SourceTemplateID, string(inst.Status), comment,
	).Scan(&inst.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedInstance insert: %v", err)
	}

	return inst
}
