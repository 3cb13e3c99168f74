// Command seed-templates loads the club's base weekly schedule from a
// JSON file into the weekly_templates table. It is intended to be run
// once against a fresh database, not as part of the main server.
//
// Flags:
//
//	--file  path to the JSON templates file (default: templates.json)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/changelog"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/instance"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/template"
	"github.com/mkulagin/fencing-club-backend/internal/app"
	"github.com/mkulagin/fencing-club-backend/internal/config"
	"github.com/mkulagin/fencing-club-backend/internal/domain"
	"github.com/mkulagin/fencing-club-backend/internal/service/schedule"
)

type templateFile []struct {
	Weekday         int    `json:"weekday"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	TrainerID       int64  `json:"trainerId"`
	Place           string `json:"place"`
	TrainingType    string `json:"trainingType"`
}

func main() {
	fileFlag := flag.String("file", "templates.json", "path to the JSON templates file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	raw, err := os.ReadFile(*fileFlag)
	if err != nil {
		logger.Error("read templates file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var tpls templateFile
	if err := json.Unmarshal(raw, &tpls); err != nil {
		logger.Error("parse templates file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := schedule.NewService(
		logger,
		template.New(pool),
		instance.New(pool),
		changelog.New(pool),
		postgres.NewTxManager(pool),
		cfg.Schedule,
	)

	seeded, skipped := 0, 0
	for _, t := range tpls {
		id, err := svc.AddTemplate(ctx, domain.WeeklyTemplate{
			Weekday:         t.Weekday,
			StartTime:       t.StartTime,
			DurationMinutes: t.DurationMinutes,
			TrainerID:       t.TrainerID,
			Place:           t.Place,
			TrainingType:    t.TrainingType,
			Active:          true,
		})
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				logger.Warn("skipping invalid template",
					slog.Int("weekday", t.Weekday),
					slog.String("start_time", t.StartTime),
					slog.String("error", err.Error()),
				)
				skipped++
				continue
			}
			logger.Error("add template", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("template seeded", slog.Int64("template_id", id))
		seeded++
	}

	logger.Info("seeding finished", slog.Int("seeded", seeded), slog.Int("skipped", skipped))
}
