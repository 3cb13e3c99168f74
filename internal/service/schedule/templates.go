package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// AddTemplate validates and persists a new weekly template. Used by the
// seeding command and the admin API.
func (s *Service) AddTemplate(ctx context.Context, tpl domain.WeeklyTemplate) (int64, error) {
	if err := tpl.Validate(); err != nil {
		return 0, err
	}

	id, err := s.templates.Add(ctx, tpl)
	if err != nil {
		return 0, fmt.Errorf("add template: %w", err)
	}

	s.log.InfoContext(ctx, "template added",
		slog.Int64("template_id", id),
		slog.Int("weekday", tpl.Weekday),
		slog.String("start_time", tpl.StartTime),
	)
	return id, nil
}

// Templates returns every weekly template, deactivated ones included.
func (s *Service) Templates(ctx context.Context) ([]domain.WeeklyTemplate, error) {
	tpls, err := s.templates.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get templates: %w", err)
	}
	return tpls, nil
}
