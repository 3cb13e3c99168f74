package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
	"github.com/mkulagin/fencing-club-backend/internal/service/schedule"
)

// scheduleService defines the minimal interface needed by ScheduleHandler.
type scheduleService interface {
	BuildDailySchedule(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error)
	GetInstancesForDate(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error)
	Cancel(ctx context.Context, input schedule.CancelInput) (domain.TrainingInstance, error)
	AddExtra(ctx context.Context, input schedule.AddExtraInput) (domain.TrainingInstance, error)
	Move(ctx context.Context, input schedule.MoveInput) (domain.TrainingInstance, error)
	ChangeTrainer(ctx context.Context, input schedule.ChangeTrainerInput) (domain.TrainingInstance, error)
	ChangeTime(ctx context.Context, input schedule.ChangeTimeInput) (domain.TrainingInstance, error)
	History(ctx context.Context, trainingID int64) ([]domain.ChangeLogEntry, error)
	RecentChanges(ctx context.Context, limit int) ([]domain.ChangeLogEntry, error)
	AddTemplate(ctx context.Context, tpl domain.WeeklyTemplate) (int64, error)
	Templates(ctx context.Context) ([]domain.WeeklyTemplate, error)
}

// ScheduleHandler serves schedule REST endpoints.
type ScheduleHandler struct {
	svc scheduleService
	log *slog.Logger
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(svc scheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, log: logger.With("handler", "schedule")}
}

type cancelRequest struct {
	AdminID int64  `json:"adminId"`
	Reason  string `json:"reason"`
}

type addExtraRequest struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	TrainerID       int64  `json:"trainerId"`
	Place           string `json:"place"`
	TrainingType    string `json:"trainingType"`
	AdminID         int64  `json:"adminId"`
	Comment         string `json:"comment"`
}

type moveRequest struct {
	NewTime         string `json:"newTime"`
	DurationMinutes int    `json:"durationMinutes"`
	NewTrainerID    int64  `json:"newTrainerId"`
	NewPlace        string `json:"newPlace"`
	AdminID         int64  `json:"adminId"`
	Comment         string `json:"comment"`
}

type changeTrainerRequest struct {
	TrainerID int64 `json:"trainerId"`
	AdminID   int64 `json:"adminId"`
}

type changeTimeRequest struct {
	NewTime         string `json:"newTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AdminID         int64  `json:"adminId"`
}

type templateRequest struct {
	Weekday         int    `json:"weekday"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	TrainerID       int64  `json:"trainerId"`
	Place           string `json:"place"`
	TrainingType    string `json:"trainingType"`
	Active          *bool  `json:"active"`
}

type instanceResponse struct {
	ID               int64  `json:"id"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	DurationMinutes  int    `json:"durationMinutes"`
	TrainerID        int64  `json:"trainerId"`
	Place            string `json:"place"`
	TrainingType     string `json:"trainingType"`
	SourceTemplateID *int64 `json:"sourceTemplateId,omitempty"`
	Status           string `json:"status"`
	Comment          string `json:"comment,omitempty"`
}

type templateResponse struct {
	ID              int64  `json:"id"`
	Weekday         int    `json:"weekday"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	TrainerID       int64  `json:"trainerId"`
	Place           string `json:"place"`
	TrainingType    string `json:"trainingType"`
	Active          bool   `json:"active"`
}

type changeLogResponse struct {
	ID          int64          `json:"id"`
	TrainingID  int64          `json:"trainingId"`
	AdminUserID int64          `json:"adminUserId"`
	ChangeType  string         `json:"changeType"`
	OldValue    map[string]any `json:"oldValue,omitempty"`
	NewValue    map[string]any `json:"newValue,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// GetSchedule handles GET /api/v1/schedule/{date}. Materializes the day
// from weekly templates before returning it.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r)
	if !ok {
		return
	}

	insts, err := h.svc.BuildDailySchedule(r.Context(), date)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInstanceResponses(insts))
}

// ListInstances handles GET /api/v1/schedule/{date}/instances. Returns
// only what is already stored, without materializing anything.
func (h *ScheduleHandler) ListInstances(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r)
	if !ok {
		return
	}

	insts, err := h.svc.GetInstancesForDate(r.Context(), date)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInstanceResponses(insts))
}

// Cancel handles POST /api/v1/instances/{id}/cancel.
func (h *ScheduleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.svc.Cancel(r.Context(), schedule.CancelInput{
		InstanceID: id,
		AdminID:    req.AdminID,
		Reason:     req.Reason,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInstanceResponse(inst))
}

// AddExtra handles POST /api/v1/schedule/{date}/extra.
func (h *ScheduleHandler) AddExtra(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r)
	if !ok {
		return
	}

	var req addExtraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.svc.AddExtra(r.Context(), schedule.AddExtraInput{
		Date:            date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		TrainerID:       req.TrainerID,
		Place:           req.Place,
		TrainingType:    req.TrainingType,
		AdminID:         req.AdminID,
		Comment:         req.Comment,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInstanceResponse(inst))
}

// Move handles POST /api/v1/instances/{id}/move.
func (h *ScheduleHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.svc.Move(r.Context(), schedule.MoveInput{
		InstanceID:      id,
		NewTime:         req.NewTime,
		DurationMinutes: req.DurationMinutes,
		NewTrainerID:    req.NewTrainerID,
		NewPlace:        req.NewPlace,
		AdminID:         req.AdminID,
		Comment:         req.Comment,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInstanceResponse(inst))
}

// ChangeTrainer handles POST /api/v1/instances/{id}/trainer.
func (h *ScheduleHandler) ChangeTrainer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req changeTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.svc.ChangeTrainer(r.Context(), schedule.ChangeTrainerInput{
		InstanceID: id,
		TrainerID:  req.TrainerID,
		AdminID:    req.AdminID,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInstanceResponse(inst))
}

// ChangeTime handles POST /api/v1/instances/{id}/time.
func (h *ScheduleHandler) ChangeTime(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req changeTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.svc.ChangeTime(r.Context(), schedule.ChangeTimeInput{
		InstanceID:      id,
		NewTime:         req.NewTime,
		DurationMinutes: req.DurationMinutes,
		AdminID:         req.AdminID,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInstanceResponse(inst))
}

// History handles GET /api/v1/instances/{id}/history.
func (h *ScheduleHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.History(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toChangeLogResponses(entries))
}

// RecentChanges handles GET /api/v1/changelog. The optional ?limit=N
// query parameter caps the number of entries returned.
func (h *ScheduleHandler) RecentChanges(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.svc.RecentChanges(r.Context(), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toChangeLogResponses(entries))
}

// AddTemplate handles POST /api/v1/templates.
func (h *ScheduleHandler) AddTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	tpl := domain.WeeklyTemplate{
		Weekday:         req.Weekday,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		TrainerID:       req.TrainerID,
		Place:           req.Place,
		TrainingType:    req.TrainingType,
		Active:          active,
	}

	id, err := h.svc.AddTemplate(r.Context(), tpl)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	tpl.ID = id
	writeJSON(w, http.StatusCreated, toTemplateResponse(tpl))
}

// ListTemplates handles GET /api/v1/templates.
func (h *ScheduleHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	tpls, err := h.svc.Templates(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]templateResponse, 0, len(tpls))
	for _, tpl := range tpls {
		out = append(out, toTemplateResponse(tpl))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ScheduleHandler) parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.PathValue("date")
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func (h *ScheduleHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid instance id")
		return 0, false
	}
	return id, true
}

func (h *ScheduleHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func toInstanceResponse(i domain.TrainingInstance) instanceResponse {
	return instanceResponse{
		ID:               i.ID,
		Date:             i.Date.Format(time.DateOnly),
		StartTime:        i.StartTime,
		DurationMinutes:  i.DurationMinutes,
		TrainerID:        i.TrainerID,
		Place:            i.Place,
		TrainingType:     i.TrainingType,
		SourceTemplateID: i.SourceTemplateID,
		Status:           i.Status.String(),
		Comment:          i.Comment,
	}
}

func toInstanceResponses(insts []domain.TrainingInstance) []instanceResponse {
	out := make([]instanceResponse, 0, len(insts))
	for _, i := range insts {
		out = append(out, toInstanceResponse(i))
	}
	return out
}

func toTemplateResponse(t domain.WeeklyTemplate) templateResponse {
	return templateResponse{
		ID:              t.ID,
		Weekday:         t.Weekday,
		StartTime:       t.StartTime,
		DurationMinutes: t.DurationMinutes,
		TrainerID:       t.TrainerID,
		Place:           t.Place,
		TrainingType:    t.TrainingType,
		Active:          t.Active,
	}
}

func toChangeLogResponses(entries []domain.ChangeLogEntry) []changeLogResponse {
	out := make([]changeLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, changeLogResponse{
			ID:          e.ID,
			TrainingID:  e.TrainingID,
			AdminUserID: e.AdminUserID,
			ChangeType:  e.ChangeType.String(),
			OldValue:    e.OldValue,
			NewValue:    e.NewValue,
			Timestamp:   e.Timestamp,
		})
	}
	return out
}
