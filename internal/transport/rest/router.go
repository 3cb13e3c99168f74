package rest

import "net/http"

// NewRouter assembles the REST routing table.
func NewRouter(sched *ScheduleHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /live", health.Live)

	mux.HandleFunc("GET /api/v1/schedule/{date}", sched.GetSchedule)
	mux.HandleFunc("GET /api/v1/schedule/{date}/instances", sched.ListInstances)
	mux.HandleFunc("POST /api/v1/schedule/{date}/extra", sched.AddExtra)

	mux.HandleFunc("POST /api/v1/instances/{id}/cancel", sched.Cancel)
	mux.HandleFunc("POST /api/v1/instances/{id}/move", sched.Move)
	mux.HandleFunc("POST /api/v1/instances/{id}/trainer", sched.ChangeTrainer)
	mux.HandleFunc("POST /api/v1/instances/{id}/time", sched.ChangeTime)
	mux.HandleFunc("GET /api/v1/instances/{id}/history", sched.History)

	mux.HandleFunc("GET /api/v1/changelog", sched.RecentChanges)

	mux.HandleFunc("POST /api/v1/templates", sched.AddTemplate)
	mux.HandleFunc("GET /api/v1/templates", sched.ListTemplates)

	return mux
}
