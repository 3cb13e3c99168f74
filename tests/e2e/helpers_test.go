//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkulagin/fencing-club-backend/internal/adapter/postgres"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/changelog"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/instance"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/template"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/testhelper"
	"github.com/mkulagin/fencing-club-backend/internal/config"
	"github.com/mkulagin/fencing-club-backend/internal/service/schedule"
	"github.com/mkulagin/fencing-club-backend/internal/transport/middleware"
	"github.com/mkulagin/fencing-club-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	svc := schedule.NewService(
		logger,
		template.New(pool),
		instance.New(pool),
		changelog.New(pool),
		postgres.NewTxManager(pool),
		config.ScheduleConfig{},
	)

	router := rest.NewRouter(
		rest.NewScheduleHandler(svc, logger),
		rest.NewHealthHandler(pool, "test-version"),
	)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// instancePath builds an /api/v1/instances/{id}/{action} path.
func instancePath(id int64, action string) string {
	return "/api/v1/instances/" + strconv.FormatInt(id, 10) + "/" + action
}

// postJSON sends a POST with a JSON body and decodes the JSON response.
func (ts *testServer) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	resp, err := ts.Client.Post(ts.URL+path, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, result
}

// getJSONList sends a GET and decodes a JSON array response.
func (ts *testServer) getJSONList(t *testing.T, path string) (int, []map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()

	var result []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, result
}

// getJSON sends a GET and decodes a JSON object response.
func (ts *testServer) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, result
}
