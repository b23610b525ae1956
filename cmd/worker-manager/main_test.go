package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission-workers/internal/app"
	"admission-workers/internal/common/camunda"
	"admission-workers/internal/common/config"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/documents"
	"admission-workers/internal/programs"
	"admission-workers/internal/search"
)

type fakeBroker struct {
	err error
}

func (f fakeBroker) HealthCheck(context.Context) error { return f.err }

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]string
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthMux(t *testing.T) {
	mux := healthMux(fakeBroker{})

	rec, body := get(t, mux, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	rec, body = get(t, mux, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])

	rec, _ = get(t, mux, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthMux_NotReady(t *testing.T) {
	rec, body := get(t, healthMux(fakeBroker{err: errors.New("gateway down")}), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "gateway down", body["error"])
}

func TestHandlers_CoverEveryTaskType(t *testing.T) {
	log := logger.NewNoOpLogger()
	cfg := &config.Config{}
	engine := search.NewEngine(nil, programs.DefaultCatalog(), search.DefaultConfig(), log)
	scorer := documents.NewScorer(nil, 0, log)

	hs := handlers(cfg, engine, scorer, &app.Deps{}, camunda.JobSupport{}, log)
	require.Len(t, hs, len(taskOrder))
	for _, taskType := range taskOrder {
		assert.Contains(t, hs, taskType)
	}
}
