package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func newHealthApp(store, counterBackend Pinger) *fiber.App {
	h := NewHealthHandler("servicerequest-service", "1.0.0", store, counterBackend)
	app := fiber.New()
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)
	return app
}

func TestReadyNamesDependencyRoles(t *testing.T) {
	app := newHealthApp(stubPinger{}, stubPinger{})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Role   string `json:"role"`
			Status string `json:"status"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "request store", body.Dependencies["postgres"].Role)
	assert.Equal(t, "ticket code counter", body.Dependencies["redis"].Role)
	assert.Equal(t, "ok", body.Dependencies["redis"].Status)
}

func TestReadyFailsWhenCounterBackendIsDown(t *testing.T) {
	app := newHealthApp(stubPinger{}, stubPinger{err: errors.New("connection refused")})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details map[string]struct {
				Role   string `json:"role"`
				Status string `json:"status"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body.Error.Code)
	assert.Equal(t, "connection refused", body.Error.Details["redis"].Status)
	assert.Equal(t, "ok", body.Error.Details["postgres"].Status)
}
