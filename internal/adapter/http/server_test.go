package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/raulserranomena/QuakeReport/internal/adapter/http"
	"github.com/raulserranomena/QuakeReport/internal/screen"
	"github.com/raulserranomena/QuakeReport/internal/settings"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockScreen struct {
	view    screen.View
	urls    []string
	retries int
}

func (m *mockScreen) View() screen.View { return m.view }
func (m *mockScreen) Retry()            { m.retries++ }

func (m *mockScreen) URL(i int) (string, error) {
	if i < 0 || i >= len(m.urls) {
		return "", fmt.Errorf("%w: %d", screen.ErrRowOutOfRange, i)
	}
	return m.urls[i], nil
}

type mockSettings struct {
	prefs settings.Preferences
	err   error
}

func (m *mockSettings) Preferences() settings.Preferences { return m.prefs }

func (m *mockSettings) SetMinMagnitude(mag float64) error {
	if m.err != nil {
		return m.err
	}
	m.prefs.MinMagnitude = mag
	return nil
}

type fixture struct {
	srv      *httpadapter.Server
	screen   *mockScreen
	settings *mockSettings
}

func newFixture(readyErr error) *fixture {
	f := &fixture{
		screen: &mockScreen{
			view: screen.View{Rows: []screen.Row{{Index: 0, Magnitude: "7.2", URL: "https://e/a"}}},
			urls: []string{"https://e/a", "https://e/b"},
		},
		settings: &mockSettings{prefs: settings.Preferences{MinMagnitude: 6}},
	}
	f.srv = httpadapter.NewServer(":0", f.screen, f.settings, &mockReadiness{err: readyErr}, slog.Default())
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	f.srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := newFixture(nil).do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := newFixture(nil).do(http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := newFixture(errors.New("no load has finished yet")).do(http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no load has finished yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := newFixture(nil).do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListEarthquakes(t *testing.T) {
	rec := newFixture(nil).do(http.MethodGet, "/api/v1/earthquakes", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var view screen.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "7.2", view.Rows[0].Magnitude)
}

func TestListEarthquakes_EmptyState(t *testing.T) {
	f := newFixture(nil)
	f.screen.view = screen.View{Rows: []screen.Row{}, EmptyText: screen.TextNoConnection, RetryVisible: true}

	rec := f.do(http.MethodGet, "/api/v1/earthquakes", "")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, screen.TextNoConnection, body["empty_text"])
	assert.Equal(t, true, body["retry_visible"])
}

func TestRetry(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(http.MethodPost, "/api/v1/earthquakes/retry", "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, f.screen.retries)
}

func TestOpenRedirectsToExactURL(t *testing.T) {
	rec := newFixture(nil).do(http.MethodGet, "/api/v1/earthquakes/1", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://e/b", rec.Header().Get("Location"))
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"out of range", "/api/v1/earthquakes/5", http.StatusNotFound},
		{"negative", "/api/v1/earthquakes/-1", http.StatusNotFound},
		{"not a number", "/api/v1/earthquakes/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newFixture(nil).do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGetSettings(t *testing.T) {
	rec := newFixture(nil).do(http.MethodGet, "/api/v1/settings", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"min_magnitude": 6}`, rec.Body.String())
}

func TestPutSettings(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(http.MethodPut, "/api/v1/settings", `{"min_magnitude": 4.5}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"min_magnitude": 4.5}`, rec.Body.String())
	assert.InDelta(t, 4.5, f.settings.prefs.MinMagnitude, 0)
}

func TestPutSettings_AcceptsZero(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(http.MethodPut, "/api/v1/settings", `{"min_magnitude": 0}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, f.settings.prefs.MinMagnitude)
}

func TestPutSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"too large", `{"min_magnitude": 11}`},
		{"negative", `{"min_magnitude": -1}`},
		{"string", `{"min_magnitude": "big"}`},
		{"unknown field", `{"min_magnitude": 3, "limit": 50}`},
		{"not json", `min_magnitude=3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			rec := f.do(http.MethodPut, "/api/v1/settings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.InDelta(t, 6.0, f.settings.prefs.MinMagnitude, 0)
		})
	}
}

func TestPutSettings_StoreFailure(t *testing.T) {
	f := newFixture(nil)
	f.settings.err = errors.New("disk full")

	rec := f.do(http.MethodPut, "/api/v1/settings", `{"min_magnitude": 3}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
