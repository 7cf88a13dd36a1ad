package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raulserranomena/QuakeReport/internal/screen"
	"github.com/raulserranomena/QuakeReport/internal/settings"
)

// Screen is the list presentation served under /api/v1/earthquakes.
type Screen interface {
	View() screen.View
	Retry()
	URL(i int) (string, error)
}

// Settings is the preference store served under /api/v1/settings.
type Settings interface {
	Preferences() settings.Preferences
	SetMinMagnitude(mag float64) error
}

type settingsRequest struct {
	MinMagnitude *float64 `json:"min_magnitude" validate:"required,gte=0,lte=10"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the earthquake list, settings, health, readiness and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	screen     Screen
	settings   Settings
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(addr string, scr Screen, prefs Settings, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		screen:   scr,
		settings: prefs,
		validate: validator.New(),
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/earthquakes", s.handleList)
	mux.HandleFunc("POST /api/v1/earthquakes/retry", s.handleRetry)
	mux.HandleFunc("GET /api/v1/earthquakes/{index}", s.handleOpen)
	mux.HandleFunc("GET /api/v1/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", s.handlePutSettings)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.screen.View())
}

func (s *Server) handleRetry(w http.ResponseWriter, _ *http.Request) {
	s.screen.Retry()
	sharedobs.WriteJSON(w, http.StatusAccepted, s.screen.View())
}

// handleOpen redirects to the detail page of the row at {index}.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "index must be an integer"})
		return
	}

	url, err := s.screen.URL(i)
	if errors.Is(err, screen.ErrRowOutOfRange) {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("resolve row url failed", "index", i, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.settings.Preferences())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "min_magnitude must be a number between 0 and 10"})
		return
	}

	if err := s.settings.SetMinMagnitude(*req.MinMagnitude); err != nil {
		if errors.Is(err, settings.ErrInvalidPreference) {
			sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("save settings failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	s.logger.Info("minimum magnitude updated", "min_magnitude", *req.MinMagnitude)
	sharedobs.WriteJSON(w, http.StatusOK, s.settings.Preferences())
}
