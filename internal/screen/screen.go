// Package screen holds the earthquake list presentation model.
//
// A Screen listens to the loader and keeps a View: a loading flag, the rows
// to render, the empty-state text and whether retry is offered. The View is
// rendered as a terminal table by the CLI and served as JSON over HTTP.
package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/raulserranomena/QuakeReport/internal/connectivity"
	"github.com/raulserranomena/QuakeReport/internal/domain"
	"github.com/raulserranomena/QuakeReport/internal/loader"
)

// Empty-state texts.
const (
	TextNoResults    = "No earthquakes found."
	TextNoConnection = "No internet connection"
)

// ErrRowOutOfRange is returned by Open for an index with no row.
var ErrRowOutOfRange = errors.New("row out of range")

// Loader is the part of *loader.Loader the screen drives.
type Loader interface {
	SetListener(loader.Listener)
	Start(ctx context.Context) bool
	Retry()
	Reset()
}

// Opener shows a detail URL to the user.
type Opener interface {
	Open(url string) error
}

// Row is one rendered earthquake.
type Row struct {
	Index     int             `json:"index"`
	ID        string          `json:"id"`
	Magnitude string          `json:"magnitude"`
	Bucket    int             `json:"bucket"`
	Severity  domain.Severity `json:"severity"`
	Offset    string          `json:"offset"`
	Primary   string          `json:"primary"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	URL       string          `json:"url"`
}

// View is a snapshot of what the screen shows.
type View struct {
	Loading      bool   `json:"loading"`
	Rows         []Row  `json:"rows"`
	EmptyText    string `json:"empty_text,omitempty"`
	RetryVisible bool   `json:"retry_visible"`
}

// NewRow builds the rendered form of e at position i.
func NewRow(i int, e domain.Earthquake) Row {
	loc := e.Location()
	return Row{
		Index:     i,
		ID:        e.ID,
		Magnitude: domain.FormatMagnitude(e.Magnitude),
		Bucket:    domain.MagnitudeBucket(e.Magnitude),
		Severity:  domain.ClassifySeverity(e.Magnitude),
		Offset:    loc.Offset,
		Primary:   loc.Primary,
		Date:      domain.FormatDate(e.Time),
		Time:      domain.FormatTime(e.Time),
		URL:       e.URL,
	}
}

// Screen is the list presentation. It implements loader.Listener.
type Screen struct {
	loader  Loader
	checker connectivity.Checker
	opener  Opener
	logger  *slog.Logger

	mu     sync.RWMutex
	quakes []domain.Earthquake
	view   View
}

// New creates a Screen and registers it as the loader's listener.
func New(l Loader, checker connectivity.Checker, opener Opener, logger *slog.Logger) *Screen {
	s := &Screen{
		loader:  l,
		checker: checker,
		opener:  opener,
		logger:  logger,
		view:    View{Rows: []Row{}},
	}
	l.SetListener(s)
	return s
}

// Create shows the loading indicator and triggers the first load.
func (s *Screen) Create(ctx context.Context) {
	s.mu.Lock()
	s.view.Loading = true
	s.mu.Unlock()

	s.loader.Start(ctx)
}

// Retry clears the empty state, shows the loading indicator and asks the
// loader to start again after its retry delay.
func (s *Screen) Retry() {
	s.mu.Lock()
	s.view.EmptyText = ""
	s.view.RetryVisible = false
	s.view.Loading = true
	s.mu.Unlock()

	s.loader.Retry()
}

// Open hands row i's detail URL to the opener.
func (s *Screen) Open(i int) (string, error) {
	url, err := s.URL(i)
	if err != nil {
		return "", err
	}
	if err := s.opener.Open(url); err != nil {
		return url, fmt.Errorf("open %s: %w", url, err)
	}
	return url, nil
}

// URL returns row i's detail URL.
func (s *Screen) URL(i int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.quakes) {
		return "", fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, i, len(s.quakes))
	}
	return s.quakes[i].URL, nil
}

// Teardown resets the loader, discarding any in-flight load.
func (s *Screen) Teardown() {
	s.loader.Reset()
}

// View returns a copy of the current view.
func (s *Screen) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view
	v.Rows = make([]Row, len(s.view.Rows))
	copy(v.Rows, s.view.Rows)
	return v
}

// OnLoadStarted implements loader.Listener.
func (s *Screen) OnLoadStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Loading = true
	s.view.EmptyText = ""
	s.view.RetryVisible = false
}

// OnLoadFinished implements loader.Listener.
func (s *Screen) OnLoadFinished(res loader.Result) {
	offline := false
	if res.State == loader.StateFailed {
		// The connectivity probe runs outside the screen lock.
		offline = res.NoConnection() || !s.checker.Active(context.Background())
		s.logger.Warn("load failed", "error", res.Err, "offline", offline)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.Loading = false
	s.quakes = nil
	s.view.Rows = []Row{}
	s.view.RetryVisible = false
	s.view.EmptyText = ""

	switch {
	case offline:
		s.view.EmptyText = TextNoConnection
		s.view.RetryVisible = true
	case res.State == loader.StateFailed:
		s.view.EmptyText = TextNoResults
		s.view.RetryVisible = true
	case len(res.Earthquakes) == 0:
		s.view.EmptyText = TextNoResults
	default:
		s.quakes = res.Earthquakes
		for i, e := range res.Earthquakes {
			s.view.Rows = append(s.view.Rows, NewRow(i, e))
		}
	}
}

// OnLoaderReset implements loader.Listener.
func (s *Screen) OnLoaderReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quakes = nil
	s.view = View{Rows: []Row{}}
}
