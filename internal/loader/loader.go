// Package loader runs the background feed fetch behind the list screen.
//
// A Loader moves through Idle → Loading → {Loaded | Failed}. It runs at most
// one fetch at a time: a trigger that arrives while a fetch is in flight is
// ignored. Results are delivered to a single Listener; the last completed
// fetch wins and Reset discards anything still in flight.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/raulserranomena/QuakeReport/internal/connectivity"
	"github.com/raulserranomena/QuakeReport/internal/domain"
	"github.com/raulserranomena/QuakeReport/internal/observability"
)

// ErrNoConnection marks a load that failed the connectivity check before any
// network call was made.
var ErrNoConnection = errors.New("no internet connection")

// State is the loader lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Result is the outcome of one load.
type Result struct {
	State       State
	Earthquakes []domain.Earthquake
	Err         error
	URL         string
}

// NoConnection reports whether the load failed the connectivity check.
func (r Result) NoConnection() bool {
	return errors.Is(r.Err, ErrNoConnection)
}

// Fetcher performs one GET of url and parses the feed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.Earthquake, error)
}

// Preferences supplies the minimum magnitude for the next fetch.
type Preferences interface {
	MinMagnitude() float64
}

// URLBuilder builds the feed URL for a minimum magnitude.
type URLBuilder func(minMagnitude float64) (string, error)

// Listener receives loader events. Calls are serialized. A Listener must not
// call Start or Reset synchronously from inside a callback.
type Listener interface {
	OnLoadStarted()
	OnLoadFinished(Result)
	OnLoaderReset()
}

// Options configures a Loader.
type Options struct {
	BuildURL   URLBuilder
	RetryDelay time.Duration
	Clock      clockwork.Clock
}

// Loader orchestrates connectivity check, fetch and result delivery.
type Loader struct {
	fetcher  Fetcher
	checker  connectivity.Checker
	prefs    Preferences
	buildURL URLBuilder
	delay    time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics

	// base bounds every fetch and pending retry; Close cancels it.
	base      context.Context
	closeBase context.CancelFunc

	cbMu     sync.Mutex // serializes listener delivery; acquired before mu
	listener Listener

	mu     sync.Mutex
	state  State
	gen    uint64
	cancel context.CancelFunc

	wg       sync.WaitGroup
	finished atomic.Bool
}

// New creates an idle Loader.
func New(f Fetcher, c connectivity.Checker, p Preferences, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	base, cancel := context.WithCancel(context.Background())
	l := &Loader{
		fetcher:   f,
		checker:   c,
		prefs:     p,
		buildURL:  opts.BuildURL,
		delay:     opts.RetryDelay,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		base:      base,
		closeBase: cancel,
		listener:  nopListener{},
	}
	metrics.LoaderState.Set(float64(StateIdle))
	return l
}

// SetListener replaces the listener. Pass nil to drop events.
func (l *Loader) SetListener(li Listener) {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	if li == nil {
		li = nopListener{}
	}
	l.listener = li
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// CheckReadiness returns nil once any load has finished.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if !l.finished.Load() {
		return errors.New("no load has finished yet")
	}
	return nil
}

// Start checks connectivity and, when online, begins one background fetch
// using the current minimum-magnitude preference. It reports whether a
// network fetch was started: false when a fetch is already in flight (the
// trigger is ignored) or when the load failed before reaching the network.
func (l *Loader) Start(ctx context.Context) bool {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()

	l.mu.Lock()
	if l.state == StateLoading {
		l.mu.Unlock()
		l.metrics.LoadsIgnored.Inc()
		l.logger.Debug("load already in flight, ignoring trigger")
		return false
	}

	if !l.checker.Active(ctx) {
		l.setState(StateFailed)
		l.mu.Unlock()
		l.logger.Info("no connectivity, skipping fetch")
		l.deliver(Result{State: StateFailed, Err: ErrNoConnection})
		return false
	}

	minMag := l.prefs.MinMagnitude()
	url, err := l.buildURL(minMag)
	if err != nil {
		l.setState(StateFailed)
		l.mu.Unlock()
		l.logger.Error("build feed url failed", "min_magnitude", minMag, "error", err)
		l.deliver(Result{State: StateFailed, Err: err})
		return false
	}

	l.gen++
	gen := l.gen
	fetchCtx, cancel := context.WithCancel(l.base)
	l.cancel = cancel
	l.setState(StateLoading)
	l.wg.Add(1)
	l.mu.Unlock()

	l.metrics.LoadsStarted.Inc()
	l.logger.Info("load started", "url", url, "min_magnitude", minMag)
	l.listener.OnLoadStarted()

	go l.run(fetchCtx, cancel, gen, url)
	return true
}

func (l *Loader) run(ctx context.Context, cancel context.CancelFunc, gen uint64, url string) {
	defer l.wg.Done()
	defer cancel()

	quakes, err := l.fetcher.Fetch(ctx, url)
	res := Result{State: StateLoaded, Earthquakes: quakes, URL: url}
	if err != nil {
		res = Result{State: StateFailed, Err: err, URL: url}
	}

	l.cbMu.Lock()
	defer l.cbMu.Unlock()

	l.mu.Lock()
	if gen != l.gen || ctx.Err() != nil {
		l.mu.Unlock()
		l.logger.Debug("discarding result of reset load", "url", url)
		return
	}
	l.cancel = nil
	l.setState(res.State)
	l.mu.Unlock()

	l.logger.Info("load finished", "state", res.State.String(), "records", len(res.Earthquakes))
	l.deliver(res)
}

// Retry calls Start after the configured delay, giving a loading indicator
// time to render. A pending retry is dropped by Close.
func (l *Loader) Retry() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		select {
		case <-l.base.Done():
			return
		case <-l.clock.After(l.delay):
		}
		l.Start(l.base)
	}()
}

// Reset cancels any in-flight fetch, discards its result and returns the
// loader to Idle.
func (l *Loader) Reset() {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()

	l.mu.Lock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.setState(StateIdle)
	l.mu.Unlock()

	l.listener.OnLoaderReset()
}

// Wait blocks until in-flight fetches and pending retries have finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close drops pending retries, resets the loader and waits for background
// work to exit.
func (l *Loader) Close() {
	l.closeBase()
	l.Reset()
	l.wg.Wait()
}

// deliver must be called with cbMu held.
func (l *Loader) deliver(res Result) {
	l.finished.Store(true)
	l.listener.OnLoadFinished(res)
}

// setState must be called with mu held.
func (l *Loader) setState(s State) {
	l.state = s
	l.metrics.LoaderState.Set(float64(s))
}

type nopListener struct{}

func (nopListener) OnLoadStarted()        {}
func (nopListener) OnLoadFinished(Result) {}
func (nopListener) OnLoaderReset()        {}
