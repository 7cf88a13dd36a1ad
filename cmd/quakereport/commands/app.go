package commands

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/raulserranomena/QuakeReport/internal/adapter/usgs"
	"github.com/raulserranomena/QuakeReport/internal/config"
	"github.com/raulserranomena/QuakeReport/internal/connectivity"
	"github.com/raulserranomena/QuakeReport/internal/loader"
	"github.com/raulserranomena/QuakeReport/internal/observability"
	"github.com/raulserranomena/QuakeReport/internal/screen"
	"github.com/raulserranomena/QuakeReport/internal/settings"
)

// app is the wired list screen and its collaborators.
type app struct {
	store   *settings.Store
	checker connectivity.Checker
	loader  *loader.Loader
	screen  *screen.Screen
}

func (e *env) openStore() (*settings.Store, error) {
	return settings.NewStore(e.cfg.Home, e.cfg.DefaultMinMagnitude)
}

func (e *env) newChecker(metrics *observability.Metrics) connectivity.Checker {
	switch e.cfg.ConnectivityMode {
	case config.ConnectivityOnline:
		return connectivity.Static(true)
	case config.ConnectivityOffline:
		return connectivity.Static(false)
	default:
		return connectivity.NewDialChecker(e.cfg.ConnectivityProbeAddr, e.cfg.ConnectivityTimeout, e.logger, metrics)
	}
}

func (e *env) newApp(metrics *observability.Metrics, opener screen.Opener) (*app, error) {
	store, err := e.openStore()
	if err != nil {
		return nil, err
	}

	cfg := e.cfg
	checker := e.newChecker(metrics)
	client := usgs.NewClient(cfg.USGSTimeout, e.logger, metrics)

	l := loader.New(client, checker, store, loader.Options{
		BuildURL: func(minMag float64) (string, error) {
			return usgs.BuildURL(cfg.USGSBaseURL, usgs.Query{
				MinMagnitude: minMag,
				Limit:        cfg.USGSLimit,
				OrderBy:      usgs.OrderByTime,
			})
		},
		RetryDelay: cfg.RetryDelay,
		Clock:      clockwork.NewRealClock(),
	}, e.logger, metrics)

	return &app{
		store:   store,
		checker: checker,
		loader:  l,
		screen:  screen.New(l, checker, opener, e.logger),
	}, nil
}

// loadOnce creates the screen and waits for the load to settle.
func (a *app) loadOnce(ctx context.Context) screen.View {
	a.screen.Create(ctx)
	a.loader.Wait()
	return a.screen.View()
}
