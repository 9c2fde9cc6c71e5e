// Package cli is the portal's view layer: an interactive shell standing in
// for the SPA. Routes become the current view, modals become interactive
// commands, and the session gate decides what the prompt may show.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"shopgate/internal/client/api"
	"shopgate/internal/client/config"
	"shopgate/internal/client/models"
	"shopgate/internal/client/orders"
	"shopgate/internal/client/session"
	"shopgate/internal/client/store"
	"shopgate/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger
	api    api.Client
	store  *store.SQLiteStore
	gate   *session.Gate

	route      session.Route
	orderList  []models.Order
	controller *orders.Controller
	Mode       Mode
	reader     *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewDefault()

	st, err := store.Open(ctx, c.StorePath)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	gate := session.NewGate(st, apiClient, log)

	return &App{
		config: c,
		log:    log,
		api:    apiClient,
		store:  st,
		gate:   gate,
		route:  session.RouteLogin,
		Mode:   ModeOnline,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run resolves the session gate once, like a page load, starts the
// connectivity watcher, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	defer a.store.Close()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.applyDecision(a.gate.Resolve(ctx, string(a.route)))
	a.Root(ctx)
}

// applyDecision moves the current view according to a gate decision.
func (a *App) applyDecision(d session.Decision) {
	if d.Allow {
		return
	}
	a.route = d.Redirect
	// leaving the orders view drops the open detail controller
	if a.route != session.RouteOrders {
		a.controller = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.gate.Authenticated()
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher probes backend reachability on an interval and
// flips the connectivity mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probeOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// probeOnline pings the backend once and flips the connectivity mode
// accordingly.
func (a *App) probeOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(pingCtx); err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
