// Package server initializes and runs the portal dev backend: storage
// (in-memory or PostgreSQL), the REST API, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"shopgate/internal/logging"
	"shopgate/internal/server/assets"
	"shopgate/internal/server/config"
	"shopgate/internal/server/httpapi"
	"shopgate/internal/server/shared/db"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewDefault()

	var repos db.RepositoryManager
	if c.DatabaseDSN == "" {
		repos = db.NewInMemoryRepositoryManager()
		if err := db.SeedDemoData(context.Background(), repos); err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
		logger.Info(context.Background(), "using in-memory storage with demo data",
			"email", db.DemoEmail, "password", db.DemoPassword)
	} else {
		m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		repos = m
	}

	return &App{config: c, logger: logger, repos: repos}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handler := httpapi.NewHandler(app.config, app.repos, assets.NewPresigner(app.config), app.logger)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: handler.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "starting dev backend...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
}
