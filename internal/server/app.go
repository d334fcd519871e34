// Package server wires configuration, storage, the auth provider and the
// domain services into a running Ground Truth Studio backend, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gtstudio/internal/logging"
	"github.com/dmitrijs2005/gtstudio/internal/server/api"
	"github.com/dmitrijs2005/gtstudio/internal/server/auth"
	"github.com/dmitrijs2005/gtstudio/internal/server/config"
	"github.com/dmitrijs2005/gtstudio/internal/server/generation"
	"github.com/dmitrijs2005/gtstudio/internal/server/services"
	"github.com/dmitrijs2005/gtstudio/internal/server/sources"
	"github.com/dmitrijs2005/gtstudio/internal/server/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  store.Store
	server *api.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	st, err := store.New(cfg.DatabaseProvider, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	gen, err := generation.New(cfg.GenerationProvider)
	if err != nil {
		return nil, fmt.Errorf("generation init error: %w", err)
	}

	// Data sources that cannot be built are skipped, the rest keep working.
	var providers []sources.Provider
	for _, id := range cfg.EnabledDataSources {
		p, err := sources.NewProvider(id)
		if err != nil {
			logger.Warn(context.Background(), "Skipping data source", "id", id, "error", err.Error())
			continue
		}
		providers = append(providers, p)
	}

	us := services.NewUserService(auth.NewSimpleProvider(st), cfg)
	cs := services.NewCollectionService(st)
	rs := services.NewRetrievalService(sources.NewRegistry(providers...))

	srv := api.NewServer(cfg.EndpointAddr, cfg.CORSAllowedOrigins, logger, us, cs, rs, gen)

	return &App{config: cfg, logger: logger, store: st, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startAPIServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...",
		"provider", app.config.DatabaseProvider, "address", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startAPIServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
