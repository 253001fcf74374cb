// Package server initializes and runs the StockGuard application: it opens
// the local database, restores the durable session, seeds the alert
// registry, and starts the market hub and the web server with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"stockguard/internal/alerts"
	"stockguard/internal/analysis"
	"stockguard/internal/config"
	"stockguard/internal/logging"
	"stockguard/internal/market"
	"stockguard/internal/server/web"
	"stockguard/internal/session"
	"stockguard/internal/wallet"
)

// subscriptionFee is the display fee the simulated wallet backend quotes.
const subscriptionFee = "0.01 ETH"

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *session.Store
	registry *alerts.Registry
	triage   *alerts.Triage
	hub      *market.Hub
	web      *web.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(cfg.LogFile)

	db, repo, err := session.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	sessions := session.NewStore(repo, cfg.SecretKey, cfg.SessionValidityDuration, logger)

	registry := alerts.Seeded(time.Now())
	triage := alerts.NewTriage(registry)

	generator := market.NewGenerator(time.Now().UnixNano())
	hub := market.NewHub(generator, cfg.TickInterval, logger)

	analysisClient := analysis.NewClient(analysis.ClientOptions{
		BaseURL:        cfg.AnalysisEndpoint,
		RequestTimeout: cfg.AnalysisTimeout,
	}, logger)

	walletSub := wallet.NewSimulated(subscriptionFee)

	webServer := web.NewServer(cfg, logger, sessions, registry, triage, generator, hub, analysisClient, walletSub)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
		registry: registry,
		triage:   triage,
		hub:      hub,
		web:      webServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	state := app.sessions.Initialize(ctx)
	app.logger.Info(ctx, "session restored", "state", state.String())

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.hub.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.web.Run(ctx); err != nil {
			app.logger.Error(ctx, "web server stopped", "error", err)
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "app stopped")
}
