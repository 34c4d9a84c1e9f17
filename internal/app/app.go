package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutax/edutax-backend/internal/data/db"
	"github.com/edutax/edutax-backend/internal/http"
	"github.com/edutax/edutax-backend/internal/observability"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *db.Service
	Clients  Clients
	Repos    Repos
	Services Services
	Server   *http.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Configuration loaded", cfg.LogFields()...)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown, err := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: "edutax-api",
		Environment: cfg.Environment,
		Version:     cfg.ServiceVersion,
		Endpoint:    cfg.OtelEndpoint,
		Headers:     observability.ParseHeaders(cfg.OtelHeaders),
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})
	if err != nil {
		log.Warn("otel init failed (continuing without tracing)", "error", err)
	}

	database, err := db.Open(cfg.DBConfig(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrateAll(); err != nil {
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = database.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(database.DB(), log)
	serviceset, err := wireServices(database.DB(), log, cfg, reposet, clients)
	if err != nil {
		clients.Close()
		_ = database.Close()
		log.Sync()
		return nil, err
	}

	sessions, err := wireSessions(cfg)
	if err != nil {
		clients.Close()
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("init sessions: %w", err)
	}
	handlerset := wireHandlers(log, cfg, database, serviceset, sessions)
	middleware := wireMiddleware(log, sessions)
	server := wireServer(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           database,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Seed loads the reference catalog when SEED_ON_BOOT is set. It is a no-op on a
// database that already has courses.
func (a *App) Seed(ctx context.Context) error {
	if a == nil || !a.Cfg.SeedOnBoot {
		return nil
	}
	return a.Services.Seed.SeedCatalog(ctx)
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	a.Log.Info("Server listening", "addr", a.Cfg.Addr())
	return a.Server.Run(ctx, a.Cfg.Addr(), a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	a.Clients.Close()
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("closing database failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
