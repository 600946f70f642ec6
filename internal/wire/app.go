package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alanyang/roadside-relay/internal/adapter/memory"
	pgdb "github.com/alanyang/roadside-relay/internal/adapter/postgres"
	pgsr "github.com/alanyang/roadside-relay/internal/adapter/postgres/servicerequest"
	redissr "github.com/alanyang/roadside-relay/internal/adapter/redis/servicerequest"
	portsr "github.com/alanyang/roadside-relay/internal/port/servicerequest"
	srsvc "github.com/alanyang/roadside-relay/internal/service/servicerequest"
	"github.com/alanyang/roadside-relay/internal/transport"
	wshandler "github.com/alanyang/roadside-relay/internal/transport/ws"
)

const ServiceName = "roadside-relay"

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Server *http.Server
	Hub    *wshandler.Hub

	closers []func()
}

// Close releases store connections. Call after the server has shut down.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg Config) (*App, error) {
	app := &App{}

	// ── Store ────────────────────────────────────────────────────────────────
	repo, err := buildStore(ctx, cfg, app)
	if err != nil {
		app.Close()
		return nil, err
	}

	// ── Real-time ────────────────────────────────────────────────────────────
	reg := wshandler.NewRegistry()
	router := wshandler.NewRouter(reg)
	hub := wshandler.NewHub(
		reg,
		router, // implements port/notifier.IdentityNotifier
		cfg.WS,
	)

	// ── Services ─────────────────────────────────────────────────────────────
	srSvc := srsvc.NewService(
		repo,
		router, // implements port/notifier.RoleNotifier
	)

	// ── Transport ────────────────────────────────────────────────────────────
	engine := transport.NewRouter(
		transport.RouterConfig{ServiceName: ServiceName, AllowedOrigins: cfg.AllowedOrigins},
		srSvc,
		hub,
		reg,
	)

	app.Server = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}
	app.Hub = hub

	slog.Info("application wired", "port", cfg.Port, "store", cfg.Store)
	return app, nil
}

func buildStore(ctx context.Context, cfg Config, app *App) (portsr.Repository, error) {
	switch cfg.Store {
	case StorePostgres:
		pool, err := pgdb.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		app.closers = append(app.closers, pool.Close)
		if err := pgdb.Migrate(ctx, pool); err != nil {
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		return pgsr.New(pool), nil

	case StoreRedis:
		rdb, err := redissr.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		app.closers = append(app.closers, func() { _ = rdb.Close() })
		return redissr.New(rdb, cfg.RedisPrefix), nil

	default:
		slog.Warn("no database configured, service requests are kept in memory")
		return memory.NewServiceRequestStore(), nil
	}
}
