package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api"
	"github.com/campusjobboard/portal/internal/api/handler"
	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/ports"
	"github.com/campusjobboard/portal/internal/core/service"
	"github.com/campusjobboard/portal/internal/infrastructure/apiclient"
	"github.com/campusjobboard/portal/internal/infrastructure/db/memory"
	mongodb "github.com/campusjobboard/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/campusjobboard/portal/internal/infrastructure/db/redis"
	"github.com/campusjobboard/portal/internal/pkg/config"
	"github.com/campusjobboard/portal/internal/session"
	"github.com/campusjobboard/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "campus-portal",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("portal stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	backend, err := openSessionBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, nil, log)
	gw := apiclient.NewGateway(client)
	guard := session.NewGuard(log)

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	lockTTL := cfg.Session.SubmitLockTTL
	e := api.NewRouter(api.Deps{
		Log:            log,
		Renderer:       renderer,
		Sessions:       backend.store,
		SessionTTL:     cfg.Session.TTL,
		CookieSecure:   cfg.Session.CookieSecure,
		Guard:          guard,
		AuthService:    service.NewAuthService(apiclient.NewAuthClient(client), guard, backend.lock, lockTTL, log),
		AdminService:   service.NewAdminService(apiclient.NewDirectoryClient(gw, log), backend.lock, lockTTL, log),
		ProfileService: service.NewProfileService(apiclient.NewProfileClient(gw), backend.lock, lockTTL, log),
		Health:         map[string]handler.Pinger{"session_store": backend.store},
	})
	e.Server.ReadHeaderTimeout = 10 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("session_backend", cfg.Session.Backend).
			Str("api_base_url", cfg.API.BaseURL).
			Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

type sessionBackend struct {
	store ports.SessionStore
	lock  ports.SubmitLock
	close func()
}

// openSessionBackend connects the store selected by SESSION_BACKEND. Redis
// also backs the submit lock; the other backends use a process-local lock.
func openSessionBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sessionBackend, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis session store connected")
		return &sessionBackend{
			store: redisdb.NewSessionStore(rdb),
			lock:  redisdb.NewSubmitLock(rdb),
			close: func() { _ = rdb.Close() },
		}, nil

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		store := mongodb.NewSessionStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo session store connected")
		return &sessionBackend{
			store: store,
			lock:  memory.NewSubmitLock(),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil

	default:
		log.Warn().Msg("using in-memory session store; sessions are lost on restart")
		return &sessionBackend{
			store: memory.NewSessionStore(),
			lock:  memory.NewSubmitLock(),
			close: func() {},
		}, nil
	}
}
