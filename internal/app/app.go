package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/YugandharPise/SME-HR/internal/config"
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/shared/connection"
	"github.com/YugandharPise/SME-HR/internal/shared/response"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp wires infrastructure, modules and routes onto router. The returned
// cleanup releases connections and must run after the HTTP server stopped.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	persister, closePersister, err := openPersister(ctx, cfg, logger)
	if err != nil {
		return cleanup, err
	}
	closers = append(closers, closePersister)

	st, err := store.Open(ctx, persister,
		store.WithSeedPassword(cfg.Auth.SeedPassword),
		store.WithCommitTimeout(cfg.Store.CommitTimeout),
		store.WithLogger(logger),
	)
	if err != nil {
		return cleanup, fmt.Errorf("open store: %w", err)
	}
	logger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	var rdb redis.Cmdable
	if cfg.Redis.Enabled() {
		client, err := connection.ConnectRedisWithRetry(ctx, cfg.Redis.Addr, connectRetries, logger)
		if err != nil {
			return cleanup, err
		}
		closers = append(closers, func() { _ = client.Close() })
		rdb = client
		logger.Info("redis connection established")
	}

	outboxRepo, stopRelay, err := startOutboxRelay(ctx, cfg, st, logger)
	if err != nil {
		return cleanup, err
	}
	closers = append(closers, stopRelay)

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Named("http")))
	router.Use(gin.Recovery())

	router.GET("/api/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		}, nil)
	})

	if err := registerModules(router, modules{
		cfg:    cfg,
		store:  st,
		outbox: outboxRepo,
		rdb:    rdb,
		logger: logger,
	}); err != nil {
		return cleanup, err
	}

	return cleanup, nil
}

// openPersister picks the snapshot backend named by STORE_DRIVER.
func openPersister(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Persister, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryPersister(), noop, nil

	case "file":
		p, err := store.NewFilePersister(cfg.Store.Path)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil

	case "postgres":
		if _, err := store.Migrate(cfg.Database.URL(), "up"); err != nil {
			return nil, noop, fmt.Errorf("migrate: %w", err)
		}
		db, err := connection.ConnectGORMWithRetry(ctx, cfg.Database.DSN(), connectRetries, logger)
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, err
		}
		logger.Info("database connection established")
		return store.NewGormPersister(db), func() { _ = sqlDB.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
