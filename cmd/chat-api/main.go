package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/chatloop/chat-api/internal/bootstrap"
	"github.com/chatloop/chat-api/internal/devseed"
	"github.com/chatloop/chat-api/internal/observability/statsd"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting chat-api",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"auth_mode", cfg.Auth.Mode,
	)

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cfg.Postgres,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	// Redis backs the optional verification cache; skip it entirely when
	// caching is off.
	var redisClient redis.UniversalClient
	if cfg.Auth.CacheEnabled {
		redisClient, err = bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
			RedisConfig: cfg.Redis,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	if cfg.IsDev {
		if seedErr := devseed.Run(ctx, devseed.NewRepos(db), logger); seedErr != nil {
			// Seeding is a convenience; a failure should not keep the server down.
			logger.WarnContext(ctx, "dev seed failed", "error", seedErr)
		}
	}

	authSvc, err := bootstrap.BuildAuthService(ctx, bootstrap.AuthDeps{
		Auth:        cfg.Auth,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	services := bootstrap.BuildServices(bootstrap.ServiceDeps{
		DB:     db,
		Auth:   authSvc,
		Logger: logger,
	})

	metricsSink, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Statsd.Enabled,
		Address: cfg.Statsd.Address,
		Prefix:  cfg.Statsd.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("statsd client: %w", err)
	}
	defer func() {
		if cerr := metricsSink.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
		}
	}()

	serverCfg := bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		DB:       db,
		Redis:    redisClient,
		Logger:   logger,
	}
	if metricsSink.Enabled() {
		serverCfg.Metrics = metricsSink
	}
	server := bootstrap.StartHTTPServer(&serverCfg)

	// Block until a termination signal arrives.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
		Context: ctx,
		Server:  server,
		Logger:  logger,
	})
}
