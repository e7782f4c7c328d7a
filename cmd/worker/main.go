package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fhuszti/way2enjoy-go/internal/client"
	"github.com/fhuszti/way2enjoy-go/internal/config"
	"github.com/fhuszti/way2enjoy-go/internal/db"
	workerHandler "github.com/fhuszti/way2enjoy-go/internal/handler/worker"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/fhuszti/way2enjoy-go/internal/repository/mariadb"
	"github.com/fhuszti/way2enjoy-go/internal/storage"
	"github.com/fhuszti/way2enjoy-go/internal/task"
	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)

	strg := initStorage(cfg)
	initBuckets(strg, cfg.Buckets)

	repo := mariadb.NewJobRepository(database.DB)
	api := client.New(cfg.APIKey, cfg.ClientOptions()...)
	optimiseSvc := compression.NewObjectOptimiser(repo, api, strg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeOptimiseObject, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseOptimiseObjectPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.OptimiseObjectHandler(ctx, p, optimiseSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.DBConfig())
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(context.Background(), "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: cfg.WorkerConcurrency})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Infof(ctx, "🚀 Worker started with %d slot(s)", cfg.WorkerConcurrency)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks, wait for in-flight ones up to asynq's ShutdownTimeout
	srv.Shutdown()

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
