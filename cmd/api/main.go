package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/way2enjoy-go/internal/config"
	"github.com/fhuszti/way2enjoy-go/internal/db"
	"github.com/fhuszti/way2enjoy-go/internal/handler/api"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	cMiddleware "github.com/fhuszti/way2enjoy-go/internal/middleware"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/fhuszti/way2enjoy-go/internal/repository/mariadb"
	"github.com/fhuszti/way2enjoy-go/internal/storage"
	"github.com/fhuszti/way2enjoy-go/internal/task"
	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, cfg.Buckets)

	jobRepo := mariadb.NewJobRepository(database.DB)
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		d := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		defer func() { _ = d.Close() }()
		dispatcher = d
		logger.Info(ctx, "✅  Task queue enabled")
	} else {
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, jobs will not be processed")
	}

	jobCreatorSvc := compression.NewJobCreator(jobRepo, strg, dispatcher, uuid.New)
	r.With(cMiddleware.RequireRole("admin", "uploader")).
		Post("/compressions", api.CreateJobHandler(jobCreatorSvc, cfg.Buckets))

	jobGetterSvc := compression.NewJobGetter(jobRepo)
	r.With(cMiddleware.WithJobID()).
		Get("/compressions/{id}", api.GetJobHandler(jobGetterSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.DBConfig())
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cMiddleware.WithJWTAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
