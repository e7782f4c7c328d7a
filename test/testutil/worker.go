package testutil

import (
	"context"
	"database/sql"

	"github.com/fhuszti/way2enjoy-go/internal/client"
	workerHandler "github.com/fhuszti/way2enjoy-go/internal/handler/worker"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/fhuszti/way2enjoy-go/internal/repository/mariadb"
	"github.com/fhuszti/way2enjoy-go/internal/task"
	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
	"github.com/hibiken/asynq"
)

// StartWorker starts an asynq worker running compression jobs against the
// API at apiEndpoint. It returns a function to gracefully shut down the worker.
func StartWorker(dbConn *sql.DB, strg port.Storage, redisAddr, apiEndpoint string) func() {
	repo := mariadb.NewJobRepository(dbConn)
	api := client.New("integration-key", client.WithEndpoint(apiEndpoint))
	optimiseSvc := compression.NewObjectOptimiser(repo, api, strg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeOptimiseObject, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseOptimiseObjectPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.OptimiseObjectHandler(ctx, p, optimiseSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 2})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
