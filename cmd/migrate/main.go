package main

import (
	"context"
	"os"
	"strings"

	"github.com/fhuszti/way2enjoy-go/internal/config"
	"github.com/fhuszti/way2enjoy-go/internal/db"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	dbCfg := cfg.DBConfig()
	dbCfg.DSN = withMultiStatements(dbCfg.DSN)
	database, err := db.New(dbCfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close() }()

	if err := migration.MigrateUp(database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}

func withMultiStatements(dsn string) string {
	if dsn == "" || strings.Contains(dsn, "multiStatements=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}
