package main

import (
	"context"
	"log"
	"lotbook/config"
	"lotbook/database"
	"lotbook/logging"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel, "migrate")
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		migratePostgres(ctx, cfg.Store.DatabaseURL, logger)
	case config.DriverMongo:
		migrateMongo(ctx, cfg.Store, logger)
	default:
		logger.Info("nothing to migrate", zap.String("driver", cfg.Store.Driver))
	}
}

func migratePostgres(ctx context.Context, databaseURL string, logger *zap.Logger) {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}
	defer conn.Close(ctx)

	migrationsDir := "./database/migrations"
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		logger.Fatal("failed to read migrations", zap.Error(err))
	}

	var sqlFiles []string
	for _, file := range files {
		if filepath.Ext(file.Name()) == ".sql" {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, file := range sqlFiles {
		logger.Info("running migration", zap.String("file", file))

		content, err := os.ReadFile(filepath.Join(migrationsDir, file))
		if err != nil {
			logger.Fatal("failed to read file", zap.String("file", file), zap.Error(err))
		}

		if _, err := conn.Exec(ctx, string(content)); err != nil {
			logger.Fatal("migration failed", zap.String("file", file), zap.Error(err))
		}
	}

	logger.Info("all migrations completed", zap.Int("count", len(sqlFiles)))
}

func migrateMongo(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) {
	cctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	store, err := database.ConnectMongo(cctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}
	defer store.Close(ctx)

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}
	logger.Info("indexes ensured", zap.String("collection", cfg.MongoCollection))
}
