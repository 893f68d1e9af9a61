package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps each project as a JSONB document in the projects
// table.
type PostgresStore struct {
	Pool   *pgxpool.Pool
	logger *zap.Logger
}

func Connect(ctx context.Context, databaseURL string, logger *zap.Logger) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return &PostgresStore{Pool: pool, logger: logger}, nil
}

func (db *PostgresStore) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *PostgresStore) Close(ctx context.Context) error {
	db.Pool.Close()
	db.logger.Info("database connection closed")
	return nil
}
