package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDB holds the write pool and an optional read-replica pool.
// Leaderboard and report queries go to the read pool; ledger writes,
// settlement and quota enforcement always use the write pool.
type PostgresDB struct {
	Pool     *pgxpool.Pool
	ReadPool *pgxpool.Pool
}

// NewPostgresDB creates the connection pools. readURL may equal writeURL,
// in which case a single pool serves both roles.
func NewPostgresDB(ctx context.Context, writeURL, readURL string) (*PostgresDB, error) {
	writePool, err := newPool(ctx, writeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create write pool: %w", err)
	}

	db := &PostgresDB{Pool: writePool, ReadPool: writePool}

	if readURL != "" && readURL != writeURL {
		readPool, err := newPool(ctx, readURL)
		if err != nil {
			writePool.Close()
			return nil, fmt.Errorf("failed to create read pool: %w", err)
		}
		db.ReadPool = readPool
	}

	return db, nil
}

func newPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.HealthCheckPeriod = time.Minute
	config.ConnConfig.ConnectTimeout = time.Second * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Close closes the connection pools
func (db *PostgresDB) Close() {
	if db.ReadPool != nil && db.ReadPool != db.Pool {
		db.ReadPool.Close()
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health checks both connection pools
func (db *PostgresDB) Health(ctx context.Context) error {
	if err := db.Pool.Ping(ctx); err != nil {
		return err
	}
	if db.ReadPool != nil && db.ReadPool != db.Pool {
		return db.ReadPool.Ping(ctx)
	}
	return nil
}
