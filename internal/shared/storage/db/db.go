package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Options configures the database connection pool.
type Options struct {
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxOpenConns == 0 {
		o.MaxOpenConns = 10
	}
	if o.MaxIdleConns == 0 {
		o.MaxIdleConns = 5
	}
	if o.ConnMaxLifetime == 0 {
		o.ConnMaxLifetime = 30 * time.Minute
	}
	if o.ConnMaxIdleTime == 0 {
		o.ConnMaxIdleTime = 5 * time.Minute
	}
	return o
}

var (
	singletonOnce sync.Once
	singletonDB   *sql.DB
	singletonErr  error
)

// Connect opens a pgx-backed sql.DB and verifies connectivity.
func Connect(ctx context.Context, opts Options) (*sql.DB, error) {
	if opts.DatabaseURL == "" {
		return nil, fmt.Errorf("database url is required")
	}
	opts = opts.withDefaults()

	conn, err := sql.Open("pgx", opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return conn, nil
}

// GetSingleton returns a process-wide shared connection pool.
func GetSingleton(ctx context.Context, opts Options) (*sql.DB, error) {
	singletonOnce.Do(func() {
		singletonDB, singletonErr = Connect(ctx, opts)
	})
	return singletonDB, singletonErr
}
