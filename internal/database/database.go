// Package database opens the systems store and scopes work to transactions.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	apperrors "github.com/allisson/ros/internal/errors"
)

// Supported DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DefaultPingTimeout bounds the startup ping when Config.PingTimeout is zero.
const DefaultPingTimeout = 5 * time.Second

// ErrUnsupportedDriver is returned for drivers other than postgres and mysql.
var ErrUnsupportedDriver = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported database driver")

// Config describes the pool for the systems store.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	PingTimeout        time.Duration
}

// ValidateDriver reports whether driver is one the migrations and repositories ship for.
func ValidateDriver(driver string) error {
	switch driver {
	case DriverPostgres, DriverMySQL:
		return nil
	default:
		return apperrors.Wrapf(ErrUnsupportedDriver, "%q", driver)
	}
}

// Connect opens the pool and pings it within PingTimeout. The pool is closed when the ping fails.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	if err := ValidateDriver(cfg.Driver); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", apperrors.Wrap(apperrors.ErrUnavailable, err.Error()))
	}

	return db, nil
}
