package database

import (
	"context"
	"time"
)

// EnvironmentConfig is the immutable connection description for one named
// target deployment. Loaded once at startup, never mutated afterwards.
type EnvironmentConfig struct {
	Name     string
	Host     string
	Port     int
	Username string
	Password string
	// Database is the default database used when a query does not name one.
	Database string
	// Timeout bounds a single statement execution.
	Timeout time.Duration
	// PoolSize caps the number of live connections. Zero means DefaultPoolSize.
	PoolSize int
}

// Client is one live connection to a TDengine endpoint. Implementations are
// not safe for concurrent use; the pool guarantees single ownership between
// Acquire and Release.
type Client interface {
	// Query runs a single SQL statement against db (the environment default
	// when db is empty) and returns the normalized tabular result.
	Query(ctx context.Context, db, sql string) (*TabularResult, error)

	// Ping performs a lightweight liveness probe.
	Ping(ctx context.Context) error

	// Close releases the underlying transport.
	Close() error
}

// Dialer opens new connections for an environment. The REST dialer is the
// production implementation; tests substitute their own.
type Dialer func(cfg EnvironmentConfig) (Client, error)
