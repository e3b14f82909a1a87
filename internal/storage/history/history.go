// Package history records applied operations and their notifications in a
// relational database for later querying. It is an index, not the source
// of truth; the statestore-backed ledger state is authoritative and the
// history can always be rebuilt from a replay.
package history

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrClosed indicates that the store is not open
	ErrClosed = errors.New("history store is closed")

	// ErrUnsupportedDriver indicates an unknown database driver
	ErrUnsupportedDriver = errors.New("unsupported history driver")
)

// Config holds connection settings for the history store.
type Config struct {
	// Driver selects the database ("sqlite" or "postgres")
	Driver string

	// DSN is the driver-specific connection string. For sqlite this is a
	// file path; ":memory:" gives an ephemeral store.
	DSN string

	// MaxOpenConns bounds the connection pool
	MaxOpenConns int

	// MaxIdleConns bounds idle pooled connections
	MaxIdleConns int
}

// DefaultConfig returns an in-memory sqlite configuration.
func DefaultConfig() Config {
	return Config{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}
}

// OperationRecord is one submitted operation and its outcome.
type OperationRecord struct {
	Seq           int64     `json:"seq"`
	Account       string    `json:"account"`
	OperationType string    `json:"operation_type"`
	TokenID       uint64    `json:"token_id"`
	Result        string    `json:"result"`
	Applied       bool      `json:"applied"`
	RawJSON       []byte    `json:"raw_json,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// EventRecord is one notification emitted by a committed operation.
type EventRecord struct {
	Seq        int64     `json:"seq"`
	Stream     string    `json:"stream"`
	TokenID    uint64    `json:"token_id"`
	Payload    []byte    `json:"payload"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Store is the history persistence interface.
type Store interface {
	// Open connects and initializes the schema.
	Open(ctx context.Context) error

	// Close releases the connection pool.
	Close() error

	// Ping tests the connection.
	Ping(ctx context.Context) error

	// RecordOperation appends an operation record.
	RecordOperation(ctx context.Context, rec *OperationRecord) error

	// RecordEvent appends an event record.
	RecordEvent(ctx context.Context, rec *EventRecord) error

	// OperationsByAccount returns the most recent operations submitted by
	// an account, newest first.
	OperationsByAccount(ctx context.Context, account string, limit int) ([]OperationRecord, error)

	// EventsByToken returns the notification log for a token, oldest first.
	EventsByToken(ctx context.Context, tokenID uint64, limit int) ([]EventRecord, error)

	// OperationCount returns the total number of recorded operations.
	OperationCount(ctx context.Context) (int64, error)
}

// New creates a store for the configured driver.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return newSQLiteStore(cfg), nil
	case "postgres":
		return newPostgresStore(cfg), nil
	default:
		return nil, ErrUnsupportedDriver
	}
}
