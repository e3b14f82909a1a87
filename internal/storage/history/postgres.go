package history

import (
	_ "github.com/lib/pq" // PostgreSQL driver
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS operations (
		seq BIGSERIAL PRIMARY KEY,
		account TEXT NOT NULL,
		operation_type TEXT NOT NULL,
		token_id BIGINT NOT NULL DEFAULT 0,
		result TEXT NOT NULL,
		applied BOOLEAN NOT NULL,
		raw_json BYTEA,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_operations_account ON operations (account, seq)`,
	`CREATE TABLE IF NOT EXISTS events (
		seq BIGSERIAL PRIMARY KEY,
		stream TEXT NOT NULL,
		token_id BIGINT NOT NULL DEFAULT 0,
		payload BYTEA,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_token ON events (token_id, seq)`,
}

// newPostgresStore creates a postgres-backed history store for deployments
// where the history is queried by external services.
func newPostgresStore(cfg Config) Store {
	return &sqlStore{
		config:     cfg,
		driverName: "postgres",
		schema:     postgresSchema,
		positional: true,
	}
}
