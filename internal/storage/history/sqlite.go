package history

import (
	_ "modernc.org/sqlite" // sqlite driver
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS operations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		account TEXT NOT NULL,
		operation_type TEXT NOT NULL,
		token_id INTEGER NOT NULL DEFAULT 0,
		result TEXT NOT NULL,
		applied BOOLEAN NOT NULL,
		raw_json BLOB,
		recorded_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_operations_account ON operations (account, seq)`,
	`CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		stream TEXT NOT NULL,
		token_id INTEGER NOT NULL DEFAULT 0,
		payload BLOB,
		recorded_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_token ON events (token_id, seq)`,
}

// newSQLiteStore creates a sqlite-backed history store. Sqlite is the
// default for standalone deployments: no external database to run.
func newSQLiteStore(cfg Config) Store {
	return &sqlStore{
		config:     cfg,
		driverName: "sqlite",
		schema:     sqliteSchema,
		positional: false,
	}
}
