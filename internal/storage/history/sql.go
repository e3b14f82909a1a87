package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// sqlStore is the shared database/sql implementation behind both drivers.
// Driver differences are confined to the schema text and the placeholder
// style.
type sqlStore struct {
	config     Config
	driverName string
	schema     []string
	positional bool // true for $1-style placeholders
	db         *sql.DB
}

// Open connects and initializes the schema.
func (s *sqlStore) Open(ctx context.Context) error {
	db, err := sql.Open(s.driverName, s.config.DSN)
	if err != nil {
		return fmt.Errorf("history: open %s: %w", s.config.Driver, err)
	}

	if s.config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(s.config.MaxOpenConns)
	}
	if s.config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(s.config.MaxIdleConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("history: ping: %w", err)
	}

	for _, stmt := range s.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return fmt.Errorf("history: init schema: %w", err)
		}
	}

	s.db = db
	return nil
}

// Close releases the connection pool.
func (s *sqlStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Ping tests the connection.
func (s *sqlStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.PingContext(ctx)
}

// rebind rewrites ?-style placeholders to $N-style when the driver wants
// positional parameters.
func (s *sqlStore) rebind(query string) string {
	if !s.positional {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RecordOperation appends an operation record.
func (s *sqlStore) RecordOperation(ctx context.Context, rec *OperationRecord) error {
	if s.db == nil {
		return ErrClosed
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO operations (account, operation_type, token_id, result, applied, raw_json, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		rec.Account, rec.OperationType, int64(rec.TokenID), rec.Result, rec.Applied, rec.RawJSON, rec.RecordedAt)
	return err
}

// RecordEvent appends an event record.
func (s *sqlStore) RecordEvent(ctx context.Context, rec *EventRecord) error {
	if s.db == nil {
		return ErrClosed
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO events (stream, token_id, payload, recorded_at)
		VALUES (?, ?, ?, ?)`),
		rec.Stream, int64(rec.TokenID), rec.Payload, rec.RecordedAt)
	return err
}

// OperationsByAccount returns the most recent operations for an account.
func (s *sqlStore) OperationsByAccount(ctx context.Context, account string, limit int) ([]OperationRecord, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT seq, account, operation_type, token_id, result, applied, raw_json, recorded_at
		FROM operations WHERE account = ? ORDER BY seq DESC LIMIT ?`),
		account, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OperationRecord
	for rows.Next() {
		var rec OperationRecord
		var tokenID int64
		if err := rows.Scan(&rec.Seq, &rec.Account, &rec.OperationType, &tokenID,
			&rec.Result, &rec.Applied, &rec.RawJSON, &rec.RecordedAt); err != nil {
			return nil, err
		}
		rec.TokenID = uint64(tokenID)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// EventsByToken returns the notification log for a token, oldest first.
func (s *sqlStore) EventsByToken(ctx context.Context, tokenID uint64, limit int) ([]EventRecord, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT seq, stream, token_id, payload, recorded_at
		FROM events WHERE token_id = ? ORDER BY seq ASC LIMIT ?`),
		int64(tokenID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var rec EventRecord
		var id int64
		if err := rows.Scan(&rec.Seq, &rec.Stream, &id, &rec.Payload, &rec.RecordedAt); err != nil {
			return nil, err
		}
		rec.TokenID = uint64(id)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// OperationCount returns the total number of recorded operations.
func (s *sqlStore) OperationCount(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations`).Scan(&count)
	return count, err
}
