package statestore

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
)

// PebbleBackend stores entries in a PebbleDB database.
type PebbleBackend struct {
	db     *pebble.DB
	config *Config
	open   int64
}

// NewPebbleBackend creates a new PebbleDB backend.
func NewPebbleBackend(config *Config) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Path == "" {
		return nil, fmt.Errorf("%w: pebble backend requires a path", ErrInvalidConfig)
	}
	return &PebbleBackend{config: config}, nil
}

// Name returns the name of this backend.
func (p *PebbleBackend) Name() string {
	return fmt.Sprintf("pebble(%s)", p.config.Path)
}

// Open opens the database, creating it if missing.
func (p *PebbleBackend) Open() error {
	if !atomic.CompareAndSwapInt64(&p.open, 0, 1) {
		return fmt.Errorf("backend already open")
	}

	if err := os.MkdirAll(p.config.Path, 0755); err != nil {
		atomic.StoreInt64(&p.open, 0)
		return fmt.Errorf("failed to create directory %s: %w", p.config.Path, err)
	}

	opts := &pebble.Options{
		Levels: []pebble.LevelOptions{
			{FilterPolicy: bloom.FilterPolicy(10)},
		},
	}

	db, err := pebble.Open(p.config.Path, opts)
	if err != nil {
		atomic.StoreInt64(&p.open, 0)
		return fmt.Errorf("failed to open pebble at %s: %w", p.config.Path, err)
	}
	p.db = db
	return nil
}

// Get returns the stored value, or ErrNotFound.
func (p *PebbleBackend) Get(key Key) ([]byte, error) {
	if atomic.LoadInt64(&p.open) == 0 {
		return nil, ErrBackendClosed
	}

	value, closer, err := p.db.Get(key[:])
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores a value, overwriting any previous one.
func (p *PebbleBackend) Put(key Key, value []byte) error {
	if atomic.LoadInt64(&p.open) == 0 {
		return ErrBackendClosed
	}
	return p.db.Set(key[:], value, pebble.Sync)
}

// Delete removes a value.
func (p *PebbleBackend) Delete(key Key) error {
	if atomic.LoadInt64(&p.open) == 0 {
		return ErrBackendClosed
	}
	return p.db.Delete(key[:], pebble.Sync)
}

// ForEach iterates over all stored entries.
func (p *PebbleBackend) ForEach(fn func(key Key, value []byte) bool) error {
	if atomic.LoadInt64(&p.open) == 0 {
		return ErrBackendClosed
	}

	iter, err := p.db.NewIter(nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		raw := iter.Key()
		if len(raw) != len(Key{}) {
			continue
		}
		var key Key
		copy(key[:], raw)
		if !fn(key, iter.Value()) {
			break
		}
	}
	return iter.Error()
}

// Close closes the database.
func (p *PebbleBackend) Close() error {
	if !atomic.CompareAndSwapInt64(&p.open, 1, 0) {
		return nil
	}
	return p.db.Close()
}
