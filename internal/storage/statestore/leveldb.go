package statestore

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBBackend stores entries in a LevelDB database. It is the lighter
// alternative to pebble for small deployments.
type LevelDBBackend struct {
	db     *leveldb.DB
	config *Config
	open   int64
}

// NewLevelDBBackend creates a new LevelDB backend.
func NewLevelDBBackend(config *Config) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Path == "" {
		return nil, fmt.Errorf("%w: leveldb backend requires a path", ErrInvalidConfig)
	}
	return &LevelDBBackend{config: config}, nil
}

// Name returns the name of this backend.
func (l *LevelDBBackend) Name() string {
	return fmt.Sprintf("leveldb(%s)", l.config.Path)
}

// Open opens the database, creating it if missing.
func (l *LevelDBBackend) Open() error {
	if !atomic.CompareAndSwapInt64(&l.open, 0, 1) {
		return fmt.Errorf("backend already open")
	}

	db, err := leveldb.OpenFile(l.config.Path, nil)
	if err != nil {
		atomic.StoreInt64(&l.open, 0)
		return fmt.Errorf("failed to open leveldb at %s: %w", l.config.Path, err)
	}
	l.db = db
	return nil
}

// Get returns the stored value, or ErrNotFound.
func (l *LevelDBBackend) Get(key Key) ([]byte, error) {
	if atomic.LoadInt64(&l.open) == 0 {
		return nil, ErrBackendClosed
	}

	value, err := l.db.Get(key[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores a value, overwriting any previous one.
func (l *LevelDBBackend) Put(key Key, value []byte) error {
	if atomic.LoadInt64(&l.open) == 0 {
		return ErrBackendClosed
	}
	return l.db.Put(key[:], value, nil)
}

// Delete removes a value.
func (l *LevelDBBackend) Delete(key Key) error {
	if atomic.LoadInt64(&l.open) == 0 {
		return ErrBackendClosed
	}
	return l.db.Delete(key[:], nil)
}

// ForEach iterates over all stored entries.
func (l *LevelDBBackend) ForEach(fn func(key Key, value []byte) bool) error {
	if atomic.LoadInt64(&l.open) == 0 {
		return ErrBackendClosed
	}

	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
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
func (l *LevelDBBackend) Close() error {
	if !atomic.CompareAndSwapInt64(&l.open, 1, 0) {
		return nil
	}
	return l.db.Close()
}
