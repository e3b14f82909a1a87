// Package statestore provides persistent key-value storage for ledger state
// entries. Entries are keyed by their 32-byte state index and stored through
// a pluggable backend, with optional LZ4 compression and an LRU read cache
// in front.
package statestore

import (
	"fmt"
	"sync"
)

// Key is the 32-byte state index of a ledger entry.
type Key = [32]byte

// Backend is a raw storage backend. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Name returns a human-readable backend identifier.
	Name() string

	// Open prepares the backend for use, creating it if missing.
	Open() error

	// Get returns the stored value, or ErrNotFound.
	Get(key Key) ([]byte, error)

	// Put stores a value, overwriting any previous one.
	Put(key Key, value []byte) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(key Key) error

	// ForEach iterates over all stored entries. If fn returns false,
	// iteration stops early.
	ForEach(fn func(key Key, value []byte) bool) error

	// Close releases backend resources.
	Close() error
}

// BackendFactory is a function that creates a new backend instance.
type BackendFactory func(config *Config) (Backend, error)

var (
	backendMu        sync.RWMutex
	backendFactories = make(map[string]BackendFactory)
)

// RegisterBackend registers a backend factory with the given name.
func RegisterBackend(name string, factory BackendFactory) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backendFactories[name] = factory
}

// CreateBackend creates a new backend instance for the given name and configuration.
func CreateBackend(name string, config *Config) (Backend, error) {
	backendMu.RLock()
	factory, ok := backendFactories[name]
	backendMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, name)
	}

	return factory(config)
}

// AvailableBackends returns a list of available backend names.
func AvailableBackends() []string {
	backendMu.RLock()
	defer backendMu.RUnlock()

	names := make([]string, 0, len(backendFactories))
	for name := range backendFactories {
		names = append(names, name)
	}
	return names
}

func init() {
	RegisterBackend("memory", func(config *Config) (Backend, error) {
		return NewMemoryBackend(), nil
	})
	RegisterBackend("pebble", NewPebbleBackend)
	RegisterBackend("leveldb", NewLevelDBBackend)
}
