package statestore

import (
	"fmt"

	"github.com/mintforge/goMintd/internal/storage/statestore/compression"
)

// Store combines a backend with value compression and an LRU read cache.
// It is the durable home of ledger state: the in-memory state map writes
// through to it on every commit and reloads from it at startup.
type Store struct {
	backend    Backend
	compressor compression.Compressor
	cache      *Cache
}

// Open creates and opens a store from configuration.
func Open(config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	backend, err := CreateBackend(config.Backend, config)
	if err != nil {
		return nil, err
	}
	if err := backend.Open(); err != nil {
		return nil, err
	}

	compressorName := config.Compressor
	if compressorName == "" {
		compressorName = "none"
	}
	compressor, err := compression.Get(compressorName)
	if err != nil {
		backend.Close()
		return nil, err
	}

	store := &Store{
		backend:    backend,
		compressor: compressor,
	}

	if config.CacheSize > 0 {
		cache, err := NewCache(config.CacheSize, config.CacheTTL)
		if err != nil {
			backend.Close()
			return nil, err
		}
		store.cache = cache
	}

	return store, nil
}

// Name identifies the underlying backend.
func (s *Store) Name() string {
	return s.backend.Name()
}

// Get returns the stored entry, or ErrNotFound.
func (s *Store) Get(key Key) ([]byte, error) {
	if s.cache != nil {
		if value, ok := s.cache.Get(key); ok {
			return value, nil
		}
	}

	raw, err := s.backend.Get(key)
	if err != nil {
		return nil, err
	}

	value, err := s.compressor.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("statestore: corrupt entry: %w", err)
	}

	if s.cache != nil {
		s.cache.Put(key, value)
	}
	return value, nil
}

// Put stores an entry, overwriting any previous value.
func (s *Store) Put(key Key, value []byte) error {
	raw, err := s.compressor.Compress(value)
	if err != nil {
		return err
	}
	if err := s.backend.Put(key, raw); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Put(key, value)
	}
	return nil
}

// Delete removes an entry.
func (s *Store) Delete(key Key) error {
	if err := s.backend.Delete(key); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(key)
	}
	return nil
}

// ForEach iterates over all stored entries, decompressing each value.
func (s *Store) ForEach(fn func(key Key, value []byte) bool) error {
	var decompressErr error
	err := s.backend.ForEach(func(key Key, raw []byte) bool {
		value, err := s.compressor.Decompress(raw)
		if err != nil {
			decompressErr = fmt.Errorf("statestore: corrupt entry: %w", err)
			return false
		}
		return fn(key, value)
	})
	if err != nil {
		return err
	}
	return decompressErr
}

// CacheStats returns read-cache hit and miss counts, zero when no cache is
// configured.
func (s *Store) CacheStats() (hits, misses uint64) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
