package statestore

import "time"

// Config holds configuration for a state store and its backend.
type Config struct {
	// Backend selects the storage backend ("memory", "pebble", "leveldb")
	Backend string

	// Path is the on-disk location for persistent backends
	Path string

	// Compressor selects value compression ("none", "lz4")
	Compressor string

	// CacheSize is the number of entries kept in the read cache.
	// Zero disables the cache.
	CacheSize int

	// CacheTTL bounds how long a cached entry is trusted
	CacheTTL time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend:    "memory",
		Compressor: "lz4",
		CacheSize:  16384,
		CacheTTL:   5 * time.Minute,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Backend == "" {
		return ErrInvalidConfig
	}
	if c.Backend != "memory" && c.Path == "" {
		return ErrInvalidConfig
	}
	if c.CacheSize < 0 {
		return ErrInvalidConfig
	}
	return nil
}
