// Package config loads and validates the mintd configuration from its
// TOML file and MINTD_ environment variables.
package config

import (
	"time"

	"github.com/mintforge/goMintd/internal/storage/history"
	"github.com/mintforge/goMintd/internal/storage/statestore"
)

// Config represents the complete mintd configuration.
type Config struct {
	// Server section: listen addresses for the client surfaces.
	Server ServerConfig `toml:"server" mapstructure:"server"`

	// Ledger section: engine behavior.
	Ledger LedgerConfig `toml:"ledger" mapstructure:"ledger"`

	// StateStore section: persistence for ledger state.
	StateStore StateStoreConfig `toml:"state_store" mapstructure:"state_store"`

	// History section: the relational operation/event index.
	History HistoryConfig `toml:"history" mapstructure:"history"`

	// DebugLogfile redirects the process log when set.
	DebugLogfile string `toml:"debug_logfile" mapstructure:"debug_logfile"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig holds the listen addresses for the RPC surfaces.
type ServerConfig struct {
	// JSONRPCAddr is the host:port of the JSON-RPC and websocket server.
	JSONRPCAddr string `toml:"jsonrpc_addr" mapstructure:"jsonrpc_addr"`

	// GRPCAddr is the host:port of the gRPC server. Empty disables it.
	GRPCAddr string `toml:"grpc_addr" mapstructure:"grpc_addr"`

	// WebsocketPingFrequency is the keepalive ping interval in seconds.
	WebsocketPingFrequency int `toml:"websocket_ping_frequency" mapstructure:"websocket_ping_frequency"`
}

// LedgerConfig holds engine behavior settings.
type LedgerConfig struct {
	// Standalone skips signature verification on submitted operations.
	Standalone bool `toml:"standalone" mapstructure:"standalone"`

	// AdminAccount is the hex account id allowed to set the base
	// descriptor path. Empty disables the operation.
	AdminAccount string `toml:"admin_account" mapstructure:"admin_account"`
}

// StateStoreConfig holds the ledger state persistence settings.
type StateStoreConfig struct {
	// Backend selects the key-value backend: memory, pebble or leveldb.
	Backend string `toml:"backend" mapstructure:"backend"`

	// Path is the on-disk location for persistent backends.
	Path string `toml:"path" mapstructure:"path"`

	// Compressor names the entry compressor: none or lz4.
	Compressor string `toml:"compressor" mapstructure:"compressor"`

	// CacheSize is the entry cache capacity.
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`

	// CacheTTLSeconds bounds how long a cached entry stays valid.
	CacheTTLSeconds int `toml:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
}

// StoreConfig converts the section to the statestore's own config type.
func (c *StateStoreConfig) StoreConfig() *statestore.Config {
	return &statestore.Config{
		Backend:    c.Backend,
		Path:       c.Path,
		Compressor: c.Compressor,
		CacheSize:  c.CacheSize,
		CacheTTL:   time.Duration(c.CacheTTLSeconds) * time.Second,
	}
}

// HistoryConfig holds the operation history index settings.
type HistoryConfig struct {
	// Enabled turns history recording on.
	Enabled bool `toml:"enabled" mapstructure:"enabled"`

	// Driver selects the SQL driver: sqlite or postgres.
	Driver string `toml:"driver" mapstructure:"driver"`

	// DSN is the driver-specific connection string.
	DSN string `toml:"dsn" mapstructure:"dsn"`

	MaxOpenConns int `toml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int `toml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

// HistoryStoreConfig converts the section to the history package's config.
func (c *HistoryConfig) HistoryStoreConfig() history.Config {
	return history.Config{
		Driver:       c.Driver,
		DSN:          c.DSN,
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
	}
}

// ConfigPath returns the path the configuration was loaded from, empty if
// only defaults and environment were used.
func (c *Config) ConfigPath() string {
	return c.configPath
}
