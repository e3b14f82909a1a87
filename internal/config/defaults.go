package config

import "github.com/spf13/viper"

// DefaultConfigFile is the config file name looked up when no explicit
// path is given.
const DefaultConfigFile = "mintd.toml"

// setDefaults sets all default values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.jsonrpc_addr", "127.0.0.1:5005")
	v.SetDefault("server.grpc_addr", "")
	v.SetDefault("server.websocket_ping_frequency", 30)

	// Ledger defaults
	v.SetDefault("ledger.standalone", false)
	v.SetDefault("ledger.admin_account", "")

	// State store defaults
	v.SetDefault("state_store.backend", "memory")
	v.SetDefault("state_store.path", "")
	v.SetDefault("state_store.compressor", "lz4")
	v.SetDefault("state_store.cache_size", 16384)
	v.SetDefault("state_store.cache_ttl_seconds", 300)

	// History defaults
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "file:mintd_history.db")
	v.SetDefault("history.max_open_conns", 8)
	v.SetDefault("history.max_idle_conns", 4)

	v.SetDefault("debug_logfile", "")
}
