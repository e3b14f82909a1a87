package config

import (
	"encoding/hex"
	"fmt"
	"net"
)

// ValidateConfig performs validation on the complete configuration.
func ValidateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateLedgerConfig(&config.Ledger); err != nil {
		return fmt.Errorf("ledger config validation failed: %w", err)
	}
	if err := validateStateStoreConfig(&config.StateStore); err != nil {
		return fmt.Errorf("state_store config validation failed: %w", err)
	}
	if err := validateHistoryConfig(&config.History); err != nil {
		return fmt.Errorf("history config validation failed: %w", err)
	}
	return nil
}

func validateServerConfig(server *ServerConfig) error {
	if server.JSONRPCAddr == "" {
		return fmt.Errorf("jsonrpc_addr must not be empty")
	}
	if _, _, err := net.SplitHostPort(server.JSONRPCAddr); err != nil {
		return fmt.Errorf("invalid jsonrpc_addr %q: %w", server.JSONRPCAddr, err)
	}
	if server.GRPCAddr != "" {
		if _, _, err := net.SplitHostPort(server.GRPCAddr); err != nil {
			return fmt.Errorf("invalid grpc_addr %q: %w", server.GRPCAddr, err)
		}
	}
	if server.WebsocketPingFrequency < 0 {
		return fmt.Errorf("websocket_ping_frequency must not be negative")
	}
	return nil
}

func validateLedgerConfig(ledger *LedgerConfig) error {
	if ledger.AdminAccount == "" {
		return nil
	}
	raw, err := hex.DecodeString(ledger.AdminAccount)
	if err != nil || len(raw) != 20 {
		return fmt.Errorf("admin_account must be a 20-byte hex account id")
	}
	return nil
}

func validateStateStoreConfig(store *StateStoreConfig) error {
	switch store.Backend {
	case "memory", "pebble", "leveldb":
	default:
		return fmt.Errorf("unsupported state store backend %q", store.Backend)
	}
	switch store.Compressor {
	case "none", "lz4":
	default:
		return fmt.Errorf("unsupported compressor %q", store.Compressor)
	}
	if store.Backend != "memory" && store.Path == "" {
		return fmt.Errorf("backend %q requires a path", store.Backend)
	}
	return store.StoreConfig().Validate()
}

func validateHistoryConfig(history *HistoryConfig) error {
	if !history.Enabled {
		return nil
	}
	switch history.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported history driver %q", history.Driver)
	}
	if history.DSN == "" {
		return fmt.Errorf("history dsn must not be empty")
	}
	return nil
}
