package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "127.0.0.1:5005", config.Server.JSONRPCAddr)
	assert.Empty(t, config.Server.GRPCAddr)
	assert.False(t, config.Ledger.Standalone)
	assert.Equal(t, "memory", config.StateStore.Backend)
	assert.Equal(t, "lz4", config.StateStore.Compressor)
	assert.False(t, config.History.Enabled)
	assert.Empty(t, config.ConfigPath())
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()

	content := `
debug_logfile = "/var/log/mintd.log"

[server]
jsonrpc_addr = "0.0.0.0:8080"
grpc_addr = "0.0.0.0:50051"

[ledger]
standalone = true
admin_account = "aa11223344556677889900aabbccddeeff001122"

[state_store]
backend = "pebble"
path = "/tmp/mintd/state"
compressor = "lz4"
cache_size = 4096
cache_ttl_seconds = 60

[history]
enabled = true
driver = "sqlite"
dsn = "file:history.db"
`

	path := filepath.Join(tempDir, "mintd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", config.Server.JSONRPCAddr)
	assert.Equal(t, "0.0.0.0:50051", config.Server.GRPCAddr)
	assert.True(t, config.Ledger.Standalone)
	assert.Equal(t, "aa11223344556677889900aabbccddeeff001122", config.Ledger.AdminAccount)
	assert.Equal(t, "pebble", config.StateStore.Backend)
	assert.Equal(t, "/tmp/mintd/state", config.StateStore.Path)
	assert.True(t, config.History.Enabled)
	assert.Equal(t, path, config.ConfigPath())

	storeCfg := config.StateStore.StoreConfig()
	assert.Equal(t, 4096, storeCfg.CacheSize)
	assert.Equal(t, time.Minute, storeCfg.CacheTTL)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid, err := LoadConfig("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty jsonrpc addr", func(c *Config) { c.Server.JSONRPCAddr = "" }},
		{"bad jsonrpc addr", func(c *Config) { c.Server.JSONRPCAddr = "no-port" }},
		{"bad grpc addr", func(c *Config) { c.Server.GRPCAddr = "no-port" }},
		{"bad admin account", func(c *Config) { c.Ledger.AdminAccount = "zz" }},
		{"short admin account", func(c *Config) { c.Ledger.AdminAccount = "aabb" }},
		{"unknown backend", func(c *Config) { c.StateStore.Backend = "rocksdb" }},
		{"persistent backend without path", func(c *Config) { c.StateStore.Backend = "pebble" }},
		{"history without dsn", func(c *Config) {
			c.History.Enabled = true
			c.History.DSN = ""
		}},
		{"unknown history driver", func(c *Config) {
			c.History.Enabled = true
			c.History.Driver = "oracle"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			assert.Error(t, ValidateConfig(&cfg))
		})
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MINTD_SERVER_JSONRPC_ADDR", "127.0.0.1:9999")
	t.Setenv("MINTD_LEDGER_STANDALONE", "true")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", config.Server.JSONRPCAddr)
	assert.True(t, config.Ledger.Standalone)
}
