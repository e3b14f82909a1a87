package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (mintd.toml), when present
// 3. Environment variables (MINTD_ prefix)
//
// An empty path means no config file is required: defaults plus the
// environment make a complete configuration for standalone use.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	usedPath, err := loadConfigFile(v, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	v.SetEnvPrefix("MINTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = usedPath

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadConfigFile reads the config file into viper. With an explicit path
// the file must exist; with no path the default file is read only when
// present.
func loadConfigFile(v *viper.Viper, path string) (string, error) {
	required := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return "", fmt.Errorf("config file does not exist: %s", path)
		}
		return "", nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return path, nil
}
