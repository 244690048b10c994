/*
Package config manages the TOML config for wordrank services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Index  IndexConfig  `toml:"index"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MinPrefix int `toml:"min_prefix"`
	MaxPrefix int `toml:"max_prefix"`
}

// IndexConfig holds options for the suggestion index.
type IndexConfig struct {
	MinWeightThreshold int `toml:"min_weight_threshold"`
	HotCachePrefixes   int `toml:"hot_cache_prefixes"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit  int `toml:"default_limit"`
	DefaultMinLen int `toml:"default_min_len"`
	DefaultMaxLen int `toml:"default_max_len"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:  64,
			MinPrefix: 1,
			MaxPrefix: 60,
		},
		Index: IndexConfig{
			MinWeightThreshold: 0,
			HotCachePrefixes:   256,
		},
		CLI: CliConfig{
			DefaultLimit:  24,
			DefaultMinLen: 1,
			DefaultMaxLen: 24,
		},
	}
}

// GetDefaultConfigPath returns [UserConfigDir]/wordrank/config.toml.
func GetDefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wordrank", "config.toml"), nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values absent from the file keep their
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server config values and saves to file
func (c *Config) Update(configPath string, maxLimit, minPrefix, maxPrefix *int) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if minPrefix != nil {
		server.MinPrefix = *minPrefix
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	return SaveConfig(c, configPath)
}
