// ABOUTME: Configuration management for snipsearch with YAML config loading.
// ABOUTME: Handles store location, search defaults, logging, env overrides, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultTopK is the number of query results shown when nothing is configured.
const DefaultTopK = 5

// EnvPrefix prefixes environment overrides, e.g. SNIPSEARCH_STORE_PATH.
const EnvPrefix = "SNIPSEARCH"

// Config stores snipsearch configuration loaded from ~/.config/snipsearch/config.yaml.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig locates the document collection.
type StoreConfig struct {
	Path    string `yaml:"path,omitempty" mapstructure:"path"`
	Backend string `yaml:"backend" mapstructure:"backend"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	TopK int `yaml:"top_k" mapstructure:"top_k"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{Backend: "json"},
		Search: SearchConfig{TopK: DefaultTopK},
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// Validate reports settings no command can work with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("store.backend must be json or sqlite, got %q", c.Store.Backend)
	}
	if c.Search.TopK <= 0 {
		return fmt.Errorf("search.top_k must be positive, got %d", c.Search.TopK)
	}
	return nil
}

// GetStorePath returns the store file path, defaulting to a file under the data dir.
func (c *Config) GetStorePath() (string, error) {
	if c.Store.Path != "" {
		return ExpandPath(c.Store.Path)
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	name := "store.json"
	if c.Store.Backend == "sqlite" {
		name = "store.db"
	}
	return filepath.Join(dataDir, name), nil
}

// DataDir returns the default snipsearch data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "snipsearch"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "snipsearch", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk and applies SNIPSEARCH_* environment overrides.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	def := Default()
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("store.backend", def.Store.Backend)
	v.SetDefault("search.top_k", def.Search.TopK)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
