package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/document"
)

type Config struct {
	DBPath      string `yaml:"db_path"`      // ex: "./data/billkeeper.db"
	LogLevel    string `yaml:"log_level"`    // "debug" | "info" | "warn" | "error"
	MetricsFile string `yaml:"metrics_file"` // optional, empty = metrics not written
	StorageKey  string `yaml:"storage_key"`  // key the document is stored under
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:     "./data/billkeeper.db",
		LogLevel:   "info",
		StorageKey: document.DefaultKey,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBPath = getenv("BILLKEEPER_DB_PATH", cfg.DBPath)
	cfg.LogLevel = getenv("BILLKEEPER_LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsFile = getenv("BILLKEEPER_METRICS_FILE", cfg.MetricsFile)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if fileCfg.DBPath != "" {
		c.DBPath = fileCfg.DBPath
	}
	if fileCfg.LogLevel != "" {
		c.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.MetricsFile != "" {
		c.MetricsFile = fileCfg.MetricsFile
	}
	if fileCfg.StorageKey != "" {
		c.StorageKey = fileCfg.StorageKey
	}
	return nil
}

// Validate rejects settings the program cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("storage_key must not be empty"))
	}
	return errors.Join(errs...)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
