// Package config loads the rcellosaurus YAML configuration, overlaying
// file values on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jimvine/rcellosaurus/internal/paths"
	"gopkg.in/yaml.v3"
)

// Config represents the rcellosaurus configuration.
type Config struct {
	DocumentPath string       `yaml:"document_path"` // Cellosaurus XML release
	Server       ServerConfig `yaml:"server"`
	Index        IndexConfig  `yaml:"index"`  // Optional full-text index
	Export       ExportConfig `yaml:"export"` // SQLite export
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	EnableCORS   bool   `yaml:"enable_cors"`
	DefaultLimit int    `yaml:"default_limit"` // Default result page size
	MaxLimit     int    `yaml:"max_limit"`     // Hard cap on result page size
}

// IndexConfig contains full-text index settings.
type IndexConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	BatchSize int    `yaml:"batch_size"` // Indexing batch size
}

// ExportConfig contains SQLite export settings.
type ExportConfig struct {
	Path      string `yaml:"path"`
	BatchSize int    `yaml:"batch_size"` // Rows per transaction
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DocumentPath: paths.GetDocumentPath(),
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8080,
			EnableCORS:   true,
			DefaultLimit: 100,
			MaxLimit:     1000,
		},
		Index: IndexConfig{
			Enabled:   true,
			Path:      paths.GetIndexPath(),
			BatchSize: 1000,
		},
		Export: ExportConfig{
			Path:      paths.GetExportPath(),
			BatchSize: 500,
		},
	}
}

// Load loads configuration from a file. A missing file is not an
// error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.DocumentPath = expandPath(config.DocumentPath)
	config.Index.Path = expandPath(config.Index.Path)
	config.Export.Path = expandPath(config.Export.Path)

	if config.Server.DefaultLimit <= 0 {
		config.Server.DefaultLimit = 100
	}
	if config.Server.MaxLimit < config.Server.DefaultLimit {
		config.Server.MaxLimit = config.Server.DefaultLimit
	}

	return config, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the config file path, checking the environment,
// the current directory, then the default location.
func GetConfigPath() string {
	if path := os.Getenv("RCELL_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat("rcellosaurus.yaml"); err == nil {
		return "rcellosaurus.yaml"
	}
	return filepath.Join(paths.GetPaths().ConfigDir, "config.yaml")
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
