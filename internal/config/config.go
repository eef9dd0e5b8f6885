package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Hash    HashConfig   `yaml:"hash"`
	Scan    ScanConfig   `yaml:"scan"`
	Output  OutputConfig `yaml:"output"`
	Verbose bool         `yaml:"verbose"`
}

// HashConfig controls the content-digest stage
type HashConfig struct {
	// Algorithm selects the content digest: "blake3" or "sha256".
	Algorithm string `yaml:"algorithm"`
	// Workers bounds the hashing worker pool. 1 means strictly
	// sequential hashing with deterministic progress ordering.
	Workers int `yaml:"workers"`
}

// ScanConfig controls file enumeration
type ScanConfig struct {
	// MinFileSize excludes files smaller than this many bytes.
	// 0 includes everything, empty files included.
	MinFileSize int64 `yaml:"min_file_size"`
	// ExcludePatterns are glob patterns matched against file paths.
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format string `yaml:"format"` // summary, table, json, yaml
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Hash.Algorithm {
	case "blake3", "sha256":
	default:
		return fmt.Errorf("unknown hash algorithm: %s", c.Hash.Algorithm)
	}

	if c.Hash.Workers < 1 {
		return fmt.Errorf("hash workers must be >= 1")
	}

	if c.Scan.MinFileSize < 0 {
		return fmt.Errorf("min file size must be >= 0")
	}

	for _, pattern := range c.Scan.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	switch c.Output.Format {
	case "summary", "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}

	return nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "dupefinder")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := GetDefault()
		if err := Save(defaultConfig, configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
