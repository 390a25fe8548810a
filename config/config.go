// Package config resolves server settings from defaults, an optional
// YAML file and environment variables, in that order.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	AppName = "url2qr-mcp"

	DefaultPort           = 3000
	DefaultOutputDir      = "qrcodes"
	DefaultSessionTimeout = 30 * time.Minute
	DefaultSweepInterval  = 60 * time.Second
)

// Duration wraps time.Duration so YAML values like "30m" parse directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds the application configuration.
type Config struct {
	Port           int      `yaml:"port"`
	OutputDir      string   `yaml:"output_dir"`
	PublicBaseURL  string   `yaml:"public_base_url"`
	SessionTimeout Duration `yaml:"session_timeout"`
	SweepInterval  Duration `yaml:"sweep_interval"`
	DatabasePath   string   `yaml:"database_path"`
}

// GetConfig loads configuration from file and environment variables.
func GetConfig(customPath string) (*Config, error) {
	cfg := &Config{
		Port:           DefaultPort,
		OutputDir:      DefaultOutputDir,
		SessionTimeout: Duration(DefaultSessionTimeout),
		SweepInterval:  Duration(DefaultSweepInterval),
	}

	// 1. Load from YAML file
	configPath, err := resolveConfigPath(customPath)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err == nil { // File exists and is readable
			// Expand env vars before unmarshalling
			expandedFile := os.ExpandEnv(string(file))
			if err := yaml.Unmarshal([]byte(expandedFile), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			// File exists but is not readable for some reason
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	// 2. Override with environment variables
	if port := os.Getenv("URL2QR_PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &cfg.Port); err != nil {
			return nil, fmt.Errorf("invalid URL2QR_PORT: %w", err)
		}
	}
	if dir := os.Getenv("URL2QR_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if base := os.Getenv("URL2QR_PUBLIC_BASE_URL"); base != "" {
		cfg.PublicBaseURL = base
	}
	if timeout := os.Getenv("URL2QR_SESSION_TIMEOUT"); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid URL2QR_SESSION_TIMEOUT: %w", err)
		}
		cfg.SessionTimeout = Duration(parsed)
	}
	if interval := os.Getenv("URL2QR_SWEEP_INTERVAL"); interval != "" {
		parsed, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid URL2QR_SWEEP_INTERVAL: %w", err)
		}
		cfg.SweepInterval = Duration(parsed)
	}
	if dbPath := os.Getenv("URL2QR_DATABASE_PATH"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.OutputDir, "url2qr.db")
	}

	// 3. Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d is out of range (1-65535)", cfg.Port)
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir is not set. Please set URL2QR_OUTPUT_DIR or add to config file")
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	// The sweep interval bounds how long an expired session can outlive
	// its timeout; it must fit inside the timeout.
	if cfg.SessionTimeout <= cfg.SweepInterval {
		return fmt.Errorf("session_timeout (%s) must be longer than sweep_interval (%s)",
			time.Duration(cfg.SessionTimeout), time.Duration(cfg.SweepInterval))
	}
	if cfg.PublicBaseURL != "" {
		u, err := url.Parse(cfg.PublicBaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("public_base_url %q is not an absolute URL", cfg.PublicBaseURL)
		}
	}
	return nil
}

func resolveConfigPath(customPath string) (string, error) {
	if customPath != "" {
		return customPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.yaml"), nil
}
