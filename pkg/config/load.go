package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow
// the naming convention REFMATCH_SECTION_FIELD and always take
// precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format REFMATCH_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Mapping overrides
	if val := os.Getenv("REFMATCH_MAPPING_DIR"); val != "" {
		cfg.Mapping.Dir = val
	}
	if val := os.Getenv("REFMATCH_MAPPING_CACHE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Mapping.Cache = b
		}
	}
	if val := os.Getenv("REFMATCH_MAPPING_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Mapping.Watch = b
		}
	}
	if val := os.Getenv("REFMATCH_MAPPING_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Mapping.WatchDebounce = d
		}
	}
	if val := os.Getenv("REFMATCH_MAPPING_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Mapping.MaxFileSize = i
		}
	}

	// Usage overrides
	if val := os.Getenv("REFMATCH_USAGE_BACKEND"); val != "" {
		cfg.Usage.Backend = val
	}
	if val := os.Getenv("REFMATCH_USAGE_SQLITE_PATH"); val != "" {
		cfg.Usage.SQLitePath = val
	}
	if val := os.Getenv("REFMATCH_USAGE_REFRESH_SCHEDULE"); val != "" {
		cfg.Usage.RefreshSchedule = val
	}

	// Sync overrides
	if val := os.Getenv("REFMATCH_SYNC_REPOSITORY"); val != "" {
		cfg.Sync.Repository = val
	}
	if val := os.Getenv("REFMATCH_SYNC_BRANCH"); val != "" {
		cfg.Sync.Branch = val
	}
	if val := os.Getenv("REFMATCH_SYNC_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Sync.Depth = i
		}
	}
	if val := os.Getenv("REFMATCH_SYNC_LOCAL_PATH"); val != "" {
		cfg.Sync.LocalPath = val
	}
	if val := os.Getenv("REFMATCH_SYNC_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Sync.Timeout = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("REFMATCH_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("REFMATCH_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("REFMATCH_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("REFMATCH_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("REFMATCH_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
