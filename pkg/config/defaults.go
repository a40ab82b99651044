package config

import "time"

// Default values applied to unset configuration fields.
const (
	DefaultMappingDir    = "./mappings"
	DefaultWatchDebounce = 500 * time.Millisecond
	DefaultMaxFileSize   = 10 * 1024 * 1024
	DefaultUsageBackend  = "memory"
	DefaultSQLitePath    = "data/usage.db"
	DefaultSyncBranch    = "main"
	DefaultSyncTimeout   = 60 * time.Second
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"
	DefaultMetricsListen = "127.0.0.1:9090"
	DefaultMetricsPath   = "/metrics"
)

// DefaultConfig returns a configuration populated with default values.
func DefaultConfig() *Config {
	cfg := &Config{
		Mapping: MappingConfig{Cache: true},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with default values. Boolean fields
// keep their zero value except Mapping.Cache, which callers enable via
// DefaultConfig or the YAML file.
func ApplyDefaults(cfg *Config) {
	if cfg.Mapping.Dir == "" {
		cfg.Mapping.Dir = DefaultMappingDir
	}
	if cfg.Mapping.WatchDebounce <= 0 {
		cfg.Mapping.WatchDebounce = DefaultWatchDebounce
	}
	if cfg.Mapping.MaxFileSize <= 0 {
		cfg.Mapping.MaxFileSize = DefaultMaxFileSize
	}

	if cfg.Usage.Backend == "" {
		cfg.Usage.Backend = DefaultUsageBackend
	}
	if cfg.Usage.SQLitePath == "" {
		cfg.Usage.SQLitePath = DefaultSQLitePath
	}

	if cfg.Sync.Branch == "" {
		cfg.Sync.Branch = DefaultSyncBranch
	}
	if cfg.Sync.Timeout <= 0 {
		cfg.Sync.Timeout = DefaultSyncTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListen
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
