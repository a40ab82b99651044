package config

import "time"

// Config is the root configuration for refmatch.
type Config struct {
	// Mapping configures the mapping directory and cache behavior.
	Mapping MappingConfig `yaml:"mapping"`

	// Usage configures the reverse-lookup index.
	Usage UsageConfig `yaml:"usage"`

	// Sync configures git delivery of mapping sets.
	Sync SyncConfig `yaml:"sync"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// MappingConfig configures where mapping files live and how they are
// cached.
type MappingConfig struct {
	// Dir is the mapping directory.
	Dir string `yaml:"dir"`

	// Cache controls read-through caching of loaded mappings.
	Cache bool `yaml:"cache"`

	// Watch enables filesystem watching of the mapping directory in
	// serve mode; changed files are evicted from the cache.
	Watch bool `yaml:"watch"`

	// WatchDebounce is the quiet interval before a burst of file
	// events triggers one cache invalidation.
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// MaxFileSize is the maximum mapping file size in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// UsageConfig configures the usage index.
type UsageConfig struct {
	// Backend selects the index backend: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// RefreshSchedule is a cron expression for scheduled index
	// rebuilds in serve mode. Empty disables scheduled rebuilds.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// SyncConfig configures git delivery of mapping sets.
type SyncConfig struct {
	// Repository is the clone URL of the mapping distribution repo.
	Repository string `yaml:"repository"`

	// Branch is the branch holding the published mapping set.
	Branch string `yaml:"branch"`

	// Depth is the shallow-clone depth; 0 clones full history.
	Depth int `yaml:"depth"`

	// LocalPath is the checkout location.
	LocalPath string `yaml:"local_path"`

	// Timeout bounds clone and pull operations.
	Timeout time.Duration `yaml:"timeout"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `yaml:"level"`

	// Format is the output format: json or text.
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics endpoint served in
// serve mode.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the host:port the metrics server binds to.
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `yaml:"path"`
}
