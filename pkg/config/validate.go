package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "mapping.dir").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateMapping(&cfg.Mapping)...)
	errs = append(errs, validateUsage(&cfg.Usage)...)
	errs = append(errs, validateSync(&cfg.Sync)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateMapping(cfg *MappingConfig) []FieldError {
	var errs []FieldError

	if cfg.Dir == "" {
		errs = append(errs, FieldError{
			Field:   "mapping.dir",
			Message: "mapping directory is required",
		})
	}
	if cfg.MaxFileSize < 0 {
		errs = append(errs, FieldError{
			Field:   "mapping.max_file_size",
			Message: "max file size must be positive",
		})
	}
	if cfg.WatchDebounce < 0 {
		errs = append(errs, FieldError{
			Field:   "mapping.watch_debounce",
			Message: "watch debounce must be positive",
		})
	}
	return errs
}

func validateUsage(cfg *UsageConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "usage.backend",
			Message: fmt.Sprintf("unknown backend %q, must be one of: memory, sqlite", cfg.Backend),
		})
	}
	if cfg.Backend == "sqlite" && cfg.SQLitePath == "" {
		errs = append(errs, FieldError{
			Field:   "usage.sqlite_path",
			Message: "sqlite path is required for the sqlite backend",
		})
	}
	if cfg.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "usage.refresh_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}
	return errs
}

func validateSync(cfg *SyncConfig) []FieldError {
	var errs []FieldError

	if cfg.Depth < 0 {
		errs = append(errs, FieldError{
			Field:   "sync.depth",
			Message: "clone depth must be positive",
		})
	}
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "sync.timeout",
			Message: "timeout must be positive",
		})
	}
	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q, must be one of: debug, info, warn, error", cfg.Logging.Level),
		})
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q, must be one of: json, text", cfg.Logging.Format),
		})
	}
	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.listen_address",
			Message: "listen address is required when metrics are enabled",
		})
	}
	return errs
}
