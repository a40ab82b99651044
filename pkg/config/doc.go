// Package config provides configuration management for refmatch.
//
// This package handles loading, validating, and managing configuration
// from YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention REFMATCH_SECTION_FIELD.
// For example:
//
//   - REFMATCH_MAPPING_DIR overrides mapping.dir
//   - REFMATCH_USAGE_BACKEND overrides usage.backend
//   - REFMATCH_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	mapping:
//	  dir: "./mappings"
//	  watch: true
//
//	usage:
//	  backend: "sqlite"
//	  sqlite_path: "data/usage.db"
//	  refresh_schedule: "0 3 * * *"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
