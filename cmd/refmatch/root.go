package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calpipe/refmatch/pkg/config"
	"calpipe/refmatch/pkg/mapping"
	"calpipe/refmatch/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "refmatch",
	Short: "refmatch - rule-mapping selection-criteria inspector",
	Long: `Refmatch resolves and presents the selection criteria ("match paths")
by which a hierarchical rule mapping chooses a reference file for an
observation.

It answers three questions about a mapping hierarchy:
  - Which match rules select a given reference file (matches)
  - From which observation timestamp those rules apply (exptime)
  - Which mappings depend on a given file (uses)

Mapping sets are plain directories of pipeline (.pmap), instrument
(.imap), and reference (.rmap) mapping files, optionally delivered
from a git repository (sync) and validated structurally (lint).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file named by --config. When the
// flag is left at its default and no file exists, built-in defaults
// apply so single-shot commands work without a config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !cmd.Flags().Changed("config") && !cmd.InheritedFlags().Changed("config") {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read configuration file %q: %w", cfgFile, err)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// setupLogging installs the configured logger as the process default.
// The --verbose flag forces debug level.
func setupLogging(cfg *config.Config) error {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return err
	}
	logger.Install()
	return nil
}

// newStore builds the mapping store described by the configuration.
func newStore(cfg *config.Config) *mapping.Store {
	loaderConfig := mapping.DefaultLoaderConfig()
	loaderConfig.MaxFileSize = cfg.Mapping.MaxFileSize
	return mapping.NewStore(cfg.Mapping.Dir, loaderConfig)
}
