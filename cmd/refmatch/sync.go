package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"calpipe/refmatch/pkg/cli"
	"calpipe/refmatch/pkg/mapping/gitsync"
)

var syncFlags struct {
	repo   string
	branch string
	depth  int
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the published mapping set from git",
	Long: `Clone or fast-forward the mapping distribution repository into the
local mapping directory.

The repository URL, branch, and checkout location default to the sync
section of the configuration file; flags override them.

Examples:
  refmatch sync --repo https://example.org/hst-mappings.git
  refmatch sync --repo https://example.org/hst-mappings.git --branch ops --depth 1`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncFlags.repo, "repo", "", "mapping repository URL")
	syncCmd.Flags().StringVar(&syncFlags.branch, "branch", "", "branch holding the published mapping set")
	syncCmd.Flags().IntVar(&syncFlags.depth, "depth", 0, "shallow clone depth (0 for full history)")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	syncConfig := gitsync.Config{
		Repository: cfg.Sync.Repository,
		Branch:     cfg.Sync.Branch,
		Depth:      cfg.Sync.Depth,
		LocalPath:  cfg.Sync.LocalPath,
		Timeout:    cfg.Sync.Timeout,
	}
	if syncConfig.LocalPath == "" {
		syncConfig.LocalPath = cfg.Mapping.Dir
	}
	if syncFlags.repo != "" {
		syncConfig.Repository = syncFlags.repo
	}
	if syncFlags.branch != "" {
		syncConfig.Branch = syncFlags.branch
	}
	if syncFlags.depth > 0 {
		syncConfig.Depth = syncFlags.depth
	}

	repo, err := gitsync.NewRepository(syncConfig)
	if err != nil {
		return cli.NewConfigError("sync.repository", err.Error())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := repo.Sync(ctx)
	if err != nil {
		return cli.NewCommandError("sync", err)
	}

	switch {
	case result.Cloned:
		fmt.Printf("cloned %s at %s\n", syncConfig.Repository, result.ToSHA)
	case result.Updated:
		fmt.Printf("updated %s..%s\n", result.FromSHA, result.ToSHA)
	default:
		fmt.Printf("up to date at %s\n", result.ToSHA)
	}
	fmt.Printf("mapping set: %s\n", repo.LocalPath())
	return nil
}
