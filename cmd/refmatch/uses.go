package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"calpipe/refmatch/pkg/cli"
	"calpipe/refmatch/pkg/config"
	"calpipe/refmatch/pkg/usage"
	"calpipe/refmatch/pkg/usage/refresh"
	"calpipe/refmatch/pkg/usage/storage"
)

var usesFlags struct {
	files   []string
	rebuild bool
}

var usesCmd = &cobra.Command{
	Use:   "uses",
	Short: "Show the mappings that depend on files",
	Long: `Show the basenames of every mapping in the hierarchy that depends on
the given files, directly or through intermediate mappings.

For a reference file that is the reference mapping citing it, the
instrument mapping above, and the pipeline mapping at the top. The
lookup reads the usage index; with the memory backend (the default) the
mapping directory is scanned on every invocation, while the sqlite
backend persists the index across invocations and only scans when the
index is empty or --rebuild is given.

Examples:
  refmatch uses --files q9e1206kj_bia.fits
  refmatch uses --files hst_acs_biasfile.rmap --rebuild`,
	RunE: runUses,
}

func init() {
	rootCmd.AddCommand(usesCmd)

	usesCmd.Flags().StringSliceVar(&usesFlags.files, "files", nil, "reference or mapping files to look up")
	usesCmd.Flags().BoolVar(&usesFlags.rebuild, "rebuild", false, "rescan the mapping directory before the lookup")
	usesCmd.MarkFlagRequired("files")
}

func runUses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	index, err := openUsageStorage(cfg)
	if err != nil {
		return cli.NewCommandError("uses", err)
	}
	defer index.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	scanner := usage.NewScanner(newStore(cfg).Loader())
	refresher := refresh.NewRefresher(scanner, index, cfg.Usage.RefreshSchedule)

	count, err := index.Count(ctx)
	if err != nil {
		return cli.NewCommandError("uses", err)
	}
	if count == 0 || usesFlags.rebuild {
		if _, err := refresher.Rebuild(ctx); err != nil {
			return cli.NewCommandError("uses", err)
		}
	}

	multi := len(usesFlags.files) > 1
	for _, file := range usesFlags.files {
		name := filepath.Base(file)
		users, err := usage.TransitiveUsers(ctx, index, name)
		if err != nil {
			return cli.NewCommandError("uses", err)
		}
		if len(users) == 0 {
			if multi {
				fmt.Printf("%s : none\n", name)
			} else {
				fmt.Println("none")
			}
			continue
		}
		for _, user := range users {
			if multi {
				fmt.Printf("%s : %s\n", name, user)
			} else {
				fmt.Println(user)
			}
		}
	}
	return nil
}

// openUsageStorage builds the configured usage index backend.
func openUsageStorage(cfg *config.Config) (usage.Storage, error) {
	switch cfg.Usage.Backend {
	case "sqlite":
		sqliteConfig := storage.DefaultSQLiteConfig()
		sqliteConfig.Path = cfg.Usage.SQLitePath
		return storage.NewSQLiteStorage(sqliteConfig)
	default:
		return storage.NewMemoryStorage(), nil
	}
}
