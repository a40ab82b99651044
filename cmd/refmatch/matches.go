package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"calpipe/refmatch/pkg/cli"
	"calpipe/refmatch/pkg/match"
)

var matchesFlags struct {
	contexts  []string
	files     []string
	brief     bool
	omitNames bool
	tuples    bool
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Show the match paths selecting reference files",
	Long: `Show the selection criteria by which each context's rule mapping
chooses the given reference files.

One line is printed per (context, reference, match path). A reference
the context never selects prints a single "none" line. The context
identifier prefixes each line only when more than one context is given.
File arguments are reduced to their basenames before resolution.

Examples:
  # Match paths of one reference under one context
  refmatch matches --contexts hst.pmap --files q9e1206kj_bia.fits

  # Compare two contexts, values only
  refmatch matches --contexts hst_0001.pmap,hst_0002.pmap \
      --files q9e1206kj_bia.fits --omit-parameter-names

  # Structured tuple output without the instrument/filekind prefix
  refmatch matches --contexts hst.pmap --files q9e1206kj_bia.fits -b -t`,
	RunE: runMatches,
}

func init() {
	rootCmd.AddCommand(matchesCmd)

	matchesCmd.Flags().StringSliceVar(&matchesFlags.contexts, "contexts", nil, "context mapping identifiers")
	matchesCmd.Flags().StringSliceVar(&matchesFlags.files, "files", nil, "reference files to look up")
	matchesCmd.Flags().BoolVarP(&matchesFlags.brief, "brief-paths", "b", false, "omit the instrument/filekind prefix")
	matchesCmd.Flags().BoolVarP(&matchesFlags.omitNames, "omit-parameter-names", "o", false, "show parameter values only")
	matchesCmd.Flags().BoolVarP(&matchesFlags.tuples, "tuple-format", "t", false, "render structured tuples instead of text")
	matchesCmd.MarkFlagRequired("contexts")
	matchesCmd.MarkFlagRequired("files")
}

func runMatches(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	resolver := match.NewResolver(newStore(cfg))
	presenter := match.NewPresenter(match.Options{
		BriefPaths:  matchesFlags.brief,
		OmitNames:   matchesFlags.omitNames,
		TupleFormat: matchesFlags.tuples,
	})

	// A context that fails to load is fatal for that context only; the
	// remaining contexts and references are still processed.
	var failed error
	multi := len(matchesFlags.contexts) > 1
	for _, context := range matchesFlags.contexts {
		label := ""
		if multi {
			label = context
		}
		for _, file := range matchesFlags.files {
			reference := filepath.Base(file)
			paths, err := resolver.Resolve(context, reference)
			if err != nil {
				slog.Error("match path resolution failed", "context", context, "reference", reference, "error", err)
				failed = err
				break
			}
			if err := presenter.Dump(os.Stdout, label, reference, paths); err != nil {
				return cli.NewCommandError("matches", err)
			}
		}
	}
	if failed != nil {
		return cli.NewCommandError("matches", failed)
	}
	return nil
}
