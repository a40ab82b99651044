package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"calpipe/refmatch/pkg/cli"
	"calpipe/refmatch/pkg/match"
)

var exptimeFlags struct {
	contexts []string
	files    []string
}

var exptimeCmd = &cobra.Command{
	Use:   "exptime",
	Short: "Derive the minimum effective timestamp of reference files",
	Long: `Derive, per context, the minimum effective timestamp across all match
paths of the given reference files.

The result bounds the earliest observation that reprocessing with those
files could affect. A reference without any temporal constraint
contributes ` + match.SentinelExptime + `. The command fails when a
reference has no match paths under a context: the minimum of an empty
sequence is undefined.

With a single context the bare minimum timestamp is printed. With more
than one, each line is prefixed with its context as "<context> : <min>".

Examples:
  refmatch exptime --contexts hst.pmap --files q9e1206kj_bia.fits
  refmatch exptime --contexts hst_0001.pmap,hst_0002.pmap \
      --files q9e1206kj_bia.fits,m4r1753rj_bia.fits`,
	RunE: runExptime,
}

func init() {
	rootCmd.AddCommand(exptimeCmd)

	exptimeCmd.Flags().StringSliceVar(&exptimeFlags.contexts, "contexts", nil, "context mapping identifiers")
	exptimeCmd.Flags().StringSliceVar(&exptimeFlags.files, "files", nil, "reference files to evaluate")
	exptimeCmd.MarkFlagRequired("contexts")
	exptimeCmd.MarkFlagRequired("files")
}

func runExptime(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	references := make([]string, 0, len(exptimeFlags.files))
	for _, file := range exptimeFlags.files {
		references = append(references, filepath.Base(file))
	}

	evaluator := match.NewEvaluator(match.NewResolver(newStore(cfg)))

	// A failing context does not stop evaluation of the others.
	var failed error
	multi := len(exptimeFlags.contexts) > 1
	for _, context := range exptimeFlags.contexts {
		min, err := evaluator.MinExptime(context, references)
		if err != nil {
			slog.Error("exptime evaluation failed", "context", context, "error", err)
			failed = err
			continue
		}
		if multi {
			fmt.Printf("%s : %s\n", context, min)
		} else {
			fmt.Println(min)
		}
	}
	if failed != nil {
		return cli.NewCommandError("exptime", failed)
	}
	return nil
}
