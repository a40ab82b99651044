package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calpipe/refmatch/pkg/cli"
	"calpipe/refmatch/pkg/mapping"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate mapping files",
	Long: `Validate mapping files for syntax and structural errors.

The lint command parses mapping files and performs validation:
  - YAML syntax validation
  - Header validation (name, kind, observatory, parameter keys)
  - Selector validation per mapping kind (entries, match lists,
    useafter timestamps, nested compound rules)

Examples:
  # Lint a single file
  refmatch lint --file hst_acs_biasfile.rmap

  # Lint a mapping directory
  refmatch lint --dir ./mappings

  # JSON output for CI
  refmatch lint --dir ./mappings --format json`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "mapping file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of mapping files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the validation result for a single mapping file.
type LintResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func runLint(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}
	format := cli.OutputFormat(lintFlags.format)
	if !format.Valid() {
		return fmt.Errorf("unknown output format %q", lintFlags.format)
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		loader := mapping.NewLoader(lintFlags.dir, nil)
		collected, err := loader.CollectFiles()
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		files = append(files, collected...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no mapping files found")
	}

	results := make([]LintResult, 0, len(files))
	failed := false
	for _, file := range files {
		result := lintFile(file)
		if !result.Valid {
			failed = true
		}
		results = append(results, result)
	}

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, results); err != nil {
			return cli.NewCommandError("lint", err)
		}
	} else {
		printLintText(results)
	}

	if failed {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}
	return nil
}

// lintFile validates one mapping file, expanding aggregated validation
// errors into individual messages.
func lintFile(path string) LintResult {
	result := LintResult{File: path, Valid: true}

	loader := mapping.NewLoader(".", nil)
	if _, err := loader.LoadFile(path); err != nil {
		result.Valid = false

		var parseErr *mapping.ParseError
		if errors.As(err, &parseErr) {
			var validationErrs mapping.ValidationErrors
			if errors.As(parseErr.Cause, &validationErrs) {
				for _, e := range validationErrs {
					result.Errors = append(result.Errors, e.Error())
				}
				return result
			}
		}
		result.Errors = append(result.Errors, err.Error())
	}
	return result
}

func printLintText(results []LintResult) {
	totalErrors := 0
	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)
		if result.Valid {
			fmt.Println("  ok")
			continue
		}
		for _, msg := range result.Errors {
			fmt.Printf("  error: %s\n", msg)
			totalErrors++
		}
	}
	fmt.Printf("\nSummary: %d file(s), %d error(s)\n", len(results), totalErrors)
}
