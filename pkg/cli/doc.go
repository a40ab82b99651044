/*
Package cli provides command-line interface utilities for refmatch.

The cli package includes output formatters, error types carrying exit
semantics, and signal handling used by the refmatch command.

Output Formatting:

Commands support text and JSON output for their results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM in serve mode:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
