// Package logging provides structured logging built on log/slog.
//
// A Logger is created from a level and format and installed as the
// process default, so packages that log through
// slog.Default().With("component", ...) pick up the configured handler.
// Context helpers carry a per-invocation ID through command execution.
package logging
