// Package telemetry provides observability for refmatch.
//
// # Components
//
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics exposition
//   - health: health check endpoints for serve mode
package telemetry
