// Package health provides health check endpoints for serve mode.
//
// A Checker aggregates named component checks (mapping directory
// readable, usage index reachable) and serves liveness and readiness
// over HTTP.
package health
