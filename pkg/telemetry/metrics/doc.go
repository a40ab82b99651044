// Package metrics exposes the process Prometheus metrics over HTTP.
//
// Collectors are registered at the point of use with promauto (see
// pkg/mapping); this package only serves the default registry in the
// Prometheus exposition format.
package metrics
