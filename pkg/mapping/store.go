package mapping

import (
	"log/slog"
	"time"

	"calpipe/refmatch/pkg/match"
)

// Store is the package entry point: it resolves mapping identifiers to
// loaded mappings, reading through a process-wide Registry cache. Store
// satisfies the match.Store contract.
type Store struct {
	loader   *Loader
	registry *Registry
	metrics  *Metrics
	logger   *slog.Logger
}

// NewStore creates a store over the given mapping directory.
func NewStore(dir string, config *LoaderConfig) *Store {
	return &Store{
		loader:   NewLoader(dir, config),
		registry: NewRegistry(),
		metrics:  storeMetrics(),
		logger:   slog.Default().With("component", "mapping.store"),
	}
}

// Registry exposes the store's cache, for invalidation by watchers.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Loader exposes the store's file loader, for scanners and lint.
func (s *Store) Loader() *Loader {
	return s.loader
}

// Load returns the mapping for the given identifier as a match.Mapping.
// When cached is true a previously loaded mapping is reused; otherwise
// the file is reread and the cache refreshed.
func (s *Store) Load(name string, cached bool) (match.Mapping, error) {
	return s.LoadMapping(name, cached)
}

// GetCached returns an already loaded mapping, failing with a
// NotFoundError when the identifier has not been loaded.
func (s *Store) GetCached(name string) (match.Mapping, error) {
	m, ok := s.registry.Get(name)
	if !ok {
		s.metrics.cacheLookups.WithLabelValues("miss").Inc()
		return nil, &NotFoundError{Name: name}
	}
	s.metrics.cacheLookups.WithLabelValues("hit").Inc()
	return m, nil
}

// LoadMapping is the concrete-type load used inside the package for
// hierarchy descent.
func (s *Store) LoadMapping(name string, cached bool) (*Mapping, error) {
	if cached {
		if m, ok := s.registry.Get(name); ok {
			s.metrics.cacheLookups.WithLabelValues("hit").Inc()
			return m, nil
		}
		s.metrics.cacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	m, err := s.loader.LoadName(name)
	s.metrics.loadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.loads.WithLabelValues("unknown", "error").Inc()
		return nil, err
	}
	s.metrics.loads.WithLabelValues(string(m.Header.Kind), "ok").Inc()

	m.store = s
	if err := s.registry.Register(m); err != nil {
		return nil, err
	}

	s.logger.Debug("mapping loaded",
		"name", name,
		"kind", m.Header.Kind,
		"cache_version", s.registry.Version(),
	)

	return m, nil
}
