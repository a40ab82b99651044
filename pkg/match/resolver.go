package match

import (
	"log/slog"
)

// Resolver answers "which match paths select this reference file" for a
// (context, reference) pair by delegating to a rule-mapping Store.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

// NewResolver creates a resolver backed by the given mapping store.
func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:  store,
		logger: slog.Default().With("component", "match.resolver"),
	}
}

// Resolve returns the match paths for reference under the rule mapping
// identified by context, in the traversal order of the mapping. The
// reference must be a bare file name; callers strip any directory
// component before calling.
//
// An unmatched reference yields an empty slice, not an error. A context
// that cannot be loaded yields a LookupError.
func (r *Resolver) Resolve(context, reference string) ([]Path, error) {
	m, err := r.store.Load(context, true)
	if err != nil {
		return nil, &LookupError{Context: context, Cause: err}
	}

	paths, err := m.MatchPathsFor(reference)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("resolved match paths",
		"context", context,
		"reference", reference,
		"paths", len(paths),
	)

	return paths, nil
}
