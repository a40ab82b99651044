package match

import (
	"errors"
	"fmt"
)

// ErrNoReferences is returned by Evaluator.MinExptime when the reference
// list is empty: the minimum of an empty sequence is undefined.
var ErrNoReferences = errors.New("no references given")

// LookupError indicates that a context identifier could not be resolved
// to a loaded rule mapping. It is fatal for that context only; callers
// iterating several contexts may continue with the rest.
type LookupError struct {
	Context string
	Cause   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("cannot resolve context %q: %v", e.Context, e.Cause)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// NoMatchError indicates that a reference resolved to zero match paths
// during an exptime query. An unmatched reference is a normal outcome for
// rendering, but the minimum over zero paths is undefined and must be
// surfaced.
type NoMatchError struct {
	Context   string
	Reference string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("reference %q has no match paths under context %q", e.Reference, e.Context)
}
