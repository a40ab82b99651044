// Package match resolves and presents the selection criteria by which a
// rule-mapping hierarchy chooses a specific reference file.
//
// A match path is the concrete chain of parameter constraints (context,
// match, useafter) that leads a rule mapping to select a reference file.
// This package answers three questions for pipeline operators:
//
//   - Which parameter values cause a given reference file to be selected
//     under a given context? (Resolver + Presenter)
//   - What do those constraints look like as a flat parameter set?
//     (Flatten)
//   - What is the earliest observation time a new reference file could
//     affect? (Evaluator)
//
// The package is organized around four collaborators:
//
//   - Resolver: queries a Store for the raw match paths of a
//     (context, reference) pair
//   - Flatten/FlattenAll: depth-first reduction of a match path into a
//     flat parameter -> value map
//   - Evaluator: derives minimum applicable timestamps from flattened
//     match data, used to bound reprocessing impact
//   - Presenter: renders match paths as text or nested tuples under a
//     set of display options
//
// The rule-mapping store itself (loading, parsing, caching, hierarchy
// traversal) lives in pkg/mapping and is consumed here through the small
// Store and Mapping interfaces.
package match
