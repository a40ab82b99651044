// Package mapping implements the hierarchical rule-mapping store.
//
// A mapping set is a directory of YAML files forming a three-level
// hierarchy:
//
//   - pipeline mappings route an observation's instrument to an
//     instrument mapping
//   - instrument mappings route a file kind to a reference mapping
//   - reference mappings hold the ordered match rules and useafter
//     entries that select concrete reference files
//
// Mapping identifiers are file basenames (e.g. "hst.pmap",
// "hst_acs.imap", "hst_acs_biasfile.rmap"); the content of every file is
// YAML regardless of its extension.
//
// The Store is the package entry point. It owns a Loader for file access
// and a Registry acting as a process-wide read-through cache, and it
// satisfies the match.Store contract consumed by pkg/match. Mapping.
// MatchPathsFor walks the hierarchy and returns match paths with their
// three canonical segments (context, match, useafter) as tagged
// leaf/group nodes.
//
// For long-running use a Watcher invalidates cached mappings when their
// files change on disk.
package mapping
