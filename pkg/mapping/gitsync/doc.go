// Package gitsync delivers mapping sets from a git repository.
//
// Mapping sets are versioned and distributed as flat directories of
// mapping files; gitsync clones the distribution repository locally and
// fast-forwards it on demand, so the mapping directory a Store reads
// from tracks the published set.
package gitsync
