// Package usage answers the reverse question of match-path resolution:
// given a reference file, which mappings in the hierarchy depend on it.
//
// A Scanner parses every mapping file in a directory into a mention
// graph; MappingsUsing climbs the graph from a reference through the
// reference mappings that cite it up to the instrument and pipeline
// mappings above them. The graph can be persisted as usage records
// through a Storage backend (see the storage subpackage) and rebuilt
// on a schedule (see the refresh subpackage).
package usage
