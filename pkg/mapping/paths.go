package mapping

import (
	"fmt"
	"strings"

	"calpipe/refmatch/pkg/match"
)

// MatchPathsFor returns every match path selecting the given reference
// file, in selector traversal order. Pipeline and instrument mappings
// descend through the store they were loaded from; reference mappings
// answer directly. An unmatched reference yields an empty slice.
func (m *Mapping) MatchPathsFor(reference string) ([]match.Path, error) {
	switch m.Header.Kind {
	case KindPipeline, KindInstrument:
		return m.childMatchPaths(reference)
	case KindReference:
		return m.referenceMatchPaths(reference), nil
	default:
		return nil, fmt.Errorf("mapping %q has unknown kind %q", m.Header.Name, m.Header.Kind)
	}
}

// childMatchPaths collects match paths from every child mapping in
// selector order.
func (m *Mapping) childMatchPaths(reference string) ([]match.Path, error) {
	if m.store == nil {
		return nil, fmt.Errorf("mapping %q was not loaded through a store; cannot descend", m.Header.Name)
	}

	var paths []match.Path
	for _, entry := range m.Selector {
		child, err := m.store.LoadMapping(entry.Mapping, true)
		if err != nil {
			return nil, err
		}
		childPaths, err := child.MatchPathsFor(reference)
		if err != nil {
			return nil, err
		}
		paths = append(paths, childPaths...)
	}
	return paths, nil
}

// referenceMatchPaths scans the reference mapping's selector for
// useafter entries naming the reference and builds one path per entry.
func (m *Mapping) referenceMatchPaths(reference string) []match.Path {
	metrics := storeMetrics()
	metrics.pathQueries.Inc()

	var paths []match.Path
	for _, entry := range m.Selector {
		for _, ua := range entry.Useafter {
			if ua.File == reference {
				paths = append(paths, m.buildPath(entry.Match, nil, ua))
			}
		}
		for _, nested := range entry.Nested {
			for _, ua := range nested.Useafter {
				if ua.File == reference {
					paths = append(paths, m.buildPath(entry.Match, nested.Match, ua))
				}
			}
		}
	}

	metrics.pathsFound.Add(float64(len(paths)))
	return paths
}

// buildPath assembles the three canonical segments for one selection:
// context from the mapping header, match from the parkey/value zip
// (nested compound values as a sub-group), and useafter from the entry
// timestamp.
func (m *Mapping) buildPath(outer, nested []string, ua UseafterEntry) match.Path {
	context := match.Group(
		match.Leaf("observatory", m.Header.Observatory),
		match.Leaf("instrument", m.Header.Instrument),
		match.Leaf("filekind", m.Header.Filekind),
	)

	children := zipLeaves(m.Header.Parkeys, outer)
	if nested != nil {
		children = append(children, match.Group(zipLeaves(m.Header.NestedParkeys, nested)...))
	}

	return match.Path{context, match.Group(children...), m.useafterSegment(ua.Date)}
}

// useafterSegment splits the stored "YYYY-MM-DD HH:MM:SS" timestamp over
// the configured useafter parameters: two keys get the date and time
// halves, one key gets the full timestamp.
func (m *Mapping) useafterSegment(date string) match.Node {
	keys := m.Header.UseafterKeys
	if len(keys) == 0 {
		keys = []string{match.DateObsKey, match.TimeObsKey}
	}
	if len(keys) == 1 {
		return match.Group(match.Leaf(keys[0], date))
	}

	day, clock, _ := strings.Cut(date, " ")
	return match.Group(match.Leaf(keys[0], day), match.Leaf(keys[1], clock))
}

// zipLeaves pairs parameter names with their values positionally.
func zipLeaves(names, values []string) []match.Node {
	n := len(names)
	if len(values) < n {
		n = len(values)
	}
	leaves := make([]match.Node, 0, n)
	for i := 0; i < n; i++ {
		leaves = append(leaves, match.Leaf(names[i], values[i]))
	}
	return leaves
}
