package usage

import (
	"log/slog"
	"path/filepath"
	"sort"

	"calpipe/refmatch/pkg/mapping"
)

// Scanner builds the mention graph of a mapping directory.
type Scanner struct {
	loader *mapping.Loader
	logger *slog.Logger
}

// NewScanner creates a scanner over the given loader's directory.
func NewScanner(loader *mapping.Loader) *Scanner {
	return &Scanner{
		loader: loader,
		logger: slog.Default().With("component", "usage.scanner"),
	}
}

// Scan parses every mapping file in the directory and returns the
// resulting mention graph. A file that fails to parse aborts the scan
// with a ScanError.
func (s *Scanner) Scan() (*Graph, error) {
	files, err := s.loader.CollectFiles()
	if err != nil {
		return nil, &ScanError{Cause: err}
	}

	graph := newGraph()
	for _, file := range files {
		m, err := s.loader.LoadFile(file)
		if err != nil {
			return nil, &ScanError{File: filepath.Base(file), Cause: err}
		}
		graph.add(m)
	}

	s.logger.Debug("mapping directory scanned",
		"files", len(files),
		"edges", len(graph.records),
	)
	return graph, nil
}

// Graph is the mention graph of one scan: which mappings mention which
// files, and the header metadata of each scanned mapping.
type Graph struct {
	// usedBy maps a file basename to the mappings that mention it.
	usedBy map[string][]string

	records []*Record
}

func newGraph() *Graph {
	return &Graph{usedBy: make(map[string][]string)}
}

func (g *Graph) add(m *mapping.Mapping) {
	name := m.Name()
	for _, mentioned := range m.Mentions() {
		g.usedBy[mentioned] = append(g.usedBy[mentioned], name)
		g.records = append(g.records, NewRecord(
			mentioned,
			name,
			string(m.Header.Kind),
			m.Header.Instrument,
			m.Header.Filekind,
		))
	}
}

// Records returns one usage record per mention edge found by the scan.
func (g *Graph) Records() []*Record {
	return g.records
}

// MappingsUsing returns the basenames of every mapping that depends on
// the given file, directly or through intermediate mappings: for a
// reference file that is the reference mapping citing it, the
// instrument mapping above, and the pipeline mapping at the top. The
// result is sorted; an empty result means nothing uses the file.
func (g *Graph) MappingsUsing(file string) []string {
	seen := make(map[string]bool)
	queue := []string{file}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, parent := range g.usedBy[current] {
			if !seen[parent] {
				seen[parent] = true
				queue = append(queue, parent)
			}
		}
	}

	users := make([]string, 0, len(seen))
	for name := range seen {
		users = append(users, name)
	}
	sort.Strings(users)
	return users
}
