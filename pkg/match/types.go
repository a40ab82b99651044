package match

// NodeKind distinguishes a terminal parameter assignment from a nested
// group of assignments within a match path segment.
type NodeKind int

const (
	// NodeLeaf is a terminal (name, value) parameter pair.
	NodeLeaf NodeKind = iota

	// NodeGroup is an ordered sequence of child nodes. Groups model
	// compound selection rules and may nest to arbitrary depth.
	NodeGroup
)

// String returns a string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeLeaf:
		return "leaf"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is one element of a match path segment. The Kind tag makes the
// leaf/group distinction explicit so that consumers never have to infer
// it from shape. Name and Value are set for leaves; Children for groups.
type Node struct {
	Kind     NodeKind
	Name     string
	Value    string
	Children []Node
}

// Leaf constructs a terminal (name, value) node.
func Leaf(name, value string) Node {
	return Node{Kind: NodeLeaf, Name: name, Value: value}
}

// Group constructs a nested group node from the given children.
func Group(children ...Node) Node {
	return Node{Kind: NodeGroup, Children: children}
}

// Path is one match path: an ordered sequence of segments, each segment a
// group node. Paths produced by the mapping store carry three canonical
// segments in order:
//
//   - context: (observatory, instrument, filekind) identifying the owning
//     hierarchy level, parameter names lower-cased
//   - match: the selection parameters, values possibly literals,
//     wildcards ("*"), "N/A" markers, comparison expressions ("<=2048"),
//     or alternations ("A|B|C")
//   - useafter: the date/time after which the selection applies, either a
//     DATE-OBS/TIME-OBS pair or a single composite timestamp parameter
//
// The context segment, when present, is always first.
type Path []Node

// Context returns the first segment of the path, by convention the
// context segment. Returns an empty group for an empty path.
func (p Path) Context() Node {
	if len(p) == 0 {
		return Group()
	}
	return p[0]
}

// Flat is a flattened match path: a parameter name -> value map produced
// by depth-first traversal of a Path. See Flatten.
type Flat map[string]string

// Mapping answers match-path queries for one loaded rule-mapping
// hierarchy. pkg/mapping provides the production implementation.
type Mapping interface {
	// MatchPathsFor returns every match path that selects the given
	// reference file, in the traversal order of the underlying mapping.
	// The result is empty, not an error, when nothing matches.
	MatchPathsFor(reference string) ([]Path, error)
}

// Store resolves rule-mapping identifiers to loaded mappings. Loads are
// expected to read through a process-wide cache when cached is true.
type Store interface {
	// Load returns the mapping for the given identifier, loading it if
	// necessary. When cached is true a previously loaded mapping is
	// reused.
	Load(name string, cached bool) (Mapping, error)

	// GetCached returns an already loaded mapping by identifier.
	GetCached(name string) (Mapping, error)
}
