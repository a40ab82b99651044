package match

// Flatten reduces a match path to a flat parameter -> value map by
// depth-first traversal of its segments. Leaves are recorded in traversal
// order; when a parameter name occurs more than once the later value
// wins. The resulting key set is exactly the set of leaf parameter names
// reachable in the path.
func Flatten(path Path) Flat {
	flat := make(Flat)
	for _, segment := range path {
		flattenNode(segment, flat)
	}
	return flat
}

func flattenNode(node Node, flat Flat) {
	if node.Kind == NodeLeaf {
		flat[node.Name] = node.Value
		return
	}
	for _, child := range node.Children {
		flattenNode(child, flat)
	}
}

// FlattenAll applies Flatten to each path independently. No merging
// happens across paths.
func FlattenAll(paths []Path) []Flat {
	flats := make([]Flat, 0, len(paths))
	for _, path := range paths {
		flats = append(flats, Flatten(path))
	}
	return flats
}
