package usage

import (
	"context"
	"sort"
)

// TransitiveUsers answers MappingsUsing from a persisted index instead
// of a fresh scan: it climbs the stored mention edges breadth-first
// from the given file and returns every mapping that depends on it,
// sorted. An empty result means nothing uses the file.
func TransitiveUsers(ctx context.Context, storage Storage, file string) ([]string, error) {
	seen := make(map[string]bool)
	queue := []string{file}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		records, err := storage.ByReference(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			if !seen[record.Mapping] {
				seen[record.Mapping] = true
				queue = append(queue, record.Mapping)
			}
		}
	}

	users := make([]string, 0, len(seen))
	for name := range seen {
		users = append(users, name)
	}
	sort.Strings(users)
	return users, nil
}
