package mapping

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry is a thread-safe, process-wide cache of loaded mappings keyed
// by identifier. Access is read-mostly: the match core only ever reads
// through it, while loads and invalidations write.
type Registry struct {
	mu       sync.RWMutex
	mappings map[string]*Mapping
	version  string
	loadTime time.Time
}

// NewRegistry creates an empty mapping registry.
func NewRegistry() *Registry {
	return &Registry{
		mappings: make(map[string]*Mapping),
		loadTime: time.Now(),
	}
}

// Register caches a mapping under its identifier, replacing any previous
// entry.
func (r *Registry) Register(m *Mapping) error {
	if m == nil {
		return fmt.Errorf("cannot register nil mapping")
	}
	if m.Header.Name == "" {
		return fmt.Errorf("cannot register mapping with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.mappings[m.Header.Name] = m
	r.loadTime = time.Now()
	r.updateVersion()
	return nil
}

// Get retrieves a cached mapping by identifier.
func (r *Registry) Get(name string) (*Mapping, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappings[name]
	return m, ok
}

// Invalidate drops a cached mapping so the next load rereads it from
// disk. Unknown identifiers are ignored.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.mappings[name]; !ok {
		return
	}
	delete(r.mappings, name)
	r.updateVersion()
}

// Clear drops every cached mapping.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mappings = make(map[string]*Mapping)
	r.updateVersion()
}

// Count returns the number of cached mappings.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.mappings)
}

// Names returns the sorted identifiers of every cached mapping.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.mappings))
	for name := range r.mappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Version returns the current cache version. It changes whenever the
// cached mapping set changes.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.version
}

// LoadTime returns when the cache content last changed through Register.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loadTime
}

// updateVersion recomputes the cache version. Caller holds the write
// lock.
func (r *Registry) updateVersion() {
	h := sha256.New()

	names := make([]string, 0, len(r.mappings))
	for name := range r.mappings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := r.mappings[name]
		h.Write([]byte(m.Header.Name))
		h.Write([]byte(m.sourceFile))
	}

	r.version = fmt.Sprintf("%x", h.Sum(nil))[:16]
}
