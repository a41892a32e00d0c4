package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Entry is one registered game: its rules plus the presentation
// metadata the lobby and bot layer need.
type Entry struct {
	Key      string      `json:"key"`
	Title    string      `json:"title"`
	Strategy string      `json:"strategy,omitempty"` // bot strategy key, "" = prober only
	Def      *Definition `json:"-"`
}

// Registry holds all registered game definitions, keyed by a stable
// string id.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a game. Panics on a duplicate key or a malformed
// definition; registration happens once at startup so a bad definition
// is a programming error.
func (r *Registry) Register(e Entry) {
	if e.Key == "" || e.Def == nil || e.Def.Setup == nil {
		panic(fmt.Sprintf("game %q: incomplete definition", e.Key))
	}
	for name, mv := range e.Def.Moves {
		if mv.Handler == nil || mv.Arity < 0 {
			panic(fmt.Sprintf("game %q: bad move %q", e.Key, name))
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[e.Key]; exists {
		panic(fmt.Sprintf("game %q already registered", e.Key))
	}
	r.entries[e.Key] = e
}

// Get returns a game by key.
func (r *Registry) Get(key string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e, ok
}

// List returns all entries sorted by key.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}
