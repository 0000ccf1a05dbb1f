package toolgate

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps tool names to specs. Registration is append-only; lookups
// are pure reads and never block each other.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Returns ErrDuplicateTool (wrapped with the name) if
// the name is already taken. Safe for concurrent use with Lookup.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrDuplicateTool)
	}
	r.tools[name] = t
	return nil
}

// Lookup returns the tool with the given name, or (nil, false).
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// All returns the registered tools sorted by name, e.g. for exporting tool
// definitions to an LLM provider.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}
