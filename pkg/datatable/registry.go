package datatable

import "sync"

// Registry holds the tables mounted for one browser session.
// Mounting a table under an existing id replaces it.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]Handle
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]Handle)}
}

func (r *Registry) Put(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[h.ID()] = h
}

func (r *Registry) Get(id string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.tables[id]
	return h, ok
}

// Clear unmounts every table.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]Handle)
}
