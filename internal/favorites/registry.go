// Package favorites provides toggleable ID sets for favoriting content.
package favorites

import "sort"

// Registry is a set of content identifiers with toggle semantics.
// Two independent instances back favorite courses and favorite ambience
// tracks; the registry itself is agnostic to what the IDs name.
type Registry struct {
	ids map[string]struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// Toggle flips membership for an id: present becomes absent, absent
// becomes present. Toggling twice restores the original membership.
// An empty id is a no-op.
func (r *Registry) Toggle(id string) {
	if id == "" {
		return
	}
	if _, ok := r.ids[id]; ok {
		delete(r.ids, id)
		return
	}
	r.ids[id] = struct{}{}
}

// Contains reports whether an id is favorited
func (r *Registry) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of favorited ids
func (r *Registry) Len() int {
	return len(r.ids)
}

// IDs returns all favorited ids sorted for deterministic iteration in UI
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Restore replaces the registry contents from persisted ids
func (r *Registry) Restore(ids []string) {
	r.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			r.ids[id] = struct{}{}
		}
	}
}
