package tracker

import "fmt"

// Registry holds activity records. List preserves registration order.
type Registry struct {
	byID  map[string]*Activity
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Activity)}
}

// Register adds a new record, failing with ErrDuplicateID on collision.
func (r *Registry) Register(a Activity) error {
	if _, ok := r.byID[a.ID]; ok {
		return fmt.Errorf("activity %s: %w", a.ID, ErrDuplicateID)
	}
	r.byID[a.ID] = &a
	r.order = append(r.order, a.ID)
	return nil
}

// Get returns a copy of the record.
func (r *Registry) Get(id string) (Activity, error) {
	a, ok := r.byID[id]
	if !ok {
		return Activity{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return *a, nil
}

// List returns every record in registration order.
func (r *Registry) List() []Activity {
	out := make([]Activity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// SetActive updates the active flag in place.
func (r *Registry) SetActive(id string, active bool) error {
	a, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	a.Active = active
	return nil
}

// Len returns the number of registered activities.
func (r *Registry) Len() int {
	return len(r.order)
}
