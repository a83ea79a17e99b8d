package engine

import "github.com/trickybestia/cocsim/core"

// Store is a sparse set of components of type T
// Components live densely in a slice; index maps an entity to its slot
// A World is driven by one goroutine at a time, so stores carry no locks
type Store[T any] struct {
	index    map[core.Entity]int
	entities []core.Entity
	data     []T
}

// NewStore creates an empty store
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index:    make(map[core.Entity]int),
		entities: make([]core.Entity, 0, 64),
		data:     make([]T, 0, 64),
	}
}

// Set inserts or replaces the component of e
func (s *Store[T]) Set(e core.Entity, val T) {
	if i, ok := s.index[e]; ok {
		s.data[i] = val
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.data = append(s.data, val)
}

// Get returns a copy of the component of e
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	if i, ok := s.index[e]; ok {
		return s.data[i], true
	}
	var zero T
	return zero, false
}

// Ptr returns the component of e in place, nil when absent
// The pointer is valid until the store is next modified structurally
func (s *Store[T]) Ptr(e core.Entity) *T {
	if i, ok := s.index[e]; ok {
		return &s.data[i]
	}
	return nil
}

// MustPtr is Ptr for entities known to carry the component
func (s *Store[T]) MustPtr(e core.Entity) *T {
	p := s.Ptr(e)
	if p == nil {
		panic("engine: missing component on entity " + e.String())
	}
	return p
}

// Has reports whether e carries the component
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes the component of e by swapping the last slot into its place
func (s *Store[T]) Remove(e core.Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.data[i] = s.data[last]
		s.index[moved] = i
	}
	var zero T
	s.data[last] = zero
	s.entities = s.entities[:last]
	s.data = s.data[:last]
	delete(s.index, e)
}

// RemoveBatch deletes several entities, compacting in one pass
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	if len(entities) == 0 || len(s.entities) == 0 {
		return
	}
	drop := make(map[core.Entity]struct{}, len(entities))
	for _, e := range entities {
		if _, ok := s.index[e]; ok {
			drop[e] = struct{}{}
			delete(s.index, e)
		}
	}
	if len(drop) == 0 {
		return
	}

	w := 0
	for r, e := range s.entities {
		if _, gone := drop[e]; gone {
			continue
		}
		s.entities[w] = e
		s.data[w] = s.data[r]
		s.index[e] = w
		w++
	}
	var zero T
	for i := w; i < len(s.data); i++ {
		s.data[i] = zero
	}
	s.entities = s.entities[:w]
	s.data = s.data[:w]
}

// All returns a copy of the entities holding the component, in slot order
func (s *Store[T]) All() []core.Entity {
	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of components
func (s *Store[T]) Len() int { return len(s.entities) }

// Clear removes every component
func (s *Store[T]) Clear() {
	clear(s.index)
	s.entities = s.entities[:0]
	s.data = s.data[:0]
}
