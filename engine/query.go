package engine

import (
	"slices"

	"github.com/trickybestia/cocsim/core"
)

// QueryBuilder intersects component stores
// Results are sorted by entity id so every scan visits entities in spawn order
type QueryBuilder struct {
	stores   []QueryableStore
	without  []AnyStore
	executed bool
	results  []core.Entity
}

// Query starts a new query
//
//	units := world.Query().
//	    With(world.Positions).
//	    With(world.Movers).
//	    Without(world.Dead).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{stores: make([]QueryableStore, 0, 4)}
}

// With requires the component of store
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("engine: query modified after Execute")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Without excludes entities holding the component of store
func (qb *QueryBuilder) Without(store AnyStore) *QueryBuilder {
	if qb.executed {
		panic("engine: query modified after Execute")
	}
	qb.without = append(qb.without, store)
	return qb
}

// Execute runs the intersection, starting from the smallest store
// Repeated calls return the cached result
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = []core.Entity{}
		return qb.results
	}

	slices.SortStableFunc(qb.stores, func(a, b QueryableStore) int {
		return a.Len() - b.Len()
	})

	candidates := qb.stores[0].All()
	for _, store := range qb.stores[1:] {
		candidates = slices.DeleteFunc(candidates, func(e core.Entity) bool {
			return !store.Has(e)
		})
		if len(candidates) == 0 {
			break
		}
	}
	for _, store := range qb.without {
		candidates = slices.DeleteFunc(candidates, store.Has)
	}

	slices.Sort(candidates)
	qb.results = candidates
	return qb.results
}
