package engine

import "github.com/trickybestia/cocsim/core"

// AnyStore is the type-erased view the world uses for lifecycle operations
type AnyStore interface {
	Remove(e core.Entity)
	RemoveBatch(entities []core.Entity)
	Has(e core.Entity) bool
	Len() int
	Clear()
}

// QueryableStore adds enumeration for query intersection
type QueryableStore interface {
	AnyStore
	All() []core.Entity
}
