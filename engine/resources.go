package engine

import (
	"math/rand/v2"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/grid"
	"github.com/trickybestia/cocsim/status"
	"github.com/trickybestia/cocsim/vmath"
)

// TimeResource is the simulation clock
type TimeResource struct {
	Elapsed float64
	Delta   float64
	Tick    int64
}

// DamageEvent is one pending change of health, negative amounts heal
type DamageEvent struct {
	Target core.Entity
	Amount float64
}

// DamageQueue collects damage until the damage step applies it
type DamageQueue struct {
	events []DamageEvent
}

// Push enqueues damage against target
func (q *DamageQueue) Push(target core.Entity, amount float64) {
	q.events = append(q.events, DamageEvent{Target: target, Amount: amount})
}

// Drain returns pending events in enqueue order and empties the queue
func (q *DamageQueue) Drain() []DamageEvent {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events
func (q *DamageQueue) Len() int { return len(q.events) }

// Resources is the shared state systems read besides components
type Resources struct {
	Time   TimeResource
	Rng    *rand.Rand
	Damage *DamageQueue
	Grids  *grid.Grids
	Status *status.Registry

	// MapSize is the map edge in tiles, border included
	MapSize int
}

// NewResources creates resources for a map of mapSize tiles seeded with seed
// A nil registry gets a private one
func NewResources(mapSize int, seed uint64, reg *status.Registry) *Resources {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Resources{
		Rng:     vmath.NewRand(seed),
		Damage:  &DamageQueue{},
		Grids:   grid.New(mapSize),
		Status:  reg,
		MapSize: mapSize,
	}
}
