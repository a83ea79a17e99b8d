package engine

import (
	"slices"

	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
)

// World owns every entity of one simulation and the systems that advance it
type World struct {
	nextEntityID core.Entity

	Resources *Resources

	Positions   *Store[core.Point]
	Teams       *Store[core.Team]
	Healths     *Store[component.Health]
	Targets     *Store[component.Target]
	Attackers   *Store[component.Attacker]
	Movers      *Store[component.Mover]
	Buildings   *Store[component.Building]
	Projectiles *Store[component.Projectile]
	Delays      *Store[component.Delay]
	DropIns     *Store[component.DropIn]
	Pulses      *Store[component.Pulse]
	Buffs       *Store[component.Buff]
	OnDespawn   *Store[component.Action]
	Traps       *Store[component.Trap]
	ClanCastles *Store[component.ClanCastle]
	Visuals     *Store[component.Visual]
	Dead        *Store[component.Dead]

	allStores []AnyStore
	systems   []System
}

// NewWorld creates an empty world around the given resources
func NewWorld(res *Resources) *World {
	w := &World{
		nextEntityID: 1,
		Resources:    res,
		Positions:    NewStore[core.Point](),
		Teams:        NewStore[core.Team](),
		Healths:      NewStore[component.Health](),
		Targets:      NewStore[component.Target](),
		Attackers:    NewStore[component.Attacker](),
		Movers:       NewStore[component.Mover](),
		Buildings:    NewStore[component.Building](),
		Projectiles:  NewStore[component.Projectile](),
		Delays:       NewStore[component.Delay](),
		DropIns:      NewStore[component.DropIn](),
		Pulses:       NewStore[component.Pulse](),
		Buffs:        NewStore[component.Buff](),
		OnDespawn:    NewStore[component.Action](),
		Traps:        NewStore[component.Trap](),
		ClanCastles:  NewStore[component.ClanCastle](),
		Visuals:      NewStore[component.Visual](),
		Dead:         NewStore[component.Dead](),
	}

	w.allStores = []AnyStore{
		w.Positions, w.Teams, w.Healths, w.Targets, w.Attackers, w.Movers,
		w.Buildings, w.Projectiles, w.Delays, w.DropIns, w.Pulses, w.Buffs,
		w.OnDespawn, w.Traps, w.ClanCastles, w.Visuals, w.Dead,
	}
	return w
}

// CreateEntity reserves a new id; ids grow monotonically and are never reused
func (w *World) CreateEntity() core.Entity {
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity strips every component from e
func (w *World) DestroyEntity(e core.Entity) {
	for _, s := range w.allStores {
		s.Remove(e)
	}
}

// DestroyBatch strips every component from all given entities
func (w *World) DestroyBatch(entities []core.Entity) {
	for _, s := range w.allStores {
		s.RemoveBatch(entities)
	}
}

// Alive reports whether e is an attackable entity not yet marked for removal
func (w *World) Alive(e core.Entity) bool {
	if e == core.NoEntity || w.Dead.Has(e) {
		return false
	}
	h := w.Healths.Ptr(e)
	return h != nil && h.Alive() && w.Targets.Has(e)
}

// Kill marks e for removal at end of tick
func (w *World) Kill(e core.Entity) {
	w.Dead.Set(e, component.Dead{})
}

// EntityCount returns the number of entities with a position
func (w *World) EntityCount() int {
	return w.Positions.Len()
}

// AddSystem registers a system, keeping the list ordered by priority
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	slices.SortStableFunc(w.systems, func(a, b System) int {
		return a.Priority() - b.Priority()
	})
}

// Systems returns the registered systems in execution order
func (w *World) Systems() []System {
	return slices.Clone(w.systems)
}

// Update runs every system once, in priority order
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update()
	}
}
