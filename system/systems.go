// Package system holds the per-tick simulation steps and the action dispatcher
package system

import "github.com/trickybestia/cocsim/engine"

// Register adds every simulation step to w
func Register(w *engine.World) {
	for _, ctor := range []func(*engine.World) engine.System{
		NewBuffSystem,
		NewDamageSystem,
		NewDeathSystem,
		NewGridSystem,
		NewTargetingSystem,
		NewMovementSystem,
		NewProjectileSystem,
		NewAttackSystem,
		NewTrapSystem,
		NewClanCastleSystem,
		NewSpellSystem,
		NewCleanupSystem,
	} {
		w.AddSystem(ctor(w))
	}
}
