package system

import (
	"sync/atomic"

	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

type shot struct {
	source core.Entity
	target core.Entity
	action component.Action
}

// AttackSystem counts down attacker cooldowns and fires ready attacks
// Shots are collected during the scan and executed together afterwards
type AttackSystem struct {
	world *engine.World

	shots []shot

	statShots *atomic.Int64
}

// NewAttackSystem creates the attack step
func NewAttackSystem(world *engine.World) engine.System {
	return &AttackSystem{
		world:     world,
		statShots: world.Resources.Status.Ints.Get("attack.shots"),
	}
}

func (s *AttackSystem) Name() string  { return "attack" }
func (s *AttackSystem) Priority() int { return parameter.PriorityAttack }

func (s *AttackSystem) Update() {
	w := s.world
	dt := w.Resources.Time.Delta
	s.shots = s.shots[:0]

	for _, e := range w.Query().With(w.Attackers).Without(w.Dead).Execute() {
		a := w.Attackers.Ptr(e)
		if !w.Alive(a.Target) {
			continue
		}
		if m, ok := w.Movers.Get(e); ok && (!m.Arrived || m.Stun > 0) {
			continue
		}

		a.Remaining -= dt
		if a.Remaining > vmath.Epsilon {
			continue
		}
		a.Remaining = a.Cooldown

		act := a.Action
		if b, ok := w.Buffs.Get(e); ok && b.DamageMul > 0 && b.DamageMul != 1 {
			act = act.Scaled(b.DamageMul)
		}
		s.shots = append(s.shots, shot{source: e, target: a.Target, action: act})
	}

	for _, sh := range s.shots {
		team, _ := w.Teams.Get(sh.source)
		pos, _ := w.Positions.Get(sh.source)
		Execute(w, sh.action, ActionContext{Source: sh.source, Team: team, Target: sh.target, Point: pos})
	}
	s.statShots.Add(int64(len(s.shots)))
}
