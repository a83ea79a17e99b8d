package system

import (
	"github.com/trickybestia/cocsim/collider"
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/engine"
	"github.com/trickybestia/cocsim/parameter"
)

// ActionContext tells the dispatcher who triggered an action and where
type ActionContext struct {
	Source core.Entity
	Team   core.Team
	Target core.Entity
	Point  core.Point
}

// Execute interprets an action against the world
// Damage is queued, never applied directly; spawned entities take effect from the next scan
func Execute(w *engine.World, a component.Action, ctx ActionContext) {
	switch a.Kind {
	case component.ActionNone:

	case component.ActionMelee:
		if tgt, ok := w.Targets.Get(ctx.Target); ok && w.Alive(ctx.Target) {
			w.Resources.Damage.Push(ctx.Target, a.DamageAgainst(tgt.Flags))
		}

	case component.ActionHoming:
		if !w.Alive(ctx.Target) {
			break
		}
		tp, _ := w.Positions.Get(ctx.Target)
		hit := component.Melee(a.Damage)
		hit.WallMul = a.WallMul
		spawnProjectile(w, ctx, component.Projectile{
			Homing:  true,
			Target:  ctx.Target,
			Offset:  ctx.Point.Sub(tp),
			Speed:   a.Speed,
			Payload: hit,
		})

	case component.ActionArea:
		dest := ctx.Point
		if tp, ok := w.Positions.Get(ctx.Target); ok {
			dest = tp
		}
		blast := component.Splash(a.Damage, a.Radius, a.Hits, a.Exclude)
		blast.WallMul = a.WallMul
		if a.Speed <= 0 {
			Execute(w, blast, ActionContext{Source: ctx.Source, Team: ctx.Team, Point: dest})
			break
		}
		spawnProjectile(w, ctx, component.Projectile{Dest: dest, Speed: a.Speed, Payload: blast})

	case component.ActionSplash:
		splash(w, a, ctx)

	case component.ActionKnockback:
		knockback(w, a, ctx)

	case component.ActionHeal:
		forAlliedUnits(w, ctx, a.Radius, func(e core.Entity) {
			w.Resources.Damage.Push(e, -a.Damage)
		})

	case component.ActionModify:
		forAlliedUnits(w, ctx, a.Radius, func(e core.Entity) {
			b := w.Buffs.Ptr(e)
			if b == nil {
				return
			}
			if a.SpeedMul > 0 {
				b.Speed.Refresh(a.SpeedMul, parameter.ModifierWindow)
			}
			if a.DamageMul > 0 {
				b.Damage.Refresh(a.DamageMul, parameter.ModifierWindow)
			}
		})

	case component.ActionPulse:
		e := spawnEffect(w, ctx)
		w.Pulses.Set(e, component.Pulse{Interval: a.Delay, Left: a.Duration, Action: *a.Inner})
		w.Visuals.Set(e, component.Visual{Kind: component.VisualSpell, Color: core.RGBSpell, Radius: a.Inner.Radius})

	case component.ActionDelayed:
		e := spawnEffect(w, ctx)
		w.Delays.Set(e, component.Delay{Remaining: a.Delay, Then: *a.Inner})

	default:
		panic("system: unhandled action " + a.Kind.String())
	}

	if a.SelfDestruct && ctx.Source != core.NoEntity {
		if h := w.Healths.Ptr(ctx.Source); h != nil {
			h.Current = 0
		}
		w.Kill(ctx.Source)
	}
}

// splash queues damage against every opposing target within radius of the point
func splash(w *engine.World, a component.Action, ctx ActionContext) {
	victims := w.Query().
		With(w.Targets).
		With(w.Positions).
		With(w.Teams).
		Without(w.Dead).
		Execute()

	for _, e := range victims {
		if team, _ := w.Teams.Get(e); team == ctx.Team {
			continue
		}
		tgt, _ := w.Targets.Get(e)
		if !tgt.Flags.Matches(a.Hits, a.Exclude) || !w.Alive(e) {
			continue
		}
		pos, _ := w.Positions.Get(e)
		if collider.Distance(tgt.At(pos), ctx.Point) > a.Radius {
			continue
		}
		w.Resources.Damage.Push(e, a.DamageAgainst(tgt.Flags))
	}
}

// knockback damages the target and shoves a mobile one away from the source
func knockback(w *engine.World, a component.Action, ctx ActionContext) {
	if !w.Alive(ctx.Target) {
		return
	}
	if a.Damage > 0 {
		w.Resources.Damage.Push(ctx.Target, a.Damage)
	}

	m := w.Movers.Ptr(ctx.Target)
	pos := w.Positions.Ptr(ctx.Target)
	if m == nil || pos == nil {
		return
	}
	dir := pos.Sub(ctx.Point).Normalize()
	if dir == (core.Point{}) {
		dir = core.Pt(1, 0)
	}
	*pos = clampToMap(w, pos.Add(dir.Scale(a.Push)))
	m.Stun = parameter.KnockbackStunDuration
	m.Stop()
	m.Arrived = false

	if att := w.Attackers.Ptr(ctx.Target); att != nil {
		att.Retarget = true
	}
}

// forAlliedUnits visits living units of the context team within radius of the point
func forAlliedUnits(w *engine.World, ctx ActionContext, radius float64, fn func(core.Entity)) {
	units := w.Query().
		With(w.Movers).
		With(w.Positions).
		With(w.Teams).
		Without(w.Dead).
		Execute()

	for _, e := range units {
		if team, _ := w.Teams.Get(e); team != ctx.Team || !w.Alive(e) {
			continue
		}
		if pos, _ := w.Positions.Get(e); pos.Dist(ctx.Point) <= radius {
			fn(e)
		}
	}
}

func spawnProjectile(w *engine.World, ctx ActionContext, p component.Projectile) {
	e := w.CreateEntity()
	w.Positions.Set(e, ctx.Point)
	w.Teams.Set(e, ctx.Team)
	w.Projectiles.Set(e, p)
	w.Visuals.Set(e, component.Visual{Kind: component.VisualProjectile, Color: core.RGBProjectile, Radius: 0.15})
}

func spawnEffect(w *engine.World, ctx ActionContext) core.Entity {
	e := w.CreateEntity()
	w.Positions.Set(e, ctx.Point)
	w.Teams.Set(e, ctx.Team)
	return e
}

func clampToMap(w *engine.World, p core.Point) core.Point {
	hi := float64(w.Resources.MapSize) - 0.01
	return core.Pt(min(max(p.X, 0), hi), min(max(p.Y, 0), hi))
}
