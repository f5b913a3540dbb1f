package systems

import (
	"github.com/1siamBot/skirmish/engine/core"
)

// TowerSystem lets each tower shoot at enemy units in range
type TowerSystem struct {
	EventBus *core.EventBus
}

func (s *TowerSystem) Priority() int { return 20 }

func (s *TowerSystem) Update(w *core.World, dt float64) {
	for _, side := range core.Sides {
		p := w.Player(side)
		enemy := w.Players.Enemy(side)
		if p == nil || p.Tower == nil || enemy == nil {
			continue
		}
		target := StepTower(p.Tower, enemy.Units, dt)
		if target == nil {
			continue
		}
		s.EventBus.Emit(core.Event{Type: core.EvtTowerAttack, Tick: w.TickCount, Side: side, Pos: target.Pos, Amount: p.Tower.Weapon.Damage})
		if !target.Alive() {
			s.EventBus.Emit(core.Event{Type: core.EvtUnitKilled, Tick: w.TickCount, Side: side, Pos: target.Pos, Payload: target.ID})
		}
	}
}

// StepTower advances one tower by dt seconds. The tower picks the first
// living enemy in roster order that is within range, not the nearest one.
// Returns the unit it hit, or nil.
func StepTower(t *core.Tower, enemies []*core.Unit, dt float64) *core.Unit {
	if !t.Alive() {
		return nil
	}
	t.Weapon.Cool(dt)

	target := FirstInRange(t.Pos, t.Weapon.Range, enemies)
	if target == nil || !t.Weapon.Ready() {
		return nil
	}
	ApplyDamage(&target.Health, t.Weapon.Fire())
	return target
}

// FirstInRange returns the earliest living unit within rng of pos
func FirstInRange(pos core.Position, rng float64, units []*core.Unit) *core.Unit {
	for _, u := range units {
		if u.Alive() && pos.DistanceTo(u.Pos) <= rng {
			return u
		}
	}
	return nil
}

// ApplyDamage subtracts damage from h and reports whether this hit took it
// from alive to dead. Hit points are not clamped at zero.
func ApplyDamage(h *core.Health, damage int) bool {
	wasAlive := h.Alive()
	h.Current -= damage
	return wasAlive && !h.Alive()
}
