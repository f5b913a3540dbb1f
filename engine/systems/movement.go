package systems

import (
	"math"

	"github.com/1siamBot/skirmish/engine/core"
)

// UnitSystem marches units on the enemy tower and resolves their attacks
type UnitSystem struct {
	EventBus *core.EventBus
}

func (s *UnitSystem) Priority() int { return 10 }

func (s *UnitSystem) Update(w *core.World, dt float64) {
	for _, side := range core.Sides {
		p := w.Player(side)
		if p == nil {
			continue
		}
		for _, u := range p.Units {
			tower := u.Target
			standing := tower != nil && tower.Alive()
			if !StepUnit(u, dt) {
				continue
			}
			s.EventBus.Emit(core.Event{Type: core.EvtUnitAttack, Tick: w.TickCount, Side: side, Pos: tower.Pos, Amount: u.Weapon.Damage})
			if standing && !tower.Alive() {
				s.EventBus.Emit(core.Event{Type: core.EvtTowerDestroyed, Tick: w.TickCount, Side: side, Pos: tower.Pos})
			}
		}
	}
}

// StepUnit advances one unit by dt seconds and reports whether it hit its
// target. The cooldown runs down on every call, including while walking,
// so a unit arrives at the tower already armed.
func StepUnit(u *core.Unit, dt float64) bool {
	if !u.Alive() || u.Target == nil {
		return false
	}
	u.Weapon.Cool(dt)

	dist := u.Pos.DistanceTo(u.Target.Pos)
	if dist > u.Weapon.Range {
		bearing := u.Pos.AngleTo(u.Target.Pos)
		u.Pos.X += math.Cos(bearing) * u.Speed * dt
		u.Pos.Y += math.Sin(bearing) * u.Speed * dt
		return false
	}

	if !u.Weapon.Ready() {
		return false
	}
	ApplyDamage(&u.Target.Health, u.Weapon.Fire())
	return true
}
