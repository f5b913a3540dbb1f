package systems

import (
	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
)

// newTestWorld builds a fresh two-sided world from the default rules
// without any systems attached.
func newTestWorld() *core.World {
	r := config.Default()
	pm := core.NewPlayerManager()
	w := core.NewWorld(pm)
	for _, side := range core.Sides {
		x, y := r.TowerPosition(side == core.SideAI)
		pm.AddPlayer(&core.Player{
			Side:      side,
			Elixir:    r.Elixir.Start,
			MaxElixir: r.Elixir.Max,
			RegenRate: r.Elixir.RegenPerSecond,
			Tower: &core.Tower{
				ID:     w.NewEntityID(),
				Owner:  side,
				Pos:    core.Position{X: x, Y: y},
				Health: core.Health{Current: r.Tower.HP, Max: r.Tower.HP},
				Weapon: core.Weapon{Damage: r.Tower.Damage, Range: r.Tower.Range, Cooldown: r.Tower.Cooldown},
			},
		})
	}
	return w
}

func newTestProducer(bus *core.EventBus) *Producer {
	return &Producer{Def: NewUnitDef(config.Default().Unit), EventBus: bus}
}

// newUnitAt returns a default unit owned by side standing at (x, y)
func newUnitAt(side core.Side, x, y float64, target *core.Tower) *core.Unit {
	def := NewUnitDef(config.Default().Unit)
	return &core.Unit{
		Owner:  side,
		Pos:    core.Position{X: x, Y: y},
		Speed:  def.Speed,
		Health: core.Health{Current: def.HP, Max: def.HP},
		Weapon: core.Weapon{Damage: def.Damage, Range: def.Range, Cooldown: def.Cooldown},
		Target: target,
	}
}
