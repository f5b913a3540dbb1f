package systems

import (
	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
)

// UnitDef defines the unit type that can be produced
type UnitDef struct {
	Name        string
	Cost        float64
	HP          int
	Speed       float64
	Damage      int
	Range       float64
	Cooldown    float64
	Radius      float64
	SpawnOffset float64 // distance in front of the owning tower
}

// NewUnitDef builds a unit definition from the rules
func NewUnitDef(r config.UnitRules) UnitDef {
	return UnitDef{
		Name:        r.Name,
		Cost:        r.Cost,
		HP:          r.HP,
		Speed:       r.Speed,
		Damage:      r.Damage,
		Range:       r.Range,
		Cooldown:    r.Cooldown,
		Radius:      r.Radius,
		SpawnOffset: r.SpawnOffset,
	}
}

// Producer spawns units for either side
type Producer struct {
	Def      UnitDef
	EventBus *core.EventBus
}

// Spawn buys one unit for side and appends it to the roster. It does
// nothing and returns false when the side cannot afford it.
func (s *Producer) Spawn(w *core.World, side core.Side) (*core.Unit, bool) {
	player := w.Player(side)
	enemy := w.Players.Enemy(side)
	if player == nil || player.Tower == nil || enemy == nil || enemy.Tower == nil {
		return nil, false
	}
	if !player.CanAfford(s.Def.Cost) {
		return nil, false
	}
	player.Elixir -= s.Def.Cost

	u := &core.Unit{
		ID:    w.NewEntityID(),
		Owner: side,
		Pos: core.Position{
			X: player.Tower.Pos.X + side.Direction()*s.Def.SpawnOffset,
			Y: player.Tower.Pos.Y,
		},
		Radius: s.Def.Radius,
		Speed:  s.Def.Speed,
		Health: core.Health{Current: s.Def.HP, Max: s.Def.HP},
		Weapon: core.Weapon{Damage: s.Def.Damage, Range: s.Def.Range, Cooldown: s.Def.Cooldown},
		Target: enemy.Tower,
	}
	player.Units = append(player.Units, u)

	s.EventBus.Emit(core.Event{Type: core.EvtUnitSpawned, Tick: w.TickCount, Side: side, Pos: u.Pos, Payload: u.ID})
	return u, true
}
