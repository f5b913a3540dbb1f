package match

import (
	"github.com/1siamBot/skirmish/engine/core"
)

// TowerView is the read-only state of a tower
type TowerView struct {
	ID    core.EntityID `json:"id"`
	Owner core.Side     `json:"owner"`
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	Size  float64       `json:"size"`
	HP    int           `json:"hp"`
	MaxHP int           `json:"maxHp"`
	Range float64       `json:"range"`
}

// UnitView is the read-only state of a living unit
type UnitView struct {
	ID     core.EntityID `json:"id"`
	Owner  core.Side     `json:"owner"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Radius float64       `json:"radius"`
	HP     int           `json:"hp"`
	MaxHP  int           `json:"maxHp"`
}

// Snapshot is what renderers and spectators see after a tick. Dead units
// stay in the rosters but are left out here.
type Snapshot struct {
	MatchID     string       `json:"matchId"`
	Tick        uint64       `json:"tick"`
	Elapsed     float64      `json:"elapsed"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Elixir      int          `json:"elixir"`
	MaxElixir   int          `json:"maxElixir"`
	EnemyElixir int          `json:"enemyElixir"`
	Towers      []TowerView  `json:"towers"`
	Units       []UnitView   `json:"units"`
	Dead        int          `json:"dead"`
	Paused      bool         `json:"paused,omitempty"`
	Outcome     core.Outcome `json:"outcome,omitempty"`
}

// Snapshot copies the current state for presentation
func (m *Match) Snapshot() Snapshot {
	w := m.World()
	snap := Snapshot{
		MatchID: m.ID.String(),
		Tick:    w.TickCount,
		Elapsed: w.Elapsed,
		Width:   m.Rules.Arena.Width,
		Height:  m.Rules.Arena.Height,
		Paused:  m.Paused(),
		Outcome: w.Outcome,
	}
	for _, side := range core.Sides {
		p := w.Player(side)
		if side == core.SidePlayer {
			snap.Elixir = p.ElixirDisplay()
			snap.MaxElixir = int(p.MaxElixir)
		} else {
			snap.EnemyElixir = p.ElixirDisplay()
		}
		t := p.Tower
		snap.Towers = append(snap.Towers, TowerView{
			ID:    t.ID,
			Owner: t.Owner,
			X:     t.Pos.X,
			Y:     t.Pos.Y,
			Size:  t.Size,
			HP:    t.Health.Current,
			MaxHP: t.Health.Max,
			Range: t.Weapon.Range,
		})
		for _, u := range p.Units {
			if !u.Alive() {
				snap.Dead++
				continue
			}
			snap.Units = append(snap.Units, UnitView{
				ID:     u.ID,
				Owner:  u.Owner,
				X:      u.Pos.X,
				Y:      u.Pos.Y,
				Radius: u.Radius,
				HP:     u.Health.Current,
				MaxHP:  u.Health.Max,
			})
		}
	}
	return snap
}

// Tower returns the view of side's tower
func (s Snapshot) Tower(side core.Side) TowerView {
	for _, t := range s.Towers {
		if t.Owner == side {
			return t
		}
	}
	return TowerView{}
}
