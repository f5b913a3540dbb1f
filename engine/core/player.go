package core

import "math"

// Player represents one side of the match
type Player struct {
	Side      Side
	Name      string
	Elixir    float64
	MaxElixir float64
	RegenRate float64 // elixir per second
	Units     []*Unit // append-only, spawn order
	Tower     *Tower
}

// ElixirDisplay returns the pool rounded down for display
func (p *Player) ElixirDisplay() int {
	return int(math.Floor(p.Elixir))
}

// CanAfford reports whether the pool covers cost
func (p *Player) CanAfford(cost float64) bool {
	return p.Elixir >= cost
}

// AliveUnits returns the living part of the roster in roster order
func (p *Player) AliveUnits() []*Unit {
	alive := make([]*Unit, 0, len(p.Units))
	for _, u := range p.Units {
		if u.Alive() {
			alive = append(alive, u)
		}
	}
	return alive
}

// Defeated returns true once the tower has fallen
func (p *Player) Defeated() bool {
	return p.Tower == nil || !p.Tower.Alive()
}

// PlayerManager holds both sides of a match
type PlayerManager struct {
	Players []*Player
}

func NewPlayerManager() *PlayerManager {
	return &PlayerManager{}
}

func (pm *PlayerManager) AddPlayer(p *Player) {
	pm.Players = append(pm.Players, p)
}

func (pm *PlayerManager) GetPlayer(side Side) *Player {
	for _, p := range pm.Players {
		if p.Side == side {
			return p
		}
	}
	return nil
}

// Enemy returns the player opposing side
func (pm *PlayerManager) Enemy(side Side) *Player {
	return pm.GetPlayer(side.Enemy())
}
