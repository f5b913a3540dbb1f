package systems

import "github.com/1siamBot/skirmish/engine/core"

// ElixirSystem regenerates every side's pool each tick
type ElixirSystem struct{}

func (s *ElixirSystem) Priority() int { return 5 }

func (s *ElixirSystem) Update(w *core.World, dt float64) {
	for _, p := range w.Players.Players {
		RegenerateElixir(p, dt)
	}
}

// RegenerateElixir adds dt seconds of income and clamps to [0, MaxElixir]
func RegenerateElixir(p *core.Player, dt float64) {
	p.Elixir += dt * p.RegenRate
	if p.Elixir > p.MaxElixir {
		p.Elixir = p.MaxElixir
	}
	if p.Elixir < 0 {
		p.Elixir = 0
	}
}
