package core

import "testing"

func TestPlayer_ElixirDisplay(t *testing.T) {
	for in, want := range map[float64]int{0: 0, 2.999: 2, 6.5: 6, 10: 10} {
		p := &Player{Elixir: in}
		if got := p.ElixirDisplay(); got != want {
			t.Errorf("ElixirDisplay(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestPlayer_CanAfford(t *testing.T) {
	p := &Player{Elixir: 3}
	if !p.CanAfford(3) {
		t.Error("exact cost should be affordable")
	}
	p.Elixir = 2.999
	if p.CanAfford(3) {
		t.Error("2.999 should not afford 3")
	}
}

func TestPlayer_AliveUnitsKeepsOrder(t *testing.T) {
	p := &Player{Units: []*Unit{
		{ID: 1, Health: Health{Current: 10}},
		{ID: 2, Health: Health{Current: 0}},
		{ID: 3, Health: Health{Current: 5}},
	}}
	alive := p.AliveUnits()
	if len(alive) != 2 || alive[0].ID != 1 || alive[1].ID != 3 {
		t.Errorf("alive = %v", alive)
	}
	if len(p.Units) != 3 {
		t.Error("roster was modified")
	}
}

func TestPlayerManager(t *testing.T) {
	pm := NewPlayerManager()
	me := &Player{Side: SidePlayer, Tower: &Tower{Health: Health{Current: 1}}}
	them := &Player{Side: SideAI}
	pm.AddPlayer(me)
	pm.AddPlayer(them)

	if pm.GetPlayer(SideAI) != them || pm.Enemy(SideAI) != me {
		t.Error("lookup by side failed")
	}
	if me.Defeated() {
		t.Error("standing tower reported defeated")
	}
	if !them.Defeated() {
		t.Error("player without a tower should count as defeated")
	}
	me.Tower.Health.Current = 0
	if !me.Defeated() {
		t.Error("fallen tower not reported")
	}
}
