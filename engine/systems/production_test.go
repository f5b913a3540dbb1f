package systems

import (
	"testing"

	"github.com/1siamBot/skirmish/engine/core"
)

func TestSpawn_DeductsCostAndPlacesUnit(t *testing.T) {
	w := newTestWorld()
	bus := core.NewEventBus()
	prod := newTestProducer(bus)

	player := w.Player(core.SidePlayer)
	ai := w.Player(core.SideAI)
	player.Elixir = 5

	u, ok := prod.Spawn(w, core.SidePlayer)
	if !ok || u == nil {
		t.Fatal("spawn with 5 elixir should succeed")
	}
	if player.Elixir != 2 {
		t.Errorf("elixir = %v, want 2", player.Elixir)
	}
	if len(player.Units) != 1 || player.Units[0] != u {
		t.Fatalf("roster = %v, want the new unit only", player.Units)
	}
	if u.Pos.X != player.Tower.Pos.X+30 || u.Pos.Y != player.Tower.Pos.Y {
		t.Errorf("unit at %+v, want tower.x+30, tower.y", u.Pos)
	}
	if u.Target != ai.Tower {
		t.Error("unit should target the opposing tower")
	}
	if u.Owner != core.SidePlayer || u.Owner.String() != "player" {
		t.Errorf("owner = %v", u.Owner)
	}
	if u.Health.Current != 50 || u.Weapon.CooldownNow != 0 {
		t.Errorf("fresh unit state wrong: hp=%d cooldown=%v", u.Health.Current, u.Weapon.CooldownNow)
	}
	if bus.Pending() != 1 {
		t.Errorf("expected one spawn event, got %d", bus.Pending())
	}
}

func TestSpawn_AISpawnsLeftward(t *testing.T) {
	w := newTestWorld()
	prod := newTestProducer(nil)
	ai := w.Player(core.SideAI)

	u, ok := prod.Spawn(w, core.SideAI)
	if !ok {
		t.Fatal("ai spawn should succeed with starting elixir")
	}
	if u.Pos.X != ai.Tower.Pos.X-30 {
		t.Errorf("ai unit x = %v, want %v", u.Pos.X, ai.Tower.Pos.X-30)
	}
	if u.Target != w.Player(core.SidePlayer).Tower {
		t.Error("ai unit should target the player tower")
	}
}

func TestSpawn_ExactCostAllowed(t *testing.T) {
	w := newTestWorld()
	prod := newTestProducer(nil)
	p := w.Player(core.SidePlayer)
	p.Elixir = 3

	if _, ok := prod.Spawn(w, core.SidePlayer); !ok {
		t.Fatal("spawn with exactly 3 elixir should succeed")
	}
	if p.Elixir != 0 {
		t.Errorf("elixir = %v, want 0", p.Elixir)
	}
}

func TestSpawn_InsufficientElixirIsNoop(t *testing.T) {
	w := newTestWorld()
	bus := core.NewEventBus()
	prod := newTestProducer(bus)
	p := w.Player(core.SidePlayer)
	p.Elixir = 2.99

	if u, ok := prod.Spawn(w, core.SidePlayer); ok || u != nil {
		t.Fatal("spawn below cost should be rejected")
	}
	if p.Elixir != 2.99 || len(p.Units) != 0 || bus.Pending() != 0 {
		t.Errorf("rejected spawn changed state: elixir=%v units=%d events=%d", p.Elixir, len(p.Units), bus.Pending())
	}
}

func TestSpawn_NeverDrivesElixirNegative(t *testing.T) {
	w := newTestWorld()
	prod := newTestProducer(nil)
	p := w.Player(core.SidePlayer)
	p.Elixir = 10

	for i := 0; i < 10; i++ {
		prod.Spawn(w, core.SidePlayer)
		if p.Elixir < 0 {
			t.Fatalf("elixir went negative: %v", p.Elixir)
		}
	}
	if len(p.Units) != 3 || p.Elixir != 1 {
		t.Errorf("units=%d elixir=%v, want 3 and 1", len(p.Units), p.Elixir)
	}
}

func TestSpawn_UniqueIDs(t *testing.T) {
	w := newTestWorld()
	prod := newTestProducer(nil)
	w.Player(core.SidePlayer).Elixir = 10

	seen := map[core.EntityID]bool{}
	for _, p := range w.Players.Players {
		seen[p.Tower.ID] = true
	}
	for i := 0; i < 3; i++ {
		u, _ := prod.Spawn(w, core.SidePlayer)
		if seen[u.ID] {
			t.Fatalf("duplicate entity id %d", u.ID)
		}
		seen[u.ID] = true
	}
}
