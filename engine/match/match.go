// Package match assembles a playable skirmish: both sides, the tick
// pipeline, the scripted opponent, and the hooks a presentation layer
// needs (frame stepping, spawn trigger, snapshots, end notification).
package match

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/1siamBot/skirmish/engine/ai"
	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/network"
	"github.com/1siamBot/skirmish/engine/systems"
	"github.com/google/uuid"
)

// Recorder receives every external input to the match
type Recorder interface {
	Record(cmd network.Command) error
}

// Options configures a match
type Options struct {
	Rules      config.Rules
	Logger     *slog.Logger
	Recorder   Recorder
	OnMatchEnd func(id uuid.UUID, outcome core.Outcome)

	// MirrorAI also puts the player side under an AIController. Used by
	// the headless runner and demos. Its spawns are recorded like clicks,
	// so a replay never needs this flag.
	MirrorAI bool
}

// Match is one running skirmish. It is not safe for concurrent use; drive
// it from a single goroutine.
type Match struct {
	ID    uuid.UUID
	Rules config.Rules
	Loop  *core.GameLoop
	Bus   *core.EventBus
	AI    *ai.AIController

	producer *systems.Producer
	mirror   *ai.AIController
	opts     Options
	log      *slog.Logger
	notified bool
}

// New validates the rules and starts a fresh match
func New(opts Options) (*Match, error) {
	if err := opts.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &Match{
		Rules: opts.Rules,
		Bus:   core.NewEventBus(),
		opts:  opts,
		log:   opts.Logger,
	}
	// Player-side spawns are the only non-derivable input besides frame
	// deltas, whether they come from a click or from the mirror AI.
	m.Bus.On(core.EvtUnitSpawned, func(e core.Event) {
		if e.Side == core.SidePlayer {
			m.record(network.Command{Type: network.CmdSpawn, Tick: e.Tick, Side: uint8(e.Side)})
		}
	})
	m.reset(uuid.New())
	return m, nil
}

// reset rebuilds both sides and the tick pipeline from the rules
func (m *Match) reset(id uuid.UUID) {
	r := m.Rules
	m.ID = id
	m.notified = false
	m.Bus.Drop()

	pm := core.NewPlayerManager()
	w := core.NewWorld(pm)
	for _, side := range core.Sides {
		x, y := r.TowerPosition(side == core.SideAI)
		pm.AddPlayer(&core.Player{
			Side:      side,
			Name:      sideName(side),
			Elixir:    r.Elixir.Start,
			MaxElixir: r.Elixir.Max,
			RegenRate: r.Elixir.RegenPerSecond,
			Tower: &core.Tower{
				ID:     w.NewEntityID(),
				Owner:  side,
				Pos:    core.Position{X: x, Y: y},
				Size:   r.Tower.Size,
				Health: core.Health{Current: r.Tower.HP, Max: r.Tower.HP},
				Weapon: core.Weapon{Damage: r.Tower.Damage, Range: r.Tower.Range, Cooldown: r.Tower.Cooldown},
			},
		})
	}

	m.producer = &systems.Producer{Def: systems.NewUnitDef(r.Unit), EventBus: m.Bus}
	m.AI = ai.NewAIController(core.SideAI, r.AI.SpawnInterval, m.producer)
	controllers := []*ai.AIController{m.AI}
	m.mirror = nil
	if m.opts.MirrorAI {
		m.mirror = ai.NewAIController(core.SidePlayer, r.AI.SpawnInterval, m.producer)
		// The mirror thinks last so its spawns land where a replayed
		// spawn command would: after everything else in the tick.
		controllers = []*ai.AIController{m.AI, m.mirror}
	}

	w.AddSystem(&systems.ElixirSystem{})
	w.AddSystem(&systems.UnitSystem{EventBus: m.Bus})
	w.AddSystem(&systems.TowerSystem{EventBus: m.Bus})
	w.AddSystem(&ai.AISystem{Controllers: controllers})
	w.AddSystem(&systems.GameOverSystem{EventBus: m.Bus})

	m.Loop = core.NewGameLoop(w, r.MaxDeltaTime)
	m.Bus.Emit(core.Event{Type: core.EvtMatchStart})
	m.log.Info("match started", "match", m.ID, "ai_interval", r.AI.SpawnInterval, "max_delta", r.MaxDeltaTime)
}

// Restart throws the current match away and starts a new one
func (m *Match) Restart() {
	m.record(network.Command{Type: network.CmdRestart, Tick: m.World().TickCount})
	m.log.Info("match restarted", "previous", m.ID)
	m.reset(uuid.New())
}

// SetRecorder starts sending inputs to r. Pass nil to stop recording.
func (m *Match) SetRecorder(r Recorder) {
	m.opts.Recorder = r
}

// World returns the current simulation state
func (m *Match) World() *core.World {
	return m.Loop.World
}

// Frame is the frame-scheduler entry point: now is a monotonically
// increasing timestamp. The first call only starts the clock.
func (m *Match) Frame(now time.Duration) {
	if dt, ok := m.Loop.Delta(now); ok {
		m.Tick(dt)
	}
}

// Tick advances the match by dt seconds. It does nothing once the match
// is decided or while paused.
func (m *Match) Tick(dt float64) {
	if m.Loop.State != core.StatePlaying {
		return
	}
	m.record(network.Command{Type: network.CmdTick, Tick: m.World().TickCount, Delta: dt})
	m.Loop.Step(dt)
	m.Bus.Dispatch()

	if m.Over() && !m.notified {
		m.notified = true
		w := m.World()
		m.log.Info("match ended", "match", m.ID, "outcome", w.Outcome.String(), "tick", w.TickCount, "elapsed", w.Elapsed)
		if m.opts.OnMatchEnd != nil {
			m.opts.OnMatchEnd(m.ID, w.Outcome)
		}
	}
}

// SpawnPlayerUnit is the player's spawn trigger
func (m *Match) SpawnPlayerUnit() bool {
	return m.Spawn(core.SidePlayer)
}

// Spawn buys a unit for side. Unaffordable or post-match requests are
// ignored and return false.
func (m *Match) Spawn(side core.Side) bool {
	if m.Over() {
		return false
	}
	u, ok := m.producer.Spawn(m.World(), side)
	if !ok {
		return false
	}
	m.log.Debug("unit spawned", "match", m.ID, "side", side.String(), "unit", u.ID, "tick", m.World().TickCount)
	m.Bus.Dispatch()
	return true
}

// Pause toggles between playing and paused
func (m *Match) Pause() {
	switch m.Loop.State {
	case core.StatePlaying:
		m.Loop.Pause()
	case core.StatePaused:
		m.Loop.Play()
	}
}

// Paused reports whether the clock is stopped by the user
func (m *Match) Paused() bool {
	return m.Loop.State == core.StatePaused
}

// Over reports whether the match has been decided
func (m *Match) Over() bool {
	return m.World().Over()
}

// Outcome returns the result, or OutcomeNone while playing
func (m *Match) Outcome() core.Outcome {
	return m.World().Outcome
}

// ElixirDisplay returns the player's pool rounded down
func (m *Match) ElixirDisplay() int {
	return m.World().Player(core.SidePlayer).ElixirDisplay()
}

func (m *Match) record(cmd network.Command) {
	if m.opts.Recorder == nil {
		return
	}
	if err := m.opts.Recorder.Record(cmd); err != nil {
		m.log.Error("replay record failed, recording stopped", "match", m.ID, "error", err)
		m.opts.Recorder = nil
	}
}

func sideName(s core.Side) string {
	if s == core.SideAI {
		return "Opponent"
	}
	return "Player"
}
