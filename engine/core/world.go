package core

import "fmt"

// Outcome is the terminal state of a match from the player's view
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomePlayerWon
	OutcomePlayerLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWon:
		return "PLAYER_WON"
	case OutcomePlayerLost:
		return "PLAYER_LOST"
	}
	return ""
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*o = OutcomeNone
	case "PLAYER_WON":
		*o = OutcomePlayerWon
	case "PLAYER_LOST":
		*o = OutcomePlayerLost
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// World holds both sides and the systems that advance them
type World struct {
	Players   *PlayerManager
	Outcome   Outcome
	TickCount uint64
	Elapsed   float64 // simulated seconds

	systems []System
	lastID  EntityID
}

// System processes the world each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// NewWorld creates a world around an already populated player manager
func NewWorld(pm *PlayerManager) *World {
	if pm == nil {
		pm = NewPlayerManager()
	}
	return &World{Players: pm}
}

// NewEntityID hands out the next ID for this world
func (w *World) NewEntityID() EntityID {
	w.lastID++
	return w.lastID
}

// Player is shorthand for Players.GetPlayer
func (w *World) Player(side Side) *Player {
	return w.Players.GetPlayer(side)
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once. Negative deltas are treated as zero.
func (w *World) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.Elapsed += dt
	w.TickCount++
}

// Over reports whether an outcome has been decided
func (w *World) Over() bool {
	return w.Outcome != OutcomeNone
}
