package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
)

// GameLoop turns frame timestamps into variable simulation steps
type GameLoop struct {
	World    *World
	State    GameState
	MaxDelta float64 // clamp for a single step in seconds, 0 = unclamped

	lastTime time.Duration
	started  bool
}

// NewGameLoop creates a loop in the playing state
func NewGameLoop(w *World, maxDelta float64) *GameLoop {
	return &GameLoop{
		World:    w,
		MaxDelta: maxDelta,
	}
}

// Delta consumes a frame timestamp and returns the elapsed seconds since
// the previous one. The first call only records the timestamp.
func (gl *GameLoop) Delta(now time.Duration) (float64, bool) {
	if !gl.started {
		gl.started = true
		gl.lastTime = now
		return 0, false
	}
	dt := (now - gl.lastTime).Seconds()
	gl.lastTime = now
	return dt, true
}

// Clamp bounds dt to [0, MaxDelta]
func (gl *GameLoop) Clamp(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if gl.MaxDelta > 0 && dt > gl.MaxDelta {
		return gl.MaxDelta
	}
	return dt
}

// Step advances the world by dt when playing. Returns true if a tick ran.
func (gl *GameLoop) Step(dt float64) bool {
	if gl.State != StatePlaying {
		return false
	}
	gl.World.Tick(gl.Clamp(dt))
	if gl.World.Over() {
		gl.State = StateGameOver
	}
	return true
}

// Play resumes a paused game. A finished game stays finished.
func (gl *GameLoop) Play() {
	if gl.State == StatePaused {
		gl.State = StatePlaying
		gl.started = false
	}
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	if gl.State == StatePlaying {
		gl.State = StatePaused
	}
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
