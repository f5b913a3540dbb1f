// Package audio plays short synthesized cues for match events through
// the beep speaker.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundID identifies a sound effect
type SoundID string

const (
	SndSpawn    SoundID = "spawn"
	SndHit      SoundID = "hit"
	SndShot     SoundID = "shot"
	SndKill     SoundID = "kill"
	SndCollapse SoundID = "collapse"
	SndVictory  SoundID = "victory"
	SndDefeat   SoundID = "defeat"
)

// tone is one note of a cue
type tone struct {
	freq float64
	dur  time.Duration
}

var cues = map[SoundID][]tone{
	SndSpawn:    {{523.25, 60 * time.Millisecond}, {659.25, 60 * time.Millisecond}},
	SndHit:      {{220, 40 * time.Millisecond}},
	SndShot:     {{880, 30 * time.Millisecond}},
	SndKill:     {{330, 50 * time.Millisecond}, {165, 90 * time.Millisecond}},
	SndCollapse: {{110, 200 * time.Millisecond}, {82.41, 300 * time.Millisecond}},
	SndVictory:  {{523.25, 120 * time.Millisecond}, {659.25, 120 * time.Millisecond}, {783.99, 240 * time.Millisecond}},
	SndDefeat:   {{392, 160 * time.Millisecond}, {311.13, 160 * time.Millisecond}, {261.63, 320 * time.Millisecond}},
}

// AudioManager handles sound effects
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	ListenerX    float64
	ListenerY    float64
	MaxDist      float64 // cues further than this from the listener are silent

	mu    sync.Mutex
	mixer *beep.Mixer
	sink  func(beep.Streamer) // nil until Init succeeds
}

func NewAudioManager() *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		MaxDist:      1000,
		mixer:        &beep.Mixer{},
	}
}

// Init opens the speaker. Without it every Play call is a no-op, so a
// failure here is safe to log and ignore.
func (am *AudioManager) Init() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.sink != nil {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(am.mixer)
	am.sink = func(s beep.Streamer) {
		speaker.Lock()
		am.mixer.Add(s)
		speaker.Unlock()
	}
	return nil
}

// Close silences everything and releases the speaker
func (am *AudioManager) Close() {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.sink == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
	am.sink = nil
}

// SetListener moves the point positional volume is measured from
func (am *AudioManager) SetListener(x, y float64) {
	am.ListenerX = x
	am.ListenerY = y
}

// PlaySFX plays a sound effect at an arena position
func (am *AudioManager) PlaySFX(id SoundID, x, y float64) {
	am.play(id, am.calcVolume(x, y))
}

// PlayUI plays a sound effect that ignores position
func (am *AudioManager) PlayUI(id SoundID) {
	am.play(id, am.SFXVolume*am.MasterVolume)
}

func (am *AudioManager) play(id SoundID, vol float64) {
	am.mu.Lock()
	sink := am.sink
	am.mu.Unlock()
	if sink == nil || vol <= 0 {
		return
	}
	if s := Cue(id, vol); s != nil {
		sink(s)
	}
}

// Listen maps match events to cues. Register it once per bus.
func (am *AudioManager) Listen(bus *core.EventBus) {
	at := func(id SoundID) core.EventHandler {
		return func(e core.Event) { am.PlaySFX(id, e.Pos.X, e.Pos.Y) }
	}
	bus.On(core.EvtUnitSpawned, at(SndSpawn))
	bus.On(core.EvtUnitAttack, at(SndHit))
	bus.On(core.EvtTowerAttack, at(SndShot))
	bus.On(core.EvtUnitKilled, at(SndKill))
	bus.On(core.EvtTowerDestroyed, at(SndCollapse))
	bus.On(core.EvtMatchEnd, func(e core.Event) {
		if o, ok := e.Payload.(core.Outcome); ok && o == core.OutcomePlayerWon {
			am.PlayUI(SndVictory)
			return
		}
		am.PlayUI(SndDefeat)
	})
}

// calcVolume computes volume based on distance from the listener
func (am *AudioManager) calcVolume(x, y float64) float64 {
	dx := x - am.ListenerX
	dy := y - am.ListenerY
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= am.MaxDist {
		return 0
	}
	return (1.0 - dist/am.MaxDist) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.MasterVolume = v
}

// Cue builds the finite streamer for a sound at linear volume vol. It
// returns nil for unknown sounds.
func Cue(id SoundID, vol float64) beep.Streamer {
	notes, ok := cues[id]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(sampleRate.N(n.dur), sine))
	}
	return newVolume(beep.Seq(parts...), vol)
}

// CueLength returns the number of samples a cue plays for
func CueLength(id SoundID) int {
	total := 0
	for _, n := range cues[id] {
		total += sampleRate.N(n.dur)
	}
	return total
}

// math.Log2(0) is -Inf, so zero volume maps to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
