package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a player intent produced by a key binding
type Action int

const (
	ActNone Action = iota
	ActSpawn
	ActPause
	ActRestart
	ActQuit
	ActMute
	ActToggleRange
	ActCopy
)

// DefaultBindings maps keys to actions
var DefaultBindings = map[ebiten.Key]Action{
	ebiten.KeySpace:  ActSpawn,
	ebiten.KeyEnter:  ActSpawn,
	ebiten.KeyP:      ActPause,
	ebiten.KeyR:      ActRestart,
	ebiten.KeyEscape: ActQuit,
	ebiten.KeyM:      ActMute,
	ebiten.KeyG:      ActToggleRange,
	ebiten.KeyC:      ActCopy,
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	MouseX, MouseY  int
	LeftJustPressed bool

	Bindings map[ebiten.Key]Action
	Actions  []Action // actions triggered this frame, in key order

	justKeys []ebiten.Key
}

func NewInputState() *InputState {
	return &InputState{
		Bindings: DefaultBindings,
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	s.justKeys = inpututil.AppendJustPressedKeys(s.justKeys[:0])
	s.Actions = Resolve(s.Bindings, s.justKeys, s.Actions[:0])
}

// Has reports whether a was triggered this frame
func (s *InputState) Has(a Action) bool {
	for _, got := range s.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Resolve appends the bound action of each key to dst. Unbound keys are
// skipped and repeated actions are kept once.
func Resolve(bindings map[ebiten.Key]Action, keys []ebiten.Key, dst []Action) []Action {
	for _, k := range keys {
		a, ok := bindings[k]
		if !ok || a == ActNone {
			continue
		}
		dup := false
		for _, prev := range dst {
			if prev == a {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, a)
		}
	}
	return dst
}
