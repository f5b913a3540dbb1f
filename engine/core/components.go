package core

import (
	"fmt"
	"math"
)

// ---- Position ----

// Position represents a point in arena space
type Position struct {
	X, Y float64
}

// DistanceTo returns euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the angle from this position to another
func (p Position) AngleTo(other Position) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// ---- Health & Combat ----

// Health represents hit points. Current may drop below zero; anything
// at or below zero counts as dead.
type Health struct {
	Current int
	Max     int
}

// Alive reports whether hit points are above zero
func (h *Health) Alive() bool {
	return h.Current > 0
}

func (h *Health) Ratio() float64 {
	if h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// Weapon represents attack capability
type Weapon struct {
	Damage      int
	Range       float64 // in arena units
	Cooldown    float64 // seconds between attacks
	CooldownNow float64
}

// Cool counts the weapon down by dt seconds
func (w *Weapon) Cool(dt float64) {
	w.CooldownNow -= dt
}

// Ready reports whether the weapon may fire this tick
func (w *Weapon) Ready() bool {
	return w.CooldownNow <= 0
}

// Fire rearms the weapon and returns the damage dealt
func (w *Weapon) Fire() int {
	w.CooldownNow = w.Cooldown
	return w.Damage
}

// ---- Ownership ----

// Side identifies which participant owns an entity
type Side uint8

const (
	SidePlayer Side = iota
	SideAI
)

// Sides lists both participants in tick order
var Sides = [2]Side{SidePlayer, SideAI}

func (s Side) String() string {
	if s == SideAI {
		return "ai"
	}
	return "player"
}

// Enemy returns the opposing side
func (s Side) Enemy() Side {
	if s == SideAI {
		return SidePlayer
	}
	return SideAI
}

// Direction is +1 for the side spawning rightward and -1 otherwise
func (s Side) Direction() float64 {
	if s == SideAI {
		return -1
	}
	return 1
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*s = SidePlayer
	case "ai":
		*s = SideAI
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}
