package core

// EntityID is a unique identifier for units and towers within one world
type EntityID uint64

// Unit is a mobile combatant that marches on the enemy tower
type Unit struct {
	ID     EntityID
	Owner  Side
	Pos    Position
	Radius float64 // cosmetic
	Speed  float64 // arena units per second
	Health Health
	Weapon Weapon
	Target *Tower
}

// Alive reports whether the unit still acts. Dead units stay in their
// roster as inert entries.
func (u *Unit) Alive() bool {
	return u.Health.Alive()
}

// Tower is the stationary defender of a side
type Tower struct {
	ID     EntityID
	Owner  Side
	Pos    Position
	Size   float64 // cosmetic
	Health Health
	Weapon Weapon
}

func (t *Tower) Alive() bool {
	return t.Health.Alive()
}
