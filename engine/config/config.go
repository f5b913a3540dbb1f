// Package config holds the tunable rules of a skirmish and loads them
// from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is wrapped by every validation failure
var ErrInvalidRules = errors.New("invalid rules")

// Rules is the full rule set of a match
type Rules struct {
	Arena  ArenaRules  `yaml:"arena"`
	Elixir ElixirRules `yaml:"elixir"`
	Unit   UnitRules   `yaml:"unit"`
	Tower  TowerRules  `yaml:"tower"`
	AI     AIRules     `yaml:"ai"`

	// MaxDeltaTime clamps a single step in seconds. 0 disables clamping.
	MaxDeltaTime float64 `yaml:"max_delta_time"`
}

// ArenaRules places the two towers on a flat field
type ArenaRules struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	TowerInset float64 `yaml:"tower_inset"` // distance of each tower from its edge
}

type ElixirRules struct {
	Start          float64 `yaml:"start"`
	Max            float64 `yaml:"max"`
	RegenPerSecond float64 `yaml:"regen_per_second"`
}

// UnitRules describes the single unit type
type UnitRules struct {
	Name        string  `yaml:"name"`
	HP          int     `yaml:"hp"`
	Damage      int     `yaml:"damage"`
	Speed       float64 `yaml:"speed"`
	Range       float64 `yaml:"range"`
	Radius      float64 `yaml:"radius"`
	Cooldown    float64 `yaml:"cooldown"`
	Cost        float64 `yaml:"cost"`
	SpawnOffset float64 `yaml:"spawn_offset"`
}

type TowerRules struct {
	HP       int     `yaml:"hp"`
	Damage   int     `yaml:"damage"`
	Range    float64 `yaml:"range"`
	Cooldown float64 `yaml:"cooldown"`
	Size     float64 `yaml:"size"`
}

type AIRules struct {
	SpawnInterval float64 `yaml:"spawn_interval"` // seconds the timer must exceed
}

// Default returns the stock rule set
func Default() Rules {
	return Rules{
		Arena: ArenaRules{Width: 800, Height: 450, TowerInset: 100},
		Elixir: ElixirRules{
			Start:          5,
			Max:            10,
			RegenPerSecond: 0.5,
		},
		Unit: UnitRules{
			Name:        "Knight",
			HP:          50,
			Damage:      10,
			Speed:       40,
			Range:       20,
			Radius:      10,
			Cooldown:    1,
			Cost:        3,
			SpawnOffset: 30,
		},
		Tower: TowerRules{
			HP:       200,
			Damage:   15,
			Range:    120,
			Cooldown: 1,
			Size:     40,
		},
		AI: AIRules{SpawnInterval: 3},
	}
}

// Parse decodes YAML over the defaults, so a partial document only
// overrides the keys it names.
func Parse(data []byte) (Rules, error) {
	r := Default()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Load reads and parses a rules file
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("load rules: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return Rules{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Marshal encodes the rules as YAML
func (r Rules) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// TowerPosition returns where a side's tower stands
func (r Rules) TowerPosition(rightSide bool) (x, y float64) {
	y = r.Arena.Height / 2
	if rightSide {
		return r.Arena.Width - r.Arena.TowerInset, y
	}
	return r.Arena.TowerInset, y
}

// Validate checks the rules for values the simulation cannot run with
func (r Rules) Validate() error {
	switch {
	case r.Arena.Width <= 0 || r.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have a positive size", ErrInvalidRules)
	case r.Arena.TowerInset < 0 || 2*r.Arena.TowerInset >= r.Arena.Width:
		return fmt.Errorf("%w: tower_inset %.1f does not fit arena width %.1f", ErrInvalidRules, r.Arena.TowerInset, r.Arena.Width)
	case r.Elixir.Max <= 0:
		return fmt.Errorf("%w: elixir.max must be positive", ErrInvalidRules)
	case r.Elixir.Start < 0 || r.Elixir.Start > r.Elixir.Max:
		return fmt.Errorf("%w: elixir.start %.1f outside [0, %.1f]", ErrInvalidRules, r.Elixir.Start, r.Elixir.Max)
	case r.Elixir.RegenPerSecond < 0:
		return fmt.Errorf("%w: elixir.regen_per_second must not be negative", ErrInvalidRules)
	case r.Unit.HP <= 0 || r.Tower.HP <= 0:
		return fmt.Errorf("%w: hp must be positive", ErrInvalidRules)
	case r.Unit.Cost <= 0:
		return fmt.Errorf("%w: unit.cost must be positive", ErrInvalidRules)
	case r.Unit.Speed < 0 || r.Unit.Range < 0 || r.Tower.Range < 0:
		return fmt.Errorf("%w: speed and range must not be negative", ErrInvalidRules)
	case r.Unit.Cooldown <= 0 || r.Tower.Cooldown <= 0:
		return fmt.Errorf("%w: cooldowns must be positive", ErrInvalidRules)
	case r.AI.SpawnInterval < 0:
		return fmt.Errorf("%w: ai.spawn_interval must not be negative", ErrInvalidRules)
	case r.MaxDeltaTime < 0:
		return fmt.Errorf("%w: max_delta_time must not be negative", ErrInvalidRules)
	}
	return nil
}
