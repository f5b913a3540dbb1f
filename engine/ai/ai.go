package ai

import (
	"fmt"
	"strings"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/systems"
)

// Difficulty controls AI behavior
type Difficulty int

const (
	DiffEasy Difficulty = iota
	DiffNormal
	DiffHard
)

// SpawnInterval returns the minimum seconds between spawns
func (d Difficulty) SpawnInterval() float64 {
	switch d {
	case DiffEasy:
		return 5.0
	case DiffHard:
		return 2.0
	}
	return 3.0
}

func (d Difficulty) String() string {
	switch d {
	case DiffEasy:
		return "easy"
	case DiffHard:
		return "hard"
	}
	return "normal"
}

// ParseDifficulty accepts easy, normal or hard
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DiffEasy, nil
	case "", "normal":
		return DiffNormal, nil
	case "hard":
		return DiffHard, nil
	}
	return DiffNormal, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// AIController drives one side with a fixed rule: spawn as soon as the
// spawn interval has passed and the unit is affordable.
type AIController struct {
	Side          core.Side
	SpawnInterval float64
	Producer      *systems.Producer

	spawnTimer float64
	waveCount  int
}

func NewAIController(side core.Side, interval float64, producer *systems.Producer) *AIController {
	return &AIController{
		Side:          side,
		SpawnInterval: interval,
		Producer:      producer,
	}
}

// AISystem runs all AI controllers
type AISystem struct {
	Controllers []*AIController
}

func (s *AISystem) Priority() int { return 50 }

func (s *AISystem) Update(w *core.World, dt float64) {
	for _, ai := range s.Controllers {
		ai.Think(w, dt)
	}
}

// Think advances the spawn timer and spawns when both the interval and the
// cost gate are met. A missed gate leaves the timer running, so the spawn
// fires on the first later tick where the side can pay.
func (ai *AIController) Think(w *core.World, dt float64) bool {
	ai.spawnTimer += dt
	if ai.spawnTimer <= ai.SpawnInterval {
		return false
	}
	player := w.Player(ai.Side)
	if player == nil || !player.CanAfford(ai.Producer.Def.Cost) {
		return false
	}
	if _, ok := ai.Producer.Spawn(w, ai.Side); !ok {
		return false
	}
	ai.spawnTimer = 0
	ai.waveCount++
	return true
}

// Timer returns seconds since the last spawn
func (ai *AIController) Timer() float64 {
	return ai.spawnTimer
}

// Spawned returns how many units this controller has bought
func (ai *AIController) Spawned() int {
	return ai.waveCount
}
