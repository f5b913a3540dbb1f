package systems

import "github.com/1siamBot/skirmish/engine/core"

// GameOverSystem decides the match once a tower falls. The player's own
// tower is checked first, so a double knockout on one tick is a loss.
type GameOverSystem struct {
	EventBus *core.EventBus
}

func (s *GameOverSystem) Priority() int { return 100 }

func (s *GameOverSystem) Update(w *core.World, _ float64) {
	if w.Over() {
		return
	}
	outcome := Evaluate(w.Players)
	if outcome == core.OutcomeNone {
		return
	}
	w.Outcome = outcome
	s.EventBus.Emit(core.Event{Type: core.EvtMatchEnd, Tick: w.TickCount, Payload: outcome})
}

// Evaluate returns the outcome implied by the two towers
func Evaluate(pm *core.PlayerManager) core.Outcome {
	if p := pm.GetPlayer(core.SidePlayer); p != nil && p.Defeated() {
		return core.OutcomePlayerLost
	}
	if ai := pm.GetPlayer(core.SideAI); ai != nil && ai.Defeated() {
		return core.OutcomePlayerWon
	}
	return core.OutcomeNone
}
