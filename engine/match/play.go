package match

import (
	"fmt"
	"log/slog"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/network"
)

// Play re-runs a recorded replay from scratch and returns the match in
// its final state. The first match keeps the recorded ID.
func Play(rep *network.Replay, log *slog.Logger) (*Match, error) {
	m, err := New(Options{Rules: rep.Rules, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("play replay: %w", err)
	}
	m.ID = rep.MatchID

	for i, cmd := range rep.Commands {
		switch cmd.Type {
		case network.CmdTick:
			m.Tick(cmd.Delta)
		case network.CmdSpawn:
			// A recorded spawn may come from the tick that decided the
			// match, so it bypasses the post-match guard in Spawn.
			m.producer.Spawn(m.World(), core.Side(cmd.Side))
			m.Bus.Dispatch()
		case network.CmdRestart:
			m.Restart()
		default:
			return m, fmt.Errorf("play replay: command %d: unknown type %d", i, cmd.Type)
		}
	}
	return m, nil
}
