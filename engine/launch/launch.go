// Package launch holds the flag and session wiring shared by the
// binaries: rules loading, logging, replay recording and the spectator
// lobby.
package launch

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/1siamBot/skirmish/engine/ai"
	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/1siamBot/skirmish/engine/network"
	"github.com/google/uuid"
)

// Flags are the command-line options every binary accepts
type Flags struct {
	RulesPath    string
	Difficulty   string
	MaxDelta     float64
	ReplayPath   string
	SpectateAddr string
	Verbose      bool
}

// Register binds the flags to fs. maxDelta is the binary's default frame
// clamp; a negative value keeps whatever the rules say.
func (f *Flags) Register(fs *flag.FlagSet, maxDelta float64) {
	fs.StringVar(&f.RulesPath, "rules", "", "path to a rules YAML file (defaults built in)")
	fs.StringVar(&f.Difficulty, "difficulty", "", "opponent preset: easy, normal or hard (overrides rules)")
	fs.Float64Var(&f.MaxDelta, "max-delta", maxDelta, "largest frame delta in seconds, 0 disables, negative keeps the rules value")
	fs.StringVar(&f.ReplayPath, "replay", "", "record inputs to this replay file")
	fs.StringVar(&f.SpectateAddr, "spectate", "", "serve spectators on this address, e.g. :8080")
	fs.BoolVar(&f.Verbose, "v", false, "debug logging")
}

// Rules loads the rules file and applies the overrides
func (f Flags) Rules() (config.Rules, error) {
	rules := config.Default()
	if f.RulesPath != "" {
		var err error
		if rules, err = config.Load(f.RulesPath); err != nil {
			return rules, err
		}
	}
	if f.Difficulty != "" {
		d, err := ai.ParseDifficulty(f.Difficulty)
		if err != nil {
			return rules, err
		}
		rules.AI.SpawnInterval = d.SpawnInterval()
	}
	if f.MaxDelta >= 0 {
		rules.MaxDeltaTime = f.MaxDelta
	}
	return rules, rules.Validate()
}

// NewLogger returns a text logger at Info, or Debug when verbose
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Session is a match plus its optional replay file and spectator lobby
type Session struct {
	Match *match.Match
	Lobby *network.Lobby

	replay    *network.Replay
	log       *slog.Logger
	lastTick  uint64
	published bool
}

// Start builds the match described by f. opts.Rules and opts.Logger are
// filled in from f and log.
func Start(f Flags, opts match.Options, log *slog.Logger) (*Session, error) {
	rules, err := f.Rules()
	if err != nil {
		return nil, err
	}
	opts.Rules = rules
	opts.Logger = log

	s := &Session{log: log}
	onEnd := opts.OnMatchEnd
	opts.OnMatchEnd = func(id uuid.UUID, o core.Outcome) {
		if s.Lobby != nil {
			s.Lobby.Finish(o.String())
		}
		if onEnd != nil {
			onEnd(id, o)
		}
	}

	if s.Match, err = match.New(opts); err != nil {
		return nil, err
	}

	if f.ReplayPath != "" {
		if s.replay, err = network.NewReplayRecorder(f.ReplayPath, s.Match.ID, rules); err != nil {
			return nil, err
		}
		s.Match.SetRecorder(s.replay)
		log.Info("recording replay", "path", f.ReplayPath)
	}

	if f.SpectateAddr != "" {
		host, _ := os.Hostname()
		s.Lobby = network.NewLobby(host, network.NewHub(log), log)
		if err := s.Lobby.Listen(f.SpectateAddr); err != nil {
			s.closeReplay()
			return nil, err
		}
		s.Lobby.SetMatch(s.Match.ID.String(), difficultyName(rules.AI.SpawnInterval))
	}
	return s, nil
}

// Restart starts a new match and tells spectators about it
func (s *Session) Restart() {
	s.Match.Restart()
	s.published = false
	if s.Lobby != nil {
		s.Lobby.SetMatch(s.Match.ID.String(), difficultyName(s.Match.Rules.AI.SpawnInterval))
	}
}

// ShareText describes how to find this match: its ID and, when spectating
// is on, the websocket URL to watch it.
func (s *Session) ShareText() string {
	text := "match " + s.Match.ID.String()
	if s.Lobby != nil && s.Lobby.Addr() != "" {
		text += " spectate ws://" + s.Lobby.Addr() + "/ws"
	}
	return text
}

// Publish sends the current snapshot to spectators, at most once per tick
func (s *Session) Publish() {
	if s.Lobby == nil {
		return
	}
	tick := s.Match.World().TickCount
	if s.published && tick == s.lastTick {
		return
	}
	s.published = true
	s.lastTick = tick
	if s.Lobby.Hub.ClientCount() == 0 {
		return
	}
	if err := s.Lobby.Hub.Broadcast(s.Match.Snapshot()); err != nil {
		s.log.Warn("spectator broadcast failed", "error", err)
	}
}

// Close flushes the replay and stops the lobby
func (s *Session) Close() error {
	var errs []error
	if err := s.closeReplay(); err != nil {
		errs = append(errs, err)
	}
	if s.Lobby != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.Lobby.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close lobby: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) closeReplay() error {
	if s.replay == nil {
		return nil
	}
	s.Match.SetRecorder(nil)
	err := s.replay.Close()
	s.replay = nil
	if err != nil {
		return fmt.Errorf("close replay: %w", err)
	}
	return nil
}

// difficultyName names the preset matching interval, or "custom"
func difficultyName(interval float64) string {
	for _, d := range []ai.Difficulty{ai.DiffEasy, ai.DiffNormal, ai.DiffHard} {
		if d.SpawnInterval() == interval {
			return d.String()
		}
	}
	return "custom"
}
