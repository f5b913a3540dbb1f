package launch

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/1siamBot/skirmish/engine/network"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func parse(t *testing.T, maxDelta float64, args ...string) Flags {
	t.Helper()
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Register(fs, maxDelta)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFlags_Rules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("unit:\n  cost: 4\nmax_delta_time: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		maxDelta     float64
		args         []string
		wantCost     float64
		wantInterval float64
		wantDelta    float64
	}{
		{"defaults", 0.25, nil, 3, 3, 0.25},
		{"file keeps its delta", -1, []string{"-rules", path}, 4, 3, 0.5},
		{"flag beats file", 0.25, []string{"-rules", path, "-max-delta", "0.1"}, 4, 3, 0.1},
		{"difficulty", -1, []string{"-difficulty", "hard"}, 3, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parse(t, tt.maxDelta, tt.args...)
			r, err := f.Rules()
			if err != nil {
				t.Fatal(err)
			}
			if r.Unit.Cost != tt.wantCost || r.AI.SpawnInterval != tt.wantInterval || r.MaxDeltaTime != tt.wantDelta {
				t.Errorf("cost=%v interval=%v delta=%v", r.Unit.Cost, r.AI.SpawnInterval, r.MaxDeltaTime)
			}
		})
	}
}

func TestFlags_RulesErrors(t *testing.T) {
	if _, err := parse(t, 0, "-difficulty", "brutal").Rules(); err == nil {
		t.Error("expected unknown difficulty error")
	}
	if _, err := parse(t, 0, "-rules", filepath.Join(t.TempDir(), "missing.yaml")).Rules(); err == nil {
		t.Error("expected missing file error")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(path, []byte("tower:\n  hp: -1\n"), 0o644)
	if _, err := parse(t, 0, "-rules", path).Rules(); !errors.Is(err, config.ErrInvalidRules) {
		t.Errorf("got %v, want ErrInvalidRules", err)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug logged at info level: %q", buf.String())
	}
	NewLogger(&buf, true).Debug("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Error("verbose logger dropped debug")
	}
}

func TestSession_RecordsReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.skrp")
	f := parse(t, 0.25, "-replay", path)

	var ended core.Outcome
	s, err := Start(f, match.Options{MirrorAI: true, OnMatchEnd: func(_ uuid.UUID, o core.Outcome) {
		ended = o
	}}, NewLogger(io.Discard, false))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20000 && !s.Match.Over(); i++ {
		s.Match.Tick(0.05)
	}
	if got := s.ShareText(); got != "match "+s.Match.ID.String() {
		t.Errorf("share text without lobby = %q", got)
	}
	if ended == core.OutcomeNone {
		t.Fatal("OnMatchEnd was not forwarded")
	}
	want := s.Match.Snapshot()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	rep, err := network.LoadReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Rules.MaxDeltaTime != 0.25 {
		t.Errorf("replay rules max delta = %v", rep.Rules.MaxDeltaTime)
	}
	got, err := match.Play(rep, NewLogger(io.Discard, false))
	if err != nil {
		t.Fatal(err)
	}
	if got.Outcome() != want.Outcome || got.World().TickCount != want.Tick {
		t.Errorf("replay ended %v at %d, want %v at %d", got.Outcome(), got.World().TickCount, want.Outcome, want.Tick)
	}
}

func TestSession_PublishesToSpectators(t *testing.T) {
	f := parse(t, 0.25, "-spectate", "127.0.0.1:0")
	s, err := Start(f, match.Options{}, NewLogger(io.Discard, false))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Lobby.Addr()+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for s.Lobby.Hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("spectator never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if want := "spectate ws://" + s.Lobby.Addr() + "/ws"; !strings.Contains(s.ShareText(), want) {
		t.Errorf("share text %q missing %q", s.ShareText(), want)
	}

	s.Match.Tick(0.1)
	s.Publish()
	s.Publish() // same tick, no second frame

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var snap match.Snapshot
	if err := json.Unmarshal(msg, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Tick != 1 || snap.MatchID != s.Match.ID.String() {
		t.Errorf("got tick %d match %s", snap.Tick, snap.MatchID)
	}

	_ = conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("duplicate frame for the same tick")
	}
}

func TestDifficultyName(t *testing.T) {
	for interval, want := range map[float64]string{5: "easy", 3: "normal", 2: "hard", 4: "custom"} {
		if got := difficultyName(interval); got != want {
			t.Errorf("difficultyName(%v) = %q, want %q", interval, got, want)
		}
	}
}
