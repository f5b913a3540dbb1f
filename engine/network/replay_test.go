package network

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/google/uuid"
)

func TestCommandEncodeDecode(t *testing.T) {
	in := Command{Tick: 1234567, Type: CmdTick, Side: 1, Delta: 0.0166}
	var buf bytes.Buffer
	if err := in.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 8+1+1+8 {
		t.Errorf("encoded size = %d, want 18", buf.Len())
	}
	var out Command
	if err := out.Decode(&buf); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("decoded %+v, want %+v", out, in)
	}
}

func TestReplay_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.skrp")
	id := uuid.New()
	rules := config.Default()
	rules.Unit.Damage = 12

	rec, err := NewReplayRecorder(path, id, rules)
	if err != nil {
		t.Fatal(err)
	}
	cmds := []Command{
		{Tick: 0, Type: CmdTick, Delta: 0.5},
		{Tick: 1, Type: CmdSpawn, Side: 0},
		{Tick: 1, Type: CmdTick, Delta: 0.25},
		{Tick: 2, Type: CmdRestart},
	}
	for _, c := range cmds {
		if err := rec.Record(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}
	if got.MatchID != id {
		t.Errorf("match id = %v, want %v", got.MatchID, id)
	}
	if got.Rules != rules {
		t.Errorf("rules not preserved: %+v", got.Rules.Unit)
	}
	if len(got.Commands) != len(cmds) {
		t.Fatalf("commands = %d, want %d", len(got.Commands), len(cmds))
	}
	if at1 := got.CommandsForTick(1); len(at1) != 2 || at1[0].Type != CmdSpawn {
		t.Errorf("CommandsForTick(1) = %+v", at1)
	}
}

func TestReadReplay_DropsTruncatedTail(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewReplayWriter(&buf, uuid.New(), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	_ = rec.Record(Command{Type: CmdTick, Delta: 1})
	_ = rec.Record(Command{Type: CmdTick, Delta: 1})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()[:buf.Len()-3]
	got, err := ReadReplay(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(got.Commands))
	}
}

func TestReadReplay_RejectsGarbage(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":     nil,
		"magic":     []byte("NOPE\x01"),
		"version":   []byte("SKRP\x09"),
		"truncated": []byte("SKRP\x01\x00\x01"),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadReplay(bytes.NewReader(data)); !errors.Is(err, ErrBadReplay) {
				t.Fatalf("expected ErrBadReplay, got %v", err)
			}
		})
	}
}

func TestReadReplay_RejectsOversizedRules(t *testing.T) {
	data := append([]byte("SKRP\x01"), make([]byte, 16)...)
	data = append(data, 0x00, 0x00, 0x00, 0xF0)

	_, err := ReadReplay(bytes.NewReader(data))
	if !errors.Is(err, ErrBadReplay) {
		t.Fatalf("expected ErrBadReplay, got %v", err)
	}
	if !strings.Contains(err.Error(), "rules length") {
		t.Errorf("length not checked before reading: %v", err)
	}
}
