package network

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/google/uuid"
)

const (
	replayMagic   = "SKRP"
	replayVersion = uint8(1)

	// maxRulesYAML bounds the embedded rules blob
	maxRulesYAML = 1 << 20
)

// ErrBadReplay is returned for files that are not replays of this version
var ErrBadReplay = errors.New("bad replay")

// Replay records and plays back match commands
type Replay struct {
	MatchID  uuid.UUID
	Rules    config.Rules
	Commands []Command

	file   *os.File
	writer *bufio.Writer
}

// NewReplayRecorder creates a replay file for recording
func NewReplayRecorder(path string, id uuid.UUID, rules config.Rules) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReplayWriter(f, id, rules)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// NewReplayWriter starts a replay on an arbitrary writer and writes the header
func NewReplayWriter(w io.Writer, id uuid.UUID, rules config.Rules) (*Replay, error) {
	r := &Replay{
		MatchID: id,
		Rules:   rules,
		writer:  bufio.NewWriter(w),
	}
	if err := r.writeHeader(); err != nil {
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return r, nil
}

func (r *Replay) writeHeader() error {
	rulesYAML, err := r.Rules.Marshal()
	if err != nil {
		return err
	}
	if _, err := r.writer.WriteString(replayMagic); err != nil {
		return err
	}
	if err := r.writer.WriteByte(replayVersion); err != nil {
		return err
	}
	if _, err := r.writer.Write(r.MatchID[:]); err != nil {
		return err
	}
	if err := binary.Write(r.writer, binary.LittleEndian, uint32(len(rulesYAML))); err != nil {
		return err
	}
	_, err = r.writer.Write(rulesYAML)
	return err
}

// Record writes a command to the replay
func (r *Replay) Record(cmd Command) error {
	r.Commands = append(r.Commands, cmd)
	return cmd.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	var err error
	if r.writer != nil {
		err = r.writer.Flush()
	}
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// LoadReplay loads a replay file
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	replay, err := ReadReplay(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return replay, nil
}

// ReadReplay decodes a replay from r. A truncated trailing command is
// dropped, so a replay cut short by a crash still plays up to that point.
func ReadReplay(r io.Reader) (*Replay, error) {
	reader := bufio.NewReader(r)

	head := make([]byte, len(replayMagic)+1)
	if _, err := io.ReadFull(reader, head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReplay, err)
	}
	if string(head[:len(replayMagic)]) != replayMagic {
		return nil, fmt.Errorf("%w: missing magic", ErrBadReplay)
	}
	if head[len(replayMagic)] != replayVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadReplay, head[len(replayMagic)])
	}

	replay := &Replay{}
	if _, err := io.ReadFull(reader, replay.MatchID[:]); err != nil {
		return nil, fmt.Errorf("%w: match id: %v", ErrBadReplay, err)
	}
	var rulesLen uint32
	if err := binary.Read(reader, binary.LittleEndian, &rulesLen); err != nil {
		return nil, fmt.Errorf("%w: rules length: %v", ErrBadReplay, err)
	}
	if rulesLen > maxRulesYAML {
		return nil, fmt.Errorf("%w: rules length %d", ErrBadReplay, rulesLen)
	}
	rulesYAML := make([]byte, rulesLen)
	if _, err := io.ReadFull(reader, rulesYAML); err != nil {
		return nil, fmt.Errorf("%w: rules: %v", ErrBadReplay, err)
	}
	rules, err := config.Parse(rulesYAML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReplay, err)
	}
	replay.Rules = rules

	for {
		var cmd Command
		if err := cmd.Decode(reader); err != nil {
			break
		}
		replay.Commands = append(replay.Commands, cmd)
	}
	return replay, nil
}

// CommandsForTick returns all commands at a given tick during playback
func (r *Replay) CommandsForTick(tick uint64) []Command {
	var result []Command
	for _, c := range r.Commands {
		if c.Tick == tick {
			result = append(result, c)
		}
	}
	return result
}
