package network

import (
	"encoding/binary"
	"io"
)

// CmdType identifies a recorded command
type CmdType uint8

const (
	CmdTick CmdType = iota
	CmdSpawn
	CmdRestart
)

// Command is one externally driven input to a match. Replaying the same
// commands against the same rules reproduces the match exactly.
type Command struct {
	Tick  uint64
	Type  CmdType
	Side  uint8
	Delta float64 // raw frame delta in seconds, CmdTick only
}

// Encode writes a command to binary
func (c *Command) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Type); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Side); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.Delta)
}

// Decode reads a command from binary
func (c *Command) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Type); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Side); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &c.Delta)
}
