package emu

import (
	"time"

	"plu/hw/snapshot"
)

// A Command is sent by the host to the emulation loop.
type Command interface{ isCommand() }

type (
	FetchMemory    struct{} // requests a MemorySnapshot
	FetchProcessor struct{} // requests a ProcessorSnapshot
	Reset          struct{}
	SendInput      struct{ Byte byte } // delivers a byte to the serial port
	SetLogLevel    struct{ Level int }
	TogglePause    struct{} // switches between Running and Paused
	StepOnce       struct{} // executes a single instruction while paused
	SetSpeed       struct{ Delay time.Duration }
)

func (FetchMemory) isCommand()    {}
func (FetchProcessor) isCommand() {}
func (Reset) isCommand()          {}
func (SendInput) isCommand()      {}
func (SetLogLevel) isCommand()    {}
func (TogglePause) isCommand()    {}
func (StepOnce) isCommand()       {}
func (SetSpeed) isCommand()       {}

// An Event is sent by the emulation loop to the host.
type Event interface{ isEvent() }

// LogLine is an engine log line. Repeat counts the identical lines emitted in
// a row, this one included.
type LogLine struct {
	Text   string
	Repeat int
}

// OutputByte is a byte written to the serial port.
type OutputByte byte

// MemorySnapshot is a copy of the 64KB address space.
type MemorySnapshot struct{ Data []byte }

type ProcessorSnapshot struct{ CPU snapshot.CPU }

func (LogLine) isEvent()           {}
func (OutputByte) isEvent()        {}
func (MemorySnapshot) isEvent()    {}
func (ProcessorSnapshot) isEvent() {}
