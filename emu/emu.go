package emu

import (
	"context"
	"fmt"

	"plu/emu/log"
	"plu/rom"
)

// Emulator runs a Machine on its own goroutine. The host talks to it with
// commands and receives its events, both through unbounded ordered queues:
// neither side ever blocks the other and no message is lost.
type Emulator struct {
	Machine *Machine

	cmds   *queue[Command]
	events *queue[Event]

	pending []Command // reused by drain
}

// Launch builds the machine from the ROM image, the optional disk image and
// the configured slots, then resets it. It doesn't start the emulation loop,
// call Run() for that.
func Launch(img *rom.Image, disk []byte, cfg Config) (*Emulator, error) {
	cfg.Check()

	e := &Emulator{
		cmds:   newQueue[Command](),
		events: newQueue[Event](),
	}

	m, err := NewMachine(img, disk, cfg, e.events.push)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}
	e.Machine = m
	return e, nil
}

// Run runs the emulation loop until ctx is done. The Machine must not be
// accessed by other goroutines before Run returns.
func (e *Emulator) Run(ctx context.Context) {
	log.ModEmu.InfoZ("Emulation loop started").End()
	for {
		select {
		case <-ctx.Done():
			log.ModEmu.InfoZ("Emulation loop exited").Uint("clock", e.Machine.CPU.Clock).End()
			return
		default:
		}

		e.drain()
		e.Machine.Step()
	}
}

// Send queues a command for the emulation loop. It never blocks.
func (e *Emulator) Send(cmd Command) { e.cmds.push(cmd) }

// EventsReady is signaled when events are waiting to be taken.
func (e *Emulator) EventsReady() <-chan struct{} { return e.events.ready }

// TakeEvents appends the pending events to dst, oldest first.
func (e *Emulator) TakeEvents(dst []Event) []Event { return e.events.take(dst) }

// drain handles all pending commands, in order.
func (e *Emulator) drain() {
	e.pending = e.cmds.poll(e.pending[:0])
	for _, cmd := range e.pending {
		e.handle(cmd)
	}
	clear(e.pending)
}

func (e *Emulator) handle(cmd Command) {
	m := e.Machine
	switch cmd := cmd.(type) {
	case FetchMemory:
		e.events.push(MemorySnapshot{Data: m.CPU.Bus.Snapshot()})
	case FetchProcessor:
		e.events.push(ProcessorSnapshot{CPU: m.CPU.Snapshot()})
	case Reset:
		m.Reset()
	case SendInput:
		m.SendInput(cmd.Byte)
	case SetLogLevel:
		m.SetLogLevel(cmd.Level)
	case TogglePause:
		m.TogglePause()
	case StepOnce:
		m.RequestStep()
	case SetSpeed:
		m.Delay = max(cmd.Delay, 0)
	default:
		log.ModEmu.WarnZ("Unknown command").String("cmd", fmt.Sprintf("%T", cmd)).End()
	}
}
