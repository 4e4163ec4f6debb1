package emu

import (
	"fmt"
	"time"

	"plu/emu/log"
	"plu/hw"
	"plu/hw/hwio"
	"plu/hw/snapshot"
	"plu/rom"
)

//go:generate go tool stringer -type=RunState -output=runstate_string.go

type RunState uint8

const (
	Running RunState = iota
	Paused
)

// Machine is the single board computer: the CPU, the bus and its devices.
// It's not safe for concurrent use, the Emulator owns it while it runs.
type Machine struct {
	CPU    *hw.CPU
	Disk   *hw.DiskController // nil without a cf slot
	Serial *hw.SerialPort     // nil without a serial slot
	Timers []*hw.TimerController

	State    RunState
	LogLevel int
	Delay    time.Duration // after each instruction

	step           bool
	pauseSleep     time.Duration
	stallThreshold int
	stall          stallDetector

	emit func(Event)
}

// stallDetector coalesces identical consecutive log lines.
type stallDetector struct {
	last   string
	repeat int
}

func (s *stallDetector) add(line string) int {
	if s.repeat > 0 && line == s.last {
		s.repeat++
	} else {
		s.last = line
		s.repeat = 1
	}
	return s.repeat
}

func (s *stallDetector) reset() { *s = stallDetector{} }

// slot window sizes.
var slotSizes = map[string]int{
	"via":    16,
	"cf":     16,
	"serial": 2,
	"null":   16,
}

// NewMachine builds the bus described by the configured slots, loads the
// ROM image and the disk image then resets the machine. Machine events are
// passed to emit.
func NewMachine(img *rom.Image, disk []byte, cfg Config, emit func(Event)) (*Machine, error) {
	bus := hwio.NewTable("cpu")
	bus.Load(img.LoadAddress(), img.Data)

	m := &Machine{
		CPU:            hw.NewCPU(bus),
		LogLevel:       cfg.Emulation.LogLevel,
		Delay:          cfg.Emulation.Speed,
		pauseSleep:     cfg.Emulation.PauseSleep,
		stallThreshold: cfg.Emulation.StallThreshold,
		emit:           emit,
	}

	for _, slot := range cfg.Slots {
		size, ok := slotSizes[slot.Kind]
		if !ok {
			return nil, fmt.Errorf("slot $%04X: unknown device kind %q", slot.Base, slot.Kind)
		}

		var dev hwio.Device
		switch slot.Kind {
		case "via":
			tc := hw.NewTimerController()
			m.Timers = append(m.Timers, tc)
			dev = tc
		case "cf":
			if m.Disk != nil {
				return nil, fmt.Errorf("slot $%04X: only one cf slot is supported", slot.Base)
			}
			m.Disk = hw.NewDiskController(disk)
			dev = m.Disk
		case "serial":
			if m.Serial != nil {
				return nil, fmt.Errorf("slot $%04X: only one serial slot is supported", slot.Base)
			}
			m.Serial = hw.NewSerialPort(func(b byte) { m.emit(OutputByte(b)) })
			dev = m.Serial
		case "null":
			dev = hw.NullDevice{}
		}

		if err := bus.MapDevice(slot.Base, size, slot.Kind, dev); err != nil {
			return nil, fmt.Errorf("slot $%04X: %w", slot.Base, err)
		}
	}

	if disk != nil && m.Disk == nil {
		log.ModEmu.WarnZ("disk image ignored, no cf slot").End()
	}

	if cfg.TraceOut != nil {
		m.CPU.SetTraceOutput(cfg.TraceOut)
	}

	m.CPU.Reset()
	return m, nil
}

// Reset performs a reset of the machine, the engine keeps its run state.
func (m *Machine) Reset() {
	log.ModEmu.InfoZ("Performing reset").End()
	m.CPU.Reset()
	m.stall.reset()
}

// TogglePause switches between Running and Paused. Resuming resets the stall
// detector.
func (m *Machine) TogglePause() {
	switch m.State {
	case Running:
		m.State = Paused
	case Paused:
		m.State = Running
		m.stall.reset()
	}
	log.ModEmu.InfoZ("Run state").Stringer("state", m.State).End()
}

// RequestStep allows a single instruction to run while paused.
func (m *Machine) RequestStep() { m.step = true }

// SetLogLevel sets the engine log verbosity, clamped to [0, MaxLogLevel].
func (m *Machine) SetLogLevel(lvl int) {
	m.LogLevel = min(max(lvl, 0), MaxLogLevel)
	m.stall.reset()
}

// SendInput delivers b to the serial port, if any.
func (m *Machine) SendInput(b byte) {
	if m.Serial == nil {
		log.ModEmu.WarnZ("input dropped, no serial slot").Hex8("byte", b).End()
		return
	}
	m.Serial.SendInput(b)
}

// Step executes one instruction, unless the machine is paused and no step has
// been requested in which case it sleeps for a while. It reports whether an
// instruction has been executed.
func (m *Machine) Step() bool {
	if m.State == Paused && !m.step {
		time.Sleep(m.pauseSleep)
		return false
	}
	m.step = false

	line := m.logLine()
	m.CPU.Exec()
	if line != "" {
		m.logOutput(line)
	}

	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	return true
}

// logLine returns the log line describing the instruction at PC, for the
// current log level.
func (m *Machine) logLine() string {
	if m.LogLevel <= 0 {
		return ""
	}

	cpu := m.CPU
	line := cpu.Disasm(cpu.PC).String()
	if m.LogLevel == 1 {
		return line
	}

	line = fmt.Sprintf("%-48s A:%02X X:%02X Y:%02X P:%02X S:%02X",
		line, cpu.A, cpu.X, cpu.Y, uint8(cpu.P), cpu.SP)
	if m.LogLevel == 2 {
		return line
	}

	in := hw.Decode(cpu.Bus.Peek8(cpu.PC))
	if ea, ok := cpu.PeekEffectiveAddress(in.Mode); ok {
		line += fmt.Sprintf(" EA:$%04X", ea)
	}
	return line
}

// logOutput emits line, then pauses the engine if the line has been repeated
// too many times in a row.
func (m *Machine) logOutput(line string) {
	n := m.stall.add(line)
	m.emit(LogLine{Text: line, Repeat: n})

	if m.stallThreshold <= 0 || n < m.stallThreshold || m.State != Running {
		return
	}

	m.State = Paused
	msg := fmt.Sprintf("engine paused: stalled at $%04X", m.CPU.PC)
	log.ModEmu.WarnZ("Engine stalled").Hex16("PC", m.CPU.PC).Int("repeat", n).End()
	m.emit(LogLine{Text: msg, Repeat: 1})
}

// Snapshot returns the processor state and a copy of the address space.
func (m *Machine) Snapshot() snapshot.Machine {
	return snapshot.Machine{
		Version: snapshot.Version,
		CPU:     m.CPU.Snapshot(),
		Memory:  m.CPU.Bus.Snapshot(),
	}
}
