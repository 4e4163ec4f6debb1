package emu

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewMachine(t *testing.T) {
	m, _ := newTestMachine(t, testConfig(), 0xEA)

	if m.Disk == nil || m.Serial == nil || len(m.Timers) != 1 {
		t.Fatalf("missing devices: disk=%v serial=%v timers=%d", m.Disk, m.Serial, len(m.Timers))
	}
	if m.CPU.PC != 0xF000 {
		t.Errorf("PC = $%04X, want $F000", m.CPU.PC)
	}
	if m.State != Running {
		t.Errorf("state = %s, want Running", m.State)
	}
}

func TestMachineWithoutDisk(t *testing.T) {
	// LDA #$20; STA $FFD7; LDA $FFD7; STA $00; LDA #$12; STA $FFD3; LDA $FFD3; STA $01
	m, _ := newTestMachine(t, testConfig(),
		0xA9, 0x20, 0x8D, 0xD7, 0xFF, 0xAD, 0xD7, 0xFF, 0x85, 0x00,
		0xA9, 0x12, 0x8D, 0xD3, 0xFF, 0xAD, 0xD3, 0xFF, 0x85, 0x01)
	m.CPU.Bus.Write8(0x00, 0xAA)
	m.CPU.Bus.Write8(0x01, 0xAA)

	stepN(t, m, 8)

	if got := m.CPU.Bus.Peek8(0x00); got != 0 {
		t.Errorf("disk status = %02X, want 0", got)
	}
	if got := m.CPU.Bus.Peek8(0x01); got != 0 {
		t.Errorf("disk lba register = %02X, want 0", got)
	}
}

func TestNewMachineSlotErrors(t *testing.T) {
	tests := []struct {
		name  string
		slots []SlotConfig
	}{
		{"unknown kind", []SlotConfig{{Base: 0xFF00, Kind: "ppu"}}},
		{"overlap", []SlotConfig{{Base: 0xFF00, Kind: "via"}, {Base: 0xFF08, Kind: "null"}}},
		{"out of range", []SlotConfig{{Base: 0xFFF8, Kind: "cf"}}},
		{"two serial", []SlotConfig{{Base: 0xFF00, Kind: "serial"}, {Base: 0xFF10, Kind: "serial"}}},
		{"two cf", []SlotConfig{{Base: 0xFF00, Kind: "cf"}, {Base: 0xFF10, Kind: "cf"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Slots = tt.slots
			_, err := NewMachine(romImage(0xEA), nil, cfg, func(Event) {})
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestMachineLogLevels(t *testing.T) {
	const disasm = "F000  A9 42     LDA #$42"
	regs := fmt.Sprintf("%-48s A:00 X:00 Y:00 P:30 S:00", disasm)

	tests := []struct {
		level int
		want  []Event
	}{
		{0, nil},
		{1, []Event{LogLine{Text: disasm, Repeat: 1}}},
		{2, []Event{LogLine{Text: regs, Repeat: 1}}},
		{3, []Event{LogLine{Text: regs + " EA:$F001", Repeat: 1}}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.level), func(t *testing.T) {
			cfg := testConfig()
			cfg.Emulation.LogLevel = tt.level
			m, rec := newTestMachine(t, cfg, 0xA9, 0x42)

			stepN(t, m, 1)
			if diff := cmp.Diff(tt.want, rec.take()); diff != "" {
				t.Errorf("log lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMachineStall(t *testing.T) {
	const line = "F000  4C 00 F0  JMP $F000"

	cfg := testConfig()
	cfg.Emulation.LogLevel = 1
	m, rec := newTestMachine(t, cfg, 0x4C, 0x00, 0xF0)

	stepN(t, m, 2)
	want := []Event{
		LogLine{Text: line, Repeat: 1},
		LogLine{Text: line, Repeat: 2},
		LogLine{Text: "engine paused: stalled at $F000", Repeat: 1},
	}
	if diff := cmp.Diff(want, rec.take()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if m.State != Paused {
		t.Fatalf("state = %s, want Paused", m.State)
	}

	if m.Step() {
		t.Fatal("paused machine executed an instruction")
	}
	clock := m.CPU.Clock

	// Resuming resets the detector.
	m.TogglePause()
	stepN(t, m, 1)
	want = []Event{LogLine{Text: line, Repeat: 1}}
	if diff := cmp.Diff(want, rec.take()); diff != "" {
		t.Fatalf("events mismatch after resume (-want +got):\n%s", diff)
	}
	if m.CPU.Clock != clock+3 {
		t.Errorf("clock = %d, want %d", m.CPU.Clock, clock+3)
	}
}

func TestMachineStallDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Emulation.LogLevel = 1
	cfg.Emulation.StallThreshold = 0
	m, rec := newTestMachine(t, cfg, 0x4C, 0x00, 0xF0)

	stepN(t, m, 5)
	evs := rec.take()
	if len(evs) != 5 {
		t.Fatalf("got %d events, want 5", len(evs))
	}
	if last := evs[4].(LogLine); last.Repeat != 5 {
		t.Errorf("last repeat = %d, want 5", last.Repeat)
	}
	if m.State != Running {
		t.Errorf("state = %s, want Running", m.State)
	}
}

func TestMachineStepWhilePaused(t *testing.T) {
	m, _ := newTestMachine(t, testConfig(), 0xEA, 0xEA, 0xEA)
	m.TogglePause()

	if m.Step() {
		t.Fatal("paused machine executed an instruction")
	}
	m.RequestStep()
	if !m.Step() {
		t.Fatal("requested step not executed")
	}
	if m.CPU.PC != 0xF001 {
		t.Errorf("PC = $%04X, want $F001", m.CPU.PC)
	}
	if m.Step() {
		t.Fatal("step request should be consumed")
	}
}

func TestMachineSerial(t *testing.T) {
	// LDA #'A'; STA $FFE0; LDA $FFE0
	m, rec := newTestMachine(t, testConfig(), 0xA9, 0x41, 0x8D, 0xE0, 0xFF, 0xAD, 0xE0, 0xFF)

	stepN(t, m, 2)
	if diff := cmp.Diff([]Event{OutputByte('A')}, rec.take()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	m.SendInput('x')
	if st := m.CPU.Bus.Peek8(0xFFE1); st != 0x08 {
		t.Errorf("serial status = %02X, want 08", st)
	}
	stepN(t, m, 1)
	if m.CPU.A != 'x' {
		t.Errorf("A = %02X, want %02X", m.CPU.A, 'x')
	}
	if st := m.CPU.Bus.Peek8(0xFFE1); st != 0 {
		t.Errorf("serial status = %02X, want 00", st)
	}
}

func TestMachineReset(t *testing.T) {
	m, _ := newTestMachine(t, testConfig(), 0xE8, 0xE8)

	stepN(t, m, 2)
	m.Reset()
	if m.CPU.PC != 0xF000 || m.CPU.Clock != 0 {
		t.Errorf("after reset PC=$%04X clock=%d", m.CPU.PC, m.CPU.Clock)
	}
	if m.CPU.X != 2 {
		t.Errorf("X = %d, reset shouldn't modify it", m.CPU.X)
	}
}

func TestMachineSetLogLevel(t *testing.T) {
	m, _ := newTestMachine(t, testConfig(), 0xEA)

	for _, tt := range []struct{ set, want int }{{2, 2}, {-1, 0}, {7, MaxLogLevel}} {
		m.SetLogLevel(tt.set)
		if m.LogLevel != tt.want {
			t.Errorf("SetLogLevel(%d): got %d, want %d", tt.set, m.LogLevel, tt.want)
		}
	}
}

func TestMachineSnapshot(t *testing.T) {
	m, _ := newTestMachine(t, testConfig(), 0xA2, 0x07)
	stepN(t, m, 1)

	snap := m.Snapshot()
	if len(snap.Memory) != 0x10000 {
		t.Fatalf("memory size = %d", len(snap.Memory))
	}
	if snap.Memory[0xF000] != 0xA2 || snap.Memory[0xFFFD] != 0xF0 {
		t.Errorf("memory content mismatch")
	}
	if snap.CPU.X != 7 || snap.CPU.PC != 0xF002 || snap.CPU.Clock != 2 {
		t.Errorf("cpu snapshot = %+v", snap.CPU)
	}
}
