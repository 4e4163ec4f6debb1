package emu

import (
	"testing"
	"time"

	"plu/rom"
)

// romImage returns a 4KB ROM image mapped at $F000, code is placed at $F000
// and the reset vector points to it.
func romImage(code ...byte) *rom.Image {
	data := make([]byte, 0x1000)
	copy(data, code)
	data[0xFFC] = 0x00
	data[0xFFD] = 0xF0
	return &rom.Image{Path: "test.rom", Data: data}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Emulation.PauseSleep = time.Millisecond
	return cfg
}

// eventRecorder records the events emitted by a Machine.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) emit(ev Event) { r.events = append(r.events, ev) }

func (r *eventRecorder) take() []Event {
	evs := r.events
	r.events = nil
	return evs
}

func newTestMachine(tb testing.TB, cfg Config, code ...byte) (*Machine, *eventRecorder) {
	tb.Helper()

	rec := &eventRecorder{}
	m, err := NewMachine(romImage(code...), nil, cfg, rec.emit)
	if err != nil {
		tb.Fatal(err)
	}
	return m, rec
}

func stepN(tb testing.TB, m *Machine, n int) {
	tb.Helper()

	for i := range n {
		if !m.Step() {
			tb.Fatalf("step %d: no instruction executed", i)
		}
	}
}
