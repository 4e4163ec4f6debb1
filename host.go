package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/term"

	"plu/emu"
	"plu/emu/log"
	"plu/hw"
	"plu/hw/snapshot"
)

// Control keys.
const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
	keyCtrlL = 0x0C
	keyCtrlN = 0x0E
	keyCtrlP = 0x10
	keyCtrlQ = 0x11
	keyCtrlR = 0x12
	keyCtrlT = 0x14
)

type commander interface {
	Send(emu.Command)
}

// eventSource is where the host takes the emulator events from.
type eventSource interface {
	EventsReady() <-chan struct{}
	TakeEvents([]emu.Event) []emu.Event
}

// host is the terminal front end. Typed keys are sent to the serial port,
// except control keys which drive the emulator. Serial output is written to
// out, engine log lines and processor states to logw.
type host struct {
	emu  commander
	out  io.Writer
	logw io.Writer
	quit func()

	logLevel int

	// set by the input goroutine, cleared by the event pump.
	showProc atomic.Bool
	showMem  atomic.Bool

	// event pump state
	lastRepeat int
	lastClock  uint64
	lastTime   time.Time
	memPage    int // next page to dump
}

func newHost(e commander, out, logw io.Writer, logLevel int, quit func()) *host {
	return &host{
		emu:      e,
		out:      out,
		logw:     logw,
		quit:     quit,
		logLevel: logLevel,
	}
}

// rawTerminal puts f in raw mode if it's a terminal. The returned function
// restores the previous mode.
func rawTerminal(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}
	return func() { term.Restore(fd, old) }, nil
}

// readInput reads typed keys until r returns an error.
func (h *host) readInput(r io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			h.handleKey(b)
		}
		if err != nil {
			log.ModHost.DebugZ("input closed").Error("err", err).End()
			return
		}
	}
}

func (h *host) handleKey(b byte) {
	switch b {
	case keyCtrlQ, keyCtrlC:
		h.quit()
	case keyCtrlR:
		h.emu.Send(emu.Reset{})
	case keyCtrlP:
		h.emu.Send(emu.TogglePause{})
	case keyCtrlN:
		h.emu.Send(emu.StepOnce{})
	case keyCtrlL:
		h.logLevel = (h.logLevel + 1) % (emu.MaxLogLevel + 1)
		h.emu.Send(emu.SetLogLevel{Level: h.logLevel})
		fmt.Fprintf(h.logw, "log level %d\r\n", h.logLevel)
	case keyCtrlT:
		h.showProc.Store(true)
		h.emu.Send(emu.FetchProcessor{})
	case keyCtrlD:
		h.showMem.Store(true)
		h.emu.Send(emu.FetchMemory{})

	// Raw mode sends CR for Enter and DEL for Backspace.
	case '\r':
		h.emu.Send(emu.SendInput{Byte: '\n'})
	case 0x7F:
		h.emu.Send(emu.SendInput{Byte: 0x08})
	default:
		h.emu.Send(emu.SendInput{Byte: b})
	}
}

// pumpEvents handles the emulator events, in order, until ctx is done. Each
// event is also passed to forward, if not nil.
func (h *host) pumpEvents(ctx context.Context, src eventSource, forward func(emu.Event)) error {
	var evs []emu.Event
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-src.EventsReady():
		}

		evs = src.TakeEvents(evs[:0])
		now := time.Now()
		for _, ev := range evs {
			h.handleEvent(ev, now)
			if forward != nil {
				forward(ev)
			}
		}
		clear(evs)
	}
}

func (h *host) handleEvent(ev emu.Event, now time.Time) {
	switch ev := ev.(type) {
	case emu.OutputByte:
		h.output(byte(ev))
	case emu.LogLine:
		h.logLine(ev)
	case emu.ProcessorSnapshot:
		h.processor(ev.CPU, now)
	case emu.MemorySnapshot:
		h.memory(ev.Data)
	}
}

func (h *host) output(b byte) {
	switch b {
	case '\r', '\n':
		io.WriteString(h.out, "\r\n")
	case 0x08:
		io.WriteString(h.out, "\b \b")
	default:
		h.out.Write([]byte{b})
	}
}

// logLine prints an engine log line, repeated lines are only counted.
func (h *host) logLine(l emu.LogLine) {
	if l.Repeat > 1 {
		h.lastRepeat = l.Repeat
		return
	}
	if h.lastRepeat > 1 {
		fmt.Fprintf(h.logw, "  (repeated %d times)\r\n", h.lastRepeat)
		h.lastRepeat = 0
	}
	fmt.Fprintf(h.logw, "%s\r\n", l.Text)
}

// processor logs the effective clock rate since the last processor snapshot
// and prints the processor state if it has been requested.
func (h *host) processor(cpu snapshot.CPU, now time.Time) {
	if !h.lastTime.IsZero() && cpu.Clock >= h.lastClock {
		if elapsed := now.Sub(h.lastTime); elapsed > 0 {
			rate := float64(cpu.Clock-h.lastClock) / elapsed.Seconds()
			log.ModHost.InfoZ("clock rate").String("rate", formatRate(rate)).End()
		}
	}
	h.lastClock, h.lastTime = cpu.Clock, now

	if h.showProc.CompareAndSwap(true, false) {
		fmt.Fprintf(h.logw, "%s\r\n", formatProcessor(cpu))
	}
}

// memory dumps a page of mem if it has been requested. Successive requests
// walk through the address space.
func (h *host) memory(mem []byte) {
	if !h.showMem.CompareAndSwap(true, false) {
		return
	}
	base := h.memPage << 8
	if len(mem) < base+256 {
		return
	}
	io.WriteString(h.logw, formatPage(mem[base:base+256], uint16(base)))
	h.memPage = (h.memPage + 1) & 0xFF
}

// formatPage formats page as 16 lines of 16 bytes, addresses start at base.
func formatPage(page []byte, base uint16) string {
	var sb strings.Builder
	for off := 0; off < len(page); off += 16 {
		row := page[off:min(off+16, len(page))]
		ascii := make([]byte, len(row))
		for i, b := range row {
			if b < 0x20 || b > 0x7E {
				b = '.'
			}
			ascii[i] = b
		}
		fmt.Fprintf(&sb, "%04X: % X  %s\r\n", base+uint16(off), row, ascii)
	}
	return sb.String()
}

func formatRate(hz float64) string {
	switch {
	case hz >= 1e6:
		return fmt.Sprintf("%.2f MHz", hz/1e6)
	case hz >= 1e3:
		return fmt.Sprintf("%.2f kHz", hz/1e3)
	}
	return fmt.Sprintf("%.0f Hz", hz)
}

func formatProcessor(cpu snapshot.CPU) string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X P:%02X [%s] S:%02X CYC:%d IRQ:%t",
		cpu.PC, cpu.A, cpu.X, cpu.Y, cpu.P, hw.P(cpu.P), cpu.SP, cpu.Clock, cpu.IRQ)
}

// statusMeter periodically requests a processor snapshot, used to compute
// the effective clock rate.
func (h *host) statusMeter(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.emu.Send(emu.FetchProcessor{})
		}
	}
}
