package hwio

import (
	"fmt"

	"plu/emu/log"
)

// Size of the address space.
const Size = 0x10000

type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

// Read16 reads a little-endian word. Both reads go through b and may have
// side effects.
func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

// Peek16 is the side-effect free version of Read16.
func Peek16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, true)
	hi := b.Read8(addr+1, true)
	return uint16(hi)<<8 | uint16(lo)
}

type window struct {
	name       string
	begin, end uint16 // inclusive
	dev        Device
}

// Table is the system bus. Most of the address space is flat storage (RAM and
// ROM alike, ROM is not write protected), while some windows are routed to
// devices.
type Table struct {
	Name string

	mem     [Size]uint8
	io      Bitset // addresses routed to a device
	windows []window
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Load copies data into flat storage, starting at addr.
func (t *Table) Load(addr uint16, data []byte) {
	if int(addr)+len(data) > Size {
		panic(fmt.Sprintf("hwio: %d bytes don't fit at $%04X", len(data), addr))
	}

	log.ModBus.DebugZ("loading data").
		Hex16("addr", addr).
		Int("size", len(data)).
		String("bus", t.Name).
		End()

	copy(t.mem[addr:], data)
}

// MapDevice routes all accesses in [addr, addr+size) to dev. Device
// registers are addressed relative to addr. Windows can't overlap.
func (t *Table) MapDevice(addr uint16, size int, name string, dev Device) error {
	end := int(addr) + size - 1
	if size <= 0 || end >= Size {
		return fmt.Errorf("invalid window for %s: $%04X (+%d)", name, addr, size)
	}
	for _, w := range t.windows {
		if int(w.begin) <= end && addr <= w.end {
			return fmt.Errorf("%s window $%04X-$%04X overlaps %s", name, addr, end, w.name)
		}
	}

	log.ModBus.DebugZ("mapping device").
		Hex16("addr", addr).
		Hex16("end", uint16(end)).
		String("device", name).
		String("bus", t.Name).
		End()

	t.windows = append(t.windows, window{
		name:  name,
		begin: addr,
		end:   uint16(end),
		dev:   dev,
	})
	t.io.SetRange(uint(addr), uint(end)+1)
	return nil
}

func (t *Table) search(addr uint16) *window {
	for i := range t.windows {
		if addr >= t.windows[i].begin && addr <= t.windows[i].end {
			return &t.windows[i]
		}
	}
	return nil
}

// Read8 reads from the device mapped at addr, or from flat storage.
func (t *Table) Read8(addr uint16, peek bool) uint8 {
	if !t.io.Test(uint(addr)) {
		return t.mem[addr]
	}
	w := t.search(addr)
	if peek {
		return w.dev.Peek8(addr - w.begin)
	}
	return w.dev.Read8(addr - w.begin)
}

// Peek8 is a convenience function.
func (t *Table) Peek8(addr uint16) uint8 {
	return t.Read8(addr, true)
}

func (t *Table) Write8(addr uint16, val uint8) {
	if !t.io.Test(uint(addr)) {
		t.mem[addr] = val
		return
	}
	w := t.search(addr)
	w.dev.Write8(addr-w.begin, val)
}

// Tick advances all devices by one step, in mapping order.
func (t *Table) Tick() {
	for i := range t.windows {
		t.windows[i].dev.Tick()
	}
}

// IRQ reports whether any device asserts its interrupt line.
func (t *Table) IRQ() bool {
	for i := range t.windows {
		if t.windows[i].dev.IRQ() {
			return true
		}
	}
	return false
}

// Reset resets the devices having a state to reset. Flat storage is left
// untouched.
func (t *Table) Reset() {
	for i := range t.windows {
		if r, ok := t.windows[i].dev.(Resetter); ok {
			r.Reset()
		}
	}
}

// Snapshot returns a copy of the whole address space, as seen by the CPU.
// Device windows are read with Peek8.
func (t *Table) Snapshot() []byte {
	buf := make([]byte, Size)
	copy(buf, t.mem[:])
	for _, w := range t.windows {
		for addr := int(w.begin); addr <= int(w.end); addr++ {
			buf[addr] = w.dev.Peek8(uint16(addr) - w.begin)
		}
	}
	return buf
}
