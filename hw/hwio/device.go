package hwio

// Device is a peripheral mapped on a window of a Table. reg is the offset of
// the accessed address from the start of the window.
type Device interface {
	Read8(reg uint16) uint8
	// Peek8 is like Read8 without side effects.
	Peek8(reg uint16) uint8
	Write8(reg uint16, val uint8)

	// Tick advances the device internal state by one step.
	Tick()
	// IRQ reports whether the device asserts its interrupt line.
	IRQ() bool
}

// Resetter is implemented by devices having an internal state to clear when
// the machine is reset.
type Resetter interface {
	Reset()
}
