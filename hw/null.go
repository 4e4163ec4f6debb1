package hw

// NullDevice occupies an empty slot. It reads as 0, ignores writes and never
// interrupts.
type NullDevice struct{}

func (NullDevice) Read8(uint16) uint8   { return 0 }
func (NullDevice) Peek8(uint16) uint8   { return 0 }
func (NullDevice) Write8(uint16, uint8) {}
func (NullDevice) Tick()                {}
func (NullDevice) IRQ() bool            { return false }
