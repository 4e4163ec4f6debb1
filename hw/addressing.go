package hw

import "plu/hw/hwio"

// EffectiveAddress computes the operand address of the instruction at PC,
// for the given addressing mode. ok is false when the instruction has no
// memory operand (Implied and Accumulator modes).
//
// Pointers are fetched through the bus, so computing an address may trigger
// device side effects.
func (c *CPU) EffectiveAddress(mode Mode) (addr uint16, ok bool) {
	return c.resolve(mode, false)
}

// PeekEffectiveAddress is the side-effect free version of EffectiveAddress.
func (c *CPU) PeekEffectiveAddress(mode Mode) (addr uint16, ok bool) {
	return c.resolve(mode, true)
}

func (c *CPU) resolve(mode Mode, peek bool) (uint16, bool) {
	read8 := func(addr uint16) uint8 { return c.Bus.Read8(addr, peek) }
	read16 := func(addr uint16) uint16 {
		if peek {
			return hwio.Peek16(c.Bus, addr)
		}
		return hwio.Read16(c.Bus, addr)
	}
	// pointers in zero page wrap around within the page.
	zpread16 := func(zp uint8) uint16 {
		return uint16(read8(uint16(zp+1)))<<8 | uint16(read8(uint16(zp)))
	}

	oper := c.PC + 1
	switch mode {
	case Immediate:
		return oper, true
	case ZeroPage, ZeroPageRelative:
		return uint16(read8(oper)), true
	case ZeroPageX:
		return uint16(read8(oper) + c.X), true
	case ZeroPageY:
		return uint16(read8(oper) + c.Y), true
	case Absolute:
		return read16(oper), true
	case AbsoluteX:
		return read16(oper) + uint16(c.X), true
	case AbsoluteY:
		return read16(oper) + uint16(c.Y), true
	case Indirect:
		return read16(read16(oper)), true
	case IndirectX:
		return zpread16(read8(oper) + c.X), true
	case IndirectY:
		return zpread16(read8(oper)) + uint16(c.Y), true
	case ZeroPageIndirect:
		return zpread16(read8(oper)), true
	case AbsoluteIndexedIndirect:
		return read16(read16(oper) + uint16(c.X)), true
	case Relative:
		return branchTarget(c.PC+2, read8(oper)), true
	}
	return 0, false
}

// branchTarget adds the signed offset off to pc.
func branchTarget(pc uint16, off uint8) uint16 {
	return pc + uint16(int8(off))
}
