package hw

import (
	"io"

	"plu/emu/log"
	"plu/hw/hwio"
	"plu/hw/snapshot"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// Power-up state. PC is a placeholder, overwritten by Reset.
const (
	powerUpP    = P(0x30)
	powerUpPC   = uint16(0x400)
	powerUpInst = uint8(0xEA)
)

// irq entry cost, in cycles.
const irqCycles = 7

type CPU struct {
	Bus *hwio.Table

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	Clock   uint64 // CPU cycles, wraps around
	Inst    uint8  // last fetched opcode
	IRQLine bool   // interrupt line asserted by a device

	// set by handlers that load PC.
	jumped bool

	// Non-nil when execution tracing is enabled.
	tracer *tracer
}

// NewCPU creates a new CPU at power-up state.
func NewCPU(bus *hwio.Table) *CPU {
	return &CPU{
		Bus:  bus,
		P:    powerUpP,
		PC:   powerUpPC,
		Inst: powerUpInst,
	}
}

// Reset resets the devices, the cycle counter and loads PC from the reset
// vector. Other registers are left untouched.
func (c *CPU) Reset() {
	c.Bus.Reset()
	c.Clock = 0
	c.IRQLine = false
	c.PC = hwio.Read16(c.Bus, ResetVector)

	log.ModCPU.DebugZ("reset").Hex16("PC", c.PC).End()
}

// Snapshot returns a copy of the processor registers.
func (c *CPU) Snapshot() snapshot.CPU {
	return snapshot.CPU{
		PC:    c.PC,
		SP:    c.SP,
		P:     uint8(c.P),
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		Clock: c.Clock,
		Inst:  c.Inst,
		IRQ:   c.IRQLine,
	}
}

func (c *CPU) Read8(addr uint16) uint8 {
	return c.Bus.Read8(addr, false)
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.Bus.Write8(addr, val)
}

func (c *CPU) Read16(addr uint16) uint16 {
	return hwio.Read16(c.Bus, addr)
}

// Exec executes one instruction, the one at PC, then ticks the devices and
// enters the interrupt sequence if an interrupt is pending and not masked.
// It returns the executed instruction.
func (c *CPU) Exec() Instr {
	pc := c.PC
	op := c.Read8(pc)
	in := instrs[op]
	c.Inst = op

	if c.tracer != nil {
		c.traceOp()
	}

	if in.Mnemonic == NOP2 || in.Mnemonic == NOP3 || (in.Mnemonic == NOP && op != 0xEA) {
		log.ModCPU.DebugZ("undefined opcode").Hex8("op", op).Hex16("PC", pc).End()
	}

	c.jumped = false
	execs[in.Mnemonic](c, in)
	if !c.jumped {
		c.PC = pc + uint16(in.Size)
	}
	c.Clock += uint64(in.Cycles)

	c.Bus.Tick()
	c.IRQLine = c.Bus.IRQ()
	if c.IRQLine && !c.P.I() {
		c.irq()
	}
	return in
}

// irq pushes PC and P (with B cleared) then jumps to the IRQ vector.
func (c *CPU) irq() {
	c.push16(c.PC)
	c.push8(uint8((c.P &^ Break) | Reserved))
	c.P = c.P.SetI(true)
	c.PC = c.Read16(IRQVector)
	c.Clock += irqCycles

	log.ModCPU.DebugZ("irq").Hex16("vector", c.PC).End()
}

// jump loads PC. The instruction length isn't added after a jump.
func (c *CPU) jump(addr uint16) {
	c.PC = addr
	c.jumped = true
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	c.Write8(0x0100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xFF))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Read8(0x0100 | uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// SetTraceOutput enables the execution trace, one line per instruction is
// written to w. A nil w disables tracing.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) traceOp() {
	c.tracer.write(c.state())
}
