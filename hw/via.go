package hw

import (
	"plu/emu/log"
	"plu/hw/hwio"
)

// VIA register indexes.
const (
	viaORB  = 0x0
	viaORA  = 0x1
	viaDDRB = 0x2
	viaDDRA = 0x3
	viaT1CL = 0x4
	viaT1CH = 0x5
	viaT1LL = 0x6
	viaT1LH = 0x7
	viaT2CL = 0x8
	viaT2CH = 0x9
	viaSR   = 0xA
	viaACR  = 0xB
	viaPCR  = 0xC
	viaIFR  = 0xD
	viaIER  = 0xE
	viaORAN = 0xF
)

// IFR/IER bits.
const (
	viaIrqT2  = 5
	viaIrqT1  = 6
	viaIrqAny = 7
)

// ACR bit selecting T1 free-run mode.
const viaT1FreeRun = 6

// TimerController is a subset of a 6522 VIA: two 16-bit down counters and the
// interrupt logic. Ports, shift register and handshake registers are plain
// storage.
//
// Counters are decremented once per Tick, that is once per instruction.
type TimerController struct {
	Regs [16]hwio.Reg8

	t1cnt, t1latch uint16
	t2cnt          uint16
	t1armed        bool
	t2armed        bool

	asserted bool
}

func NewTimerController() *TimerController {
	v := &TimerController{}
	names := [16]string{
		"orb", "ora", "ddrb", "ddra", "t1cl", "t1ch", "t1ll", "t1lh",
		"t2cl", "t2ch", "sr", "acr", "pcr", "ifr", "ier", "oran",
	}
	for i := range v.Regs {
		v.Regs[i].Name = names[i]
	}

	v.Regs[viaT1CL].ReadCb = v.readT1CL
	v.Regs[viaT1CL].PeekCb = func(uint8) uint8 { return uint8(v.t1cnt) }
	v.Regs[viaT1CL].WriteCb = func(_, val uint8) { v.t1latch = v.t1latch&0xFF00 | uint16(val) }

	v.Regs[viaT1CH].ReadCb = func(uint8) uint8 { return uint8(v.t1cnt >> 8) }
	v.Regs[viaT1CH].PeekCb = v.Regs[viaT1CH].ReadCb
	v.Regs[viaT1CH].WriteCb = v.writeT1CH

	v.Regs[viaT1LL].ReadCb = func(uint8) uint8 { return uint8(v.t1latch) }
	v.Regs[viaT1LL].PeekCb = v.Regs[viaT1LL].ReadCb
	v.Regs[viaT1LL].WriteCb = v.Regs[viaT1CL].WriteCb

	v.Regs[viaT1LH].ReadCb = func(uint8) uint8 { return uint8(v.t1latch >> 8) }
	v.Regs[viaT1LH].PeekCb = v.Regs[viaT1LH].ReadCb
	v.Regs[viaT1LH].WriteCb = v.writeT1LH

	// T2 only latches its low byte.
	v.Regs[viaT2CL].ReadCb = v.readT2CL
	v.Regs[viaT2CL].PeekCb = func(uint8) uint8 { return uint8(v.t2cnt) }
	v.Regs[viaT2CH].ReadCb = func(uint8) uint8 { return uint8(v.t2cnt >> 8) }
	v.Regs[viaT2CH].PeekCb = v.Regs[viaT2CH].ReadCb
	v.Regs[viaT2CH].WriteCb = v.writeT2CH

	v.Regs[viaIFR].ReadCb = v.readIFR
	v.Regs[viaIFR].PeekCb = v.peekIFR
	v.Regs[viaIFR].WriteCb = func(uint8, uint8) { v.clearIRQ(0xFF) }

	v.Regs[viaIER].ReadCb = func(val uint8) uint8 { return val | 0x80 }
	v.Regs[viaIER].PeekCb = v.Regs[viaIER].ReadCb
	v.Regs[viaIER].WriteCb = v.writeIER
	return v
}

func (v *TimerController) Reset() {
	for i := range v.Regs {
		v.Regs[i].Reset()
	}
	v.t1cnt, v.t1latch, v.t2cnt = 0, 0, 0
	v.t1armed, v.t2armed = false, false
	v.asserted = false
}

func (v *TimerController) ifr() *uint8 { return &v.Regs[viaIFR].Value }
func (v *TimerController) ier() uint8  { return v.Regs[viaIER].Value }

// clearIRQ clears the given IFR bits and deasserts the interrupt if no
// enabled source remains.
func (v *TimerController) clearIRQ(mask uint8) {
	*v.ifr() &^= mask
	v.asserted = *v.ifr()&v.ier()&0x7F != 0
}

func (v *TimerController) readT1CL(uint8) uint8 {
	v.clearIRQ(1 << viaIrqT1)
	return uint8(v.t1cnt)
}

func (v *TimerController) readT2CL(uint8) uint8 {
	v.clearIRQ(1 << viaIrqT2)
	return uint8(v.t2cnt)
}

// writeT1CH loads the latch high byte and starts T1.
func (v *TimerController) writeT1CH(_, val uint8) {
	v.t1latch = v.t1latch&0x00FF | uint16(val)<<8
	v.t1cnt = v.t1latch
	v.t1armed = true
	v.clearIRQ(1 << viaIrqT1)

	log.ModVIA.DebugZ("T1 started").Hex16("latch", v.t1latch).End()
}

func (v *TimerController) writeT1LH(_, val uint8) {
	v.t1latch = v.t1latch&0x00FF | uint16(val)<<8
	v.clearIRQ(1 << viaIrqT1)
}

// writeT2CH starts T2 from the low latch and val.
func (v *TimerController) writeT2CH(_, val uint8) {
	v.t2cnt = uint16(val)<<8 | uint16(v.Regs[viaT2CL].Value)
	v.t2armed = true
	v.clearIRQ(1 << viaIrqT2)

	log.ModVIA.DebugZ("T2 started").Hex16("count", v.t2cnt).End()
}

func (v *TimerController) peekIFR(val uint8) uint8 {
	val &= 0x7F
	if val&v.ier()&0x7F != 0 {
		val |= 1 << viaIrqAny
	}
	return val
}

// Reading IFR clears the interrupt condition.
func (v *TimerController) readIFR(val uint8) uint8 {
	val = v.peekIFR(val)
	v.clearIRQ(0xFF)
	return val
}

// writeIER sets (bit 7 set) or clears (bit 7 clear) the given enable bits.
func (v *TimerController) writeIER(old, val uint8) {
	if hwio.GetBit8(val, viaIrqAny) {
		v.Regs[viaIER].Value = (old | val) & 0x7F
	} else {
		v.Regs[viaIER].Value = old &^ val & 0x7F
	}
}

func (v *TimerController) Tick() {
	if v.t1armed {
		v.t1cnt--
		if v.t1cnt == 0 {
			hwio.SetBit8(v.ifr(), viaIrqT1)
			if hwio.GetBit8(v.Regs[viaACR].Value, viaT1FreeRun) {
				v.t1cnt = v.t1latch
			} else {
				v.t1armed = false
			}
		}
	}
	if v.t2armed {
		v.t2cnt--
		if v.t2cnt == 0 {
			hwio.SetBit8(v.ifr(), viaIrqT2)
			v.t2armed = false
		}
	}

	v.asserted = *v.ifr()&v.ier()&0x7F != 0
}

// IRQ reports whether an enabled timer has expired.
func (v *TimerController) IRQ() bool { return v.asserted }

func (v *TimerController) Read8(reg uint16) uint8       { return v.Regs[reg&0xF].Read8() }
func (v *TimerController) Peek8(reg uint16) uint8       { return v.Regs[reg&0xF].Peek8() }
func (v *TimerController) Write8(reg uint16, val uint8) { v.Regs[reg&0xF].Write8(val) }
