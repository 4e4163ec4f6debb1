package hw

import (
	"plu/emu/log"
	"plu/hw/hwio"
)

// Serial status bit, set when a received byte is waiting in the data
// register.
const SerialRxFull = 0x08

// SerialPort is a mailbox style serial interface: register 0 holds data (in
// both directions) and register 1 the status.
//
// Bytes written by the CPU are handed to the output function. Bytes received
// from the host are stored with SendInput and consumed by reading register 0.
type SerialPort struct {
	Data   hwio.Reg8
	Status hwio.Reg8

	out func(byte)
}

// NewSerialPort creates a serial port which calls out for each byte written
// by the CPU. out may be nil.
func NewSerialPort(out func(byte)) *SerialPort {
	s := &SerialPort{out: out}
	s.Data = hwio.Reg8{
		Name:    "serial-data",
		ReadCb:  s.readData,
		WriteCb: s.writeData,
	}
	s.Status = hwio.Reg8{
		Name: "serial-status",
	}
	return s
}

func (s *SerialPort) readData(val uint8) uint8 {
	s.Data.Value = 0
	s.Status.Value = 0
	return val
}

func (s *SerialPort) writeData(_, val uint8) {
	log.ModSerial.DebugZ("output").Hex8("val", val).End()
	if s.out != nil {
		s.out(val)
	}
}

// SendInput makes c available to the CPU.
func (s *SerialPort) SendInput(c byte) {
	s.Data.Value = c
	s.Status.Value = SerialRxFull
}

// Reset empties the mailbox.
func (s *SerialPort) Reset() {
	s.Data.Value = 0
	s.Status.Value = 0
}

func (s *SerialPort) reg(reg uint16) *hwio.Reg8 {
	if reg&1 == 0 {
		return &s.Data
	}
	return &s.Status
}

func (s *SerialPort) Read8(reg uint16) uint8       { return s.reg(reg).Read8() }
func (s *SerialPort) Peek8(reg uint16) uint8       { return s.reg(reg).Peek8() }
func (s *SerialPort) Write8(reg uint16, val uint8) { s.reg(reg).Write8(val) }
func (s *SerialPort) Tick()                        {}
func (s *SerialPort) IRQ() bool                    { return false }
