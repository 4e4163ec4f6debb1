package snapshot

import (
	"fmt"

	"github.com/go-faster/jx"
)

// Version of the machine snapshot format.
const Version = 1

// Machine is the state of the whole machine: processor and address space.
type Machine struct {
	Version int
	CPU     CPU
	Memory  []byte
}

// CPU is the state of the processor registers.
type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Clock uint64
	Inst  uint8
	IRQ   bool
}

func (c *CPU) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(c.PC)
	e.FieldStart("sp")
	e.UInt8(c.SP)
	e.FieldStart("p")
	e.UInt8(c.P)
	e.FieldStart("a")
	e.UInt8(c.A)
	e.FieldStart("x")
	e.UInt8(c.X)
	e.FieldStart("y")
	e.UInt8(c.Y)
	e.FieldStart("clock")
	e.UInt64(c.Clock)
	e.FieldStart("inst")
	e.UInt8(c.Inst)
	e.FieldStart("irq")
	e.Bool(c.IRQ)
	e.ObjEnd()
}

func (c *CPU) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			c.PC, err = d.UInt16()
		case "sp":
			c.SP, err = d.UInt8()
		case "p":
			c.P, err = d.UInt8()
		case "a":
			c.A, err = d.UInt8()
		case "x":
			c.X, err = d.UInt8()
		case "y":
			c.Y, err = d.UInt8()
		case "clock":
			c.Clock, err = d.UInt64()
		case "inst":
			c.Inst, err = d.UInt8()
		case "irq":
			c.IRQ, err = d.Bool()
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("cpu.%s: %w", key, err)
		}
		return nil
	})
}

func (c *CPU) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	c.Encode(&e)
	return e.Bytes(), nil
}

func (c *CPU) UnmarshalJSON(data []byte) error {
	return c.Decode(jx.DecodeBytes(data))
}

func (m *Machine) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("version")
	e.Int(m.Version)
	e.FieldStart("cpu")
	m.CPU.Encode(e)
	e.FieldStart("memory")
	e.Base64(m.Memory)
	e.ObjEnd()
}

func (m *Machine) Decode(d *jx.Decoder) error {
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			m.Version, err = d.Int()
		case "cpu":
			err = m.CPU.Decode(d)
		case "memory":
			m.Memory, err = d.Base64()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("machine snapshot: %w", err)
	}
	if m.Version != Version {
		return fmt.Errorf("machine snapshot: unsupported version %d", m.Version)
	}
	return nil
}

func (m *Machine) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	m.Encode(&e)
	return e.Bytes(), nil
}

func (m *Machine) UnmarshalJSON(data []byte) error {
	return m.Decode(jx.DecodeBytes(data))
}
