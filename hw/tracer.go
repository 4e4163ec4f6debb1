package hw

import (
	"io"
	"strconv"
)

// cpuState stores the CPU state for the execution trace.
type cpuState struct {
	A, X, Y uint8
	P       P
	SP      uint8
	PC      uint16

	Clock uint64
}

type disasmer interface {
	Disasm(pc uint16) DisasmOp
}

type tracer struct {
	d disasmer
	w io.Writer
}

// write the execution trace for the instruction about to be executed.
func (t *tracer) write(state cpuState) {
	buf := appendTrace(nil, t.d.Disasm(state.PC), state)
	buf = append(buf, '\n')
	t.w.Write(buf)
}

// appendTrace appends to buf the disassembly of dis followed by the
// registers.
func appendTrace(buf []byte, dis DisasmOp, state cpuState) []byte {
	const regsCol = 49

	buf = append(buf, dis.Bytes()...)
	for len(buf) < regsCol {
		buf = append(buf, ' ')
	}

	reg := func(name byte, v uint8) {
		var hex [2]byte
		hexEncode(hex[:], v)
		buf = append(buf, name, ':', hex[0], hex[1], ' ')
	}
	reg('A', state.A)
	reg('X', state.X)
	reg('Y', state.Y)
	reg('P', uint8(state.P))
	reg('S', state.SP)

	buf = append(buf, "CYC:"...)
	return strconv.AppendUint(buf, state.Clock, 10)
}

// TraceLine returns the trace line of the instruction at PC, that is its
// disassembly and the current register values.
func (c *CPU) TraceLine() string {
	return string(appendTrace(nil, c.Disasm(c.PC), c.state()))
}

func (c *CPU) state() cpuState {
	return cpuState{
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		P:     c.P,
		SP:    c.SP,
		PC:    c.PC,
		Clock: c.Clock,
	}
}
