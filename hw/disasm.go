package hw

import (
	"fmt"
	"strings"
)

type DisasmOp struct {
	Opcode string
	Oper   string
	Buf    []byte
	PC     uint16
}

// Disasm disassembles the instruction at pc. Memory is peeked, so
// disassembling has no side effect on devices.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	peek := func(addr uint16) uint8 { return c.Bus.Peek8(addr) }

	in := instrs[peek(pc)]
	op := DisasmOp{
		Opcode: mnemonicName(in.Mnemonic),
		PC:     pc,
		Buf:    make([]byte, in.Size),
	}
	for i := range op.Buf {
		op.Buf[i] = peek(pc + uint16(i))
	}

	var b8 uint8
	var b16 uint16
	if in.Size > 1 {
		b8 = op.Buf[1]
	}
	if in.Size > 2 {
		b16 = uint16(op.Buf[2])<<8 | uint16(op.Buf[1])
	}

	switch in.Mode {
	case Accumulator:
		op.Oper = "A"
	case Immediate:
		op.Oper = fmt.Sprintf("#$%02X", b8)
	case ZeroPage:
		op.Oper = fmt.Sprintf("$%02X", b8)
	case ZeroPageX:
		op.Oper = fmt.Sprintf("$%02X,X", b8)
	case ZeroPageY:
		op.Oper = fmt.Sprintf("$%02X,Y", b8)
	case Absolute:
		op.Oper = fmt.Sprintf("$%04X", b16)
	case AbsoluteX:
		op.Oper = fmt.Sprintf("$%04X,X", b16)
	case AbsoluteY:
		op.Oper = fmt.Sprintf("$%04X,Y", b16)
	case Indirect:
		op.Oper = fmt.Sprintf("($%04X)", b16)
	case IndirectX:
		op.Oper = fmt.Sprintf("($%02X,X)", b8)
	case IndirectY:
		op.Oper = fmt.Sprintf("($%02X),Y", b8)
	case ZeroPageIndirect:
		op.Oper = fmt.Sprintf("($%02X)", b8)
	case AbsoluteIndexedIndirect:
		op.Oper = fmt.Sprintf("($%04X,X)", b16)
	case Relative:
		op.Oper = fmt.Sprintf("$%04X", branchTarget(pc+2, b8))
	case ZeroPageRelative:
		op.Oper = fmt.Sprintf("$%02X,$%04X", b8, branchTarget(pc+3, op.Buf[2]))
	}
	return op
}

// mnemonicName is the assembler name of mn, NOP variants all print as NOP.
func mnemonicName(mn Mnemonic) string {
	switch mn {
	case NOP2, NOP3:
		return "NOP"
	}
	return mn.String()
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// Bytes returns the string representation of a DisasmOp, this is optimized
// version, suitable for the execution tracer.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 48
	buf := make([]byte, totalLen)

	hexEncode(buf[0:], byte(d.PC>>8))
	hexEncode(buf[2:], byte(d.PC))
	buf[4] = ' '
	buf[5] = ' '

	off := 6
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}

	for ; off < 16; off++ {
		buf[off] = ' '
	}

	off += copy(buf[off:], d.Opcode)
	buf[off] = ' '
	off++

	buf = append(buf[:off], d.Oper...)
	off += len(d.Oper)
	if len(buf) > totalLen {
		buf = append(buf, ' ')
	} else {
		buf = buf[:totalLen]
		for i := off; i < totalLen; i++ {
			buf[i] = ' '
		}
	}

	return buf
}

func (d DisasmOp) String() string {
	return strings.TrimRight(string(d.Bytes()), " ")
}
