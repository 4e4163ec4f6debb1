package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeIsTotal(t *testing.T) {
	for i := range 256 {
		op := uint8(i)
		in := Decode(op)
		if in.Opcode != op {
			t.Errorf("%02X: got opcode %02X", op, in.Opcode)
		}
		if in.Size < 1 || in.Size > 3 {
			t.Errorf("%02X (%s %s): invalid size %d", op, in.Mnemonic, in.Mode, in.Size)
		}
		if in.Size != in.Mode.Size() {
			t.Errorf("%02X: size %d doesn't match mode %s", op, in.Size, in.Mode)
		}
		if in.Cycles == 0 {
			t.Errorf("%02X (%s %s): zero cycles", op, in.Mnemonic, in.Mode)
		}
		if execs[in.Mnemonic] == nil {
			t.Errorf("%02X: no handler for %s", op, in.Mnemonic)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		op   uint8
		want Instr
	}{
		{0xA9, Instr{0xA9, LDA, Immediate, 2, 2}},
		{0xB6, Instr{0xB6, LDX, ZeroPageY, 2, 4}},
		{0xBE, Instr{0xBE, LDX, AbsoluteY, 3, 4}},
		{0x96, Instr{0x96, STX, ZeroPageY, 2, 4}},
		{0xB4, Instr{0xB4, LDY, ZeroPageX, 2, 4}},
		{0x91, Instr{0x91, STA, IndirectY, 2, 6}},
		{0x61, Instr{0x61, ADC, IndirectX, 2, 6}},
		{0x4C, Instr{0x4C, JMP, Absolute, 3, 3}},
		{0x6C, Instr{0x6C, JMP, Indirect, 3, 5}},
		{0x7C, Instr{0x7C, JMP, AbsoluteIndexedIndirect, 3, 6}},
		{0x20, Instr{0x20, JSR, Absolute, 3, 6}},
		{0x00, Instr{0x00, BRK, Implied, 1, 7}},
		{0x0A, Instr{0x0A, ASL, Accumulator, 1, 2}},
		{0x1E, Instr{0x1E, ASL, AbsoluteX, 3, 7}},
		{0xD0, Instr{0xD0, BNE, Relative, 2, 2}},
		{0x80, Instr{0x80, BRA, Relative, 2, 3}},

		// 65C02
		{0x12, Instr{0x12, ORA, ZeroPageIndirect, 2, 5}},
		{0x92, Instr{0x92, STA, ZeroPageIndirect, 2, 5}},
		{0xF2, Instr{0xF2, SBC, ZeroPageIndirect, 2, 5}},
		{0x1A, Instr{0x1A, INC, Accumulator, 1, 2}},
		{0x3A, Instr{0x3A, DEC, Accumulator, 1, 2}},
		{0x64, Instr{0x64, STZ, ZeroPage, 2, 3}},
		{0x74, Instr{0x74, STZ, ZeroPageX, 2, 4}},
		{0x9C, Instr{0x9C, STZ, Absolute, 3, 4}},
		{0x9E, Instr{0x9E, STZ, AbsoluteX, 3, 5}},
		{0x04, Instr{0x04, TSB, ZeroPage, 2, 5}},
		{0x0C, Instr{0x0C, TSB, Absolute, 3, 6}},
		{0x14, Instr{0x14, TRB, ZeroPage, 2, 5}},
		{0x1C, Instr{0x1C, TRB, Absolute, 3, 6}},
		{0x89, Instr{0x89, BIT, Immediate, 2, 2}},
		{0x34, Instr{0x34, BIT, ZeroPageX, 2, 4}},
		{0x3C, Instr{0x3C, BIT, AbsoluteX, 3, 4}},
		{0x5A, Instr{0x5A, PHY, Implied, 1, 3}},
		{0x7A, Instr{0x7A, PLY, Implied, 1, 4}},
		{0xDA, Instr{0xDA, PHX, Implied, 1, 3}},
		{0xFA, Instr{0xFA, PLX, Implied, 1, 4}},
		{0x0F, Instr{0x0F, BBR0, ZeroPageRelative, 3, 5}},
		{0x7F, Instr{0x7F, BBR7, ZeroPageRelative, 3, 5}},
		{0x8F, Instr{0x8F, BBS0, ZeroPageRelative, 3, 5}},
		{0xFF, Instr{0xFF, BBS7, ZeroPageRelative, 3, 5}},

		// undefined
		{0x02, Instr{0x02, NOP2, Immediate, 2, 2}},
		{0x44, Instr{0x44, NOP2, ZeroPage, 2, 3}},
		{0xF4, Instr{0xF4, NOP2, ZeroPageX, 2, 4}},
		{0x5C, Instr{0x5C, NOP3, AbsoluteX, 3, 4}},
		{0x03, Instr{0x03, NOP, Implied, 1, 2}},
		{0xCB, Instr{0xCB, NOP, Implied, 1, 2}},
		{0xDB, Instr{0xDB, NOP, Implied, 1, 2}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Decode(tt.op)); diff != "" {
			t.Errorf("Decode(%02X) mismatch (-want +got):\n%s", tt.op, diff)
		}
	}
}

func TestModeSize(t *testing.T) {
	tests := []struct {
		mode Mode
		want uint8
	}{
		{Implied, 1},
		{Accumulator, 1},
		{Immediate, 2},
		{ZeroPage, 2},
		{ZeroPageX, 2},
		{ZeroPageY, 2},
		{IndirectX, 2},
		{IndirectY, 2},
		{ZeroPageIndirect, 2},
		{Relative, 2},
		{Absolute, 3},
		{AbsoluteX, 3},
		{AbsoluteY, 3},
		{Indirect, 3},
		{AbsoluteIndexedIndirect, 3},
		{ZeroPageRelative, 3},
	}
	for _, tt := range tests {
		if got := tt.mode.Size(); got != tt.want {
			t.Errorf("%s.Size() = %d, want %d", tt.mode, got, tt.want)
		}
	}
}
