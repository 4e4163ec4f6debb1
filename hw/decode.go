package hw

//go:generate go tool stringer -type=Mode,Mnemonic -output=decode_string.go

// Mode is an addressing mode.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	ZeroPageIndirect
	Relative
	ZeroPageRelative
	AbsoluteIndexedIndirect
)

// Size returns the length in bytes of an instruction using this mode,
// opcode included.
func (m Mode) Size() uint8 {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect, AbsoluteIndexedIndirect, ZeroPageRelative:
		return 3
	}
	return 2
}

type Mnemonic uint8

const (
	ADC Mnemonic = iota
	AND
	ASL
	BBR0
	BBR1
	BBR2
	BBR3
	BBR4
	BBR5
	BBR6
	BBR7
	BBS0
	BBS1
	BBS2
	BBS3
	BBS4
	BBS5
	BBS6
	BBS7
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRA
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	NOP2
	NOP3
	ORA
	PHA
	PHP
	PHX
	PHY
	PLA
	PLP
	PLX
	PLY
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	STZ
	TAX
	TAY
	TRB
	TSB
	TSX
	TXA
	TXS
	TYA
)

const numMnemonics = int(TYA) + 1

// Instr is a decoded opcode.
type Instr struct {
	Opcode   uint8
	Mnemonic Mnemonic
	Mode     Mode
	Size     uint8 // in bytes, opcode included
	Cycles   uint8
}

var instrs [256]Instr

func init() {
	for i := range instrs {
		op := uint8(i)
		mn, mode := MnemonicOf(op), ModeOf(op)
		instrs[i] = Instr{
			Opcode:   op,
			Mnemonic: mn,
			Mode:     mode,
			Size:     mode.Size(),
			Cycles:   cycles(mn, mode),
		}
	}
}

// Decode returns the instruction encoded by op. All 256 opcodes decode to
// something, undefined ones decode to a NOP variant.
func Decode(op uint8) Instr {
	return instrs[op]
}

// cc1 group, also used by the 65C02 zero page indirect opcodes.
var cc1Mnemonics = [8]Mnemonic{ORA, AND, EOR, ADC, STA, LDA, CMP, SBC}

var cc2Mnemonics = [8]Mnemonic{ASL, ROL, LSR, ROR, STX, LDX, DEC, INC}

// MnemonicOf returns the mnemonic of op.
func MnemonicOf(op uint8) Mnemonic {
	switch op {
	case 0x02, 0x22, 0x42, 0x62, 0x82, 0xC2, 0xE2, 0x44, 0x54, 0xD4, 0xF4:
		return NOP2
	case 0x5C, 0xDC, 0xFC:
		return NOP3

	case 0x10:
		return BPL
	case 0x30:
		return BMI
	case 0x50:
		return BVC
	case 0x70:
		return BVS
	case 0x90:
		return BCC
	case 0xB0:
		return BCS
	case 0xD0:
		return BNE
	case 0xF0:
		return BEQ
	case 0x80:
		return BRA

	case 0x00:
		return BRK
	case 0x20:
		return JSR
	case 0x40:
		return RTI
	case 0x60:
		return RTS
	case 0x7C:
		return JMP

	case 0x08:
		return PHP
	case 0x28:
		return PLP
	case 0x48:
		return PHA
	case 0x68:
		return PLA
	case 0x5A:
		return PHY
	case 0x7A:
		return PLY
	case 0xDA:
		return PHX
	case 0xFA:
		return PLX

	case 0x88:
		return DEY
	case 0xA8:
		return TAY
	case 0xC8:
		return INY
	case 0xE8:
		return INX
	case 0x18:
		return CLC
	case 0x38:
		return SEC
	case 0x58:
		return CLI
	case 0x78:
		return SEI
	case 0x98:
		return TYA
	case 0xB8:
		return CLV
	case 0xD8:
		return CLD
	case 0xF8:
		return SED
	case 0x8A:
		return TXA
	case 0x9A:
		return TXS
	case 0xAA:
		return TAX
	case 0xBA:
		return TSX
	case 0xCA:
		return DEX
	case 0xEA:
		return NOP

	case 0x64, 0x74, 0x9C, 0x9E:
		return STZ
	case 0x89:
		return BIT
	case 0x04, 0x0C:
		return TSB
	case 0x14, 0x1C:
		return TRB
	case 0x1A:
		return INC
	case 0x3A:
		return DEC
	}

	cc := op & 3
	bbb := (op >> 2) & 7
	aaa := (op >> 5) & 7

	switch cc {
	case 0:
		switch aaa {
		case 0b001:
			return BIT
		case 0b010, 0b011:
			return JMP
		case 0b100:
			return STY
		case 0b101:
			return LDY
		case 0b110:
			return CPY
		case 0b111:
			return CPX
		}
	case 1:
		return cc1Mnemonics[aaa]
	case 2:
		if bbb == 0b100 {
			return cc1Mnemonics[aaa]
		}
		return cc2Mnemonics[aaa]
	case 3:
		if bbb == 0b011 {
			if op < 0x80 {
				return BBR0 + Mnemonic(op>>4)
			}
			return BBS0 + Mnemonic(op>>4) - 8
		}
	}
	return NOP
}

// ModeOf returns the addressing mode of op.
func ModeOf(op uint8) Mode {
	switch op {
	case 0x6C:
		return Indirect
	case 0x20, 0x4C, 0x9C, 0x0C, 0x1C:
		return Absolute
	case 0x7C:
		return AbsoluteIndexedIndirect
	case 0x89:
		return Immediate
	case 0x04, 0x14, 0x64:
		return ZeroPage
	case 0x74:
		return ZeroPageX
	case 0x9E:
		return AbsoluteX
	case 0x1A, 0x3A:
		return Accumulator
	}

	mn := MnemonicOf(op)
	switch {
	case isBranch(mn):
		return Relative
	case mn >= BBR0 && mn <= BBS7:
		return ZeroPageRelative
	case isImplied(mn):
		return Implied
	}

	cc := op & 3
	bbb := (op >> 2) & 7

	switch cc {
	case 0:
		switch bbb {
		case 0b000:
			return Immediate
		case 0b001:
			return ZeroPage
		case 0b011:
			return Absolute
		case 0b101:
			return ZeroPageX
		case 0b111:
			return AbsoluteX
		}
	case 1:
		return [8]Mode{IndirectX, ZeroPage, Immediate, Absolute, IndirectY, ZeroPageX, AbsoluteY, AbsoluteX}[bbb]
	case 2:
		switch bbb {
		case 0b000:
			return Immediate
		case 0b001:
			return ZeroPage
		case 0b010:
			return Accumulator
		case 0b011:
			return Absolute
		case 0b100:
			return ZeroPageIndirect
		case 0b101:
			if mn == STX || mn == LDX {
				return ZeroPageY
			}
			return ZeroPageX
		case 0b111:
			if mn == LDX {
				return AbsoluteY
			}
			return AbsoluteX
		}
	}
	return Implied
}

func isBranch(mn Mnemonic) bool {
	switch mn {
	case BCC, BCS, BEQ, BNE, BMI, BPL, BVC, BVS, BRA:
		return true
	}
	return false
}

func isImplied(mn Mnemonic) bool {
	switch mn {
	case BRK, RTI, RTS, PHP, PLP, PHA, PLA, PHX, PLX, PHY, PLY,
		DEY, TAY, INY, INX, DEX, CLC, SEC, CLI, SEI, CLV, CLD, SED,
		TYA, TXA, TXS, TAX, TSX, NOP:
		return true
	}
	return false
}

// cycles returns the base cycle count of an instruction. Page crossing
// penalties are not modeled.
func cycles(mn Mnemonic, mode Mode) uint8 {
	switch mn {
	case BRK, RTI:
		return 7
	case JSR, RTS:
		return 6
	case PHA, PHP, PHX, PHY:
		return 3
	case PLA, PLP, PLX, PLY:
		return 4
	case BRA:
		return 3
	case JMP:
		switch mode {
		case Indirect:
			return 5
		case AbsoluteIndexedIndirect:
			return 6
		}
		return 3
	}
	if mn >= BBR0 && mn <= BBS7 {
		return 5
	}

	switch mn {
	case STA, STX, STY, STZ:
		return [...]uint8{
			ZeroPage:         3,
			ZeroPageX:        4,
			ZeroPageY:        4,
			Absolute:         4,
			AbsoluteX:        5,
			AbsoluteY:        5,
			IndirectX:        6,
			IndirectY:        6,
			ZeroPageIndirect: 5,
		}[mode]
	case ASL, LSR, ROL, ROR, INC, DEC, TSB, TRB:
		return [...]uint8{
			Accumulator: 2,
			ZeroPage:    5,
			ZeroPageX:   6,
			Absolute:    6,
			AbsoluteX:   7,
		}[mode]
	}

	return [...]uint8{
		Implied:          2,
		Accumulator:      2,
		Immediate:        2,
		ZeroPage:         3,
		ZeroPageX:        4,
		ZeroPageY:        4,
		Absolute:         4,
		AbsoluteX:        4,
		AbsoluteY:        4,
		IndirectX:        6,
		IndirectY:        5,
		ZeroPageIndirect: 5,
		Relative:         2,
	}[mode]
}
