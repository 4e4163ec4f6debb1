package hw

// execs maps each mnemonic to its handler. Handlers run with PC pointing at
// the opcode; Exec advances it afterwards unless the handler jumped.
var execs = [numMnemonics]func(*CPU, Instr){
	ADC:  ADCop,
	AND:  ANDop,
	ASL:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).asl8) },
	BBR0: bbr(0),
	BBR1: bbr(1),
	BBR2: bbr(2),
	BBR3: bbr(3),
	BBR4: bbr(4),
	BBR5: bbr(5),
	BBR6: bbr(6),
	BBR7: bbr(7),
	BBS0: bbs(0),
	BBS1: bbs(1),
	BBS2: bbs(2),
	BBS3: bbs(3),
	BBS4: bbs(4),
	BBS5: bbs(5),
	BBS6: bbs(6),
	BBS7: bbs(7),
	BCC:  func(c *CPU, _ Instr) { c.branch(!c.P.C()) },
	BCS:  func(c *CPU, _ Instr) { c.branch(c.P.C()) },
	BEQ:  func(c *CPU, _ Instr) { c.branch(c.P.Z()) },
	BIT:  BITop,
	BMI:  func(c *CPU, _ Instr) { c.branch(c.P.N()) },
	BNE:  func(c *CPU, _ Instr) { c.branch(!c.P.Z()) },
	BPL:  func(c *CPU, _ Instr) { c.branch(!c.P.N()) },
	BRA:  func(c *CPU, _ Instr) { c.branch(true) },
	BRK:  BRKop,
	BVC:  func(c *CPU, _ Instr) { c.branch(!c.P.V()) },
	BVS:  func(c *CPU, _ Instr) { c.branch(c.P.V()) },
	CLC:  func(c *CPU, _ Instr) { c.P = c.P.SetC(false) },
	CLD:  func(c *CPU, _ Instr) { c.P = c.P.SetD(false) },
	CLI:  func(c *CPU, _ Instr) { c.P = c.P.SetI(false) },
	CLV:  func(c *CPU, _ Instr) { c.P = c.P.SetV(false) },
	CMP:  func(c *CPU, in Instr) { c.compare(c.A, c.operand(in.Mode)) },
	CPX:  func(c *CPU, in Instr) { c.compare(c.X, c.operand(in.Mode)) },
	CPY:  func(c *CPU, in Instr) { c.compare(c.Y, c.operand(in.Mode)) },
	DEC:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).dec8) },
	DEX:  func(c *CPU, _ Instr) { c.X--; c.P.checkNZ(c.X) },
	DEY:  func(c *CPU, _ Instr) { c.Y--; c.P.checkNZ(c.Y) },
	EOR:  EORop,
	INC:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).inc8) },
	INX:  func(c *CPU, _ Instr) { c.X++; c.P.checkNZ(c.X) },
	INY:  func(c *CPU, _ Instr) { c.Y++; c.P.checkNZ(c.Y) },
	JMP:  JMPop,
	JSR:  JSRop,
	LDA:  func(c *CPU, in Instr) { c.A = c.operand(in.Mode); c.P.checkNZ(c.A) },
	LDX:  func(c *CPU, in Instr) { c.X = c.operand(in.Mode); c.P.checkNZ(c.X) },
	LDY:  func(c *CPU, in Instr) { c.Y = c.operand(in.Mode); c.P.checkNZ(c.Y) },
	LSR:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).lsr8) },
	NOP:  func(*CPU, Instr) {},
	NOP2: func(*CPU, Instr) {},
	NOP3: func(*CPU, Instr) {},
	ORA:  ORAop,
	PHA:  func(c *CPU, _ Instr) { c.push8(c.A) },
	PHP:  func(c *CPU, _ Instr) { c.push8(uint8(c.P | reservedBits)) },
	PHX:  func(c *CPU, _ Instr) { c.push8(c.X) },
	PHY:  func(c *CPU, _ Instr) { c.push8(c.Y) },
	PLA:  func(c *CPU, _ Instr) { c.A = c.pull8(); c.P.checkNZ(c.A) },
	PLP:  func(c *CPU, _ Instr) { c.P = P(c.pull8()) },
	PLX:  func(c *CPU, _ Instr) { c.X = c.pull8(); c.P.checkNZ(c.X) },
	PLY:  func(c *CPU, _ Instr) { c.Y = c.pull8(); c.P.checkNZ(c.Y) },
	ROL:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).rol8) },
	ROR:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).ror8) },
	RTI:  RTIop,
	RTS:  RTSop,
	SBC:  SBCop,
	SEC:  func(c *CPU, _ Instr) { c.P = c.P.SetC(true) },
	SED:  func(c *CPU, _ Instr) { c.P = c.P.SetD(true) },
	SEI:  func(c *CPU, _ Instr) { c.P = c.P.SetI(true) },
	STA:  func(c *CPU, in Instr) { c.store(in.Mode, c.A) },
	STX:  func(c *CPU, in Instr) { c.store(in.Mode, c.X) },
	STY:  func(c *CPU, in Instr) { c.store(in.Mode, c.Y) },
	STZ:  func(c *CPU, in Instr) { c.store(in.Mode, 0) },
	TAX:  func(c *CPU, _ Instr) { c.X = c.A; c.P.checkNZ(c.X) },
	TAY:  func(c *CPU, _ Instr) { c.Y = c.A; c.P.checkNZ(c.Y) },
	TRB:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).trb8) },
	TSB:  func(c *CPU, in Instr) { c.rmw(in.Mode, (*CPU).tsb8) },
	TSX:  func(c *CPU, _ Instr) { c.X = c.SP; c.P.checkNZ(c.X) },
	TXA:  func(c *CPU, _ Instr) { c.A = c.X; c.P.checkNZ(c.A) },
	TXS:  func(c *CPU, _ Instr) { c.SP = c.X },
	TYA:  func(c *CPU, _ Instr) { c.A = c.Y; c.P.checkNZ(c.A) },
}

// operand returns the value the instruction operates on: A in accumulator
// mode, the byte at the effective address otherwise.
func (c *CPU) operand(mode Mode) uint8 {
	if mode == Accumulator {
		return c.A
	}
	addr, _ := c.EffectiveAddress(mode)
	return c.Read8(addr)
}

func (c *CPU) store(mode Mode, val uint8) {
	addr, _ := c.EffectiveAddress(mode)
	c.Write8(addr, val)
}

// rmw applies f to the operand and writes the result back, either to A or
// to memory.
func (c *CPU) rmw(mode Mode, f func(*CPU, uint8) uint8) {
	if mode == Accumulator {
		c.A = f(c, c.A)
		return
	}
	addr, _ := c.EffectiveAddress(mode)
	c.Write8(addr, f(c, c.Read8(addr)))
}

// branch jumps to the relative target if cond holds.
func (c *CPU) branch(cond bool) {
	if !cond {
		return
	}
	addr, _ := c.EffectiveAddress(Relative)
	c.jump(addr)
}

// bbr returns the handler of BBRn: branch if bit n of the zero page operand
// is clear.
func bbr(n uint) func(*CPU, Instr) {
	return func(c *CPU, _ Instr) { c.bitBranch(n, false) }
}

// bbs returns the handler of BBSn: branch if bit n of the zero page operand
// is set.
func bbs(n uint) func(*CPU, Instr) {
	return func(c *CPU, _ Instr) { c.bitBranch(n, true) }
}

func (c *CPU) bitBranch(n uint, set bool) {
	zp := c.Read8(c.PC + 1)
	val := c.Read8(uint16(zp))
	off := c.Read8(c.PC + 2)
	if (val&(1<<n) != 0) == set {
		c.jump(branchTarget(c.PC+3, off))
	}
}

func ADCop(c *CPU, in Instr) { c.add(c.operand(in.Mode)) }
func SBCop(c *CPU, in Instr) { c.sub(c.operand(in.Mode)) }

func ANDop(c *CPU, in Instr) {
	c.A &= c.operand(in.Mode)
	c.P.checkNZ(c.A)
}

func EORop(c *CPU, in Instr) {
	c.A ^= c.operand(in.Mode)
	c.P.checkNZ(c.A)
}

func ORAop(c *CPU, in Instr) {
	c.A |= c.operand(in.Mode)
	c.P.checkNZ(c.A)
}

// BITop sets Z from A & M, N and V from bits 7 and 6 of M. This holds for
// every addressing mode, immediate included.
func BITop(c *CPU, in Instr) {
	val := c.operand(in.Mode)
	c.P = c.P.SetZ(c.A&val == 0).SetN(val&0x80 != 0).SetV(val&0x40 != 0)
}

func JMPop(c *CPU, in Instr) {
	addr, _ := c.EffectiveAddress(in.Mode)
	c.jump(addr)
}

// JSRop pushes the address of the last byte of the instruction.
func JSRop(c *CPU, in Instr) {
	addr, _ := c.EffectiveAddress(in.Mode)
	c.push16(c.PC + 2)
	c.jump(addr)
}

func RTSop(c *CPU, _ Instr) {
	c.jump(c.pull16() + 1)
}

func BRKop(c *CPU, _ Instr) {
	c.push16(c.PC + 2)
	c.push8(uint8(c.P | reservedBits))
	c.P = c.P.SetI(true)
	c.jump(c.Read16(IRQVector))
}

func RTIop(c *CPU, _ Instr) {
	c.P = P(c.pull8())
	c.jump(c.pull16())
}
