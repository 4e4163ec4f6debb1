package hw

// P is the processor status register.
type P uint8

const (
	Carry = 1 << iota
	Zero
	Interrupt
	Decimal
	Break
	Reserved
	Overflow
	Negative
)

// always set by the flag update helper.
const reservedBits = Break | Reserved

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}

func (p P) C() bool { return p&Carry != 0 }
func (p P) Z() bool { return p&Zero != 0 }
func (p P) I() bool { return p&Interrupt != 0 }
func (p P) D() bool { return p&Decimal != 0 }
func (p P) B() bool { return p&Break != 0 }
func (p P) V() bool { return p&Overflow != 0 }
func (p P) N() bool { return p&Negative != 0 }

func (p P) SetC(b bool) P { return p.with(Carry, b) }
func (p P) SetZ(b bool) P { return p.with(Zero, b) }
func (p P) SetI(b bool) P { return p.with(Interrupt, b) }
func (p P) SetD(b bool) P { return p.with(Decimal, b) }
func (p P) SetV(b bool) P { return p.with(Overflow, b) }
func (p P) SetN(b bool) P { return p.with(Negative, b) }

func (p P) with(flag P, b bool) P {
	if b {
		return p | flag
	}
	return p &^ flag
}

// checkNZ sets Z if v is 0 and N to the bit 7 of v. The 2 reserved bits are
// always set. Other flags are left untouched.
func (p *P) checkNZ(v uint8) {
	*p = p.SetN(v&0x80 != 0).SetZ(v == 0) | reservedBits
}

func (p *P) checkCV(x, y uint8, sum uint16) {
	// forward carry or unsigned overflow.
	*p = p.SetC(sum > 0xFF)

	// signed overflow, can only happen if the sign of the sum differs
	// from that of both operands.
	v := (uint16(x) ^ sum) & (uint16(y) ^ sum) & 0x80
	*p = p.SetV(v != 0)
}

// ibit returns the value of the bit i, as 0 or 1.
func (p P) ibit(i int) uint8 {
	return (uint8(p) & (1 << i)) >> i
}
