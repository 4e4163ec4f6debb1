package hw

// add adds val and the carry to A, honouring decimal mode.
func (c *CPU) add(val uint8) {
	if c.P.D() {
		c.A = c.addDecimal(c.A, val)
		return
	}
	carry := c.P.ibit(0)
	sum := uint16(c.A) + uint16(val) + uint16(carry)
	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

// sub subtracts val and the borrow (inverted carry) from A, honouring decimal
// mode.
func (c *CPU) sub(val uint8) {
	if c.P.D() {
		c.A = c.subDecimal(c.A, val)
		return
	}
	carry := c.P.ibit(0)
	nval := ^val
	sum := uint16(c.A) + uint16(nval) + uint16(carry)
	c.P.checkCV(c.A, nval, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

// addDecimal performs a BCD addition. V is not computed from the operands,
// it keeps its previous value and may only be cleared here.
func (c *CPU) addDecimal(a, v uint8) uint8 {
	ln := uint16(a&0x0F) + uint16(v&0x0F) + uint16(c.P.ibit(0))
	if ln > 9 {
		ln = 0x10 | ((ln + 6) & 0x0F)
	}
	s := uint16(a&0xF0) + uint16(v&0xF0) + ln

	if s >= 0xA0 {
		c.P = c.P.SetC(true)
		if c.P.V() && s >= 0x180 {
			c.P = c.P.SetV(false)
		}
		s += 0x60
	} else {
		c.P = c.P.SetC(false)
		if c.P.V() && s < 0x80 {
			c.P = c.P.SetV(false)
		}
	}

	res := uint8(s)
	c.P.checkNZ(res)
	return res
}

// subDecimal performs a BCD subtraction, with the same V rule as addDecimal.
func (c *CPU) subDecimal(a, v uint8) uint8 {
	tmp := 0x0F + uint16(a&0x0F) - uint16(v&0x0F) + uint16(c.P.ibit(0))

	var w uint16
	if tmp < 0x10 {
		tmp -= 6
	} else {
		w = 0x10
		tmp -= 0x10
	}
	w += 0xF0 + uint16(a&0xF0) - uint16(v&0xF0)

	if w < 0x100 {
		c.P = c.P.SetC(false)
		if c.P.V() && w < 0x80 {
			c.P = c.P.SetV(false)
		}
		w -= 0x60
	} else {
		c.P = c.P.SetC(true)
		if c.P.V() && w >= 0x180 {
			c.P = c.P.SetV(false)
		}
	}
	w += tmp

	res := uint8(w)
	c.P.checkNZ(res)
	return res
}

// compare sets N, Z and C from the unsigned comparison of reg and val.
// Exactly one of the three outcomes applies.
func (c *CPU) compare(reg, val uint8) {
	switch {
	case reg == val:
		c.P = c.P.SetZ(true).SetC(true).SetN(false)
	case reg > val:
		c.P = c.P.SetZ(false).SetC(true).SetN(false)
	default:
		c.P = c.P.SetZ(false).SetC(false).SetN(true)
	}
}

/* read-modify-write primitives, as method expressions in ops.go */

func (c *CPU) asl8(val uint8) uint8 {
	c.P = c.P.SetC(val&0x80 != 0)
	val <<= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) lsr8(val uint8) uint8 {
	c.P = c.P.SetC(val&0x01 != 0)
	val >>= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) rol8(val uint8) uint8 {
	carry := c.P.ibit(0)
	c.P = c.P.SetC(val&0x80 != 0)
	val = val<<1 | carry
	c.P.checkNZ(val)
	return val
}

func (c *CPU) ror8(val uint8) uint8 {
	carry := c.P.ibit(0)
	c.P = c.P.SetC(val&0x01 != 0)
	val = val>>1 | carry<<7
	c.P.checkNZ(val)
	return val
}

func (c *CPU) inc8(val uint8) uint8 {
	val++
	c.P.checkNZ(val)
	return val
}

func (c *CPU) dec8(val uint8) uint8 {
	val--
	c.P.checkNZ(val)
	return val
}

// tsb sets the bits of A in val. Z reflects A & val before the update.
func (c *CPU) tsb8(val uint8) uint8 {
	c.P = c.P.SetZ(val&c.A == 0)
	return val | c.A
}

// trb clears the bits of A in val. Z reflects A & val before the update.
func (c *CPU) trb8(val uint8) uint8 {
	c.P = c.P.SetZ(val&c.A == 0)
	return val &^ c.A
}
