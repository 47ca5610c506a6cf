package cpu

import "github.com/valerio/go-gboy/gboy/bit"

func (c *CPU) alu(op ALUOp, value uint8) {
	a := c.regs.A
	f := &c.regs.F

	switch op {
	case Add, Adc:
		carry := uint8(0)
		if op == Adc {
			carry = f.Get(Carry)
		}
		sum := uint16(a) + uint16(value) + uint16(carry)
		c.regs.A = uint8(sum)
		f.Set(Zero, c.regs.A == 0)
		f.UnsetSubtract()
		f.Set(HalfCarry, bit.HalfCarryAdd(a, value, carry))
		f.Set(Carry, sum > 0xFF)
	case Sub, Sbc, Cp:
		carry := uint8(0)
		if op == Sbc {
			carry = f.Get(Carry)
		}
		diff := int(a) - int(value) - int(carry)
		result := uint8(diff)
		if op != Cp {
			c.regs.A = result
		}
		f.Set(Zero, result == 0)
		f.SetSubtract()
		f.Set(HalfCarry, bit.HalfCarrySub(a, value, carry))
		f.Set(Carry, diff < 0)
	case And:
		c.regs.A = a & value
		f.Reset()
		f.Set(Zero, c.regs.A == 0)
		f.SetHalfCarry()
	case Xor:
		c.regs.A = a ^ value
		f.Reset()
		f.Set(Zero, c.regs.A == 0)
	case Or:
		c.regs.A = a | value
		f.Reset()
		f.Set(Zero, c.regs.A == 0)
	}
}

func (c *CPU) inc(value uint8) uint8 {
	result := value + 1
	c.regs.F.Set(Zero, result == 0)
	c.regs.F.UnsetSubtract()
	c.regs.F.Set(HalfCarry, bit.HalfCarryAdd(value, 1, 0))
	return result
}

func (c *CPU) dec(value uint8) uint8 {
	result := value - 1
	c.regs.F.Set(Zero, result == 0)
	c.regs.F.SetSubtract()
	c.regs.F.Set(HalfCarry, bit.HalfCarrySub(value, 1, 0))
	return result
}

// shift applies a rotate/shift operation and sets every flag. The carry flag receives the bit shifted out.
func (c *CPU) shift(op ShiftOp, value uint8) uint8 {
	var result uint8
	var out bool

	switch op {
	case Rlc:
		result, out = value<<1 | value>>7, value&0x80 != 0
	case Rrc:
		result, out = value>>1 | value<<7, value&0x01 != 0
	case Rl:
		result, out = value<<1 | c.regs.F.Get(Carry), value&0x80 != 0
	case Rr:
		result, out = value>>1 | c.regs.F.Get(Carry)<<7, value&0x01 != 0
	case Sla:
		result, out = value<<1, value&0x80 != 0
	case Sra:
		result, out = value>>1 | value&0x80, value&0x01 != 0
	case Swap:
		result = value<<4 | value>>4
	case Srl:
		result, out = value>>1, value&0x01 != 0
	}

	c.regs.F.Reset()
	c.regs.F.Set(Zero, result == 0)
	c.regs.F.Set(Carry, out)
	return result
}

func (c *CPU) testBit(position, value uint8) {
	c.regs.F.Set(Zero, !bit.IsSet(position, value))
	c.regs.F.UnsetSubtract()
	c.regs.F.SetHalfCarry()
}

func (c *CPU) addHL(value uint16) {
	hl := c.regs.Pair(HL)
	sum := uint32(hl) + uint32(value)

	c.regs.F.UnsetSubtract()
	c.regs.F.Set(HalfCarry, (hl&0x0FFF)+(value&0x0FFF) > 0x0FFF)
	c.regs.F.Set(Carry, sum > 0xFFFF)
	c.regs.SetPair(HL, uint16(sum))
}

// spOffset computes SP+e for ADD SP,e and LD HL,SP+e. Flags come from the unsigned low byte addition.
func (c *CPU) spOffset(e int8) uint16 {
	sp := c.regs.SP
	operand := uint8(e)

	c.regs.F.Reset()
	c.regs.F.Set(HalfCarry, bit.HalfCarryAdd(uint8(sp), operand, 0))
	_, overflow := bit.CheckedAdd(uint8(sp), operand)
	c.regs.F.Set(Carry, overflow)

	return uint16(int32(sp) + int32(e))
}

// daa adjusts A to a valid BCD value after an addition or subtraction.
func (c *CPU) daa() {
	a := c.regs.A
	f := &c.regs.F
	var correction uint8
	carry := f.IsSet(Carry)

	if f.IsSet(HalfCarry) || (!f.IsSet(Subtract) && a&0x0F > 0x09) {
		correction |= 0x06
	}
	if carry || (!f.IsSet(Subtract) && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	if f.IsSet(Subtract) {
		a -= correction
	} else {
		a += correction
	}

	c.regs.A = a
	f.Set(Zero, a == 0)
	f.UnsetHalfCarry()
	f.Set(Carry, carry)
}
