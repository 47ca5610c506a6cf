package cpu

// Operand encodings shared by most opcodes. Index 6 of the register table
// stands for (HL) and is handled by dedicated variants.
var (
	registerTable = [8]Reg8{B, C, D, E, H, L, 0, A}
	pairTable     = [4]Reg16{BC, DE, HL, SP}
	stackTable    = [4]Reg16{BC, DE, HL, AF}
	conditions    = [4]Condition{
		{Flag: Zero, Set: false},
		{Flag: Zero, Set: true},
		{Flag: Carry, Set: false},
		{Flag: Carry, Set: true},
	}
)

const hlIndex = 6

// fetch reads the byte at PC and moves PC forward.
func (c *CPU) fetch() uint8 {
	value := c.bus.Read(c.regs.PC.Value())
	c.regs.PC.Walk()
	return value
}

// fetchWord reads a little endian 16 bit operand and returns it as (high, low).
func (c *CPU) fetchWord() (high, low uint8) {
	low = c.fetch()
	high = c.fetch()
	return high, low
}

func (c *CPU) fetchSigned() int8 {
	return int8(c.fetch())
}

// Decode turns an opcode into an Instruction, consuming its operand bytes through PC.
// 0xCB escapes into the extended set. Opcodes without an implementation decode to Unrecognized.
func (c *CPU) Decode(opcode uint8) Instruction {
	x, y, z := opcode>>6, (opcode>>3)&7, opcode&7

	switch x {
	case 0:
		return c.decodeBlock0(opcode, y, z)
	case 1:
		if opcode == 0x76 {
			// HALT, no power management
			return Unrecognized{Opcode: opcode}
		}
		switch {
		case z == hlIndex:
			return LoadIndirect{Dst: registerTable[y], Pair: HL}
		case y == hlIndex:
			return StoreIndirect{Pair: HL, Src: registerTable[z]}
		default:
			return Load{Dst: registerTable[y], Src: registerTable[z]}
		}
	case 2:
		if z == hlIndex {
			return ArithmeticHL{Op: ALUOp(y)}
		}
		return Arithmetic{Op: ALUOp(y), Src: registerTable[z]}
	default:
		return c.decodeBlock3(opcode, y)
	}
}

func (c *CPU) decodeBlock0(opcode, y, z uint8) Instruction {
	p, q := y>>1, y&1

	switch z {
	case 0:
		switch y {
		case 0:
			return Nop{}
		case 1:
			high, low := c.fetchWord()
			return StoreSP{High: high, Low: low}
		case 2:
			// STOP, no power management
			return Unrecognized{Opcode: opcode}
		case 3:
			return JumpRelative{Offset: c.fetchSigned()}
		default:
			return JumpRelativeIf{Cond: conditions[y-4], Offset: c.fetchSigned()}
		}
	case 1:
		if q == 0 {
			high, low := c.fetchWord()
			return LoadPairImmediate{Dst: pairTable[p], High: high, Low: low}
		}
		return AddHL{Pair: pairTable[p]}
	case 2:
		switch {
		case p < 2 && q == 0:
			return StoreIndirect{Pair: pairTable[p], Src: A}
		case p < 2:
			return LoadIndirect{Dst: A, Pair: pairTable[p]}
		case q == 0:
			return StoreHLStep{Delta: hlDelta(p)}
		default:
			return LoadHLStep{Delta: hlDelta(p)}
		}
	case 3:
		if q == 0 {
			return IncPair{Pair: pairTable[p]}
		}
		return DecPair{Pair: pairTable[p]}
	case 4:
		if y == hlIndex {
			return IncHL{}
		}
		return Inc{Reg: registerTable[y]}
	case 5:
		if y == hlIndex {
			return DecHL{}
		}
		return Dec{Reg: registerTable[y]}
	case 6:
		if y == hlIndex {
			return StoreImmediateHL{Value: c.fetch()}
		}
		return LoadImmediate{Dst: registerTable[y], Value: c.fetch()}
	default:
		switch y {
		case 0, 1, 2, 3:
			return RotateA{Op: ShiftOp(y)}
		case 4:
			return DecimalAdjust{}
		case 5:
			return Complement{}
		case 6:
			return SetCarryFlag{}
		default:
			return ComplementCarry{}
		}
	}
}

// hlDelta maps LDI (p=2) and LDD (p=3) to their step.
func hlDelta(p uint8) int8 {
	if p == 2 {
		return 1
	}
	return -1
}

func (c *CPU) decodeBlock3(opcode, y uint8) Instruction {
	switch opcode {
	case 0xC0, 0xC8, 0xD0, 0xD8:
		return ReturnIf{Cond: conditions[y]}
	case 0xC2, 0xCA, 0xD2, 0xDA:
		high, low := c.fetchWord()
		return JumpIf{Cond: conditions[y], High: high, Low: low}
	case 0xC4, 0xCC, 0xD4, 0xDC:
		high, low := c.fetchWord()
		return CallIf{Cond: conditions[y], High: high, Low: low}
	case 0xC1, 0xD1, 0xE1, 0xF1:
		return Pop{Pair: stackTable[y>>1]}
	case 0xC5, 0xD5, 0xE5, 0xF5:
		return Push{Pair: stackTable[y>>1]}
	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE:
		return ArithmeticImmediate{Op: ALUOp(y), Value: c.fetch()}
	case 0xC3:
		high, low := c.fetchWord()
		return Jump{High: high, Low: low}
	case 0xC9:
		return Return{}
	case 0xCB:
		return c.decodeExtended(c.fetch())
	case 0xCD:
		high, low := c.fetchWord()
		return Call{High: high, Low: low}
	case 0xD9:
		return ReturnInterrupt{}
	case 0xE0:
		return StoreHigh{Offset: c.fetch()}
	case 0xE2:
		return StoreHighC{}
	case 0xE8:
		return AddSP{Offset: c.fetchSigned()}
	case 0xE9:
		return JumpHL{}
	case 0xEA:
		high, low := c.fetchWord()
		return StoreA{High: high, Low: low}
	case 0xF0:
		return LoadHigh{Offset: c.fetch()}
	case 0xF2:
		return LoadHighC{}
	case 0xF3:
		return DisableInterrupts{}
	case 0xF8:
		return LoadHLSP{Offset: c.fetchSigned()}
	case 0xF9:
		return LoadSPHL{}
	case 0xFA:
		high, low := c.fetchWord()
		return LoadA{High: high, Low: low}
	case 0xFB:
		return EnableInterrupts{}
	}

	// RST family and the opcodes missing from the hardware.
	return Unrecognized{Opcode: opcode}
}

// decodeExtended decodes the byte following a 0xCB prefix. Every byte maps to an instruction.
func (c *CPU) decodeExtended(opcode uint8) Instruction {
	x, y, z := opcode>>6, (opcode>>3)&7, opcode&7
	hl := z == hlIndex

	switch x {
	case 0:
		if hl {
			return ShiftHL{Op: ShiftOp(y)}
		}
		return Shift{Op: ShiftOp(y), Reg: registerTable[z]}
	case 1:
		if hl {
			return TestBitHL{Bit: y}
		}
		return TestBit{Bit: y, Reg: registerTable[z]}
	case 2:
		if hl {
			return ResetBitHL{Bit: y}
		}
		return ResetBit{Bit: y, Reg: registerTable[z]}
	default:
		if hl {
			return SetBitHL{Bit: y}
		}
		return SetBit{Bit: y, Reg: registerTable[z]}
	}
}
