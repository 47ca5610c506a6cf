package cpu

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-gboy/gboy/addr"
	"github.com/valerio/go-gboy/gboy/bit"
)

// interrupt enable masks written by DI and EI
const (
	interruptsDisabled uint8 = 0x00
	interruptsEnabled  uint8 = 0x1F
)

// Execute applies the semantics of a decoded instruction to the registers and memory.
// Unrecognized instructions do not touch the state, they only request the emulation to stop.
func (c *CPU) Execute(in Instruction) {
	c.control.branchTaken = false
	in.execute(c)
}

func (c *CPU) jump(address uint16) {
	c.regs.PC.Jump(address)
}

func (c *CPU) push(value uint8) {
	c.bus.Write(c.regs.SP, value)
	c.regs.SP--
}

func (c *CPU) pop() uint8 {
	c.regs.SP++
	return c.bus.Read(c.regs.SP)
}

// pushWord pushes the high byte first, so that popWord reads the low byte first.
func (c *CPU) pushWord(value uint16) {
	high, low := bit.Split(value)
	c.push(high)
	c.push(low)
}

func (c *CPU) popWord() uint16 {
	low := c.pop()
	high := c.pop()
	return bit.Combine(high, low)
}

func (c *CPU) hlStep(delta int8) uint16 {
	address := c.regs.Pair(HL)
	if delta < 0 {
		c.regs.DecPair(HL)
	} else {
		c.regs.IncPair(HL)
	}
	return address
}

func (c *CPU) branch(cond Condition, target uint16) {
	if !cond.holds(c.regs.F) {
		return
	}
	c.control.branchTaken = true
	c.jump(target)
}

func (c *CPU) relative(o int8) uint16 {
	return uint16(int32(c.regs.PC.Value()) + int32(o))
}

func (c *CPU) unrecognized(in Instruction) {
	slog.Warn("Unrecognized instruction",
		"instruction", in.String(),
		"pc", fmt.Sprintf("0x%04X", c.control.opcodeAddress))
	c.control.quit = true
}

func (Nop) execute(*CPU) {}

func (i LoadPairImmediate) execute(c *CPU) {
	c.regs.SetPair(i.Dst, bit.Combine(i.High, i.Low))
}

func (i StoreIndirect) execute(c *CPU) {
	c.bus.Write(c.regs.Pair(i.Pair), c.regs.Get(i.Src))
}

func (i LoadIndirect) execute(c *CPU) {
	c.regs.Set(i.Dst, c.bus.Read(c.regs.Pair(i.Pair)))
}

func (i StoreHLStep) execute(c *CPU) {
	c.bus.Write(c.hlStep(i.Delta), c.regs.A)
}

func (i LoadHLStep) execute(c *CPU) {
	c.regs.A = c.bus.Read(c.hlStep(i.Delta))
}

func (i IncPair) execute(c *CPU) {
	c.regs.IncPair(i.Pair)
}

func (i DecPair) execute(c *CPU) {
	c.regs.DecPair(i.Pair)
}

func (i Inc) execute(c *CPU) {
	c.regs.Set(i.Reg, c.inc(c.regs.Get(i.Reg)))
}

func (i Dec) execute(c *CPU) {
	c.regs.Set(i.Reg, c.dec(c.regs.Get(i.Reg)))
}

func (IncHL) execute(c *CPU) {
	address := c.regs.Pair(HL)
	c.bus.Write(address, c.inc(c.bus.Read(address)))
}

func (DecHL) execute(c *CPU) {
	address := c.regs.Pair(HL)
	c.bus.Write(address, c.dec(c.bus.Read(address)))
}

func (i LoadImmediate) execute(c *CPU) {
	c.regs.Set(i.Dst, i.Value)
}

func (i StoreImmediateHL) execute(c *CPU) {
	c.bus.Write(c.regs.Pair(HL), i.Value)
}

func (i RotateA) execute(c *CPU) {
	c.regs.A = c.shift(i.Op, c.regs.A)
	c.regs.F.UnsetZero()
}

func (i StoreSP) execute(c *CPU) {
	address := bit.Combine(i.High, i.Low)
	high, low := bit.Split(c.regs.SP)
	c.bus.Write(address, low)
	c.bus.Write(address+1, high)
}

func (i AddHL) execute(c *CPU) {
	c.addHL(c.regs.Pair(i.Pair))
}

func (i JumpRelative) execute(c *CPU) {
	c.jump(c.relative(i.Offset))
}

func (i JumpRelativeIf) execute(c *CPU) {
	c.branch(i.Cond, c.relative(i.Offset))
}

func (DecimalAdjust) execute(c *CPU) {
	c.daa()
}

func (Complement) execute(c *CPU) {
	c.regs.A = ^c.regs.A
	c.regs.F.SetSubtract()
	c.regs.F.SetHalfCarry()
}

func (SetCarryFlag) execute(c *CPU) {
	c.regs.F.UnsetSubtract()
	c.regs.F.UnsetHalfCarry()
	c.regs.F.SetCarry()
}

func (ComplementCarry) execute(c *CPU) {
	c.regs.F.UnsetSubtract()
	c.regs.F.UnsetHalfCarry()
	c.regs.F.Set(Carry, !c.regs.F.IsSet(Carry))
}

func (i Load) execute(c *CPU) {
	c.regs.Set(i.Dst, c.regs.Get(i.Src))
}

func (i Arithmetic) execute(c *CPU) {
	c.alu(i.Op, c.regs.Get(i.Src))
}

func (i ArithmeticHL) execute(c *CPU) {
	c.alu(i.Op, c.bus.Read(c.regs.Pair(HL)))
}

func (i ArithmeticImmediate) execute(c *CPU) {
	c.alu(i.Op, i.Value)
}

func (Return) execute(c *CPU) {
	c.jump(c.popWord())
}

func (i ReturnIf) execute(c *CPU) {
	if !i.Cond.holds(c.regs.F) {
		return
	}
	c.control.branchTaken = true
	c.jump(c.popWord())
}

func (ReturnInterrupt) execute(c *CPU) {
	c.jump(c.popWord())
	c.bus.Write(addr.IE, interruptsEnabled)
}

func (i Pop) execute(c *CPU) {
	c.regs.SetPair(i.Pair, c.popWord())
}

func (i Push) execute(c *CPU) {
	c.pushWord(c.regs.Pair(i.Pair))
}

func (i Jump) execute(c *CPU) {
	c.jump(bit.Combine(i.High, i.Low))
}

func (i JumpIf) execute(c *CPU) {
	c.branch(i.Cond, bit.Combine(i.High, i.Low))
}

func (JumpHL) execute(c *CPU) {
	c.jump(c.regs.Pair(HL))
}

func (i Call) execute(c *CPU) {
	c.pushWord(c.regs.PC.Value())
	c.jump(bit.Combine(i.High, i.Low))
}

func (i CallIf) execute(c *CPU) {
	if !i.Cond.holds(c.regs.F) {
		return
	}
	c.control.branchTaken = true
	c.pushWord(c.regs.PC.Value())
	c.jump(bit.Combine(i.High, i.Low))
}

func (i StoreHigh) execute(c *CPU) {
	c.bus.Write(addr.IO+uint16(i.Offset), c.regs.A)
}

func (i LoadHigh) execute(c *CPU) {
	c.regs.A = c.bus.Read(addr.IO + uint16(i.Offset))
}

func (StoreHighC) execute(c *CPU) {
	c.bus.Write(addr.IO+uint16(c.regs.C), c.regs.A)
}

func (LoadHighC) execute(c *CPU) {
	c.regs.A = c.bus.Read(addr.IO + uint16(c.regs.C))
}

func (i StoreA) execute(c *CPU) {
	c.bus.Write(bit.Combine(i.High, i.Low), c.regs.A)
}

func (i LoadA) execute(c *CPU) {
	c.regs.A = c.bus.Read(bit.Combine(i.High, i.Low))
}

func (i AddSP) execute(c *CPU) {
	c.regs.SP = c.spOffset(i.Offset)
}

func (i LoadHLSP) execute(c *CPU) {
	c.regs.SetPair(HL, c.spOffset(i.Offset))
}

func (LoadSPHL) execute(c *CPU) {
	c.regs.SP = c.regs.Pair(HL)
}

func (DisableInterrupts) execute(c *CPU) {
	c.bus.Write(addr.IE, interruptsDisabled)
}

func (EnableInterrupts) execute(c *CPU) {
	c.bus.Write(addr.IE, interruptsEnabled)
}

func (i Unrecognized) execute(c *CPU) {
	c.unrecognized(i)
}

func (i Shift) execute(c *CPU) {
	c.regs.Set(i.Reg, c.shift(i.Op, c.regs.Get(i.Reg)))
}

func (i ShiftHL) execute(c *CPU) {
	address := c.regs.Pair(HL)
	c.bus.Write(address, c.shift(i.Op, c.bus.Read(address)))
}

func (i TestBit) execute(c *CPU) {
	c.testBit(i.Bit, c.regs.Get(i.Reg))
}

func (i TestBitHL) execute(c *CPU) {
	c.testBit(i.Bit, c.bus.Read(c.regs.Pair(HL)))
}

func (i ResetBit) execute(c *CPU) {
	c.regs.Set(i.Reg, bit.Clear(i.Bit, c.regs.Get(i.Reg)))
}

func (i ResetBitHL) execute(c *CPU) {
	address := c.regs.Pair(HL)
	c.bus.Write(address, bit.Clear(i.Bit, c.bus.Read(address)))
}

func (i SetBit) execute(c *CPU) {
	c.regs.Set(i.Reg, bit.Set(i.Bit, c.regs.Get(i.Reg)))
}

func (i SetBitHL) execute(c *CPU) {
	address := c.regs.Pair(HL)
	c.bus.Write(address, bit.Set(i.Bit, c.bus.Read(address)))
}

func (i ExtendedUnrecognized) execute(c *CPU) {
	c.unrecognized(i)
}
