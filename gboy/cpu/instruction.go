package cpu

import (
	"fmt"

	"github.com/valerio/go-gboy/gboy/bit"
)

// Instruction is a decoded opcode together with its operands.
// The set of instructions is closed, only this package can implement it.
type Instruction interface {
	fmt.Stringer
	// Cycles returns the clock cycles the instruction takes. Conditional
	// transfers return the cost of the branch not taken.
	Cycles() int
	execute(c *CPU)
}

// conditional is implemented by control transfers whose cost depends on the branch outcome.
type conditional interface {
	takenCycles() int
}

// Condition is the flag test of a conditional control transfer.
type Condition struct {
	Flag Flag
	Set  bool
}

func (c Condition) holds(f Flags) bool {
	return f.IsSet(c.Flag) == c.Set
}

func (c Condition) String() string {
	if c.Set {
		return c.Flag.String()
	}
	return "N" + c.Flag.String()
}

// ALUOp is one of the 8 bit arithmetic/logic operations on the accumulator.
type ALUOp uint8

const (
	Add ALUOp = iota
	Adc
	Sub
	Sbc
	And
	Xor
	Or
	Cp
)

var aluNames = [...]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

func (op ALUOp) String() string {
	if int(op) < len(aluNames) {
		return aluNames[op]
	}
	return fmt.Sprintf("ALUOp(%d)", uint8(op))
}

// ShiftOp is one of the rotate/shift operations of the extended set.
type ShiftOp uint8

const (
	Rlc ShiftOp = iota
	Rrc
	Rl
	Rr
	Sla
	Sra
	Swap
	Srl
)

var shiftNames = [...]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

func (op ShiftOp) String() string {
	if int(op) < len(shiftNames) {
		return shiftNames[op]
	}
	return fmt.Sprintf("ShiftOp(%d)", uint8(op))
}

func word(high, low uint8) string {
	return fmt.Sprintf("0x%04X", bit.Combine(high, low))
}

func offset(o int8) string {
	if o < 0 {
		return fmt.Sprintf("-%d", -int(o))
	}
	return fmt.Sprintf("+%d", o)
}

func hlOperand(delta int8) string {
	if delta < 0 {
		return "(HL-)"
	}
	return "(HL+)"
}

// Nop does nothing.
type Nop struct{}

func (Nop) Cycles() int    { return 4 }
func (Nop) String() string { return "NOP" }

// LoadPairImmediate is LD rr,nn.
type LoadPairImmediate struct {
	Dst       Reg16
	High, Low uint8
}

func (LoadPairImmediate) Cycles() int      { return 12 }
func (i LoadPairImmediate) String() string { return fmt.Sprintf("LD %v,%s", i.Dst, word(i.High, i.Low)) }

// StoreIndirect is LD (rr),r: stores a register at the address held by a pair.
type StoreIndirect struct {
	Pair Reg16
	Src  Reg8
}

func (StoreIndirect) Cycles() int      { return 8 }
func (i StoreIndirect) String() string { return fmt.Sprintf("LD (%v),%v", i.Pair, i.Src) }

// LoadIndirect is LD r,(rr): loads a register from the address held by a pair.
type LoadIndirect struct {
	Dst  Reg8
	Pair Reg16
}

func (LoadIndirect) Cycles() int      { return 8 }
func (i LoadIndirect) String() string { return fmt.Sprintf("LD %v,(%v)", i.Dst, i.Pair) }

// StoreHLStep is LD (HL+),A and LD (HL-),A. HL is moved by Delta after the store.
type StoreHLStep struct {
	Delta int8
}

func (StoreHLStep) Cycles() int      { return 8 }
func (i StoreHLStep) String() string { return "LD " + hlOperand(i.Delta) + ",A" }

// LoadHLStep is LD A,(HL+) and LD A,(HL-). HL is moved by Delta after the load.
type LoadHLStep struct {
	Delta int8
}

func (LoadHLStep) Cycles() int      { return 8 }
func (i LoadHLStep) String() string { return "LD A," + hlOperand(i.Delta) }

// IncPair is INC rr.
type IncPair struct {
	Pair Reg16
}

func (IncPair) Cycles() int      { return 8 }
func (i IncPair) String() string { return fmt.Sprintf("INC %v", i.Pair) }

// DecPair is DEC rr.
type DecPair struct {
	Pair Reg16
}

func (DecPair) Cycles() int      { return 8 }
func (i DecPair) String() string { return fmt.Sprintf("DEC %v", i.Pair) }

// Inc is INC r.
type Inc struct {
	Reg Reg8
}

func (Inc) Cycles() int      { return 4 }
func (i Inc) String() string { return fmt.Sprintf("INC %v", i.Reg) }

// Dec is DEC r.
type Dec struct {
	Reg Reg8
}

func (Dec) Cycles() int      { return 4 }
func (i Dec) String() string { return fmt.Sprintf("DEC %v", i.Reg) }

// IncHL is INC (HL).
type IncHL struct{}

func (IncHL) Cycles() int    { return 12 }
func (IncHL) String() string { return "INC (HL)" }

// DecHL is DEC (HL).
type DecHL struct{}

func (DecHL) Cycles() int    { return 12 }
func (DecHL) String() string { return "DEC (HL)" }

// LoadImmediate is LD r,n.
type LoadImmediate struct {
	Dst   Reg8
	Value uint8
}

func (LoadImmediate) Cycles() int      { return 8 }
func (i LoadImmediate) String() string { return fmt.Sprintf("LD %v,0x%02X", i.Dst, i.Value) }

// StoreImmediateHL is LD (HL),n.
type StoreImmediateHL struct {
	Value uint8
}

func (StoreImmediateHL) Cycles() int      { return 12 }
func (i StoreImmediateHL) String() string { return fmt.Sprintf("LD (HL),0x%02X", i.Value) }

// RotateA is one of RLCA, RRCA, RLA, RRA. Unlike the extended rotations the zero flag is always cleared.
type RotateA struct {
	Op ShiftOp
}

func (RotateA) Cycles() int      { return 4 }
func (i RotateA) String() string { return i.Op.String() + "A" }

// StoreSP is LD (nn),SP.
type StoreSP struct {
	High, Low uint8
}

func (StoreSP) Cycles() int      { return 20 }
func (i StoreSP) String() string { return fmt.Sprintf("LD (%s),SP", word(i.High, i.Low)) }

// AddHL is ADD HL,rr.
type AddHL struct {
	Pair Reg16
}

func (AddHL) Cycles() int      { return 8 }
func (i AddHL) String() string { return fmt.Sprintf("ADD HL,%v", i.Pair) }

// JumpRelative is JR e.
type JumpRelative struct {
	Offset int8
}

func (JumpRelative) Cycles() int      { return 12 }
func (i JumpRelative) String() string { return "JR " + offset(i.Offset) }

// JumpRelativeIf is JR cc,e.
type JumpRelativeIf struct {
	Cond   Condition
	Offset int8
}

func (JumpRelativeIf) Cycles() int      { return 8 }
func (JumpRelativeIf) takenCycles() int { return 12 }
func (i JumpRelativeIf) String() string { return fmt.Sprintf("JR %v,%s", i.Cond, offset(i.Offset)) }

// DecimalAdjust is DAA.
type DecimalAdjust struct{}

func (DecimalAdjust) Cycles() int    { return 4 }
func (DecimalAdjust) String() string { return "DAA" }

// Complement is CPL.
type Complement struct{}

func (Complement) Cycles() int    { return 4 }
func (Complement) String() string { return "CPL" }

// SetCarryFlag is SCF.
type SetCarryFlag struct{}

func (SetCarryFlag) Cycles() int    { return 4 }
func (SetCarryFlag) String() string { return "SCF" }

// ComplementCarry is CCF.
type ComplementCarry struct{}

func (ComplementCarry) Cycles() int    { return 4 }
func (ComplementCarry) String() string { return "CCF" }

// Load is LD r,r'.
type Load struct {
	Dst, Src Reg8
}

func (Load) Cycles() int      { return 4 }
func (i Load) String() string { return fmt.Sprintf("LD %v,%v", i.Dst, i.Src) }

// Arithmetic applies an ALU operation to A and a register.
type Arithmetic struct {
	Op  ALUOp
	Src Reg8
}

func (Arithmetic) Cycles() int      { return 4 }
func (i Arithmetic) String() string { return fmt.Sprintf("%v A,%v", i.Op, i.Src) }

// ArithmeticHL applies an ALU operation to A and the byte at (HL).
type ArithmeticHL struct {
	Op ALUOp
}

func (ArithmeticHL) Cycles() int      { return 8 }
func (i ArithmeticHL) String() string { return fmt.Sprintf("%v A,(HL)", i.Op) }

// ArithmeticImmediate applies an ALU operation to A and an immediate byte.
type ArithmeticImmediate struct {
	Op    ALUOp
	Value uint8
}

func (ArithmeticImmediate) Cycles() int      { return 8 }
func (i ArithmeticImmediate) String() string { return fmt.Sprintf("%v A,0x%02X", i.Op, i.Value) }

// Return is RET.
type Return struct{}

func (Return) Cycles() int    { return 16 }
func (Return) String() string { return "RET" }

// ReturnIf is RET cc.
type ReturnIf struct {
	Cond Condition
}

func (ReturnIf) Cycles() int      { return 8 }
func (ReturnIf) takenCycles() int { return 20 }
func (i ReturnIf) String() string { return fmt.Sprintf("RET %v", i.Cond) }

// ReturnInterrupt is RETI: a return that also enables interrupts.
type ReturnInterrupt struct{}

func (ReturnInterrupt) Cycles() int    { return 16 }
func (ReturnInterrupt) String() string { return "RETI" }

// Pop is POP rr.
type Pop struct {
	Pair Reg16
}

func (Pop) Cycles() int      { return 12 }
func (i Pop) String() string { return fmt.Sprintf("POP %v", i.Pair) }

// Push is PUSH rr.
type Push struct {
	Pair Reg16
}

func (Push) Cycles() int      { return 16 }
func (i Push) String() string { return fmt.Sprintf("PUSH %v", i.Pair) }

// Jump is JP nn.
type Jump struct {
	High, Low uint8
}

func (Jump) Cycles() int      { return 16 }
func (i Jump) String() string { return "JP " + word(i.High, i.Low) }

// JumpIf is JP cc,nn.
type JumpIf struct {
	Cond      Condition
	High, Low uint8
}

func (JumpIf) Cycles() int      { return 12 }
func (JumpIf) takenCycles() int { return 16 }
func (i JumpIf) String() string { return fmt.Sprintf("JP %v,%s", i.Cond, word(i.High, i.Low)) }

// JumpHL is JP (HL).
type JumpHL struct{}

func (JumpHL) Cycles() int    { return 4 }
func (JumpHL) String() string { return "JP (HL)" }

// Call is CALL nn.
type Call struct {
	High, Low uint8
}

func (Call) Cycles() int      { return 24 }
func (i Call) String() string { return "CALL " + word(i.High, i.Low) }

// CallIf is CALL cc,nn.
type CallIf struct {
	Cond      Condition
	High, Low uint8
}

func (CallIf) Cycles() int      { return 12 }
func (CallIf) takenCycles() int { return 24 }
func (i CallIf) String() string { return fmt.Sprintf("CALL %v,%s", i.Cond, word(i.High, i.Low)) }

// StoreHigh is LDH (n),A: stores A at 0xFF00+n.
type StoreHigh struct {
	Offset uint8
}

func (StoreHigh) Cycles() int      { return 12 }
func (i StoreHigh) String() string { return fmt.Sprintf("LDH (0x%02X),A", i.Offset) }

// LoadHigh is LDH A,(n): loads A from 0xFF00+n.
type LoadHigh struct {
	Offset uint8
}

func (LoadHigh) Cycles() int      { return 12 }
func (i LoadHigh) String() string { return fmt.Sprintf("LDH A,(0x%02X)", i.Offset) }

// StoreHighC is LD (C),A: stores A at 0xFF00+C.
type StoreHighC struct{}

func (StoreHighC) Cycles() int    { return 8 }
func (StoreHighC) String() string { return "LD (C),A" }

// LoadHighC is LD A,(C): loads A from 0xFF00+C.
type LoadHighC struct{}

func (LoadHighC) Cycles() int    { return 8 }
func (LoadHighC) String() string { return "LD A,(C)" }

// StoreA is LD (nn),A.
type StoreA struct {
	High, Low uint8
}

func (StoreA) Cycles() int      { return 16 }
func (i StoreA) String() string { return fmt.Sprintf("LD (%s),A", word(i.High, i.Low)) }

// LoadA is LD A,(nn).
type LoadA struct {
	High, Low uint8
}

func (LoadA) Cycles() int      { return 16 }
func (i LoadA) String() string { return fmt.Sprintf("LD A,(%s)", word(i.High, i.Low)) }

// AddSP is ADD SP,e.
type AddSP struct {
	Offset int8
}

func (AddSP) Cycles() int      { return 16 }
func (i AddSP) String() string { return "ADD SP," + offset(i.Offset) }

// LoadHLSP is LD HL,SP+e.
type LoadHLSP struct {
	Offset int8
}

func (LoadHLSP) Cycles() int      { return 12 }
func (i LoadHLSP) String() string { return "LD HL,SP" + offset(i.Offset) }

// LoadSPHL is LD SP,HL.
type LoadSPHL struct{}

func (LoadSPHL) Cycles() int    { return 8 }
func (LoadSPHL) String() string { return "LD SP,HL" }

// DisableInterrupts is DI.
type DisableInterrupts struct{}

func (DisableInterrupts) Cycles() int    { return 4 }
func (DisableInterrupts) String() string { return "DI" }

// EnableInterrupts is EI.
type EnableInterrupts struct{}

func (EnableInterrupts) Cycles() int    { return 4 }
func (EnableInterrupts) String() string { return "EI" }

// Unrecognized is any primary opcode without an implementation.
// It has no cycle cost, executing it stops the emulation.
type Unrecognized struct {
	Opcode uint8
}

func (Unrecognized) Cycles() int      { return 0 }
func (i Unrecognized) String() string { return fmt.Sprintf("UNRECOGNIZED 0x%02X", i.Opcode) }

// Shift is one of the extended rotate/shift operations on a register.
type Shift struct {
	Op  ShiftOp
	Reg Reg8
}

func (Shift) Cycles() int      { return 8 }
func (i Shift) String() string { return fmt.Sprintf("%v %v", i.Op, i.Reg) }

// ShiftHL is one of the extended rotate/shift operations on (HL).
type ShiftHL struct {
	Op ShiftOp
}

func (ShiftHL) Cycles() int      { return 16 }
func (i ShiftHL) String() string { return fmt.Sprintf("%v (HL)", i.Op) }

// TestBit is BIT b,r.
type TestBit struct {
	Bit uint8
	Reg Reg8
}

func (TestBit) Cycles() int      { return 8 }
func (i TestBit) String() string { return fmt.Sprintf("BIT %d,%v", i.Bit, i.Reg) }

// TestBitHL is BIT b,(HL).
type TestBitHL struct {
	Bit uint8
}

func (TestBitHL) Cycles() int      { return 12 }
func (i TestBitHL) String() string { return fmt.Sprintf("BIT %d,(HL)", i.Bit) }

// ResetBit is RES b,r.
type ResetBit struct {
	Bit uint8
	Reg Reg8
}

func (ResetBit) Cycles() int      { return 8 }
func (i ResetBit) String() string { return fmt.Sprintf("RES %d,%v", i.Bit, i.Reg) }

// ResetBitHL is RES b,(HL).
type ResetBitHL struct {
	Bit uint8
}

func (ResetBitHL) Cycles() int      { return 16 }
func (i ResetBitHL) String() string { return fmt.Sprintf("RES %d,(HL)", i.Bit) }

// SetBit is SET b,r.
type SetBit struct {
	Bit uint8
	Reg Reg8
}

func (SetBit) Cycles() int      { return 8 }
func (i SetBit) String() string { return fmt.Sprintf("SET %d,%v", i.Bit, i.Reg) }

// SetBitHL is SET b,(HL).
type SetBitHL struct {
	Bit uint8
}

func (SetBitHL) Cycles() int      { return 16 }
func (i SetBitHL) String() string { return fmt.Sprintf("SET %d,(HL)", i.Bit) }

// ExtendedUnrecognized is any extended opcode without an implementation.
// The extended table is complete, so the decoder never produces it.
type ExtendedUnrecognized struct {
	Opcode uint8
}

func (ExtendedUnrecognized) Cycles() int      { return 0 }
func (i ExtendedUnrecognized) String() string { return fmt.Sprintf("UNRECOGNIZED 0xCB 0x%02X", i.Opcode) }
