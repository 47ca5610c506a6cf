package cpu

import (
	"fmt"

	"github.com/valerio/go-gboy/gboy/bit"
)

// Reg8 identifies one of the 8 bit register slots.
type Reg8 uint8

const (
	A Reg8 = iota
	B
	C
	D
	E
	// G has no hardware counterpart, it is only an internal slot and is not part of any pair.
	G
	H
	L
)

var reg8Names = [...]string{"A", "B", "C", "D", "E", "G", "H", "L"}

func (r Reg8) String() string {
	if int(r) < len(reg8Names) {
		return reg8Names[r]
	}
	return fmt.Sprintf("Reg8(%d)", uint8(r))
}

// Reg16 identifies a register pair or the stack pointer.
type Reg16 uint8

const (
	AF Reg16 = iota
	BC
	DE
	HL
	SP
)

var reg16Names = [...]string{"AF", "BC", "DE", "HL", "SP"}

func (r Reg16) String() string {
	if int(r) < len(reg16Names) {
		return reg16Names[r]
	}
	return fmt.Sprintf("Reg16(%d)", uint8(r))
}

// ProgramCounter is the cursor over the address space the CPU fetches from.
type ProgramCounter uint16

// Value returns the current address.
func (pc ProgramCounter) Value() uint16 {
	return uint16(pc)
}

// Walk moves the PC to the next position and returns it.
// Walking past 0xFFFF wraps to 0, callers fetching near the top of memory must guard against it.
func (pc *ProgramCounter) Walk() uint16 {
	*pc++
	return uint16(*pc)
}

// Jump moves the PC to the given address.
func (pc *ProgramCounter) Jump(address uint16) {
	*pc = ProgramCounter(address)
}

// Registers holds the whole register file. The zero value has every register cleared.
type Registers struct {
	A, B, C, D, E, G, H, L uint8

	F  Flags
	PC ProgramCounter
	SP uint16
}

func (r *Registers) slot(reg Reg8) *uint8 {
	switch reg {
	case A:
		return &r.A
	case B:
		return &r.B
	case C:
		return &r.C
	case D:
		return &r.D
	case E:
		return &r.E
	case G:
		return &r.G
	case H:
		return &r.H
	case L:
		return &r.L
	default:
		panic(fmt.Sprintf("invalid 8 bit register: %v", reg))
	}
}

// Get returns the value of an 8 bit register.
func (r *Registers) Get(reg Reg8) uint8 {
	return *r.slot(reg)
}

// Set replaces the value of an 8 bit register.
func (r *Registers) Set(reg Reg8, value uint8) {
	*r.slot(reg) = value
}

// Pair returns the value of a register pair (high register first) or of SP.
func (r *Registers) Pair(reg Reg16) uint16 {
	switch reg {
	case AF:
		return bit.Combine(r.A, r.F.Value())
	case BC:
		return bit.Combine(r.B, r.C)
	case DE:
		return bit.Combine(r.D, r.E)
	case HL:
		return bit.Combine(r.H, r.L)
	case SP:
		return r.SP
	default:
		panic(fmt.Sprintf("invalid 16 bit register: %v", reg))
	}
}

// SetPair splits a 16 bit value over a register pair, or sets SP.
// The low nibble of F is always kept clear.
func (r *Registers) SetPair(reg Reg16, value uint16) {
	high, low := bit.Split(value)
	switch reg {
	case AF:
		r.A, r.F = high, Flags(low&0xF0)
	case BC:
		r.B, r.C = high, low
	case DE:
		r.D, r.E = high, low
	case HL:
		r.H, r.L = high, low
	case SP:
		r.SP = value
	default:
		panic(fmt.Sprintf("invalid 16 bit register: %v", reg))
	}
}

// IncPair increments a register pair, wrapping from 0xFFFF to 0x0000.
func (r *Registers) IncPair(reg Reg16) {
	r.SetPair(reg, r.Pair(reg)+1)
}

// DecPair decrements a register pair, wrapping from 0x0000 to 0xFFFF.
func (r *Registers) DecPair(reg Reg16) {
	r.SetPair(reg, r.Pair(reg)-1)
}

// BitState returns the bit at the given position of an 8 bit register, either 0 or 1.
func (r *Registers) BitState(reg Reg8, position uint8) uint8 {
	return bit.GetBitValue(position, r.Get(reg))
}
