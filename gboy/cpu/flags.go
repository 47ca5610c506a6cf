package cpu

import "github.com/valerio/go-gboy/gboy/bit"

// Flag is one of the 4 possible flags of the flag register, the value is the bit position.
type Flag uint8

const (
	Zero      Flag = 7
	Subtract  Flag = 6
	HalfCarry Flag = 5
	Carry     Flag = 4
)

func (f Flag) String() string {
	switch f {
	case Zero:
		return "Z"
	case Subtract:
		return "N"
	case HalfCarry:
		return "H"
	case Carry:
		return "C"
	default:
		return "?"
	}
}

// Flags is the flag register (low part of AF). The low nibble is always zero.
type Flags uint8

// Set sets the flag when state is true, clears it otherwise.
func (f *Flags) Set(flag Flag, state bool) {
	if state {
		*f = Flags(bit.Set(uint8(flag), uint8(*f)))
		return
	}
	*f = Flags(bit.Clear(uint8(flag), uint8(*f)))
}

// Get returns 1 if the flag is set, 0 otherwise.
func (f Flags) Get(flag Flag) uint8 {
	return bit.GetBitValue(uint8(flag), uint8(f))
}

// IsSet reports whether the flag is set.
func (f Flags) IsSet(flag Flag) bool {
	return bit.IsSet(uint8(flag), uint8(f))
}

func (f *Flags) SetZero()        { f.Set(Zero, true) }
func (f *Flags) UnsetZero()      { f.Set(Zero, false) }
func (f *Flags) SetSubtract()    { f.Set(Subtract, true) }
func (f *Flags) UnsetSubtract()  { f.Set(Subtract, false) }
func (f *Flags) SetHalfCarry()   { f.Set(HalfCarry, true) }
func (f *Flags) UnsetHalfCarry() { f.Set(HalfCarry, false) }
func (f *Flags) SetCarry()       { f.Set(Carry, true) }
func (f *Flags) UnsetCarry()     { f.Set(Carry, false) }

// Reset clears all four flags.
func (f *Flags) Reset() {
	*f = 0
}

// Value returns the raw register byte.
func (f Flags) Value() uint8 {
	return uint8(f)
}

// String returns a human-readable representation of the flag register, e.g. "Z-H-".
func (f Flags) String() string {
	out := []byte("----")
	for i, flag := range []Flag{Zero, Subtract, HalfCarry, Carry} {
		if f.IsSet(flag) {
			out[i] = flag.String()[0]
		}
	}
	return string(out)
}
