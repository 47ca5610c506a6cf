package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-gboy/gboy/addr"
)

func TestCPU_TickDivider(t *testing.T) {
	cpu := newTestCPU(t, nil)

	for i := 0; i < 63; i++ {
		cpu.Tick(Nop{})
	}
	assert.Equal(t, uint64(252), cpu.Cycles())
	assert.Equal(t, uint8(0), cpu.bus.Read(addr.DIV))

	cpu.Tick(Nop{})
	assert.Equal(t, uint64(256), cpu.Cycles())
	assert.Equal(t, uint8(1), cpu.bus.Read(addr.DIV))

	for i := 0; i < 63; i++ {
		cpu.Tick(Nop{})
	}
	assert.Equal(t, uint8(1), cpu.bus.Read(addr.DIV), "no increment until 256 more cycles")

	cpu.Tick(Nop{})
	assert.Equal(t, uint8(2), cpu.bus.Read(addr.DIV))
}

func TestCPU_TickDividerMarksOvershoot(t *testing.T) {
	cpu := newTestCPU(t, nil)

	for i := 0; i < 12; i++ {
		cpu.Tick(StoreSP{})
	}
	// 240 cycles, the next 24 cycle instruction crosses the period
	cpu.Tick(Call{})
	assert.Equal(t, uint8(1), cpu.bus.Read(addr.DIV))

	// the next period starts at 264, not at 256
	for i := 0; i < 62; i++ {
		cpu.Tick(Nop{})
	}
	assert.Equal(t, uint64(512), cpu.Cycles())
	assert.Equal(t, uint8(1), cpu.bus.Read(addr.DIV))
}

func TestCPU_TickDividerWraps(t *testing.T) {
	cpu := newTestCPU(t, nil)
	cpu.bus.Write(addr.DIV, 0xFF)

	for i := 0; i < 64; i++ {
		cpu.Tick(Nop{})
	}

	assert.Equal(t, uint8(0), cpu.bus.Read(addr.DIV))
}

func TestCPU_TickWithoutCostIsFatal(t *testing.T) {
	cpu := newTestCPU(t, nil)

	cpu.Tick(Unrecognized{Opcode: 0xFF})

	assert.True(t, cpu.QuitRequested())
	assert.Equal(t, uint64(0), cpu.Cycles())
}

func TestCPU_TickUsesInstructionCost(t *testing.T) {
	testCases := []struct {
		in   Instruction
		want uint64
	}{
		{in: Nop{}, want: 4},
		{in: Load{Dst: A, Src: B}, want: 4},
		{in: LoadImmediate{Dst: A}, want: 8},
		{in: LoadPairImmediate{Dst: HL}, want: 12},
		{in: Push{Pair: BC}, want: 16},
		{in: StoreSP{}, want: 20},
		{in: Call{}, want: 24},
		{in: JumpRelativeIf{}, want: 8},
		{in: ShiftHL{Op: Swap}, want: 16},
		{in: TestBitHL{}, want: 12},
	}
	for _, tC := range testCases {
		t.Run(tC.in.String(), func(t *testing.T) {
			cpu := newTestCPU(t, nil)
			cpu.Tick(tC.in)
			assert.Equal(t, tC.want, cpu.Cycles())
		})
	}
}
