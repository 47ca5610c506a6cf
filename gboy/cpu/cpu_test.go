package cpu

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-gboy/gboy/addr"
	"github.com/valerio/go-gboy/gboy/memory"
)

func newTestROM() []byte {
	return make([]byte, 0x150)
}

func newTestCPU(t *testing.T, rom []byte) *CPU {
	t.Helper()
	if rom == nil {
		rom = newTestROM()
	}
	cart, err := memory.NewCartridge(rom)
	require.NoError(t, err)
	return New(memory.New(cart), nil)
}

// load writes a program to memory, starting at the given address.
func (c *CPU) load(start uint16, program ...byte) {
	for i, b := range program {
		c.bus.Write(start+uint16(i), b)
	}
}

// recorder keeps every call it receives, in order.
type recorder struct {
	calls  []string
	events []Event
}

func (r *recorder) Initialize() { r.calls = append(r.calls, "initialize") }
func (r *recorder) Tick()       { r.calls = append(r.calls, "tick") }
func (r *recorder) Quit()       { r.calls = append(r.calls, "quit") }

func (r *recorder) Message(e Event) {
	r.calls = append(r.calls, "message")
	r.events = append(r.events, e)
}

func TestCPU_BootupWithoutBootROM(t *testing.T) {
	rom := newTestROM()
	copy(rom[addr.TitleStart:], "TETRIS")
	rec := &recorder{}
	cart, err := memory.NewCartridge(rom)
	require.NoError(t, err)
	mmu := memory.New(cart)
	cpu := New(mmu, rec)

	require.NoError(t, cpu.Bootup(nil))

	assert.Equal(t, uint8(0x01), cpu.regs.A)
	assert.Equal(t, uint8(0x01), mmu.Read(addr.BootDisable))
	assert.Equal(t, addr.EntryPoint, cpu.regs.PC.Value())
	assert.Equal(t, addr.InitialSP, cpu.regs.SP)
	assert.Equal(t, uint8(0x90), mmu.Read(addr.LY))
	assert.True(t, cpu.GameBooted())
	assert.Equal(t, GamePhase, cpu.Phase())

	assert.Equal(t, []string{"message", "initialize"}, rec.calls)
	assert.Equal(t, []Event{CartridgeTitle{Title: "TETRIS"}}, rec.events)
}

func TestCPU_BootupLoadsHeader(t *testing.T) {
	rom := newTestROM()
	rom[0x0100] = 0xAA
	rom[0x014E] = 0xBB
	cpu := newTestCPU(t, rom)

	require.NoError(t, cpu.Bootup(make([]byte, 0x100)))

	assert.Equal(t, uint8(0xAA), cpu.bus.Read(0x0100))
	assert.Equal(t, uint8(0xBB), cpu.bus.Read(0x014E))
	assert.Equal(t, BootPhase, cpu.Phase())
	assert.False(t, cpu.GameBooted())
}

func TestCPU_BootupRejectsLargeBootROM(t *testing.T) {
	cpu := newTestCPU(t, nil)

	err := cpu.Bootup(make([]byte, 0x10000))

	assert.ErrorIs(t, err, memory.ErrBootROMTooLarge)
}

func TestCPU_RunStopsAtUnrecognizedOpcode(t *testing.T) {
	rom := newTestROM()
	rom[0x0100] = 0x00
	rom[0x0101] = 0xFF
	rec := &recorder{}
	cart, err := memory.NewCartridge(rom)
	require.NoError(t, err)
	cpu := New(memory.New(cart), rec)

	require.NoError(t, cpu.Bootup(nil))
	cpu.Run()

	assert.True(t, cpu.QuitRequested())
	assert.Equal(t, uint16(0x0102), cpu.regs.PC.Value())
	assert.Equal(t, uint16(0x0101), cpu.OpcodeAddress())
	assert.Equal(t, Terminated, cpu.Phase())
	assert.Equal(t, uint64(4), cpu.Cycles())
	assert.Equal(t, "quit", rec.calls[len(rec.calls)-1])
}

func TestCPU_RunBootThenGame(t *testing.T) {
	boot := make([]byte, 0x100)
	copy(boot, []byte{0xC3, 0xFC, 0x00})             // JP 0x00FC
	copy(boot[0xFC:], []byte{0x3E, 0x01, 0xE0, 0x50}) // LD A,1; LDH (0x50),A

	rom := newTestROM()
	rom[0x0000] = 0x77
	rom[0x0100] = 0x00
	rom[0x0101] = 0xFF
	cpu := newTestCPU(t, rom)

	require.NoError(t, cpu.Bootup(boot))
	cpu.Run()

	assert.True(t, cpu.GameBooted())
	assert.True(t, cpu.QuitRequested())
	assert.Equal(t, uint16(0x0101), cpu.OpcodeAddress())
	assert.Equal(t, uint8(0x77), cpu.bus.Read(0x0000), "game rom overlays the boot rom")
	assert.Equal(t, uint64(16+8+12+4), cpu.Cycles())
}

func TestCPU_RunBootHandoffRunsBeforeROMLoad(t *testing.T) {
	boot := make([]byte, 0x100)
	copy(boot, []byte{0xC3, 0xFC, 0x00})             // JP 0x00FC
	copy(boot[0xFC:], []byte{0x3E, 0x01, 0xE0, 0x50}) // LD A,1; LDH (0x50),A

	rom := make([]byte, 0x210)
	copy(rom[0x0100:], []byte{0xFA, 0x00, 0x02}) // LD A,(0x0200)
	rom[0x0103] = 0xFF
	rom[0x0200] = 0x42
	cpu := newTestCPU(t, rom)

	require.NoError(t, cpu.Bootup(boot))
	cpu.Run()

	assert.Equal(t, uint8(0x00), cpu.regs.A, "0x0200 is outside the header window while the boot rom is mapped")
	assert.Equal(t, uint8(0x42), cpu.bus.Read(0x0200), "game rom loaded afterwards")
	assert.Equal(t, uint16(0x0103), cpu.OpcodeAddress())
	assert.Equal(t, uint64(16+8+12+16), cpu.Cycles())
}

func TestCPU_RunBootTraps(t *testing.T) {
	testCases := []struct {
		desc string
		trap uint16
	}{
		{desc: "logo mismatch", trap: addr.LogoMismatchTrap},
		{desc: "checksum mismatch", trap: addr.ChecksumMismatchTrap},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			boot := make([]byte, 0x100)
			boot[0], boot[1], boot[2] = 0xC3, uint8(tC.trap), uint8(tC.trap>>8)

			rom := newTestROM()
			rom[0x0000] = 0x77
			rec := &recorder{}
			cart, err := memory.NewCartridge(rom)
			require.NoError(t, err)
			cpu := New(memory.New(cart), rec)

			require.NoError(t, cpu.Bootup(boot))
			cpu.Run()

			assert.True(t, cpu.QuitRequested())
			assert.False(t, cpu.GameBooted())
			assert.Equal(t, Terminated, cpu.Phase())
			assert.Equal(t, uint8(0xC3), cpu.bus.Read(0x0000), "game rom never loaded")
			assert.NotContains(t, rec.calls, "quit")
		})
	}
}

func TestCPU_RunStopsAtGameHaltTrap(t *testing.T) {
	rom := newTestROM()
	copy(rom[0x0100:], []byte{0xC3, 0x37, 0x02}) // JP 0x0237
	cpu := newTestCPU(t, rom)

	require.NoError(t, cpu.Bootup(nil))
	cpu.Run()

	assert.True(t, cpu.QuitRequested())
	assert.Equal(t, addr.GameHaltTrap, cpu.regs.PC.Value())
	assert.Equal(t, uint16(0x0100), cpu.OpcodeAddress())
}

func TestCPU_StepNotifiesObserver(t *testing.T) {
	rom := newTestROM()
	rom[0x0100] = 0x00
	rom[0x0101] = 0xFF
	rec := &recorder{}
	cart, err := memory.NewCartridge(rom)
	require.NoError(t, err)
	cpu := New(memory.New(cart), rec)

	require.NoError(t, cpu.Bootup(nil))
	cpu.Run()

	// title, then per iteration: registers, display, tick, decoded instruction
	require.Len(t, rec.events, 1+2*3)
	assert.Equal(t, []string{"message", "initialize", "message", "message", "tick", "message"}, rec.calls[:6])

	regs, ok := rec.events[1].(RegisterSnapshot)
	require.True(t, ok)
	assert.Equal(t, uint16(0x0100), regs.PC)
	assert.Equal(t, uint16(0xFFFE), regs.SP)
	assert.Equal(t, uint8(0x01), regs.A)

	display, ok := rec.events[2].(DisplaySnapshot)
	require.True(t, ok)
	assert.Equal(t, uint8(0x90), display.LY)

	decoded, ok := rec.events[3].(InstructionDecoded)
	require.True(t, ok)
	assert.Equal(t, InstructionDecoded{Address: 0x0100, Instruction: Nop{}}, decoded)

	last, ok := rec.events[6].(InstructionDecoded)
	require.True(t, ok)
	assert.Equal(t, Unrecognized{Opcode: 0xFF}, last.Instruction)
}

func TestCPU_RunDumpsStateAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	rom := newTestROM()
	rom[0x0100] = 0xFF
	cpu := newTestCPU(t, rom)

	require.NoError(t, cpu.Bootup(nil))
	cpu.Run()

	out := buf.String()
	assert.Contains(t, out, "msg=Cartridge")
	assert.Contains(t, out, "fingerprint=")
	assert.Contains(t, out, "calculated_checksum=0xE7")
	assert.Contains(t, out, "msg=Registers")
	assert.Contains(t, out, "msg=Stack")
	assert.Contains(t, out, "msg=Timers")
	assert.Contains(t, out, "msg=Interrupts")
	assert.Contains(t, out, "phase=terminated")
}

func TestCPU_SnapshotIsACopy(t *testing.T) {
	cpu := newTestCPU(t, nil)
	cpu.regs.SetPair(BC, 0x1234)

	snap := cpu.Snapshot()
	cpu.regs.B = 0

	assert.Equal(t, uint8(0x12), snap.B)
	assert.Equal(t, uint8(0x34), snap.C)
}
