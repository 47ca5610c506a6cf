package cpu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-gboy/gboy/addr"
	"github.com/valerio/go-gboy/gboy/memory"
)

// LevelTrace is more verbose than debug, it logs every fetched instruction.
const LevelTrace = slog.LevelDebug - 4

// postBootLY is the LY value written at boot. Reporting V-blank lets boot code waiting on LY proceed.
const postBootLY uint8 = 0x90

// Bus provides access to the address space and the cartridge it was loaded from.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	ReadBit(index uint8, address uint16) bool
	LoadHeader()
	LoadROM()
	LoadBootROM(image []byte) error
	Cartridge() *memory.Cartridge
}

// Phase is the stage the run loop is in.
type Phase uint8

const (
	BootPhase Phase = iota
	GamePhase
	Terminated
)

func (p Phase) String() string {
	switch p {
	case BootPhase:
		return "boot"
	case GamePhase:
		return "game"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

type control struct {
	// PC right after the last decode, used to tell jumps from walks
	oldPC uint16
	// address of the last fetched opcode
	opcodeAddress uint16
	gameBooted    bool
	quit          bool
	// cycle count at the last DIV increment
	divMark uint64
	// set when the last conditional transfer took its branch
	branchTaken bool
}

// CPU is the main struct holding the SM83 state.
type CPU struct {
	regs     Registers
	control  control
	cycles   uint64
	phase    Phase
	bus      Bus
	observer Observer
}

// New returns a CPU attached to the given bus. A nil observer means headless.
func New(bus Bus, observer Observer) *CPU {
	if observer == nil {
		observer = NopObserver{}
	}

	return &CPU{
		bus:      bus,
		observer: observer,
	}
}

// Bootup prepares memory for the run loop. With a nil boot image the state the boot rom
// leaves behind is synthesized and the run loop starts directly with the game.
func (c *CPU) Bootup(bootImage []byte) error {
	c.bus.LoadHeader()

	if bootImage != nil {
		if err := c.bus.LoadBootROM(bootImage); err != nil {
			return fmt.Errorf("loading boot rom: %w", err)
		}
		c.phase = BootPhase
	} else {
		c.regs.A = 0x01
		c.bus.Write(addr.BootDisable, 0x01)
		c.regs.PC.Jump(addr.EntryPoint)
		c.regs.SP = addr.InitialSP
		c.control.gameBooted = true
		c.phase = GamePhase
	}

	c.bus.Write(addr.LY, postBootLY)

	c.observer.Message(CartridgeTitle{Title: c.bus.Cartridge().Title()})
	c.observer.Initialize()

	return nil
}

// Run drives the boot and game loops until the emulation terminates.
// When debug logging is enabled the final state is dumped.
func (c *CPU) Run() {
	if c.phase == BootPhase {
		c.runBoot()
	} else {
		slog.Info("Skipping boot rom")
	}

	if c.control.gameBooted && !c.control.quit {
		c.bus.LoadROM()
		c.phase = GamePhase
		c.runGame()
	} else {
		slog.Error("Skipping game rom, boot did not complete")
	}

	c.phase = Terminated

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		c.dump()
	}
}

func (c *CPU) runBoot() {
	slog.Info("Running boot rom")

	for !c.control.quit && !c.control.gameBooted {
		c.notify()

		// the instruction at the handoff address still runs with the boot rom mapped
		if c.bus.ReadBit(0, addr.BootDisable) {
			slog.Info("Boot rom disabled, starting game")
			c.control.gameBooted = true
		}

		c.tracePC()

		switch pc := c.regs.PC.Value(); pc {
		case addr.LogoMismatchTrap:
			slog.Error("Boot rom trapped, logo mismatch", "pc", fmt.Sprintf("0x%04X", pc))
			c.control.quit = true
		case addr.ChecksumMismatchTrap:
			slog.Error("Boot rom trapped, header checksum mismatch", "pc", fmt.Sprintf("0x%04X", pc))
			c.control.quit = true
		}

		c.Step()
	}
}

func (c *CPU) runGame() {
	slog.Info("Running game rom", "title", c.bus.Cartridge().Title())

	for !c.control.quit {
		c.notify()
		c.tracePC()
		c.Step()

		if c.regs.PC.Value() == addr.GameHaltTrap {
			slog.Info("Reached halt address", "pc", fmt.Sprintf("0x%04X", addr.GameHaltTrap))
			c.control.quit = true
		}
	}

	c.observer.Quit()
}

// Step runs a single fetch, decode, execute and tick iteration and returns the executed instruction.
func (c *CPU) Step() Instruction {
	c.control.opcodeAddress = c.regs.PC.Value()
	in := c.Decode(c.fetch())
	c.control.oldPC = c.regs.PC.Value()

	slog.Log(context.Background(), LevelTrace, "Decoded",
		"pc", fmt.Sprintf("0x%04X", c.control.opcodeAddress),
		"instruction", in.String())
	c.observer.Message(InstructionDecoded{Address: c.control.opcodeAddress, Instruction: in})

	c.Execute(in)
	c.Tick(in)

	return in
}

// tracePC logs whether the last instruction moved PC sequentially or jumped.
func (c *CPU) tracePC() {
	ctx := context.Background()
	if !slog.Default().Enabled(ctx, LevelTrace) {
		return
	}

	pc := c.regs.PC.Value()
	if pc == c.control.oldPC {
		slog.Log(ctx, LevelTrace, "PC walked", "pc", fmt.Sprintf("0x%04X", pc))
		return
	}
	slog.Log(ctx, LevelTrace, "PC jumped",
		"from", fmt.Sprintf("0x%04X", c.control.oldPC),
		"to", fmt.Sprintf("0x%04X", pc))
}

func (c *CPU) notify() {
	c.observer.Message(c.Snapshot())
	c.observer.Message(DisplaySnapshot{
		STAT: c.bus.Read(addr.STAT),
		SCY:  c.bus.Read(addr.SCY),
		SCX:  c.bus.Read(addr.SCX),
		WY:   c.bus.Read(addr.WY),
		WX:   c.bus.Read(addr.WX),
		LY:   c.bus.Read(addr.LY),
		LYC:  c.bus.Read(addr.LYC),
	})
	c.observer.Tick()
}

// Snapshot returns a copy of the register file.
func (c *CPU) Snapshot() RegisterSnapshot {
	r := c.regs
	return RegisterSnapshot{
		A:  r.A,
		B:  r.B,
		C:  r.C,
		D:  r.D,
		E:  r.E,
		G:  r.G,
		H:  r.H,
		L:  r.L,
		F:  r.F,
		PC: r.PC.Value(),
		SP: r.SP,
	}
}

// Registers returns a pointer to the register file.
func (c *CPU) Registers() *Registers {
	return &c.regs
}

// Cycles returns the clock cycles elapsed since power on.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Phase returns the current stage of the run loop.
func (c *CPU) Phase() Phase {
	return c.phase
}

// Stop asks the run loop to terminate once the current iteration is over.
func (c *CPU) Stop() {
	c.control.quit = true
}

// QuitRequested reports whether the emulation was asked to stop.
func (c *CPU) QuitRequested() bool {
	return c.control.quit
}

// GameBooted reports whether the boot stage is over.
func (c *CPU) GameBooted() bool {
	return c.control.gameBooted
}

// OpcodeAddress returns the address the last opcode was fetched from.
func (c *CPU) OpcodeAddress() uint16 {
	return c.control.opcodeAddress
}
