package gboy

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-gboy/gboy/cpu"
	"github.com/valerio/go-gboy/gboy/memory"
	"github.com/valerio/go-gboy/gboy/romfile"
)

// Emulator represents the root struct and entry point for running the emulation.
type Emulator struct {
	cpu  *cpu.CPU
	mem  *memory.MMU
	boot []byte
}

// New creates an emulator from in-memory images. A nil boot image skips the boot rom.
// A nil observer runs headless.
func New(rom, boot []byte, observer cpu.Observer) (*Emulator, error) {
	cart, err := memory.NewCartridge(rom)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded cartridge",
		"title", cart.Title(),
		"type", cart.Type().String(),
		"size", cart.Len(),
		"fingerprint", fmt.Sprintf("%016x", cart.Fingerprint()))
	if cart.HeaderChecksum() != cart.CalculateHeaderChecksum() {
		slog.Warn("Header checksum mismatch, the boot rom will lock up",
			"declared", fmt.Sprintf("0x%02X", cart.HeaderChecksum()),
			"calculated", fmt.Sprintf("0x%02X", cart.CalculateHeaderChecksum()))
	}

	mem := memory.New(cart)
	return &Emulator{
		cpu:  cpu.New(mem, observer),
		mem:  mem,
		boot: boot,
	}, nil
}

// NewWithFile creates a new emulator instance loading the ROM at romPath.
// When bootPath is not empty the boot rom is loaded and executed first.
func NewWithFile(romPath, bootPath string, observer cpu.Observer) (*Emulator, error) {
	rom, err := romfile.Load(romPath)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}
	slog.Debug("Loaded ROM data", "path", romPath, "bytes", len(rom))

	var boot []byte
	if bootPath != "" {
		boot, err = romfile.Load(bootPath)
		if err != nil {
			return nil, fmt.Errorf("loading boot rom: %w", err)
		}
		slog.Debug("Loaded boot rom", "path", bootPath, "bytes", len(boot))
	}

	return New(rom, boot, observer)
}

// Run boots the CPU and executes it until it terminates.
func (e *Emulator) Run() error {
	if err := e.cpu.Bootup(e.boot); err != nil {
		return err
	}

	e.cpu.Run()
	return nil
}

// Stop asks the emulation to terminate after the current instruction.
func (e *Emulator) Stop() {
	e.cpu.Stop()
}

// CPU returns the emulated processor.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// Memory returns the emulated address space.
func (e *Emulator) Memory() *memory.MMU {
	return e.mem
}
