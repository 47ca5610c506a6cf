package cpu

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/valerio/go-gboy/gboy/addr"
	"github.com/valerio/go-gboy/gboy/memory"
)

func hex8(v uint8) string {
	return fmt.Sprintf("0x%02X", v)
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}

// dump logs the whole emulator state at debug level.
func (c *CPU) dump() {
	cart := c.bus.Cartridge()
	slog.Debug("Cartridge",
		slog.String("title", cart.Title()),
		slog.String("destination", cart.DestinationCode().String()),
		slog.String("licensee", cart.LicenseeCode().String()),
		slog.String("type", cart.Type().String()),
		slog.String("header_checksum", hex8(cart.HeaderChecksum())),
		slog.String("calculated_checksum", hex8(cart.CalculateHeaderChecksum())),
		slog.String("fingerprint", fmt.Sprintf("%016x", cart.Fingerprint())))

	r := c.regs
	slog.Debug("Registers",
		slog.Group("r8",
			"a", hex8(r.A), "b", hex8(r.B), "c", hex8(r.C), "d", hex8(r.D),
			"e", hex8(r.E), "g", hex8(r.G), "h", hex8(r.H), "l", hex8(r.L)),
		slog.Group("r16",
			"af", hex16(r.Pair(AF)), "bc", hex16(r.Pair(BC)),
			"de", hex16(r.Pair(DE)), "hl", hex16(r.Pair(HL))),
		slog.String("flags", r.F.String()),
		slog.String("pc", hex16(r.PC.Value())),
		slog.String("sp", hex16(r.SP)),
		slog.String("phase", c.phase.String()))

	slog.Debug("Stack",
		slog.String("sp", hex16(r.SP)),
		slog.String("bytes", hex.EncodeToString(c.stack())))

	slog.Debug("Timers",
		slog.String("div", hex8(c.bus.Read(addr.DIV))),
		slog.String("tima", hex8(c.bus.Read(addr.TIMA))),
		slog.String("tma", hex8(c.bus.Read(addr.TMA))),
		slog.String("tac", hex8(c.bus.Read(addr.TAC))),
		slog.Uint64("cycles", c.cycles))

	slog.Debug("Interrupts",
		slog.String("if", fmt.Sprintf("%08b", c.bus.Read(addr.IF))),
		slog.String("ie", fmt.Sprintf("%08b", c.bus.Read(addr.IE))),
		slog.String("lcdc", fmt.Sprintf("%08b", c.bus.Read(addr.LCDC))),
		slog.String("stat", fmt.Sprintf("%08b", c.bus.Read(addr.STAT))))
}

// stack returns the bytes from SP up to the top of the flat memory array.
func (c *CPU) stack() []byte {
	var out []byte
	for a := uint32(c.regs.SP); a < memory.Size; a++ {
		out = append(out, c.bus.Read(uint16(a)))
	}
	return out
}
