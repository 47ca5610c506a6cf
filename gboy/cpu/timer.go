package cpu

import (
	"log/slog"

	"github.com/valerio/go-gboy/gboy/addr"
)

// divPeriod is the number of clock cycles between two increments of DIV.
const divPeriod = 256

// Tick advances the clock by the cost of an executed instruction and updates the divider.
// An instruction without a cycle cost is fatal: the emulation is stopped.
func (c *CPU) Tick(in Instruction) {
	cost := in.Cycles()
	if cond, ok := in.(conditional); ok && c.control.branchTaken {
		cost = cond.takenCycles()
	}

	if cost == 0 {
		slog.Error("Instruction clock cycles not defined", "instruction", in.String())
		c.control.quit = true
		return
	}

	c.cycles += uint64(cost)
	c.tickDivider()
}

func (c *CPU) tickDivider() {
	if c.cycles-c.control.divMark < divPeriod {
		return
	}

	c.bus.Write(addr.DIV, c.bus.Read(addr.DIV)+1)
	c.control.divMark = c.cycles
}
