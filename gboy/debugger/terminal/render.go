package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

var (
	borderStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	valueStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	traceStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	logStyle     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	errorStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type rect struct {
	x, y, w, h int
}

func (d *Debugger) render() {
	d.lastRender = time.Now()
	d.screen.Clear()

	termWidth, termHeight := d.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		d.drawText(0, termHeight/2, termWidth, msg, errorStyle)
		d.screen.Show()
		return
	}

	body := termHeight - 1
	cartHeight := body - registerHeight - displayHeight
	rightWidth := termWidth - leftWidth
	traceHeight := body / 2

	d.drawRegisters(rect{0, 0, leftWidth, registerHeight})
	d.drawDisplay(rect{0, registerHeight, leftWidth, displayHeight})
	d.drawCartridge(rect{0, registerHeight + displayHeight, leftWidth, cartHeight})
	d.drawTrace(rect{leftWidth, 0, rightWidth, traceHeight})
	d.drawLogs(rect{leftWidth, traceHeight, rightWidth, body - traceHeight})

	help := " q/Esc: quit "
	if d.finished && d.config.HoldOnQuit {
		help = " finished, press any key to exit "
	}
	d.drawText(0, termHeight-1, termWidth, help, borderStyle)

	d.screen.Show()
}

// drawBox draws a titled border and returns the inner area.
func (d *Debugger) drawBox(r rect, title string) rect {
	right, bottom := r.x+r.w-1, r.y+r.h-1

	for x := r.x + 1; x < right; x++ {
		d.screen.SetContent(x, r.y, '─', nil, borderStyle)
		d.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := r.y + 1; y < bottom; y++ {
		d.screen.SetContent(r.x, y, '│', nil, borderStyle)
		d.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	d.screen.SetContent(r.x, r.y, '┌', nil, borderStyle)
	d.screen.SetContent(right, r.y, '┐', nil, borderStyle)
	d.screen.SetContent(r.x, bottom, '└', nil, borderStyle)
	d.screen.SetContent(right, bottom, '┘', nil, borderStyle)

	d.drawText(r.x+2, r.y, r.w-4, " "+title+" ", titleStyle)

	return rect{r.x + 2, r.y + 1, r.w - 4, r.h - 2}
}

// drawText writes a single line, clipped to width.
func (d *Debugger) drawText(x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		d.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

func (d *Debugger) drawLines(area rect, lines []string, style tcell.Style) {
	for i, line := range lines {
		if i >= area.h {
			return
		}
		d.drawText(area.x, area.y+i, area.w, line, style)
	}
}

func (d *Debugger) drawRegisters(r rect) {
	area := d.drawBox(r, "REGISTERS")
	regs := d.registers

	d.drawLines(area, []string{
		fmt.Sprintf("A: 0x%02X  F: %v", regs.A, regs.F),
		fmt.Sprintf("B: 0x%02X  C: 0x%02X", regs.B, regs.C),
		fmt.Sprintf("D: 0x%02X  E: 0x%02X", regs.D, regs.E),
		fmt.Sprintf("H: 0x%02X  L: 0x%02X", regs.H, regs.L),
		fmt.Sprintf("G: 0x%02X", regs.G),
		"",
		fmt.Sprintf("PC: 0x%04X", regs.PC),
		fmt.Sprintf("SP: 0x%04X", regs.SP),
		"",
		fmt.Sprintf("Executed: %d", d.executed),
	}, valueStyle)
}

func (d *Debugger) drawDisplay(r rect) {
	area := d.drawBox(r, "DISPLAY")
	disp := d.display

	d.drawLines(area, []string{
		fmt.Sprintf("STAT: 0x%02X", disp.STAT),
		fmt.Sprintf("SCY: 0x%02X  SCX: 0x%02X", disp.SCY, disp.SCX),
		fmt.Sprintf("WY: 0x%02X   WX: 0x%02X", disp.WY, disp.WX),
		fmt.Sprintf("LY: 0x%02X   LYC: 0x%02X", disp.LY, disp.LYC),
	}, valueStyle)
}

func (d *Debugger) drawCartridge(r rect) {
	area := d.drawBox(r, "CARTRIDGE")
	d.drawLines(area, []string{d.title}, valueStyle)
}

// drawTrace lists the most recent decoded instructions, newest at the bottom.
func (d *Debugger) drawTrace(r rect) {
	area := d.drawBox(r, "INSTRUCTIONS")

	trace := d.trace
	if len(trace) > area.h {
		trace = trace[len(trace)-area.h:]
	}

	for i, in := range trace {
		style := traceStyle
		prefix := " "
		if i == len(trace)-1 {
			style = currentStyle
			prefix = "→"
		}
		line := fmt.Sprintf("%s0x%04X: %v", prefix, in.Address, in.Instruction)
		d.drawText(area.x, area.y+i, area.w, line, style)
	}
}

func (d *Debugger) drawLogs(r rect) {
	area := d.drawBox(r, "LOG")

	entries := d.logBuffer.Recent(area.h)
	for i, entry := range entries {
		// newest at the bottom
		y := area.y + len(entries) - 1 - i
		d.drawText(area.x, y, area.w, FormatLogEntry(entry), logStyle)
	}
}
