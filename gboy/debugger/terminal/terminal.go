// Package terminal implements a debugger observer rendering the CPU state in the terminal.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-gboy/gboy/cpu"
)

const (
	frameTime = time.Second / 60

	logCapacity   = 200
	traceCapacity = 64

	leftWidth      = 30
	registerHeight = 14
	displayHeight  = 9
	minTermWidth   = 80
	minTermHeight  = 24
)

// Config controls the debugger behavior.
type Config struct {
	// Level is the minimum level of the records shown in the LOG pane.
	Level slog.Level
	// HoldOnQuit keeps the last frame on screen until a key is pressed.
	HoldOnQuit bool
}

// Debugger is a cpu.Observer drawing registers, display registers, the
// cartridge title, the decoded instructions and the log on a tcell screen.
type Debugger struct {
	screen    tcell.Screen
	config    Config
	logBuffer *LogBuffer
	logger    *slog.Logger

	title     string
	registers cpu.RegisterSnapshot
	display   cpu.DisplaySnapshot
	trace     []cpu.InstructionDecoded
	executed  uint64

	lastRender    time.Time
	onQuit        func()
	quitRequested bool
	finished      bool

	signals     chan os.Signal
	interrupted atomic.Bool
}

// NewScreen returns a screen bound to the controlling terminal.
func NewScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// New initializes the screen and returns a debugger drawing on it.
func New(screen tcell.Screen, config Config) (*Debugger, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()
	screen.Clear()

	return &Debugger{
		screen:    screen,
		config:    config,
		logBuffer: NewLogBuffer(logCapacity),
	}, nil
}

// OnQuit registers the function called when the user asks to stop the emulation.
func (d *Debugger) OnQuit(fn func()) {
	d.onQuit = fn
}

// Logs returns the buffer the LOG pane is drawn from.
func (d *Debugger) Logs() *LogBuffer {
	return d.logBuffer
}

// Initialize redirects the default logger to the LOG pane and draws the first frame.
func (d *Debugger) Initialize() {
	d.logger = slog.Default()
	slog.SetDefault(slog.New(NewLogBufferHandler(d.logBuffer, d.config.Level)))

	d.signals = make(chan os.Signal, 1)
	signal.Notify(d.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go d.handleSignals(d.signals)

	slog.Info("Terminal debugger initialized", "title", d.title)
	d.render()
}

func (d *Debugger) handleSignals(signals <-chan os.Signal) {
	for range signals {
		d.interrupted.Store(true)
		// wakes up a Quit waiting for a key
		_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// Tick processes pending input and redraws at most once per frame.
func (d *Debugger) Tick() {
	d.pollEvents()

	if d.interrupted.Load() {
		d.requestQuit("signal")
	}

	if time.Since(d.lastRender) >= frameTime {
		d.render()
	}
}

// Quit draws the final state. With HoldOnQuit it waits for a key press.
func (d *Debugger) Quit() {
	slog.Info("Emulation finished")
	d.finished = true
	d.render()

	if !d.config.HoldOnQuit {
		return
	}

	for !d.interrupted.Load() {
		switch d.screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			d.screen.Sync()
			d.render()
		}
	}
}

// Message records the state carried by an event, it is drawn on the next frame.
func (d *Debugger) Message(e cpu.Event) {
	switch e := e.(type) {
	case cpu.CartridgeTitle:
		d.title = e.Title
	case cpu.RegisterSnapshot:
		d.registers = e
	case cpu.DisplaySnapshot:
		d.display = e
	case cpu.InstructionDecoded:
		d.executed++
		if len(d.trace) == traceCapacity {
			copy(d.trace, d.trace[1:])
			d.trace = d.trace[:traceCapacity-1]
		}
		d.trace = append(d.trace, e)
	}
}

// Close restores the terminal and the previous default logger.
func (d *Debugger) Close() {
	if d.signals != nil {
		signal.Stop(d.signals)
		close(d.signals)
		d.signals = nil
	}
	if d.logger != nil {
		slog.SetDefault(d.logger)
		d.logger = nil
	}
	d.screen.Fini()
}

func (d *Debugger) pollEvents() {
	for d.screen.HasPendingEvent() {
		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if isQuitKey(ev) {
				d.requestQuit("key")
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	default:
		return false
	}
}

func (d *Debugger) requestQuit(source string) {
	if d.quitRequested {
		return
	}
	d.quitRequested = true
	slog.Info("Quit requested", "source", source)
	if d.onQuit != nil {
		d.onQuit()
	}
}
