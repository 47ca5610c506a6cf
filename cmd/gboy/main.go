package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-gboy/gboy"
	"github.com/valerio/go-gboy/gboy/cpu"
	"github.com/valerio/go-gboy/gboy/debugger/terminal"
)

// levelNone is above every level in use, nothing gets logged.
const levelNone = slog.LevelError + 4

var levels = []slog.Level{levelNone, slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug, cpu.LevelTrace}

// logLevel maps the --debug verbosity (none, error, warn, info, debug, trace) to a slog level.
// Values past the last level select trace.
func logLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return levelNone
	case verbosity >= len(levels):
		return levels[len(levels)-1]
	default:
		return levels[verbosity]
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "gboy"
	app.Description = "A Game Boy CPU emulator"
	app.Usage = "gboy [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file (.gb, .gz, .zst, .xz, .lz4, .br, .zip, .7z)",
		},
		cli.StringFlag{
			Name:  "bootrom",
			Usage: "Path to the boot rom, skipped when not set",
		},
		cli.BoolFlag{
			Name:  "debugger",
			Usage: "Run with the terminal debugger",
		},
		cli.IntFlag{
			Name:  "debug",
			Usage: "Log verbosity: 0=none 1=error 2=warn 3=info 4=debug 5=trace",
			Value: 0,
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		// reported even when logging is disabled
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	level := logLevel(c.Int("debug"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var observer cpu.Observer = cpu.NopObserver{}
	var dbg *terminal.Debugger
	if c.Bool("debugger") {
		var err error
		dbg, err = newDebugger(level)
		if err != nil {
			slog.Error("Could not open debugger, running headless", "error", err)
		} else {
			defer dbg.Close()
			observer = dbg
		}
	}

	emu, err := gboy.NewWithFile(romPath, c.String("bootrom"), observer)
	if err != nil {
		return err
	}
	if dbg != nil {
		dbg.OnQuit(emu.Stop)
	}

	return emu.Run()
}

func newDebugger(level slog.Level) (*terminal.Debugger, error) {
	screen, err := terminal.NewScreen()
	if err != nil {
		return nil, err
	}
	return terminal.New(screen, terminal.Config{Level: level, HoldOnQuit: true})
}
