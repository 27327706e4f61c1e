// Command tapemul runs the three-tape unary-multiplication Turing machine.
//
// Usage:
//
//	tapemul [flags] multiplier multiplicand
//
// The two positional arguments are non-negative integers. Flags select
// per-step rendering, interactive single-stepping, an inter-step delay, and
// screen clearing; -history lists previously journalled runs instead of
// computing anything.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"github.com/haricheung/tapemul/internal/config"
	"github.com/haricheung/tapemul/internal/machine"
	"github.com/haricheung/tapemul/internal/runlog"
	"github.com/haricheung/tapemul/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))

	fs := flag.NewFlagSet("tapemul", flag.ContinueOnError)
	var (
		interactive bool
		sleep       bool
		printSteps  bool
		clear       bool
		color       bool
		history     int
		noLog       bool
	)
	fs.BoolVar(&interactive, "interactive", false, "pause for Enter after each step")
	fs.BoolVar(&interactive, "i", false, "shorthand for -interactive")
	fs.BoolVar(&sleep, "sleep", false, "delay between steps (TAPEMUL_DELAY, default 100ms)")
	fs.BoolVar(&sleep, "s", false, "shorthand for -sleep")
	fs.BoolVar(&printSteps, "print", false, "render machine state after each step")
	fs.BoolVar(&printSteps, "p", false, "shorthand for -print")
	fs.BoolVar(&clear, "clear", false, "clear the screen between frames")
	fs.BoolVar(&clear, "c", false, "shorthand for -clear")
	fs.BoolVar(&color, "color", false, "highlight the head cell with ANSI colour")
	fs.IntVar(&history, "history", 0, "print the last N journalled runs and exit")
	fs.BoolVar(&noLog, "no-log", false, "do not journal this run")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: tapemul [flags] multiplier multiplicand\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if history > 0 {
		return printHistory(cfg.DBPath, history)
	}

	multiplier, multiplicand, ok := parseOperands(fs.Args())
	if !ok {
		fs.Usage()
		return 2
	}

	m, err := machine.New(multiplier, multiplicand)
	if err != nil {
		slog.Error("invalid machine input", "error", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := ui.New(os.Stdout, cfg.Padding)
	renderer.SetColor(color)

	var rl *readline.Instance
	if interactive {
		rl, err = readline.New("")
		if err != nil {
			slog.Error("cannot initialise interactive input", "error", err)
			return 1
		}
		defer rl.Close()
	}

	started := time.Now()
	onStep := func(machine.Transition) error {
		if clear {
			renderer.Clear()
		}
		if printSteps {
			renderer.Frame(m)
		}
		if sleep {
			time.Sleep(cfg.Delay)
		}
		if interactive {
			if _, err := rl.Readline(); err != nil {
				return fmt.Errorf("interactive pause: %w", err)
			}
		}
		return nil
	}

	if err := m.Run(ctx, onStep); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, readline.ErrInterrupt) {
			slog.Info("run interrupted", "steps", m.Steps())
			return 130
		}
		slog.Error("run aborted", "error", err, "steps", m.Steps())
		return 1
	}

	renderer.Summary(m)

	if !noLog {
		recordRun(cfg.DBPath, m, time.Since(started))
	}
	return 0
}

// parseOperands validates exactly two non-negative integer positionals.
func parseOperands(args []string) (multiplier, multiplicand int, ok bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	multiplier, err := strconv.Atoi(args[0])
	if err != nil || multiplier < 0 {
		return 0, 0, false
	}
	multiplicand, err = strconv.Atoi(args[1])
	if err != nil || multiplicand < 0 {
		return 0, 0, false
	}
	return multiplier, multiplicand, true
}

// recordRun journals the completed computation. Journal trouble is reported
// but never fails the run: the result already went to stdout.
func recordRun(dbPath string, m *machine.Machine, elapsed time.Duration) {
	j, err := runlog.Open(dbPath)
	if err != nil {
		slog.Warn("run journal unavailable", "path", dbPath, "error", err)
		return
	}
	defer j.Close()

	_, err = j.Record(runlog.Entry{
		Multiplier:   m.Multiplier(),
		Multiplicand: m.Multiplicand(),
		Result:       m.Result(),
		Steps:        m.Steps(),
		ElapsedMs:    elapsed.Milliseconds(),
	})
	if err != nil {
		slog.Warn("could not journal run", "error", err)
	}
}

func printHistory(dbPath string, n int) int {
	j, err := runlog.Open(dbPath)
	if err != nil {
		slog.Error("run journal unavailable", "path", dbPath, "error", err)
		return 1
	}
	defer j.Close()

	entries, err := j.Recent(n)
	if err != nil {
		slog.Error("could not read run journal", "error", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Println("no journalled runs yet")
		return 0
	}
	printEntries(os.Stdout, entries)
	return 0
}

func printEntries(w io.Writer, entries []runlog.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %d x %d = %d  (%d steps, %dms)\n",
			e.RecordedAt, e.Multiplier, e.Multiplicand, e.Result, e.Steps, e.ElapsedMs)
	}
}
