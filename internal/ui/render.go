// Package ui renders machine state to a terminal: a per-step frame showing
// the fired transition, the step counter, and a window of each tape around
// its head, plus the final summary line.
//
// Rendering is a pure projection over the machine's introspection surface;
// nothing here mutates the machine, so re-rendering without an intervening
// step produces identical output.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/haricheung/tapemul/internal/machine"
)

// ANSI codes
const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"

	clearScreen = "\033[2J\033[H"
)

// headMark labels the column each tape's head sits in. Windows are centred
// on their tape's own head, so one marker line serves all tapes.
const headMark = "R"

// Renderer writes machine frames to a single output stream.
type Renderer struct {
	out     io.Writer
	padding int
	color   bool
}

// New creates a Renderer writing to out. padding is the window half-width:
// each tape row shows 2*padding+1 cells centred on the head.
func New(out io.Writer, padding int) *Renderer {
	return &Renderer{out: out, padding: padding}
}

// SetColor toggles ANSI colouring of the head cell and transition block.
func (r *Renderer) SetColor(on bool) {
	r.color = on
}

// Clear wipes the terminal and homes the cursor.
func (r *Renderer) Clear() {
	fmt.Fprint(r.out, clearScreen)
}

// Frame writes one full step frame: operands banner, last fired transition,
// step counter, head marker, and one row per tape.
func (r *Renderer) Frame(m *machine.Machine) {
	fmt.Fprintf(r.out, "Computing %d x %d\n\n", m.Multiplier(), m.Multiplicand())

	fmt.Fprintln(r.out, "Current State:")
	if tr, ok := m.Last(); ok {
		next := "HALT"
		if tr.Next != machine.StateHalt {
			next = strconv.Itoa(tr.Next)
		}
		fmt.Fprintf(r.out, " Number: %d\n Read:   %s\n Write:  %s\n Move:   %s\n Next:   %s\n",
			tr.State, tr.Read, tr.Write, tr.Move, next)
	} else {
		fmt.Fprint(r.out, " Number:\n Read:\n Write:\n Move:\n Next:\n")
	}

	fmt.Fprintf(r.out, "\nStep #%d\n\n", m.Steps())

	fmt.Fprintf(r.out, "%s%s\n", strings.Repeat(" ", r.markerColumn(m)), headMark)
	for i := 0; i < machine.TapeCount; i++ {
		fmt.Fprintln(r.out, r.tapeRow(m.Window(i, r.padding)))
	}
}

// Summary writes the final result line once the machine has halted.
func (r *Renderer) Summary(m *machine.Machine) {
	fmt.Fprintf(r.out, "\nComputing done: %d x %d = %d in %d steps.\n",
		m.Multiplier(), m.Multiplicand(), m.Result(), m.Steps())
}

// markerColumn returns the display column of the centre cell's symbol, i.e.
// the width of the leading "|" plus every cell left of centre with its
// trailing separator. Cell widths go through runewidth so the marker stays
// aligned even for symbols wider than one terminal column.
func (r *Renderer) markerColumn(m *machine.Machine) int {
	cells := m.Window(0, r.padding)
	col := 1
	for _, c := range cells[:r.padding] {
		col += runewidth.StringWidth(c) + 1
	}
	return col
}

// tapeRow renders one window as "|c|c|c|...". With colour enabled the head
// cell (window centre) is highlighted.
func (r *Renderer) tapeRow(cells []string) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i, c := range cells {
		if r.color && i == len(cells)/2 {
			sb.WriteString(ansiCyan)
			sb.WriteString(c)
			sb.WriteString(ansiReset)
		} else {
			sb.WriteString(c)
		}
		sb.WriteByte('|')
	}
	return sb.String()
}
