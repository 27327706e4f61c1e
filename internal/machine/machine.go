// Package machine implements a deterministic three-tape Turing machine that
// multiplies two non-negative integers in unary encoding.
//
// The program is a hardwired transition table; the engine is the tape
// abstraction plus the step loop that drives the table to its halting state.
// Everything here is single-threaded and synchronous: a Machine owns its
// tapes exclusively and advances only through Step.
package machine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TapeCount is the number of tapes the program is written for. Tape 0 carries
// the unary-encoded input, tape 1 is working storage for the multiplier, and
// tape 2 accumulates the product.
const TapeCount = 3

// ResultTape is the index of the product tape.
const ResultTape = 2

// ErrHalted reports a Step call on a machine that already reached HALT.
var ErrHalted = errors.New("machine already halted")

// Machine drives the unary-multiplication program over three tapes.
//
// Expectations:
//   - Step is the sole state-advancing primitive
//   - The step counter increments once per Step attempt, final step included
//   - After Halted reports true, further Step calls fail with ErrHalted
type Machine struct {
	multiplier   int
	multiplicand int
	tapes        [TapeCount]*Tape
	steps        int
	last         *Transition
}

// New builds a machine computing multiplier x multiplicand. The first tape is
// initialised to multiplier '0's, a '1' separator, and multiplicand '0's,
// written from position 0; the other tapes start blank. Negative operands are
// rejected.
func New(multiplier, multiplicand int) (*Machine, error) {
	if multiplier < 0 || multiplicand < 0 {
		return nil, fmt.Errorf("operands must be non-negative, got %d x %d", multiplier, multiplicand)
	}
	m := &Machine{multiplier: multiplier, multiplicand: multiplicand}
	initial := strings.Repeat("0", multiplier) + "1" + strings.Repeat("0", multiplicand)
	m.tapes[0] = NewTape(initial)
	for i := 1; i < TapeCount; i++ {
		m.tapes[i] = NewTape("")
	}
	return m, nil
}

// Multiplier returns the first operand.
func (m *Machine) Multiplier() int { return m.multiplier }

// Multiplicand returns the second operand.
func (m *Machine) Multiplicand() int { return m.multiplicand }

// Steps returns the number of steps attempted so far.
func (m *Machine) Steps() int { return m.steps }

// Last returns the most recently fired transition, or false before the first
// step.
func (m *Machine) Last() (Transition, bool) {
	if m.last == nil {
		return Transition{}, false
	}
	return *m.last, true
}

// Halted reports whether the last fired transition declared HALT as its
// successor.
func (m *Machine) Halted() bool {
	return m.last != nil && m.last.Next == StateHalt
}

// Result returns the occupied-cell count of the product tape: the
// unary-encoded multiplication result. Meaningful once Halted is true.
func (m *Machine) Result() int {
	return m.tapes[ResultTape].OccupiedCount()
}

// Window returns the display window of tape i centred on its head. See
// Tape.Window.
func (m *Machine) Window(i, padding int) []string {
	return m.tapes[i].Window(padding)
}

// Head returns the head position of tape i.
func (m *Machine) Head(i int) int {
	return m.tapes[i].Head()
}

// readKey concatenates the symbol under each tape's head, in tape order.
func (m *Machine) readKey() string {
	var sb strings.Builder
	sb.Grow(TapeCount)
	for _, t := range m.tapes {
		sb.WriteByte(byte(t.Read()))
	}
	return sb.String()
}

// apply writes t.Write[i] to tape i and then moves its head per t.Move[i],
// in tape order. Each tape's write-then-move touches only that tape, so the
// cross-tape ordering carries no semantics.
func (m *Machine) apply(t Transition) error {
	for i, tape := range m.tapes {
		tape.Write(Symbol(t.Write[i]))
		if err := tape.Move(Direction(t.Move[i])); err != nil {
			return fmt.Errorf("tape %d: %w", i, err)
		}
	}
	return nil
}

// Step advances the machine by one transition: it increments the step
// counter, looks up the row matching the composite read key under the
// previous transition's declared successor, applies it, and returns it.
// Stepping a halted machine fails with ErrHalted; a failed lookup or a
// malformed move pattern aborts with the underlying error.
func (m *Machine) Step() (Transition, error) {
	if m.Halted() {
		return Transition{}, ErrHalted
	}
	m.steps++
	t, err := findTransition(m.readKey(), m.last)
	if err != nil {
		return Transition{}, err
	}
	if err := m.apply(t); err != nil {
		return Transition{}, err
	}
	m.last = &t
	return t, nil
}

// Run steps the machine until it halts. After every step the optional onStep
// callback is invoked with the fired transition; it runs synchronously
// between steps and may block (render, sleep, wait for a keypress) without
// affecting engine invariants. A non-nil callback error aborts the run, as
// does ctx cancellation between steps.
func (m *Machine) Run(ctx context.Context, onStep func(Transition) error) error {
	for !m.Halted() {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := m.Step()
		if err != nil {
			return err
		}
		if onStep != nil {
			if err := onStep(t); err != nil {
				return err
			}
		}
	}
	return nil
}
