package machine

import (
	"errors"
	"fmt"
)

// Symbol is one cell value from the machine's alphabet: '0', '1', or Blank.
type Symbol byte

const (
	SymbolZero Symbol = '0'
	SymbolOne  Symbol = '1'
	Blank      Symbol = 'B'
)

// Direction moves a tape head after a write.
type Direction byte

const (
	Left  Direction = 'L'
	Right Direction = 'R'
	None  Direction = 'N'
)

// ErrInvalidDirection reports a move instruction outside {L, R, N}.
// It can only come from a corrupted transition table, so callers treat it as fatal.
var ErrInvalidDirection = errors.New("invalid head direction")

// Tape is an unbounded, sparsely populated sequence of symbols with a
// read/write head. Cells never written read as Blank, and the head may move
// arbitrarily far in either direction, including into negative positions.
//
// Expectations:
//   - Read never fails: an absent cell is Blank
//   - Write always succeeds, creating the cell if absent
//   - A Tape is exclusively owned by one Machine; no synchronisation
type Tape struct {
	cells map[int]Symbol
	head  int
}

// NewTape creates a tape whose cells hold initial starting at position 0.
// An empty initial string yields an all-blank tape.
func NewTape(initial string) *Tape {
	cells := make(map[int]Symbol, len(initial))
	for i := 0; i < len(initial); i++ {
		cells[i] = Symbol(initial[i])
	}
	return &Tape{cells: cells}
}

// Read returns the symbol under the head, or Blank for an unvisited cell.
func (t *Tape) Read() Symbol {
	if s, ok := t.cells[t.head]; ok {
		return s
	}
	return Blank
}

// Write sets the cell under the head, overwriting silently.
func (t *Tape) Write(s Symbol) {
	t.cells[t.head] = s
}

// Move shifts the head one cell in the given direction (or not at all for None).
// Any other direction is a contract violation and returns ErrInvalidDirection.
func (t *Tape) Move(d Direction) error {
	switch d {
	case Left:
		t.head--
	case Right:
		t.head++
	case None:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, byte(d))
	}
	return nil
}

// Head returns the current head position.
func (t *Tape) Head() int {
	return t.head
}

// OccupiedCount returns the number of cells holding a non-blank symbol.
// The result of a computation is read off the product tape this way.
func (t *Tape) OccupiedCount() int {
	n := 0
	for _, s := range t.cells {
		if s != Blank {
			n++
		}
	}
	return n
}

// Window returns a read-only projection of 2*padding+1 display cells centred
// on the head. Blank and unvisited cells render as a single space. Calling
// Window never mutates the tape, so repeated calls without an intervening
// Write or Move return identical slices.
func (t *Tape) Window(padding int) []string {
	cells := make([]string, 0, 2*padding+1)
	for pos := t.head - padding; pos <= t.head+padding; pos++ {
		s, ok := t.cells[pos]
		if !ok || s == Blank {
			cells = append(cells, " ")
		} else {
			cells = append(cells, string(byte(s)))
		}
	}
	return cells
}
