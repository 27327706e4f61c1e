package machine

import (
	"errors"
	"fmt"
)

// StateHalt is the terminal sentinel: a transition whose Next is StateHalt
// stops the machine.
const StateHalt = -1

// Transition is one row of the machine's program: in state State, when the
// composite read key across all tapes equals Read, write Write, move the heads
// per Move, and continue in state Next. Rows are immutable once the table is
// built.
type Transition struct {
	State int
	Read  string
	Write string
	Move  string
	Next  int
}

// String renders the row for display, e.g. "2: 00B/00B NLN -> 2".
func (t Transition) String() string {
	next := "HALT"
	if t.Next != StateHalt {
		next = fmt.Sprintf("%d", t.Next)
	}
	return fmt.Sprintf("%d: %s/%s %s -> %s", t.State, t.Read, t.Write, t.Move, next)
}

// transitionTable is the hardwired unary-multiplication program.
//
// State 0 copies the multiplier onto tape 1 while erasing it from tape 0,
// consumes the '1' separator, and hands over to state 1. States 1-3 then walk
// tape 1 back and forth once per remaining multiplicand digit, appending a '0'
// to the product tape for each pass. An all-blank read in state 1 means the
// multiplicand is exhausted and the machine halts.
var transitionTable = []Transition{
	{State: 0, Read: "0BB", Write: "B0B", Move: "RRN", Next: 0},
	{State: 0, Read: "1BB", Write: "BBB", Move: "RNN", Next: 1},
	{State: 1, Read: "0BB", Write: "0BB", Move: "NLN", Next: 2},
	{State: 1, Read: "BBB", Write: "BBB", Move: "NNN", Next: StateHalt},
	{State: 2, Read: "00B", Write: "00B", Move: "NLN", Next: 2},
	{State: 2, Read: "0BB", Write: "0BB", Move: "NRN", Next: 3},
	{State: 3, Read: "0BB", Write: "BBB", Move: "RNN", Next: 1},
	{State: 3, Read: "00B", Write: "000", Move: "NRR", Next: 3},
}

// transitionKey addresses a row by the state the machine must be in and the
// composite symbol it must read there.
type transitionKey struct {
	state int
	read  string
}

// transitionIndex resolves (required state, composite read key) lookups;
// entryIndex resolves the very first lookup, when no prior transition
// constrains the state. Both are built once from transitionTable in definition
// order, first row wins, which preserves the table's scan semantics.
var (
	transitionIndex map[transitionKey]Transition
	entryIndex      map[string]Transition
)

func init() {
	transitionIndex = make(map[transitionKey]Transition, len(transitionTable))
	entryIndex = make(map[string]Transition, len(transitionTable))
	for _, t := range transitionTable {
		k := transitionKey{state: t.State, read: t.Read}
		if _, dup := transitionIndex[k]; !dup {
			transitionIndex[k] = t
		}
		if _, dup := entryIndex[t.Read]; !dup {
			entryIndex[t.Read] = t
		}
	}
}

// ErrNoMatchingTransition reports a composite read key with no table row under
// the required state. It means the table is malformed or the machine left its
// designed configuration space; the run must abort.
var ErrNoMatchingTransition = errors.New("no matching transition")

// findTransition returns the row for the composite read key, constrained by
// the previous transition's declared successor. A nil previous transition
// matches the first row for the key regardless of state (machine entry).
func findTransition(key string, previous *Transition) (Transition, error) {
	if previous == nil {
		if t, ok := entryIndex[key]; ok {
			return t, nil
		}
		return Transition{}, fmt.Errorf("%w for read key %q at machine entry", ErrNoMatchingTransition, key)
	}
	if t, ok := transitionIndex[transitionKey{state: previous.Next, read: key}]; ok {
		return t, nil
	}
	return Transition{}, fmt.Errorf("%w for read key %q in state %d", ErrNoMatchingTransition, key, previous.Next)
}
