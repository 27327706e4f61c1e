package machine

import (
	"errors"
	"strings"
	"testing"
)

// --- Read / Write ---

func TestTapeRead_UnvisitedCellIsBlank(t *testing.T) {
	// Reading any never-written position returns Blank.
	tape := NewTape("")
	if got := tape.Read(); got != Blank {
		t.Errorf("expected Blank on empty tape, got %q", byte(got))
	}
	if err := tape.Move(Left); err != nil {
		t.Fatal(err)
	}
	if got := tape.Read(); got != Blank {
		t.Errorf("expected Blank at negative position, got %q", byte(got))
	}
}

func TestTapeWrite_ThenReadReturnsWrittenValue(t *testing.T) {
	// Writing then reading the same position (no intervening move) round-trips.
	tape := NewTape("")
	tape.Write(SymbolZero)
	if got := tape.Read(); got != SymbolZero {
		t.Errorf("expected %q, got %q", byte(SymbolZero), byte(got))
	}
	tape.Write(SymbolOne)
	if got := tape.Read(); got != SymbolOne {
		t.Errorf("overwrite failed: expected %q, got %q", byte(SymbolOne), byte(got))
	}
}

func TestTapeNewTape_InitialStringStartsAtZero(t *testing.T) {
	// NewTape writes the initial string from position 0 rightward.
	tape := NewTape("010")
	if got := tape.Read(); got != SymbolZero {
		t.Errorf("position 0: expected '0', got %q", byte(got))
	}
	if err := tape.Move(Right); err != nil {
		t.Fatal(err)
	}
	if got := tape.Read(); got != SymbolOne {
		t.Errorf("position 1: expected '1', got %q", byte(got))
	}
}

// --- Move ---

func TestTapeMove_Directions(t *testing.T) {
	// Left decrements, Right increments, None leaves the head in place.
	tape := NewTape("")
	if err := tape.Move(Right); err != nil {
		t.Fatal(err)
	}
	if tape.Head() != 1 {
		t.Errorf("expected head 1 after Right, got %d", tape.Head())
	}
	if err := tape.Move(None); err != nil {
		t.Fatal(err)
	}
	if tape.Head() != 1 {
		t.Errorf("expected head 1 after None, got %d", tape.Head())
	}
	for i := 0; i < 3; i++ {
		if err := tape.Move(Left); err != nil {
			t.Fatal(err)
		}
	}
	if tape.Head() != -2 {
		t.Errorf("expected head -2 after three Lefts, got %d", tape.Head())
	}
}

func TestTapeMove_InvalidDirectionFails(t *testing.T) {
	// Any direction outside {L, R, N} is a contract violation.
	tape := NewTape("")
	err := tape.Move(Direction('X'))
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	if tape.Head() != 0 {
		t.Errorf("head moved on invalid direction: %d", tape.Head())
	}
}

// --- OccupiedCount ---

func TestTapeOccupiedCount_IgnoresBlanks(t *testing.T) {
	// Only non-blank cells count, explicit 'B' writes included.
	tape := NewTape("0B0")
	if got := tape.OccupiedCount(); got != 2 {
		t.Errorf("expected 2 occupied cells, got %d", got)
	}
	tape.Write(Blank) // overwrite the '0' at position 0
	if got := tape.OccupiedCount(); got != 1 {
		t.Errorf("expected 1 after blanking position 0, got %d", got)
	}
}

func TestTapeOccupiedCount_EmptyTapeIsZero(t *testing.T) {
	tape := NewTape("")
	if got := tape.OccupiedCount(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

// --- Window ---

func TestTapeWindow_WidthAndCentre(t *testing.T) {
	// Window returns 2*padding+1 cells with the head's cell in the middle.
	tape := NewTape("01")
	cells := tape.Window(3)
	if len(cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(cells))
	}
	if cells[3] != "0" {
		t.Errorf("expected '0' at centre, got %q", cells[3])
	}
	if cells[4] != "1" {
		t.Errorf("expected '1' right of centre, got %q", cells[4])
	}
	if cells[0] != " " || cells[6] != " " {
		t.Errorf("expected blank padding at the edges, got %q and %q", cells[0], cells[6])
	}
}

func TestTapeWindow_BlankRendersAsSpace(t *testing.T) {
	// Explicitly written blanks and unvisited cells both render as a space.
	tape := NewTape("B")
	cells := tape.Window(1)
	if strings.Join(cells, "") != "   " {
		t.Errorf("expected all spaces, got %q", strings.Join(cells, ""))
	}
}

func TestTapeWindow_Idempotent(t *testing.T) {
	// Repeated calls without mutation return identical projections.
	tape := NewTape("010")
	first := strings.Join(tape.Window(5), "|")
	second := strings.Join(tape.Window(5), "|")
	if first != second {
		t.Errorf("window changed between calls: %q vs %q", first, second)
	}
}
