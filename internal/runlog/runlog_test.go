package runlog

import (
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir() + "/runs")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecord_AssignsIDAndTimestamp(t *testing.T) {
	j := openTestJournal(t)

	stored, err := j.Record(Entry{Multiplier: 2, Multiplicand: 3, Result: 6, Steps: 19})
	if err != nil {
		t.Fatal(err)
	}
	if stored.ID == "" {
		t.Error("expected a generated ID")
	}
	if stored.RecordedAt == "" {
		t.Error("expected a generated timestamp")
	}
}

func TestRecord_ThenRecentRoundTrips(t *testing.T) {
	j := openTestJournal(t)

	want := Entry{Multiplier: 3, Multiplicand: 3, Result: 9, Steps: 33, ElapsedMs: 12}
	if _, err := j.Record(want); err != nil {
		t.Fatal(err)
	}

	got, err := j.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	e := got[0]
	if e.Multiplier != 3 || e.Multiplicand != 3 || e.Result != 9 || e.Steps != 33 || e.ElapsedMs != 12 {
		t.Errorf("round trip mismatch: %+v", e)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	// Keys embed a fixed-width timestamp, so reverse key order is reverse
	// chronological order.
	j := openTestJournal(t)

	times := []string{
		"2026-08-30T10:00:00.000000000Z",
		"2026-08-30T11:00:00.000000000Z",
		"2026-08-30T12:00:00.000000000Z",
	}
	for i, ts := range times {
		if _, err := j.Record(Entry{Multiplier: i, RecordedAt: ts}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := j.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Multiplier != 2 || got[2].Multiplier != 0 {
		t.Errorf("expected newest first, got order %d,%d,%d",
			got[0].Multiplier, got[1].Multiplier, got[2].Multiplier)
	}
}

func TestRecent_LimitsToN(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 5; i++ {
		if _, err := j.Record(Entry{Multiplier: i}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := j.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 entries, got %d", len(got))
	}
}

func TestRecent_EmptyJournal(t *testing.T) {
	j := openTestJournal(t)

	got, err := j.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}
