package game

import (
	"testing"
	"time"
)

func TestDurationsValid(t *testing.T) {
	if !DurationsFromMinutes(5, 70, 15).Valid() {
		t.Fatalf("expected valid durations")
	}
	bad := []Durations{
		DurationsFromMinutes(0, 70, 15),
		DurationsFromMinutes(5, 0, 15),
		DurationsFromMinutes(5, 70, 0),
		DurationsFromMinutes(-1, 70, 15),
	}
	for i, d := range bad {
		if d.Valid() {
			t.Fatalf("case %d: expected invalid durations %+v", i, d)
		}
	}
}

func TestBoundariesAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	b := BoundariesAt(start, DurationsFromMinutes(5, 70, 15))

	if got := b.HeadstartEnd; !got.Equal(start.Add(5 * time.Minute)) {
		t.Fatalf("headstart end: %v", got)
	}
	if got := b.MainGameEnd; !got.Equal(start.Add(75 * time.Minute)) {
		t.Fatalf("maingame end: %v", got)
	}
	if got := b.EndTimeEnd; !got.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("endtime end: %v", got)
	}
}

func TestCrossingsAreStrict(t *testing.T) {
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	b := BoundariesAt(start, DurationsFromMinutes(5, 70, 15))

	// Exactly on the boundary is not crossed.
	c := b.CrossingsAt(b.HeadstartEnd)
	if c.Headstart || c.MainGame || c.EndTime {
		t.Fatalf("boundary instant should not count as crossed: %+v", c)
	}

	c = b.CrossingsAt(b.HeadstartEnd.Add(time.Second))
	if !c.Headstart || c.MainGame || c.EndTime {
		t.Fatalf("expected only headstart crossed: %+v", c)
	}

	c = b.CrossingsAt(b.EndTimeEnd.Add(time.Second))
	if !c.Headstart || !c.MainGame || !c.EndTime {
		t.Fatalf("expected all crossed: %+v", c)
	}
}

func TestParsePhaseKey(t *testing.T) {
	for _, s := range []string{"headstart", "gametime", "endtime"} {
		k, err := ParsePhaseKey(s)
		if err != nil {
			t.Fatalf("ParsePhaseKey(%q): %v", s, err)
		}
		if string(k) != s {
			t.Fatalf("ParsePhaseKey(%q) = %q", s, k)
		}
	}
	if _, err := ParsePhaseKey("maingame"); err != ErrInvalidPhase {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}
}
