package game

import "testing"

func TestRosterSidesAreDisjoint(t *testing.T) {
	r := NewRoster()
	if err := r.AddRunner("alice"); err != nil {
		t.Fatalf("AddRunner: %v", err)
	}
	if err := r.AddHunter("alice"); err != ErrAlreadyPlaying {
		t.Fatalf("expected ErrAlreadyPlaying, got %v", err)
	}
	if err := r.AddHunter("bob"); err != nil {
		t.Fatalf("AddHunter: %v", err)
	}
	if got := r.Side("alice"); got != SideRunner {
		t.Fatalf("alice side: %q", got)
	}
	if got := r.Side("bob"); got != SideHunter {
		t.Fatalf("bob side: %q", got)
	}
}

func TestRosterMoveToHunter(t *testing.T) {
	r := NewRoster()
	_ = r.AddRunner("alice")
	_ = r.AddHunter("bob")

	if err := r.MoveToHunter("bob"); err != ErrNotARunner {
		t.Fatalf("hunter move: expected ErrNotARunner, got %v", err)
	}
	if err := r.MoveToHunter("carol"); err != ErrNotARunner {
		t.Fatalf("stranger move: expected ErrNotARunner, got %v", err)
	}
	if err := r.MoveToHunter("alice"); err != nil {
		t.Fatalf("MoveToHunter: %v", err)
	}
	if r.RunnerCount() != 0 || r.HunterCount() != 2 {
		t.Fatalf("counts after move: %d runners %d hunters", r.RunnerCount(), r.HunterCount())
	}
}

func TestRosterRemoveReportsSide(t *testing.T) {
	r := NewRoster()
	_ = r.AddRunner("alice")
	_ = r.AddHunter("bob")

	side, err := r.Remove("bob")
	if err != nil || side != SideHunter {
		t.Fatalf("Remove(bob) = %q, %v", side, err)
	}
	if _, err := r.Remove("bob"); err != ErrNotAPlayer {
		t.Fatalf("double remove: expected ErrNotAPlayer, got %v", err)
	}
	if r.Contains("bob") {
		t.Fatalf("bob still present after remove")
	}
}

func TestRosterPlayersJoinOrder(t *testing.T) {
	r := NewRoster()
	_ = r.AddRunner("alice")
	_ = r.AddHunter("bob")
	_ = r.AddRunner("carol")
	_, _ = r.Remove("bob")
	_ = r.AddHunter("dave")

	players := r.Players()
	want := []string{"alice", "carol", "dave"}
	if len(players) != len(want) {
		t.Fatalf("player count: %d", len(players))
	}
	for i, p := range players {
		if p.Name != want[i] {
			t.Fatalf("players[%d] = %q, want %q", i, p.Name, want[i])
		}
	}
}
