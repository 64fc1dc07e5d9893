package gamelog

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb), func() { mr.Close() }
}

func TestAppendPreservesOrder(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	lines := []string{"START 2026-03-01 14:00:00", "14:05:01 PHASE HEADSTART END", "14:12:40 carol CATCH bob"}
	for _, l := range lines {
		if err := s.Append(ctx, l); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(lines) {
		t.Fatalf("line count: %d", len(got))
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Fatalf("line %d: %q, want %q", i, got[i], lines[i])
		}
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.Archive(ctx, "01032026140000", "line1\nline2"); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	got, err := s.ReadArchive(ctx, "01032026140000")
	if err != nil || got != "line1\nline2" {
		t.Fatalf("ReadArchive: %q, %v", got, err)
	}

	// Unknown keys read as empty, not as an error.
	got, err = s.ReadArchive(ctx, "nope")
	if err != nil || got != "" {
		t.Fatalf("ReadArchive(miss): %q, %v", got, err)
	}
}

func TestClearDropsOnlyLiveLog(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.Append(ctx, "a line"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Archive(ctx, "k", "kept"); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	lines, err := s.ReadAll(ctx)
	if err != nil || len(lines) != 0 {
		t.Fatalf("live log after clear: %v, %v", lines, err)
	}
	got, err := s.ReadArchive(ctx, "k")
	if err != nil || got != "kept" {
		t.Fatalf("archive after clear: %q, %v", got, err)
	}
}
