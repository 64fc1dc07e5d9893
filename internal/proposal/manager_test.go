package proposal

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) (*Manager, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewManager(rdb), func() { mr.Close() }
}

func TestOpenAndCurrent(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := m.Current(ctx); err != ErrNoneOpen {
		t.Fatalf("Current(empty): %v", err)
	}

	p, err := m.Open(ctx, "msg-123", "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Ref != "msg-123" || p.SuggestedBy != "alice" {
		t.Fatalf("pending: %+v", p)
	}

	got, err := m.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Ref != "msg-123" || got.SuggestedBy != "alice" {
		t.Fatalf("Current: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("created-at not persisted")
	}
}

func TestSecondOpenRejected(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := m.Open(ctx, "msg-1", "alice"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := m.Open(ctx, "msg-2", "bob"); err != ErrAlreadyOpen {
		t.Fatalf("second Open: %v", err)
	}
}

func TestReplaceOverridesStaleRef(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()
	ctx := context.Background()

	// A ref surviving a process restart blocks Open.
	if _, err := m.Open(ctx, "msg-old", "alice"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := m.Open(ctx, "msg-new", "bob"); err != ErrAlreadyOpen {
		t.Fatalf("Open over stale ref: %v", err)
	}

	// Replace must make the freshly accepted suggestion win, so a
	// later start collects reactions from the new message.
	if _, err := m.Replace(ctx, "msg-new", "bob"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err := m.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Ref != "msg-new" || got.SuggestedBy != "bob" {
		t.Fatalf("Current after replace: %+v", got)
	}
}

func TestOpenGeneratesRefWhenMissing(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	p, err := m.Open(context.Background(), "  ", "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Ref == "" {
		t.Fatalf("expected generated ref")
	}
}

func TestClearReopens(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := m.Open(ctx, "msg-1", "alice"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := m.Current(ctx); err != ErrNoneOpen {
		t.Fatalf("Current after clear: %v", err)
	}
	if _, err := m.Open(ctx, "msg-2", "bob"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}
