package location

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCatalog(t *testing.T) (*Catalog, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCatalog(rdb, 0.75), func() { mr.Close() }
}

func TestAddAndList(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	for _, loc := range []string{"Library", "Old Mill", "Water Tower"} {
		if err := c.Add(ctx, loc); err != nil {
			t.Fatalf("Add(%q): %v", loc, err)
		}
	}
	all, err := c.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 || all[0] != "Library" || all[2] != "Water Tower" {
		t.Fatalf("ListAll: %v", all)
	}
}

func TestAddRejectsNearDuplicates(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	if err := c.Add(ctx, "Library"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(ctx, "Libary"); err != ErrTooSimilar {
		t.Fatalf("near-duplicate: %v", err)
	}
	if err := c.Add(ctx, "Zoo"); err != nil {
		t.Fatalf("distinct add: %v", err)
	}

	closest, err := c.Closest(ctx, "Libary")
	if err != nil || closest != "Library" {
		t.Fatalf("Closest: %q, %v", closest, err)
	}
}

func TestIsKnownIsExact(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	if err := c.Add(ctx, "Old Mill"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	known, err := c.IsKnown(ctx, "Old Mill")
	if err != nil || !known {
		t.Fatalf("IsKnown(exact): %v, %v", known, err)
	}
	known, err = c.IsKnown(ctx, "old mill")
	if err != nil || known {
		t.Fatalf("IsKnown(case mismatch): %v, %v", known, err)
	}
}

func TestRandomFromEmptyCatalog(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := c.Random(ctx); err != ErrEmpty {
		t.Fatalf("Random(empty): %v", err)
	}
	if err := c.Add(ctx, "Old Mill"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	loc, err := c.Random(ctx)
	if err != nil || loc != "Old Mill" {
		t.Fatalf("Random: %q, %v", loc, err)
	}
}

func TestRemove(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	if err := c.Add(ctx, "Old Mill"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Remove(ctx, "Old Mill"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove(ctx, "Old Mill"); err != ErrNotFound {
		t.Fatalf("double remove: %v", err)
	}
}
