package location

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/redis/go-redis/v9"
)

// Errors
var (
	ErrTooSimilar = errf("location too closely matches an existing entry")
	ErrNotFound   = errf("location not found")
	ErrEmpty      = errf("no end locations configured")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// Catalog is the curated list of candidate end locations, kept as an
// ordered Redis list. Adds are fuzzy-checked against existing entries
// so near-duplicate spellings are rejected.
type Catalog struct {
	rdb       *redis.Client
	threshold float64
	sim       *metrics.Levenshtein
}

// NewCatalog builds a catalog. threshold is the similarity ratio at or
// above which an add is rejected; values outside (0,1] fall back to 0.75.
func NewCatalog(rdb *redis.Client, threshold float64) *Catalog {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.75
	}
	return &Catalog{rdb: rdb, threshold: threshold, sim: metrics.NewLevenshtein()}
}

func (c *Catalog) key() string { return "manhunt:locations" }

// ListAll returns every location in insertion order.
func (c *Catalog) ListAll(ctx context.Context) ([]string, error) {
	return c.rdb.LRange(ctx, c.key(), 0, -1).Result()
}

// IsKnown reports whether loc is an exact catalog entry.
func (c *Catalog) IsKnown(ctx context.Context, loc string) (bool, error) {
	all, err := c.ListAll(ctx)
	if err != nil {
		return false, err
	}
	for _, l := range all {
		if l == loc {
			return true, nil
		}
	}
	return false, nil
}

// Random picks a uniformly random location.
func (c *Catalog) Random(ctx context.Context) (string, error) {
	all, err := c.ListAll(ctx)
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", ErrEmpty
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(all))))
	if err != nil {
		return "", err
	}
	return all[n.Int64()], nil
}

// Add appends a new location unless it fuzzily matches an existing one.
func (c *Catalog) Add(ctx context.Context, loc string) error {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return ErrNotFound
	}
	all, err := c.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, existing := range all {
		if strutil.Similarity(loc, existing, c.sim) >= c.threshold {
			return ErrTooSimilar
		}
	}
	return c.rdb.RPush(ctx, c.key(), loc).Err()
}

// Closest returns the existing entry most similar to loc, for
// explaining a rejected add. Empty when the catalog is empty.
func (c *Catalog) Closest(ctx context.Context, loc string) (string, error) {
	all, err := c.ListAll(ctx)
	if err != nil {
		return "", err
	}
	best, bestScore := "", -1.0
	for _, existing := range all {
		if score := strutil.Similarity(loc, existing, c.sim); score > bestScore {
			best, bestScore = existing, score
		}
	}
	return best, nil
}

// Remove deletes an exact entry.
func (c *Catalog) Remove(ctx context.Context, loc string) error {
	n, err := c.rdb.LRem(ctx, c.key(), 0, loc).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
