package proposal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Errors
var (
	ErrAlreadyOpen = errf("a suggestion is already open")
	ErrNoneOpen    = errf("no suggestion is open")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// Pending is the persisted invitation artifact: the message the
// players react to, and who posted it.
type Pending struct {
	Ref         string
	SuggestedBy string
	CreatedAt   time.Time
}

// Manager tracks the single open suggestion in Redis so it survives a
// process restart between suggest and start.
type Manager struct{ rdb *redis.Client }

func NewManager(rdb *redis.Client) *Manager { return &Manager{rdb: rdb} }

func (m *Manager) keyRef() string { return "manhunt:suggestion:ref" }
func (m *Manager) keyBy() string  { return "manhunt:suggestion:by" }
func (m *Manager) keyAt() string  { return "manhunt:suggestion:at" }

// Open records a new suggestion. The SetNX guard makes two concurrent
// suggest commands resolve to exactly one winner.
func (m *Manager) Open(ctx context.Context, ref, suggestedBy string) (*Pending, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = uuid.NewString()
	}
	now := time.Now()
	ok, err := m.rdb.SetNX(ctx, m.keyRef(), ref, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyOpen
	}
	if err := m.rdb.Set(ctx, m.keyBy(), suggestedBy, 0).Err(); err != nil {
		return nil, err
	}
	if err := m.rdb.Set(ctx, m.keyAt(), now.Format(time.RFC3339), 0).Err(); err != nil {
		return nil, err
	}
	return &Pending{Ref: ref, SuggestedBy: suggestedBy, CreatedAt: now}, nil
}

// Replace overwrites whatever suggestion is stored, stale or not. The
// session is the authority on whether a suggestion may open; Replace
// makes the persisted ref follow a suggestion it already accepted,
// even when a ref from before a process restart is still present.
func (m *Manager) Replace(ctx context.Context, ref, suggestedBy string) (*Pending, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = uuid.NewString()
	}
	now := time.Now()
	if err := m.rdb.Set(ctx, m.keyRef(), ref, 0).Err(); err != nil {
		return nil, err
	}
	if err := m.rdb.Set(ctx, m.keyBy(), suggestedBy, 0).Err(); err != nil {
		return nil, err
	}
	if err := m.rdb.Set(ctx, m.keyAt(), now.Format(time.RFC3339), 0).Err(); err != nil {
		return nil, err
	}
	return &Pending{Ref: ref, SuggestedBy: suggestedBy, CreatedAt: now}, nil
}

// Current returns the open suggestion, or ErrNoneOpen.
func (m *Manager) Current(ctx context.Context) (*Pending, error) {
	ref, err := m.rdb.Get(ctx, m.keyRef()).Result()
	if err == redis.Nil {
		return nil, ErrNoneOpen
	}
	if err != nil {
		return nil, err
	}
	by, _ := m.rdb.Get(ctx, m.keyBy()).Result()
	p := &Pending{Ref: ref, SuggestedBy: by}
	if at, err := m.rdb.Get(ctx, m.keyAt()).Result(); err == nil {
		if t, perr := time.Parse(time.RFC3339, at); perr == nil {
			p.CreatedAt = t
		}
	}
	return p, nil
}

// Clear deletes the open suggestion, whether consumed by a start or
// abandoned by an unsuggest.
func (m *Manager) Clear(ctx context.Context) error {
	return m.rdb.Del(ctx, m.keyRef(), m.keyBy(), m.keyAt()).Err()
}
