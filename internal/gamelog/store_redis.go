package gamelog

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Store keeps the active session's event log as a Redis list and
// concluded logs as immutable archive strings. The live log has no
// TTL: it exists exactly as long as the session that owns it.
type Store struct{ rdb *redis.Client }

func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

func (s *Store) keyCurrent() string { return "manhunt:log:current" }
func (s *Store) keyArchive(key string) string { return "manhunt:log:archive:" + key }

// Append adds one line to the live log, preserving order.
func (s *Store) Append(ctx context.Context, line string) error {
	return s.rdb.RPush(ctx, s.keyCurrent(), line).Err()
}

// ReadAll returns the full live log in append order.
func (s *Store) ReadAll(ctx context.Context) ([]string, error) {
	return s.rdb.LRange(ctx, s.keyCurrent(), 0, -1).Result()
}

// Archive writes the concluded log under its start-time key.
func (s *Store) Archive(ctx context.Context, key, content string) error {
	return s.rdb.Set(ctx, s.keyArchive(key), content, 0).Err()
}

// ReadArchive fetches an archived log; nil error with empty string
// means the key does not exist.
func (s *Store) ReadArchive(ctx context.Context, key string) (string, error) {
	raw, err := s.rdb.Get(ctx, s.keyArchive(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return raw, err
}

// Clear drops the live log.
func (s *Store) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.keyCurrent()).Err()
}
