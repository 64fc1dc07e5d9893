package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/emsgames/manhunt-bot/internal/game"
)

// Repository persists one summary row per concluded session. It is
// optional infrastructure: the bot runs without a database, and a
// failed insert never blocks a session reset.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveSummary inserts the concluded-session row. Replays of the same
// session are ignored rather than duplicated.
func (r *Repository) SaveSummary(ctx context.Context, s *game.Summary) error {
	if r == nil || r.db == nil || s == nil {
		return nil
	}

	duration := s.EndedAt.Sub(s.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	const q = `INSERT INTO manhunt_sessions (
			session_id, started_at, ended_at, duration_ms,
			outcome, end_location, runners_left, hunters_left, log_text
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (session_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, q,
		s.SessionID,
		s.StartedAt,
		s.EndedAt,
		duration,
		string(s.Outcome),
		s.Location,
		s.Runners,
		s.Hunters,
		s.LogText,
	)
	if err != nil {
		return fmt.Errorf("insert session summary: %w", err)
	}
	return nil
}

// RecentSummaries lists the latest concluded sessions, newest first.
func (r *Repository) RecentSummaries(ctx context.Context, limit int) ([]*game.Summary, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	const q = `SELECT session_id, started_at, ended_at, outcome, end_location,
			runners_left, hunters_left, log_text
		FROM manhunt_sessions
		ORDER BY started_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var out []*game.Summary
	for rows.Next() {
		var s game.Summary
		var outcome string
		if err := rows.Scan(&s.SessionID, &s.StartedAt, &s.EndedAt, &outcome,
			&s.Location, &s.Runners, &s.Hunters, &s.LogText); err != nil {
			return nil, err
		}
		s.Outcome = game.Outcome(outcome)
		out = append(out, &s)
	}
	return out, rows.Err()
}
