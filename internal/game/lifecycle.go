package game

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emsgames/manhunt-bot/internal/obslog"
)

// archiveKeyLayout keys an archived log by session start time. One
// session runs at a time, so day-level granularity cannot collide.
const archiveKeyLayout = "02012006150405"

// ArchiveKey is the archive identifier of a session started at t.
func ArchiveKey(t time.Time) string { return t.Format(archiveKeyLayout) }

// Summary is the one-row record of a concluded session.
type Summary struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   Outcome
	Location  string
	Runners   int
	Hunters   int
	LogText   string
}

// concludeLocked finishes the session: outcome line, platform role
// cleanup, archive, reset. Caller holds s.mu. Concluding is terminal
// and runs exactly once per session; after reset the phase is NoGame
// and every path in here is unreachable until the next Start.
//
// Ordering is archive-then-reset. A failed archive write or delivery
// is surfaced in the logs but the session still resets: a stuck
// session is worse than a lost log.
func (s *Session) concludeLocked(ctx context.Context, outcome Outcome) {
	s.phase = PhaseConcluded
	s.outcome = outcome

	switch outcome {
	case OutcomeRunnersWin:
		s.appendLog(ctx, "GAME ENDED - HUNTERS LOSE")
	case OutcomeNoWin:
		s.appendLog(ctx, "GAME ENDED - NO WIN")
	default:
		s.appendLog(ctx, "GAME ENDED - HUNTERS WIN")
	}

	for _, p := range s.roster.Players() {
		s.syncRole(ctx, p.Name, s.roleFor(p.Side), false)
	}

	s.archiveLocked(ctx)

	obslog.L().Info("session_conclude",
		zap.String("session_id", s.sessionID),
		zap.String("outcome", string(outcome)),
	)
	s.resetLocked()
}

func (s *Session) archiveLocked(ctx context.Context) {
	key := ArchiveKey(s.startedAt)

	lines, err := s.log.ReadAll(ctx)
	if err != nil {
		obslog.L().Error("archive_read_error", zap.String("key", key), zap.Error(err))
		return
	}
	content := strings.Join(lines, "\n")

	if err := s.log.Archive(ctx, key, content); err != nil {
		obslog.L().Error("archive_write_error", zap.String("key", key), zap.Error(err))
	}
	if s.delivery != nil {
		if err := s.delivery.UploadLog(ctx, key+".txt", content); err != nil {
			obslog.L().Error("archive_delivery_error", zap.String("key", key), zap.Error(err))
		}
	}
	if s.summary != nil {
		sum := &Summary{
			SessionID: s.sessionID,
			StartedAt: s.startedAt,
			EndedAt:   s.now(),
			Outcome:   s.outcome,
			Location:  s.endLocation,
			Runners:   s.roster.RunnerCount(),
			Hunters:   s.roster.HunterCount(),
			LogText:   content,
		}
		if err := s.summary.SaveSummary(ctx, sum); err != nil {
			obslog.L().Error("archive_summary_error", zap.String("key", key), zap.Error(err))
		}
	}
	if err := s.log.Clear(ctx); err != nil {
		obslog.L().Error("archive_clear_error", zap.String("key", key), zap.Error(err))
	}
}

func (s *Session) resetLocked() {
	s.phase = PhaseNoGame
	s.sessionID = ""
	s.suggestedBy = ""
	s.startedAt = time.Time{}
	s.durations = Durations{}
	s.announced.headstartEnd = false
	s.announced.mainGameEnd = false
	s.announced.endTimeEnd = false
	s.endLocation = ""
	s.outcome = OutcomePending
	s.roster = NewRoster()
}
