package game

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emsgames/manhunt-bot/internal/obslog"
)

// LogStore is the append-only event log of the active session.
type LogStore interface {
	Append(ctx context.Context, line string) error
	ReadAll(ctx context.Context) ([]string, error)
	Archive(ctx context.Context, key, content string) error
	Clear(ctx context.Context) error
}

// Locations supplies candidate end locations.
type Locations interface {
	Random(ctx context.Context) (string, error)
	IsKnown(ctx context.Context, loc string) (bool, error)
}

// RoleSync checks privileges and mirrors roster membership onto the
// chat platform's role system.
type RoleSync interface {
	HasPrivilege(ctx context.Context, player, role string) (bool, error)
	AssignRole(ctx context.Context, player, role string) error
	RemoveRole(ctx context.Context, player, role string) error
}

// LogDelivery posts the archived session log to the log channel.
type LogDelivery interface {
	UploadLog(ctx context.Context, filename, content string) error
}

// SummarySink persists a one-row summary of a concluded session.
// Optional; conclusion proceeds without it.
type SummarySink interface {
	SaveSummary(ctx context.Context, s *Summary) error
}

// RoleNames are the platform role labels for the three privileges.
type RoleNames struct {
	Runner string
	Hunter string
	Admin  string
}

// Deps wires the session's collaborators. Now is optional and defaults
// to time.Now; tests inject a fake clock through it.
type Deps struct {
	Log      LogStore
	Locs     Locations
	Roles    RoleSync
	Delivery LogDelivery
	Summary  SummarySink
	Names    RoleNames
	Now      func() time.Time
}

// Session owns the authoritative game state. Every transition and the
// periodic Tick run under one mutex: the session is a monitor, and at
// most one transition executes at a time. Validation and state
// mutation complete before any role-sync side effect; a failed role
// sync is reported but never rolled back.
type Session struct {
	mu  sync.Mutex
	now func() time.Time

	phase       Phase
	sessionID   string
	suggestedBy string
	startedAt   time.Time
	durations   Durations
	announced   struct {
		headstartEnd bool
		mainGameEnd  bool
		endTimeEnd   bool
	}
	endLocation string
	outcome     Outcome
	roster      *Roster

	log      LogStore
	locs     Locations
	roles    RoleSync
	delivery LogDelivery
	summary  SummarySink
	names    RoleNames
}

func NewSession(deps Deps) *Session {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		now:      now,
		phase:    PhaseNoGame,
		outcome:  OutcomePending,
		roster:   NewRoster(),
		log:      deps.Log,
		locs:     deps.Locs,
		roles:    deps.Roles,
		delivery: deps.Delivery,
		summary:  deps.Summary,
		names:    deps.Names,
	}
}

// Intents are the finalized reaction tallies of a proposal.
type Intents struct {
	Runners []string
	Hunters []string
}

// StartResult reports the state a freshly started game.
type StartResult struct {
	Location  string
	Runners   []string
	Hunters   []string
	Durations Durations
}

// EventKind identifies a one-shot phase announcement emitted by Tick.
type EventKind string

const (
	EventHeadstartEnd EventKind = "HEADSTART_END"
	EventMainGameEnd  EventKind = "MAINGAME_END"
	EventEndTimeEnd   EventKind = "ENDTIME_END"
)

// Event is a phase announcement. MainGameEnd carries the end location
// so the caller can reveal it.
type Event struct {
	Kind     EventKind
	Location string
}

// TickReport is what one Tick observed and did.
type TickReport struct {
	Events    []Event
	Concluded bool
	Outcome   Outcome
}

// ResignResult reports the side the player left and how many hunters
// remain, so the caller can ask for a replacement hunter when the last
// one leaves.
type ResignResult struct {
	Side        Side
	HuntersLeft int
}

// AddResult distinguishes a fresh add from an informational no-op.
type AddResult struct {
	AlreadyIn bool
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Active reports whether a game is running (any phase between start
// and conclusion).
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Session) activeLocked() bool {
	switch s.phase {
	case PhaseHeadstart, PhaseMainGame, PhaseEndPhase:
		return true
	}
	return false
}

// Suggest opens the proposal window. A proposal and a running game are
// mutually exclusive, so any phase other than NoGame rejects.
func (s *Session) Suggest(suggestedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseNoGame {
		return ErrProposalAlreadyOpen
	}
	s.phase = PhaseSuggested
	s.suggestedBy = suggestedBy
	obslog.L().Info("proposal_open", zap.String("suggested_by", suggestedBy))
	return nil
}

// Unsuggest abandons the open proposal.
func (s *Session) Unsuggest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSuggested {
		return ErrNoSuggestion
	}
	s.phase = PhaseNoGame
	s.suggestedBy = ""
	obslog.L().Info("proposal_abandon")
	return nil
}

// Start consumes the finalized proposal and begins the headstart phase.
func (s *Session) Start(ctx context.Context, startedBy string, in Intents, d Durations) (*StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSuggested {
		return nil, ErrNoSuggestion
	}
	if len(in.Runners) < 1 || len(in.Hunters) < 1 {
		return nil, ErrInsufficientPlayers
	}
	if overlaps(in.Runners, in.Hunters) {
		return nil, ErrDuplicateReaction
	}
	if !d.Valid() {
		return nil, ErrInvalidDuration
	}

	// External reads happen before any state mutation so a failed
	// collaborator leaves the session untouched.
	loc, err := s.locs.Random(ctx)
	if err != nil {
		return nil, fmt.Errorf("pick end location: %w", err)
	}

	s.sessionID = uuid.NewString()
	s.startedAt = s.now()
	s.durations = d
	s.endLocation = loc
	s.outcome = OutcomePending
	s.roster = NewRoster()
	for _, n := range in.Runners {
		_ = s.roster.AddRunner(n)
	}
	for _, n := range in.Hunters {
		_ = s.roster.AddHunter(n)
	}
	s.phase = PhaseHeadstart

	if err := s.writeHeader(ctx, startedBy); err != nil {
		obslog.L().Error("session_header_write_error", zap.Error(err))
	}

	for _, n := range s.roster.Runners() {
		s.syncRole(ctx, n, s.names.Runner, true)
	}
	for _, n := range s.roster.Hunters() {
		s.syncRole(ctx, n, s.names.Hunter, true)
	}

	h, g, e := d.Minutes()
	obslog.L().Info("session_start",
		zap.String("session_id", s.sessionID),
		zap.String("started_by", startedBy),
		zap.Int("runners", s.roster.RunnerCount()),
		zap.Int("hunters", s.roster.HunterCount()),
		zap.Ints("times_min", []int{h, g, e}),
		zap.String("location", loc),
	)
	return &StartResult{
		Location:  loc,
		Runners:   s.roster.Runners(),
		Hunters:   s.roster.Hunters(),
		Durations: d,
	}, nil
}

func (s *Session) writeHeader(ctx context.Context, startedBy string) error {
	h, g, e := s.durations.Minutes()
	lines := []string{
		fmt.Sprintf("START %s", s.startedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("STARTED-BY %s", startedBy),
		fmt.Sprintf("PLAYERS %d", s.roster.RunnerCount()+s.roster.HunterCount()),
	}
	for _, n := range s.roster.Runners() {
		lines = append(lines, fmt.Sprintf("RUNNER %s", n))
	}
	for _, n := range s.roster.Hunters() {
		lines = append(lines, fmt.Sprintf("HUNTER %s", n))
	}
	lines = append(lines,
		fmt.Sprintf("TIMES %d %d %d", h, g, e),
		fmt.Sprintf("LOCATION %s", s.endLocation),
		"-----  MAIN LOG  -----",
	)
	for _, l := range lines {
		if err := s.log.Append(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// Tick is the periodic transition. It is idempotent: each of the three
// phase-end announcements fires exactly once no matter how often Tick
// runs, and a concluded session is reset so further Ticks no-op.
func (s *Session) Tick(ctx context.Context) (*TickReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.activeLocked() {
		return &TickReport{}, nil
	}

	now := s.now()
	cross := BoundariesAt(s.startedAt, s.durations).CrossingsAt(now)
	report := &TickReport{}

	if cross.Headstart && !s.announced.headstartEnd {
		s.announced.headstartEnd = true
		s.phase = PhaseMainGame
		s.appendLog(ctx, "PHASE HEADSTART END")
		report.Events = append(report.Events, Event{Kind: EventHeadstartEnd})
		obslog.L().Info("phase_announce", zap.String("phase", "headstart_end"))
	}
	if cross.MainGame && !s.announced.mainGameEnd {
		s.announced.mainGameEnd = true
		s.phase = PhaseEndPhase
		s.appendLog(ctx, "PHASE MAINGAME END")
		report.Events = append(report.Events, Event{Kind: EventMainGameEnd, Location: s.endLocation})
		obslog.L().Info("phase_announce", zap.String("phase", "maingame_end"), zap.String("location", s.endLocation))
	}
	if cross.EndTime && !s.announced.endTimeEnd {
		s.announced.endTimeEnd = true
		s.appendLog(ctx, "PHASE ENDTIME END")
		report.Events = append(report.Events, Event{Kind: EventEndTimeEnd})
		obslog.L().Info("phase_announce", zap.String("phase", "endtime_end"))
	}

	if s.roster.RunnerCount() == 0 || s.announced.endTimeEnd {
		outcome := OutcomeHuntersWin
		if s.outcome == OutcomeRunnersWin {
			outcome = OutcomeRunnersWin
		}
		s.concludeLocked(ctx, outcome)
		report.Concluded = true
		report.Outcome = outcome
	}
	return report, nil
}

// Resign removes the caller from whichever side holds them.
func (s *Session) Resign(ctx context.Context, player string) (*ResignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return nil, ErrNoActiveSession
	}
	side := s.roster.Side(player)
	if side == SideNone {
		return nil, ErrNotAPlayer
	}
	s.appendLog(ctx, fmt.Sprintf("RESIGN %s", player))
	s.appendLog(ctx, fmt.Sprintf("%s -> LEAVES", player))
	_, _ = s.roster.Remove(player)
	s.syncRole(ctx, player, s.roleFor(side), false)
	obslog.L().Info("player_resign", zap.String("player", player), zap.String("side", string(side)))
	return &ResignResult{Side: side, HuntersLeft: s.roster.HunterCount()}, nil
}

// AddPlayer joins a latecomer as a runner. Joining twice is an
// informational no-op, not an error.
func (s *Session) AddPlayer(ctx context.Context, player string) (*AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return nil, ErrNoActiveSession
	}
	if s.roster.Contains(player) {
		return &AddResult{AlreadyIn: true}, nil
	}
	s.appendLog(ctx, fmt.Sprintf("LATE-PLAYER-ADD %s", player))
	s.appendLog(ctx, fmt.Sprintf("%s -> RUNNER", player))
	_ = s.roster.AddRunner(player)
	s.syncRole(ctx, player, s.names.Runner, true)
	obslog.L().Info("player_late_add", zap.String("player", player))
	return &AddResult{}, nil
}

// PromoteToHunter converts the calling runner into a hunter.
func (s *Session) PromoteToHunter(ctx context.Context, player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if s.roster.Side(player) != SideRunner {
		return ErrNotARunner
	}
	s.appendLog(ctx, fmt.Sprintf("PLAYER %s Runner -> Hunter", player))
	_ = s.roster.MoveToHunter(player)
	s.syncRole(ctx, player, s.names.Runner, false)
	s.syncRole(ctx, player, s.names.Hunter, true)
	obslog.L().Info("player_promote", zap.String("player", player))
	return nil
}

// Catch records a hunter catching a runner; the runner becomes a hunter.
func (s *Session) Catch(ctx context.Context, hunter, runner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if s.roster.Side(hunter) != SideHunter {
		return ErrNotAHunter
	}
	if s.roster.Side(runner) != SideRunner {
		return ErrNotARunner
	}
	s.appendLog(ctx, fmt.Sprintf("%s CATCH %s", hunter, runner))
	s.appendLog(ctx, fmt.Sprintf("%s -> HUNTER", runner))
	_ = s.roster.MoveToHunter(runner)
	s.syncRole(ctx, runner, s.names.Runner, false)
	s.syncRole(ctx, runner, s.names.Hunter, true)
	obslog.L().Info("player_catch", zap.String("hunter", hunter), zap.String("runner", runner))
	return nil
}

// Disqualify removes a player by administrative decision.
func (s *Session) Disqualify(ctx context.Context, actor, target, reason string) (Side, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return SideNone, ErrNoActiveSession
	}
	if err := s.requireAdmin(ctx, actor); err != nil {
		return SideNone, err
	}
	side := s.roster.Side(target)
	if side == SideNone {
		return SideNone, ErrNotAPlayer
	}
	s.appendLog(ctx, fmt.Sprintf("%s DISQUALIFIES %s REASON: %s", actor, target, reason))
	s.appendLog(ctx, fmt.Sprintf("%s -> LEAVES", target))
	_, _ = s.roster.Remove(target)
	s.syncRole(ctx, target, s.roleFor(side), false)
	obslog.L().Info("player_disqualify",
		zap.String("actor", actor), zap.String("target", target), zap.String("reason", reason))
	return side, nil
}

// Win records a runner reaching the end location. Legal only during
// the end phase, once the location has been revealed. The first winner
// decides the outcome; it is never overwritten.
func (s *Session) Win(ctx context.Context, player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if s.phase != PhaseEndPhase {
		return ErrNotInEndPhase
	}
	switch s.outcome {
	case OutcomePending, OutcomeRunnersWin:
	default:
		return ErrAlreadyDecided
	}
	if s.roster.Side(player) != SideRunner {
		return ErrNotARunner
	}
	s.appendLog(ctx, fmt.Sprintf("WIN %s", player))
	s.appendLog(ctx, fmt.Sprintf("%s -> LEAVES", player))
	_, _ = s.roster.Remove(player)
	s.outcome = OutcomeRunnersWin
	s.syncRole(ctx, player, s.names.Runner, false)
	obslog.L().Info("player_win", zap.String("player", player))
	return nil
}

// Extend lengthens a phase that has not yet ended.
func (s *Session) Extend(ctx context.Context, actor string, key PhaseKey, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if minutes <= 0 {
		return ErrInvalidDuration
	}
	cross := BoundariesAt(s.startedAt, s.durations).CrossingsAt(s.now())
	add := time.Duration(minutes) * time.Minute
	switch key {
	case KeyHeadstart:
		if cross.Headstart {
			return ErrPhaseAlreadyPassed
		}
		s.durations.Headstart += add
	case KeyGametime:
		if cross.MainGame {
			return ErrPhaseAlreadyPassed
		}
		s.durations.MainGame += add
	case KeyEndtime:
		if cross.EndTime {
			return ErrPhaseAlreadyPassed
		}
		s.durations.EndTime += add
	default:
		return ErrInvalidPhase
	}
	s.appendLog(ctx, fmt.Sprintf("PHASE %s ADD %d", key.Upper(), minutes))
	obslog.L().Info("phase_extend",
		zap.String("actor", actor), zap.String("phase", string(key)), zap.Int("minutes", minutes))
	return nil
}

// Shorten trims a phase. The reduced boundary must still be in the
// future, and a phase can never be cut to zero or below.
func (s *Session) Shorten(ctx context.Context, actor string, key PhaseKey, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if minutes <= 0 {
		return ErrInvalidShorten
	}
	now := s.now()
	b := BoundariesAt(s.startedAt, s.durations)
	sub := time.Duration(minutes) * time.Minute
	switch key {
	case KeyHeadstart:
		if !b.HeadstartEnd.Add(-sub).After(now) || sub >= s.durations.Headstart {
			return ErrInvalidShorten
		}
		s.durations.Headstart -= sub
	case KeyGametime:
		if !b.MainGameEnd.Add(-sub).After(now) || sub >= s.durations.MainGame {
			return ErrInvalidShorten
		}
		s.durations.MainGame -= sub
	case KeyEndtime:
		if !b.EndTimeEnd.Add(-sub).After(now) || sub >= s.durations.EndTime {
			return ErrInvalidShorten
		}
		s.durations.EndTime -= sub
	default:
		return ErrInvalidPhase
	}
	s.appendLog(ctx, fmt.Sprintf("PHASE %s SUBTRACT %d", key.Upper(), minutes))
	obslog.L().Info("phase_shorten",
		zap.String("actor", actor), zap.String("phase", string(key)), zap.Int("minutes", minutes))
	return nil
}

// SetLocation replaces the end location before the end-time boundary.
// Only a current hunter may change it.
func (s *Session) SetLocation(ctx context.Context, actor, loc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if s.roster.Side(actor) != SideHunter {
		return ErrNotAHunter
	}
	if s.announced.endTimeEnd || BoundariesAt(s.startedAt, s.durations).CrossingsAt(s.now()).EndTime {
		return ErrPhaseAlreadyPassed
	}
	known, err := s.locs.IsKnown(ctx, loc)
	if err != nil {
		return fmt.Errorf("location lookup: %w", err)
	}
	if !known {
		return ErrUnknownLocation
	}
	s.appendLog(ctx, fmt.Sprintf("CHANGE-LOCATION %s %s", actor, loc))
	s.endLocation = loc
	obslog.L().Info("location_change", zap.String("actor", actor), zap.String("location", loc))
	return nil
}

// ForceEnd concludes the game unconditionally, outside the Tick path.
func (s *Session) ForceEnd(ctx context.Context, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}
	s.concludeLocked(ctx, OutcomeNoWin)
	obslog.L().Info("session_force_end", zap.String("actor", actor))
	return nil
}

// Comment appends an administrative observation to the log.
func (s *Session) Comment(ctx context.Context, actor, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrNoActiveSession
	}
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}
	s.appendLog(ctx, fmt.Sprintf("COMMENT %s %s", actor, note))
	return nil
}

// Players lists the roster in join order.
func (s *Session) Players() ([]PlayerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return nil, ErrNoActiveSession
	}
	return s.roster.Players(), nil
}

// RandomRunner picks a uniformly random current runner.
func (s *Session) RandomRunner() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return "", ErrNoActiveSession
	}
	runners := s.roster.Runners()
	if len(runners) == 0 {
		return "", ErrNotARunner
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(runners))))
	if err != nil {
		return "", err
	}
	return runners[n.Int64()], nil
}

// Location returns the current end location.
func (s *Session) Location() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return "", ErrNoActiveSession
	}
	return s.endLocation, nil
}

func (s *Session) requireAdmin(ctx context.Context, actor string) error {
	ok, err := s.roles.HasPrivilege(ctx, actor, s.names.Admin)
	if err != nil {
		return fmt.Errorf("privilege check: %w", err)
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}

func (s *Session) roleFor(side Side) string {
	if side == SideHunter {
		return s.names.Hunter
	}
	return s.names.Runner
}

// appendLog writes one timestamped line. A failed append is reported
// but does not veto the transition: the in-memory state is the
// authority and the log is best-effort once validation has passed.
func (s *Session) appendLog(ctx context.Context, text string) {
	line := fmt.Sprintf("%s %s", s.now().Format("15:04:05"), text)
	if err := s.log.Append(ctx, line); err != nil {
		obslog.L().Error("session_log_append_error", zap.String("line", text), zap.Error(err))
	}
}

// syncRole mirrors a roster change onto the platform. Failures are
// reported, never rolled back: the roster already committed.
func (s *Session) syncRole(ctx context.Context, player, role string, assign bool) {
	var err error
	if assign {
		err = s.roles.AssignRole(ctx, player, role)
	} else {
		err = s.roles.RemoveRole(ctx, player, role)
	}
	if err != nil {
		obslog.L().Warn("role_sync_error",
			zap.String("player", player), zap.String("role", role),
			zap.Bool("assign", assign), zap.Error(err))
	}
}

func overlaps(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, n := range a {
		if _, dup := seen[n]; dup {
			return true
		}
		seen[n] = struct{}{}
	}
	for _, n := range b {
		if _, dup := seen[n]; dup {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}
