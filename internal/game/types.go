package game

// Phase is the lifecycle state of the single game session.
type Phase string

const (
	PhaseNoGame    Phase = "NO_GAME"
	PhaseSuggested Phase = "SUGGESTED"
	PhaseHeadstart Phase = "HEADSTART"
	PhaseMainGame  Phase = "MAIN_GAME"
	PhaseEndPhase  Phase = "END_PHASE"
	PhaseConcluded Phase = "CONCLUDED"
)

// Side is which half of the roster holds a player.
type Side string

const (
	SideNone   Side = ""
	SideRunner Side = "RUNNER"
	SideHunter Side = "HUNTER"
)

// Outcome is set at most once per session.
type Outcome string

const (
	OutcomePending    Outcome = "PENDING"
	OutcomeRunnersWin Outcome = "RUNNERS_WIN"
	OutcomeHuntersWin Outcome = "HUNTERS_WIN"
	// OutcomeNoWin records a forced administrative conclusion.
	OutcomeNoWin Outcome = "NO_WIN"
)

// PhaseKey names an adjustable phase duration in commands and log lines.
type PhaseKey string

const (
	KeyHeadstart PhaseKey = "headstart"
	KeyGametime  PhaseKey = "gametime"
	KeyEndtime   PhaseKey = "endtime"
)

// ParsePhaseKey validates a user-supplied phase name.
func ParsePhaseKey(s string) (PhaseKey, error) {
	switch PhaseKey(s) {
	case KeyHeadstart, KeyGametime, KeyEndtime:
		return PhaseKey(s), nil
	}
	return "", ErrInvalidPhase
}

// Upper is the phase name as it appears in log lines.
func (k PhaseKey) Upper() string {
	switch k {
	case KeyHeadstart:
		return "HEADSTART"
	case KeyGametime:
		return "GAMETIME"
	case KeyEndtime:
		return "ENDTIME"
	}
	return ""
}

// Errors
var (
	ErrNoActiveSession     = errf("no active manhunt game")
	ErrNoSuggestion        = errf("no open game suggestion")
	ErrProposalAlreadyOpen = errf("a suggestion or game is already open")
	ErrReferenceNotFound   = errf("suggestion message not found")
	ErrInsufficientPlayers = errf("need at least one runner and one hunter")
	ErrDuplicateReaction   = errf("a player reacted as both runner and hunter")
	ErrInvalidDuration     = errf("all phase durations must be greater than zero")
	ErrAlreadyPlaying      = errf("player is already in the game")
	ErrNotAPlayer          = errf("not a player in the current game")
	ErrNotARunner          = errf("not a runner in the current game")
	ErrNotAHunter          = errf("not a hunter in the current game")
	ErrNotInEndPhase       = errf("the game is not in the end phase")
	ErrPermissionDenied    = errf("missing required privilege")
	ErrPhaseAlreadyPassed  = errf("phase has already passed")
	ErrInvalidShorten      = errf("cannot shorten the phase by that amount")
	ErrUnknownLocation     = errf("unknown end location")
	ErrAlreadyDecided      = errf("the game outcome is already decided")
	ErrInvalidPhase        = errf("invalid phase name")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }
