package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/emsgames/manhunt-bot/internal/archive"
	appcfg "github.com/emsgames/manhunt-bot/internal/config"
	"github.com/emsgames/manhunt-bot/internal/game"
	"github.com/emsgames/manhunt-bot/internal/gamelog"
	"github.com/emsgames/manhunt-bot/internal/gateway"
	"github.com/emsgames/manhunt-bot/internal/location"
	"github.com/emsgames/manhunt-bot/internal/msgcat"
	"github.com/emsgames/manhunt-bot/internal/obslog"
	"github.com/emsgames/manhunt-bot/internal/proposal"
)

type bot struct {
	cfg       *appcfg.AppConfig
	client    *gateway.Client
	messages  *msgcat.Catalog
	session   *game.Session
	proposals *proposal.Manager
	locations *location.Catalog
	logs      *gamelog.Store
	history   *archive.Repository
}

// logDelivery binds the gateway file upload to the log channel so the
// session does not need to know channel names.
type logDelivery struct {
	client  *gateway.Client
	channel string
}

func (d *logDelivery) UploadLog(ctx context.Context, filename, content string) error {
	return d.client.UploadLog(ctx, d.channel, filename, content)
}

func main() {
	_ = godotenv.Load()

	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = obslog.L().Sync() }()

	messages, err := msgcat.New(os.Getenv("MESSAGE_TEMPLATE_DIR"))
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis url error: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pctx).Err(); err != nil {
		pcancel()
		log.Fatalf("redis connect error: %v", err)
	}
	pcancel()

	headers := func() map[string]string {
		h := map[string]string{}
		if cfg.GatewayToken != "" {
			h["Authorization"] = "Bearer " + cfg.GatewayToken
		}
		return h
	}

	client := gateway.NewClient(cfg.GatewayBaseURL,
		gateway.WithTimeout(cfg.GatewayTimeout),
		gateway.WithRetry(cfg.GatewayRetries),
		gateway.WithHeaderProvider(headers),
	)

	ws := gateway.NewWebSocket(cfg.GatewayWSURL, 5, time.Second)
	ws.SetHeaderProvider(headers)
	ws.OnStateChange(func(state gateway.WebSocketState) {
		obslog.L().Info("ws_state", zap.String("state", string(state)))
	})

	locs := location.NewCatalog(rdb, cfg.LocationSimilarity)
	proposals := proposal.NewManager(rdb)
	logStore := gamelog.NewStore(rdb)

	deps := game.Deps{
		Log:      logStore,
		Locs:     locs,
		Roles:    client,
		Delivery: &logDelivery{client: client, channel: cfg.LogChannel},
		Names: game.RoleNames{
			Runner: cfg.RunnerRole,
			Hunter: cfg.HunterRole,
			Admin:  cfg.AdminRole,
		},
	}

	var repo *archive.Repository
	if cfg.DatabaseURL != "" {
		repo, err = archive.NewRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("archive repo init error: %v", err)
		}
		deps.Summary = repo
	}

	session := game.NewSession(deps)

	// A suggestion persisted before a restart puts the session back
	// into its proposal window, so the open invitation stays startable.
	rctx, rcancel := context.WithTimeout(context.Background(), 5*time.Second)
	if p, err := proposals.Current(rctx); err == nil {
		if err := session.Suggest(p.SuggestedBy); err == nil {
			obslog.L().Info("proposal_rehydrated",
				zap.String("ref", p.Ref), zap.String("suggested_by", p.SuggestedBy))
		}
	} else if !errors.Is(err, proposal.ErrNoneOpen) {
		obslog.L().Warn("proposal_rehydrate_error", zap.Error(err))
	}
	rcancel()

	b := &bot{
		cfg:       cfg,
		client:    client,
		messages:  messages,
		session:   session,
		proposals: proposals,
		locations: locs,
		logs:      logStore,
		history:   repo,
	}

	ws.OnMessage(func(msg *gateway.Message) {
		if msg == nil || msg.Msg == "" {
			return
		}
		if !strings.HasPrefix(strings.TrimSpace(msg.Msg), cfg.BotPrefix) {
			return
		}
		// Avoid blocking the WS loop
		go b.handleCommand(msg)
	})

	cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ws.Connect(cctx); err != nil {
		cancel()
		log.Fatalf("ws connect error: %v", err)
	}
	cancel()

	tickerCtx, stopTicker := context.WithCancel(context.Background())
	go b.runTicker(tickerCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	stopTicker()
	_ = ws.Close(context.Background())
	_ = rdb.Close()
	if repo != nil {
		_ = repo.Close()
	}
}

// runTicker drives phase transitions. Each boundary announcement is
// emitted by the session at most once, so a slow or duplicated tick
// never double-posts.
func (b *bot) runTicker(ctx context.Context) {
	t := time.NewTicker(b.cfg.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rep, err := b.session.Tick(ctx)
			if err != nil {
				obslog.L().Error("tick_error", zap.Error(err))
				continue
			}
			b.announce(ctx, rep)
		}
	}
}

func (b *bot) announce(ctx context.Context, rep *game.TickReport) {
	for _, ev := range rep.Events {
		switch ev.Kind {
		case game.EventHeadstartEnd:
			b.send(ctx, b.cfg.MainChannel, "phase.main_started", nil)
			b.send(ctx, b.cfg.HunterChannel, "phase.hunters_leave", nil)
		case game.EventMainGameEnd:
			b.send(ctx, b.cfg.MainChannel, "phase.end_started", map[string]any{"Location": ev.Location})
		case game.EventEndTimeEnd:
			b.send(ctx, b.cfg.MainChannel, "phase.finished", nil)
		}
	}
	if rep.Concluded {
		switch rep.Outcome {
		case game.OutcomeRunnersWin:
			b.send(ctx, b.cfg.MainChannel, "end.hunters_lose", nil)
		case game.OutcomeHuntersWin:
			b.send(ctx, b.cfg.MainChannel, "end.hunters_win", nil)
		}
	}
}

func (b *bot) handleCommand(msg *gateway.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.Msg), b.cfg.BotPrefix))
	if raw == "" {
		b.sendHelp(ctx, msg.Channel)
		return
	}
	parts := strings.Fields(raw)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	sender := strings.TrimSpace(msg.Sender)

	switch cmd {
	case "help":
		b.sendHelp(ctx, msg.Channel)
	case "suggest":
		b.handleSuggest(ctx, msg, sender)
	case "unsuggest":
		b.handleUnsuggest(ctx, msg, sender)
	case "start":
		b.handleStart(ctx, msg, sender, args)
	case "end":
		if err := b.session.ForceEnd(ctx, sender); err != nil {
			b.sendError(ctx, msg.Channel, err)
			return
		}
		b.send(ctx, b.cfg.MainChannel, "end.forced", map[string]any{"By": sender})
	case "resign":
		b.handleResign(ctx, msg, sender)
	case "add-player":
		b.handleAddPlayer(ctx, msg, sender)
	case "add-hunter":
		if err := b.session.PromoteToHunter(ctx, sender); err != nil {
			b.sendError(ctx, msg.Channel, err)
			return
		}
		b.send(ctx, b.cfg.MainChannel, "player.promoted", map[string]any{"Player": sender})
		b.send(ctx, msg.Channel, "player.promoted_confirm", nil)
	case "catch":
		if len(args) < 1 {
			b.sendError(ctx, msg.Channel, game.ErrNotARunner)
			return
		}
		runner := strings.Join(args, " ")
		if err := b.session.Catch(ctx, sender, runner); err != nil {
			b.sendError(ctx, msg.Channel, err)
			return
		}
		b.send(ctx, b.cfg.MainChannel, "player.caught", map[string]any{"Runner": runner, "Hunter": sender})
	case "disqualify":
		b.handleDisqualify(ctx, msg, sender, args)
	case "win":
		if err := b.session.Win(ctx, sender); err != nil {
			b.sendError(ctx, msg.Channel, err)
			return
		}
		b.send(ctx, b.cfg.MainChannel, "player.win", map[string]any{"Player": sender})
	case "extend":
		b.handleAdjust(ctx, msg, sender, args, true)
	case "shorten":
		b.handleAdjust(ctx, msg, sender, args, false)
	case "set-location":
		b.handleSetLocation(ctx, msg, sender, args)
	case "players-list":
		b.handlePlayersList(ctx, msg)
	case "comment":
		if err := b.session.Comment(ctx, sender, strings.Join(args, " ")); err != nil {
			b.sendError(ctx, msg.Channel, err)
			return
		}
	case "random-runner":
		runner, err := b.session.RandomRunner()
		if err != nil {
			b.sendError(ctx, msg.Channel, err)
			return
		}
		b.send(ctx, b.cfg.MainChannel, "player.random_runner", map[string]any{"By": sender, "Runner": runner})
	case "history":
		b.handleHistory(ctx, msg, args)
	case "game-log":
		b.handleGameLog(ctx, msg, args)
	case "locations":
		b.handleLocations(ctx, msg)
	case "add-location":
		b.handleAddLocation(ctx, msg, sender, args)
	case "del-location":
		b.handleDelLocation(ctx, msg, sender, args)
	default:
		b.sendHelp(ctx, msg.Channel)
	}
}

func (b *bot) handleSuggest(ctx context.Context, msg *gateway.Message, sender string) {
	if err := b.session.Suggest(sender); err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	text := b.messages.MustRender("suggest.posted", map[string]any{
		"By":             sender,
		"RunnerReaction": b.cfg.RunnerReaction,
		"HunterReaction": b.cfg.HunterReaction,
	})
	ref, err := b.client.Propose(ctx, b.cfg.MainChannel, text, []string{b.cfg.RunnerReaction, b.cfg.HunterReaction})
	if err != nil {
		// Roll back: a proposal nobody can react to is not a proposal.
		_ = b.session.Unsuggest()
		obslog.L().Error("propose_error", zap.Error(err))
		b.sendError(ctx, msg.Channel, err)
		return
	}
	if _, err := b.proposals.Open(ctx, ref, sender); err != nil {
		if errors.Is(err, proposal.ErrAlreadyOpen) {
			// A ref persisted before a restart is stale: the session
			// just accepted this suggestion, so the new ref wins.
			if _, rerr := b.proposals.Replace(ctx, ref, sender); rerr != nil {
				obslog.L().Error("proposal_persist_error", zap.Error(rerr))
			}
		} else {
			obslog.L().Error("proposal_persist_error", zap.Error(err))
		}
	}
	if msg.Channel != b.cfg.MainChannel {
		b.send(ctx, msg.Channel, "suggest.confirmed", nil)
	}
}

func (b *bot) handleUnsuggest(ctx context.Context, msg *gateway.Message, sender string) {
	if err := b.session.Unsuggest(); err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	if err := b.proposals.Clear(ctx); err != nil {
		obslog.L().Error("proposal_clear_error", zap.Error(err))
	}
	b.send(ctx, b.cfg.MainChannel, "suggest.removed", map[string]any{"By": sender})
	if msg.Channel != b.cfg.MainChannel {
		b.send(ctx, msg.Channel, "suggest.removed_confirm", nil)
	}
}

func (b *bot) handleStart(ctx context.Context, msg *gateway.Message, sender string, args []string) {
	h, g, e := b.cfg.DefaultHeadstartMin, b.cfg.DefaultGametimeMin, b.cfg.DefaultEndtimeMin
	if len(args) >= 3 {
		var ok bool
		if h, g, e, ok = parseTimes(args); !ok {
			b.send(ctx, msg.Channel, "start.bad_times", nil)
			return
		}
	}

	pending, err := b.proposals.Current(ctx)
	if err != nil {
		if errors.Is(err, proposal.ErrNoneOpen) {
			b.send(ctx, msg.Channel, "suggest.none_open", nil)
			return
		}
		b.sendError(ctx, msg.Channel, err)
		return
	}

	groups, err := b.client.Reactions(ctx, pending.Ref)
	if err != nil {
		if errors.Is(err, gateway.ErrReferenceNotFound) {
			b.send(ctx, msg.Channel, "suggest.ref_missing", nil)
			return
		}
		b.sendError(ctx, msg.Channel, err)
		return
	}

	var intents game.Intents
	for _, grp := range groups {
		switch grp.Emoji {
		case b.cfg.RunnerReaction:
			intents.Runners = append(intents.Runners, grp.Users...)
		case b.cfg.HunterReaction:
			intents.Hunters = append(intents.Hunters, grp.Users...)
		}
	}

	res, err := b.session.Start(ctx, sender, intents, game.DurationsFromMinutes(h, g, e))
	if err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	if err := b.proposals.Clear(ctx); err != nil {
		obslog.L().Error("proposal_clear_error", zap.Error(err))
	}

	hMin, gMin, eMin := res.Durations.Minutes()
	b.send(ctx, b.cfg.MainChannel, "start.briefing", map[string]any{
		"By":        sender,
		"Hunters":   strings.Join(res.Hunters, ", "),
		"Runners":   strings.Join(res.Runners, ", "),
		"Headstart": hMin,
		"Gametime":  gMin,
		"Endtime":   eMin,
	})
	b.send(ctx, b.cfg.HunterChannel, "start.location_to_hunters", map[string]any{"Location": res.Location})
	if msg.Channel != b.cfg.MainChannel {
		b.send(ctx, msg.Channel, "start.ok", nil)
	}
}

func (b *bot) handleResign(ctx context.Context, msg *gateway.Message, sender string) {
	res, err := b.session.Resign(ctx, sender)
	if err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	switch {
	case res.Side == game.SideHunter && res.HuntersLeft == 0:
		b.send(ctx, b.cfg.MainChannel, "player.pick_new_hunter", map[string]any{"Player": sender})
	case res.Side == game.SideHunter:
		b.send(ctx, b.cfg.MainChannel, "player.resigned_hunters_left",
			map[string]any{"Player": sender, "Count": res.HuntersLeft})
	default:
		b.send(ctx, b.cfg.MainChannel, "player.resigned", map[string]any{"Player": sender})
	}
	if msg.Channel != b.cfg.MainChannel {
		b.send(ctx, msg.Channel, "player.resign_confirm", nil)
	}
}

func (b *bot) handleAddPlayer(ctx context.Context, msg *gateway.Message, sender string) {
	res, err := b.session.AddPlayer(ctx, sender)
	if err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	if res.AlreadyIn {
		b.send(ctx, msg.Channel, "player.already_in", nil)
		return
	}
	b.send(ctx, b.cfg.MainChannel, "player.added", map[string]any{"Player": sender})
	if msg.Channel != b.cfg.MainChannel {
		b.send(ctx, msg.Channel, "player.added_confirm", nil)
	}
}

func (b *bot) handleDisqualify(ctx context.Context, msg *gateway.Message, sender string, args []string) {
	if len(args) < 2 {
		b.sendError(ctx, msg.Channel, game.ErrNotAPlayer)
		return
	}
	target := args[0]
	reason := strings.Join(args[1:], " ")
	if _, err := b.session.Disqualify(ctx, sender, target, reason); err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	b.send(ctx, b.cfg.MainChannel, "player.disqualified",
		map[string]any{"Target": target, "Actor": sender, "Reason": reason})
}

func (b *bot) handleAdjust(ctx context.Context, msg *gateway.Message, sender string, args []string, extend bool) {
	if len(args) < 2 {
		b.send(ctx, msg.Channel, "errors.bad_phase", nil)
		return
	}
	key, err := game.ParsePhaseKey(strings.ToLower(args[0]))
	if err != nil {
		b.send(ctx, msg.Channel, "errors.bad_phase", nil)
		return
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		b.send(ctx, msg.Channel, "start.bad_times", nil)
		return
	}

	if extend {
		if err := b.session.Extend(ctx, sender, key, minutes); err != nil {
			b.sendError(ctx, msg.Channel, err)
			return
		}
		b.send(ctx, b.cfg.MainChannel, "times.extended",
			map[string]any{"By": sender, "Phase": string(key), "Minutes": minutes})
		return
	}
	if err := b.session.Shorten(ctx, sender, key, minutes); err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	b.send(ctx, b.cfg.MainChannel, "times.shortened",
		map[string]any{"By": sender, "Phase": string(key), "Minutes": minutes})
}

func (b *bot) handleSetLocation(ctx context.Context, msg *gateway.Message, sender string, args []string) {
	loc := strings.TrimSpace(strings.Join(args, " "))
	if loc == "" {
		b.send(ctx, msg.Channel, "location.unknown", map[string]any{"Location": loc})
		return
	}
	if err := b.session.SetLocation(ctx, sender, loc); err != nil {
		if errors.Is(err, game.ErrUnknownLocation) {
			b.send(ctx, msg.Channel, "location.unknown", map[string]any{"Location": loc})
			return
		}
		b.sendError(ctx, msg.Channel, err)
		return
	}
	// The new location stays secret from the runners until the end phase.
	b.send(ctx, b.cfg.MainChannel, "location.changed", map[string]any{"By": sender})
	b.send(ctx, b.cfg.HunterChannel, "location.changed_to_hunters", map[string]any{"Location": loc})
}

func (b *bot) handlePlayersList(ctx context.Context, msg *gateway.Message) {
	players, err := b.session.Players()
	if err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	rows := make([]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, b.messages.MustRender("player.list_row",
			map[string]any{"Player": p.Name, "Side": string(p.Side)}))
	}
	if err := b.client.SendMessage(ctx, msg.Channel, strings.Join(rows, "\n")); err != nil {
		obslog.L().Error("send_error", zap.String("channel", msg.Channel), zap.Error(err))
	}
}

func (b *bot) handleHistory(ctx context.Context, msg *gateway.Message, args []string) {
	if b.history == nil {
		b.send(ctx, msg.Channel, "history.unavailable", nil)
		return
	}
	limit := 5
	if len(args) >= 1 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			limit = n
		}
	}
	sums, err := b.history.RecentSummaries(ctx, limit)
	if err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	if len(sums) == 0 {
		b.send(ctx, msg.Channel, "history.empty", nil)
		return
	}
	rows := make([]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, b.messages.MustRender("history.row", map[string]any{
			"Date":     s.StartedAt.Format("2006-01-02 15:04"),
			"Outcome":  string(s.Outcome),
			"Location": s.Location,
			"Key":      game.ArchiveKey(s.StartedAt),
		}))
	}
	if err := b.client.SendMessage(ctx, msg.Channel, strings.Join(rows, "\n")); err != nil {
		obslog.L().Error("send_error", zap.String("channel", msg.Channel), zap.Error(err))
	}
}

func (b *bot) handleGameLog(ctx context.Context, msg *gateway.Message, args []string) {
	if len(args) < 1 {
		b.send(ctx, msg.Channel, "history.log_usage", map[string]any{"Prefix": b.cfg.BotPrefix})
		return
	}
	key := args[0]
	content, err := b.logs.ReadArchive(ctx, key)
	if err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	if content == "" {
		b.send(ctx, msg.Channel, "history.log_missing", map[string]any{"Key": key})
		return
	}
	if err := b.client.UploadLog(ctx, msg.Channel, key+".txt", content); err != nil {
		obslog.L().Error("send_error", zap.String("channel", msg.Channel), zap.Error(err))
	}
}

func (b *bot) handleLocations(ctx context.Context, msg *gateway.Message) {
	all, err := b.locations.ListAll(ctx)
	if err != nil {
		b.sendError(ctx, msg.Channel, err)
		return
	}
	if len(all) == 0 {
		b.sendError(ctx, msg.Channel, location.ErrEmpty)
		return
	}
	if err := b.client.SendMessage(ctx, msg.Channel, strings.Join(all, "\n")); err != nil {
		obslog.L().Error("send_error", zap.String("channel", msg.Channel), zap.Error(err))
	}
}

func (b *bot) handleAddLocation(ctx context.Context, msg *gateway.Message, sender string, args []string) {
	loc := strings.TrimSpace(strings.Join(args, " "))
	if loc == "" {
		b.send(ctx, msg.Channel, "location.not_found", map[string]any{"Location": loc})
		return
	}
	if err := b.locations.Add(ctx, loc); err != nil {
		if errors.Is(err, location.ErrTooSimilar) {
			existing, cErr := b.locations.Closest(ctx, loc)
			if cErr != nil {
				existing = ""
			}
			b.send(ctx, msg.Channel, "location.too_similar",
				map[string]any{"Location": loc, "Existing": existing})
			return
		}
		b.sendError(ctx, msg.Channel, err)
		return
	}
	b.send(ctx, b.cfg.MainChannel, "location.added", map[string]any{"Location": loc, "By": sender})
	if msg.Channel != b.cfg.MainChannel {
		b.send(ctx, msg.Channel, "location.added_confirm", map[string]any{"Location": loc})
	}
}

func (b *bot) handleDelLocation(ctx context.Context, msg *gateway.Message, sender string, args []string) {
	loc := strings.TrimSpace(strings.Join(args, " "))
	if err := b.locations.Remove(ctx, loc); err != nil {
		if errors.Is(err, location.ErrNotFound) {
			b.send(ctx, msg.Channel, "location.not_found", map[string]any{"Location": loc})
			return
		}
		b.sendError(ctx, msg.Channel, err)
		return
	}
	b.send(ctx, b.cfg.MainChannel, "location.deleted", map[string]any{"Location": loc, "By": sender})
	if msg.Channel != b.cfg.MainChannel {
		b.send(ctx, msg.Channel, "location.deleted_confirm", map[string]any{"Location": loc})
	}
}

func (b *bot) sendHelp(ctx context.Context, channel string) {
	b.send(ctx, channel, "help.text", map[string]any{"Prefix": b.cfg.BotPrefix})
}

func (b *bot) send(ctx context.Context, channel, key string, data map[string]any) {
	text := b.messages.MustRender(key, data)
	if err := b.client.SendMessage(ctx, channel, text); err != nil {
		obslog.L().Error("send_error", zap.String("channel", channel), zap.String("key", key), zap.Error(err))
	}
}

// sendError maps a domain error to its user-facing template.
func (b *bot) sendError(ctx context.Context, channel string, err error) {
	b.send(ctx, channel, errorKey(err), nil)
}

func errorKey(err error) string {
	switch {
	case errors.Is(err, game.ErrNoActiveSession):
		return "errors.no_game"
	case errors.Is(err, game.ErrNoSuggestion):
		return "suggest.none_open"
	case errors.Is(err, game.ErrProposalAlreadyOpen):
		return "suggest.already_open"
	case errors.Is(err, game.ErrInsufficientPlayers):
		return "start.insufficient"
	case errors.Is(err, game.ErrDuplicateReaction):
		return "start.duplicate"
	case errors.Is(err, game.ErrInvalidDuration):
		return "start.bad_times"
	case errors.Is(err, game.ErrNotAPlayer):
		return "errors.not_a_player"
	case errors.Is(err, game.ErrNotARunner):
		return "errors.not_a_runner"
	case errors.Is(err, game.ErrNotAHunter):
		return "errors.not_a_hunter"
	case errors.Is(err, game.ErrNotInEndPhase):
		return "errors.not_end_phase"
	case errors.Is(err, game.ErrPermissionDenied):
		return "errors.permission"
	case errors.Is(err, game.ErrPhaseAlreadyPassed):
		return "errors.phase_passed"
	case errors.Is(err, game.ErrInvalidShorten):
		return "errors.bad_shorten"
	case errors.Is(err, game.ErrInvalidPhase):
		return "errors.bad_phase"
	case errors.Is(err, game.ErrAlreadyDecided):
		return "errors.already_decided"
	case errors.Is(err, game.ErrAlreadyPlaying):
		return "player.already_in"
	case errors.Is(err, location.ErrEmpty):
		return "location.none"
	default:
		return "errors.internal"
	}
}

func parseTimes(args []string) (h, g, e int, ok bool) {
	vals := make([]int, 0, 3)
	for _, a := range args[:3] {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return 0, 0, 0, false
		}
		vals = append(vals, n)
	}
	return vals[0], vals[1], vals[2], true
}
