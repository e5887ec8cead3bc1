package arena

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/states"
)

// VariantName is how the dual arena identifies itself in events and logs
const VariantName = "dualarena"

// ArenaCount is the number of boards in a match
const ArenaCount = 2

// Rules are the tunable numbers of the dual arena
type Rules struct {
	BotDelayMin time.Duration
	BotDelayMax time.Duration
}

// DefaultRules returns the stock bot pacing
func DefaultRules() Rules {
	return Rules{BotDelayMin: 450 * time.Millisecond, BotDelayMax: 950 * time.Millisecond}
}

// RulesFromConfig builds Rules from loaded configuration
func RulesFromConfig(c config.DualArenaConfig) Rules {
	return Rules{
		BotDelayMin: time.Duration(c.BotDelayMinMs) * time.Millisecond,
		BotDelayMax: time.Duration(c.BotDelayMaxMs) * time.Millisecond,
	}
}

// MatchConfig holds everything needed to build a Match
type MatchConfig struct {
	// Rules defaults to DefaultRules when zero
	Rules  Rules
	Rng    *rand.Rand
	Logger zerolog.Logger
	GameID string
	Now    func() time.Time
	// DumpEvents logs full event payloads
	DumpEvents           bool
	NotificationCapacity int
	NotificationTTL      time.Duration
}

// Match runs two arenas side by side. Every White capture on one board
// reinforces Black on the other; checkmate on either board ends the match.
// It is not safe for concurrent use.
type Match struct {
	rules  Rules
	rng    *rand.Rand
	logger zerolog.Logger
	gameID string
	now    func() time.Time

	arenas [ArenaCount]*Arena
	bot    *Bot

	eventBus      *events.EventBus
	notifications *subscribers.NotificationLog
	stateMachine  *states.StateMachine

	tick      int
	status    string
	gameOver  bool
	won       bool
	endReason string
}

// NewMatch creates a match ready for the player's first move
func NewMatch(ctx context.Context, cfg MatchConfig) (*Match, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}
	if cfg.Rules == (Rules{}) {
		cfg.Rules = DefaultRules()
	}
	if cfg.Rules.BotDelayMin < 0 || cfg.Rules.BotDelayMax < cfg.Rules.BotDelayMin {
		return nil, fmt.Errorf("invalid bot delay range %s..%s", cfg.Rules.BotDelayMin, cfg.Rules.BotDelayMax)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NotificationCapacity <= 0 {
		cfg.NotificationCapacity = subscribers.DefaultNotificationCapacity
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = subscribers.DefaultNotificationTTL
	}

	logger := cfg.Logger.With().Str("component", "DualArena").Str("game_id", cfg.GameID).Logger()
	eventBus := events.NewEventBus(logger)

	m := &Match{
		rules:         cfg.Rules,
		rng:           cfg.Rng,
		logger:        logger,
		gameID:        cfg.GameID,
		now:           cfg.Now,
		bot:           NewBot(cfg.Rng, DefaultBotWeights()),
		eventBus:      eventBus,
		notifications: subscribers.NewNotificationLog("notifications", cfg.NotificationCapacity, cfg.NotificationTTL),
		stateMachine:  states.NewStateMachine(states.NewGameContext(cfg.GameID, VariantName, logger), eventBus),
	}
	m.notifications.SetClock(cfg.Now)
	m.newArenas()

	eventLogger := subscribers.NewLoggerSubscriber("event_logger", logger, zerolog.DebugLevel)
	eventLogger.SetDevMode(cfg.DumpEvents)
	eventBus.Subscribe(eventLogger)
	eventBus.Subscribe(m.notifications)

	if err := m.stateMachine.TransitionTo(states.PhaseAwaitingTick, "Match initialized"); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}
	eventBus.Publish(events.NewGameStartedEvent(m.gameID, VariantName))

	logger.Info().
		Dur("bot_delay_min", cfg.Rules.BotDelayMin).
		Dur("bot_delay_max", cfg.Rules.BotDelayMax).
		Msg("Match created successfully")
	return m, nil
}

func (m *Match) newArenas() {
	for i := range m.arenas {
		m.arenas[i] = newArena(i)
	}
	m.status = "Click to move White on either board. Each White capture spawns a Black pawn on the other board."
}

// Apply routes an input to the matching operation. Shop inputs do not exist here.
func (m *Match) Apply(ctx context.Context, input core.Input) (bool, error) {
	if input == nil {
		return false, core.ErrUnknownInput
	}
	if err := input.Validate(); err != nil {
		return false, fmt.Errorf("invalid %s input: %w", input.GetKind(), err)
	}

	switch in := input.(type) {
	case core.MoveInput:
		return m.Move(in.Arena, in.From, in.To)
	case core.ResetInput:
		return true, m.Reset()
	case core.TickInput:
		n := in.Count
		if n == 0 {
			n = 1
		}
		played := 0
		for i := 0; i < n && !m.gameOver; i++ {
			k, err := m.Tick(ctx)
			played += k
			if err != nil {
				return played > 0, err
			}
		}
		return played > 0, nil
	}
	return false, fmt.Errorf("%w: %s is not supported by the dual arena", core.ErrUnknownInput, input.GetKind())
}

// Move plays a White move on arena index. When several promotions match the
// squares the queen is chosen. Rejections leave a reason in the status text.
func (m *Match) Move(index int, from, to core.Coordinate) (bool, error) {
	if m.gameOver {
		return false, nil
	}
	if index < 0 || index >= ArenaCount {
		return false, fmt.Errorf("%w: %d", core.ErrInvalidArena, index)
	}

	a := m.arenas[index]
	if a.Ended() {
		return false, nil
	}
	if a.Turn() != chess.White {
		m.notifications.Add(fmt.Sprintf("Board %d: waiting for black bot...", a.Number()), 0)
		return false, nil
	}

	fromSq, toSq := SquareOf(from), SquareOf(to)
	if p := a.game.Position().Board().Piece(fromSq); p == chess.NoPiece || p.Color() != chess.White {
		m.status = "Select one of your pieces first."
		return false, nil
	}
	candidates := a.candidates(fromSq, toSq)
	if len(candidates) == 0 {
		m.status = "That move is not legal."
		return false, nil
	}

	if err := m.playMove(a, choosePlayerMove(candidates), true); err != nil {
		return false, err
	}

	if m.checkGameOver() {
		if err := m.finish(); err != nil {
			return true, err
		}
		return true, nil
	}
	m.ensureBotTimers(m.now())
	return true, nil
}

// LegalTargets lists where the White piece on from may move in arena index
func (m *Match) LegalTargets(index int, from core.Coordinate) []core.Coordinate {
	if index < 0 || index >= ArenaCount || m.gameOver {
		return nil
	}
	a := m.arenas[index]
	if a.Turn() != chess.White {
		return nil
	}
	var out []core.Coordinate
	for _, sq := range a.targets(SquareOf(from)) {
		out = append(out, CoordinateOf(sq))
	}
	return out
}

// playMove applies a move, announces it and propagates a White capture
func (m *Match) playMove(a *Arena, mv *chess.Move, white bool) error {
	san, capture, err := a.play(mv)
	if err != nil {
		m.logger.Error().Err(err).Int("arena", a.index).Str("move", mv.String()).Msg("Failed to apply move")
		return err
	}
	side := "Black"
	if white {
		side = "White"
	}
	m.status = fmt.Sprintf("Board %d: %s played %s", a.Number(), side, san)
	m.eventBus.Publish(events.NewArenaMoveEvent(m.gameID, a.index, white, san, capture))

	if white && capture {
		return m.reinforce(a)
	}
	return nil
}

// reinforce spawns a Black pawn on the board opposite source
func (m *Match) reinforce(source *Arena) error {
	target := m.arenas[1-source.index]
	next, at, ok, err := spawnBlackPawn(m.rng, target.game)
	if err != nil {
		m.logger.Error().Err(err).Int("arena", target.index).Msg("Failed to spawn reinforcement pawn")
		return err
	}

	square := ""
	if ok {
		target.game = next
		square = at.String()
		m.logger.Debug().Int("source", source.index).Int("target", target.index).Str("square", square).Msg("Reinforcement pawn spawned")
	} else {
		m.logger.Debug().Int("source", source.index).Int("target", target.index).Msg("No vacancy for reinforcement pawn")
	}
	m.eventBus.Publish(events.NewArenaPawnSpawnedEvent(m.gameID, source.index, target.index, square))
	return nil
}

// Update plays every bot move that is due at now and schedules the rest.
// Returns how many bot moves were played.
func (m *Match) Update(ctx context.Context, now time.Time) (int, error) {
	if m.gameOver {
		return 0, nil
	}

	var due []*Arena
	for _, a := range m.arenas {
		if a.Ended() || a.Turn() != chess.Black {
			continue
		}
		if a.nextBot.IsZero() {
			a.nextBot = now.Add(m.botDelay())
			continue
		}
		if now.Before(a.nextBot) {
			continue
		}
		due = append(due, a)
	}
	if len(due) == 0 {
		return 0, nil
	}
	return m.resolve(ctx, due, now)
}

// Tick plays the bot on every board where Black is to move, ignoring timers
func (m *Match) Tick(ctx context.Context) (int, error) {
	if m.gameOver {
		return 0, fmt.Errorf("tick %d: %w", m.tick, core.ErrGameOver)
	}
	var due []*Arena
	for _, a := range m.arenas {
		if !a.Ended() && a.Turn() == chess.Black {
			due = append(due, a)
		}
	}
	if len(due) == 0 {
		return 0, nil
	}
	return m.resolve(ctx, due, m.now())
}

// resolve runs one bot pass through the tick phases
func (m *Match) resolve(ctx context.Context, due []*Arena, now time.Time) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	if err := m.enter(states.PhaseResolvingForcedEffects, "bot move due"); err != nil {
		return 0, err
	}
	if err := m.enter(states.PhaseResolvingAction, "no forced effects"); err != nil {
		return 0, err
	}

	played := 0
	for _, a := range due {
		if m.gameOver {
			break
		}
		a.nextBot = time.Time{}
		mv, ok := m.bot.ChooseMove(a.game.Position())
		if !ok {
			continue
		}
		if err := m.playMove(a, mv, false); err != nil {
			return played, err
		}
		played++
		m.checkGameOver()
	}

	if err := m.enter(states.PhaseResolvingPostConditions, "bot moves played"); err != nil {
		return played, err
	}
	m.tick++
	m.stateMachine.GetContext().Tick = m.tick

	if m.gameOver {
		return played, m.finish()
	}
	if err := m.enter(states.PhaseAwaitingTick, "bot pass resolved"); err != nil {
		return played, err
	}
	m.ensureBotTimers(now)
	return played, nil
}

// ensureBotTimers schedules a bot move on every board waiting for Black
func (m *Match) ensureBotTimers(now time.Time) {
	for _, a := range m.arenas {
		if a.Ended() || a.Turn() != chess.Black {
			a.nextBot = time.Time{}
			continue
		}
		if !a.nextBot.After(now) {
			a.nextBot = now.Add(m.botDelay())
		}
	}
}

func (m *Match) botDelay() time.Duration {
	span := m.rules.BotDelayMax - m.rules.BotDelayMin
	if span <= 0 {
		return m.rules.BotDelayMin
	}
	ms := m.rng.Int63n(span.Milliseconds() + 1)
	return m.rules.BotDelayMin + time.Duration(ms)*time.Millisecond
}

// checkGameOver records the first decisive result. Checkmate on any board
// decides the match; otherwise it ends once every board has ended.
func (m *Match) checkGameOver() bool {
	if m.gameOver {
		return false
	}
	for _, a := range m.arenas {
		if !a.Checkmated() {
			continue
		}
		if a.Turn() == chess.Black {
			m.end(fmt.Sprintf("Board %d: White checkmated Black. White team wins.", a.Number()), true)
		} else {
			m.end(fmt.Sprintf("Board %d: Black checkmated White. White team loses.", a.Number()), false)
		}
		return true
	}
	for _, a := range m.arenas {
		if !a.Ended() {
			return false
		}
	}
	m.end("Both boards ended without checkmate.", false)
	return true
}

func (m *Match) end(reason string, won bool) {
	m.gameOver = true
	m.won = won
	m.endReason = reason
	m.status = reason
	for _, a := range m.arenas {
		a.nextBot = time.Time{}
	}
}

// finish performs the single transition into Terminal and announces it
func (m *Match) finish() error {
	gameCtx := m.stateMachine.GetContext()
	gameCtx.SetEnded(m.endReason, m.won)
	if err := m.enter(states.PhaseTerminal, m.endReason); err != nil {
		return err
	}
	m.eventBus.Publish(events.NewGameEndedEvent(m.gameID, m.endReason, m.won, gameCtx.GetElapsedTime(), m.tick))
	m.logger.Info().Str("reason", m.endReason).Bool("won", m.won).Msg("Match over")
	return nil
}

func (m *Match) enter(phase states.GamePhase, reason string) error {
	if err := m.stateMachine.TransitionTo(phase, reason); err != nil {
		return fmt.Errorf("tick %d: %w", m.tick, err)
	}
	return nil
}

// Reset discards both boards and starts over
func (m *Match) Reset() error {
	m.newArenas()
	m.tick = 0
	m.gameOver, m.won, m.endReason = false, false, ""
	m.notifications.Clear()

	if err := m.stateMachine.Reset("reset requested"); err != nil {
		return fmt.Errorf("reset state machine: %w", err)
	}
	m.logger.Info().Msg("Match reset")
	m.eventBus.Publish(events.NewGameStartedEvent(m.gameID, VariantName))
	return nil
}

// Snapshot is the read-only view a render shell or remote driver polls
type Snapshot struct {
	GameID        string
	Phase         string
	Tick          int
	Arenas        []ArenaSnapshot
	Status        string
	Notifications []string
	GameOver      bool
	Won           bool
	EndReason     string
}

// Snapshot returns a copy of everything a render shell needs
func (m *Match) Snapshot() Snapshot {
	now := m.now()
	s := Snapshot{
		GameID:        m.gameID,
		Phase:         m.stateMachine.CurrentPhase().String(),
		Tick:          m.tick,
		Status:        m.status,
		Notifications: m.notifications.Active(),
		GameOver:      m.gameOver,
		Won:           m.won,
		EndReason:     m.endReason,
	}
	for _, a := range m.arenas {
		s.Arenas = append(s.Arenas, a.snapshot(now))
	}
	return s
}

// Public accessors
func (m *Match) GameID() string                              { return m.gameID }
func (m *Match) IsGameOver() bool                            { return m.gameOver }
func (m *Match) Won() bool                                   { return m.won }
func (m *Match) EndReason() string                           { return m.endReason }
func (m *Match) StatusText() string                          { return m.status }
func (m *Match) CurrentPhase() states.GamePhase              { return m.stateMachine.CurrentPhase() }
func (m *Match) EventBus() *events.EventBus                  { return m.eventBus }
func (m *Match) Notifications() *subscribers.NotificationLog { return m.notifications }
func (m *Match) Arena(i int) *Arena                          { return m.arenas[i] }
