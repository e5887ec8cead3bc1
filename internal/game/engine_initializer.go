package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/ai"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/rules"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/spawn"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/states"
)

// GameConfig holds everything needed to build an Engine
type GameConfig struct {
	Variant Variant
	// Rules defaults to DefaultRules(Variant) when zero
	Rules  Rules
	Rng    *rand.Rand
	Logger zerolog.Logger
	GameID string
	// Now supplies the time for the tick clock; defaults to time.Now
	Now func() time.Time
	// DumpEvents logs full event payloads
	DumpEvents bool
	// NotificationCapacity and NotificationTTL size the player-facing feed
	NotificationCapacity int
	NotificationTTL      time.Duration
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// NewEngine creates a ready-to-tick engine
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before start")
		return nil, ctx.Err()
	default:
	}

	variant, err := ei.resolveVariant()
	if err != nil {
		return nil, err
	}

	ei.setupDefaults(variant)

	engine, err := ei.createEngine(variant)
	if err != nil {
		return nil, err
	}

	ei.setupEventHandling(engine)

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(engine.gameID, string(variant.name())))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Str("variant", string(variant.name())).
		Dur("tick_interval", ei.config.Rules.TickInterval).
		Msg("Engine created successfully")

	return engine, nil
}

func (ei *EngineInitializer) resolveVariant() (ruleset, error) {
	switch ei.config.Variant {
	case VariantMoveback, "":
		return movebackRules{}, nil
	case VariantTowerDefense:
		return towerDefenseRules{}, nil
	}
	return nil, fmt.Errorf("grid engine cannot run %q: %w", ei.config.Variant, ErrNotGridVariant)
}

// setupDefaults fills in missing configuration
func (ei *EngineInitializer) setupDefaults(v ruleset) {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.Rules.Catalog == nil {
		ei.config.Rules = DefaultRules(v.name())
	}
	if ei.config.Now == nil {
		ei.config.Now = time.Now
	}
	if ei.config.NotificationCapacity <= 0 {
		ei.config.NotificationCapacity = subscribers.DefaultNotificationCapacity
	}
	if ei.config.NotificationTTL <= 0 {
		ei.config.NotificationTTL = subscribers.DefaultNotificationTTL
	}
}

// createEngine wires the engine with all its components
func (ei *EngineInitializer) createEngine(v ruleset) (*Engine, error) {
	cfg := ei.config
	logger := ei.logger.With().Str("game_id", cfg.GameID).Logger()

	schedule := v.spawnSchedule(cfg.Rules)
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spawn schedule: %w", err)
	}

	eventBus := events.NewEventBus(logger)
	gameContext := states.NewGameContext(cfg.GameID, string(v.name()), logger)

	engine := &Engine{
		gs:            newGameState(cfg.Rules, v),
		rules:         cfg.Rules,
		variant:       v,
		rng:           cfg.Rng,
		logger:        logger,
		gameID:        cfg.GameID,
		now:           cfg.Now,
		eventBus:      eventBus,
		notifications: subscribers.NewNotificationLog("notifications", cfg.NotificationCapacity, cfg.NotificationTTL),
		stateMachine:  states.NewStateMachine(gameContext, eventBus),
		clock:         NewClock(cfg.Rules.TickInterval, cfg.Now()),
		winCondition:  rules.NewWinConditionChecker(logger),
		// The auto-battle king refuses squares an attacker pawn could take next turn
		defenderMoves: rules.NewLegalMoveCalculator(rules.Options{AvoidPawnThreats: v.name() == VariantMoveback}),
		attackerMoves: rules.NewLegalMoveCalculator(rules.Options{}),
		defenderEval:  ai.NewDefenderEvaluator(cfg.Rng, ai.DefaultDefenderWeights()),
		attackerEval:  ai.NewAttackerEvaluator(cfg.Rng, ai.DefaultAttackerWeights()),
		spawner:       spawn.NewController(cfg.Rng, schedule),
	}
	engine.notifications.SetClock(cfg.Now)
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine, nil
}

// setupEventHandling subscribes the logging and notification subscribers
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	eventLogger := subscribers.NewLoggerSubscriber("event_logger", engine.logger, zerolog.DebugLevel)
	eventLogger.SetDevMode(ei.config.DumpEvents)
	engine.eventBus.Subscribe(eventLogger)
	engine.eventBus.Subscribe(engine.notifications)
}

// initializeStateMachine moves the machine into its idle phase
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	if err := engine.stateMachine.TransitionTo(states.PhaseAwaitingTick, "Engine initialized"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to AwaitingTick state")
		return err
	}
	return nil
}
