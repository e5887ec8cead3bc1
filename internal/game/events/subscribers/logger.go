package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.Str("variant", e.Variant)

	case *events.GameEndedEvent:
		logEvent.
			Str("reason", e.Reason).
			Bool("won", e.Won).
			Dur("duration", e.Duration).
			Int("final_tick", e.FinalTick)

	case *events.TickStartedEvent:
		logEvent.
			Int("tick", e.Metadata.Tick).
			Str("side", e.Side.String())

	case *events.TickEndedEvent:
		logEvent.
			Int("tick", e.Metadata.Tick).
			Int("round", e.Metadata.Round).
			Str("side", e.Side.String()).
			Int("moves", e.Moves).
			Str("status", e.Status).
			Dur("process_time", e.ProcessedTime)

	case *events.UnitMovedEvent:
		logEvent.
			Str("unit", e.Unit.String()).
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Float64("score", e.Score).
			Bool("promoted", e.Promoted)

	case *events.UnitCapturedEvent:
		logEvent.
			Str("by", e.By.String()).
			Str("captured", e.Captured.String()).
			Str("at", e.At.String()).
			Int("reward", e.Reward)

	case *events.RetreatExecutedEvent:
		logEvent.
			Str("unit", e.Unit.String()).
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Bool("swapped", e.Swapped).
			Bool("displaced", e.Displaced)

	case *events.BreachEvent:
		logEvent.Int("breaches", len(e.Squares))

	case *events.DamageAppliedEvent:
		logEvent.
			Int("amount", e.Amount).
			Int("health", e.Health).
			Str("reason", e.Reason)

	case *events.KingRespawnedEvent:
		logEvent.Str("at", e.At.String())

	case *events.UnitSpawnedEvent:
		logEvent.
			Str("kind", e.Kind.String()).
			Str("at", e.At.String()).
			Int("round", e.Metadata.Round)

	case *events.SpawnBlockedEvent:
		logEvent.
			Str("kind", e.Kind.String()).
			Int("round", e.Metadata.Round)

	case *events.UnitPurchasedEvent:
		logEvent.
			Str("kind", e.Kind.String()).
			Int("cost", e.Cost).
			Str("at", e.At.String()).
			Int("gold_left", e.GoldLeft)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)

	case *events.ArenaMoveEvent:
		logEvent.
			Int("arena", e.Arena).
			Bool("white", e.White).
			Str("san", e.SAN).
			Bool("capture", e.Capture)

	case *events.ArenaPawnSpawnedEvent:
		logEvent.
			Int("source_arena", e.SourceArena).
			Int("target_arena", e.TargetArena).
			Str("square", e.Square).
			Bool("blocked", e.Blocked())
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
