package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides session information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this session
	GameID string

	// Variant names the rule set being simulated
	Variant string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Tick is the number of ticks resolved so far
	Tick int

	// StartTime is when the current game started
	StartTime time.Time

	// EndReason explains why the game reached PhaseTerminal
	EndReason string

	// Won is true when the terminal state is a player victory
	Won bool

	// Metadata for custom state data
	Metadata map[string]interface{}
}

// NewGameContext creates a new game context
func NewGameContext(gameID, variant string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:   gameID,
		Variant:  variant,
		Logger:   logger.With().Str("game_id", gameID).Logger(),
		Metadata: make(map[string]interface{}),
	}
}

// GetElapsedTime returns the time elapsed since game start
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

// SetEnded records the terminal outcome before entering PhaseTerminal
func (gc *GameContext) SetEnded(reason string, won bool) {
	gc.EndReason = reason
	gc.Won = won
}

// SetMetadata stores custom data for states
func (gc *GameContext) SetMetadata(key string, value interface{}) {
	gc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (gc *GameContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := gc.Metadata[key]
	return val, exists
}
