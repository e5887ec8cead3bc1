package states

import (
	"errors"
	"time"
)

// ErrNoEndReason is returned when entering PhaseTerminal without a recorded outcome
var ErrNoEndReason = errors.New("terminal state requires an end reason")

// InitializingState represents session construction
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// AwaitingTickState is the idle phase between ticks
type AwaitingTickState struct{}

func NewAwaitingTickState() State {
	return &AwaitingTickState{}
}

func (s *AwaitingTickState) Phase() GamePhase {
	return PhaseAwaitingTick
}

func (s *AwaitingTickState) Enter(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
		ctx.Logger.Info().Str("variant", ctx.Variant).Msg("Game started")
	}
	return nil
}

func (s *AwaitingTickState) Exit(ctx *GameContext) error {
	return nil
}

func (s *AwaitingTickState) Validate(ctx *GameContext) error {
	return nil
}

// ResolvingForcedEffectsState runs effects carried over from the previous tick
type ResolvingForcedEffectsState struct{}

func NewResolvingForcedEffectsState() State {
	return &ResolvingForcedEffectsState{}
}

func (s *ResolvingForcedEffectsState) Phase() GamePhase {
	return PhaseResolvingForcedEffects
}

func (s *ResolvingForcedEffectsState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("tick", ctx.Tick).Msg("Resolving forced effects")
	return nil
}

func (s *ResolvingForcedEffectsState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResolvingForcedEffectsState) Validate(ctx *GameContext) error {
	return nil
}

// ResolvingActionState is the phase in which the side to move acts
type ResolvingActionState struct{}

func NewResolvingActionState() State {
	return &ResolvingActionState{}
}

func (s *ResolvingActionState) Phase() GamePhase {
	return PhaseResolvingAction
}

func (s *ResolvingActionState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("tick", ctx.Tick).Msg("Resolving action")
	return nil
}

func (s *ResolvingActionState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResolvingActionState) Validate(ctx *GameContext) error {
	return nil
}

// ResolvingPostConditionsState applies breaches, damage and defeat checks
type ResolvingPostConditionsState struct{}

func NewResolvingPostConditionsState() State {
	return &ResolvingPostConditionsState{}
}

func (s *ResolvingPostConditionsState) Phase() GamePhase {
	return PhaseResolvingPostConditions
}

func (s *ResolvingPostConditionsState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("tick", ctx.Tick).Msg("Resolving post-conditions")
	return nil
}

func (s *ResolvingPostConditionsState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResolvingPostConditionsState) Validate(ctx *GameContext) error {
	return nil
}

// TerminalState represents a finished game
type TerminalState struct{}

func NewTerminalState() State {
	return &TerminalState{}
}

func (s *TerminalState) Phase() GamePhase {
	return PhaseTerminal
}

func (s *TerminalState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("reason", ctx.EndReason).
		Bool("won", ctx.Won).
		Int("final_tick", ctx.Tick).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *TerminalState) Exit(ctx *GameContext) error {
	return nil
}

func (s *TerminalState) Validate(ctx *GameContext) error {
	if ctx.EndReason == "" {
		return ErrNoEndReason
	}
	return nil
}

// ResetState clears the per-game context before play resumes
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Resetting game")
	ctx.Tick = 0
	ctx.EndReason = ""
	ctx.Won = false
	ctx.StartTime = time.Time{}
	ctx.Metadata = make(map[string]interface{})
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}
