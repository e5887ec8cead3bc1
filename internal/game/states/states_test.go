package states

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStates_PhasesMatch(t *testing.T) {
	tests := []struct {
		state State
		phase GamePhase
	}{
		{NewInitializingState(), PhaseInitializing},
		{NewAwaitingTickState(), PhaseAwaitingTick},
		{NewResolvingForcedEffectsState(), PhaseResolvingForcedEffects},
		{NewResolvingActionState(), PhaseResolvingAction},
		{NewResolvingPostConditionsState(), PhaseResolvingPostConditions},
		{NewTerminalState(), PhaseTerminal},
		{NewResetState(), PhaseReset},
	}

	ctx := NewGameContext("g", "towerdefense", zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.phase, tt.state.Phase())
			assert.NoError(t, tt.state.Exit(ctx))
		})
	}
}

func TestAwaitingTickState_StampsStartOnce(t *testing.T) {
	ctx := NewGameContext("g", "moveback", zerolog.Nop())
	s := NewAwaitingTickState()

	assert.NoError(t, s.Enter(ctx))
	first := ctx.StartTime
	assert.False(t, first.IsZero())

	assert.NoError(t, s.Enter(ctx))
	assert.Equal(t, first, ctx.StartTime)
	assert.GreaterOrEqual(t, ctx.GetElapsedTime().Nanoseconds(), int64(0))
}

func TestTerminalState_Validate(t *testing.T) {
	ctx := NewGameContext("g", "moveback", zerolog.Nop())
	s := NewTerminalState()
	assert.ErrorIs(t, s.Validate(ctx), ErrNoEndReason)

	ctx.SetEnded("done", true)
	assert.NoError(t, s.Validate(ctx))
	assert.True(t, ctx.Won)
}
