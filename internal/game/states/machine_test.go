package states

import (
	"errors"
	"testing"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseAwaitingTick, "AwaitingTick"},
		{PhaseResolvingForcedEffects, "ResolvingForcedEffects"},
		{PhaseResolvingAction, "ResolvingAction"},
		{PhaseResolvingPostConditions, "ResolvingPostConditions"},
		{PhaseTerminal, "Terminal"},
		{PhaseReset, "Reset"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
			if tt.phase != GamePhase(999) {
				assert.Equal(t, tt.phase, ParsePhase(tt.expected))
			}
		})
	}
}

func TestGamePhase_Properties(t *testing.T) {
	assert.True(t, PhaseTerminal.IsTerminal())
	assert.False(t, PhaseAwaitingTick.IsTerminal())

	assert.True(t, PhaseAwaitingTick.CanReceiveInputs())
	assert.False(t, PhaseResolvingAction.CanReceiveInputs())
	assert.False(t, PhaseTerminal.CanReceiveInputs())

	assert.True(t, PhaseResolvingForcedEffects.IsResolving())
	assert.True(t, PhaseResolvingPostConditions.IsResolving())
	assert.False(t, PhaseAwaitingTick.IsResolving())
}

func TestGamePhase_ResetReachableFromEverywhere(t *testing.T) {
	for _, p := range []GamePhase{
		PhaseInitializing, PhaseAwaitingTick, PhaseResolvingForcedEffects,
		PhaseResolvingAction, PhaseResolvingPostConditions, PhaseTerminal,
	} {
		assert.True(t, p.CanTransitionTo(PhaseReset), p.String())
	}
	assert.Equal(t, []GamePhase{PhaseAwaitingTick}, PhaseReset.AllowedTransitions())
	assert.Equal(t, []GamePhase{PhaseReset}, PhaseTerminal.AllowedTransitions())
}

func newTestMachine(bus events.Publisher) *StateMachine {
	ctx := NewGameContext("test-game", "moveback", zerolog.Nop())
	return NewStateMachine(ctx, bus)
}

func runTick(t *testing.T, sm *StateMachine) {
	t.Helper()
	require.NoError(t, sm.TransitionTo(PhaseResolvingForcedEffects, "tick"))
	require.NoError(t, sm.TransitionTo(PhaseResolvingAction, "tick"))
	require.NoError(t, sm.TransitionTo(PhaseResolvingPostConditions, "tick"))
}

func TestStateMachine_TickCycle(t *testing.T) {
	bus := events.NewEventBus(zerolog.Nop())
	var transitions []*events.StateTransitionEvent
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		transitions = append(transitions, e.(*events.StateTransitionEvent))
	})

	sm := newTestMachine(bus)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())

	require.NoError(t, sm.TransitionTo(PhaseAwaitingTick, "ready"))
	assert.False(t, sm.GetContext().StartTime.IsZero())

	runTick(t, sm)
	require.NoError(t, sm.TransitionTo(PhaseAwaitingTick, "tick complete"))

	assert.Len(t, sm.GetHistory(), 5)
	require.Len(t, transitions, 5)
	assert.Equal(t, "ResolvingPostConditions", transitions[4].FromPhase)
	assert.Equal(t, "AwaitingTick", transitions[4].ToPhase)
}

func TestStateMachine_InvalidTransition(t *testing.T) {
	sm := newTestMachine(nil)
	err := sm.TransitionTo(PhaseResolvingAction, "skip")
	assert.Error(t, err)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.False(t, sm.CanTransitionTo(PhaseTerminal))
}

func TestStateMachine_TerminalRequiresReason(t *testing.T) {
	sm := newTestMachine(nil)
	require.NoError(t, sm.TransitionTo(PhaseAwaitingTick, "ready"))
	runTick(t, sm)

	err := sm.TransitionTo(PhaseTerminal, "defeat")
	assert.True(t, errors.Is(err, ErrNoEndReason))
	assert.Equal(t, PhaseResolvingPostConditions, sm.CurrentPhase())

	sm.GetContext().SetEnded("Health reached 0.", false)
	require.NoError(t, sm.TransitionTo(PhaseTerminal, "defeat"))
	assert.True(t, sm.CurrentPhase().IsTerminal())

	assert.Error(t, sm.TransitionTo(PhaseResolvingForcedEffects, "tick after end"))
}

func TestStateMachine_ResetFromTerminal(t *testing.T) {
	sm := newTestMachine(nil)
	require.NoError(t, sm.TransitionTo(PhaseAwaitingTick, "ready"))
	runTick(t, sm)
	ctx := sm.GetContext()
	ctx.Tick = 7
	ctx.SetMetadata("k", 1)
	ctx.SetEnded("Your king was captured.", false)
	require.NoError(t, sm.TransitionTo(PhaseTerminal, "defeat"))

	require.NoError(t, sm.Reset("reset requested"))
	assert.Equal(t, PhaseAwaitingTick, sm.CurrentPhase())
	assert.Equal(t, 0, ctx.Tick)
	assert.Empty(t, ctx.EndReason)
	_, ok := ctx.GetMetadata("k")
	assert.False(t, ok)

	history := sm.GetHistory()
	require.Len(t, history, 2)
	assert.Equal(t, PhaseReset, history[0].To)
	assert.Equal(t, PhaseAwaitingTick, history[1].To)
}

func TestStateMachine_ResetMidTick(t *testing.T) {
	sm := newTestMachine(nil)
	require.NoError(t, sm.TransitionTo(PhaseAwaitingTick, "ready"))
	require.NoError(t, sm.TransitionTo(PhaseResolvingForcedEffects, "tick"))

	require.NoError(t, sm.Reset("reset requested"))
	assert.Equal(t, PhaseAwaitingTick, sm.CurrentPhase())
}

type failingState struct{ phase GamePhase }

func (f failingState) Phase() GamePhase              { return f.phase }
func (f failingState) Enter(*GameContext) error      { return errors.New("enter failed") }
func (f failingState) Exit(*GameContext) error       { return nil }
func (f failingState) Validate(*GameContext) error   { return nil }

func TestStateMachine_EnterFailureRollsBack(t *testing.T) {
	sm := newTestMachine(nil)
	sm.RegisterState(failingState{phase: PhaseAwaitingTick})

	err := sm.TransitionTo(PhaseAwaitingTick, "ready")
	assert.Error(t, err)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
}

func TestStateMachine_HistoryIsBounded(t *testing.T) {
	sm := newTestMachine(nil)
	require.NoError(t, sm.TransitionTo(PhaseAwaitingTick, "ready"))
	for i := 0; i < 100; i++ {
		runTick(t, sm)
		require.NoError(t, sm.TransitionTo(PhaseAwaitingTick, "tick complete"))
	}
	assert.Len(t, sm.GetHistory(), sm.maxHistorySize)
}
