package states

import "fmt"

// GamePhase represents the current phase of tick resolution
type GamePhase int

const (
	// PhaseInitializing - Session object creation
	PhaseInitializing GamePhase = iota

	// PhaseAwaitingTick - Idle between ticks, inputs accepted
	PhaseAwaitingTick

	// PhaseResolvingForcedEffects - Pending retreats and other carried-over effects
	PhaseResolvingForcedEffects

	// PhaseResolvingAction - The side to move acts
	PhaseResolvingAction

	// PhaseResolvingPostConditions - Breaches, damage, respawn and defeat checks
	PhaseResolvingPostConditions

	// PhaseTerminal - Game over, only reset leaves it
	PhaseTerminal

	// PhaseReset - Discarding all mutable state
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseAwaitingTick:
		return "AwaitingTick"
	case PhaseResolvingForcedEffects:
		return "ResolvingForcedEffects"
	case PhaseResolvingAction:
		return "ResolvingAction"
	case PhaseResolvingPostConditions:
		return "ResolvingPostConditions"
	case PhaseTerminal:
		return "Terminal"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseTerminal
}

// CanReceiveInputs returns true if player inputs are applied in this phase
func (p GamePhase) CanReceiveInputs() bool {
	return p == PhaseAwaitingTick
}

// IsResolving returns true while a tick is in progress
func (p GamePhase) IsResolving() bool {
	return p == PhaseResolvingForcedEffects || p == PhaseResolvingAction || p == PhaseResolvingPostConditions
}

// AllowedTransitions returns the valid phases this phase can transition to.
// Reset is reachable from every phase.
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseAwaitingTick, PhaseReset}
	case PhaseAwaitingTick:
		// Terminal directly covers inputs that end the game between ticks
		return []GamePhase{PhaseResolvingForcedEffects, PhaseTerminal, PhaseReset}
	case PhaseResolvingForcedEffects:
		return []GamePhase{PhaseResolvingAction, PhaseReset}
	case PhaseResolvingAction:
		return []GamePhase{PhaseResolvingPostConditions, PhaseReset}
	case PhaseResolvingPostConditions:
		return []GamePhase{PhaseAwaitingTick, PhaseTerminal, PhaseReset}
	case PhaseTerminal:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseAwaitingTick}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Initializing":
		return PhaseInitializing
	case "AwaitingTick":
		return PhaseAwaitingTick
	case "ResolvingForcedEffects":
		return PhaseResolvingForcedEffects
	case "ResolvingAction":
		return PhaseResolvingAction
	case "ResolvingPostConditions":
		return PhaseResolvingPostConditions
	case "Terminal":
		return PhaseTerminal
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing
	}
}
