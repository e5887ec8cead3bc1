package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/states"
)

// TurnProcessor handles the orchestration of a single tick:
// forced effects, then the side's action, then post-conditions.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// ProcessTick executes one complete tick. A tick always runs to completion once
// started; the context is only consulted before any mutation.
func (tp *TurnProcessor) ProcessTick(ctx context.Context) error {
	if err := tp.checkContext(ctx); err != nil {
		return err
	}
	if err := tp.validateGameState(); err != nil {
		return err
	}

	e := tp.engine
	side := e.gs.SideToMove
	e.tick = tickScratch{side: side}

	tickLogger := tp.logger.With().Int("tick", e.gs.Tick).Str("side", side.String()).Logger()
	tickLogger.Debug().Msg("Starting tick")

	tickStart := time.Now()
	e.eventBus.Publish(events.NewTickStartedEvent(e.gameID, e.meta(), side))

	if err := tp.enter(states.PhaseResolvingForcedEffects, "tick started"); err != nil {
		return err
	}
	e.variant.forcedEffects(e)

	if err := tp.enter(states.PhaseResolvingAction, "forced effects resolved"); err != nil {
		return err
	}
	e.variant.action(e)

	if err := tp.enter(states.PhaseResolvingPostConditions, "action resolved"); err != nil {
		return err
	}
	e.variant.postConditions(e)

	e.gs.Tick++
	e.stateMachine.GetContext().Tick = e.gs.Tick

	if e.gs.GameOver {
		if err := tp.finishGame(tickLogger); err != nil {
			return err
		}
	} else if err := tp.enter(states.PhaseAwaitingTick, "tick resolved"); err != nil {
		return err
	}

	e.eventBus.Publish(events.NewTickEndedEvent(e.gameID, e.meta(), side, e.tick.moves, e.gs.Status, time.Since(tickStart)))

	tickLogger.Debug().
		Int("moves", e.tick.moves).
		Int("gold", e.gs.Gold).
		Int("health", e.gs.Health).
		Str("status", e.gs.Status).
		Msg("Tick finished")
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("tick", tp.engine.gs.Tick).
			Msg("Tick cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can resolve a tick
func (tp *TurnProcessor) validateGameState() error {
	if tp.engine.gs.GameOver {
		tp.logger.Debug().
			Int("tick", tp.engine.gs.Tick).
			Msg("Attempted to tick a game that is already over")
		return fmt.Errorf("tick %d: %w", tp.engine.gs.Tick, core.ErrGameOver)
	}

	currentPhase := tp.engine.stateMachine.CurrentPhase()
	if !currentPhase.CanReceiveInputs() {
		tp.logger.Warn().
			Str("current_phase", currentPhase.String()).
			Msg("Attempted to tick in a phase that cannot start one")
		return fmt.Errorf("game is in %s phase and cannot start a tick", currentPhase)
	}
	return nil
}

func (tp *TurnProcessor) enter(phase states.GamePhase, reason string) error {
	if err := tp.engine.stateMachine.TransitionTo(phase, reason); err != nil {
		return fmt.Errorf("tick %d: %w", tp.engine.gs.Tick, err)
	}
	return nil
}

// finishGame performs the single transition into Terminal and announces it
func (tp *TurnProcessor) finishGame(tickLogger zerolog.Logger) error {
	e := tp.engine
	gameCtx := e.stateMachine.GetContext()
	gameCtx.SetEnded(e.gs.EndReason, false)

	if err := tp.enter(states.PhaseTerminal, e.gs.EndReason); err != nil {
		return err
	}

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.gs.EndReason, false, gameCtx.GetElapsedTime(), e.gs.Tick))
	tickLogger.Info().
		Str("reason", e.gs.EndReason).
		Int("final_tick", e.gs.Tick).
		Int("kills", e.gs.Kills).
		Msg("Game over")
	return nil
}
