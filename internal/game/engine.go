package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/ai"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/rules"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/spawn"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/states"
)

// ruleset is the variant-specific half of tick resolution
type ruleset interface {
	name() Variant
	firstSide() core.Side
	startStatus() string
	allowsMoves() bool
	shopTexts() shopTexts
	spawnSchedule(r Rules) spawn.Schedule

	forcedEffects(e *Engine)
	action(e *Engine)
	postConditions(e *Engine)
}

// tickScratch carries facts from the action phase to post-conditions
type tickScratch struct {
	side         core.Side
	moves        int
	kingCaptures int
	attackerTurn bool
}

// Engine runs one grid-variant session. It is not safe for concurrent use;
// callers on other goroutines serialise access themselves.
type Engine struct {
	gs      *GameState
	rules   Rules
	variant ruleset
	rng     *rand.Rand
	logger  zerolog.Logger
	gameID  string
	now     func() time.Time

	eventBus      *events.EventBus
	notifications *subscribers.NotificationLog
	stateMachine  *states.StateMachine
	turnProcessor *TurnProcessor
	clock         *Clock

	winCondition  *rules.WinConditionChecker
	defenderMoves *rules.LegalMoveCalculator
	attackerMoves *rules.LegalMoveCalculator
	defenderEval  ai.Evaluator
	attackerEval  ai.Evaluator
	spawner       *spawn.Controller

	tick tickScratch
}

// newGameState builds the start-of-game state: an empty board but for the defender king
func newGameState(r Rules, v ruleset) *GameState {
	board := core.NewBoard()
	board.Set(KingHome, core.NewUnit(core.Defender, core.King))
	return &GameState{
		Board:      board,
		Gold:       r.StartingGold,
		Health:     r.StartingHealth,
		SideToMove: v.firstSide(),
		Status:     v.startStatus(),
	}
}

// Tick resolves exactly one tick regardless of the clock
func (e *Engine) Tick(ctx context.Context) error {
	return e.turnProcessor.ProcessTick(ctx)
}

// Update drains every tick that is due at now. It stops early on game over and
// returns how many ticks ran.
func (e *Engine) Update(ctx context.Context, now time.Time) (int, error) {
	ran := 0
	for !e.gs.GameOver && e.clock.Due(now) {
		if err := e.turnProcessor.ProcessTick(ctx); err != nil {
			return ran, err
		}
		ran++
	}
	return ran, nil
}

// Apply routes an input to the matching operation. The bool reports whether the
// input changed the game; rejected gameplay inputs leave a reason in the status text.
func (e *Engine) Apply(ctx context.Context, input core.Input) (bool, error) {
	if input == nil {
		return false, core.ErrUnknownInput
	}
	if err := input.Validate(); err != nil {
		return false, fmt.Errorf("invalid %s input: %w", input.GetKind(), err)
	}

	switch in := input.(type) {
	case core.PurchaseInput:
		return e.Purchase(in.Piece), nil
	case core.PlaceInput:
		return e.Place(in.At), nil
	case core.MoveInput:
		return e.Move(in.From, in.To), nil
	case core.ResetInput:
		return true, e.Reset()
	case core.TickInput:
		n := in.Count
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			if err := e.Tick(ctx); err != nil {
				return i > 0, err
			}
			if e.gs.GameOver {
				break
			}
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: %T", core.ErrUnknownInput, input)
}

// Move relocates one of the player's units. Only variants with interactive
// movement accept it.
func (e *Engine) Move(from, to core.Coordinate) bool {
	if e.gs.GameOver || !e.variant.allowsMoves() {
		return false
	}
	if !e.gs.Board.HasSide(from, core.Defender) {
		e.gs.Status = "Select one of your pieces first."
		return false
	}
	if !e.defenderMoves.IsLegal(e.gs.Board, from, to) {
		e.gs.Status = "That move is not legal."
		return false
	}

	res, ok := e.moveUnit(from, to, 0)
	if !ok {
		return false
	}
	if res.CapturedAttackerPawn() {
		e.gs.Status = fmt.Sprintf("+%d gold for killing a pawn.", e.rules.PawnKillReward)
	}
	if res.Promoted {
		e.gs.Status = "Pawn promoted to rook."
	}
	return true
}

// LegalDestinations lists where the player's unit on from may move
func (e *Engine) LegalDestinations(from core.Coordinate) []core.Coordinate {
	if !e.gs.Board.HasSide(from, core.Defender) {
		return nil
	}
	return e.defenderMoves.Destinations(e.gs.Board, from)
}

// Reset discards all mutable state and starts a fresh game
func (e *Engine) Reset() error {
	e.gs = newGameState(e.rules, e.variant)
	e.tick = tickScratch{}
	e.clock.Reset(e.now())
	e.notifications.Clear()

	if err := e.stateMachine.Reset("reset requested"); err != nil {
		return fmt.Errorf("reset state machine: %w", err)
	}

	e.logger.Info().Msg("Game reset")
	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, string(e.variant.name())))
	return nil
}

// moveUnit applies a move, publishes it and settles any capture
func (e *Engine) moveUnit(from, to core.Coordinate, score float64) (core.MoveResult, bool) {
	res, ok := core.ApplyMove(e.gs.Board, from, to)
	if !ok {
		return res, false
	}
	e.tick.moves++
	e.eventBus.Publish(events.NewUnitMovedEvent(e.gameID, e.meta(), res, score))
	if res.Capture {
		e.creditCapture(res.Mover, res.Captured, to)
	}
	return res, true
}

// spawnStep runs the spawn controller for round and publishes the outcome
func (e *Engine) spawnStep(round int) spawn.Result {
	res := e.spawner.Step(e.gs.Board, round)
	switch {
	case res.Spawned:
		e.eventBus.Publish(events.NewUnitSpawnedEvent(e.gameID, e.meta(), res.Kind, res.At))
	case res.Attempted:
		e.eventBus.Publish(events.NewSpawnBlockedEvent(e.gameID, e.meta(), res.Kind))
	}
	return res
}

// defeat records the first terminal reason; the tick turns it into a state transition
func (e *Engine) defeat(reason string) {
	if e.gs.GameOver {
		return
	}
	e.gs.GameOver = true
	e.gs.EndReason = reason
	e.gs.Selected = nil
}

func (e *Engine) round() int {
	if e.variant.name() == VariantTowerDefense {
		return e.gs.Wave
	}
	return e.gs.AttackerRound
}

func (e *Engine) meta() events.EventMetadata {
	return events.EventMetadata{Tick: e.gs.Tick, Round: e.round()}
}

// Snapshot returns a copy of everything a render shell needs
func (e *Engine) Snapshot() Snapshot {
	now := e.now()
	s := Snapshot{
		GameID:        e.gameID,
		Variant:       e.variant.name(),
		Phase:         e.stateMachine.CurrentPhase().String(),
		Board:         *e.gs.Board,
		Gold:          e.gs.Gold,
		Kills:         e.gs.Kills,
		Health:        e.gs.Health,
		Tick:          e.gs.Tick,
		AttackerRound: e.gs.AttackerRound,
		Wave:          e.gs.Wave,
		SpawnInterval: e.spawner.Interval(e.spawner.Progress(e.round())),
		SideToMove:    e.gs.SideToMove,
		Status:        e.gs.Status,
		Notifications: e.notifications.Active(),
		GameOver:      e.gs.GameOver,
		EndReason:     e.gs.EndReason,
	}
	if e.gs.Selected != nil {
		s.Selected = e.gs.Selected.Label
	}
	if e.gs.Pending != nil {
		p := *e.gs.Pending
		s.Pending = &p
	}
	if !e.gs.GameOver {
		s.NextTickIn = e.clock.Remaining(now)
	}
	return s
}

// Public accessors
func (e *Engine) GameID() string                               { return e.gameID }
func (e *Engine) Variant() Variant                             { return e.variant.name() }
func (e *Engine) Rules() Rules                                 { return e.rules }
func (e *Engine) GameState() GameState                         { return *e.gs.Clone() }
func (e *Engine) IsGameOver() bool                             { return e.gs.GameOver }
func (e *Engine) EndReason() string                            { return e.gs.EndReason }
func (e *Engine) StatusText() string                           { return e.gs.Status }
func (e *Engine) CurrentPhase() states.GamePhase               { return e.stateMachine.CurrentPhase() }
func (e *Engine) EventBus() *events.EventBus                   { return e.eventBus }
func (e *Engine) Notifications() *subscribers.NotificationLog { return e.notifications }
func (e *Engine) StateMachine() *states.StateMachine           { return e.stateMachine }
