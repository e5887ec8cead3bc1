package events

import (
	"time"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted      = "game.started"
	TypeGameEnded        = "game.ended"
	TypeTickStarted      = "tick.started"
	TypeTickEnded        = "tick.ended"
	TypeUnitMoved        = "unit.moved"
	TypeUnitCaptured     = "unit.captured"
	TypeRetreatExecuted  = "retreat.executed"
	TypeBreach           = "breach"
	TypeDamageApplied    = "damage.applied"
	TypeKingRespawned    = "king.respawned"
	TypeUnitSpawned      = "unit.spawned"
	TypeSpawnBlocked     = "spawn.blocked"
	TypeUnitPurchased    = "unit.purchased"
	TypeStateTransition  = "state.transition"
	TypeArenaMove        = "arena.move"
	TypeArenaPawnSpawned = "arena.pawn_spawned"
)

// GameStartedEvent is published when a session starts or is reset
type GameStartedEvent struct {
	BaseEvent
	Variant string
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID, variant string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Variant:   variant,
	}
}

// GameEndedEvent is published once when a session reaches a terminal state
type GameEndedEvent struct {
	BaseEvent
	Reason    string
	Won       bool
	Duration  time.Duration
	FinalTick int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID, reason string, won bool, duration time.Duration, finalTick int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Reason:    reason,
		Won:       won,
		Duration:  duration,
		FinalTick: finalTick,
	}
}

// TickStartedEvent is published at the beginning of each tick
type TickStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Side     core.Side
}

// NewTickStartedEvent creates a new TickStartedEvent
func NewTickStartedEvent(gameID string, meta EventMetadata, side core.Side) *TickStartedEvent {
	return &TickStartedEvent{
		BaseEvent: newBase(TypeTickStarted, gameID),
		Metadata:  meta,
		Side:      side,
	}
}

// TickEndedEvent is published at the end of each tick
type TickEndedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	Side          core.Side
	Moves         int
	Status        string
	ProcessedTime time.Duration
}

// NewTickEndedEvent creates a new TickEndedEvent
func NewTickEndedEvent(gameID string, meta EventMetadata, side core.Side, moves int, status string, processed time.Duration) *TickEndedEvent {
	return &TickEndedEvent{
		BaseEvent:     newBase(TypeTickEnded, gameID),
		Metadata:      meta,
		Side:          side,
		Moves:         moves,
		Status:        status,
		ProcessedTime: processed,
	}
}

// UnitMovedEvent is published for every relocation, automatic or requested
type UnitMovedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Unit     core.Unit
	From     core.Coordinate
	To       core.Coordinate
	Score    float64
	Promoted bool
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(gameID string, meta EventMetadata, res core.MoveResult, score float64) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, gameID),
		Metadata:  meta,
		Unit:      res.Mover,
		From:      res.From,
		To:        res.To,
		Score:     score,
		Promoted:  res.Promoted,
	}
}

// UnitCapturedEvent is published when a unit is removed by capture
type UnitCapturedEvent struct {
	BaseEvent
	Metadata EventMetadata
	By       core.Unit
	Captured core.Unit
	At       core.Coordinate
	Reward   int
}

// NewUnitCapturedEvent creates a new UnitCapturedEvent
func NewUnitCapturedEvent(gameID string, meta EventMetadata, by, captured core.Unit, at core.Coordinate, reward int) *UnitCapturedEvent {
	return &UnitCapturedEvent{
		BaseEvent: newBase(TypeUnitCaptured, gameID),
		Metadata:  meta,
		By:        by,
		Captured:  captured,
		At:        at,
		Reward:    reward,
	}
}

// RetreatExecutedEvent is published when a pending retreat resolves
type RetreatExecutedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Unit      core.Unit
	From      core.Coordinate
	To        core.Coordinate
	Swapped   bool
	Displaced bool
}

// NewRetreatExecutedEvent creates a new RetreatExecutedEvent
func NewRetreatExecutedEvent(gameID string, meta EventMetadata, unit core.Unit, from, to core.Coordinate, swapped, displaced bool) *RetreatExecutedEvent {
	return &RetreatExecutedEvent{
		BaseEvent: newBase(TypeRetreatExecuted, gameID),
		Metadata:  meta,
		Unit:      unit,
		From:      from,
		To:        to,
		Swapped:   swapped,
		Displaced: displaced,
	}
}

// BreachEvent is published when attacker units reach the defender home rank
type BreachEvent struct {
	BaseEvent
	Metadata EventMetadata
	Squares  []core.Coordinate
}

// NewBreachEvent creates a new BreachEvent
func NewBreachEvent(gameID string, meta EventMetadata, squares []core.Coordinate) *BreachEvent {
	return &BreachEvent{
		BaseEvent: newBase(TypeBreach, gameID),
		Metadata:  meta,
		Squares:   squares,
	}
}

// DamageAppliedEvent is published when the defender loses health
type DamageAppliedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Amount   int
	Health   int
	Reason   string
}

// NewDamageAppliedEvent creates a new DamageAppliedEvent
func NewDamageAppliedEvent(gameID string, meta EventMetadata, amount, health int, reason string) *DamageAppliedEvent {
	return &DamageAppliedEvent{
		BaseEvent: newBase(TypeDamageApplied, gameID),
		Metadata:  meta,
		Amount:    amount,
		Health:    health,
		Reason:    reason,
	}
}

// KingRespawnedEvent is published when a captured defender king is replaced
type KingRespawnedEvent struct {
	BaseEvent
	Metadata EventMetadata
	At       core.Coordinate
}

// NewKingRespawnedEvent creates a new KingRespawnedEvent
func NewKingRespawnedEvent(gameID string, meta EventMetadata, at core.Coordinate) *KingRespawnedEvent {
	return &KingRespawnedEvent{
		BaseEvent: newBase(TypeKingRespawned, gameID),
		Metadata:  meta,
		At:        at,
	}
}

// UnitSpawnedEvent is published when the attacker gains a unit
type UnitSpawnedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kind     core.PieceKind
	At       core.Coordinate
}

// NewUnitSpawnedEvent creates a new UnitSpawnedEvent
func NewUnitSpawnedEvent(gameID string, meta EventMetadata, kind core.PieceKind, at core.Coordinate) *UnitSpawnedEvent {
	return &UnitSpawnedEvent{
		BaseEvent: newBase(TypeUnitSpawned, gameID),
		Metadata:  meta,
		Kind:      kind,
		At:        at,
	}
}

// SpawnBlockedEvent is published when a spawn was due but no square was free
type SpawnBlockedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kind     core.PieceKind
}

// NewSpawnBlockedEvent creates a new SpawnBlockedEvent
func NewSpawnBlockedEvent(gameID string, meta EventMetadata, kind core.PieceKind) *SpawnBlockedEvent {
	return &SpawnBlockedEvent{
		BaseEvent: newBase(TypeSpawnBlocked, gameID),
		Metadata:  meta,
		Kind:      kind,
	}
}

// UnitPurchasedEvent is published when a bought unit is deployed
type UnitPurchasedEvent struct {
	BaseEvent
	Kind     core.PieceKind
	Cost     int
	At       core.Coordinate
	GoldLeft int
}

// NewUnitPurchasedEvent creates a new UnitPurchasedEvent
func NewUnitPurchasedEvent(gameID string, kind core.PieceKind, cost int, at core.Coordinate, goldLeft int) *UnitPurchasedEvent {
	return &UnitPurchasedEvent{
		BaseEvent: newBase(TypeUnitPurchased, gameID),
		Kind:      kind,
		Cost:      cost,
		At:        at,
		GoldLeft:  goldLeft,
	}
}

// StateTransitionEvent is published when the state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

// ArenaMoveEvent is published for every move played in a full-rules arena.
// Arena is 0-based; White is true for the player's moves.
type ArenaMoveEvent struct {
	BaseEvent
	Arena   int
	White   bool
	SAN     string
	Capture bool
}

// NewArenaMoveEvent creates a new ArenaMoveEvent
func NewArenaMoveEvent(gameID string, arena int, white bool, san string, capture bool) *ArenaMoveEvent {
	return &ArenaMoveEvent{
		BaseEvent: newBase(TypeArenaMove, gameID),
		Arena:     arena,
		White:     white,
		SAN:       san,
		Capture:   capture,
	}
}

// ArenaPawnSpawnedEvent is published when a capture on one arena tries to
// reinforce the other. Square is empty when no vacancy was found.
type ArenaPawnSpawnedEvent struct {
	BaseEvent
	SourceArena int
	TargetArena int
	Square      string
}

// NewArenaPawnSpawnedEvent creates a new ArenaPawnSpawnedEvent
func NewArenaPawnSpawnedEvent(gameID string, source, target int, square string) *ArenaPawnSpawnedEvent {
	return &ArenaPawnSpawnedEvent{
		BaseEvent:   newBase(TypeArenaPawnSpawned, gameID),
		SourceArena: source,
		TargetArena: target,
		Square:      square,
	}
}

// Blocked reports whether the spawn found no empty square
func (e *ArenaPawnSpawnedEvent) Blocked() bool {
	return e.Square == ""
}
