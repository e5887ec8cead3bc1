package game

import (
	"time"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// PendingRetreat is the mandatory return of the last defender auto-move
type PendingRetreat struct {
	Origin      core.Coordinate
	Destination core.Coordinate
	DueTick     int
}

// GameState is the single owned value mutated by tick resolution and inputs
type GameState struct {
	Board *core.Board

	Gold   int
	Kills  int
	Health int

	// Tick counts resolved ticks; AttackerRound counts attacker turns; Wave counts tower-defense steps
	Tick          int
	AttackerRound int
	Wave          int

	SideToMove core.Side
	Pending    *PendingRetreat
	Selected   *core.Offer

	Status    string
	GameOver  bool
	EndReason string
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Board = gs.Board.Clone()
	if gs.Pending != nil {
		p := *gs.Pending
		cp.Pending = &p
	}
	if gs.Selected != nil {
		s := *gs.Selected
		cp.Selected = &s
	}
	return &cp
}

// Snapshot is the read-only view a render shell or remote driver polls each frame
type Snapshot struct {
	GameID  string
	Variant Variant
	Phase   string

	Board core.Board

	Gold   int
	Kills  int
	Health int

	Tick          int
	AttackerRound int
	Wave          int
	SpawnInterval int

	SideToMove core.Side
	Selected   string
	Pending    *PendingRetreat

	Status        string
	Notifications []string

	GameOver   bool
	EndReason  string
	NextTickIn time.Duration
}

// Unit returns the unit on c in the snapshot board
func (s Snapshot) Unit(c core.Coordinate) (core.Unit, bool) {
	return s.Board.At(c)
}
