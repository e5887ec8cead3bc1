package ai

import (
	"math/rand"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// Context carries board-wide facts computed once per turn
type Context struct {
	// KingThreatened is true when the defender king stood on a pawn-attacked
	// square at the start of the turn.
	KingThreatened bool
}

// Evaluator scores a single candidate move for the unit standing on from
type Evaluator interface {
	Score(board *core.Board, unit core.Unit, from, to core.Coordinate, ctx Context) float64
}

// jitter returns a uniform sample in [-amount, amount)
func jitter(rng *rand.Rand, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return -amount + 2*amount*rng.Float64()
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
