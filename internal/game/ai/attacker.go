package ai

import (
	"math/rand"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/rules"
)

// AttackerWeights are the terms of the attacker heuristic
type AttackerWeights struct {
	Jitter             float64
	CapturePerValue    float64
	KingCaptureBonus   float64
	ApproachPerStep    float64
	PawnAdvancePerRank float64
	PawnBreachBonus    float64
	DepthPerRank       float64
	DepthOffset        float64
}

// DefaultAttackerWeights returns the stock attacker weights
func DefaultAttackerWeights() AttackerWeights {
	return AttackerWeights{
		Jitter:             0.08,
		CapturePerValue:    45,
		KingCaptureBonus:   10000,
		ApproachPerStep:    4,
		PawnAdvancePerRank: 2.5,
		PawnBreachBonus:    8,
		DepthPerRank:       0.8,
		DepthOffset:        3,
	}
}

// AttackerEvaluator scores attacker moves toward the defender king
type AttackerEvaluator struct {
	rng *rand.Rand
	w   AttackerWeights
}

// NewAttackerEvaluator creates an attacker evaluator drawing jitter from rng
func NewAttackerEvaluator(rng *rand.Rand, w AttackerWeights) *AttackerEvaluator {
	return &AttackerEvaluator{rng: rng, w: w}
}

// Score implements Evaluator
func (e *AttackerEvaluator) Score(board *core.Board, unit core.Unit, from, to core.Coordinate, _ Context) float64 {
	score := jitter(e.rng, e.w.Jitter)

	if target, ok := board.At(to); ok && target.Side == core.Defender {
		score += float64(target.Kind.Value()) * e.w.CapturePerValue
		if target.Kind == core.King {
			score += e.w.KingCaptureBonus
		}
	}

	if king, ok := board.Find(core.Defender, core.King); ok {
		score += float64(from.DistanceTo(king)-to.DistanceTo(king)) * e.w.ApproachPerStep
	}

	switch unit.Kind {
	case core.Pawn:
		score += float64(to.Rank-from.Rank) * e.w.PawnAdvancePerRank
		if to.Rank == core.DefenderHomeRank {
			score += e.w.PawnBreachBonus
		}
	case core.Rook, core.Queen:
		score += maxf(0, float64(to.Rank)-e.w.DepthOffset) * e.w.DepthPerRank
	}

	return score
}

// ChooseAttackerMove picks the destination for the attacker unit on from
func ChooseAttackerMove(rng *rand.Rand, board *core.Board, calc *rules.LegalMoveCalculator, eval Evaluator, from core.Coordinate) (ScoredMove, bool) {
	unit, ok := board.At(from)
	if !ok || unit.Side != core.Attacker {
		return ScoredMove{}, false
	}
	return BestMoveForUnit(rng, from, calc.Destinations(board, from), func(to core.Coordinate) float64 {
		return eval.Score(board, unit, from, to, Context{})
	})
}
