package ai

import (
	"math/rand"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/rules"
)

// DefenderWeights are the terms of the defender auto-move heuristic
type DefenderWeights struct {
	Jitter              float64
	Capture             float64
	CaptureThreatBonus  float64
	ApproachPerStep     float64
	PawnAdvancePerRank  float64
	CentreFile          float64
	KingCaptureBonus    float64
	KingMovePenalty     float64
	KingThreatenedBonus float64
	KingUnsafePenalty   float64
}

// DefaultDefenderWeights returns the stock defender weights
func DefaultDefenderWeights() DefenderWeights {
	return DefenderWeights{
		Jitter:              0.08,
		Capture:             120,
		CaptureThreatBonus:  45,
		ApproachPerStep:     5,
		PawnAdvancePerRank:  6,
		CentreFile:          3.5,
		KingCaptureBonus:    150,
		KingMovePenalty:     12,
		KingThreatenedBonus: 28,
		KingUnsafePenalty:   1000,
	}
}

// DefenderEvaluator scores defender moves: captures first, then closing on the
// nearest attacker, then per-kind positional terms, then a small jitter.
type DefenderEvaluator struct {
	rng *rand.Rand
	w   DefenderWeights
}

// NewDefenderEvaluator creates a defender evaluator drawing jitter from rng
func NewDefenderEvaluator(rng *rand.Rand, w DefenderWeights) *DefenderEvaluator {
	return &DefenderEvaluator{rng: rng, w: w}
}

// Score implements Evaluator
func (e *DefenderEvaluator) Score(board *core.Board, unit core.Unit, from, to core.Coordinate, ctx Context) float64 {
	score := jitter(e.rng, e.w.Jitter)

	target, occupied := board.At(to)
	capture := occupied && target.Side == core.Attacker
	if capture {
		score += e.w.Capture
		if rules.PawnThreatensKing(board, to) {
			score += e.w.CaptureThreatBonus
		}
	}

	before, okBefore := rules.NearestDistance(board, from, core.Attacker)
	after, okAfter := rules.NearestDistance(board, to, core.Attacker)
	if okBefore && okAfter {
		score += float64(before-after) * e.w.ApproachPerStep
	}

	switch unit.Kind {
	case core.Pawn:
		score += float64(from.Rank-to.Rank) * e.w.PawnAdvancePerRank
	case core.Rook, core.Bishop, core.Knight:
		score += maxf(0, e.w.CentreFile-absf(float64(to.File)-e.w.CentreFile))
	case core.King:
		if occupied {
			score += e.w.KingCaptureBonus
		}
		score -= e.w.KingMovePenalty
		if ctx.KingThreatened {
			score += e.w.KingThreatenedBonus
		}
		if rules.AttackedByPawn(board, to, core.Attacker) {
			score -= e.w.KingUnsafePenalty
		}
	}

	return score
}

// ChooseDefenderMove picks the single defender auto-move for this turn.
// Units are visited in priority order, each keeps its own best destination, and
// the overall best wins with a uniform tie-break.
func ChooseDefenderMove(rng *rand.Rand, board *core.Board, calc *rules.LegalMoveCalculator, eval Evaluator) (ScoredMove, bool) {
	ctx := Context{KingThreatened: rules.KingThreatened(board, core.Defender)}
	units := PriorityOrder(board, board.Positions(core.Defender))

	return SelectAcrossUnits(rng, units, func(from core.Coordinate) (ScoredMove, bool) {
		unit, _ := board.At(from)
		return BestMoveForUnit(rng, from, calc.Destinations(board, from), func(to core.Coordinate) float64 {
			return eval.Score(board, unit, from, to, ctx)
		})
	})
}
