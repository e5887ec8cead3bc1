package ai

import (
	"math/rand"
	"sort"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/rules"
)

// ScoreTolerance is the window inside which two scores count as tied.
const ScoreTolerance = 1e-9

// PickBest scores every candidate once, keeps those within ScoreTolerance of the
// maximum and returns one of them uniformly at random.
// ok is false when candidates is empty.
func PickBest[T any](rng *rand.Rand, candidates []T, score func(T) float64) (best T, bestScore float64, ok bool) {
	if len(candidates) == 0 {
		return best, 0, false
	}

	var tied []T
	for i, c := range candidates {
		s := score(c)
		switch {
		case i == 0 || s > bestScore+ScoreTolerance:
			bestScore = s
			tied = append(tied[:0], c)
		case s >= bestScore-ScoreTolerance:
			tied = append(tied, c)
		}
	}

	return tied[rng.Intn(len(tied))], bestScore, true
}

// ScoredMove is a move annotated with the score that selected it
type ScoredMove struct {
	rules.Move
	Score float64
}

// BestMoveForUnit chooses among the destinations of the unit on from
func BestMoveForUnit(rng *rand.Rand, from core.Coordinate, destinations []core.Coordinate, score func(to core.Coordinate) float64) (ScoredMove, bool) {
	to, s, ok := PickBest(rng, destinations, score)
	if !ok {
		return ScoredMove{}, false
	}
	return ScoredMove{Move: rules.Move{From: from, To: to}, Score: s}, true
}

var unitPriority = map[core.PieceKind]int{
	core.Pawn:   0,
	core.Knight: 1,
	core.Bishop: 2,
	core.Rook:   3,
	core.King:   4,
}

func priorityOf(kind core.PieceKind) int {
	if p, ok := unitPriority[kind]; ok {
		return p
	}
	return 9
}

// PriorityOrder sorts squares by unit kind priority (pawn, knight, bishop, rook,
// king, then anything else) and then by rank. The sort is stable so file order
// survives for equal keys.
func PriorityOrder(board *core.Board, squares []core.Coordinate) []core.Coordinate {
	out := append([]core.Coordinate(nil), squares...)
	sort.SliceStable(out, func(i, j int) bool {
		ui, _ := board.At(out[i])
		uj, _ := board.At(out[j])
		pi, pj := priorityOf(ui.Kind), priorityOf(uj.Kind)
		if pi != pj {
			return pi < pj
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// SelectAcrossUnits applies the per-unit choice to every unit and then picks the
// overall best with the same maximum plus uniform tie-break rule.
// Each unit's best move is scored exactly once.
func SelectAcrossUnits(rng *rand.Rand, units []core.Coordinate, best func(from core.Coordinate) (ScoredMove, bool)) (ScoredMove, bool) {
	var perUnit []ScoredMove
	for _, from := range units {
		if m, ok := best(from); ok {
			perUnit = append(perUnit, m)
		}
	}
	chosen, _, ok := PickBest(rng, perUnit, func(m ScoredMove) float64 { return m.Score })
	return chosen, ok
}
