package rules

import "github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"

// DefenderPawnStartRank is the only rank a defender pawn may double-step from.
const DefenderPawnStartRank = 6

var (
	kingDeltas = []core.Coordinate{
		{File: -1, Rank: -1}, {File: 0, Rank: -1}, {File: 1, Rank: -1},
		{File: -1, Rank: 0}, {File: 1, Rank: 0},
		{File: -1, Rank: 1}, {File: 0, Rank: 1}, {File: 1, Rank: 1},
	}
	knightDeltas = []core.Coordinate{
		{File: 1, Rank: 2}, {File: 2, Rank: 1}, {File: -1, Rank: 2}, {File: -2, Rank: 1},
		{File: 1, Rank: -2}, {File: 2, Rank: -1}, {File: -1, Rank: -2}, {File: -2, Rank: -1},
	}
	orthogonalRays = []core.Coordinate{{File: 1, Rank: 0}, {File: -1, Rank: 0}, {File: 0, Rank: 1}, {File: 0, Rank: -1}}
	diagonalRays   = []core.Coordinate{{File: 1, Rank: 1}, {File: -1, Rank: 1}, {File: 1, Rank: -1}, {File: -1, Rank: -1}}
	queenRays      = append(append([]core.Coordinate{}, diagonalRays...), orthogonalRays...)
)

// Options tunes move generation per variant
type Options struct {
	// AvoidPawnThreats drops king destinations attacked by an opposing pawn.
	AvoidPawnThreats bool
}

// Move is a single from/to pair
type Move struct {
	From core.Coordinate
	To   core.Coordinate
}

// LegalMoveCalculator computes legal destinations for units on the grid
type LegalMoveCalculator struct {
	opts Options
}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator(opts Options) *LegalMoveCalculator {
	return &LegalMoveCalculator{opts: opts}
}

// Destinations returns the legal destinations of the unit on from
func (lmc *LegalMoveCalculator) Destinations(board *core.Board, from core.Coordinate) []core.Coordinate {
	return LegalMoves(board, from, lmc.opts)
}

// MovesFor lists every legal move of side, origins in rank-major order
func (lmc *LegalMoveCalculator) MovesFor(board *core.Board, side core.Side) []Move {
	var moves []Move
	for _, from := range board.Positions(side) {
		for _, to := range LegalMoves(board, from, lmc.opts) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// IsLegal reports whether from->to is among the generated destinations
func (lmc *LegalMoveCalculator) IsLegal(board *core.Board, from, to core.Coordinate) bool {
	return core.Contains(LegalMoves(board, from, lmc.opts), to)
}

// LegalMoves returns the destinations of the unit standing on from.
// Output order is fixed by generation order so seeded runs stay reproducible.
// An empty square yields no moves.
func LegalMoves(board *core.Board, from core.Coordinate, opts Options) []core.Coordinate {
	unit, ok := board.At(from)
	if !ok {
		return nil
	}

	switch unit.Kind {
	case core.King:
		return kingMoves(board, from, unit.Side, opts.AvoidPawnThreats)
	case core.Knight:
		return stepMoves(board, from, unit.Side, knightDeltas)
	case core.Bishop:
		return slidingMoves(board, from, unit.Side, diagonalRays)
	case core.Rook:
		return slidingMoves(board, from, unit.Side, orthogonalRays)
	case core.Queen:
		return slidingMoves(board, from, unit.Side, queenRays)
	case core.Pawn:
		return pawnMoves(board, from, unit.Side)
	}
	return nil
}

func kingMoves(board *core.Board, from core.Coordinate, side core.Side, avoidPawns bool) []core.Coordinate {
	var out []core.Coordinate
	for _, d := range kingDeltas {
		to := from.Add(d)
		if !board.InBounds(to) || board.HasSide(to, side) {
			continue
		}
		if avoidPawns && AttackedByPawn(board, to, side.Opponent()) {
			continue
		}
		out = append(out, to)
	}
	return out
}

func stepMoves(board *core.Board, from core.Coordinate, side core.Side, deltas []core.Coordinate) []core.Coordinate {
	var out []core.Coordinate
	for _, d := range deltas {
		to := from.Add(d)
		if board.InBounds(to) && !board.HasSide(to, side) {
			out = append(out, to)
		}
	}
	return out
}

// slidingMoves walks each ray until the edge or the first occupied square.
// An opposing unit ends the ray and is included; an ally ends it and is not.
func slidingMoves(board *core.Board, from core.Coordinate, side core.Side, rays []core.Coordinate) []core.Coordinate {
	var out []core.Coordinate
	for _, d := range rays {
		for to := from.Add(d); board.InBounds(to); to = to.Add(d) {
			occupant, occupied := board.At(to)
			if !occupied {
				out = append(out, to)
				continue
			}
			if occupant.Side != side {
				out = append(out, to)
			}
			break
		}
	}
	return out
}

func pawnMoves(board *core.Board, from core.Coordinate, side core.Side) []core.Coordinate {
	var out []core.Coordinate
	fwd := side.Forward()

	one := from.Offset(0, fwd)
	if board.IsEmpty(one) {
		out = append(out, one)
		if side == core.Defender && from.Rank == DefenderPawnStartRank {
			two := from.Offset(0, 2*fwd)
			if board.IsEmpty(two) {
				out = append(out, two)
			}
		}
	}

	for _, df := range []int{-1, 1} {
		to := from.Offset(df, fwd)
		if board.HasSide(to, side.Opponent()) {
			out = append(out, to)
		}
	}
	return out
}
