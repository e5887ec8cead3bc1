package rules

import "github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"

// PawnAttacks reports whether a pawn of side standing on pawn attacks target.
// Pawns attack one step forward, one file to either side.
func PawnAttacks(pawn core.Coordinate, side core.Side, target core.Coordinate) bool {
	if target.Rank != pawn.Rank+side.Forward() {
		return false
	}
	df := target.File - pawn.File
	return df == 1 || df == -1
}

// AttackedByPawn reports whether a pawn of attacker stands diagonally behind sq
// along that pawn's own forward direction.
func AttackedByPawn(board *core.Board, sq core.Coordinate, attacker core.Side) bool {
	rank := sq.Rank - attacker.Forward()
	for _, df := range []int{-1, 1} {
		from := core.NewCoordinate(sq.File+df, rank)
		if u, ok := board.At(from); ok && u.Is(attacker, core.Pawn) {
			return true
		}
	}
	return false
}

// KingThreatened reports whether side's king is currently attacked by an opposing pawn.
// A side without a king is never threatened.
func KingThreatened(board *core.Board, side core.Side) bool {
	king, ok := board.Find(side, core.King)
	if !ok {
		return false
	}
	return AttackedByPawn(board, king, side.Opponent())
}

// PawnThreatensKing reports whether an attacker pawn standing on pawn would attack
// the defender king where it stands now.
func PawnThreatensKing(board *core.Board, pawn core.Coordinate) bool {
	king, ok := board.Find(core.Defender, core.King)
	if !ok {
		return false
	}
	return PawnAttacks(pawn, core.Attacker, king)
}

// NearestDistance returns the smallest Manhattan distance from sq to any unit of side.
func NearestDistance(board *core.Board, sq core.Coordinate, side core.Side) (int, bool) {
	best, found := 0, false
	for _, pos := range board.Positions(side) {
		d := board.Distance(sq, pos)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}
