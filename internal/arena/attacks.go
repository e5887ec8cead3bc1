package arena

import "github.com/notnil/chess"

var (
	knightJumps = [8][2]int{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}
	kingSteps   = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	rookRays    = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays  = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

// squareAt returns the square on file f and rank r (both 0-based), and whether it is on the board
func squareAt(f, r int) (chess.Square, bool) {
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return chess.NoSquare, false
	}
	return chess.Square(r*8 + f), true
}

func fileRank(sq chess.Square) (int, int) {
	return int(sq) % 8, int(sq) / 8
}

// isAttacked reports whether any piece of color by attacks sq on board.
// Pins are ignored, matching the usual definition of an attacked square.
func isAttacked(board *chess.Board, sq chess.Square, by chess.Color) bool {
	f, r := fileRank(sq)

	has := func(df, dr int, types ...chess.PieceType) bool {
		s, ok := squareAt(f+df, r+dr)
		if !ok {
			return false
		}
		p := board.Piece(s)
		if p == chess.NoPiece || p.Color() != by {
			return false
		}
		for _, t := range types {
			if p.Type() == t {
				return true
			}
		}
		return false
	}

	// A white pawn attacks upward, so it stands one rank below its target
	pawnRank := -1
	if by == chess.Black {
		pawnRank = 1
	}
	if has(-1, pawnRank, chess.Pawn) || has(1, pawnRank, chess.Pawn) {
		return true
	}

	for _, d := range knightJumps {
		if has(d[0], d[1], chess.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if has(d[0], d[1], chess.King) {
			return true
		}
	}

	slides := func(rays [4][2]int, types ...chess.PieceType) bool {
		for _, d := range rays {
			for step := 1; step < 8; step++ {
				s, ok := squareAt(f+d[0]*step, r+d[1]*step)
				if !ok {
					break
				}
				p := board.Piece(s)
				if p == chess.NoPiece {
					continue
				}
				if p.Color() == by {
					for _, t := range types {
						if p.Type() == t {
							return true
						}
					}
				}
				break
			}
		}
		return false
	}

	return slides(rookRays, chess.Rook, chess.Queen) || slides(bishopRays, chess.Bishop, chess.Queen)
}

// inCheck reports whether color's king is attacked. A board without that king is never in check.
func inCheck(board *chess.Board, color chess.Color) bool {
	for sq, p := range board.SquareMap() {
		if p.Type() == chess.King && p.Color() == color {
			return isAttacked(board, sq, color.Other())
		}
	}
	return false
}
