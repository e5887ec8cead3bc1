package arena

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// spawnRanks is the search order for reinforcement pawns: Black's side outward,
// never the back ranks where a pawn could not stand.
var spawnRanks = []int{6, 5, 4, 3, 2, 1}

// spawnBlackPawn picks a uniformly random empty square on the first rank in
// spawnRanks with a vacancy and returns a game rebuilt with a Black pawn there.
// With Black to move, squares from which the pawn would attack the White king
// are not vacancies: White could not answer that check before losing the king.
// The side to move, castling rights, en passant square and move number carry
// over; the halfmove clock restarts. ok is false when no square is free, in
// which case g is untouched.
func spawnBlackPawn(rng *rand.Rand, g *chess.Game) (next *chess.Game, at chess.Square, ok bool, err error) {
	board := g.Position().Board()
	blackToMove := g.Position().Turn() == chess.Black

	at, found := chess.NoSquare, false
	for _, r := range spawnRanks {
		var empty []chess.Square
		for f := 0; f < 8; f++ {
			sq, _ := squareAt(f, r)
			if board.Piece(sq) != chess.NoPiece {
				continue
			}
			if blackToMove && pawnChecksWhite(board, sq) {
				continue
			}
			empty = append(empty, sq)
		}
		if len(empty) > 0 {
			at, found = empty[rng.Intn(len(empty))], true
			break
		}
	}
	if !found {
		return g, chess.NoSquare, false, nil
	}

	pieces := board.SquareMap()
	pieces[at] = chess.BlackPawn

	fields := strings.Fields(g.FEN())
	if len(fields) != 6 {
		return g, chess.NoSquare, false, fmt.Errorf("unexpected FEN %q", g.FEN())
	}
	fields[0] = placement(pieces)
	fields[4] = "0"

	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return g, chess.NoSquare, false, fmt.Errorf("rebuild position: %w", err)
	}
	return chess.NewGame(opt), at, true, nil
}

// pawnChecksWhite reports whether a Black pawn on sq would attack the White king
func pawnChecksWhite(board *chess.Board, sq chess.Square) bool {
	f, r := fileRank(sq)
	for _, df := range []int{-1, 1} {
		if target, ok := squareAt(f+df, r-1); ok && board.Piece(target) == chess.WhiteKing {
			return true
		}
	}
	return false
}

var fenLetters = map[chess.PieceType]byte{
	chess.King:   'k',
	chess.Queen:  'q',
	chess.Rook:   'r',
	chess.Bishop: 'b',
	chess.Knight: 'n',
	chess.Pawn:   'p',
}

// placement renders the piece placement field of a FEN, rank 8 first
func placement(pieces map[chess.Square]chess.Piece) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq, _ := squareAt(f, r)
			p, ok := pieces[sq]
			if !ok || p == chess.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := fenLetters[p.Type()]
			if p.Color() == chess.White {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
