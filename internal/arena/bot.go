package arena

import (
	"math/rand"

	"github.com/notnil/chess"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/ai"
)

// pieceValues are the material values used in the arenas. The king is not material here.
var pieceValues = map[chess.PieceType]float64{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   0,
}

func valueOf(p chess.Piece) float64 {
	if p == chess.NoPiece {
		return 0
	}
	return pieceValues[p.Type()]
}

// BotWeights are the terms of the one-ply Black heuristic
type BotWeights struct {
	CapturePerValue  float64
	AttackerPerValue float64
	GivesCheck       float64
	Promotion        float64
	Checkmate        float64
	Material         float64
	InCheck          float64
	Stalemate        float64
	HangingPerValue  float64
	Jitter           float64
}

// DefaultBotWeights returns the stock bot weights
func DefaultBotWeights() BotWeights {
	return BotWeights{
		CapturePerValue:  12,
		AttackerPerValue: 2,
		GivesCheck:       2.5,
		Promotion:        8,
		Checkmate:        100000,
		Material:         1.8,
		InCheck:          3,
		Stalemate:        40,
		HangingPerValue:  0.5,
		Jitter:           0.2,
	}
}

// Bot plays Black in an arena
type Bot struct {
	rng *rand.Rand
	w   BotWeights
}

// NewBot creates a bot drawing jitter and tie-breaks from rng
func NewBot(rng *rand.Rand, w BotWeights) *Bot {
	return &Bot{rng: rng, w: w}
}

// Score rates m for the side to move in pos, which is assumed to be Black
func (b *Bot) Score(pos *chess.Position, m *chess.Move) float64 {
	board := pos.Board()
	score := 0.0

	if isCapture(m) {
		captured := valueOf(board.Piece(m.S2()))
		if m.HasTag(chess.EnPassant) {
			captured = pieceValues[chess.Pawn]
		}
		score += b.w.CapturePerValue*captured - b.w.AttackerPerValue*valueOf(board.Piece(m.S1()))
	}

	next := pos.Update(m)
	nextBoard := next.Board()
	check := inCheck(nextBoard, chess.White)
	if check {
		score += b.w.GivesCheck
	}
	if m.Promo() != chess.NoPieceType {
		score += b.w.Promotion
	}

	switch next.Status() {
	case chess.Checkmate:
		score += b.w.Checkmate
	default:
		score += material(nextBoard) * b.w.Material
		if check {
			score += b.w.InCheck
		}
		if next.Status() == chess.Stalemate {
			score -= b.w.Stalemate
		}
		if moved := nextBoard.Piece(m.S2()); moved != chess.NoPiece && isAttacked(nextBoard, m.S2(), chess.White) {
			score -= valueOf(moved) * b.w.HangingPerValue
		}
	}

	return score + (b.rng.Float64()*2-1)*b.w.Jitter
}

// ChooseMove picks the best legal move in pos with a uniform tie-break.
// Returns false when there are no legal moves.
func (b *Bot) ChooseMove(pos *chess.Position) (*chess.Move, bool) {
	best, _, ok := ai.PickBest(b.rng, pos.ValidMoves(), func(m *chess.Move) float64 {
		return b.Score(pos, m)
	})
	return best, ok
}

// material is Black's material minus White's
func material(board *chess.Board) float64 {
	score := 0.0
	for _, p := range board.SquareMap() {
		if p.Color() == chess.Black {
			score += valueOf(p)
		} else {
			score -= valueOf(p)
		}
	}
	return score
}

func isCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}
