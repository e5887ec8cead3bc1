package arena

import (
	"fmt"
	"time"

	"github.com/notnil/chess"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// Tone classifies a status line for display
type Tone int

const (
	ToneNormal Tone = iota
	ToneSuccess
	ToneAlert
	ToneMuted
)

// Arena is one full-rules board: the player is White, the bot is Black
type Arena struct {
	index   int
	label   string
	game    *chess.Game
	history []string
	nextBot time.Time // zero while no bot move is scheduled
}

func newArena(index int) *Arena {
	letter := string(rune('A' + index))
	return &Arena{
		index: index,
		label: fmt.Sprintf("Board %d: White %s vs Bot %s", index+1, letter, letter),
		game:  chess.NewGame(),
	}
}

// Number is the 1-based board number used in messages
func (a *Arena) Number() int { return a.index + 1 }

// Turn returns the color to move
func (a *Arena) Turn() chess.Color { return a.game.Position().Turn() }

// method returns how the arena ended, or NoMethod while it is live.
// Checkmate and stalemate are read from the position so a rebuilt game is judged correctly.
func (a *Arena) method() chess.Method {
	if s := a.game.Position().Status(); s != chess.NoMethod {
		return s
	}
	if a.game.Outcome() != chess.NoOutcome {
		return a.game.Method()
	}
	return chess.NoMethod
}

// Ended reports whether the arena's game is over
func (a *Arena) Ended() bool { return a.method() != chess.NoMethod }

// Checkmated reports whether the side to move is mated
func (a *Arena) Checkmated() bool { return a.method() == chess.Checkmate }

// InCheck reports whether the side to move is in check
func (a *Arena) InCheck() bool {
	return inCheck(a.game.Position().Board(), a.Turn())
}

// candidates lists legal moves between two squares; several only for promotions
func (a *Arena) candidates(from, to chess.Square) []*chess.Move {
	var out []*chess.Move
	for _, m := range a.game.ValidMoves() {
		if m.S1() == from && m.S2() == to {
			out = append(out, m)
		}
	}
	return out
}

// targets lists the destinations of the piece on from
func (a *Arena) targets(from chess.Square) []chess.Square {
	var out []chess.Square
	seen := map[chess.Square]bool{}
	for _, m := range a.game.ValidMoves() {
		if m.S1() == from && !seen[m.S2()] {
			seen[m.S2()] = true
			out = append(out, m.S2())
		}
	}
	return out
}

// play applies m and records its SAN. It reports whether m captured.
func (a *Arena) play(m *chess.Move) (string, bool, error) {
	san := chess.AlgebraicNotation{}.Encode(a.game.Position(), m)
	capture := isCapture(m)
	if err := a.game.Move(m); err != nil {
		return "", false, fmt.Errorf("board %d: %w", a.Number(), err)
	}
	a.history = append(a.history, san)
	return san, capture, nil
}

// choosePlayerMove resolves a click into one move: a queen promotion when
// offered, otherwise the plain move
func choosePlayerMove(candidates []*chess.Move) *chess.Move {
	for _, m := range candidates {
		if m.Promo() == chess.Queen {
			return m
		}
	}
	for _, m := range candidates {
		if m.Promo() == chess.NoPieceType {
			return m
		}
	}
	return candidates[0]
}

// Status returns the per-board status line and how to display it
func (a *Arena) Status() (string, Tone) {
	switch a.method() {
	case chess.Checkmate:
		if a.Turn() == chess.Black {
			return "Status: Black is checkmated", ToneSuccess
		}
		return "Status: White is checkmated", ToneAlert
	case chess.Stalemate:
		return "Status: Stalemate", ToneMuted
	case chess.InsufficientMaterial:
		return "Status: Draw (insufficient material)", ToneMuted
	case chess.SeventyFiveMoveRule:
		return "Status: Draw (seventy-five move rule)", ToneMuted
	case chess.FivefoldRepetition:
		return "Status: Draw (fivefold repetition)", ToneMuted
	}

	turn := "White (human)"
	if a.Turn() == chess.Black {
		turn = "Black (bot)"
	}
	if a.InCheck() {
		return fmt.Sprintf("Turn: %s  |  CHECK", turn), ToneAlert
	}
	return "Turn: " + turn, ToneNormal
}

// ArenaSnapshot is the read-only view of one board
type ArenaSnapshot struct {
	Index     int
	Label     string
	Board     core.Board
	FEN       string
	WhiteTurn bool
	InCheck   bool
	Ended     bool
	Status    string
	Tone      Tone
	History   []string
	NextBotIn time.Duration
}

func (a *Arena) snapshot(now time.Time) ArenaSnapshot {
	status, tone := a.Status()
	s := ArenaSnapshot{
		Index:     a.index,
		Label:     a.label,
		Board:     *toCoreBoard(a.game.Position().Board()),
		FEN:       a.game.FEN(),
		WhiteTurn: a.Turn() == chess.White,
		InCheck:   a.InCheck(),
		Ended:     a.Ended(),
		Status:    status,
		Tone:      tone,
		History:   append([]string(nil), a.history...),
	}
	if !a.nextBot.IsZero() && a.nextBot.After(now) {
		s.NextBotIn = a.nextBot.Sub(now)
	}
	return s
}

var kindOf = map[chess.PieceType]core.PieceKind{
	chess.Pawn:   core.Pawn,
	chess.Knight: core.Knight,
	chess.Bishop: core.Bishop,
	chess.Rook:   core.Rook,
	chess.Queen:  core.Queen,
	chess.King:   core.King,
}

// SquareOf maps a grid coordinate to a chess square. Grid rank 7 is White's first rank.
func SquareOf(c core.Coordinate) chess.Square {
	sq, ok := squareAt(c.File, core.BoardSize-1-c.Rank)
	if !ok {
		return chess.NoSquare
	}
	return sq
}

// CoordinateOf maps a chess square to a grid coordinate
func CoordinateOf(sq chess.Square) core.Coordinate {
	f, r := fileRank(sq)
	return core.NewCoordinate(f, core.BoardSize-1-r)
}

// toCoreBoard converts a chess board to the shared grid model: White is the defender
func toCoreBoard(b *chess.Board) *core.Board {
	out := core.NewBoard()
	for sq, p := range b.SquareMap() {
		side := core.Defender
		if p.Color() == chess.Black {
			side = core.Attacker
		}
		out.Set(CoordinateOf(sq), core.NewUnit(side, kindOf[p.Type()]))
	}
	return out
}
