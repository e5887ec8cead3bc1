package core

import "fmt"

// Side identifies which force owns a unit
type Side int

const (
	Defender Side = iota
	Attacker
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == Defender {
		return Attacker
	}
	return Defender
}

// Forward returns the rank delta of a pawn advancing for this side.
func (s Side) Forward() int {
	if s == Defender {
		return -1
	}
	return 1
}

func (s Side) String() string {
	switch s {
	case Defender:
		return "defender"
	case Attacker:
		return "attacker"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// PieceKind is the closed set of unit kinds
type PieceKind int

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// AllKinds lists every kind in declaration order
var AllKinds = []PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}

var pieceValues = map[PieceKind]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   100,
}

// Value returns the material value used by the grid evaluators.
func (k PieceKind) Value() int {
	if v, ok := pieceValues[k]; ok {
		return v
	}
	return 1
}

// Letter returns the single-letter notation (P, N, B, R, Q, K)
func (k PieceKind) Letter() string {
	switch k {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// String returns the lowercase label used in status text
func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return fmt.Sprintf("PieceKind(%d)", int(k))
	}
}

// ParsePieceKind accepts a letter or a label, case-insensitively.
func ParsePieceKind(s string) (PieceKind, error) {
	switch s {
	case "P", "p", "pawn", "Pawn":
		return Pawn, nil
	case "N", "n", "knight", "Knight":
		return Knight, nil
	case "B", "b", "bishop", "Bishop":
		return Bishop, nil
	case "R", "r", "rook", "Rook":
		return Rook, nil
	case "Q", "q", "queen", "Queen":
		return Queen, nil
	case "K", "k", "king", "King":
		return King, nil
	}
	return Pawn, fmt.Errorf("%w: %q", ErrUnknownPieceKind, s)
}

// Unit is an immutable (side, kind) pair. Units have no identity beyond their square.
type Unit struct {
	Side Side
	Kind PieceKind
}

// NewUnit creates a unit
func NewUnit(side Side, kind PieceKind) Unit {
	return Unit{Side: side, Kind: kind}
}

// Is reports whether the unit matches side and kind
func (u Unit) Is(side Side, kind PieceKind) bool {
	return u.Side == side && u.Kind == kind
}

// Symbol renders defender units upper case and attacker units lower case.
func (u Unit) Symbol() string {
	l := u.Kind.Letter()
	if u.Side == Attacker {
		return string(l[0] + ('a' - 'A'))
	}
	return l
}

func (u Unit) String() string {
	return u.Side.String() + " " + u.Kind.String()
}
