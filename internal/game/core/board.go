package core

import "strings"

// Square is a single cell of the board.
type Square struct {
	Unit     Unit
	Occupied bool
}

// Board is the 8x8 grid of optional units, stored row-major.
type Board struct {
	T [BoardSize * BoardSize]Square
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Idx(file, rank int) int       { return rank*BoardSize + file }
func (b *Board) XY(idx int) (file, rank int) { return idx % BoardSize, idx / BoardSize }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(c Coordinate) bool {
	return c.IsValid()
}

// At returns the unit on c and whether the square is occupied.
// Off-board coordinates read as empty.
func (b *Board) At(c Coordinate) (Unit, bool) {
	if !c.IsValid() {
		return Unit{}, false
	}
	sq := b.T[c.ToIndex()]
	return sq.Unit, sq.Occupied
}

// IsEmpty reports whether c is on the board and unoccupied
func (b *Board) IsEmpty(c Coordinate) bool {
	if !c.IsValid() {
		return false
	}
	return !b.T[c.ToIndex()].Occupied
}

// HasSide reports whether c holds a unit belonging to side
func (b *Board) HasSide(c Coordinate, side Side) bool {
	u, ok := b.At(c)
	return ok && u.Side == side
}

// Set places u on c, replacing whatever was there
func (b *Board) Set(c Coordinate, u Unit) {
	if !c.IsValid() {
		return
	}
	b.T[c.ToIndex()] = Square{Unit: u, Occupied: true}
}

// Clear empties c and returns the unit that was removed, if any
func (b *Board) Clear(c Coordinate) (Unit, bool) {
	if !c.IsValid() {
		return Unit{}, false
	}
	idx := c.ToIndex()
	prev := b.T[idx]
	b.T[idx] = Square{}
	return prev.Unit, prev.Occupied
}

// Find returns the first square (rank-major) holding the given unit
func (b *Board) Find(side Side, kind PieceKind) (Coordinate, bool) {
	for i, sq := range b.T {
		if sq.Occupied && sq.Unit.Is(side, kind) {
			return FromIndex(i), true
		}
	}
	return Coordinate{}, false
}

// Positions lists every square holding a unit of side, ordered by rank then file
func (b *Board) Positions(side Side) []Coordinate {
	var out []Coordinate
	for i, sq := range b.T {
		if sq.Occupied && sq.Unit.Side == side {
			out = append(out, FromIndex(i))
		}
	}
	return out
}

// Count returns how many units side has on the board
func (b *Board) Count(side Side) int {
	n := 0
	for _, sq := range b.T {
		if sq.Occupied && sq.Unit.Side == side {
			n++
		}
	}
	return n
}

// EmptyFiles returns the files of rank that hold no unit
func (b *Board) EmptyFiles(rank int) []int {
	var files []int
	for f := 0; f < BoardSize; f++ {
		if rank >= 0 && rank < BoardSize && !b.T[b.Idx(f, rank)].Occupied {
			files = append(files, f)
		}
	}
	return files
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Distance returns the Manhattan distance between two squares
func (b *Board) Distance(from, to Coordinate) int {
	return from.DistanceTo(to)
}

// String renders the board one rank per line, '.' for empty squares
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			if sq := b.T[b.Idx(f, r)]; sq.Occupied {
				sb.WriteString(sq.Unit.Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
