package core

import "fmt"

// BoardSize is the width and height of every grid arena.
const BoardSize = 8

const (
	// AttackerBackRank is the attacker's spawn edge.
	AttackerBackRank = 0
	// DefenderHomeRank is the edge the defender protects.
	DefenderHomeRank = BoardSize - 1
)

// Coordinate represents a square on the board.
// Rank 0 is the attacker's back line, rank 7 the defender's home edge.
type Coordinate struct {
	File, Rank int
}

// NewCoordinate creates a new coordinate with the given file and rank
func NewCoordinate(file, rank int) Coordinate {
	return Coordinate{File: file, Rank: rank}
}

// FromIndex creates a coordinate from a row-major board index
func FromIndex(idx int) Coordinate {
	return Coordinate{
		File: idx % BoardSize,
		Rank: idx / BoardSize,
	}
}

// IsValid checks if the coordinate lies on the board
func (c Coordinate) IsValid() bool {
	return c.File >= 0 && c.File < BoardSize && c.Rank >= 0 && c.Rank < BoardSize
}

// ToIndex converts the coordinate to a row-major board index
func (c Coordinate) ToIndex() int {
	return c.Rank*BoardSize + c.File
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dx := c.File - other.File
	dy := c.Rank - other.Rank
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Add returns the coordinate offset by another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		File: c.File + other.File,
		Rank: c.Rank + other.Rank,
	}
}

// Offset returns the coordinate shifted by df files and dr ranks
func (c Coordinate) Offset(df, dr int) Coordinate {
	return Coordinate{File: c.File + df, Rank: c.Rank + dr}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.File == other.File && c.Rank == other.Rank
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.File, c.Rank)
}

// Algebraic renders the square in chess notation with rank 7 as "1".
func (c Coordinate) Algebraic() string {
	if !c.IsValid() {
		return c.String()
	}
	return fmt.Sprintf("%c%d", 'a'+c.File, BoardSize-c.Rank)
}

// ParseAlgebraic is the inverse of Algebraic
func ParseAlgebraic(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	file := s[0]
	if file >= 'A' && file <= 'Z' {
		file += 'a' - 'A'
	}
	c := Coordinate{File: int(file) - 'a', Rank: BoardSize - int(s[1]-'0')}
	if !c.IsValid() {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	return c, nil
}

// Contains reports whether target is in coords.
func Contains(coords []Coordinate, target Coordinate) bool {
	for _, c := range coords {
		if c == target {
			return true
		}
	}
	return false
}
