package common

import "github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"

// IsValidCoordinate checks if the given coordinates are within the bounds of the board
func IsValidCoordinate(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

// IsDeployable reports whether c lies in the defender's deployment territory
// (ranks minRank through the home rank).
func IsDeployable(c core.Coordinate, minRank int) bool {
	return c.IsValid() && c.Rank >= minRank && c.Rank <= core.DefenderHomeRank
}

// ManhattanDistance calculates the Manhattan distance between two points
func ManhattanDistance(x1, y1, x2, y2 int) int {
	return Abs(x1-x2) + Abs(y1-y2)
}

// ChebyshevDistance is the number of king steps between two points
func ChebyshevDistance(x1, y1, x2, y2 int) int {
	return Max(Abs(x1-x2), Abs(y1-y2))
}

// IsKingAdjacent reports whether two distinct squares touch, diagonals included
func IsKingAdjacent(a, b core.Coordinate) bool {
	return a != b && ChebyshevDistance(a.File, a.Rank, b.File, b.Rank) == 1
}
