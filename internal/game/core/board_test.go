package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_SetAtClear(t *testing.T) {
	b := NewBoard()
	c := NewCoordinate(4, 7)

	_, ok := b.At(c)
	assert.False(t, ok)
	assert.True(t, b.IsEmpty(c))

	b.Set(c, NewUnit(Defender, King))
	u, ok := b.At(c)
	require.True(t, ok)
	assert.Equal(t, NewUnit(Defender, King), u)
	assert.True(t, b.HasSide(c, Defender))
	assert.False(t, b.HasSide(c, Attacker))

	removed, ok := b.Clear(c)
	require.True(t, ok)
	assert.Equal(t, King, removed.Kind)
	assert.True(t, b.IsEmpty(c))
}

func TestBoard_OffBoardIsNotEmpty(t *testing.T) {
	b := NewBoard()
	assert.False(t, b.IsEmpty(NewCoordinate(-1, 0)))
	b.Set(NewCoordinate(8, 8), NewUnit(Attacker, Pawn))
	assert.Equal(t, 0, b.Count(Attacker))
}

func TestBoard_PositionsAndFind(t *testing.T) {
	b := NewBoard()
	b.Set(NewCoordinate(5, 3), NewUnit(Attacker, Pawn))
	b.Set(NewCoordinate(1, 1), NewUnit(Attacker, Rook))
	b.Set(NewCoordinate(4, 7), NewUnit(Defender, King))

	assert.Equal(t, []Coordinate{{1, 1}, {5, 3}}, b.Positions(Attacker))
	assert.Equal(t, 2, b.Count(Attacker))
	assert.Equal(t, 1, b.Count(Defender))

	pos, ok := b.Find(Defender, King)
	require.True(t, ok)
	assert.Equal(t, NewCoordinate(4, 7), pos)

	_, ok = b.Find(Attacker, King)
	assert.False(t, ok)
}

func TestBoard_EmptyFiles(t *testing.T) {
	b := NewBoard()
	for f := 0; f < BoardSize; f++ {
		if f != 2 && f != 6 {
			b.Set(NewCoordinate(f, 1), NewUnit(Attacker, Pawn))
		}
	}
	assert.Equal(t, []int{2, 6}, b.EmptyFiles(1))
	assert.Len(t, b.EmptyFiles(0), BoardSize)
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	b := NewBoard()
	b.Set(NewCoordinate(0, 0), NewUnit(Attacker, Queen))
	cp := b.Clone()
	cp.Clear(NewCoordinate(0, 0))

	assert.False(t, b.IsEmpty(NewCoordinate(0, 0)))
	assert.True(t, cp.IsEmpty(NewCoordinate(0, 0)))
}

func TestBoard_String(t *testing.T) {
	b := NewBoard()
	b.Set(NewCoordinate(0, 0), NewUnit(Attacker, Queen))
	b.Set(NewCoordinate(4, 7), NewUnit(Defender, King))
	lines := b.String()
	assert.Contains(t, lines, "q.......\n")
	assert.Contains(t, lines, "....K...\n")
}

func TestBoard_IdxXYAgreeWithCoordinateIndex(t *testing.T) {
	b := NewBoard()
	for i := range b.T {
		f, r := b.XY(i)
		assert.Equal(t, i, b.Idx(f, r))
		assert.Equal(t, NewCoordinate(f, r).ToIndex(), i)
	}
}

func TestBoard_InBoundsAndDistance(t *testing.T) {
	b := NewBoard()
	assert.True(t, b.InBounds(NewCoordinate(0, 0)))
	assert.True(t, b.InBounds(NewCoordinate(7, 7)))
	assert.False(t, b.InBounds(Coordinate{File: -1, Rank: 3}))
	assert.False(t, b.InBounds(Coordinate{File: 3, Rank: 8}))

	assert.Equal(t, 0, b.Distance(NewCoordinate(2, 2), NewCoordinate(2, 2)))
	assert.Equal(t, 14, b.Distance(NewCoordinate(0, 0), NewCoordinate(7, 7)))
}
