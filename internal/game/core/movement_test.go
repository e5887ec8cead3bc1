package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMove_Capture(t *testing.T) {
	b := NewBoard()
	b.Set(NewCoordinate(3, 4), NewUnit(Defender, Knight))
	b.Set(NewCoordinate(4, 2), NewUnit(Attacker, Pawn))

	res, ok := ApplyMove(b, NewCoordinate(3, 4), NewCoordinate(4, 2))
	require.True(t, ok)
	assert.True(t, res.Capture)
	assert.True(t, res.CapturedAttackerPawn())
	assert.False(t, res.Promoted)
	assert.True(t, b.IsEmpty(NewCoordinate(3, 4)))
	u, _ := b.At(NewCoordinate(4, 2))
	assert.Equal(t, NewUnit(Defender, Knight), u)
}

func TestApplyMove_DefenderPawnPromotesToRook(t *testing.T) {
	b := NewBoard()
	b.Set(NewCoordinate(2, 1), NewUnit(Defender, Pawn))

	res, ok := ApplyMove(b, NewCoordinate(2, 1), NewCoordinate(2, 0))
	require.True(t, ok)
	assert.True(t, res.Promoted)
	u, _ := b.At(NewCoordinate(2, 0))
	assert.Equal(t, NewUnit(Defender, Rook), u)
}

func TestApplyMove_AttackerPawnDoesNotPromote(t *testing.T) {
	b := NewBoard()
	b.Set(NewCoordinate(2, 6), NewUnit(Attacker, Pawn))

	res, ok := ApplyMove(b, NewCoordinate(2, 6), NewCoordinate(2, 7))
	require.True(t, ok)
	assert.False(t, res.Promoted)
	u, _ := b.At(NewCoordinate(2, 7))
	assert.Equal(t, Pawn, u.Kind)
}

func TestApplyMove_Rejects(t *testing.T) {
	b := NewBoard()
	_, ok := ApplyMove(b, NewCoordinate(0, 0), NewCoordinate(0, 1))
	assert.False(t, ok, "empty origin")

	b.Set(NewCoordinate(0, 0), NewUnit(Defender, Rook))
	_, ok = ApplyMove(b, NewCoordinate(0, 0), NewCoordinate(0, 0))
	assert.False(t, ok, "same square")
	_, ok = ApplyMove(b, NewCoordinate(0, 0), NewCoordinate(0, -1))
	assert.False(t, ok, "off board")
}

func TestBoard_Swap(t *testing.T) {
	b := NewBoard()
	b.Set(NewCoordinate(1, 1), NewUnit(Defender, Rook))
	b.Set(NewCoordinate(2, 2), NewUnit(Defender, Bishop))
	b.Swap(NewCoordinate(1, 1), NewCoordinate(2, 2))

	u, _ := b.At(NewCoordinate(1, 1))
	assert.Equal(t, Bishop, u.Kind)
	u, _ = b.At(NewCoordinate(2, 2))
	assert.Equal(t, Rook, u.Kind)
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	o, ok := c.Lookup(Rook)
	require.True(t, ok)
	assert.Equal(t, 18, o.Cost)
	_, ok = c.Lookup(Queen)
	assert.False(t, ok)

	o, ok = c.At(1)
	require.True(t, ok)
	assert.Equal(t, Knight, o.Kind)
	_, ok = c.At(4)
	assert.False(t, ok)
}

func TestInputs_Validate(t *testing.T) {
	assert.NoError(t, PurchaseInput{Piece: Knight}.Validate())
	assert.ErrorIs(t, PlaceInput{At: NewCoordinate(9, 0)}.Validate(), ErrInvalidCoordinates)
	assert.ErrorIs(t, MoveInput{Arena: -1, From: NewCoordinate(0, 0), To: NewCoordinate(0, 1)}.Validate(), ErrInvalidArena)
	assert.Equal(t, InputTick, TickInput{Count: 1}.GetKind())
	assert.Equal(t, "reset", ResetInput{}.GetKind().String())
}
