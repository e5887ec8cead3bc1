package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/testutil"
)

// recordingTarget accepts every input and remembers the order
type recordingTarget struct {
	seen   []core.InputKind
	failOn core.InputKind
	err    error
	status string
}

func (r *recordingTarget) Apply(_ context.Context, in core.Input) (bool, error) {
	r.seen = append(r.seen, in.GetKind())
	if r.err != nil && in.GetKind() == r.failOn {
		return false, r.err
	}
	r.status = "applied " + in.GetKind().String()
	return true, nil
}

func (r *recordingTarget) StatusText() string { return r.status }

func TestProcessInputs_PreservesOrder(t *testing.T) {
	ip := NewInputProcessor(testutil.NopLogger())
	target := &recordingTarget{}

	results, err := ip.ProcessInputs(context.Background(), target, []core.Input{
		core.PurchaseInput{Piece: core.Knight},
		core.PlaceInput{At: core.NewCoordinate(1, 6)},
		core.TickInput{Count: 2},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []core.InputKind{core.InputPurchase, core.InputPlace, core.InputTick}, target.seen)
	for _, r := range results {
		assert.True(t, r.Accepted)
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, "applied place", results[1].Status)
}

func TestProcessInputs_ContinuesAfterErrorAndReportsFirst(t *testing.T) {
	ip := NewInputProcessor(testutil.NopLogger())
	boom := errors.New("boom")
	target := &recordingTarget{failOn: core.InputPlace, err: boom}

	results, err := ip.ProcessInputs(context.Background(), target, []core.Input{
		core.PlaceInput{At: core.NewCoordinate(1, 6)},
		nil,
		core.ResetInput{},
	})
	assert.ErrorIs(t, err, boom)
	require.Len(t, results, 3)
	assert.ErrorIs(t, results[1].Err, core.ErrUnknownInput)
	assert.True(t, results[2].Accepted)
}

func TestProcessInputs_StopsOnGameOver(t *testing.T) {
	ip := NewInputProcessor(testutil.NopLogger())
	target := &recordingTarget{failOn: core.InputTick, err: core.ErrGameOver}

	results, err := ip.ProcessInputs(context.Background(), target, []core.Input{
		core.TickInput{Count: 1},
		core.PurchaseInput{Piece: core.Pawn},
	})
	assert.ErrorIs(t, err, core.ErrGameOver)
	assert.Len(t, results, 1)
	assert.Equal(t, []core.InputKind{core.InputTick}, target.seen)
}

func TestProcessInputs_Cancelled(t *testing.T) {
	ip := NewInputProcessor(testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ip.ProcessInputs(ctx, &recordingTarget{}, []core.Input{core.ResetInput{}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
