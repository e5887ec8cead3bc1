package spawn

import (
	"testing"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchedule_Validates(t *testing.T) {
	require.NoError(t, DefaultSchedule(120).Validate())
	require.NoError(t, PawnWaveSchedule().Validate())

	bad := DefaultSchedule(120)
	bad.Bands[1].Weights = []Weight{{core.Pawn, 0.5}}
	assert.Error(t, bad.Validate())
}

func TestController_Progress(t *testing.T) {
	c := NewController(testutil.NewTestRNG(1), DefaultSchedule(120))
	assert.Equal(t, 0.0, c.Progress(0))
	assert.InDelta(t, 0.5, c.Progress(60), 1e-9)
	assert.Equal(t, 1.0, c.Progress(500))

	td := NewController(testutil.NewTestRNG(1), PawnWaveSchedule())
	assert.Equal(t, 0.0, td.Progress(40))
}

func TestController_IntervalBands(t *testing.T) {
	c := NewController(testutil.NewTestRNG(1), DefaultSchedule(120))
	tests := []struct {
		progress float64
		interval int
	}{
		{0, 3}, {0.34, 3}, {0.35, 2}, {0.69, 2}, {0.7, 1}, {1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.interval, c.Interval(tt.progress), "progress %.2f", tt.progress)
	}

	assert.True(t, c.ShouldSpawn(3, 0.1))
	assert.False(t, c.ShouldSpawn(4, 0.1))
	assert.True(t, c.ShouldSpawn(44, 0.4))
	assert.True(t, c.ShouldSpawn(97, 0.9))
}

func TestController_WeightTablesSumToOne(t *testing.T) {
	c := NewController(testutil.NewTestRNG(1), DefaultSchedule(120))
	for _, p := range []float64{0, 0.1, 0.2, 0.3, 0.5, 0.7, 0.85, 0.95, 1} {
		sum := 0.0
		for _, w := range c.Weights(p) {
			sum += w.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "progress %.2f", p)
	}
}

func TestController_ChooseKindConverges(t *testing.T) {
	c := NewController(testutil.NewTestRNG(2024), DefaultSchedule(120))
	const trials = 20000
	counts := map[core.PieceKind]int{}
	for i := 0; i < trials; i++ {
		counts[c.ChooseKind(0.85)]++
	}
	for _, w := range c.Weights(0.85) {
		got := float64(counts[w.Kind]) / trials
		assert.InDelta(t, w.Weight, got, 0.02, "kind %s", w.Kind)
	}

	for i := 0; i < 100; i++ {
		assert.Equal(t, core.Pawn, c.ChooseKind(0.1))
		assert.Equal(t, core.Queen, c.ChooseKind(1))
	}
}

func TestController_PlacePreferredRows(t *testing.T) {
	c := NewController(testutil.NewTestRNG(5), DefaultSchedule(120))
	b := core.NewBoard()

	at, ok := c.Place(b, core.Pawn)
	require.True(t, ok)
	assert.Equal(t, 1, at.Rank)

	at, ok = c.Place(b, core.Rook)
	require.True(t, ok)
	assert.Equal(t, 0, at.Rank)
	u, _ := b.At(at)
	assert.Equal(t, core.NewUnit(core.Attacker, core.Rook), u)
}

func TestController_PlaceFallsBackThenBlocks(t *testing.T) {
	c := NewController(testutil.NewTestRNG(5), DefaultSchedule(120))
	b := core.NewBoard()
	for f := 0; f < core.BoardSize; f++ {
		b.Set(core.NewCoordinate(f, 1), core.NewUnit(core.Attacker, core.Pawn))
	}

	at, ok := c.Place(b, core.Pawn)
	require.True(t, ok)
	assert.Equal(t, 0, at.Rank, "pawn falls back to rank 0 when rank 1 is full")

	for f := 0; f < core.BoardSize; f++ {
		b.Set(core.NewCoordinate(f, 0), core.NewUnit(core.Attacker, core.Pawn))
	}
	before := *b
	_, ok = c.Place(b, core.Knight)
	assert.False(t, ok)
	assert.Equal(t, before, *b, "blocked spawn leaves the board untouched")
}

func TestPawnWaveSchedule_OnlyRankOne(t *testing.T) {
	c := NewController(testutil.NewTestRNG(5), PawnWaveSchedule())
	b := core.NewBoard()
	for round := 1; round <= core.BoardSize; round++ {
		res := c.Step(b, round)
		require.True(t, res.Spawned)
		assert.Equal(t, core.Pawn, res.Kind)
		assert.Equal(t, 1, res.At.Rank)
	}
	res := c.Step(b, 9)
	assert.True(t, res.Attempted)
	assert.False(t, res.Spawned)
	assert.Equal(t, "spawn blocked", res.Text())
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "no spawn this round", Result{}.Text())
	assert.Equal(t, "spawned 1 knight", Result{Attempted: true, Spawned: true, Kind: core.Knight}.Text())
	assert.Equal(t, "every round", IntervalText(1))
	assert.Equal(t, "every 3 rounds", IntervalText(3))
}
