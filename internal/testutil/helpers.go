package testutil

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/rs/zerolog"
)

// NewTestRNG returns a seeded source so generated boards and bot choices replay exactly
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger discards everything the engine logs
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// RandomBoard scatters up to units pieces of random kind and side over an empty board.
// Collisions are skipped, so the result may hold fewer pieces than asked for.
func RandomBoard(rng *rand.Rand, units int) *core.Board {
	board := core.NewBoard()
	for i := 0; i < units; i++ {
		at := core.FromIndex(rng.Intn(core.BoardSize * core.BoardSize))
		if !board.IsEmpty(at) {
			continue
		}
		side := core.Side(rng.Intn(2))
		kind := core.AllKinds[rng.Intn(len(core.AllKinds))]
		board.Set(at, core.NewUnit(side, kind))
	}
	return board
}

// AssertPanic fails t unless f panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected a panic: %v", msgAndArgs)
		}
	}()
	f()
}
