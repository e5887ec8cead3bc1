package simserver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestManager(maxGames int) (*SessionManager, *manualClock) {
	clock := &manualClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	sm := NewSessionManager(maxGames, SessionRules{}, zerolog.Nop())
	sm.SetClock(clock.Now)
	return sm, clock
}

func TestSessionManager_CreateGetRemove(t *testing.T) {
	sm, _ := newTestManager(0)
	ctx := context.Background()

	s, err := sm.Create(ctx, SessionOptions{Variant: game.VariantMoveback, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, s.ID(), s.sim.GameID())
	assert.Equal(t, game.VariantMoveback, s.Variant())
	assert.Equal(t, 1, sm.Count())

	got, err := sm.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	assert.True(t, sm.Remove(s.id))
	assert.False(t, sm.Remove(s.id))
	_, err = sm.Get(s.id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_Variants(t *testing.T) {
	sm, _ := newTestManager(0)
	for _, v := range []game.Variant{game.VariantMoveback, game.VariantTowerDefense, game.VariantDualArena} {
		s, err := sm.Create(context.Background(), SessionOptions{Variant: v, Seed: 3})
		require.NoError(t, err, v)
		assert.Equal(t, string(v), s.document()["variant"])
	}
}

func TestSessionManager_CustomRules(t *testing.T) {
	sm := NewSessionManager(0, SessionRules{
		Grid: func(v game.Variant) game.Rules {
			r := game.DefaultRules(v)
			r.StartingGold = 99
			return r
		},
	}, zerolog.Nop())

	s, err := sm.Create(context.Background(), SessionOptions{Variant: game.VariantMoveback, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, 99, s.document()["gold"])
}

func TestSessionManager_MaxGames(t *testing.T) {
	sm, _ := newTestManager(2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := sm.Create(ctx, SessionOptions{Variant: game.VariantMoveback})
		require.NoError(t, err)
	}
	_, err := sm.Create(ctx, SessionOptions{Variant: game.VariantMoveback})
	assert.ErrorIs(t, err, ErrAtCapacity)
}

func TestSessionManager_ConcurrentCreateRespectsLimit(t *testing.T) {
	sm, _ := newTestManager(5)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = sm.Create(context.Background(), SessionOptions{Variant: game.VariantMoveback, Seed: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, sm.Count())
}

func TestSessionManager_List(t *testing.T) {
	sm, clock := newTestManager(0)
	ctx := context.Background()

	first, err := sm.Create(ctx, SessionOptions{Variant: game.VariantMoveback, Seed: 1})
	require.NoError(t, err)
	clock.Advance(time.Second)
	second, err := sm.Create(ctx, SessionOptions{Variant: game.VariantDualArena, Seed: 1})
	require.NoError(t, err)

	list := sm.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.id, list[0].id)
	assert.Equal(t, second.id, list[1].id)
}

func TestSessionManager_CleanupAbandoned(t *testing.T) {
	sm, clock := newTestManager(0)
	ctx := context.Background()

	for _, v := range []game.Variant{game.VariantDualArena, game.VariantMoveback} {
		_, err := sm.Create(ctx, SessionOptions{Variant: v, Seed: 1})
		require.NoError(t, err)
	}
	watched, err := sm.Create(ctx, SessionOptions{Variant: game.VariantMoveback, Seed: 1})
	require.NoError(t, err)
	watched.watchers = 1

	clock.Advance(11 * time.Minute)
	assert.Zero(t, sm.Cleanup(10*time.Minute, 30*time.Minute), "nothing finished or abandoned yet")

	clock.Advance(20 * time.Minute)
	assert.Equal(t, 2, sm.Cleanup(10*time.Minute, 30*time.Minute))
	assert.Equal(t, 1, sm.Count())
	_, err = sm.Get(watched.id)
	assert.NoError(t, err, "watched sessions survive cleanup")
}

func TestSessionManager_CleanupFinished(t *testing.T) {
	sm, clock := newTestManager(0)
	ctx := context.Background()

	s, err := sm.Create(ctx, SessionOptions{Variant: game.VariantTowerDefense, Seed: 1})
	require.NoError(t, err)

	// An undefended wave walks straight to the home rank
	for i := 0; i < 50 && !s.sim.IsGameOver(); i++ {
		_, err := s.sim.Apply(ctx, core.TickInput{Count: 1})
		if err != nil {
			break
		}
	}
	require.True(t, s.sim.IsGameOver())

	clock.Advance(5 * time.Minute)
	assert.Zero(t, sm.Cleanup(10*time.Minute, 30*time.Minute))
	clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, sm.Cleanup(10*time.Minute, 30*time.Minute))
}
