package arena

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/states"
)

var testEpoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeNow struct{ t time.Time }

func (f *fakeNow) Now() time.Time { return f.t }

func newTestMatch(t *testing.T) (*Match, *fakeNow) {
	t.Helper()
	clock := &fakeNow{t: testEpoch}
	m, err := NewMatch(context.Background(), MatchConfig{
		Rng:    rand.New(rand.NewSource(42)),
		Logger: zerolog.Nop(),
		GameID: "test-match",
		Now:    clock.Now,
	})
	require.NoError(t, err)
	return m, clock
}

func move(t *testing.T, m *Match, arena int, from, to chess.Square) bool {
	t.Helper()
	ok, err := m.Move(arena, CoordinateOf(from), CoordinateOf(to))
	require.NoError(t, err)
	return ok
}

func TestNewMatch(t *testing.T) {
	m, _ := newTestMatch(t)

	assert.Equal(t, "test-match", m.GameID())
	assert.Equal(t, states.PhaseAwaitingTick, m.CurrentPhase())
	assert.False(t, m.IsGameOver())
	assert.Contains(t, m.StatusText(), "Each White capture spawns a Black pawn on the other board")

	s := m.Snapshot()
	require.Len(t, s.Arenas, ArenaCount)
	assert.Equal(t, "Board 1: White A vs Bot A", s.Arenas[0].Label)
	assert.Equal(t, "Board 2: White B vs Bot B", s.Arenas[1].Label)
}

func TestNewMatch_Defaults(t *testing.T) {
	m, err := NewMatch(context.Background(), MatchConfig{Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Len(t, m.GameID(), 36)
	assert.Equal(t, DefaultRules(), m.rules)
}

func TestNewMatch_InvalidDelays(t *testing.T) {
	_, err := NewMatch(context.Background(), MatchConfig{
		Logger: zerolog.Nop(),
		Rules:  Rules{BotDelayMin: time.Second, BotDelayMax: time.Millisecond},
	})
	assert.Error(t, err)
}

func TestNewMatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMatch(ctx, MatchConfig{Logger: zerolog.Nop()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRulesFromConfig(t *testing.T) {
	r := RulesFromConfig(config.DualArenaConfig{BotDelayMinMs: 100, BotDelayMaxMs: 200})
	assert.Equal(t, 100*time.Millisecond, r.BotDelayMin)
	assert.Equal(t, 200*time.Millisecond, r.BotDelayMax)
}

func TestMatch_MoveRejections(t *testing.T) {
	t.Run("invalid arena", func(t *testing.T) {
		m, _ := newTestMatch(t)
		_, err := m.Move(2, CoordinateOf(chess.E2), CoordinateOf(chess.E4))
		assert.ErrorIs(t, err, core.ErrInvalidArena)
	})

	t.Run("empty origin", func(t *testing.T) {
		m, _ := newTestMatch(t)
		assert.False(t, move(t, m, 0, chess.E4, chess.E5))
		assert.Equal(t, "Select one of your pieces first.", m.StatusText())
	})

	t.Run("black piece", func(t *testing.T) {
		m, _ := newTestMatch(t)
		assert.False(t, move(t, m, 0, chess.E7, chess.E5))
		assert.Equal(t, "Select one of your pieces first.", m.StatusText())
	})

	t.Run("illegal", func(t *testing.T) {
		m, _ := newTestMatch(t)
		assert.False(t, move(t, m, 0, chess.E2, chess.E5))
		assert.Equal(t, "That move is not legal.", m.StatusText())
	})

	t.Run("waiting for bot", func(t *testing.T) {
		m, _ := newTestMatch(t)
		require.True(t, move(t, m, 0, chess.E2, chess.E4))
		assert.False(t, move(t, m, 0, chess.D2, chess.D4))
		assert.Contains(t, m.Notifications().Active(), "Board 1: waiting for black bot...")
	})
}

func TestMatch_MovePublishesAndSchedulesBot(t *testing.T) {
	m, clock := newTestMatch(t)
	var moves []*events.ArenaMoveEvent
	m.EventBus().SubscribeFunc(events.TypeArenaMove, func(e events.Event) {
		moves = append(moves, e.(*events.ArenaMoveEvent))
	})

	require.True(t, move(t, m, 1, chess.E2, chess.E4))
	assert.Equal(t, "Board 2: White played e4", m.StatusText())
	require.Len(t, moves, 1)
	assert.Equal(t, 1, moves[0].Arena)
	assert.True(t, moves[0].White)
	assert.Equal(t, "e4", moves[0].SAN)
	assert.False(t, moves[0].Capture)

	next := m.Arena(1).nextBot
	require.False(t, next.IsZero())
	delay := next.Sub(clock.t)
	assert.GreaterOrEqual(t, delay, 450*time.Millisecond)
	assert.LessOrEqual(t, delay, 950*time.Millisecond)
	assert.True(t, m.Arena(0).nextBot.IsZero())

	snap := m.Snapshot()
	assert.Equal(t, delay, snap.Arenas[1].NextBotIn)
	assert.Equal(t, []string{"e4"}, snap.Arenas[1].History)
}

func TestMatch_UpdateWaitsForBotDelay(t *testing.T) {
	m, clock := newTestMatch(t)
	require.True(t, move(t, m, 0, chess.E2, chess.E4))

	played, err := m.Update(context.Background(), clock.t.Add(400*time.Millisecond))
	require.NoError(t, err)
	assert.Zero(t, played)
	assert.Equal(t, chess.Black, m.Arena(0).Turn())

	played, err = m.Update(context.Background(), clock.t.Add(950*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 1, played)
	assert.Equal(t, chess.White, m.Arena(0).Turn())
	assert.True(t, m.Arena(0).nextBot.IsZero())
	assert.Contains(t, m.StatusText(), "Board 1: Black played ")
	assert.Equal(t, states.PhaseAwaitingTick, m.CurrentPhase())
	assert.Equal(t, 1, m.Snapshot().Tick)
}

func TestMatch_UpdateSchedulesUnscheduledBot(t *testing.T) {
	m, clock := newTestMatch(t)
	m.arenas[0] = arenaFromFEN(t, 0, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")

	played, err := m.Update(context.Background(), clock.t)
	require.NoError(t, err)
	assert.Zero(t, played)
	assert.False(t, m.Arena(0).nextBot.IsZero())

	played, err = m.Update(context.Background(), clock.t.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, played)
}

func TestMatch_TickForcesBots(t *testing.T) {
	m, _ := newTestMatch(t)
	require.True(t, move(t, m, 0, chess.E2, chess.E4))
	require.True(t, move(t, m, 1, chess.D2, chess.D4))

	played, err := m.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, played)
	assert.Equal(t, chess.White, m.Arena(0).Turn())
	assert.Equal(t, chess.White, m.Arena(1).Turn())

	played, err = m.Tick(context.Background())
	require.NoError(t, err)
	assert.Zero(t, played, "nothing to do while White is to move")
}

func TestMatch_CaptureSpawnsOnOtherBoard(t *testing.T) {
	m, _ := newTestMatch(t)
	m.arenas[0] = arenaFromFEN(t, 0, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	var spawns []*events.ArenaPawnSpawnedEvent
	m.EventBus().SubscribeFunc(events.TypeArenaPawnSpawned, func(e events.Event) {
		spawns = append(spawns, e.(*events.ArenaPawnSpawnedEvent))
	})

	require.True(t, move(t, m, 0, chess.E4, chess.D5))

	require.Len(t, spawns, 1)
	assert.Equal(t, 0, spawns[0].SourceArena)
	assert.Equal(t, 1, spawns[0].TargetArena)
	require.False(t, spawns[0].Blocked())
	assert.Equal(t, "6", spawns[0].Square[1:])

	target := m.Arena(1).game.Position().Board()
	assert.Len(t, target.SquareMap(), 33)
	assert.Contains(t, m.Notifications().Active(),
		"Capture on Board 1: spawned black pawn on Board 2 at "+spawns[0].Square)
	assert.Equal(t, chess.White, m.Arena(1).Turn(), "spawning does not pass the turn")
}

func TestMatch_CaptureWithNoVacancy(t *testing.T) {
	m, _ := newTestMatch(t)
	full := "4k3/pppppppp/pppppppp/pppppppp/pppppppp/pppppppp/pppppppp/4K3 w - - 0 1"
	m.arenas[0] = arenaFromFEN(t, 0, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	m.arenas[1] = arenaFromFEN(t, 1, full)
	before := m.Arena(1).game

	require.True(t, move(t, m, 0, chess.E4, chess.D5))

	assert.Same(t, before, m.Arena(1).game)
	assert.Contains(t, m.Notifications().Active(),
		"Capture on Board 1: no empty square to spawn a pawn on Board 2")
}

func TestMatch_WhiteCheckmateWins(t *testing.T) {
	m, _ := newTestMatch(t)
	m.arenas[1] = arenaFromFEN(t, 1, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	var ended []*events.GameEndedEvent
	m.EventBus().SubscribeFunc(events.TypeGameEnded, func(e events.Event) {
		ended = append(ended, e.(*events.GameEndedEvent))
	})

	require.True(t, move(t, m, 1, chess.A1, chess.A8))

	reason := "Board 2: White checkmated Black. White team wins."
	assert.True(t, m.IsGameOver())
	assert.True(t, m.Won())
	assert.Equal(t, reason, m.EndReason())
	assert.Equal(t, states.PhaseTerminal, m.CurrentPhase())
	require.Len(t, ended, 1)
	assert.True(t, ended[0].Won)
	assert.Contains(t, m.Notifications().Active(), reason)

	assert.False(t, move(t, m, 0, chess.E2, chess.E4))
	_, err := m.Tick(context.Background())
	assert.ErrorIs(t, err, core.ErrGameOver)
	played, err := m.Update(context.Background(), testEpoch.Add(time.Hour))
	assert.NoError(t, err)
	assert.Zero(t, played)
}

func TestMatch_BlackCheckmateLoses(t *testing.T) {
	m, _ := newTestMatch(t)
	m.arenas[0] = arenaFromFEN(t, 0, "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1")

	played, err := m.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, played)

	assert.True(t, m.IsGameOver())
	assert.False(t, m.Won())
	assert.Equal(t, "Board 1: Black checkmated White. White team loses.", m.EndReason())
	assert.Equal(t, states.PhaseTerminal, m.CurrentPhase())

	s := m.Snapshot()
	assert.True(t, s.GameOver)
	assert.Equal(t, "Status: White is checkmated", s.Arenas[0].Status)
	assert.Equal(t, ToneAlert, s.Arenas[0].Tone)
}

func TestMatch_BothBoardsDrawn(t *testing.T) {
	m, _ := newTestMatch(t)
	m.arenas[0] = arenaFromFEN(t, 0, "k7/8/8/2Q5/8/8/8/K7 w - - 0 1")
	m.arenas[1] = arenaFromFEN(t, 1, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	require.True(t, move(t, m, 0, chess.C5, chess.B6))

	assert.True(t, m.IsGameOver())
	assert.False(t, m.Won())
	assert.Equal(t, "Both boards ended without checkmate.", m.EndReason())
}

func TestMatch_OneBoardDrawnContinues(t *testing.T) {
	m, _ := newTestMatch(t)
	m.arenas[0] = arenaFromFEN(t, 0, "k7/8/8/2Q5/8/8/8/K7 w - - 0 1")

	require.True(t, move(t, m, 0, chess.C5, chess.B6))
	assert.False(t, m.IsGameOver())
	assert.True(t, m.Arena(0).Ended())
	assert.True(t, m.Arena(0).nextBot.IsZero(), "no bot move on a finished board")

	assert.False(t, move(t, m, 0, chess.A1, chess.A2))
	assert.True(t, move(t, m, 1, chess.E2, chess.E4))
}

func TestMatch_LegalTargets(t *testing.T) {
	m, _ := newTestMatch(t)

	targets := m.LegalTargets(0, CoordinateOf(chess.E2))
	assert.ElementsMatch(t, []core.Coordinate{CoordinateOf(chess.E3), CoordinateOf(chess.E4)}, targets)
	assert.Nil(t, m.LegalTargets(5, CoordinateOf(chess.E2)))

	require.True(t, move(t, m, 0, chess.E2, chess.E4))
	assert.Nil(t, m.LegalTargets(0, CoordinateOf(chess.D2)), "no targets while the bot is to move")
}

func TestMatch_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("move", func(t *testing.T) {
		m, _ := newTestMatch(t)
		ok, err := m.Apply(ctx, core.MoveInput{Arena: 0, From: CoordinateOf(chess.G1), To: CoordinateOf(chess.F3)})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("tick", func(t *testing.T) {
		m, _ := newTestMatch(t)
		require.True(t, move(t, m, 0, chess.E2, chess.E4))
		ok, err := m.Apply(ctx, core.TickInput{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, chess.White, m.Arena(0).Turn())
	})

	t.Run("shop inputs unsupported", func(t *testing.T) {
		m, _ := newTestMatch(t)
		_, err := m.Apply(ctx, core.PurchaseInput{Piece: core.Knight})
		assert.ErrorIs(t, err, core.ErrUnknownInput)
		_, err = m.Apply(ctx, core.PlaceInput{At: core.NewCoordinate(0, 7)})
		assert.ErrorIs(t, err, core.ErrUnknownInput)
	})

	t.Run("nil", func(t *testing.T) {
		m, _ := newTestMatch(t)
		_, err := m.Apply(ctx, nil)
		assert.ErrorIs(t, err, core.ErrUnknownInput)
	})

	t.Run("invalid move input", func(t *testing.T) {
		m, _ := newTestMatch(t)
		_, err := m.Apply(ctx, core.MoveInput{Arena: -1})
		assert.ErrorIs(t, err, core.ErrInvalidArena)
	})
}

func TestMatch_Reset(t *testing.T) {
	m, _ := newTestMatch(t)
	m.arenas[0] = arenaFromFEN(t, 0, "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1")
	_, err := m.Tick(context.Background())
	require.NoError(t, err)
	require.True(t, m.IsGameOver())

	ok, err := m.Apply(context.Background(), core.ResetInput{})
	require.NoError(t, err)
	assert.True(t, ok)

	assert.False(t, m.IsGameOver())
	assert.Empty(t, m.EndReason())
	assert.Equal(t, states.PhaseAwaitingTick, m.CurrentPhase())
	assert.Empty(t, m.Notifications().Active())
	for i := 0; i < ArenaCount; i++ {
		assert.Equal(t, chess.NewGame().FEN(), m.Arena(i).game.FEN())
	}
	assert.True(t, move(t, m, 0, chess.E2, chess.E4))
}
