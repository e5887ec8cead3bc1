package simserver

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// simulation is what a session drives: a grid engine or a dual-arena match
type simulation interface {
	Apply(ctx context.Context, input core.Input) (bool, error)
	Update(ctx context.Context, now time.Time) (int, error)
	StatusText() string
	IsGameOver() bool
	GameID() string
	document(sessionID string) map[string]interface{}
}

type engineSim struct{ *game.Engine }

func (s engineSim) document(sessionID string) map[string]interface{} {
	return convertEngineSnapshot(sessionID, s.Snapshot())
}

type matchSim struct{ *arena.Match }

func (s matchSim) document(sessionID string) map[string]interface{} {
	return convertMatchSnapshot(sessionID, s.Snapshot())
}

// SessionOptions selects what a new session runs
type SessionOptions struct {
	Variant game.Variant
	// Seed of 0 picks a time-based seed
	Seed int64
}

// Session is one running simulation. mu serialises every call into sim.
type Session struct {
	id      string
	variant game.Variant
	seed    int64

	mu           sync.Mutex
	sim          simulation
	createdAt    time.Time
	lastActivity time.Time
	watchers     int

	idempotency *IdempotencyManager
}

func newSimulation(ctx context.Context, id string, opts SessionOptions, rules SessionRules, logger zerolog.Logger, now func() time.Time) (simulation, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	if opts.Variant == game.VariantDualArena {
		m, err := arena.NewMatch(ctx, arena.MatchConfig{
			Rules:  rules.DualArena,
			Rng:    rng,
			Logger: logger,
			GameID: id,
			Now:    now,
		})
		if err != nil {
			return nil, err
		}
		return matchSim{m}, nil
	}

	var r game.Rules
	if rules.Grid != nil {
		r = rules.Grid(opts.Variant)
	}
	e, err := game.NewEngine(ctx, game.GameConfig{
		Variant: opts.Variant,
		Rules:   r,
		Rng:     rng,
		Logger:  logger,
		GameID:  id,
		Now:     now,
	})
	if err != nil {
		return nil, err
	}
	return engineSim{e}, nil
}

// ID returns the session identifier handed to clients.
func (s *Session) ID() string { return s.id }

// Variant reports which ruleset the session runs.
func (s *Session) Variant() game.Variant { return s.variant }

// touch records activity; callers hold mu
func (s *Session) touch(now time.Time) {
	s.lastActivity = now
}

func (s *Session) document() map[string]interface{} {
	doc := s.sim.document(s.id)
	doc["created_at"] = timestampValue(s.createdAt)
	doc["last_activity"] = timestampValue(s.lastActivity)
	return doc
}
