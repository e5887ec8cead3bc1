package simserver

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
)

// ErrAtCapacity is returned when max_games sessions are already running
var ErrAtCapacity = fmt.Errorf("server at capacity")

// ErrSessionNotFound is returned for unknown session IDs
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionRules supplies the rule numbers for new sessions
type SessionRules struct {
	// Grid returns the rules for a grid variant; nil uses each variant's defaults
	Grid      func(game.Variant) game.Rules
	DualArena arena.Rules
}

// SessionManager owns every running session
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	maxGames int
	rules    SessionRules
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSessionManager creates a manager holding at most maxGames sessions; 0 means unlimited
func NewSessionManager(maxGames int, rules SessionRules, logger zerolog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		maxGames: maxGames,
		rules:    rules,
		logger:   logger.With().Str("component", "SessionManager").Logger(),
		now:      time.Now,
	}
}

// SetClock overrides the time source used for new sessions and activity tracking
func (sm *SessionManager) SetClock(now func() time.Time) {
	sm.now = now
}

// Create starts a new session
func (sm *SessionManager) Create(ctx context.Context, opts SessionOptions) (*Session, error) {
	sm.mu.RLock()
	current := len(sm.sessions)
	sm.mu.RUnlock()
	if sm.maxGames > 0 && current >= sm.maxGames {
		sm.logger.Warn().
			Int("current_games", current).
			Int("max_games", sm.maxGames).
			Msg("Rejecting session creation - server at capacity")
		return nil, fmt.Errorf("%w: %d/%d sessions active", ErrAtCapacity, current, sm.maxGames)
	}

	if opts.Seed == 0 {
		opts.Seed = sm.now().UnixNano()
	}
	id := uuid.NewString()
	logger := sm.logger.With().Str("session_id", id).Logger()

	sim, err := newSimulation(ctx, id, opts, sm.rules, logger, sm.now)
	if err != nil {
		return nil, err
	}

	now := sm.now()
	s := &Session{
		id:           id,
		variant:      opts.Variant,
		seed:         opts.Seed,
		sim:          sim,
		createdAt:    now,
		lastActivity: now,
		idempotency:  NewIdempotencyManager(),
	}

	sm.mu.Lock()
	if sm.maxGames > 0 && len(sm.sessions) >= sm.maxGames {
		sm.mu.Unlock()
		return nil, fmt.Errorf("%w: %d/%d sessions active", ErrAtCapacity, len(sm.sessions), sm.maxGames)
	}
	sm.sessions[id] = s
	sm.mu.Unlock()

	logger.Info().Str("variant", string(opts.Variant)).Int64("seed", opts.Seed).Msg("Created session")
	return s, nil
}

// Get returns the session with id
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Remove drops the session with id and reports whether it existed
func (sm *SessionManager) Remove(id string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return false
	}
	delete(sm.sessions, id)
	sm.logger.Info().Str("session_id", id).Msg("Removed session")
	return true
}

// List returns every session ordered by creation time
func (sm *SessionManager) List() []*Session {
	sm.mu.RLock()
	out := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		out = append(out, s)
	}
	sm.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].createdAt.Equal(out[j].createdAt) {
			return out[i].id < out[j].id
		}
		return out[i].createdAt.Before(out[j].createdAt)
	})
	return out
}

// Count returns the number of sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Cleanup removes finished sessions idle for finishedTTL and any session idle
// for abandonedTimeout. Sessions with an open watch stream are kept.
func (sm *SessionManager) Cleanup(finishedTTL, abandonedTimeout time.Duration) int {
	now := sm.now()
	var stale []string

	for _, s := range sm.List() {
		s.mu.Lock()
		idle := now.Sub(s.lastActivity)
		over := s.sim.IsGameOver()
		watched := s.watchers > 0
		s.mu.Unlock()

		if watched {
			continue
		}
		if (over && idle >= finishedTTL) || idle >= abandonedTimeout {
			stale = append(stale, s.id)
		}
	}

	for _, id := range stale {
		sm.Remove(id)
	}
	if len(stale) > 0 {
		sm.logger.Info().Int("removed", len(stale)).Int("remaining", sm.Count()).Msg("Cleaned up sessions")
	}
	return len(stale)
}

// RunCleanup calls Cleanup every interval until ctx is done
func (sm *SessionManager) RunCleanup(ctx context.Context, interval, finishedTTL, abandonedTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.Cleanup(finishedTTL, abandonedTimeout)
		}
	}
}
