package simserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/processor"
)

// Server configuration constants
const (
	cleanupInterval      = 5 * time.Minute  // How often to run cleanup
	finishedGameTTL      = 10 * time.Minute // Keep finished sessions for 10 minutes
	abandonedGameTimeout = 30 * time.Minute // Consider a session abandoned after 30 minutes of inactivity

	defaultWatchInterval = 100 * time.Millisecond
	minWatchInterval     = 10 * time.Millisecond
)

// Config configures a Server
type Config struct {
	MaxGames       int
	Rules          SessionRules
	DefaultVariant game.Variant
	Logger         zerolog.Logger
}

// Server implements the simulation control service. It lets a headless
// driver create sessions, feed them inputs and read snapshots.
type Server struct {
	UnimplementedSimServiceServer

	sessions       *SessionManager
	processor      *processor.InputProcessor
	defaultVariant game.Variant
	logger         zerolog.Logger
}

// NewServer creates a new simulation server
func NewServer(cfg Config) *Server {
	if cfg.DefaultVariant == "" {
		cfg.DefaultVariant = game.VariantMoveback
	}
	logger := cfg.Logger.With().Str("component", "SimServer").Logger()
	return &Server{
		sessions:       NewSessionManager(cfg.MaxGames, cfg.Rules, cfg.Logger),
		processor:      processor.NewInputProcessor(cfg.Logger),
		defaultVariant: cfg.DefaultVariant,
		logger:         logger,
	}
}

// RunCleanup removes stale sessions until ctx is done
func (s *Server) RunCleanup(ctx context.Context) {
	s.sessions.RunCleanup(ctx, cleanupInterval, finishedGameTTL, abandonedGameTimeout)
}

// CreateSession starts a new simulation.
// Request: {"variant": "moveback", "seed": 7}. Both fields are optional.
func (s *Server) CreateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	variant := s.defaultVariant
	if name := stringField(req, "variant"); name != "" {
		v, err := game.ParseVariant(name)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid variant: %v", err)
		}
		variant = v
	}

	sess, err := s.sessions.Create(ctx, SessionOptions{Variant: variant, Seed: int64(intField(req, "seed"))})
	if err != nil {
		return nil, toStatus(err, "failed to create session")
	}

	sess.mu.Lock()
	snapshot := sess.document()
	sess.mu.Unlock()

	return newStruct(map[string]interface{}{
		"session_id": sess.id,
		"variant":    string(sess.variant),
		"seed":       float64(sess.seed),
		"snapshot":   snapshot,
	})
}

// ApplyInputs applies a batch of inputs in order.
// Request: {"session_id": "...", "idempotency_key": "...", "inputs": [...]}.
// Per-input failures are reported in results; only malformed requests fail the call.
func (s *Server) ApplyInputs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.sessions.Get(stringField(req, "session_id"))
	if err != nil {
		return nil, toStatus(err, "apply inputs")
	}

	key := stringField(req, "idempotency_key")
	if cached := sess.idempotency.Check(key); cached != nil {
		s.logger.Debug().Str("session_id", sess.id).Str("idempotency_key", key).Msg("Returning cached response")
		return cached, nil
	}

	inputs, convErrs := convertProtoInputs(req.GetFields()["inputs"].GetListValue())
	for i, err := range convErrs {
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "input %d for session %s: %v", i, sess.id, err)
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// A retry may have completed while this call waited for the lock
	if cached := sess.idempotency.Check(key); cached != nil {
		s.logger.Debug().Str("session_id", sess.id).Str("idempotency_key", key).Msg("Returning cached response")
		return cached, nil
	}

	results, batchErr := s.processor.ProcessInputs(ctx, sess.sim, inputs)
	sess.touch(s.sessions.now())

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, status.FromContextError(ctxErr).Err()
	}
	if batchErr != nil {
		s.logger.Debug().Err(batchErr).Str("session_id", sess.id).Msg("Input batch reported errors")
	}

	resp, err := newStruct(map[string]interface{}{
		"session_id": sess.id,
		"results":    convertResultsToProto(results),
		"snapshot":   sess.document(),
		"game_over":  sess.sim.IsGameOver(),
	})
	if err != nil {
		return nil, err
	}
	sess.idempotency.Store(key, resp)
	return resp, nil
}

// GetSnapshot returns the session's current snapshot.
// Request: {"session_id": "...", "advance": true}. With advance set every tick due
// on the wall clock is resolved first.
func (s *Server) GetSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.sessions.Get(stringField(req, "session_id"))
	if err != nil {
		return nil, toStatus(err, "get snapshot")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if boolField(req, "advance") {
		if _, err := sess.sim.Update(ctx, s.sessions.now()); err != nil {
			return nil, toStatus(err, "advance session")
		}
		sess.touch(s.sessions.now())
	}
	return newStruct(sess.document())
}

// CloseSession discards a session. Request: {"session_id": "..."}.
func (s *Server) CloseSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "session_id")
	if !s.sessions.Remove(id) {
		return nil, toStatus(fmt.Errorf("%w: %s", ErrSessionNotFound, id), "close session")
	}
	return newStruct(map[string]interface{}{"session_id": id, "closed": true})
}

// ListSessions summarises every running session
func (s *Server) ListSessions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list := s.sessions.List()
	entries := make([]interface{}, 0, len(list))
	for _, sess := range list {
		sess.mu.Lock()
		entries = append(entries, map[string]interface{}{
			"session_id":    sess.id,
			"variant":       string(sess.variant),
			"status":        sess.sim.StatusText(),
			"game_over":     sess.sim.IsGameOver(),
			"created_at":    timestampValue(sess.createdAt),
			"last_activity": timestampValue(sess.lastActivity),
		})
		sess.mu.Unlock()
	}
	return newStruct(map[string]interface{}{
		"sessions":  entries,
		"count":     len(entries),
		"max_games": s.sessions.maxGames,
	})
}

// WatchSession streams snapshots while advancing the session on the wall clock.
// Request: {"session_id": "...", "interval_ms": 100}. The stream ends after the
// snapshot that reports game over, or when the client goes away.
func (s *Server) WatchSession(req *structpb.Struct, stream SimService_WatchSessionServer) error {
	sess, err := s.sessions.Get(stringField(req, "session_id"))
	if err != nil {
		return toStatus(err, "watch session")
	}

	interval := time.Duration(intField(req, "interval_ms")) * time.Millisecond
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	if interval < minWatchInterval {
		interval = minWatchInterval
	}

	sess.mu.Lock()
	sess.watchers++
	sess.mu.Unlock()
	defer func() {
		sess.mu.Lock()
		sess.watchers--
		sess.mu.Unlock()
	}()

	s.logger.Info().Str("session_id", sess.id).Dur("interval", interval).Msg("Client watching session")

	ctx := stream.Context()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	advance := false
	for {
		sess.mu.Lock()
		if advance {
			if _, err := sess.sim.Update(ctx, s.sessions.now()); err != nil {
				sess.mu.Unlock()
				return toStatus(err, "advance session")
			}
			sess.touch(s.sessions.now())
		}
		doc := sess.document()
		over := sess.sim.IsGameOver()
		sess.mu.Unlock()

		msg, err := newStruct(doc)
		if err != nil {
			return err
		}
		if err := stream.Send(msg); err != nil {
			s.logger.Error().Err(err).Str("session_id", sess.id).Msg("Stream error")
			return err
		}
		if over {
			return nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info().Str("session_id", sess.id).Msg("Stream closed by client")
			return nil
		case <-ticker.C:
			advance = true
		}
	}
}

// GetActiveSessions returns the number of sessions (for testing)
func (s *Server) GetActiveSessions() int {
	return s.sessions.Count()
}

func newStruct(doc map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// toStatus maps domain errors onto gRPC codes
func toStatus(err error, what string) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return status.Errorf(codes.NotFound, "%s: %v", what, err)
	case errors.Is(err, ErrAtCapacity):
		return status.Errorf(codes.ResourceExhausted, "%s: %v", what, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, game.ErrNotGridVariant):
		return status.Errorf(codes.InvalidArgument, "%s: %v", what, err)
	}
	return status.Errorf(codes.Internal, "%s: %v", what, err)
}
