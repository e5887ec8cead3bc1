package simserver

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const bufSize = 1024 * 1024

// setupTestServer creates an in-memory gRPC server for testing
func setupTestServer(t *testing.T, cfg Config) (SimServiceClient, *grpc.ClientConn, func()) {
	t.Helper()
	cfg.Logger = zerolog.Nop()

	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer(ServerOptions(zerolog.Nop())...)
	RegisterSimServiceServer(s, NewServer(cfg))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(s)

	go func() {
		if err := s.Serve(lis); err != nil {
			t.Logf("Server exited with error: %v", err)
		}
	}()

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	cleanup := func() {
		conn.Close()
		s.Stop()
		lis.Close()
	}
	return NewSimServiceClient(conn), conn, cleanup
}

func mustStruct(t *testing.T, doc map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(doc)
	require.NoError(t, err)
	return s
}

func field(s *structpb.Struct, key string) *structpb.Value {
	return s.GetFields()[key]
}

func snapshotOf(resp *structpb.Struct) *structpb.Struct {
	return field(resp, "snapshot").GetStructValue()
}

func createSession(t *testing.T, client SimServiceClient, variant string) string {
	t.Helper()
	resp, err := client.CreateSession(context.Background(), mustStruct(t, map[string]interface{}{
		"variant": variant,
		"seed":    7,
	}))
	require.NoError(t, err)
	id := field(resp, "session_id").GetStringValue()
	require.NotEmpty(t, id)
	return id
}

func TestCreateSession(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()

	resp, err := client.CreateSession(context.Background(), mustStruct(t, map[string]interface{}{"seed": 3}))
	require.NoError(t, err)

	assert.Len(t, field(resp, "session_id").GetStringValue(), 36)
	assert.Equal(t, "moveback", field(resp, "variant").GetStringValue())
	assert.Equal(t, 3.0, field(resp, "seed").GetNumberValue())

	snap := snapshotOf(resp)
	require.NotNil(t, snap)
	assert.Equal(t, 30.0, field(snap, "gold").GetNumberValue())
	assert.Equal(t, 10.0, field(snap, "health").GetNumberValue())
	assert.Equal(t, "AwaitingTick", field(snap, "phase").GetStringValue())
	rows := field(snap, "board").GetListValue().GetValues()
	require.Len(t, rows, 8)
	assert.Equal(t, "....K...", rows[7].GetStringValue())

	created, err := parseTimestamp(field(snap, "created_at").GetStringValue())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
}

func TestCreateSession_InvalidVariant(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()

	_, err := client.CreateSession(context.Background(), mustStruct(t, map[string]interface{}{"variant": "checkers"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateSession_MaxGames(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{MaxGames: 1})
	defer cleanup()

	createSession(t, client, "moveback")
	_, err := client.CreateSession(context.Background(), mustStruct(t, map[string]interface{}{}))
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestApplyInputs_PurchaseAndPlace(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()
	id := createSession(t, client, "moveback")

	resp, err := client.ApplyInputs(context.Background(), mustStruct(t, map[string]interface{}{
		"session_id": id,
		"inputs": []interface{}{
			map[string]interface{}{"kind": "purchase", "piece": "knight"},
			map[string]interface{}{"kind": "place", "at": "c2"},
		},
	}))
	require.NoError(t, err)

	results := field(resp, "results").GetListValue().GetValues()
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, field(r.GetStructValue(), "accepted").GetBoolValue())
		assert.Nil(t, field(r.GetStructValue(), "error"))
	}
	assert.Equal(t, "purchase", field(results[0].GetStructValue(), "kind").GetStringValue())

	snap := snapshotOf(resp)
	assert.Equal(t, 18.0, field(snap, "gold").GetNumberValue())
	rows := field(snap, "board").GetListValue().GetValues()
	assert.Equal(t, "..N.....", rows[6].GetStringValue())
	assert.False(t, field(resp, "game_over").GetBoolValue())
}

func TestApplyInputs_Tick(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()
	id := createSession(t, client, "moveback")

	resp, err := client.ApplyInputs(context.Background(), mustStruct(t, map[string]interface{}{
		"session_id": id,
		"inputs":     []interface{}{map[string]interface{}{"kind": "tick", "count": 2}},
	}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, field(snapshotOf(resp), "tick").GetNumberValue())
}

func TestApplyInputs_Idempotent(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()
	id := createSession(t, client, "moveback")

	req := mustStruct(t, map[string]interface{}{
		"session_id":      id,
		"idempotency_key": "batch-1",
		"inputs": []interface{}{
			map[string]interface{}{"kind": "purchase", "piece": "pawn"},
			map[string]interface{}{"kind": "place", "at": "a2"},
		},
	})

	first, err := client.ApplyInputs(context.Background(), req)
	require.NoError(t, err)
	second, err := client.ApplyInputs(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 25.0, field(snapshotOf(first), "gold").GetNumberValue())
	assert.Equal(t, 25.0, field(snapshotOf(second), "gold").GetNumberValue())

	current, err := client.GetSnapshot(context.Background(), mustStruct(t, map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	assert.Equal(t, 25.0, field(current, "gold").GetNumberValue(), "retried batch is not applied twice")
}

func TestApplyInputs_ConcurrentRetriesApplyOnce(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()
	id := createSession(t, client, "moveback")

	req := mustStruct(t, map[string]interface{}{
		"session_id":      id,
		"idempotency_key": "retry-1",
		"inputs":          []interface{}{map[string]interface{}{"kind": "tick"}},
	})

	const retries = 64
	start := make(chan struct{})
	ticks := make([]float64, retries)
	errs := make([]error, retries)

	var wg sync.WaitGroup
	for i := 0; i < retries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			resp, err := client.ApplyInputs(context.Background(), req)
			errs[i] = err
			if err == nil {
				ticks[i] = field(snapshotOf(resp), "tick").GetNumberValue()
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < retries; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 1.0, ticks[i], "retry %d saw a different batch result", i)
	}

	current, err := client.GetSnapshot(context.Background(), mustStruct(t, map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, field(current, "tick").GetNumberValue())
}

func TestApplyInputs_Errors(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()
	id := createSession(t, client, "moveback")
	ctx := context.Background()

	_, err := client.ApplyInputs(ctx, mustStruct(t, map[string]interface{}{"session_id": "missing"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.ApplyInputs(ctx, mustStruct(t, map[string]interface{}{
		"session_id": id,
		"inputs":     []interface{}{map[string]interface{}{"kind": "place", "at": "z9"}},
	}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := client.ApplyInputs(ctx, mustStruct(t, map[string]interface{}{
		"session_id": id,
		"inputs":     []interface{}{map[string]interface{}{"kind": "place", "at": "c2"}},
	}))
	require.NoError(t, err)
	r := field(resp, "results").GetListValue().GetValues()[0].GetStructValue()
	assert.False(t, field(r, "accepted").GetBoolValue())
	assert.Equal(t, "Buy a piece from the shop first.", field(r, "status").GetStringValue())
}

func TestApplyInputs_DualArena(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()
	id := createSession(t, client, "dualarena")
	ctx := context.Background()

	resp, err := client.ApplyInputs(ctx, mustStruct(t, map[string]interface{}{
		"session_id": id,
		"inputs": []interface{}{
			map[string]interface{}{"kind": "move", "arena": 1, "from": "e2", "to": "e4"},
			map[string]interface{}{"kind": "purchase", "piece": "knight"},
		},
	}))
	require.NoError(t, err)

	results := field(resp, "results").GetListValue().GetValues()
	require.Len(t, results, 2)
	assert.True(t, field(results[0].GetStructValue(), "accepted").GetBoolValue())
	assert.Contains(t, field(results[1].GetStructValue(), "error").GetStringValue(), "unknown input")

	snap := snapshotOf(resp)
	assert.Equal(t, "dualarena", field(snap, "variant").GetStringValue())
	arenas := field(snap, "arenas").GetListValue().GetValues()
	require.Len(t, arenas, 2)
	second := arenas[1].GetStructValue()
	assert.False(t, field(second, "white_turn").GetBoolValue())
	history := field(second, "history").GetListValue().GetValues()
	require.Len(t, history, 1)
	assert.Equal(t, "e4", history[0].GetStringValue())
	assert.Equal(t, "Board 2: White B vs Bot B", field(second, "label").GetStringValue())
}

func TestCloseAndListSessions(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{MaxGames: 5})
	defer cleanup()
	ctx := context.Background()

	a := createSession(t, client, "moveback")
	createSession(t, client, "towerdefense")

	list, err := client.ListSessions(ctx, mustStruct(t, map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, field(list, "count").GetNumberValue())
	assert.Equal(t, 5.0, field(list, "max_games").GetNumberValue())

	closed, err := client.CloseSession(ctx, mustStruct(t, map[string]interface{}{"session_id": a}))
	require.NoError(t, err)
	assert.True(t, field(closed, "closed").GetBoolValue())

	_, err = client.GetSnapshot(ctx, mustStruct(t, map[string]interface{}{"session_id": a}))
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = client.CloseSession(ctx, mustStruct(t, map[string]interface{}{"session_id": a}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	list, err = client.ListSessions(ctx, mustStruct(t, map[string]interface{}{}))
	require.NoError(t, err)
	sessions := field(list, "sessions").GetListValue().GetValues()
	require.Len(t, sessions, 1)
	assert.Equal(t, "towerdefense", field(sessions[0].GetStructValue(), "variant").GetStringValue())
}

func TestWatchSession(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()
	id := createSession(t, client, "moveback")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream, err := client.WatchSession(ctx, mustStruct(t, map[string]interface{}{
		"session_id":  id,
		"interval_ms": 10,
	}))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		msg, err := stream.Recv()
		require.NoError(t, err)
		assert.Equal(t, id, field(msg, "session_id").GetStringValue())
	}
	cancel()
}

func TestWatchSession_NotFound(t *testing.T) {
	client, _, cleanup := setupTestServer(t, Config{})
	defer cleanup()

	stream, err := client.WatchSession(context.Background(), mustStruct(t, map[string]interface{}{"session_id": "nope"}))
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealthService(t *testing.T) {
	_, conn, cleanup := setupTestServer(t, Config{})
	defer cleanup()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(context.Background(),
		&grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}
