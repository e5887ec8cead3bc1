package simserver

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/processor"
)

// Input documents look like
//
//	{"kind": "purchase", "piece": "knight"}
//	{"kind": "place", "at": "c2"}
//	{"kind": "move", "arena": 1, "from": "e2", "to": "e4"}
//	{"kind": "reset"}
//	{"kind": "tick", "count": 3}
//
// Squares use algebraic notation with "1" as the defender home rank.

// convertProtoInput turns one input document into a core input
func convertProtoInput(s *structpb.Struct) (core.Input, error) {
	if s == nil {
		return nil, core.ErrUnknownInput
	}
	kind := stringField(s, "kind")
	switch strings.ToLower(kind) {
	case "purchase":
		piece, err := core.ParsePieceKind(stringField(s, "piece"))
		if err != nil {
			return nil, err
		}
		return core.PurchaseInput{Piece: piece}, nil
	case "place":
		at, err := core.ParseAlgebraic(stringField(s, "at"))
		if err != nil {
			return nil, err
		}
		return core.PlaceInput{At: at}, nil
	case "move":
		from, err := core.ParseAlgebraic(stringField(s, "from"))
		if err != nil {
			return nil, err
		}
		to, err := core.ParseAlgebraic(stringField(s, "to"))
		if err != nil {
			return nil, err
		}
		return core.MoveInput{Arena: intField(s, "arena"), From: from, To: to}, nil
	case "reset":
		return core.ResetInput{}, nil
	case "tick":
		return core.TickInput{Count: intField(s, "count")}, nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownInput, kind)
}

// convertProtoInputs converts a list value. Entries that fail to convert come
// back as nil inputs alongside their error so positions line up with the request.
func convertProtoInputs(list *structpb.ListValue) ([]core.Input, []error) {
	if list == nil {
		return nil, nil
	}
	inputs := make([]core.Input, len(list.Values))
	errs := make([]error, len(list.Values))
	for i, v := range list.Values {
		inputs[i], errs[i] = convertProtoInput(v.GetStructValue())
	}
	return inputs, errs
}

func convertResultsToProto(results []processor.Result) []interface{} {
	out := make([]interface{}, 0, len(results))
	for _, r := range results {
		entry := map[string]interface{}{
			"accepted": r.Accepted,
			"status":   r.Status,
		}
		if r.Input != nil {
			entry["kind"] = r.Input.GetKind().String()
		}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
		}
		out = append(out, entry)
	}
	return out
}

// convertEngineSnapshot builds the document for a grid-variant session
func convertEngineSnapshot(sessionID string, s game.Snapshot) map[string]interface{} {
	doc := map[string]interface{}{
		"session_id":      sessionID,
		"game_id":         s.GameID,
		"variant":         string(s.Variant),
		"phase":           s.Phase,
		"board":           boardRows(&s.Board),
		"gold":            s.Gold,
		"kills":           s.Kills,
		"health":          s.Health,
		"tick":            s.Tick,
		"attacker_round":  s.AttackerRound,
		"wave":            s.Wave,
		"spawn_interval":  s.SpawnInterval,
		"side_to_move":    s.SideToMove.String(),
		"selected":        s.Selected,
		"status":          s.Status,
		"notifications":   stringList(s.Notifications),
		"game_over":       s.GameOver,
		"end_reason":      s.EndReason,
		"next_tick_in_ms": s.NextTickIn.Milliseconds(),
	}
	if s.Pending != nil {
		doc["pending"] = map[string]interface{}{
			"origin":      s.Pending.Origin.Algebraic(),
			"destination": s.Pending.Destination.Algebraic(),
			"due_tick":    s.Pending.DueTick,
		}
	}
	return doc
}

// convertMatchSnapshot builds the document for a dual-arena session
func convertMatchSnapshot(sessionID string, s arena.Snapshot) map[string]interface{} {
	arenas := make([]interface{}, 0, len(s.Arenas))
	for _, a := range s.Arenas {
		arenas = append(arenas, map[string]interface{}{
			"index":          a.Index,
			"label":          a.Label,
			"fen":            a.FEN,
			"board":          boardRows(&a.Board),
			"white_turn":     a.WhiteTurn,
			"in_check":       a.InCheck,
			"ended":          a.Ended,
			"status":         a.Status,
			"history":        stringList(a.History),
			"next_bot_in_ms": a.NextBotIn.Milliseconds(),
		})
	}
	return map[string]interface{}{
		"session_id":    sessionID,
		"game_id":       s.GameID,
		"variant":       arena.VariantName,
		"phase":         s.Phase,
		"tick":          s.Tick,
		"arenas":        arenas,
		"status":        s.Status,
		"notifications": stringList(s.Notifications),
		"game_over":     s.GameOver,
		"won":           s.Won,
		"end_reason":    s.EndReason,
	}
}

// boardRows renders the board top rank first, one string per rank
func boardRows(b *core.Board) []interface{} {
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	return stringList(lines)
}

func stringList(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// timestampValue encodes t with the canonical JSON mapping of google.protobuf.Timestamp
func timestampValue(t time.Time) string {
	b, err := protojson.Marshal(timestamppb.New(t))
	if err != nil {
		return ""
	}
	return strings.Trim(string(b), `"`)
}

// parseTimestamp is the inverse of timestampValue
func parseTimestamp(s string) (time.Time, error) {
	ts := &timestamppb.Timestamp{}
	if err := protojson.Unmarshal([]byte(`"`+s+`"`), ts); err != nil {
		return time.Time{}, err
	}
	return ts.AsTime(), nil
}

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

func intField(s *structpb.Struct, key string) int {
	if s == nil {
		return 0
	}
	return int(s.GetFields()[key].GetNumberValue())
}

func boolField(s *structpb.Struct, key string) bool {
	if s == nil {
		return false
	}
	return s.GetFields()[key].GetBoolValue()
}
