package rules

import (
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/rs/zerolog"
)

const (
	ReasonHealthDepleted = "Health reached 0."
	ReasonKingLost       = "Your king could not be respawned."
	ReasonKingCaptured   = "Your king was captured."
	ReasonBackRankBreach = "A black pawn breached your back rank."
)

// WinConditionChecker handles game over detection for the grid variants
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Breaches returns the squares on the defender home rank held by attacker units, by file
func (wc *WinConditionChecker) Breaches(board *core.Board) []core.Coordinate {
	var out []core.Coordinate
	for f := 0; f < core.BoardSize; f++ {
		sq := core.NewCoordinate(f, core.DefenderHomeRank)
		if board.HasSide(sq, core.Attacker) {
			out = append(out, sq)
		}
	}
	return out
}

// CheckHealthModel evaluates the health-based defeat rules.
// A missing king is terminal because a respawn has already been attempted.
// Returns (isGameOver, reason)
func (wc *WinConditionChecker) CheckHealthModel(board *core.Board, health int) (bool, string) {
	wc.logger.Debug().Int("health", health).Msg("Checking game over conditions")
	if health <= 0 {
		wc.logger.Info().Msg("Defender health depleted")
		return true, ReasonHealthDepleted
	}
	if _, ok := board.Find(core.Defender, core.King); !ok {
		wc.logger.Info().Msg("Defender king missing after respawn attempt")
		return true, ReasonKingLost
	}
	return false, ""
}

// CheckLastStand evaluates the no-health defeat rules: the king must survive and
// no attacker may stand on the defender home rank.
// Returns (isGameOver, reason)
func (wc *WinConditionChecker) CheckLastStand(board *core.Board) (bool, string) {
	if _, ok := board.Find(core.Defender, core.King); !ok {
		wc.logger.Info().Msg("Defender king captured")
		return true, ReasonKingCaptured
	}
	if breaches := wc.Breaches(board); len(breaches) > 0 {
		wc.logger.Info().Int("breaches", len(breaches)).Msg("Back rank breached")
		return true, ReasonBackRankBreach
	}
	return false, ""
}
