package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
)

func TestGridHeader(t *testing.T) {
	s := game.Snapshot{
		Variant:       game.VariantMoveback,
		Gold:          30,
		Health:        10,
		AttackerRound: 3,
		SpawnInterval: 1,
		NextTickIn:    1500 * time.Millisecond,
	}
	got := gridHeader(s, true)
	assert.Contains(t, got, "Gold: 30")
	assert.Contains(t, got, "Health: 10")
	assert.Contains(t, got, "Black round: 3")
	assert.Contains(t, got, "every round")
	assert.Contains(t, got, "Next: 1.5s")

	td := game.Snapshot{Variant: game.VariantTowerDefense, Wave: 4, GameOver: true}
	got = gridHeader(td, false)
	assert.Contains(t, got, "Wave: 4")
	assert.NotContains(t, got, "Health")
	assert.NotContains(t, got, "Next")
}

func TestGridFooter(t *testing.T) {
	lines := gridFooter(game.Snapshot{Status: "Deployed Pawn.", Notifications: []string{"+4 gold"}})
	assert.Equal(t, []string{"Deployed Pawn.", "+4 gold"}, lines)

	lines = gridFooter(game.Snapshot{Status: "x", Selected: "Rook"})
	assert.Equal(t, "Placing Rook. Right click or Esc to cancel.", lines[1])

	lines = gridFooter(game.Snapshot{GameOver: true, EndReason: "Health reached zero."})
	assert.Equal(t, []string{"GAME OVER: Health reached zero.", "Press R to restart."}, lines)
}

func TestArenaLines(t *testing.T) {
	a := arena.ArenaSnapshot{
		Label:     "Board 1: White A vs Bot A",
		Status:    "Turn: Black (bot)",
		History:   []string{"e4"},
		NextBotIn: 600 * time.Millisecond,
	}
	assert.Equal(t, []string{"Board 1: White A vs Bot A", "Turn: Black (bot)", "Bot moves in 0.6s", "Last: e4"}, arenaBoardLines(a))

	over := arena.Snapshot{GameOver: true, EndReason: "Both boards ended without checkmate."}
	assert.Equal(t, "Both boards ended without checkmate.", arenaFooter(over)[0])
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "0.0s", formatCountdown(-time.Second))
	assert.Equal(t, "2.3s", formatCountdown(2300*time.Millisecond))
}
