package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/spawn"
)

// gridHeader is the counter line above a grid board
func gridHeader(s game.Snapshot, hasHealth bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Gold: %d  Kills: %d", s.Gold, s.Kills)
	if hasHealth {
		fmt.Fprintf(&sb, "  Health: %d", s.Health)
	}
	switch s.Variant {
	case game.VariantTowerDefense:
		fmt.Fprintf(&sb, "  Wave: %d", s.Wave)
	default:
		fmt.Fprintf(&sb, "  Black round: %d  Spawns %s", s.AttackerRound, spawn.IntervalText(s.SpawnInterval))
	}
	if !s.GameOver {
		fmt.Fprintf(&sb, "  Next: %s", formatCountdown(s.NextTickIn))
	}
	return sb.String()
}

// gridFooter is the status block under the shop
func gridFooter(s game.Snapshot) []string {
	if s.GameOver {
		return []string{"GAME OVER: " + s.EndReason, "Press R to restart."}
	}
	lines := []string{s.Status}
	if s.Selected != "" {
		lines = append(lines, "Placing "+s.Selected+". Right click or Esc to cancel.")
	}
	return append(lines, s.Notifications...)
}

// arenaFooter is the match-wide status block under both boards
func arenaFooter(s arena.Snapshot) []string {
	if s.GameOver {
		return []string{s.EndReason, "Press R to restart."}
	}
	return append([]string{s.Status}, s.Notifications...)
}

// arenaBoardLines are the label and status lines under one arena
func arenaBoardLines(a arena.ArenaSnapshot) []string {
	lines := []string{a.Label, a.Status}
	if a.NextBotIn > 0 {
		lines = append(lines, "Bot moves in "+formatCountdown(a.NextBotIn))
	}
	if n := len(a.History); n > 0 {
		lines = append(lines, "Last: "+a.History[n-1])
	}
	return lines
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
