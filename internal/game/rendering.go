package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// ANSI color codes for terminal rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// pieceGlyphs maps kinds to chess symbols per side
var pieceGlyphs = map[core.Side]map[core.PieceKind]string{
	core.Defender: {core.Pawn: "♙", core.Knight: "♘", core.Bishop: "♗", core.Rook: "♖", core.Queen: "♕", core.King: "♔"},
	core.Attacker: {core.Pawn: "♟", core.Knight: "♞", core.Bishop: "♝", core.Rook: "♜", core.Queen: "♛", core.King: "♚"},
}

// Board returns a colored terminal rendering of the current board and counters
func (e *Engine) Board() string {
	var sb strings.Builder
	sb.Grow(1024)

	sb.WriteString(RenderBoard(e.gs.Board, true))
	sb.WriteString("\n")
	sb.WriteString(e.statusLine())
	sb.WriteString("\n")
	return sb.String()
}

// RenderBoard draws b with rank 7 at the bottom, labelled in chess notation.
// With color off it falls back to plain letters, upper case for the defender.
func RenderBoard(b *core.Board, color bool) string {
	const EmptySymbol = "·"

	var sb strings.Builder
	sb.Grow((core.BoardSize*16 + 8) * (core.BoardSize + 2))

	for r := 0; r < core.BoardSize; r++ {
		fmt.Fprintf(&sb, "%d ", core.BoardSize-r)
		for f := 0; f < core.BoardSize; f++ {
			u, ok := b.At(core.NewCoordinate(f, r))
			switch {
			case !ok && color:
				sb.WriteString(ColorGray + EmptySymbol + ColorReset)
			case !ok:
				sb.WriteString(".")
			case color:
				sb.WriteString(sideColor(u.Side))
				sb.WriteString(pieceGlyphs[u.Side][u.Kind])
				sb.WriteString(ColorReset)
			default:
				sb.WriteString(u.Symbol())
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ")
	for f := 0; f < core.BoardSize; f++ {
		sb.WriteByte(byte('a' + f))
		sb.WriteString(" ")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (e *Engine) statusLine() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Gold %d  Kills %d", e.gs.Gold, e.gs.Kills)
	if e.rules.HasHealth() {
		healthColor := ColorGreen
		if e.gs.Health <= 3 {
			healthColor = ColorRed
		}
		fmt.Fprintf(&sb, "  Health %s%d%s", healthColor, e.gs.Health, ColorReset)
	}
	fmt.Fprintf(&sb, "  Tick %d", e.gs.Tick)
	switch e.variant.name() {
	case VariantTowerDefense:
		fmt.Fprintf(&sb, "  Wave %d", e.gs.Wave)
	default:
		fmt.Fprintf(&sb, "  Black rounds %d  Next: %s", e.gs.AttackerRound, e.gs.SideToMove)
	}
	sb.WriteString("\n")

	if e.gs.GameOver {
		sb.WriteString(ColorRed + "GAME OVER: " + e.gs.EndReason + ColorReset)
	} else {
		sb.WriteString(ColorYellow + e.gs.Status + ColorReset)
	}
	return sb.String()
}

func sideColor(s core.Side) string {
	if s == core.Attacker {
		return ColorRed
	}
	return ColorCyan
}
