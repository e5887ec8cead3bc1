package ui

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/common"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/ui/input"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/ui/renderer"
)

// ArenaGame drives the dual arena: two boards side by side, White played by clicks
type ArenaGame struct {
	match        *arena.Match
	controller   *arenaController
	overlay      *renderer.Overlay
	inputHandler *input.Handler
	defaultFont  font.Face
	logger       zerolog.Logger
	debug        bool

	origins []image.Point
	width   int
	height  int
}

// arenaTileSize shrinks the configured tile so both boards fit side by side
func arenaTileSize() int {
	return common.Max(24, TileSize()*5/8)
}

func NewArenaGame(match *arena.Match, palette common.Palette, logger zerolog.Logger) (*ArenaGame, error) {
	tile := arenaTileSize()
	span := tile * core.BoardSize

	g := &ArenaGame{
		match:       match,
		controller:  newArenaController(match),
		defaultFont: basicfont.Face7x13,
		logger:      logger.With().Str("component", "ArenaGame").Logger(),
		width:       arena.ArenaCount*span + (arena.ArenaCount+1)*margin,
		height:      headerHeight + span + 16*lineHeight,
	}
	for i := 0; i < arena.ArenaCount; i++ {
		g.origins = append(g.origins, image.Pt(margin+i*(span+margin), headerHeight))
	}

	br := renderer.NewBoardRenderer(tile, g.defaultFont, palette)
	br.SetShowCoordinates(config.Get().Development.ShowCoordinates)
	g.debug = config.Get().Development.VerboseLogging
	g.overlay = renderer.NewOverlay(br)
	g.inputHandler = input.NewHandler(input.Layout{TileSize: tile, Boards: g.origins})

	return g, nil
}

func (g *ArenaGame) Update() error {
	ctx := context.Background()
	g.inputHandler.Update()

	for _, cmd := range g.inputHandler.Drain() {
		if err := g.controller.handle(ctx, cmd); err != nil {
			g.logger.Error().Err(err).Int("command", int(cmd.Kind)).Msg("Command failed")
		}
	}

	if _, err := g.match.Update(ctx, time.Now()); err != nil {
		g.logger.Error().Err(err).Msg("Bot resolution failed")
	}
	return nil
}

func (g *ArenaGame) Draw(screen *ebiten.Image) {
	palette := g.overlay.Palette()
	screen.Fill(palette.Background)

	snap := g.match.Snapshot()
	sel, targets, hasSel := g.controller.selection()
	hoverBoard, hoverAt, hovering := g.inputHandler.Hovered()
	span := g.overlay.TileSize() * core.BoardSize

	g.overlay.DrawLabel(screen, "White on both boards. Captures send Black pawns to the other board.", margin, 24)

	for i, a := range snap.Arenas {
		if i >= len(g.origins) {
			break
		}
		o := g.origins[i]
		g.overlay.Draw(screen, &a.Board, o.X, o.Y)

		if a.InCheck {
			side := core.Defender
			if !a.WhiteTurn {
				side = core.Attacker
			}
			if king, ok := a.Board.Find(side, core.King); ok {
				g.overlay.DrawSquare(screen, o.X, o.Y, king, renderer.CheckColor)
			}
		}
		if hasSel && sel.board == i {
			g.overlay.SetSelection(sel.from, targets)
			g.overlay.DrawSelection(screen, o.X, o.Y)
		}
		if hovering && hoverBoard == i {
			g.overlay.DrawSquare(screen, o.X, o.Y, hoverAt, renderer.HoverColor)
		}

		y := o.Y + span + lineHeight
		for j, line := range arenaBoardLines(a) {
			c := palette.Text
			if j == 1 {
				c = toneColor(a.Tone, palette)
			}
			g.overlay.DrawText(screen, line, o.X, y, c)
			y += lineHeight
		}
	}

	y := headerHeight + span + 6*lineHeight
	for _, line := range arenaFooter(snap) {
		g.overlay.DrawLabel(screen, line, margin, y)
		y += lineHeight
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  %s", ebiten.ActualTPS(), ebiten.ActualFPS(), g.match.CurrentPhase()), 5, g.height-16)
	}
}

func (g *ArenaGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

// WindowSize is the preferred window size for this game
func (g *ArenaGame) WindowSize() (int, int) {
	return g.width, g.height
}
