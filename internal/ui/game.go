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

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/common"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/ui/input"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/ui/renderer"
)

// UI configuration functions
func ScreenWidth() int {
	return config.Get().UI.Window.Width
}

func ScreenHeight() int {
	return config.Get().UI.Window.Height
}

func TileSize() int {
	return config.Get().UI.Game.TileSize
}

const (
	headerHeight = 40
	shopHeight   = 30
	lineHeight   = 16
	margin       = 20
)

// UIGame drives a grid engine from ebiten's update loop
type UIGame struct {
	engine       *game.Engine
	controller   *gridController
	overlay      *renderer.Overlay
	inputHandler *input.Handler
	defaultFont  font.Face
	logger       zerolog.Logger
	debug        bool

	boardOrigin image.Point
	shopButtons []image.Rectangle
	width       int
	height      int
}

// NewUIGame creates a new Ebitengine game instance for a grid variant.
func NewUIGame(engine *game.Engine, palette common.Palette, logger zerolog.Logger) (*UIGame, error) {
	tile := TileSize()
	boardSpan := tile * core.BoardSize

	g := &UIGame{
		engine:      engine,
		controller:  newGridController(engine),
		defaultFont: basicfont.Face7x13,
		logger:      logger.With().Str("component", "UIGame").Logger(),
		boardOrigin: image.Pt(0, headerHeight),
		width:       common.Max(ScreenWidth(), boardSpan),
		height:      common.Max(ScreenHeight(), headerHeight+boardSpan+shopHeight+6*lineHeight),
	}

	shopY := headerHeight + boardSpan + 6
	catalog := engine.Rules().Catalog
	if n := len(catalog); n > 0 {
		w := boardSpan / n
		for i := range catalog {
			g.shopButtons = append(g.shopButtons, image.Rect(i*w+2, shopY, (i+1)*w-2, shopY+shopHeight))
		}
	}

	br := renderer.NewBoardRenderer(tile, g.defaultFont, palette)
	br.SetShowCoordinates(config.Get().Development.ShowCoordinates)
	g.debug = config.Get().Development.VerboseLogging
	g.overlay = renderer.NewOverlay(br)
	g.inputHandler = input.NewHandler(input.Layout{
		TileSize: tile,
		Boards:   []image.Point{g.boardOrigin},
		Shop:     g.shopButtons,
	})

	return g, nil
}

// Update proceeds the game state.
func (g *UIGame) Update() error {
	ctx := context.Background()
	g.inputHandler.Update()

	for _, cmd := range g.inputHandler.Drain() {
		if err := g.controller.handle(ctx, cmd); err != nil {
			g.logger.Error().Err(err).Int("command", int(cmd.Kind)).Msg("Command failed")
		}
	}

	if _, err := g.engine.Update(ctx, time.Now()); err != nil {
		g.logger.Error().Err(err).Msg("Tick failed")
	}
	return nil
}

// Draw renders the game screen.
func (g *UIGame) Draw(screen *ebiten.Image) {
	palette := g.overlay.Palette()
	screen.Fill(palette.Background)

	snap := g.engine.Snapshot()
	ox, oy := g.boardOrigin.X, g.boardOrigin.Y

	g.overlay.Draw(screen, &snap.Board, ox, oy)
	if snap.Selected != "" {
		g.overlay.DrawTerritory(screen, ox, oy, g.engine.Rules().DeployMinRank)
	}
	if from, targets, ok := g.controller.selection(); ok {
		g.overlay.SetSelection(from, targets)
	} else {
		g.overlay.ClearSelection()
	}
	g.overlay.DrawSelection(screen, ox, oy)
	if _, at, ok := g.inputHandler.Hovered(); ok {
		g.overlay.DrawSquare(screen, ox, oy, at, renderer.HoverColor)
	}

	g.overlay.DrawLabel(screen, gridHeader(snap, g.engine.Rules().HasHealth()), 5, 16)
	if snap.Pending != nil {
		g.overlay.DrawLabel(screen, "Retreat pending: "+snap.Pending.Origin.Algebraic()+" to "+snap.Pending.Destination.Algebraic(), 5, 32)
	}

	for i, offer := range g.engine.Rules().Catalog {
		if i >= len(g.shopButtons) {
			break
		}
		label := fmt.Sprintf("%d. %s %dg", i+1, offer.Label, offer.Cost)
		g.overlay.DrawButton(screen, g.shopButtons[i], label, snap.Selected == offer.Label, snap.Gold >= offer.Cost)
	}

	y := g.boardOrigin.Y + core.BoardSize*g.overlay.TileSize() + 6 + shopHeight + lineHeight
	for i, line := range gridFooter(snap) {
		c := palette.Text
		if i == 0 && snap.GameOver {
			c = alertColor
		}
		g.overlay.DrawText(screen, line, 5, y, c)
		y += lineHeight
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  %s", ebiten.ActualTPS(), ebiten.ActualFPS(), g.engine.CurrentPhase()), 5, g.height-16)
	}
}

// Layout defines the Ebitengine screen size.
func (g *UIGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

// WindowSize is the preferred window size for this game
func (g *UIGame) WindowSize() (int, int) {
	return g.width, g.height
}
