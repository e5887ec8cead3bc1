package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/common"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

type BoardRenderer struct {
	tileSize        int
	defaultFont     font.Face
	palette         common.Palette
	showCoordinates bool
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face, palette common.Palette) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f, palette: palette}
}

// SetShowCoordinates toggles algebraic labels on every square
func (br *BoardRenderer) SetShowCoordinates(show bool) {
	br.showCoordinates = show
}

func (br *BoardRenderer) TileSize() int { return br.tileSize }

func (br *BoardRenderer) Palette() common.Palette { return br.palette }

// Draw renders board with its top-left corner at (ox, oy). Rank 0 is drawn at the top.
func (br *BoardRenderer) Draw(screen *ebiten.Image, board *core.Board, ox, oy int) {
	if board == nil {
		return
	}

	for i := range board.T {
		file, rank := board.XY(i)
		c := core.NewCoordinate(file, rank)
		x, y := br.origin(ox, oy, c)

		// ---------------------------------------------------------------------
		// Background pass
		// ---------------------------------------------------------------------
		size := float32(br.tileSize)
		vector.DrawFilledRect(screen, x, y, size, size, br.palette.SquareColor(c), false)

		if br.showCoordinates && br.defaultFont != nil {
			text.Draw(screen, c.Algebraic(), br.defaultFont, int(x)+2, int(y)+12, common.Contrast(br.palette.SquareColor(c)))
		}

		// ---------------------------------------------------------------------
		// Piece pass
		// ---------------------------------------------------------------------
		if u, ok := board.At(c); ok {
			br.drawUnit(screen, u, x, y)
		}
	}
}

// drawUnit draws a unit as a disc in its side's color with the kind letter on top
func (br *BoardRenderer) drawUnit(screen *ebiten.Image, u core.Unit, x, y float32) {
	half := float32(br.tileSize) / 2
	fill := br.palette.SideColor(u.Side)
	vector.DrawFilledCircle(screen, x+half, y+half, half*0.7, fill, true)
	vector.StrokeCircle(screen, x+half, y+half, half*0.7, 2, common.Contrast(fill), true)

	if br.defaultFont == nil {
		return
	}
	letter := u.Kind.Letter()

	// text bounds in pixels
	b := text.BoundString(br.defaultFont, letter)
	textW := b.Max.X - b.Min.X
	textH := b.Max.Y - b.Min.Y

	tx := int(x) + (br.tileSize-textW)/2
	ty := int(y) + (br.tileSize+textH)/2
	text.Draw(screen, letter, br.defaultFont, tx, ty, common.Contrast(fill))
}

func (br *BoardRenderer) origin(ox, oy int, c core.Coordinate) (float32, float32) {
	return float32(ox + c.File*br.tileSize), float32(oy + c.Rank*br.tileSize)
}

// DrawLabel draws s in the palette text color
func (br *BoardRenderer) DrawLabel(screen *ebiten.Image, s string, x, y int) {
	br.DrawText(screen, s, x, y, br.palette.Text)
}

// DrawText draws s in c
func (br *BoardRenderer) DrawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	if br.defaultFont == nil {
		return
	}
	text.Draw(screen, s, br.defaultFont, x, y, c)
}
