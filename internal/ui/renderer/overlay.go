package renderer

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

var (
	HoverColor   = color.RGBA{255, 255, 255, 48}  // Semi-transparent white
	CheckColor   = color.RGBA{220, 60, 60, 110}   // Semi-transparent red
	ButtonColor  = color.RGBA{60, 60, 70, 255}    // Shop button fill
	PressedColor = color.RGBA{246, 246, 105, 255} // Shop button outline when selected
)

// Overlay draws highlights on top of a board drawn by the wrapped BoardRenderer
type Overlay struct {
	*BoardRenderer

	selected    core.Coordinate
	hasSelected bool
	targets     []core.Coordinate
}

func NewOverlay(br *BoardRenderer) *Overlay {
	return &Overlay{BoardRenderer: br}
}

// SetSelection marks from as selected with its legal targets
func (o *Overlay) SetSelection(from core.Coordinate, targets []core.Coordinate) {
	o.selected = from
	o.hasSelected = true
	o.targets = targets
}

func (o *Overlay) ClearSelection() {
	o.hasSelected = false
	o.targets = nil
}

// DrawTerritory tints every rank from minRank down to the home rank
func (o *Overlay) DrawTerritory(screen *ebiten.Image, ox, oy, minRank int) {
	for r := minRank; r < core.BoardSize; r++ {
		for f := 0; f < core.BoardSize; f++ {
			o.DrawSquare(screen, ox, oy, core.NewCoordinate(f, r), o.palette.Deploy)
		}
	}
}

// DrawSelection draws the selection border and target markers
func (o *Overlay) DrawSelection(screen *ebiten.Image, ox, oy int) {
	if !o.hasSelected {
		return
	}
	half := float32(o.tileSize) / 2
	for _, t := range o.targets {
		x, y := o.origin(ox, oy, t)
		vector.DrawFilledCircle(screen, x+half, y+half, half/4, o.palette.Highlight, true)
	}
	o.DrawBorder(screen, ox, oy, o.selected, o.palette.Highlight)
}

// DrawSquare fills one square with c
func (o *Overlay) DrawSquare(screen *ebiten.Image, ox, oy int, at core.Coordinate, c color.Color) {
	x, y := o.origin(ox, oy, at)
	size := float32(o.tileSize)
	vector.DrawFilledRect(screen, x, y, size, size, c, false)
}

// DrawBorder outlines one square
func (o *Overlay) DrawBorder(screen *ebiten.Image, ox, oy int, at core.Coordinate, c color.Color) {
	x, y := o.origin(ox, oy, at)
	size := float32(o.tileSize)
	vector.StrokeRect(screen, x+1.5, y+1.5, size-3, size-3, 3, c, false)
}

// DrawButton draws a shop button with its label
func (o *Overlay) DrawButton(screen *ebiten.Image, r image.Rectangle, label string, active, enabled bool) {
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), ButtonColor, false)
	if active {
		vector.StrokeRect(screen, float32(r.Min.X)+1, float32(r.Min.Y)+1, float32(r.Dx())-2, float32(r.Dy())-2, 2, PressedColor, false)
	}
	c := color.Color(o.palette.Text)
	if !enabled {
		c = color.Gray{Y: 120}
	}
	o.DrawText(screen, label, r.Min.X+6, r.Min.Y+r.Dy()/2+4, c)
}
