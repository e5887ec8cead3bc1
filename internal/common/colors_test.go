package common

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

func TestSquareColorAlternates(t *testing.T) {
	p := DefaultPalette
	assert.Equal(t, p.LightSquare, p.SquareColor(core.NewCoordinate(0, 0)))
	assert.Equal(t, p.DarkSquare, p.SquareColor(core.NewCoordinate(1, 0)))
	assert.Equal(t, p.DarkSquare, p.SquareColor(core.NewCoordinate(0, 1)))
	assert.Equal(t, p.LightSquare, p.SquareColor(core.NewCoordinate(7, 7)))
}

func TestSideColor(t *testing.T) {
	p := DefaultPalette
	assert.Equal(t, p.Defender, p.SideColor(core.Defender))
	assert.Equal(t, p.Attacker, p.SideColor(core.Attacker))
	assert.NotEqual(t, p.SideColor(core.Defender), p.SideColor(core.Attacker))
}

func TestPaletteFromConfig(t *testing.T) {
	c := config.ColorsConfig{
		LightSquare: [3]int{1, 2, 3},
		DarkSquare:  [3]int{300, -4, 5},
		Highlight:   [4]int{10, 20, 30, 40},
	}
	p := PaletteFromConfig(c)

	assert.Equal(t, color.RGBA{1, 2, 3, 255}, p.LightSquare)
	assert.Equal(t, color.RGBA{255, 0, 5, 255}, p.DarkSquare, "components are clamped to a byte")
	assert.Equal(t, color.RGBA{10, 20, 30, 40}, p.Highlight)
}

func TestContrast(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, black, Contrast(DefaultPalette.LightSquare))
	assert.Equal(t, white, Contrast(DefaultPalette.Attacker))
}
