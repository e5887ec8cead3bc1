package common

import (
	"image/color"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// Palette is the set of colors the render shell draws with
type Palette struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Highlight   color.RGBA
	Deploy      color.RGBA
	Defender    color.RGBA
	Attacker    color.RGBA
	Background  color.RGBA
	Text        color.RGBA
}

// DefaultPalette mirrors the config defaults for callers without a config
var DefaultPalette = Palette{
	LightSquare: color.RGBA{238, 238, 210, 255},
	DarkSquare:  color.RGBA{118, 150, 86, 255},
	Highlight:   color.RGBA{246, 246, 105, 160},
	Deploy:      color.RGBA{70, 130, 180, 60},
	Defender:    color.RGBA{250, 250, 250, 255},
	Attacker:    color.RGBA{30, 30, 30, 255},
	Background:  color.RGBA{24, 24, 28, 255},
	Text:        color.RGBA{230, 230, 230, 255},
}

// PaletteFromConfig converts configured color triples into a Palette
func PaletteFromConfig(c config.ColorsConfig) Palette {
	return Palette{
		LightSquare: rgb(c.LightSquare),
		DarkSquare:  rgb(c.DarkSquare),
		Highlight:   rgba(c.Highlight),
		Deploy:      rgba(c.Deploy),
		Defender:    rgb(c.Defender),
		Attacker:    rgb(c.Attacker),
		Background:  rgb(c.Background),
		Text:        rgb(c.Text),
	}
}

// SquareColor returns the checkerboard color of c; (0,0) is light
func (p Palette) SquareColor(c core.Coordinate) color.RGBA {
	if (c.File+c.Rank)%2 == 0 {
		return p.LightSquare
	}
	return p.DarkSquare
}

// SideColor returns the fill color for a side's pieces
func (p Palette) SideColor(s core.Side) color.RGBA {
	if s == core.Attacker {
		return p.Attacker
	}
	return p.Defender
}

// Contrast returns black or white, whichever reads better on c
func Contrast(c color.RGBA) color.RGBA {
	lum := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if lum > 128000 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}

func rgb(v [3]int) color.RGBA {
	return color.RGBA{uint8(Clamp(v[0], 0, 255)), uint8(Clamp(v[1], 0, 255)), uint8(Clamp(v[2], 0, 255)), 255}
}

func rgba(v [4]int) color.RGBA {
	return color.RGBA{uint8(Clamp(v[0], 0, 255)), uint8(Clamp(v[1], 0, 255)), uint8(Clamp(v[2], 0, 255)), uint8(Clamp(v[3], 0, 255))}
}
