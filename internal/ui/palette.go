package ui

import (
	"image/color"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/common"
)

var (
	successColor = color.RGBA{120, 220, 120, 255}
	alertColor   = color.RGBA{235, 90, 90, 255}
	mutedColor   = color.RGBA{150, 150, 150, 255}
)

// toneColor picks the text color for an arena status line
func toneColor(t arena.Tone, p common.Palette) color.RGBA {
	switch t {
	case arena.ToneSuccess:
		return successColor
	case arena.ToneAlert:
		return alertColor
	case arena.ToneMuted:
		return mutedColor
	}
	return p.Text
}
