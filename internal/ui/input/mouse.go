package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func IsLeftClickJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func IsRightClickJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

func GetCursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// shopKeys are the number keys bound to shop slots, in slot order
var shopKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}

// JustPressedShopSlot returns the 0-based shop slot whose key was pressed this frame
func JustPressedShopSlot() (int, bool) {
	for slot, k := range shopKeys {
		if inpututil.IsKeyJustPressed(k) {
			return slot, true
		}
	}
	return 0, false
}
