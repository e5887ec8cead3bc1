package input

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

func testLayout() Layout {
	return Layout{
		TileSize: 10,
		Boards:   []image.Point{{X: 0, Y: 20}, {X: 100, Y: 20}},
		Shop:     []image.Rectangle{image.Rect(0, 110, 40, 130), image.Rect(40, 110, 80, 130)},
	}
}

func TestLayoutLocate(t *testing.T) {
	l := testLayout()

	tests := []struct {
		name      string
		x, y      int
		wantOK    bool
		wantBoard int
		wantAt    core.Coordinate
	}{
		{"first board origin", 0, 20, true, 0, core.NewCoordinate(0, 0)},
		{"first board far corner", 79, 99, true, 0, core.NewCoordinate(7, 7)},
		{"second board", 125, 45, true, 1, core.NewCoordinate(2, 2)},
		{"above boards", 5, 5, false, 0, core.Coordinate{}},
		{"gap between boards", 90, 50, false, 0, core.Coordinate{}},
		{"past the last rank", 5, 100, false, 0, core.Coordinate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, at, ok := l.Locate(tt.x, tt.y)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantBoard, board)
				assert.Equal(t, tt.wantAt, at)
			}
		})
	}
}

func TestLayoutLocateWithoutTiles(t *testing.T) {
	_, _, ok := Layout{}.Locate(1, 1)
	assert.False(t, ok)
}

func TestLayoutShopSlotAt(t *testing.T) {
	l := testLayout()

	slot, ok := l.ShopSlotAt(50, 120)
	assert.True(t, ok)
	assert.Equal(t, 1, slot)

	_, ok = l.ShopSlotAt(90, 120)
	assert.False(t, ok)
}

func TestHandlerDecodeClick(t *testing.T) {
	h := NewHandler(testLayout())

	cmd := h.decodeClick(15, 25)
	assert.Equal(t, CommandClickSquare, cmd.Kind)
	assert.Equal(t, core.NewCoordinate(1, 0), cmd.At)

	cmd = h.decodeClick(10, 115)
	assert.Equal(t, CommandShopSlot, cmd.Kind)
	assert.Equal(t, 0, cmd.Slot)

	assert.Equal(t, CommandNone, h.decodeClick(300, 300).Kind)
}

func TestHandlerDrain(t *testing.T) {
	h := NewHandler(testLayout())
	h.queue = append(h.queue, Command{Kind: CommandReset}, Command{Kind: CommandCancel})

	got := h.Drain()
	assert.Len(t, got, 2)
	assert.Empty(t, h.Drain())
}
