package input

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// CommandKind is what one frame of input asks the game to do
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandClickSquare
	CommandShopSlot
	CommandCancel
	CommandReset
	CommandForceTick
)

// Command is a decoded input event
type Command struct {
	Kind  CommandKind
	Board int
	At    core.Coordinate
	Slot  int
}

// Layout locates the clickable regions of the screen
type Layout struct {
	TileSize int
	Boards   []image.Point // top-left pixel of each board
	Shop     []image.Rectangle
}

// Locate maps a pixel to a board square, or reports false when it is off every board
func (l Layout) Locate(x, y int) (board int, at core.Coordinate, ok bool) {
	if l.TileSize <= 0 {
		return 0, core.Coordinate{}, false
	}
	span := l.TileSize * core.BoardSize
	for i, o := range l.Boards {
		dx, dy := x-o.X, y-o.Y
		if dx < 0 || dy < 0 || dx >= span || dy >= span {
			continue
		}
		return i, core.NewCoordinate(dx/l.TileSize, dy/l.TileSize), true
	}
	return 0, core.Coordinate{}, false
}

// ShopSlotAt returns the shop slot under a pixel
func (l Layout) ShopSlotAt(x, y int) (int, bool) {
	p := image.Pt(x, y)
	for i, r := range l.Shop {
		if p.In(r) {
			return i, true
		}
	}
	return 0, false
}

// Handler turns mouse and keyboard state into Commands once per frame
type Handler struct {
	layout         Layout
	mouseX, mouseY int
	queue          []Command
}

func NewHandler(layout Layout) *Handler {
	return &Handler{layout: layout}
}

// Update polls ebiten. Call it once per Update frame.
func (h *Handler) Update() {
	h.mouseX, h.mouseY = GetCursorPosition()

	if IsLeftClickJustPressed() {
		h.queue = append(h.queue, h.decodeClick(h.mouseX, h.mouseY))
	}
	if IsRightClickJustPressed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.queue = append(h.queue, Command{Kind: CommandCancel})
	}
	if slot, ok := JustPressedShopSlot(); ok {
		h.queue = append(h.queue, Command{Kind: CommandShopSlot, Slot: slot})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		h.queue = append(h.queue, Command{Kind: CommandReset})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.queue = append(h.queue, Command{Kind: CommandForceTick})
	}
}

// decodeClick resolves a left click against the layout
func (h *Handler) decodeClick(x, y int) Command {
	if board, at, ok := h.layout.Locate(x, y); ok {
		return Command{Kind: CommandClickSquare, Board: board, At: at}
	}
	if slot, ok := h.layout.ShopSlotAt(x, y); ok {
		return Command{Kind: CommandShopSlot, Slot: slot}
	}
	return Command{Kind: CommandNone}
}

// Drain returns and clears the queued commands
func (h *Handler) Drain() []Command {
	out := h.queue
	h.queue = nil
	return out
}

// Hovered returns the square under the cursor
func (h *Handler) Hovered() (board int, at core.Coordinate, ok bool) {
	return h.layout.Locate(h.mouseX, h.mouseY)
}

func (h *Handler) Layout() Layout {
	return h.layout
}
