package ui

import (
	"context"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/ui/input"
)

// gridController turns decoded commands into engine calls for the grid variants
type gridController struct {
	engine   *game.Engine
	selected *core.Coordinate
}

func newGridController(e *game.Engine) *gridController {
	return &gridController{engine: e}
}

// handle applies one command. Clicks deploy a purchased unit when one is
// pending; otherwise, where the variant allows it, they select and move units.
func (c *gridController) handle(ctx context.Context, cmd input.Command) error {
	switch cmd.Kind {
	case input.CommandShopSlot:
		offer, ok := c.engine.Rules().Catalog.At(cmd.Slot)
		if !ok {
			return nil
		}
		c.selected = nil
		c.engine.Purchase(offer.Kind)
	case input.CommandCancel:
		c.selected = nil
		c.engine.CancelSelection()
	case input.CommandReset:
		c.selected = nil
		return c.engine.Reset()
	case input.CommandForceTick:
		if c.engine.IsGameOver() {
			return nil
		}
		return c.engine.Tick(ctx)
	case input.CommandClickSquare:
		c.click(cmd.At)
	}
	return nil
}

func (c *gridController) click(at core.Coordinate) {
	snap := c.engine.Snapshot()
	if snap.GameOver {
		return
	}
	if snap.Selected != "" || snap.Variant == game.VariantMoveback {
		c.engine.Place(at)
		return
	}

	if c.selected != nil {
		from := *c.selected
		c.selected = nil
		if from == at {
			return
		}
		if c.engine.Move(from, at) {
			return
		}
	}
	if snap.Board.HasSide(at, core.Defender) {
		sel := at
		c.selected = &sel
	}
}

// selection returns the selected unit and where it may go
func (c *gridController) selection() (core.Coordinate, []core.Coordinate, bool) {
	if c.selected == nil {
		return core.Coordinate{}, nil, false
	}
	return *c.selected, c.engine.LegalDestinations(*c.selected), true
}

// arenaSelection is a selected White piece on one board
type arenaSelection struct {
	board int
	from  core.Coordinate
}

// arenaController turns decoded commands into match calls for the dual arena
type arenaController struct {
	match    *arena.Match
	selected *arenaSelection
}

func newArenaController(m *arena.Match) *arenaController {
	return &arenaController{match: m}
}

func (c *arenaController) handle(ctx context.Context, cmd input.Command) error {
	switch cmd.Kind {
	case input.CommandCancel:
		c.selected = nil
	case input.CommandReset:
		c.selected = nil
		return c.match.Reset()
	case input.CommandForceTick:
		if c.match.IsGameOver() {
			return nil
		}
		_, err := c.match.Tick(ctx)
		return err
	case input.CommandClickSquare:
		return c.click(cmd.Board, cmd.At)
	}
	return nil
}

// click selects a White piece, or moves the selected one. A click on a
// different board starts a new selection there.
func (c *arenaController) click(board int, at core.Coordinate) error {
	if c.match.IsGameOver() {
		return nil
	}
	sel := c.selected
	c.selected = nil

	if sel != nil && sel.board == board {
		if sel.from == at {
			return nil
		}
		if isTarget(c.match.LegalTargets(board, sel.from), at) {
			_, err := c.match.Move(board, sel.from, at)
			return err
		}
	}
	if len(c.match.LegalTargets(board, at)) > 0 {
		c.selected = &arenaSelection{board: board, from: at}
		return nil
	}

	// Let the match explain the rejection
	from := at
	if sel != nil && sel.board == board {
		from = sel.from
	}
	_, err := c.match.Move(board, from, at)
	return err
}

func (c *arenaController) selection() (arenaSelection, []core.Coordinate, bool) {
	if c.selected == nil {
		return arenaSelection{}, nil, false
	}
	return *c.selected, c.match.LegalTargets(c.selected.board, c.selected.from), true
}

func isTarget(targets []core.Coordinate, at core.Coordinate) bool {
	for _, t := range targets {
		if t == at {
			return true
		}
	}
	return false
}
