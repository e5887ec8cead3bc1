package testutil

import (
	"strings"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// BoardFromASCII builds a board from eight rows of eight symbols, rank 0 first.
// Upper case letters are defender units, lower case attacker units, '.' is empty.
// Whitespace inside a row is ignored.
func BoardFromASCII(rows ...string) *core.Board {
	board := core.NewBoard()
	for r, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		for f, ch := range row {
			if ch == '.' {
				continue
			}
			side := core.Defender
			if ch >= 'a' && ch <= 'z' {
				side = core.Attacker
			}
			kind, err := core.ParsePieceKind(string(ch))
			if err != nil {
				panic(err)
			}
			board.Set(core.NewCoordinate(f, r), core.NewUnit(side, kind))
		}
	}
	return board
}

// CreateSimpleTestSetup returns a board holding only the defender king on its home square
func CreateSimpleTestSetup() *core.Board {
	board := core.NewBoard()
	board.Set(core.NewCoordinate(4, 7), core.NewUnit(core.Defender, core.King))
	return board
}
