package game

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/rules"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/spawn"
)

// towerDefenseRules is the wave variant: the player moves freely between
// ticks while every tick spawns one attacker pawn and advances all of them.
// There is no health; losing the king or conceding the home rank ends the game.
type towerDefenseRules struct{}

func (towerDefenseRules) name() Variant { return VariantTowerDefense }

func (towerDefenseRules) firstSide() core.Side { return core.Attacker }

func (towerDefenseRules) startStatus() string {
	return "Defend your king. Black pawns advance every 3 seconds."
}

func (towerDefenseRules) allowsMoves() bool { return true }

func (towerDefenseRules) shopTexts() shopTexts {
	return shopTexts{
		placing:  "Placing %s: click an empty square on %s.",
		outside:  "You can only deploy on your side (%s).",
		occupied: "That square is occupied.",
	}
}

func (towerDefenseRules) spawnSchedule(Rules) spawn.Schedule {
	return spawn.PawnWaveSchedule()
}

func (towerDefenseRules) forcedEffects(*Engine) {}

// action spawns the wave pawn, then advances attacker pawns from the deepest rank up
func (towerDefenseRules) action(e *Engine) {
	e.gs.Wave++
	e.spawnStep(e.gs.Wave)

	board := e.gs.Board
	for r := core.BoardSize - 1; r >= 0; r-- {
		for f := 0; f < core.BoardSize; f++ {
			from := core.NewCoordinate(f, r)
			u, ok := board.At(from)
			if !ok || !u.Is(core.Attacker, core.Pawn) {
				continue
			}
			advancePawn(e, from)
		}
	}
	e.tick.attackerTurn = true
}

// advancePawn captures diagonally forward when it can, preferring the king,
// and otherwise steps forward onto an empty square.
func advancePawn(e *Engine, from core.Coordinate) {
	board := e.gs.Board
	fwd := core.Attacker.Forward()
	if !core.NewCoordinate(from.File, from.Rank+fwd).IsValid() {
		return
	}

	var captures []core.Coordinate
	for _, df := range []int{-1, 1} {
		sq := from.Offset(df, fwd)
		if board.HasSide(sq, core.Defender) {
			captures = append(captures, sq)
		}
	}
	if len(captures) > 0 {
		sort.SliceStable(captures, func(i, j int) bool {
			a, _ := board.At(captures[i])
			b, _ := board.At(captures[j])
			return a.Kind == core.King && b.Kind != core.King
		})
		res, _ := e.moveUnit(from, captures[0], 0)
		if res.Captured.Kind == core.King {
			e.defeat(rules.ReasonKingCaptured)
		}
		return
	}

	ahead := from.Offset(0, fwd)
	if board.IsEmpty(ahead) {
		e.moveUnit(from, ahead, 0)
	}
}

func (towerDefenseRules) postConditions(e *Engine) {
	if over, reason := e.winCondition.CheckLastStand(e.gs.Board); over {
		e.defeat(reason)
	}
	if !e.gs.GameOver {
		e.gs.Status = fmt.Sprintf("Wave %d: black pawns advanced.", e.gs.Wave)
	}
}
