package game

import (
	"fmt"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/ai"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/spawn"
)

// respawnFiles is the center-out file order searched for a free king square
var respawnFiles = []int{4, 3, 5, 2, 6, 1, 7, 0}

// movebackRules is the auto-battle variant: the defender auto-moves one unit
// which is forced back a tick later, the attacker moves everything and spawns
// on an escalating schedule, and breaches cost health.
type movebackRules struct{}

func (movebackRules) name() Variant { return VariantMoveback }

func (movebackRules) firstSide() core.Side { return core.Attacker }

func (movebackRules) startStatus() string {
	return "Auto move-back mode: white units retreat next turn."
}

func (movebackRules) allowsMoves() bool { return false }

func (movebackRules) shopTexts() shopTexts {
	return shopTexts{
		placing:  "Placing %s: click empty tile on %s.",
		outside:  "Deploy only on %s.",
		occupied: "That tile is occupied.",
	}
}

func (movebackRules) spawnSchedule(r Rules) spawn.Schedule {
	return spawn.DefaultSchedule(r.RampEndRound)
}

// forcedEffects runs a due retreat. It never consumes the turn.
func (movebackRules) forcedEffects(e *Engine) {
	p := e.gs.Pending
	if p == nil || e.gs.Tick < p.DueTick {
		return
	}
	e.gs.Pending = nil

	board := e.gs.Board
	mover, ok := board.At(p.Destination)
	if !ok || mover.Side != core.Defender {
		e.logger.Debug().
			Str("destination", p.Destination.String()).
			Msg("Retreat discarded, mover left its square")
		return
	}

	target, occupied := board.At(p.Origin)
	swapped, displaced := false, false
	switch {
	case occupied && target.Side == core.Defender:
		board.Swap(p.Origin, p.Destination)
		swapped = true
	case occupied:
		if !e.creditCapture(mover, target, p.Origin) {
			displaced = true
		}
		board.Clear(p.Destination)
		board.Set(p.Origin, mover)
	default:
		board.Clear(p.Destination)
		board.Set(p.Origin, mover)
	}

	e.gs.Status = "Forced return executed."
	e.eventBus.Publish(events.NewRetreatExecutedEvent(e.gameID, e.meta(), mover, p.Destination, p.Origin, swapped, displaced))
}

func (m movebackRules) action(e *Engine) {
	if e.gs.SideToMove == core.Defender {
		m.defenderTurn(e)
		e.gs.SideToMove = core.Attacker
		return
	}
	m.attackerTurn(e)
	e.gs.SideToMove = core.Defender
}

// defenderTurn plays the single best defender move and queues its retreat
func (movebackRules) defenderTurn(e *Engine) {
	best, ok := ai.ChooseDefenderMove(e.rng, e.gs.Board, e.defenderMoves, e.defenderEval)
	if !ok {
		e.gs.Status = "White turn: no useful moves."
		return
	}

	if _, moved := e.moveUnit(best.From, best.To, best.Score); !moved {
		return
	}
	e.gs.Pending = &PendingRetreat{
		Origin:      best.From,
		Destination: best.To,
		DueTick:     e.gs.Tick + 1,
	}
	e.gs.Status = "White turn: 1 auto move."
}

// attackerTurn moves every attacker unit once, deepest rank first.
// Capturing the king removes both units; damage and respawn follow in post-conditions.
func (movebackRules) attackerTurn(e *Engine) {
	e.gs.AttackerRound++
	board := e.gs.Board

	var order []core.Coordinate
	for r := core.BoardSize - 1; r >= 0; r-- {
		for f := 0; f < core.BoardSize; f++ {
			c := core.NewCoordinate(f, r)
			if board.HasSide(c, core.Attacker) {
				order = append(order, c)
			}
		}
	}

	moved := make(map[core.Coordinate]bool, len(order))
	for _, from := range order {
		if moved[from] || !board.HasSide(from, core.Attacker) {
			continue
		}
		best, ok := ai.ChooseAttackerMove(e.rng, board, e.attackerMoves, e.attackerEval, from)
		if !ok {
			continue
		}

		if target, occ := board.At(best.To); occ && target.Is(core.Defender, core.King) {
			attacker, _ := board.Clear(from)
			board.Clear(best.To)
			e.tick.moves++
			e.tick.kingCaptures++
			e.creditCapture(attacker, target, best.To)
			continue
		}

		if _, ok := e.moveUnit(from, best.To, best.Score); ok {
			moved[best.To] = true
		}
	}
	e.tick.attackerTurn = true
}

func (m movebackRules) postConditions(e *Engine) {
	if e.tick.attackerTurn {
		m.resolveKingCaptures(e)
		m.resolveSpawn(e)
	}
	m.resolveBreaches(e)

	if over, reason := e.winCondition.CheckHealthModel(e.gs.Board, e.gs.Health); over {
		e.defeat(reason)
	}
}

func (movebackRules) resolveKingCaptures(e *Engine) {
	n := e.tick.kingCaptures
	if n == 0 {
		return
	}
	label := "Black captured your king."
	if n > 1 {
		label = fmt.Sprintf("Black captured your king %d times.", n)
	}
	e.applyDamage(e.rules.KingCaptureDamage*n, label)
	if e.gs.GameOver {
		return
	}
	if _, ok := e.gs.Board.Find(core.Defender, core.King); !ok && e.respawnKing() {
		e.gs.Status += " King respawned."
	}
}

func (movebackRules) resolveSpawn(e *Engine) {
	if e.gs.GameOver {
		return
	}
	res := e.spawnStep(e.gs.AttackerRound)
	if e.tick.kingCaptures > 0 {
		e.gs.Status = fmt.Sprintf("%s %s.", e.gs.Status, res.Text())
		return
	}
	e.gs.Status = fmt.Sprintf("Black round %d: %d moves, %s.", e.gs.AttackerRound, e.tick.moves, res.Text())
}

// resolveBreaches removes attacker units on the home rank and charges damage per unit
func (movebackRules) resolveBreaches(e *Engine) {
	breached := e.winCondition.Breaches(e.gs.Board)
	if len(breached) == 0 {
		return
	}
	for _, sq := range breached {
		e.gs.Board.Clear(sq)
	}
	e.eventBus.Publish(events.NewBreachEvent(e.gameID, e.meta(), breached))

	label := "A black pawn breached your back rank."
	if len(breached) > 1 {
		label = fmt.Sprintf("%d black pawns breached your back rank.", len(breached))
	}
	e.applyDamage(e.rules.BreachDamage*len(breached), label)
}

// applyDamage lowers health, clamped at zero. Reaching zero is defeat.
func (e *Engine) applyDamage(amount int, reason string) {
	if amount <= 0 || e.gs.GameOver {
		return
	}
	e.gs.Health -= amount
	if e.gs.Health < 0 {
		e.gs.Health = 0
	}
	e.eventBus.Publish(events.NewDamageAppliedEvent(e.gameID, e.meta(), amount, e.gs.Health, reason))

	if e.gs.Health == 0 {
		e.defeat(fmt.Sprintf("%s Health reached 0.", reason))
		return
	}
	e.gs.Status = fmt.Sprintf("%s -%d HP (health %d).", reason, amount, e.gs.Health)
}

// respawnKing places a new defender king on the first free preferred square.
// Returns false when both home ranks are full.
func (e *Engine) respawnKing() bool {
	board := e.gs.Board
	if _, ok := board.Find(core.Defender, core.King); ok {
		return true
	}
	for _, rank := range []int{core.DefenderHomeRank, core.DefenderHomeRank - 1} {
		for _, f := range respawnFiles {
			sq := core.NewCoordinate(f, rank)
			if board.IsEmpty(sq) {
				board.Set(sq, core.NewUnit(core.Defender, core.King))
				e.eventBus.Publish(events.NewKingRespawnedEvent(e.gameID, e.meta(), sq))
				return true
			}
		}
	}
	e.logger.Info().Msg("No vacancy to respawn the king")
	return false
}
