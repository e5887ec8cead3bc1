package game

import (
	"fmt"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/common"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
)

// shopTexts holds the per-variant wording of purchase and placement feedback.
// Format verbs receive the offer label and the deploy rows text.
type shopTexts struct {
	placing  string
	outside  string
	occupied string
}

// Purchase selects an offer to be deployed by the next placement.
// Gold is only spent when the unit is placed.
func (e *Engine) Purchase(kind core.PieceKind) bool {
	if e.gs.GameOver {
		return false
	}
	offer, ok := e.rules.Catalog.Lookup(kind)
	if !ok {
		e.gs.Status = "That piece is not for sale."
		e.logger.Debug().Str("kind", kind.String()).Msg("Purchase of unlisted kind rejected")
		return false
	}
	if e.gs.Gold < offer.Cost {
		e.gs.Status = fmt.Sprintf("Need %d gold for %s.", offer.Cost, offer.Label)
		return false
	}

	e.gs.Selected = &offer
	e.gs.Status = fmt.Sprintf(e.variant.shopTexts().placing, offer.Label, e.rules.deployRowsText())
	return true
}

// Place deploys the selected offer on at
func (e *Engine) Place(at core.Coordinate) bool {
	if e.gs.GameOver {
		return false
	}
	offer := e.gs.Selected
	if offer == nil {
		e.gs.Status = "Buy a piece from the shop first."
		return false
	}

	texts := e.variant.shopTexts()
	if !common.IsDeployable(at, e.rules.DeployMinRank) {
		e.gs.Status = fmt.Sprintf(texts.outside, e.rules.deployRowsText())
		return false
	}
	if !e.gs.Board.IsEmpty(at) {
		e.gs.Status = texts.occupied
		return false
	}
	if e.gs.Gold < offer.Cost {
		e.gs.Status = "Not enough gold."
		e.gs.Selected = nil
		return false
	}

	e.gs.Gold -= offer.Cost
	e.gs.Board.Set(at, core.NewUnit(core.Defender, offer.Kind))
	e.gs.Selected = nil
	e.gs.Status = fmt.Sprintf("Deployed %s.", offer.Label)

	e.logger.Debug().
		Str("kind", offer.Kind.String()).
		Str("at", at.String()).
		Int("gold_left", e.gs.Gold).
		Msg("Unit deployed")
	e.eventBus.Publish(events.NewUnitPurchasedEvent(e.gameID, offer.Kind, offer.Cost, at, e.gs.Gold))
	return true
}

// CancelSelection drops a pending purchase without spending gold
func (e *Engine) CancelSelection() {
	e.gs.Selected = nil
}

// creditCapture publishes a capture and pays the kill reward when a defender
// removes an attacker pawn. Returns whether the capture was a pawn kill.
func (e *Engine) creditCapture(by, captured core.Unit, at core.Coordinate) bool {
	kill := by.Side == core.Defender && captured.Is(core.Attacker, core.Pawn)
	reward := 0
	if kill {
		reward = e.rules.PawnKillReward
		e.gs.Gold += reward
		e.gs.Kills++
	}
	e.eventBus.Publish(events.NewUnitCapturedEvent(e.gameID, e.meta(), by, captured, at, reward))
	return kill
}
