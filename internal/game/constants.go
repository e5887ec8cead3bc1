package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// Variant names a rule set
type Variant string

const (
	VariantMoveback     Variant = "moveback"
	VariantTowerDefense Variant = "towerdefense"
	VariantDualArena    Variant = "dualarena"
)

// ErrNotGridVariant is returned when a grid engine is asked to run the dual arena
var ErrNotGridVariant = fmt.Errorf("%w: not a grid variant", core.ErrUnknownVariant)

// ParseVariant accepts the canonical names plus a few spellings used on the command line
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moveback", "move_back", "auto", "autobattle":
		return VariantMoveback, nil
	case "towerdefense", "tower_defense", "td":
		return VariantTowerDefense, nil
	case "dualarena", "dual_arena", "arena":
		return VariantDualArena, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownVariant, s)
}

// KingHome is where the defender king starts
var KingHome = core.NewCoordinate(4, core.DefenderHomeRank)

// Rules are the tunable numbers of a grid variant. Engines never read global config.
type Rules struct {
	TickInterval      time.Duration
	StartingGold      int
	PawnKillReward    int
	StartingHealth    int // 0 disables the health model
	BreachDamage      int
	KingCaptureDamage int
	RampEndRound      int
	DeployMinRank     int
	Catalog           core.Catalog
}

// HasHealth reports whether defeat is driven by a health pool
func (r Rules) HasHealth() bool {
	return r.StartingHealth > 0
}

// DefaultRules returns the stock numbers for a grid variant
func DefaultRules(v Variant) Rules {
	switch v {
	case VariantTowerDefense:
		return Rules{
			TickInterval:   3000 * time.Millisecond,
			StartingGold:   0,
			PawnKillReward: 4,
			DeployMinRank:  4,
			Catalog:        core.DefaultCatalog(),
		}
	default:
		return Rules{
			TickInterval:      1000 * time.Millisecond,
			StartingGold:      30,
			PawnKillReward:    4,
			StartingHealth:    10,
			BreachDamage:      1,
			KingCaptureDamage: 1,
			RampEndRound:      120,
			DeployMinRank:     4,
			Catalog:           core.DefaultCatalog(),
		}
	}
}

// RulesFromConfig builds Rules for v from loaded configuration
func RulesFromConfig(c *config.Config, v Variant) Rules {
	r := DefaultRules(v)
	r.DeployMinRank = c.Game.DeployMinRank
	r.Catalog = CatalogFromConfig(c.Game.Shop)

	switch v {
	case VariantTowerDefense:
		td := c.Game.TowerDefense
		r.TickInterval = time.Duration(td.StepMs) * time.Millisecond
		r.StartingGold = td.StartingGold
		r.PawnKillReward = td.PawnKillReward
	default:
		mb := c.Game.Moveback
		r.TickInterval = time.Duration(mb.TurnDurationMs) * time.Millisecond
		r.StartingGold = mb.StartingGold
		r.PawnKillReward = mb.PawnKillReward
		r.StartingHealth = mb.StartingHealth
		r.BreachDamage = mb.BreachDamage
		r.KingCaptureDamage = mb.KingCaptureDamage
		r.RampEndRound = mb.RampEndRound
	}
	return r
}

// CatalogFromConfig prices the default shop from configuration
func CatalogFromConfig(s config.ShopConfig) core.Catalog {
	costs := map[core.PieceKind]int{
		core.Pawn:   s.PawnCost,
		core.Knight: s.KnightCost,
		core.Bishop: s.BishopCost,
		core.Rook:   s.RookCost,
	}
	cat := core.DefaultCatalog()
	for i := range cat {
		if c, ok := costs[cat[i].Kind]; ok && c > 0 {
			cat[i].Cost = c
		}
	}
	return cat
}

// deployRowsText renders the deploy territory in the 1-based row numbering shown to players
func (r Rules) deployRowsText() string {
	return fmt.Sprintf("rows %d-%d", r.DeployMinRank+1, core.BoardSize)
}
