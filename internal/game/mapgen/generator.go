package mapgen

import (
	"math/rand"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/common"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// FormationConfig holds configuration for generating an opening defender formation
type FormationConfig struct {
	Budget     int
	MinRank    int // first rank of the deploy territory
	MaxUnits   int
	MinSpacing int // Manhattan distance kept between generated units
	Catalog    core.Catalog
}

// DefaultFormationConfig returns a sensible default configuration
func DefaultFormationConfig(budget, minRank int, catalog core.Catalog) FormationConfig {
	return FormationConfig{
		Budget:     budget,
		MinRank:    minRank,
		MaxUnits:   6,
		MinSpacing: 2,
		Catalog:    catalog,
	}
}

// Placement is one planned purchase and where to deploy it
type Placement struct {
	Kind core.PieceKind
	At   core.Coordinate
	Cost int
}

// Generator plans formations with deterministic RNG
type Generator struct {
	config FormationConfig
	rng    *rand.Rand
}

// NewGenerator creates a new formation generator
func NewGenerator(config FormationConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateFormation plans purchases that fit the budget on empty squares of
// board. The board is not modified; callers deploy the plan through the shop.
func (g *Generator) GenerateFormation(board *core.Board) []Placement {
	scratch := board.Clone()
	budget := g.config.Budget
	var plan []Placement

	for len(plan) < g.config.MaxUnits {
		offer, ok := g.chooseOffer(budget)
		if !ok {
			break
		}
		at, ok := g.findLocation(scratch, plan)
		if !ok {
			break
		}

		scratch.Set(at, core.NewUnit(core.Defender, offer.Kind))
		budget -= offer.Cost
		plan = append(plan, Placement{Kind: offer.Kind, At: at, Cost: offer.Cost})
	}

	return plan
}

// chooseOffer picks uniformly among the offers the remaining budget covers
func (g *Generator) chooseOffer(budget int) (core.Offer, bool) {
	var affordable []core.Offer
	for _, o := range g.config.Catalog {
		if o.Cost > 0 && o.Cost <= budget {
			affordable = append(affordable, o)
		}
	}
	if len(affordable) == 0 {
		return core.Offer{}, false
	}
	return affordable[g.rng.Intn(len(affordable))], true
}

func (g *Generator) findLocation(b *core.Board, existing []Placement) (core.Coordinate, bool) {
	rows := core.DefenderHomeRank - g.config.MinRank + 1
	if rows <= 0 {
		return core.Coordinate{}, false
	}
	maxAttempts := rows * core.BoardSize // Fallback to prevent infinite loops

	for attempts := 0; attempts < maxAttempts; attempts++ {
		at := core.NewCoordinate(g.rng.Intn(core.BoardSize), g.config.MinRank+g.rng.Intn(rows))
		if !common.IsDeployable(at, g.config.MinRank) || !b.IsEmpty(at) {
			continue
		}

		validLocation := true
		for _, other := range existing {
			if common.ManhattanDistance(at.File, at.Rank, other.At.File, other.At.Rank) < g.config.MinSpacing {
				validLocation = false
				break
			}
		}
		if validLocation {
			return at, true
		}
	}

	// Fallback: first empty deploy square ignoring spacing
	for r := core.DefenderHomeRank; r >= g.config.MinRank; r-- {
		for f := 0; f < core.BoardSize; f++ {
			at := core.NewCoordinate(f, r)
			if common.IsDeployable(at, g.config.MinRank) && b.IsEmpty(at) {
				return at, true
			}
		}
	}
	return core.Coordinate{}, false
}

// Inputs turns a plan into purchase and placement inputs, in order
func Inputs(plan []Placement) []core.Input {
	inputs := make([]core.Input, 0, 2*len(plan))
	for _, p := range plan {
		inputs = append(inputs, core.PurchaseInput{Piece: p.Kind}, core.PlaceInput{At: p.At})
	}
	return inputs
}
