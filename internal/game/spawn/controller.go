package spawn

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// Weight is one entry of a spawn weight table
type Weight struct {
	Kind   core.PieceKind
	Weight float64
}

// Band maps progress below UpTo to a weight table
type Band struct {
	UpTo    float64
	Weights []Weight
}

// IntervalBand maps progress below UpTo to a spawn interval in rounds
type IntervalBand struct {
	UpTo     float64
	Interval int
}

// Schedule decides when and what the attacker spawns as difficulty ramps up
type Schedule struct {
	RampEndRound int
	Intervals    []IntervalBand
	Bands        []Band
	// Rows lists placement ranks in preference order per kind; Default covers kinds not listed.
	Rows        map[core.PieceKind][]int
	DefaultRows []int
}

// DefaultSchedule returns the escalating schedule used by the auto-battle variant
func DefaultSchedule(rampEndRound int) Schedule {
	return Schedule{
		RampEndRound: rampEndRound,
		Intervals: []IntervalBand{
			{UpTo: 0.35, Interval: 3},
			{UpTo: 0.7, Interval: 2},
			{UpTo: 2, Interval: 1},
		},
		Bands: []Band{
			{UpTo: 0.2, Weights: []Weight{{core.Pawn, 1}}},
			{UpTo: 0.4, Weights: []Weight{{core.Pawn, 0.78}, {core.Knight, 0.12}, {core.Bishop, 0.10}}},
			{UpTo: 0.6, Weights: []Weight{{core.Pawn, 0.50}, {core.Knight, 0.20}, {core.Bishop, 0.20}, {core.Rook, 0.10}}},
			{UpTo: 0.8, Weights: []Weight{{core.Pawn, 0.25}, {core.Knight, 0.18}, {core.Bishop, 0.18}, {core.Rook, 0.19}, {core.Queen, 0.20}}},
			{UpTo: 0.95, Weights: []Weight{{core.Pawn, 0.08}, {core.Knight, 0.10}, {core.Bishop, 0.10}, {core.Rook, 0.17}, {core.Queen, 0.55}}},
			{UpTo: 2, Weights: []Weight{{core.Queen, 1}}},
		},
		Rows:        map[core.PieceKind][]int{core.Pawn: {1, 0}},
		DefaultRows: []int{0, 1},
	}
}

// PawnWaveSchedule spawns one pawn on rank 1 every round
func PawnWaveSchedule() Schedule {
	return Schedule{
		Intervals:   []IntervalBand{{UpTo: 2, Interval: 1}},
		Bands:       []Band{{UpTo: 2, Weights: []Weight{{core.Pawn, 1}}}},
		Rows:        map[core.PieceKind][]int{core.Pawn: {1}},
		DefaultRows: []int{1},
	}
}

// Validate checks that every weight table sums to 1 and intervals are positive
func (s Schedule) Validate() error {
	for _, b := range s.Bands {
		sum := 0.0
		for _, w := range b.Weights {
			if w.Weight < 0 {
				return fmt.Errorf("negative weight for %s below progress %.2f", w.Kind, b.UpTo)
			}
			sum += w.Weight
		}
		if sum < 1-1e-6 || sum > 1+1e-6 {
			return fmt.Errorf("weights below progress %.2f sum to %.4f, want 1", b.UpTo, sum)
		}
	}
	for _, iv := range s.Intervals {
		if iv.Interval <= 0 {
			return fmt.Errorf("spawn interval must be positive, got %d", iv.Interval)
		}
	}
	return nil
}

// Controller decides spawns and places spawned units on the board
type Controller struct {
	rng      *rand.Rand
	schedule Schedule
}

// NewController creates a spawn controller drawing from rng
func NewController(rng *rand.Rand, schedule Schedule) *Controller {
	return &Controller{rng: rng, schedule: schedule}
}

// Schedule returns the controller's schedule
func (c *Controller) Schedule() Schedule {
	return c.schedule
}

// Progress returns min(1, round / ramp end); a schedule without a ramp is always at 0.
func (c *Controller) Progress(round int) float64 {
	if c.schedule.RampEndRound <= 0 {
		return 0
	}
	p := float64(round) / float64(c.schedule.RampEndRound)
	if p > 1 {
		return 1
	}
	return p
}

// Interval returns the number of rounds between spawns at progress
func (c *Controller) Interval(progress float64) int {
	for _, iv := range c.schedule.Intervals {
		if progress < iv.UpTo {
			return iv.Interval
		}
	}
	if n := len(c.schedule.Intervals); n > 0 {
		return c.schedule.Intervals[n-1].Interval
	}
	return 1
}

// ShouldSpawn reports whether a spawn is attempted this round
func (c *Controller) ShouldSpawn(round int, progress float64) bool {
	return round%c.Interval(progress) == 0
}

// Weights returns the weight table in force at progress
func (c *Controller) Weights(progress float64) []Weight {
	for _, b := range c.schedule.Bands {
		if progress < b.UpTo {
			return b.Weights
		}
	}
	if n := len(c.schedule.Bands); n > 0 {
		return c.schedule.Bands[n-1].Weights
	}
	return []Weight{{core.Pawn, 1}}
}

// ChooseKind samples a kind from the weight table in force at progress
func (c *Controller) ChooseKind(progress float64) core.PieceKind {
	weights := c.Weights(progress)
	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}
	r := c.rng.Float64() * total
	for _, w := range weights {
		if r < w.Weight {
			return w.Kind
		}
		r -= w.Weight
	}
	return weights[len(weights)-1].Kind
}

// Place puts an attacker unit of kind on a uniformly random empty file of the
// first preferred rank with a vacancy. Returns false without touching the board
// when every preferred rank is full.
func (c *Controller) Place(board *core.Board, kind core.PieceKind) (core.Coordinate, bool) {
	rows, ok := c.schedule.Rows[kind]
	if !ok {
		rows = c.schedule.DefaultRows
	}
	for _, rank := range rows {
		files := board.EmptyFiles(rank)
		if len(files) == 0 {
			continue
		}
		at := core.NewCoordinate(files[c.rng.Intn(len(files))], rank)
		board.Set(at, core.NewUnit(core.Attacker, kind))
		return at, true
	}
	return core.Coordinate{}, false
}

// Result reports the outcome of one round's spawn step
type Result struct {
	Attempted bool
	Spawned   bool
	Kind      core.PieceKind
	At        core.Coordinate
}

// Text renders the result the way round summaries show it
func (r Result) Text() string {
	switch {
	case !r.Attempted:
		return "no spawn this round"
	case !r.Spawned:
		return "spawn blocked"
	default:
		return "spawned 1 " + r.Kind.String()
	}
}

// Step runs the full spawn decision for round
func (c *Controller) Step(board *core.Board, round int) Result {
	progress := c.Progress(round)
	if !c.ShouldSpawn(round, progress) {
		return Result{}
	}
	kind := c.ChooseKind(progress)
	at, ok := c.Place(board, kind)
	return Result{Attempted: true, Spawned: ok, Kind: kind, At: at}
}

// IntervalText describes the spawn cadence for display
func IntervalText(interval int) string {
	if interval <= 1 {
		return "every round"
	}
	return fmt.Sprintf("every %d rounds", interval)
}
