package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/mapgen"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/processor"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	variantName := flag.String("variant", "", "Variant to simulate (empty to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 to use config default, -1 for time based)")
	maxTicks := flag.Int("max-ticks", -1, "Stop after this many ticks (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	printEvery := flag.Int("print-every", 5, "Print the board every N ticks (0 for start and end only)")
	noColor := flag.Bool("no-color", false, "Plain ASCII board output")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *variantName == "" {
		*variantName = cfg.Server.Sim.Variant
	}
	if *seed == 0 {
		*seed = cfg.Server.Sim.Seed
	}
	if *seed == -1 {
		*seed = time.Now().UnixNano()
	}
	if *maxTicks == -1 {
		*maxTicks = cfg.Server.Sim.MaxTicks
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.Sim.LogLevel
	}

	setupLogging(*logLevel, cfg.Server.Sim.LogFormat)

	variant, err := game.ParseVariant(*variantName)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid variant")
	}

	r := runner{
		rng:        rand.New(rand.NewSource(*seed)),
		maxTicks:   *maxTicks,
		printEvery: *printEvery,
		color:      !*noColor,
		dumpEvents: cfg.Development.DumpEvents,
		processor:  processor.NewInputProcessor(log.Logger),
	}
	fmt.Printf("Variant: %s  Seed: %d\n", variant, *seed)

	ctx := context.Background()
	if variant == game.VariantDualArena {
		err = r.runArena(ctx, arena.RulesFromConfig(cfg.Game.DualArena))
	} else {
		err = r.runGrid(ctx, variant, game.RulesFromConfig(cfg, variant))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}
}

type runner struct {
	rng        *rand.Rand
	maxTicks   int
	printEvery int
	color      bool
	dumpEvents bool
	processor  *processor.InputProcessor
}

// runGrid deploys a random formation whenever gold allows and ticks until the game ends
func (r runner) runGrid(ctx context.Context, variant game.Variant, rules game.Rules) error {
	engine, err := game.NewEngine(ctx, game.GameConfig{
		Variant:    variant,
		Rules:      rules,
		Rng:        r.rng,
		Logger:     log.Logger,
		DumpEvents: r.dumpEvents,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Initial board:\n%s\n", engine.Board())

	for tick := 0; tick < r.maxTicks && !engine.IsGameOver(); tick++ {
		if err := r.deploy(ctx, engine, rules); err != nil {
			return err
		}
		if err := engine.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", tick+1, err)
		}
		if r.printEvery > 0 && (tick+1)%r.printEvery == 0 {
			fmt.Printf("Tick %d:\n%s\n", tick+1, engine.Board())
		}
	}

	if engine.IsGameOver() {
		fmt.Printf("Game over after %d ticks: %s\n", engine.Snapshot().Tick, engine.EndReason())
	} else {
		fmt.Printf("Reached maximum ticks (%d)\n", r.maxTicks)
	}
	fmt.Printf("\nFinal board:\n%s", engine.Board())
	return nil
}

// deploy spends the current gold on a generated formation through the input processor
func (r runner) deploy(ctx context.Context, engine *game.Engine, rules game.Rules) error {
	snap := engine.Snapshot()
	gen := mapgen.NewGenerator(mapgen.DefaultFormationConfig(snap.Gold, rules.DeployMinRank, rules.Catalog), r.rng)
	plan := gen.GenerateFormation(&snap.Board)
	if len(plan) == 0 {
		return nil
	}

	results, err := r.processor.ProcessInputs(ctx, engine, mapgen.Inputs(plan))
	for _, res := range results {
		if res.Accepted && res.Input.GetKind() == core.InputPlace {
			fmt.Printf("  %s\n", res.Status)
		}
	}
	return err
}

// runArena plays random legal White moves on both boards and lets the bots answer
func (r runner) runArena(ctx context.Context, rules arena.Rules) error {
	match, err := arena.NewMatch(ctx, arena.MatchConfig{
		Rules:      rules,
		Rng:        r.rng,
		Logger:     log.Logger,
		DumpEvents: r.dumpEvents,
	})
	if err != nil {
		return err
	}
	r.printArenas(match.Snapshot())

	for tick := 0; tick < r.maxTicks && !match.IsGameOver(); tick++ {
		for i := 0; i < arena.ArenaCount && !match.IsGameOver(); i++ {
			from, to, ok := r.randomWhiteMove(match, i)
			if !ok {
				continue
			}
			in := core.MoveInput{Arena: i, From: from, To: to}
			if _, err := r.processor.ProcessInputs(ctx, match, []core.Input{in}); err != nil {
				return err
			}
		}
		if match.IsGameOver() {
			break
		}
		if _, err := match.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", tick+1, err)
		}
		if r.printEvery > 0 && (tick+1)%r.printEvery == 0 {
			fmt.Printf("Tick %d: %s\n", tick+1, match.StatusText())
			r.printArenas(match.Snapshot())
		}
	}

	if match.IsGameOver() {
		fmt.Printf("Match over: %s\n", match.EndReason())
	} else {
		fmt.Printf("Reached maximum ticks (%d)\n", r.maxTicks)
	}
	r.printArenas(match.Snapshot())
	return nil
}

func (r runner) randomWhiteMove(match *arena.Match, index int) (core.Coordinate, core.Coordinate, bool) {
	snap := match.Snapshot().Arenas[index]
	if snap.Ended || !snap.WhiteTurn {
		return core.Coordinate{}, core.Coordinate{}, false
	}

	type move struct{ from, to core.Coordinate }
	var moves []move
	for _, from := range snap.Board.Positions(core.Defender) {
		for _, to := range match.LegalTargets(index, from) {
			moves = append(moves, move{from, to})
		}
	}
	if len(moves) == 0 {
		return core.Coordinate{}, core.Coordinate{}, false
	}
	m := moves[r.rng.Intn(len(moves))]
	return m.from, m.to, true
}

func (r runner) printArenas(s arena.Snapshot) {
	for _, a := range s.Arenas {
		fmt.Printf("%s  [%s]\n%s\n", a.Label, a.Status, game.RenderBoard(&a.Board, r.color))
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
