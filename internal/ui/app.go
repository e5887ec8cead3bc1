package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/arena"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/common"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
)

// Window is an ebiten game that knows its preferred window size
type Window interface {
	ebiten.Game
	WindowSize() (int, int)
}

// New builds the window for variant from the loaded configuration
func New(ctx context.Context, variant game.Variant, logger zerolog.Logger) (Window, error) {
	cfg := config.Get()
	palette := common.PaletteFromConfig(cfg.Colors)
	dumpEvents := cfg.Development.DumpEvents

	if variant == game.VariantDualArena {
		da := cfg.Game.DualArena
		match, err := arena.NewMatch(ctx, arena.MatchConfig{
			Rules:                arena.RulesFromConfig(da),
			Logger:               logger,
			DumpEvents:           dumpEvents,
			NotificationCapacity: da.NotificationCapacity,
			NotificationTTL:      time.Duration(da.NotificationTTLMs) * time.Millisecond,
		})
		if err != nil {
			return nil, fmt.Errorf("create dual arena: %w", err)
		}
		return NewArenaGame(match, palette, logger)
	}

	engine, err := game.NewEngine(ctx, game.GameConfig{
		Variant:    variant,
		Rules:      game.RulesFromConfig(cfg, variant),
		Logger:     logger,
		DumpEvents: dumpEvents,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s engine: %w", variant, err)
	}
	return NewUIGame(engine, palette, logger)
}
