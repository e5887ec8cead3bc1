package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/config"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game"
	"github.com/mitchelldurbincs/ChessTowerDefense/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	variantName := flag.String("variant", "", "Variant to play: moveback, towerdefense or dualarena (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	level := zerolog.InfoLevel
	if cfg.Development.VerboseLogging {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if *variantName == "" {
		*variantName = cfg.UI.Game.Variant
	}
	variant, err := game.ParseVariant(*variantName)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid variant")
	}

	window, err := ui.New(context.Background(), variant, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create game")
	}

	ebiten.SetWindowSize(window.WindowSize())
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(window); err != nil {
		logger.Fatal().Err(err).Msg("Game exited with error")
	}
}
