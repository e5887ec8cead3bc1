package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	UI          UIConfig          `mapstructure:"ui"`
	Colors      ColorsConfig      `mapstructure:"colors"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Moveback      MovebackConfig     `mapstructure:"moveback"`
	TowerDefense  TowerDefenseConfig `mapstructure:"tower_defense"`
	DualArena     DualArenaConfig    `mapstructure:"dual_arena"`
	Shop          ShopConfig         `mapstructure:"shop"`
	DeployMinRank int                `mapstructure:"deploy_min_rank"`
}

// MovebackConfig holds the auto-battle variant settings
type MovebackConfig struct {
	TurnDurationMs    int `mapstructure:"turn_duration_ms"`
	PawnKillReward    int `mapstructure:"pawn_kill_reward"`
	StartingHealth    int `mapstructure:"starting_health"`
	BreachDamage      int `mapstructure:"breach_damage"`
	KingCaptureDamage int `mapstructure:"king_capture_damage"`
	RampEndRound      int `mapstructure:"ramp_end_round"`
	StartingGold      int `mapstructure:"starting_gold"`
}

// TowerDefenseConfig holds the wave variant settings
type TowerDefenseConfig struct {
	StepMs         int `mapstructure:"step_ms"`
	StartingGold   int `mapstructure:"starting_gold"`
	PawnKillReward int `mapstructure:"pawn_kill_reward"`
}

// DualArenaConfig holds the cross-arena variant settings
type DualArenaConfig struct {
	BotDelayMinMs        int `mapstructure:"bot_delay_min_ms"`
	BotDelayMaxMs        int `mapstructure:"bot_delay_max_ms"`
	NotificationCapacity int `mapstructure:"notification_capacity"`
	NotificationTTLMs    int `mapstructure:"notification_ttl_ms"`
}

// ShopConfig holds purchase prices
type ShopConfig struct {
	PawnCost   int `mapstructure:"pawn_cost"`
	KnightCost int `mapstructure:"knight_cost"`
	BishopCost int `mapstructure:"bishop_cost"`
	RookCost   int `mapstructure:"rook_cost"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Sim        SimConfig        `mapstructure:"sim"`
	GRPCServer GRPCServerConfig `mapstructure:"grpc_server"`
}

// SimConfig holds headless runner configuration
type SimConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Variant   string `mapstructure:"variant"`
	MaxTicks  int    `mapstructure:"max_ticks"`
	Seed      int64  `mapstructure:"seed"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	MaxGames              int    `mapstructure:"max_games"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

// UIConfig holds UI/client configuration
type UIConfig struct {
	Window WindowConfig `mapstructure:"window"`
	Game   UIGameConfig `mapstructure:"game"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// UIGameConfig holds UI game settings
type UIGameConfig struct {
	TileSize int    `mapstructure:"tile_size"`
	Variant  string `mapstructure:"variant"`
}

// ColorsConfig holds board and piece colors
type ColorsConfig struct {
	LightSquare [3]int `mapstructure:"light_square"`
	DarkSquare  [3]int `mapstructure:"dark_square"`
	Highlight   [4]int `mapstructure:"highlight"`
	Deploy      [4]int `mapstructure:"deploy"`
	Defender    [3]int `mapstructure:"defender"`
	Attacker    [3]int `mapstructure:"attacker"`
	Background  [3]int `mapstructure:"background"`
	Text        [3]int `mapstructure:"text"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging  bool `mapstructure:"verbose_logging"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
	DumpEvents      bool `mapstructure:"dump_events"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Moveback
	v.SetDefault("game.moveback.turn_duration_ms", 1000)
	v.SetDefault("game.moveback.pawn_kill_reward", 4)
	v.SetDefault("game.moveback.starting_health", 10)
	v.SetDefault("game.moveback.breach_damage", 1)
	v.SetDefault("game.moveback.king_capture_damage", 1)
	v.SetDefault("game.moveback.ramp_end_round", 120)
	v.SetDefault("game.moveback.starting_gold", 30)

	// Tower defense
	v.SetDefault("game.tower_defense.step_ms", 3000)
	v.SetDefault("game.tower_defense.starting_gold", 0)
	v.SetDefault("game.tower_defense.pawn_kill_reward", 4)

	// Dual arena
	v.SetDefault("game.dual_arena.bot_delay_min_ms", 450)
	v.SetDefault("game.dual_arena.bot_delay_max_ms", 950)
	v.SetDefault("game.dual_arena.notification_capacity", 8)
	v.SetDefault("game.dual_arena.notification_ttl_ms", 3800)

	// Shop
	v.SetDefault("game.shop.pawn_cost", 5)
	v.SetDefault("game.shop.knight_cost", 12)
	v.SetDefault("game.shop.bishop_cost", 12)
	v.SetDefault("game.shop.rook_cost", 18)
	v.SetDefault("game.deploy_min_rank", 4)

	// Headless runner
	v.SetDefault("server.sim.log_level", "info")
	v.SetDefault("server.sim.log_format", "console")
	v.SetDefault("server.sim.variant", "moveback")
	v.SetDefault("server.sim.max_ticks", 400)
	v.SetDefault("server.sim.seed", 1)

	// gRPC server
	v.SetDefault("server.grpc_server.host", "0.0.0.0")
	v.SetDefault("server.grpc_server.port", 50051)
	v.SetDefault("server.grpc_server.log_level", "info")
	v.SetDefault("server.grpc_server.max_games", 100)
	v.SetDefault("server.grpc_server.enable_reflection", true)
	v.SetDefault("server.grpc_server.graceful_shutdown_delay", 5)

	// UI
	v.SetDefault("ui.window.width", 640)
	v.SetDefault("ui.window.height", 760)
	v.SetDefault("ui.window.title", "Chess Tower Defense")
	v.SetDefault("ui.game.tile_size", 80)
	v.SetDefault("ui.game.variant", "moveback")

	// Colors
	v.SetDefault("colors.light_square", [3]int{238, 238, 210})
	v.SetDefault("colors.dark_square", [3]int{118, 150, 86})
	v.SetDefault("colors.highlight", [4]int{246, 246, 105, 160})
	v.SetDefault("colors.deploy", [4]int{70, 130, 180, 60})
	v.SetDefault("colors.defender", [3]int{250, 250, 250})
	v.SetDefault("colors.attacker", [3]int{30, 30, 30})
	v.SetDefault("colors.background", [3]int{24, 24, 28})
	v.SetDefault("colors.text", [3]int{230, 230, 230})

	// Development
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_coordinates", false)
	v.SetDefault("development.dump_events", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/chess-td")
	}

	v.SetEnvPrefix("CTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; default locations
		// only tolerate ConfigFileNotFoundError.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. Only values read per
// session (shop prices, timings for new sessions) pick up the change.
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration
func Validate(c *Config) error {
	mb := c.Game.Moveback
	if mb.TurnDurationMs <= 0 {
		return fmt.Errorf("game.moveback.turn_duration_ms must be positive")
	}
	if mb.StartingHealth <= 0 {
		return fmt.Errorf("game.moveback.starting_health must be positive")
	}
	if mb.PawnKillReward < 0 {
		return fmt.Errorf("game.moveback.pawn_kill_reward must be non-negative")
	}
	if mb.BreachDamage < 0 || mb.KingCaptureDamage < 0 {
		return fmt.Errorf("game.moveback damage values must be non-negative")
	}
	if mb.RampEndRound <= 0 {
		return fmt.Errorf("game.moveback.ramp_end_round must be positive")
	}
	if mb.StartingGold < 0 {
		return fmt.Errorf("game.moveback.starting_gold must be non-negative")
	}

	td := c.Game.TowerDefense
	if td.StepMs <= 0 {
		return fmt.Errorf("game.tower_defense.step_ms must be positive")
	}
	if td.StartingGold < 0 || td.PawnKillReward < 0 {
		return fmt.Errorf("game.tower_defense gold values must be non-negative")
	}

	da := c.Game.DualArena
	if da.BotDelayMinMs < 0 || da.BotDelayMaxMs < da.BotDelayMinMs {
		return fmt.Errorf("game.dual_arena bot delay must satisfy 0 <= min <= max")
	}
	if da.NotificationCapacity <= 0 {
		return fmt.Errorf("game.dual_arena.notification_capacity must be positive")
	}
	if da.NotificationTTLMs <= 0 {
		return fmt.Errorf("game.dual_arena.notification_ttl_ms must be positive")
	}

	shop := c.Game.Shop
	if shop.PawnCost <= 0 || shop.KnightCost <= 0 || shop.BishopCost <= 0 || shop.RookCost <= 0 {
		return fmt.Errorf("game.shop costs must be positive")
	}
	if c.Game.DeployMinRank < 1 || c.Game.DeployMinRank > 7 {
		return fmt.Errorf("game.deploy_min_rank must be between 1 and 7")
	}

	if c.Server.GRPCServer.Port <= 0 || c.Server.GRPCServer.Port > 65535 {
		return fmt.Errorf("server.grpc_server.port must be between 1 and 65535")
	}
	if c.Server.GRPCServer.MaxGames <= 0 {
		return fmt.Errorf("server.grpc_server.max_games must be positive")
	}
	if c.Server.GRPCServer.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc_server.graceful_shutdown_delay must be non-negative")
	}
	if c.Server.Sim.MaxTicks < 0 {
		return fmt.Errorf("server.sim.max_ticks must be non-negative")
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Game.TileSize <= 0 {
		return fmt.Errorf("ui.game.tile_size must be positive")
	}

	return nil
}
