// Package config loads the session configuration and builds the logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/plus3/tanks/game"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Arena    ArenaConfig    `toml:"arena" yaml:"arena"`
	Game     GameConfig     `toml:"game" yaml:"game"`
	Frontend FrontendConfig `toml:"frontend" yaml:"frontend"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type ArenaConfig struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

type GameConfig struct {
	Seed        uint64  `toml:"seed" yaml:"seed"` // 0 seeds from the clock
	Players     int     `toml:"players" yaml:"players"`
	Bots        int     `toml:"bots" yaml:"bots"`
	AI          string  `toml:"ai" yaml:"ai"`               // "random" or "scripted"
	TickRate    int     `toml:"tick_rate" yaml:"tick_rate"` // updates per second
	FireRate    float32 `toml:"fire_rate" yaml:"fire_rate"`
	BulletSpeed float32 `toml:"bullet_speed" yaml:"bullet_speed"`
	BulletTTL   float32 `toml:"bullet_ttl" yaml:"bullet_ttl"` // seconds, 0 disables expiry
}

type FrontendConfig struct {
	Kind    string `toml:"kind" yaml:"kind"` // "ebiten", "term" or "headless"
	DebugUI bool   `toml:"debug_ui" yaml:"debug_ui"`
	Audio   bool   `toml:"audio" yaml:"audio"`
}

const (
	FrontendEbiten   = "ebiten"
	FrontendTerm     = "term"
	FrontendHeadless = "headless"
)

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	s := game.DefaultSettings()
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Arena: ArenaConfig{
			Width:  80,
			Height: 60,
		},
		Game: GameConfig{
			Players:     s.Players,
			Bots:        s.Bots,
			AI:          string(s.AI),
			TickRate:    60,
			FireRate:    s.FireRate,
			BulletSpeed: s.BulletSpeed,
			BulletTTL:   s.BulletTTL,
		},
		Frontend: FrontendConfig{
			Kind:  FrontendEbiten,
			Audio: true,
		},
	}
}

// Validate checks the parts of the configuration the game settings do not
// cover themselves.
func (c *Config) Validate() error {
	if c.Arena.Width < 9 || c.Arena.Height < 9 {
		return fmt.Errorf("arena must be at least 9x9, got %dx%d", c.Arena.Width, c.Arena.Height)
	}
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.Game.TickRate)
	}
	switch c.Frontend.Kind {
	case FrontendEbiten, FrontendTerm, FrontendHeadless:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend.Kind)
	}
	return c.Settings().Validate()
}

// Settings maps the game section onto simulation settings.
func (c *Config) Settings() game.Settings {
	return game.Settings{
		Players:     c.Game.Players,
		Bots:        c.Game.Bots,
		AI:          game.AIMode(c.Game.AI),
		FireRate:    c.Game.FireRate,
		BulletSpeed: c.Game.BulletSpeed,
		BulletTTL:   c.Game.BulletTTL,
	}
}
