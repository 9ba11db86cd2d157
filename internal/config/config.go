// Package config provides YAML-based configuration loading and difficulty
// presets for r2048.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/r2048/internal/game"
)

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	UI      UIConfig      `yaml:"ui"`
}

// GameConfig tunes the rules applied to every session.
type GameConfig struct {
	Spawn4Probability float64          `yaml:"spawn4_probability"`
	LossPolicy        string           `yaml:"loss_policy"` // "lock" or "display"
	Difficulty        DifficultyPreset `yaml:"difficulty"`  // overrides spawn4_probability when set
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig holds the network front end settings.
type ServerConfig struct {
	SSHAddress  string `yaml:"ssh_address"`
	HostKeyPath string `yaml:"host_key_path"` // empty = ~/.r2048/host_key
	IdleTimeout int    `yaml:"idle_timeout"`  // minutes
	HTTPAddress string `yaml:"http_address"`
}

// UIConfig tunes the terminal front end.
type UIConfig struct {
	HighlightTicks int `yaml:"highlight_ticks"` // frames a new tile stays highlighted
	TickRate       int `yaml:"tick_rate"`
}

// IdleTimeoutDuration returns the SSH idle timeout.
func (c ServerConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(c.IdleTimeout) * time.Minute
}

// Policy returns the parsed loss policy.
func (c GameConfig) Policy() (game.LossPolicy, error) {
	return game.ParseLossPolicy(c.LossPolicy)
}

// Validate rejects values the front ends cannot run with.
func (c Config) Validate() error {
	// Sessions read a zero probability as "use the default", so it cannot be configured.
	if c.Game.Spawn4Probability <= 0 || c.Game.Spawn4Probability > 1 {
		return fmt.Errorf("config: game.spawn4_probability %v out of range (0,1]", c.Game.Spawn4Probability)
	}
	if _, err := c.Game.Policy(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Game.Difficulty != "" {
		if _, ok := Spawn4ForPreset(c.Game.Difficulty); !ok {
			return fmt.Errorf("config: unknown difficulty %q", c.Game.Difficulty)
		}
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path is empty")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative")
	}
	if c.UI.TickRate <= 0 {
		return fmt.Errorf("config: ui.tick_rate must be positive")
	}
	if c.UI.HighlightTicks < 0 {
		return fmt.Errorf("config: ui.highlight_ticks must not be negative")
	}
	return nil
}
