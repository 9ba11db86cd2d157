package config

import (
	_ "embed"
)

//go:embed defaults/r2048.yaml
var defaultYAML []byte

// Default returns the hard-coded default configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Spawn4Probability: 0.10,
			LossPolicy:        "lock",
		},
		Storage: StorageConfig{
			DBPath: "~/.r2048/scores.db",
		},
		Server: ServerConfig{
			SSHAddress:  ":23234",
			IdleTimeout: 30,
			HTTPAddress: ":8048",
		},
		UI: UIConfig{
			HighlightTicks: 9,
			TickRate:       60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
