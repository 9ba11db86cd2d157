package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
// Harder presets spawn more 4s, which fill the board faster.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets returns the difficulty presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// Spawn4ForPreset returns the spawn-4 probability for a preset.
func Spawn4ForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 0.05, true
	case DifficultyNormal:
		return 0.10, true
	case DifficultyHard:
		return 0.25, true
	default:
		return 0, false
	}
}

// ApplyPreset sets the difficulty and its spawn probability on cfg.
// An empty name leaves cfg untouched.
func ApplyPreset(cfg *Config, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	preset := DifficultyPreset(name)
	p, ok := Spawn4ForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown difficulty %q (expected easy, normal or hard)", name)
	}
	cfg.Game.Difficulty = preset
	cfg.Game.Spawn4Probability = p
	return nil
}
