package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load returns the board configuration. An explicit path must exist and
// parse. Otherwise the first readable board.yaml among ~/.arcade/configs and
// ./configs wins, falling back to the embedded defaults.
//
// Files are decoded over DefaultConfig, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return decode(data, customPath)
	}

	for _, path := range searchPaths("board.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, path); err == nil {
			return cfg, nil
		}
	}

	cfg, err := decode(defaultBoardYAML, "embedded defaults")
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

func decode(data []byte, source string) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, user directory first.
func searchPaths(filename string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".arcade", "configs", filename))
	}
	return append(paths, filepath.Join("configs", filename))
}

// DifficultyPreset represents a named squash difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplySquashPreset adjusts racket width and ball speed for a preset.
// Normal keeps the configured values.
func ApplySquashPreset(cfg *SquashConfig, preset DifficultyPreset) error {
	switch preset {
	case DifficultyEasy:
		cfg.Racket.HW *= 2
		cfg.Ball.VX *= 0.75
		cfg.Ball.VY *= 0.75
	case DifficultyNormal, "":
	case DifficultyHard:
		cfg.Racket.HW = max(cfg.Racket.HW*2/3, 1)
		cfg.Ball.VX *= 1.5
		cfg.Ball.VY *= 1.5
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", preset)
	}
	cfg.Difficulty = string(preset)
	return nil
}
