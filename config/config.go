// Package config loads the game configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"lollypop/tetris"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	UITcell = "tcell"
	UIANSI  = "ansi"
)

type Config struct {
	Game tetris.Config `envPrefix:"TETRIS_"`

	Frame    time.Duration `env:"TETRIS_FRAME" envDefault:"16ms"`
	UI       string        `env:"TETRIS_UI" envDefault:"tcell"`
	CellSize int           `env:"TETRIS_CELL_SIZE" envDefault:"2"` // terminal columns per cell
	NoGhost  bool          `env:"TETRIS_NO_GHOST"`

	Audio      bool    `env:"TETRIS_AUDIO" envDefault:"true"`
	SampleRate int     `env:"TETRIS_SAMPLE_RATE" envDefault:"44100"`
	Volume     float64 `env:"TETRIS_VOLUME" envDefault:"0.5"`

	// BonusCommand is run once on the first game over. Empty only logs it.
	BonusCommand string `env:"TETRIS_BONUS_CMD"`

	LogFile  string `env:"TETRIS_LOG_FILE"`
	LogLevel string `env:"TETRIS_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	g := c.Game
	if g.Width < 4 || g.Height < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", g.Width, g.Height))
	}
	if g.BaseInterval <= 0 {
		errs = append(errs, fmt.Errorf("base interval must be positive, got %v", g.BaseInterval))
	}
	if g.MinInterval < 0 {
		errs = append(errs, fmt.Errorf("min interval can't be negative, got %v", g.MinInterval))
	}
	if g.ScorePerLine <= 0 {
		errs = append(errs, fmt.Errorf("score per line must be positive, got %d", g.ScorePerLine))
	}
	if g.SpeedStep <= 0 {
		errs = append(errs, fmt.Errorf("speed step must be positive, got %d", g.SpeedStep))
	}
	if g.SpeedFactor <= 0 || g.SpeedFactor > 1 {
		errs = append(errs, fmt.Errorf("speed factor must be in (0, 1], got %v", g.SpeedFactor))
	}
	if g.FreezeDuration <= 0 {
		errs = append(errs, fmt.Errorf("freeze must be positive, got %v", g.FreezeDuration))
	}
	if c.Frame <= 0 {
		errs = append(errs, fmt.Errorf("frame must be positive, got %v", c.Frame))
	}
	if c.UI != UITcell && c.UI != UIANSI {
		errs = append(errs, fmt.Errorf("unknown ui %q", c.UI))
	}
	if c.CellSize < 1 {
		errs = append(errs, fmt.Errorf("cell size must be at least 1, got %d", c.CellSize))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate must be positive, got %d", c.SampleRate))
	}
	if c.Volume < 0 {
		errs = append(errs, fmt.Errorf("volume can't be negative, got %v", c.Volume))
	}
	return errors.Join(errs...)
}
