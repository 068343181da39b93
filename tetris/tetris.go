// Package tetris contains the logic of the game: the board, the falling
// piece, line clearing, scoring and the game over freeze.
//
// The engine doesn't draw, play sounds or read the keyboard. It exposes
// Snapshots to render and returns Effects for the outside world to act on.
package tetris

import (
	"math"
	"time"
)

// Config is the game configuration. Zero values are replaced with the defaults.
type Config struct {
	Width          int           `env:"WIDTH" envDefault:"10"`
	Height         int           `env:"HEIGHT" envDefault:"20"`
	BaseInterval   time.Duration `env:"BASE_INTERVAL" envDefault:"1s"`
	MinInterval    time.Duration `env:"MIN_INTERVAL" envDefault:"0s"` // 0 disables the clamp
	ScorePerLine   int           `env:"SCORE_PER_LINE" envDefault:"100"`
	SpeedStep      int           `env:"SPEED_STEP" envDefault:"1000"` // points needed to speed up
	SpeedFactor    float64       `env:"SPEED_FACTOR" envDefault:"0.9"`
	FreezeDuration time.Duration `env:"FREEZE" envDefault:"5s"`
}

func DefaultConfig() Config {
	return Config{
		Width:          10,
		Height:         20,
		BaseInterval:   time.Second,
		ScorePerLine:   100,
		SpeedStep:      1000,
		SpeedFactor:    0.9,
		FreezeDuration: 5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.BaseInterval <= 0 {
		c.BaseInterval = d.BaseInterval
	}
	if c.ScorePerLine <= 0 {
		c.ScorePerLine = d.ScorePerLine
	}
	if c.SpeedStep <= 0 {
		c.SpeedStep = d.SpeedStep
	}
	if c.SpeedFactor <= 0 {
		c.SpeedFactor = d.SpeedFactor
	}
	if c.FreezeDuration <= 0 {
		c.FreezeDuration = d.FreezeDuration
	}
	return c
}

func (c Config) scoreDelta(lines int) int {
	return lines * c.ScorePerLine
}

func (c Config) fallInterval(score int) time.Duration {
	// fallInterval() sets how long the piece waits before falling one row.
	// Every SpeedStep points the interval is reduced by SpeedFactor.
	//
	// Time = BaseInterval * SpeedFactor^(Score/SpeedStep)
	steps := score / c.SpeedStep
	d := time.Duration(float64(c.BaseInterval) * math.Pow(c.SpeedFactor, float64(steps)))
	d = d.Truncate(time.Millisecond)
	if d < c.MinInterval {
		return c.MinInterval
	}
	return d
}
