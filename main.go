package main

import (
	"log"
	"log/slog"
	"lollypop/audio"
	"lollypop/bonus"
	"lollypop/config"
	"lollypop/screen"
	"lollypop/terminal"
	"lollypop/tetris"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("unable to create logger: %v", err)
	}
	defer closeLog() //nolint: errcheck

	trigger := bonus.New(&bonus.Options{Command: cfg.BonusCommand, Logger: logger})
	defer trigger.Close()
	dispatchers := tetris.Dispatchers{trigger}
	if cfg.Audio {
		player, err := audio.New(&audio.Options{
			SampleRate: cfg.SampleRate,
			Volume:     cfg.Volume,
			Logger:     logger,
		})
		if err != nil {
			logger.Warn("audio disabled", slog.String("error", err.Error()))
		} else {
			defer player.Close()
			dispatchers = append(dispatchers, player)
		}
	}

	game := tetris.NewGame(&tetris.Options{Config: cfg.Game, Logger: logger})
	runner := tetris.NewRunner(game, &tetris.RunnerOptions{
		Frame:      cfg.Frame,
		Dispatcher: dispatchers,
		Logger:     logger,
	})

	switch cfg.UI {
	case config.UIANSI:
		t, err := terminal.New(logger, runner, &terminal.Options{NoGhost: cfg.NoGhost, CellSize: cfg.CellSize})
		if err != nil {
			log.Fatalf("unable to start terminal: %v", err)
		}
		defer func() {
			if err := t.Close(); err != nil {
				logger.Error("unable to close terminal", slog.String("error", err.Error()))
			}
		}()
		t.Start()
	default:
		s, err := screen.New(logger, runner, &screen.Options{NoGhost: cfg.NoGhost, CellSize: cfg.CellSize})
		if err != nil {
			log.Fatalf("unable to start screen: %v", err)
		}
		s.Start()
	}
}
