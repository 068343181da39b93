// Package terminal is the ANSI front-end: it reads the keyboard and draws
// the game snapshots with escape sequences on a raw console.
package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"lollypop/tetris"
	"os"

	"github.com/eiannone/keyboard"
)

// Runner is the game loop driven by the terminal, see tetris.Runner.
type Runner interface {
	Start()
	Stop()
	Action(tetris.Action)
	Updates() <-chan *tetris.Snapshot
}

type renderer interface {
	frame(*tetris.Snapshot)
	clear()
	restore()
}

type Terminal struct {
	runner Runner
	render renderer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
}

type Options struct {
	NoGhost  bool
	CellSize int
	Writer   io.Writer
}

// New opens the keyboard in raw mode. Close must be called to release it.
func New(l *slog.Logger, r Runner, o *Options) (*Terminal, error) {
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	rd, err := newRender(l, w, o.NoGhost, o.CellSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Terminal{
		runner: r,
		render: rd,
		logger: l,
		kbCh:   kb,
	}, nil
}

func (t *Terminal) Close() error {
	if err := keyboard.Close(); err != nil {
		return fmt.Errorf("failed to close keyboard: %w", err)
	}
	return nil
}

// Start runs the game until the player quits.
func (t *Terminal) Start() {
	t.render.clear()
	defer t.render.restore()
	t.runner.Start()
	defer t.runner.Stop()

	for {
		select {
		case s := <-t.runner.Updates():
			t.render.frame(s)
		case event, ok := <-t.kbCh:
			if !ok {
				t.logger.Error("keyboard events channel closed unexpectedly")
				return
			}
			if event.Err != nil {
				t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
				return
			}
			a, quit := keyAction(event)
			if quit {
				return
			}
			if a != "" {
				t.runner.Action(a)
			}
		}
	}
}

// keyAction maps a key to a game action. It returns an empty action for
// unmapped keys and quit for the exit keys.
func keyAction(event keyboard.KeyEvent) (a tetris.Action, quit bool) {
	switch {
	case event.Key == keyboard.KeyEsc || event.Key == keyboard.KeyCtrlC || event.Rune == 'q':
		return "", true
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, false
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, false
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, false
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w' || event.Rune == 'e':
		return tetris.Rotate, false
	case event.Key == keyboard.KeySpace || event.Rune == ' ':
		return tetris.DropDown, false
	}
	return "", false
}
