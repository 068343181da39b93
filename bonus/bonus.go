// Package bonus runs the one-time reward of the first game over.
package bonus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"lollypop/tetris"
	"os/exec"
	"strings"
	"sync"
)

type Options struct {
	// Command is run once on the first Bonus effect. Empty only logs it.
	Command string
	Logger  *slog.Logger
	// Run replaces the command execution, it's used by tests.
	Run func(ctx context.Context, name string, args ...string) error
}

type Trigger struct {
	args   []string
	logger *slog.Logger
	run    func(ctx context.Context, name string, args ...string) error
	once   sync.Once
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func New(o *Options) *Trigger {
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	run := o.Run
	if run == nil {
		run = runCommand
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Trigger{
		args:   strings.Fields(o.Command),
		logger: logger,
		run:    run,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Dispatch fires the bonus on the first Bonus effect and ignores everything else.
func (t *Trigger) Dispatch(e tetris.Effect) {
	if e != tetris.Bonus {
		return
	}
	t.once.Do(t.fire)
}

func (t *Trigger) fire() {
	if len(t.args) == 0 {
		t.logger.Info("bonus unlocked")
		return
	}
	t.logger.Info("bonus unlocked", slog.String("command", strings.Join(t.args, " ")))
	t.wg.Add(1)
	// the game loop must not wait on the command.
	go func() {
		defer t.wg.Done()
		if err := t.run(t.ctx, t.args[0], t.args[1:]...); err != nil {
			t.logger.Error("unable to run bonus command", slog.String("error", err.Error()))
		}
	}()
}

// Close cancels a running command and waits for it.
func (t *Trigger) Close() {
	t.cancel()
	t.wg.Wait()
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("failed to wait for %s: %w", name, err)
	}
	return nil
}
