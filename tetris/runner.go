package tetris

import (
	"io"
	"log/slog"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

type RunnerOptions struct {
	// Frame is the period the game is ticked at. Defaults to 16ms.
	Frame      time.Duration
	Ticker     Ticker
	Clock      func() time.Duration
	Dispatcher Dispatcher
	Logger     *slog.Logger
}

// Runner drives a Game from a single goroutine. Every frame the game is
// ticked with the elapsed time, effects are dispatched and the latest
// Snapshot is published.
type Runner struct {
	game       *Game
	ticker     Ticker
	frame      time.Duration
	clock      func() time.Duration
	dispatcher Dispatcher
	logger     *slog.Logger

	actionCh chan Action
	updateCh chan *Snapshot
	doneCh   chan bool

	// last published piece and position.
	last         *Piece
	lastX, lastY int
}

func NewRunner(g *Game, o *RunnerOptions) *Runner {
	if o == nil {
		o = &RunnerOptions{}
	}
	frame := o.Frame
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	ticker := o.Ticker
	if ticker == nil {
		// the ticker is reset to the frame when the runner starts.
		ticker = newWrappedTicker(time.Hour)
	}
	clock := o.Clock
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}
	var d Dispatcher = Dispatchers{}
	if o.Dispatcher != nil {
		d = o.Dispatcher
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		game:       g,
		ticker:     ticker,
		frame:      frame,
		clock:      clock,
		dispatcher: d,
		logger:     logger,
		actionCh:   make(chan Action),
		updateCh:   make(chan *Snapshot, 1),
		doneCh:     make(chan bool, 1),
	}
}

func (r *Runner) Start() {
	go r.listen()
}

func (r *Runner) Stop() {
	r.ticker.Stop()
	r.doneCh <- true
}

// Action queues a player action. It blocks until the runner takes it.
func (r *Runner) Action(a Action) {
	r.actionCh <- a
}

// Updates returns the channel the snapshots are published on.
// Only the latest snapshot is kept if the reader falls behind.
func (r *Runner) Updates() <-chan *Snapshot {
	return r.updateCh
}

func (r *Runner) listen() {
	r.ticker.Reset(r.frame)
	r.dispatch(r.game.Start(r.clock()))
	r.publish()
	for {
		select {
		case <-r.ticker.C():
			effects := r.game.Tick(r.clock())
			r.dispatch(effects)
			if len(effects) > 0 || r.changed() {
				r.publish()
			}
		case a := <-r.actionCh:
			if r.game.Apply(a) {
				r.publish()
			}
		case <-r.doneCh:
			r.logger.Debug("runner stopped")
			return
		}
	}
}

func (r *Runner) dispatch(effects []Effect) {
	for _, e := range effects {
		r.logger.Debug("effect", slog.String("effect", string(e)))
		r.dispatcher.Dispatch(e)
	}
}

// changed reports whether the piece moved since the last published snapshot.
func (r *Runner) changed() bool {
	p := r.game.piece
	return p != nil && (p != r.last || p.X != r.lastX || p.Y != r.lastY)
}

func (r *Runner) publish() {
	s := r.game.Read()
	if p := r.game.piece; p != nil {
		r.last, r.lastX, r.lastY = p, p.X, p.Y
	}
	select {
	case r.updateCh <- s:
	default:
		// drop the stale snapshot, only this goroutine sends.
		select {
		case <-r.updateCh:
		default:
		}
		r.updateCh <- s
	}
}
