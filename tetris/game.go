package tetris

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft  Action = "left"   // Moves the piece one step to the left.
	MoveRight Action = "right"  // Moves the piece one step to the right.
	MoveDown  Action = "down"   // Moves the piece one step down.
	DropDown  Action = "drop"   // Drops the piece down the stack. It locks on the next gravity tick.
	Rotate    Action = "rotate" // Rotates the piece clockwise.
)

// Cell is an occupied position on the board.
type Cell struct {
	X, Y  int
	Color Color
}

// Snapshot is a copy of the game status that's safe to read concurrently.
type Snapshot struct {
	Session      string
	Width        int
	Height       int
	Stack        [][]Color
	Piece        []Cell
	Ghost        []Cell
	Score        int
	Deaths       int
	Frozen       bool
	ShowHint     bool
	FallInterval time.Duration
}

type Options struct {
	Config Config
	Logger *slog.Logger
	Random Random
}

// Game is the game state machine. It's driven by Tick() with the time
// elapsed since an arbitrary fixed point and by Apply() with player actions.
// Game is not safe for concurrent use, see Runner.
type Game struct {
	cfg    Config
	logger *slog.Logger
	random Random

	board    *Board
	piece    *Piece
	session  uuid.UUID
	score    int
	fall     time.Duration
	lastFall time.Duration

	frozen      bool
	freezeStart time.Duration
	deaths      int
}

func NewGame(o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	cfg := o.Config.withDefaults()
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var r Random = globalRandom{}
	if o.Random != nil {
		r = o.Random
	}
	return &Game{
		cfg:    cfg,
		logger: logger,
		random: r,
		board:  newBoard(cfg.Width, cfg.Height),
		fall:   cfg.fallInterval(0),
	}
}

// Start begins a new session at now.
func (g *Game) Start(now time.Duration) []Effect {
	g.session = uuid.New()
	g.board.reset()
	g.score = 0
	g.fall = g.cfg.fallInterval(0)
	g.frozen = false
	g.piece = spawn(g.cfg.Width, g.random)
	g.lastFall = now
	g.logger.Info("session started", slog.String("session", g.session.String()))
	return []Effect{Start}
}

// Tick advances the game to now.
func (g *Game) Tick(now time.Duration) []Effect {
	if g.piece == nil {
		return g.Start(now)
	}
	if g.frozen {
		if now-g.freezeStart < g.cfg.FreezeDuration {
			return nil
		}
		return g.Start(now)
	}
	if now-g.lastFall < g.fall {
		return nil
	}

	var effects []Effect
	if g.piece.canMove(0, 1, g.board) {
		g.piece.Y++
	} else {
		effects = g.lock(now)
	}
	g.lastFall = now
	return effects
}

// Apply applies the player action and reports whether the piece moved.
// Actions are ignored while the game is frozen.
func (g *Game) Apply(a Action) bool {
	if g.frozen || g.piece == nil {
		return false
	}
	switch a {
	case MoveLeft:
		return g.shift(-1, 0)
	case MoveRight:
		return g.shift(1, 0)
	case MoveDown:
		return g.shift(0, 1)
	case Rotate:
		return g.piece.rotate(g.board)
	case DropDown:
		d := g.piece.dropDelta(g.board)
		g.piece.Y += d
		return d > 0
	}
	return false
}

func (g *Game) shift(dx, dy int) bool {
	if !g.piece.canMove(dx, dy, g.board) {
		return false
	}
	g.piece.X += dx
	g.piece.Y += dy
	return true
}

// lock() transfers the piece to the board, clears the lines, updates the
// score and checks for game over. A new piece is spawned in every case.
func (g *Game) lock(now time.Duration) []Effect {
	var effects []Effect
	g.board.place(g.piece)

	lines := g.board.clearFullRows()
	for range lines {
		effects = append(effects, LineClear)
	}
	if lines > 0 {
		g.score += g.cfg.scoreDelta(lines)
		g.fall = g.cfg.fallInterval(g.score)
		g.logger.Debug("lines cleared",
			slog.String("session", g.session.String()),
			slog.Int("lines", lines),
			slog.Int("score", g.score),
			slog.Duration("fall", g.fall),
		)
	}

	if g.board.spawnRowBlocked() {
		g.frozen = true
		g.freezeStart = now
		g.deaths++
		effects = append(effects, GameOver)
		if g.deaths == 1 {
			effects = append(effects, Bonus)
		}
		g.logger.Info("game over",
			slog.String("session", g.session.String()),
			slog.Int("score", g.score),
			slog.Int("deaths", g.deaths),
		)
	}

	g.piece = spawn(g.cfg.Width, g.random)
	return effects
}

func (g *Game) Score() int                  { return g.score }
func (g *Game) Deaths() int                 { return g.deaths }
func (g *Game) Frozen() bool                { return g.frozen }
func (g *Game) Session() string             { return g.session.String() }
func (g *Game) Board() *Board               { return g.board }
func (g *Game) Piece() *Piece               { return g.piece.copy() }
func (g *Game) FallInterval() time.Duration { return g.fall }

// Read returns a copy of the current game status.
func (g *Game) Read() *Snapshot {
	s := &Snapshot{
		Session:      g.session.String(),
		Width:        g.board.Width(),
		Height:       g.board.Height(),
		Stack:        g.board.rows(),
		Score:        g.score,
		Deaths:       g.deaths,
		Frozen:       g.frozen,
		ShowHint:     g.frozen && g.deaths == 1,
		FallInterval: g.fall,
	}
	if g.piece == nil {
		return s
	}
	ghost := g.piece.copy()
	ghost.Y += ghost.dropDelta(g.board)
	s.Piece = g.visible(g.piece.cells())
	s.Ghost = g.visible(ghost.cells())
	return s
}

// visible filters out the cells above the board.
func (g *Game) visible(cells []Cell) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if c.Y >= 0 && c.Y < g.board.Height() && c.X >= 0 && c.X < g.board.Width() {
			out = append(out, c)
		}
	}
	return out
}
