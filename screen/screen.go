// Package screen is the tcell front-end of the game.
package screen

import (
	"fmt"
	"io"
	"log/slog"
	"lollypop/tetris"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

const hint = "Play once more to unlock an easter egg"

var (
	colorMap = map[tetris.Color]tcell.Color{
		tetris.Pink:   tcell.NewRGBColor(255, 105, 180),
		tetris.Yellow: tcell.NewRGBColor(255, 215, 0),
	}
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// Runner is the game loop driven by the screen, see tetris.Runner.
type Runner interface {
	Start()
	Stop()
	Action(tetris.Action)
	Updates() <-chan *tetris.Snapshot
}

type Options struct {
	NoGhost  bool
	CellSize int
	// Screen defaults to the terminal screen.
	Screen tcell.Screen
}

type Screen struct {
	screen   tcell.Screen
	runner   Runner
	logger   *slog.Logger
	noGhost  bool
	cellSize int

	last    *tetris.Snapshot
	eventCh chan tcell.Event
	doneCh  chan struct{}
}

// New initializes the screen. It's released when Start returns.
func New(l *slog.Logger, r Runner, o *Options) (*Screen, error) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sc := o.Screen
	if sc == nil {
		var err error
		if sc, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
	}
	if err := sc.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	sc.HideCursor()
	cellSize := o.CellSize
	if cellSize < 1 {
		cellSize = 2
	}
	return &Screen{
		screen:   sc,
		runner:   r,
		logger:   l,
		noGhost:  o.NoGhost,
		cellSize: cellSize,
		eventCh:  make(chan tcell.Event, 8),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs the game until the player quits.
func (s *Screen) Start() {
	defer s.screen.Fini()
	defer close(s.doneCh)
	s.runner.Start()
	defer s.runner.Stop()
	go s.pollEvents()

	for {
		select {
		case snap := <-s.runner.Updates():
			s.last = snap
			s.draw(snap)
		case ev, ok := <-s.eventCh:
			if !ok {
				s.logger.Error("screen events channel closed unexpectedly")
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a, quit := keyAction(ev)
				if quit {
					return
				}
				if a != "" {
					s.runner.Action(a)
				}
			case *tcell.EventResize:
				s.screen.Sync()
				if s.last != nil {
					s.draw(s.last)
				}
			}
		}
	}
}

func (s *Screen) pollEvents() {
	defer close(s.eventCh)
	for {
		// PollEvent returns nil once the screen is finalized.
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.eventCh <- ev:
		case <-s.doneCh:
			return
		}
	}
}

func keyAction(ev *tcell.EventKey) (a tetris.Action, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", true
	case tcell.KeyLeft:
		return tetris.MoveLeft, false
	case tcell.KeyRight:
		return tetris.MoveRight, false
	case tcell.KeyDown:
		return tetris.MoveDown, false
	case tcell.KeyUp:
		return tetris.Rotate, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return "", true
		case 'a':
			return tetris.MoveLeft, false
		case 'd':
			return tetris.MoveRight, false
		case 's':
			return tetris.MoveDown, false
		case 'w', 'e':
			return tetris.Rotate, false
		case ' ':
			return tetris.DropDown, false
		}
	}
	return "", false
}

// draw renders the board framed at 0,0 with the status on its right and
// the hint under it.
func (s *Screen) draw(snap *tetris.Snapshot) {
	s.screen.Clear()
	w, h := snap.Width*s.cellSize, snap.Height
	s.drawBorder(w, h)

	for y, row := range snap.Stack {
		for x, c := range row {
			if color, ok := colorMap[c]; ok {
				s.drawCell(x, y, ' ', tcell.StyleDefault.Background(color))
			}
		}
	}
	if !s.noGhost {
		for _, c := range snap.Ghost {
			if snap.Stack[c.Y][c.X] == tetris.Empty {
				s.drawCell(c.X, c.Y, '░', tcell.StyleDefault.Foreground(colorMap[c.Color]))
			}
		}
	}
	for _, c := range snap.Piece {
		s.drawCell(c.X, c.Y, ' ', tcell.StyleDefault.Background(colorMap[c.Color]))
	}

	col := w + 3
	s.drawText(col, 1, "Score", titleStyle)
	s.drawText(col, 2, strconv.Itoa(snap.Score), textStyle)
	s.drawText(col, 4, "Deaths", titleStyle)
	s.drawText(col, 5, strconv.Itoa(snap.Deaths), textStyle)
	s.drawText(col, 7, "Session", titleStyle)
	s.drawText(col, 8, shortSession(snap.Session), textStyle)
	if snap.Frozen {
		s.drawText(col, 10, "Game Over :)", titleStyle)
	}
	if snap.ShowHint {
		s.drawText(0, h+2, hint, textStyle)
	}
	s.screen.Show()
}

func (s *Screen) drawBorder(w, h int) {
	for x := 1; x <= w; x++ {
		s.screen.SetContent(x, 0, '─', nil, borderStyle)
		s.screen.SetContent(x, h+1, '─', nil, borderStyle)
	}
	for y := 1; y <= h; y++ {
		s.screen.SetContent(0, y, '│', nil, borderStyle)
		s.screen.SetContent(w+1, y, '│', nil, borderStyle)
	}
	s.screen.SetContent(0, 0, '┌', nil, borderStyle)
	s.screen.SetContent(w+1, 0, '┐', nil, borderStyle)
	s.screen.SetContent(0, h+1, '└', nil, borderStyle)
	s.screen.SetContent(w+1, h+1, '┘', nil, borderStyle)
}

// drawCell fills the board cell x,y, which is cellSize columns wide.
func (s *Screen) drawCell(x, y int, r rune, style tcell.Style) {
	for i := range s.cellSize {
		s.screen.SetContent(1+x*s.cellSize+i, 1+y, r, nil, style)
	}
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// shortSession keeps the first block of the session uuid.
func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
