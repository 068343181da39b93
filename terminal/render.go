package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"lollypop/tetris"
	"strings"
	"text/template"
)

const (
	// ASCII colors.
	Pink   = "38;5;205"
	Yellow = "33"

	// clearScreen also hides the cursor, showCursor brings it back.
	resetPos    = "\033[H"
	clearScreen = "\033[2J\033[H\033[?25l"
	showCursor  = "\033[?25h\r\n"
	eraseLine   = "\033[K"

	hint = "Play once more to unlock an easter egg"
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Pink:   Pink,
	tetris.Yellow: Yellow,
}

type templateData struct {
	*tetris.Snapshot
	NoGhost  bool
	CellSize int
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	noGhost  bool
	cellSize int
}

func newRender(l *slog.Logger, w io.Writer, noGhost bool, cellSize int) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if cellSize < 1 {
		cellSize = 2
	}
	return &render{
		writer:   w,
		logger:   l,
		template: tmp,
		noGhost:  noGhost,
		cellSize: cellSize,
	}, nil
}

func (r *render) clear()   { fmt.Fprint(r.writer, clearScreen) }
func (r *render) restore() { fmt.Fprint(r.writer, showCursor) }

func (r *render) frame(s *tetris.Snapshot) {
	fmt.Fprint(r.writer, resetPos)
	td := &templateData{Snapshot: s, NoGhost: r.noGhost, CellSize: r.cellSize}
	if err := r.template.Execute(r.writer, td); err != nil {
		r.logger.Error("unable to execute template in frame()", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":  stack,
		"border": border,
		"eol":    func() string { return eraseLine },
		"hint":   func() string { return hint },
		"short":  shortSession,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Score:", "\033[1mScore:\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

// stack renders every cell of the board: the locked cells, the ghost and
// the falling piece on top.
func stack(td *templateData) [][]string {
	if td == nil || td.Snapshot == nil {
		return nil
	}
	empty, filled := glyphs(td.CellSize)
	rendered := make([][]string, td.Height)
	for y := range rendered {
		rendered[y] = make([]string, td.Width)
		for x := range rendered[y] {
			rendered[y][x] = empty
			if c, ok := colorMap[td.Stack[y][x]]; ok {
				rendered[y][x] = paint(filled, c)
			}
		}
	}
	if !td.NoGhost {
		for _, c := range td.Ghost {
			if td.Stack[c.Y][c.X] == tetris.Empty {
				rendered[c.Y][c.X] = filled
			}
		}
	}
	for _, c := range td.Piece {
		rendered[c.Y][c.X] = paint(filled, colorMap[c.Color])
	}
	return rendered
}

func border(td *templateData) string {
	return strings.Repeat("-", td.Width*max(td.CellSize, 1))
}

// glyphs returns the empty and filled cell of the given width.
func glyphs(size int) (string, string) {
	switch {
	case size <= 1:
		return " ", "#"
	default:
		return strings.Repeat(" ", size), "[" + strings.Repeat(" ", size-2) + "]"
	}
}

func paint(s, color string) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm%s\x1b[0m", color, s)
}

// shortSession keeps the first block of the session uuid.
func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
