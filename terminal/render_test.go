package terminal

import (
	"log/slog"
	"lollypop/tetris"
	"reflect"
	"strings"
	"testing"
)

func emptyStack(w, h int, cell string) [][]string {
	want := make([][]string, h)
	for y := range want {
		want[y] = make([]string, w)
		for x := range want[y] {
			want[y][x] = cell
		}
	}
	return want
}

func TestStack(t *testing.T) {
	g := tetris.NewTestGame(tetris.J)
	td := &templateData{Snapshot: g.Read(), CellSize: 2}

	want := emptyStack(10, 20, "  ")
	pinkCell := "\x1b[7m\x1b[38;5;205m[]\x1b[0m"
	want[0][3] = pinkCell
	want[1][3] = pinkCell
	want[1][4] = pinkCell
	want[1][5] = pinkCell
	want[18][3] = "[]"
	want[19][3] = "[]"
	want[19][4] = "[]"
	want[19][5] = "[]"
	got := stack(td)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}

	t.Run("no ghost", func(t *testing.T) {
		td := &templateData{Snapshot: g.Read(), CellSize: 2, NoGhost: true}
		got := stack(td)
		if got[19][3] != "  " {
			t.Errorf("wanted no ghost, got %q", got[19][3])
		}
	})

	t.Run("locked cells use their color", func(t *testing.T) {
		s := g.Read()
		s.Stack[19][0] = tetris.Yellow
		got := stack(&templateData{Snapshot: s, CellSize: 2})
		if want := "\x1b[7m\x1b[33m[]\x1b[0m"; got[19][0] != want {
			t.Errorf("want %q, got %q", want, got[19][0])
		}
	})

	t.Run("nil snapshot renders nothing", func(t *testing.T) {
		if got := stack(&templateData{}); got != nil {
			t.Errorf("want nil, got %v", got)
		}
	})
}

func TestGlyphs(t *testing.T) {
	tests := []struct {
		size          int
		empty, filled string
	}{
		{0, " ", "#"},
		{1, " ", "#"},
		{2, "  ", "[]"},
		{4, "    ", "[  ]"},
	}
	for _, tt := range tests {
		empty, filled := glyphs(tt.size)
		if empty != tt.empty || filled != tt.filled {
			t.Errorf("size %d: want %q %q, got %q %q", tt.size, tt.empty, tt.filled, empty, filled)
		}
	}
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name     string
		snapshot func() *tetris.Snapshot
		contains []string
		excludes []string
	}{
		{
			name:     "playing",
			snapshot: func() *tetris.Snapshot { return tetris.NewTestGame(tetris.T).Read() },
			contains: []string{"+--------------------+\r\n", "Deaths: 0", "Session: "},
			excludes: []string{hint, "Game Over"},
		},
		{
			name: "first game over shows the hint",
			snapshot: func() *tetris.Snapshot {
				s := tetris.NewTestGame(tetris.T).Read()
				s.Frozen, s.Deaths, s.ShowHint = true, 1, true
				return s
			},
			contains: []string{hint, "Game Over", "Deaths: 1"},
		},
		{
			name: "second game over doesn't",
			snapshot: func() *tetris.Snapshot {
				s := tetris.NewTestGame(tetris.T).Read()
				s.Frozen, s.Deaths = true, 2
				return s
			},
			contains: []string{"Game Over", "Deaths: 2"},
			excludes: []string{hint},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &strings.Builder{}
			r, err := newRender(slog.Default(), w, false, 2)
			if err != nil {
				t.Fatalf("unable to create render: %v", err)
			}
			r.frame(tt.snapshot())
			out := w.String()
			if !strings.HasPrefix(out, resetPos) {
				t.Errorf("wanted the frame to start at 0,0, got %q", out[:10])
			}
			// 22 lines of board and 2 of status.
			if n := strings.Count(out, "\r\n"); n != 24 {
				t.Errorf("wanted 24 lines, got %d", n)
			}
			for _, c := range tt.contains {
				if !strings.Contains(out, c) {
					t.Errorf("wanted %q in the frame", c)
				}
			}
			for _, c := range tt.excludes {
				if strings.Contains(out, c) {
					t.Errorf("wanted no %q in the frame", c)
				}
			}
		})
	}
}

func TestLoadTemplateTwice(t *testing.T) {
	for range 2 {
		tmp, err := loadTemplate()
		if err != nil {
			t.Fatalf("unable to load template: %v", err)
		}
		w := &strings.Builder{}
		td := &templateData{Snapshot: tetris.NewTestGame(tetris.O).Read(), CellSize: 2}
		if err := tmp.Execute(w, td); err != nil {
			t.Fatalf("unable to execute template: %v", err)
		}
		if strings.Contains(w.String(), "\r\r\n") {
			t.Error("wanted a single carriage return per line")
		}
	}
}

func TestShortSession(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"9b2f6c1e-4d3a-4f1b-8c2d-0e5a7b9c1d3f", "9b2f6c1e"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortSession(tt.id); got != tt.want {
			t.Errorf("want %q, got %q", tt.want, got)
		}
	}
}
