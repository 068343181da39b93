package tetris

import (
	"reflect"
	"testing"
)

// stack marks the given x, y cells of the board as locked.
func stack(b *Board, cells ...[2]int) {
	for _, c := range cells {
		b.cells[c[1]][c[0]] = Yellow
	}
}

func TestSpawn(t *testing.T) {
	tests := []struct {
		shape Shape
		wantX int
	}{
		{I, 3},
		{O, 4},
		{T, 3},
		{L, 3},
		{J, 3},
		{S, 3},
		{Z, 3},
	}
	for i, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			p := spawn(10, NewSequenceRandom(i, 1))
			if p.Shape != tt.shape {
				t.Errorf("wanted shape %v, got %v", tt.shape, p.Shape)
			}
			if p.Color != Yellow {
				t.Errorf("wanted color %v, got %v", Yellow, p.Color)
			}
			if p.X != tt.wantX || p.Y != 0 {
				t.Errorf("wanted piece at %d,0, got %d,%d", tt.wantX, p.X, p.Y)
			}
			if !p.canMove(0, 0, newBoard(10, 20)) {
				t.Errorf("wanted a new piece to fit an empty board")
			}
		})
	}
}

func TestCanMove(t *testing.T) {
	// .	0 1 2 3 4 5 6 7 8 9			0 1 2
	// 0	. . . O . . . . . .		0	O X X
	// 1	. . . O O O . . . .		1	O O O
	// 2	. . . . . C . . . .		2	X X X
	tests := []struct {
		name           string
		deltaX, deltaY int
		want           bool
	}{
		{
			name: "no collision",
			want: true,
		},
		{
			name:   "stack collision",
			deltaY: 1,
		},
		{
			name:   "left bound collision",
			deltaX: -4,
		},
		{
			name:   "left bound touching",
			deltaX: -3,
			want:   true,
		},
		{
			name:   "right bound collision",
			deltaX: 5,
		},
		{
			name:   "bottom bound collision",
			deltaY: 19,
		},
		{
			name: "above the board is allowed",
			// pieces can spawn and rotate partially out of sight.
			deltaY: -1,
			want:   true,
		},
		{
			name:   "above the board is not checked against the stack",
			deltaY: -5,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewTestGame(J)
			stack(g.board, [2]int{5, 2})

			if got := g.piece.canMove(tt.deltaX, tt.deltaY, g.board); got != tt.want {
				t.Errorf("wanted canMove to be %t, got %t", tt.want, got)
			}
		})
	}
}

func TestMoveActions(t *testing.T) {
	// Initial state of the test:
	//
	// .	Spawn Location			.	Shape
	// .	0 1 2 3 4 5 6 7 8 9		.	0 1 2
	// 0	. . . O . . . . . .		0	O X X
	// 1	. . . O O O . . . .		1	O O O
	// 2	. . . . . . . . . .		2	X X X
	tests := []struct {
		name         string
		action       Action
		updateStack  [][2]int
		setX         int
		wantMoved    bool
		wantGrid     [][]bool
		wantLocation []int // x, y
	}{
		{
			name:         "Move left unblocked",
			action:       MoveLeft,
			wantMoved:    true,
			wantLocation: []int{2, 0},
		},
		{
			name:         "Move left blocked",
			action:       MoveLeft,
			updateStack:  [][2]int{{2, 1}},
			wantLocation: []int{3, 0},
		},
		{
			name:         "Move left against the wall",
			action:       MoveLeft,
			setX:         -3,
			wantLocation: []int{0, 0},
		},
		{
			name:         "Move right unblocked",
			action:       MoveRight,
			wantMoved:    true,
			wantLocation: []int{4, 0},
		},
		{
			name:         "Move right blocked",
			action:       MoveRight,
			updateStack:  [][2]int{{6, 1}},
			wantLocation: []int{3, 0},
		},
		{
			name:         "Move down unblocked",
			action:       MoveDown,
			wantMoved:    true,
			wantLocation: []int{3, 1},
		},
		{
			name:         "Move down blocked",
			action:       MoveDown,
			updateStack:  [][2]int{{3, 2}},
			wantLocation: []int{3, 0},
		},
		{
			name:         "Drop moves down until blocked",
			action:       DropDown,
			wantMoved:    true,
			wantLocation: []int{3, 18},
		},
		{
			name:         "Drop stops on the stack",
			action:       DropDown,
			updateStack:  [][2]int{{4, 10}},
			wantMoved:    true,
			wantLocation: []int{3, 8},
		},
		{
			name:         "Rotate when unblocked",
			action:       Rotate,
			wantMoved:    true,
			wantLocation: []int{3, 0},
			wantGrid: [][]bool{
				{false, true, true},
				{false, true, false},
				{false, true, false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewTestGame(J)
			stack(g.board, tt.updateStack...)
			if tt.setX != 0 {
				g.piece.X += tt.setX
			}
			if moved := g.Apply(tt.action); moved != tt.wantMoved {
				t.Errorf("wanted Apply() to return %t, got %t", tt.wantMoved, moved)
			}
			if g.piece.X != tt.wantLocation[0] {
				t.Errorf("wanted piece's X to be %d, got %d", tt.wantLocation[0], g.piece.X)
			}
			if g.piece.Y != tt.wantLocation[1] {
				t.Errorf("wanted piece's Y to be %d, got %d", tt.wantLocation[1], g.piece.Y)
			}
			if tt.wantGrid != nil && !reflect.DeepEqual(g.piece.Grid, tt.wantGrid) {
				t.Errorf("wanted %v, got %v", tt.wantGrid, g.piece.Grid)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	t.Run("four rotations give back the original grid", func(t *testing.T) {
		for _, shape := range shapes {
			g := NewTestGame(shape)
			g.piece.Y = 5
			for range 4 {
				if !g.piece.rotate(g.board) {
					t.Fatalf("%v: wanted rotation to succeed", shape)
				}
			}
			if !reflect.DeepEqual(g.piece.Grid, shapeMap[shape]()) {
				t.Errorf("%v: wanted %v, got %v", shape, shapeMap[shape](), g.piece.Grid)
			}
		}
	})

	t.Run("two rotations keep the dimensions of I", func(t *testing.T) {
		g := NewTestGame(I)
		g.piece.Y = 5
		g.piece.rotate(g.board)
		g.piece.rotate(g.board)
		want := [][]bool{
			{false, false, false, false},
			{false, false, false, false},
			{false, false, false, false},
			{true, true, true, true},
		}
		if !reflect.DeepEqual(g.piece.Grid, want) {
			t.Errorf("wanted %v, got %v", want, g.piece.Grid)
		}
	})

	t.Run("rectangular grids swap dimensions", func(t *testing.T) {
		p := &Piece{
			Grid: [][]bool{
				{true, true, true},
				{true, false, false},
			},
			X: 0,
			Y: 5,
		}
		want := [][]bool{
			{true, true},
			{false, true},
			{false, true},
		}
		if !p.rotate(newBoard(10, 20)) {
			t.Fatal("wanted rotation to succeed")
		}
		if !reflect.DeepEqual(p.Grid, want) {
			t.Errorf("wanted %v, got %v", want, p.Grid)
		}
	})

	t.Run("rotation is reverted when blocked by the stack", func(t *testing.T) {
		// .	0 1 2 3 4 5 6 7 8 9
		// 0	. . . O O O O . . .
		// 1	. . . . . . . . . .
		// 2	. . . . . . X . . .
		g := NewTestGame(I)
		stack(g.board, [2]int{6, 2})
		if g.Apply(Rotate) {
			t.Error("wanted rotation to be rejected")
		}
		if !reflect.DeepEqual(g.piece.Grid, newI()) {
			t.Errorf("wanted grid to be unchanged, got %v", g.piece.Grid)
		}
		if g.piece.X != 3 || g.piece.Y != 0 {
			t.Errorf("wanted piece to stay at 3,0, got %d,%d", g.piece.X, g.piece.Y)
		}
	})

	t.Run("rotation is reverted when out of bounds, no wall kicks", func(t *testing.T) {
		g := NewTestGame(I)
		g.piece.Y = 5
		g.Apply(Rotate)
		// vertical I against the left wall, its cells are on column X+3.
		g.piece.X = -3
		before := g.piece.copy()
		if g.Apply(Rotate) {
			t.Error("wanted rotation to be rejected")
		}
		if !reflect.DeepEqual(g.piece, before) {
			t.Errorf("wanted %v, got %v", before, g.piece)
		}
	})
}

func TestPlacementPrecondition(t *testing.T) {
	for _, shape := range shapes {
		t.Run(string(shape), func(t *testing.T) {
			g := NewTestGame(shape)
			if !g.piece.canMove(0, 0, g.board) {
				t.Error("wanted spawned piece to fit")
			}
			g.Apply(DropDown)
			if !g.piece.canMove(0, 0, g.board) {
				t.Error("wanted dropped piece to fit")
			}
			if g.piece.canMove(0, 1, g.board) {
				t.Error("wanted dropped piece to be blocked")
			}
		})
	}
}
