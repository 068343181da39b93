package tetris

type Shape string

const (
	I Shape = "I"
	O Shape = "O"
	T Shape = "T"
	L Shape = "L"
	J Shape = "J"
	S Shape = "S"
	Z Shape = "Z"
)

// Color is the tag a cell is rendered with. An empty Color is an empty cell.
type Color string

const (
	Empty  Color = ""
	Pink   Color = "pink"
	Yellow Color = "yellow"
)

var (
	shapes  = []Shape{I, O, T, L, J, S, Z}
	palette = []Color{Pink, Yellow}
)

var shapeMap = map[Shape]func() [][]bool{
	I: newI,
	O: newO,
	T: newT,
	L: newL,
	J: newJ,
	S: newS,
	Z: newZ,
}

type Piece struct {
	Grid  [][]bool
	X, Y  int
	Shape Shape
	Color Color
}

// spawn drafts a random shape and color and centers it on the spawn row.
func spawn(width int, r Random) *Piece {
	shape := shapes[r.IntN(len(shapes))]
	color := palette[r.IntN(len(palette))]
	grid := shapeMap[shape]()
	return &Piece{
		Grid:  grid,
		X:     (width - len(grid[0])) / 2,
		Y:     0,
		Shape: shape,
		Color: color,
	}
}

func (p *Piece) canMove(dx, dy int, b *Board) bool {
	// canMove() receives the desired offset and checks every occupied cell
	// of the piece against the board bounds and the locked cells.
	//
	// .	0 1 2 3 4 5 6 7 8 9			0 1 2
	// 0	. . . . O . . . . .		0	X O X
	// 1	. . . O O O . . . .		1	O O O
	// 2	. . . . . . . . . .		2	X X X
	//
	// rows above the board (y < 0) are only checked against the walls so
	// pieces can spawn and rotate partially out of sight.
	for iy, row := range p.Grid {
		for ix, c := range row {
			if !c {
				continue
			}
			x := p.X + ix + dx
			y := p.Y + iy + dy
			if x < 0 || x >= b.Width() || y >= b.Height() {
				return false
			}
			if y >= 0 && b.cells[y][x] != Empty {
				return false
			}
		}
	}
	return true
}

// rotate() rotates the piece clockwise. The rotation is reverted if the
// rotated grid doesn't fit where the piece is. There are no wall kicks.
func (p *Piece) rotate(b *Board) bool {
	rows := len(p.Grid)
	cols := len(p.Grid[0])
	rotated := make([][]bool, cols)
	for i := range rotated {
		rotated[i] = make([]bool, rows)
	}
	for y := range rows {
		for x := range cols {
			rotated[x][rows-1-y] = p.Grid[y][x]
		}
	}

	old := p.Grid
	p.Grid = rotated
	if !p.canMove(0, 0, b) {
		p.Grid = old
		return false
	}
	return true
}

// dropDelta returns how many rows the piece can fall before it's blocked.
func (p *Piece) dropDelta(b *Board) int {
	var d int
	for p.canMove(0, d+1, b) {
		d++
	}
	return d
}

// cells returns the board coordinates covered by the piece.
func (p *Piece) cells() []Cell {
	var out []Cell
	for iy, row := range p.Grid {
		for ix, c := range row {
			if c {
				out = append(out, Cell{X: p.X + ix, Y: p.Y + iy, Color: p.Color})
			}
		}
	}
	return out
}

func (p *Piece) copy() *Piece {
	if p == nil {
		return nil
	}
	grid := make([][]bool, len(p.Grid))
	for i := range p.Grid {
		grid[i] = make([]bool, len(p.Grid[i]))
		copy(grid[i], p.Grid[i])
	}
	return &Piece{
		Grid:  grid,
		X:     p.X,
		Y:     p.Y,
		Shape: p.Shape,
		Color: p.Color,
	}
}

/*
.	Spawn Location			.	Shape

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2 3

0	. . . O O O O . . .		0	O O O O

1	. . . . . . . . . .		1	X X X X

2	. . . . . . . . . .		2	X X X X

3	. . . . . . . . . .		3	X X X X
*/
func newI() [][]bool {
	return [][]bool{
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
	}
}

/*
.	Spawn Location			.	Shape

.	0 1 2 3 4 5 6 7 8 9		.	0 1

0	. . . . O O . . . .		0	O O

1	. . . . O O . . . .		1	O O
*/
func newO() [][]bool {
	return [][]bool{
		{true, true},
		{true, true},
	}
}

/*
.	Spawn Location			.	Shape

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2

0	. . . . O . . . . .		0	X O X

1	. . . O O O . . . .		1	O O O

2	. . . . . . . . . .		2	X X X
*/
func newT() [][]bool {
	return [][]bool{
		{false, true, false},
		{true, true, true},
		{false, false, false},
	}
}

/*
.	Spawn Location			.	Shape

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2

0	. . . . . O . . . .		0	X X O

1	. . . O O O . . . .		1	O O O

2	. . . . . . . . . .		2	X X X
*/
func newL() [][]bool {
	return [][]bool{
		{false, false, true},
		{true, true, true},
		{false, false, false},
	}
}

/*
.	Spawn Location			.	Shape

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2

0	. . . O . . . . . .		0	O X X

1	. . . O O O . . . .		1	O O O

2	. . . . . . . . . .		2	X X X
*/
func newJ() [][]bool {
	return [][]bool{
		{true, false, false},
		{true, true, true},
		{false, false, false},
	}
}

/*
.	Spawn Location			.	Shape

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2

0	. . . . O O . . . .		0	X O O

1	. . . O O . . . . .		1	O O X

2	. . . . . . . . . .		2	X X X
*/
func newS() [][]bool {
	return [][]bool{
		{false, true, true},
		{true, true, false},
		{false, false, false},
	}
}

/*
.	Spawn Location			.	Shape

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2

0	. . . O O . . . . .		0	O O X

1	. . . . O O . . . .		1	X O O

2	. . . . . . . . . .		2	X X X
*/
func newZ() [][]bool {
	return [][]bool{
		{true, true, false},
		{false, true, true},
		{false, false, false},
	}
}
