package tetris

// Board is the playfield.
// Columns are 0 > width-1 left to right and represent the X axis.
// Rows are 0 > height-1 top to bottom and represent the Y axis, row 0 being the spawn row.
type Board struct {
	cells [][]Color
}

func newBoard(width, height int) *Board {
	b := &Board{cells: make([][]Color, height)}
	for i := range b.cells {
		b.cells[i] = make([]Color, width)
	}
	return b
}

func (b *Board) Width() int  { return len(b.cells[0]) }
func (b *Board) Height() int { return len(b.cells) }

// Cell returns the color of the cell at x, y. Cells outside the board are empty.
func (b *Board) Cell(x, y int) Color {
	if x < 0 || y < 0 || y >= b.Height() || x >= b.Width() {
		return Empty
	}
	return b.cells[y][x]
}

// place() transfers the piece to the board. It doesn't check for collisions,
// the piece must have been validated with canMove() before.
func (b *Board) place(p *Piece) {
	for _, c := range p.cells() {
		// cells above or below the board are dropped.
		if c.Y < 0 || c.Y >= b.Height() {
			continue
		}
		if !invariant(c.X >= 0 && c.X < b.Width(), "placed cell %d,%d outside of the board", c.X, c.Y) {
			continue
		}
		b.cells[c.Y][c.X] = c.Color
	}
}

// clearFullRows() removes every complete row and returns how many were removed.
func (b *Board) clearFullRows() int {
	var cleared int
	// the same index is checked again after a removal since the row
	// above has been shifted into it.
	for y := b.Height() - 1; y >= 0; {
		if !b.isFull(y) {
			y--
			continue
		}
		copy(b.cells[1:y+1], b.cells[:y])
		b.cells[0] = make([]Color, b.Width())
		cleared++
	}
	return cleared
}

func (b *Board) isFull(y int) bool {
	for _, c := range b.cells[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// spawnRowBlocked() is the game over check.
func (b *Board) spawnRowBlocked() bool {
	for _, c := range b.cells[0] {
		if c != Empty {
			return true
		}
	}
	return false
}

func (b *Board) reset() {
	for y := range b.cells {
		b.cells[y] = make([]Color, b.Width())
	}
}

// rows returns a copy of the board cells that's safe to read concurrently.
func (b *Board) rows() [][]Color {
	out := make([][]Color, len(b.cells))
	for i := range b.cells {
		out[i] = make([]Color, len(b.cells[i]))
		copy(out[i], b.cells[i])
	}
	return out
}
