// Package board implements the playfield grid. A Board is an immutable value:
// every operation that changes cells returns a new Board and leaves the
// receiver untouched, so snapshots can share boards freely.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plus3/blockfall/shape"
)

// DefaultColor fills cells that are occupied without a piece color, such as
// garbage rows built by Parse.
const DefaultColor shape.Color = "#808080"

// ErrDimensions is returned when a board is built with a non-positive size.
var ErrDimensions = errors.New("board dimensions must be positive")

// Point is an absolute (row, col) on the board. Row 0 is the top row.
type Point struct {
	Row, Col int
}

// Add offsets p by o.
func (p Point) Add(o shape.Offset) Point {
	return Point{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// Cell is one grid square. Color is non-empty iff Occupied.
type Cell struct {
	Occupied bool
	Color    shape.Color
}

// Board is a fixed Width x Height grid stored row-major.
type Board struct {
	width, height int
	cells         []Cell
}

// New returns an empty board.
func New(width, height int) (Board, error) {
	if width <= 0 || height <= 0 {
		return Board{}, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	return Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// Parse builds a board from text rows, top row first. '.' is empty, a piece
// letter (I, O, T, S, Z, J, L) takes that piece's color, and any other rune
// is occupied with DefaultColor. All rows must have the same width.
func Parse(rows ...string) (Board, error) {
	if len(rows) == 0 {
		return Board{}, fmt.Errorf("%w: no rows", ErrDimensions)
	}
	width := len(rows[0])
	b, err := New(width, len(rows))
	if err != nil {
		return Board{}, err
	}
	for r, line := range rows {
		if len(line) != width {
			return Board{}, fmt.Errorf("row %d has width %d, want %d", r, len(line), width)
		}
		for c := 0; c < width; c++ {
			ch := line[c]
			if ch == '.' {
				continue
			}
			color := DefaultColor
			if kind, err := shape.ParseKind(string(ch)); err == nil {
				color = kind.Color()
			}
			b.cells[r*width+c] = Cell{Occupied: true, Color: color}
		}
	}
	return b, nil
}

// MustParse is Parse that panics on malformed input. Intended for tests and
// fixed fixtures.
func MustParse(rows ...string) Board {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

func (b Board) inside(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// At returns the cell at (row, col). Coordinates outside the grid read as empty.
func (b Board) At(row, col int) Cell {
	if !b.inside(row, col) {
		return Cell{}
	}
	return b.cells[row*b.width+col]
}

// Row returns a copy of one row.
func (b Board) Row(row int) []Cell {
	if row < 0 || row >= b.height {
		return nil
	}
	out := make([]Cell, b.width)
	copy(out, b.cells[row*b.width:(row+1)*b.width])
	return out
}

// Rows returns a copy of the grid as a slice of rows.
func (b Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for r := range out {
		out[r] = b.Row(r)
	}
	return out
}

// OccupiedCount returns the number of occupied cells.
func (b Board) OccupiedCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Occupied {
			n++
		}
	}
	return n
}

func (b Board) clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{width: b.width, height: b.height, cells: cells}
}

// Fill returns a copy of b with (row, col) occupied by color. Points outside
// the grid are ignored.
func (b Board) Fill(row, col int, color shape.Color) Board {
	if !b.inside(row, col) {
		return b
	}
	if color == "" {
		color = DefaultColor
	}
	out := b.clone()
	out.cells[row*b.width+col] = Cell{Occupied: true, Color: color}
	return out
}

// Cells returns the four absolute points covered by kind in the given
// rotation with its pivot at pos.
func Cells(kind shape.Kind, rotation int, pos Point) [4]Point {
	var pts [4]Point
	for i, off := range kind.Rotation(rotation) {
		pts[i] = pos.Add(off)
	}
	return pts
}

// IsValidPlacement reports whether kind fits at pos. Cells left of, right of
// or below the grid collide; cells above row 0 never do, which lets pieces
// spawn partially off the top.
func (b Board) IsValidPlacement(kind shape.Kind, rotation int, pos Point) bool {
	for _, p := range Cells(kind, rotation, pos) {
		if p.Col < 0 || p.Col >= b.width || p.Row >= b.height {
			return false
		}
		if p.Row >= 0 && b.cells[p.Row*b.width+p.Col].Occupied {
			return false
		}
	}
	return true
}

// Lock returns a copy of b with the piece's cells occupied by its color.
// Cells above the grid are dropped.
func (b Board) Lock(kind shape.Kind, rotation int, pos Point) Board {
	out := b.clone()
	color := kind.Color()
	for _, p := range Cells(kind, rotation, pos) {
		if !out.inside(p.Row, p.Col) {
			continue
		}
		out.cells[p.Row*out.width+p.Col] = Cell{Occupied: true, Color: color}
	}
	return out
}

func (b Board) rowFull(row int) bool {
	for _, c := range b.cells[row*b.width : (row+1)*b.width] {
		if !c.Occupied {
			return false
		}
	}
	return true
}

// ClearFullRows removes every fully occupied row, shifts the rows above it
// down and inserts the same number of empty rows at the top. Surviving rows
// keep their relative order.
func (b Board) ClearFullRows() (Board, int) {
	out := Board{width: b.width, height: b.height, cells: make([]Cell, len(b.cells))}

	// Walk bottom-up, copying survivors into the lowest free destination row.
	dst := b.height - 1
	for src := b.height - 1; src >= 0; src-- {
		if b.rowFull(src) {
			continue
		}
		copy(out.cells[dst*b.width:(dst+1)*b.width], b.cells[src*b.width:(src+1)*b.width])
		dst--
	}
	return out, dst + 1
}

// String renders the board with '.' for empty cells and '#' for occupied ones.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			if b.cells[r*b.width+c].Occupied {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
