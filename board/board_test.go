package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBoard(t *testing.T, r *rand.Rand, width, height int) board.Board {
	t.Helper()
	b, err := board.New(width, height)
	require.NoError(t, err)
	for row := 0; row < height; row++ {
		// Some rows are forced full so the clear path is exercised.
		full := r.IntN(4) == 0
		for col := 0; col < width; col++ {
			if full || r.IntN(2) == 0 {
				b = b.Fill(row, col, shape.Kinds[r.IntN(shape.Count)].Color())
			}
		}
	}
	return b
}

func TestNew(t *testing.T) {
	b, err := board.New(10, 20)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
	assert.Equal(t, 0, b.OccupiedCount())
	assert.Len(t, b.Rows(), 20)
	for _, row := range b.Rows() {
		assert.Len(t, row, 10)
	}

	for _, dims := range [][2]int{{0, 20}, {10, 0}, {-1, 5}} {
		_, err := board.New(dims[0], dims[1])
		assert.ErrorIs(t, err, board.ErrDimensions)
	}
}

func TestParse(t *testing.T) {
	b, err := board.Parse(
		"..T.",
		"#..I",
	)
	require.NoError(t, err)
	assert.Equal(t, shape.T.Color(), b.At(0, 2).Color)
	assert.Equal(t, shape.I.Color(), b.At(1, 3).Color)
	assert.Equal(t, board.DefaultColor, b.At(1, 0).Color)
	assert.False(t, b.At(0, 0).Occupied)
	assert.Equal(t, "..#.\n#..#\n", b.String())

	_, err = board.Parse("...", "..")
	assert.Error(t, err)
	_, err = board.Parse()
	assert.Error(t, err)
	assert.Panics(t, func() { board.MustParse("..", ".") })
}

func TestAtOutsideGridIsEmpty(t *testing.T) {
	b := board.MustParse("##", "##")
	assert.Equal(t, board.Cell{}, b.At(-1, 0))
	assert.Equal(t, board.Cell{}, b.At(0, 2))
	assert.Equal(t, board.Cell{}, b.At(2, 0))
	assert.Nil(t, b.Row(5))
}

func TestFillDoesNotMutateReceiver(t *testing.T) {
	b, err := board.New(4, 4)
	require.NoError(t, err)

	filled := b.Fill(1, 1, "")
	assert.False(t, b.At(1, 1).Occupied)
	assert.Equal(t, board.Cell{Occupied: true, Color: board.DefaultColor}, filled.At(1, 1))
	assert.Equal(t, filled, filled.Fill(9, 9, "#000000"))
}

func TestIsValidPlacement(t *testing.T) {
	b, err := board.New(10, 20)
	require.NoError(t, err)

	t.Run("empty board at spawn row", func(t *testing.T) {
		for _, kind := range shape.Kinds {
			for rot := 0; rot < kind.NumRotations(); rot++ {
				assert.True(t, b.IsValidPlacement(kind, rot, board.Point{Row: 0, Col: 4}), "%s/%d", kind, rot)
			}
		}
	})

	t.Run("outside walls and floor", func(t *testing.T) {
		for _, kind := range shape.Kinds {
			for rot := 0; rot < kind.NumRotations(); rot++ {
				for row := -2; row < 22; row++ {
					for col := -3; col < 13; col++ {
						pos := board.Point{Row: row, Col: col}
						outside := false
						for _, p := range board.Cells(kind, rot, pos) {
							if p.Col < 0 || p.Col >= 10 || p.Row >= 20 {
								outside = true
							}
						}
						if outside {
							assert.False(t, b.IsValidPlacement(kind, rot, pos), "%s/%d at %v", kind, rot, pos)
						}
					}
				}
			}
		}
	})

	t.Run("cells above the board never collide", func(t *testing.T) {
		top := b
		for col := 0; col < 10; col++ {
			top = top.Fill(0, col, board.DefaultColor)
		}
		// vertical I covers pivot-1 .. pivot+2
		assert.False(t, top.IsValidPlacement(shape.I, 1, board.Point{Row: -2, Col: 3}))
		assert.True(t, top.IsValidPlacement(shape.I, 1, board.Point{Row: -3, Col: 3}))
	})

	t.Run("occupied cell collides", func(t *testing.T) {
		blocked := b.Fill(1, 4, board.DefaultColor)
		assert.False(t, blocked.IsValidPlacement(shape.O, 0, board.Point{Row: 0, Col: 4}))
		assert.True(t, blocked.IsValidPlacement(shape.O, 0, board.Point{Row: 0, Col: 5}))
	})

	t.Run("zero board rejects everything", func(t *testing.T) {
		var zero board.Board
		assert.False(t, zero.IsValidPlacement(shape.O, 0, board.Point{}))
	})
}

func TestLock(t *testing.T) {
	b, err := board.New(10, 20)
	require.NoError(t, err)

	locked := b.Lock(shape.O, 0, board.Point{Row: 18, Col: 4})
	assert.Equal(t, 0, b.OccupiedCount(), "input board must not change")
	assert.Equal(t, 4, locked.OccupiedCount())
	for _, p := range []board.Point{{18, 4}, {18, 5}, {19, 4}, {19, 5}} {
		assert.Equal(t, board.Cell{Occupied: true, Color: shape.O.Color()}, locked.At(p.Row, p.Col))
	}

	t.Run("cells above the board are skipped", func(t *testing.T) {
		partial := b.Lock(shape.O, 0, board.Point{Row: -1, Col: 0})
		assert.Equal(t, 2, partial.OccupiedCount())
		assert.True(t, partial.At(0, 0).Occupied)
		assert.True(t, partial.At(0, 1).Occupied)
	})
}

func TestClearFullRows(t *testing.T) {
	b := board.MustParse(
		"......",
		"#.....",
		"######",
		".#....",
		"######",
		"..#...",
	)

	cleared, n := b.ClearFullRows()
	assert.Equal(t, 2, n)
	assert.Equal(t,
		"......\n"+
			"......\n"+
			"......\n"+
			"#.....\n"+
			".#....\n"+
			"..#...\n",
		cleared.String())
	assert.Equal(t, 6+6+1+1+1, b.OccupiedCount(), "input board must not change")

	t.Run("no full rows", func(t *testing.T) {
		b := board.MustParse("#.", ".#")
		out, n := b.ClearFullRows()
		assert.Equal(t, 0, n)
		assert.Equal(t, b, out)
	})

	t.Run("every row full", func(t *testing.T) {
		b := board.MustParse("##", "##", "##")
		out, n := b.ClearFullRows()
		assert.Equal(t, 3, n)
		assert.Equal(t, 0, out.OccupiedCount())
	})
}

func TestClearFullRowsProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		width := 1 + r.IntN(12)
		height := 1 + r.IntN(24)
		b := randomBoard(t, r, width, height)

		survivors := make([][]board.Cell, 0, height)
		for _, row := range b.Rows() {
			full := true
			for _, c := range row {
				full = full && c.Occupied
			}
			if !full {
				survivors = append(survivors, row)
			}
		}

		out, n := b.ClearFullRows()
		require.Equal(t, width, out.Width())
		require.Equal(t, height, out.Height())
		require.Len(t, out.Rows(), height)
		assert.Equal(t, height-len(survivors), n)

		rows := out.Rows()
		for row := 0; row < n; row++ {
			for _, c := range rows[row] {
				assert.Equal(t, board.Cell{}, c)
			}
		}
		assert.Equal(t, survivors, rows[n:])
	}
}
