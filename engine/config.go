package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/shape"
)

// ErrInvalidConfig is wrapped by every error New returns for a bad Config.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config holds the tunable engine parameters.
type Config struct {
	Width  int
	Height int

	InitialFallInterval time.Duration
	MinFallInterval     time.Duration
	// FallSpeedup is subtracted from the fall interval once per cleared line.
	FallSpeedup time.Duration

	// ScoreTable maps rows cleared by one lock to points awarded.
	// Counts missing from the table score ScoreBase per row.
	ScoreTable map[int]int
	ScoreBase  int

	// SpawnColumn is the pivot column of new pieces. Negative centres the
	// pivot at (Width-1)/2.
	SpawnColumn int

	LinesPerLevel int
}

// DefaultConfig is the 10x20 classic layout.
func DefaultConfig() Config {
	return Config{
		Width:               10,
		Height:              20,
		InitialFallInterval: 550 * time.Millisecond,
		MinFallInterval:     100 * time.Millisecond,
		FallSpeedup:         20 * time.Millisecond,
		ScoreTable:          map[int]int{1: 100, 2: 300, 3: 500, 4: 800},
		ScoreBase:           100,
		SpawnColumn:         -1,
		LinesPerLevel:       10,
	}
}

// SpawnCol resolves SpawnColumn against the board width.
func (c Config) SpawnCol() int {
	if c.SpawnColumn < 0 {
		return (c.Width - 1) / 2
	}
	return c.SpawnColumn
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Validate reports the first problem that would leave the engine with
// undefined geometry or scoring.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("board must be at least 1x1, got %dx%d", c.Width, c.Height)
	}
	if c.InitialFallInterval <= 0 || c.MinFallInterval <= 0 {
		return invalid("fall intervals must be positive, got initial=%s min=%s", c.InitialFallInterval, c.MinFallInterval)
	}
	if c.MinFallInterval > c.InitialFallInterval {
		return invalid("min fall interval %s exceeds initial %s", c.MinFallInterval, c.InitialFallInterval)
	}
	if c.FallSpeedup < 0 {
		return invalid("fall speedup must not be negative, got %s", c.FallSpeedup)
	}
	if len(c.ScoreTable) == 0 {
		return invalid("score table is empty")
	}
	if c.ScoreBase <= 0 {
		return invalid("score base must be positive, got %d", c.ScoreBase)
	}
	prev := 0
	for _, rows := range slices.Sorted(maps.Keys(c.ScoreTable)) {
		points := c.ScoreTable[rows]
		if rows < 1 {
			return invalid("score table key %d must be at least 1", rows)
		}
		if points <= prev {
			return invalid("score table must strictly increase, %d rows scores %d", rows, points)
		}
		prev = points
	}
	if c.LinesPerLevel <= 0 {
		return invalid("lines per level must be positive, got %d", c.LinesPerLevel)
	}

	col := c.SpawnCol()
	for _, kind := range shape.Kinds {
		for _, p := range board.Cells(kind, 0, board.Point{Col: col}) {
			if p.Col < 0 || p.Col >= c.Width {
				return invalid("spawn column %d puts %s outside a %d-wide board", col, kind, c.Width)
			}
		}
	}
	return nil
}
