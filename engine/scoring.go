package engine

import (
	"time"

	"github.com/kamstrup/intmap"
)

type scoring struct {
	points  *intmap.Map[int, int]
	base    int
	speedup time.Duration
	floor   time.Duration
}

func newScoring(cfg Config) *scoring {
	points := intmap.New[int, int](len(cfg.ScoreTable))
	for rows, pts := range cfg.ScoreTable {
		points.Put(rows, pts)
	}
	return &scoring{
		points:  points,
		base:    cfg.ScoreBase,
		speedup: cfg.FallSpeedup,
		floor:   cfg.MinFallInterval,
	}
}

// award returns the points for clearing rows lines with one lock.
func (s *scoring) award(rows int) int {
	if rows <= 0 {
		return 0
	}
	if pts, ok := s.points.Get(rows); ok {
		return pts
	}
	return rows * s.base
}

// interval returns the fall interval after clearing rows lines.
func (s *scoring) interval(current time.Duration, rows int) time.Duration {
	next := current - s.speedup*time.Duration(rows)
	if next < s.floor {
		return s.floor
	}
	return next
}
