package engine_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := engine.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.SpawnCol())

	cfg.SpawnColumn = 6
	assert.Equal(t, 6, cfg.SpawnCol())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*engine.Config)
	}{
		{"zero width", func(c *engine.Config) { c.Width = 0 }},
		{"negative height", func(c *engine.Config) { c.Height = -3 }},
		{"zero initial interval", func(c *engine.Config) { c.InitialFallInterval = 0 }},
		{"zero min interval", func(c *engine.Config) { c.MinFallInterval = 0 }},
		{"min above initial", func(c *engine.Config) { c.MinFallInterval = time.Second }},
		{"negative speedup", func(c *engine.Config) { c.FallSpeedup = -time.Millisecond }},
		{"empty score table", func(c *engine.Config) { c.ScoreTable = map[int]int{} }},
		{"zero score base", func(c *engine.Config) { c.ScoreBase = 0 }},
		{"non-increasing table", func(c *engine.Config) { c.ScoreTable = map[int]int{1: 100, 2: 100} }},
		{"zero-row key", func(c *engine.Config) { c.ScoreTable = map[int]int{0: 10, 1: 100} }},
		{"zero lines per level", func(c *engine.Config) { c.LinesPerLevel = 0 }},
		{"spawn column at wall", func(c *engine.Config) { c.SpawnColumn = 0 }},
		{"board narrower than I", func(c *engine.Config) { c.Width = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := engine.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), engine.ErrInvalidConfig)
		})
	}
}

func TestCompactBoardIsValid(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = 8, 16
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.SpawnCol())
}
