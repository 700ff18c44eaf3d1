package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/internal/log"
	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFinishesGames(t *testing.T) {
	report := &Report{Preset: "classic", Seed: 7}
	err := run(context.Background(), engine.DefaultConfig(), 7, 3, 2, log.Discard(), report)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Games)
	assert.Positive(t, report.Locks)
	assert.Positive(t, report.Pipeline.Ticks)
	assert.Len(t, report.TickTime.Samples, int(report.Pipeline.Ticks))
	assert.LessOrEqual(t, report.Score.Min, report.Score.Max)
	assert.Positive(t, report.VirtualTime)

	spawned := 0
	for _, n := range report.Spawns {
		spawned += n
	}
	assert.GreaterOrEqual(t, spawned, report.Locks)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "**Games Finished:** 2")
	assert.Contains(t, buf.String(), "| lineClear |")
}

func TestRunStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := &Report{}
	require.NoError(t, run(ctx, engine.DefaultConfig(), 1, 0, 0, log.Discard(), report))
	assert.Zero(t, report.Games)
	assert.Zero(t, report.Pipeline.Ticks)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, ScoreStats{}, summarize(nil))
	assert.Equal(t, ScoreStats{Min: 100, Max: 900, Avg: 400}, summarize([]int{300, 100, 900, 300}))
}

func TestGenerateListsEveryKind(t *testing.T) {
	r := &Report{Spawns: map[shape.Kind]int{shape.T: 3}}
	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "T=3")
	assert.Contains(t, buf.String(), "I=0")
}
