package engine

import (
	"reflect"
	"strings"
	"time"

	"github.com/plus3/blockfall/piece"
)

// PipelineStats summarizes how the descent tick has spent its time.
type PipelineStats struct {
	StageCount      int
	Ticks           int64
	TotalExecutions int64
	Stages          []StageStats
}

// StageStats provides execution statistics for a single tick stage.
type StageStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stageStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// tickFrame carries one descent tick through the stages.
type tickFrame struct {
	engine   *Engine
	commands *commands

	spawned bool
	landed  bool
	locked  *piece.Piece
	cleared int
}

type stage interface {
	execute(f *tickFrame)
}

// pipeline runs its stages in registration order once per tick.
type pipeline struct {
	stages []stage
	stats  []*stageStatsInternal
	ticks  int64
}

func newPipeline(stages ...stage) *pipeline {
	p := &pipeline{}
	for _, s := range stages {
		p.register(s)
	}
	return p
}

func (p *pipeline) register(s stage) {
	p.stages = append(p.stages, s)

	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := strings.TrimSuffix(t.Name(), "Stage")

	p.stats = append(p.stats, &stageStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (p *pipeline) run(f *tickFrame) {
	p.ticks++
	for i, s := range p.stages {
		start := time.Now()
		s.execute(f)
		duration := time.Since(start)

		stats := p.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

func (p *pipeline) snapshot() PipelineStats {
	stats := PipelineStats{
		StageCount: len(p.stages),
		Ticks:      p.ticks,
		Stages:     make([]StageStats, len(p.stats)),
	}

	var totalExecs int64
	for i, internal := range p.stats {
		avg := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Stages[i] = StageStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

// spawnStage brings the queued kind into play when no piece is falling.
type spawnStage struct{}

func (spawnStage) execute(f *tickFrame) {
	e := f.engine
	if e.active != nil {
		return
	}
	e.spawn(f.commands)
	f.spawned = true
}

// gravityStage moves the piece down one row, or marks it as landed.
type gravityStage struct{}

func (gravityStage) execute(f *tickFrame) {
	e := f.engine
	if f.spawned || e.active == nil {
		return
	}
	next, ok := piece.TrySoftDrop(*e.active, e.board)
	if ok {
		e.active = &next
		return
	}
	f.landed = true
}

// lockStage merges a landed piece into the board.
type lockStage struct{}

func (lockStage) execute(f *tickFrame) {
	e := f.engine
	if !f.landed {
		return
	}
	locked := *e.active
	e.board = locked.LockInto(e.board)
	e.active = nil
	f.locked = &locked
}

// lineClearStage removes completed rows after a lock.
type lineClearStage struct{}

func (lineClearStage) execute(f *tickFrame) {
	if f.locked == nil {
		return
	}
	e := f.engine
	e.board, f.cleared = e.board.ClearFullRows()
}

// scoringStage updates score, lines and speed, and reports the lock.
type scoringStage struct{}

func (scoringStage) execute(f *tickFrame) {
	if f.locked == nil {
		return
	}
	e := f.engine
	if f.cleared > 0 {
		e.score += e.scoring.award(f.cleared)
		e.lines += f.cleared
		e.fallInterval = e.scoring.interval(e.fallInterval, f.cleared)
		e.recordHighScore(f.commands)
	}

	e.logger.Infof("locked %s, cleared=%d score=%d lines=%d interval=%s",
		f.locked, f.cleared, e.score, e.lines, e.fallInterval)

	f.commands.Lock(LockEvent{
		Piece:        *f.locked,
		Cleared:      f.cleared,
		Score:        e.score,
		Lines:        e.lines,
		FallInterval: e.fallInterval,
	})
}
