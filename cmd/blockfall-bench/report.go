package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/shape"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Preset   string
	Seed     uint64

	// Results
	Games       int
	Locks       int
	Clears      [4]int
	TotalLines  int
	Score       ScoreStats
	TotalTime   time.Duration
	VirtualTime time.Duration
	TickTime    Stats
	Pipeline    engine.PipelineStats
	Spawns      map[shape.Kind]int

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// ScoreStats summarizes final scores across finished games.
type ScoreStats struct {
	Min, Max, Avg int
}

func summarize(scores []int) ScoreStats {
	if len(scores) == 0 {
		return ScoreStats{}
	}
	s := ScoreStats{Min: scores[0], Max: scores[0]}
	total := 0
	for _, v := range scores {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		total += v
	}
	s.Avg = total / len(scores)
	return s
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Engine Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Preset:** {{.Preset}}
- **Seed:** {{.Seed}}

## Play
- **Games Finished:** {{.Games}}
- **Pieces Locked:** {{.Locks}}
- **Lines Cleared:** {{.TotalLines}} (singles {{index .Clears 0}}, doubles {{index .Clears 1}}, triples {{index .Clears 2}}, quads {{index .Clears 3}})
- **Final Score:** avg {{.Score.Avg}}, min {{.Score.Min}}, max {{.Score.Max}}
- **Spawns:**{{range $k := kinds}} {{$k}}={{index $.Spawns $k}}{{end}}

## Performance Results
- **Ticks:** {{.Pipeline.Ticks}} ({{.Pipeline.TotalExecutions}} stage runs)
- **Wall Time:** {{.TotalTime}}
- **Virtual Time:** {{.VirtualTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

| Stage | Runs | Avg | Min | Max |
|-------|------|-----|-----|-----|
{{- range .Pipeline.Stages}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"kinds": func() []shape.Kind {
			return shape.Kinds[:]
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
