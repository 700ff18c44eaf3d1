package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

// PerformanceStats shows frame times and per-stage timings of the descent tick.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) Render(e *engine.Engine, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/max(avgFrameTime, 0.001)))
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	stats := e.Stats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Ticks: %d  Stage runs: %d", stats.Ticks, stats.TotalExecutions))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("StageStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Stage")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableSetupColumn("Last")
		imgui.TableHeadersRow()

		for _, st := range stats.Stages {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(st.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", st.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(st.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(st.MaxDuration.String())
			imgui.TableNextColumn()
			imgui.Text(st.LastDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
