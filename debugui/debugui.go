// Package debugui provides a Dear ImGui inspector for a running engine:
// live state, a board minimap, tick pipeline timings and spawn counts.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Front ends should not forward keys to the engine while WantCaptureKeyboard
// is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Inspector renders its windows once per frame between the backend's
// BeginFrame and EndFrame.
type Inspector struct {
	engine *engine.Engine
	input  InputState

	perf   *PerformanceStats
	timer  *FrameTimer
	hidden bool
}

func NewInspector(e *engine.Engine, historyFrames int) *Inspector {
	return &Inspector{
		engine: e,
		perf:   NewPerformanceStats(historyFrames),
		timer:  NewFrameTimer(),
	}
}

// Input returns the capture state sampled during the last Render.
func (in *Inspector) Input() InputState {
	return in.input
}

// Toggle shows or hides every inspector window.
func (in *Inspector) Toggle() {
	in.hidden = !in.hidden
}

func (in *Inspector) Render() {
	io := imgui.CurrentIO()
	in.input.WantCaptureMouse = io.WantCaptureMouse()
	in.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	dt := in.timer.GetDeltaTime()
	if in.hidden {
		return
	}

	snap := in.engine.Snapshot()
	renderState(in.engine, snap)
	renderBoard(snap)
	in.perf.Render(in.engine, dt)
	renderSpawns(in.engine.SpawnCounts())
}

// FrameTimer measures wall time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
