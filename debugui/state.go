package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/shape"
)

const minimapCell = 8

func renderState(e *engine.Engine, s engine.Snapshot) {
	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Phase: %s", s.Phase))
	imgui.Text(fmt.Sprintf("Score: %d (best %d)", s.Score, s.HighScore))
	imgui.Text(fmt.Sprintf("Lines: %d  Level: %d", s.Lines, s.Level))
	imgui.Text(fmt.Sprintf("Fall interval: %s", s.FallInterval))
	imgui.Text(fmt.Sprintf("Next: %s", s.Next))
	if s.Active != nil {
		imgui.Text(fmt.Sprintf("Active: %s", *s.Active))
	} else {
		imgui.Text("Active: none")
	}

	imgui.Separator()
	if imgui.Button("Restart") {
		e.StartOrRestart()
	}
	imgui.SameLine()
	if imgui.Button("Stop") {
		e.Stop()
	}

	cfg := e.Config()
	if imgui.TreeNodeStr("Config") {
		imgui.BulletText(fmt.Sprintf("Board: %dx%d, spawn column %d", cfg.Width, cfg.Height, cfg.SpawnCol()))
		imgui.BulletText(fmt.Sprintf("Interval: %s, floor %s, -%s per line", cfg.InitialFallInterval, cfg.MinFallInterval, cfg.FallSpeedup))
		for rows := 1; rows <= 4; rows++ {
			if pts, ok := cfg.ScoreTable[rows]; ok {
				imgui.BulletText(fmt.Sprintf("%d rows: %d", rows, pts))
			}
		}
		imgui.BulletText(fmt.Sprintf("Fallback: %d per row", cfg.ScoreBase))
		imgui.TreePop()
	}

	imgui.End()
}

func colorVec(c shape.Color) imgui.Vec4 {
	r, g, b := c.RGB()
	return imgui.NewVec4(float32(r)/255, float32(g)/255, float32(b)/255, 1)
}

// renderBoard draws a minimap of the board with the active piece overlaid.
func renderBoard(s engine.Snapshot) {
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	b := s.Board
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	empty := imgui.ColorU32Vec4(imgui.NewVec4(0.15, 0.15, 0.18, 1))

	fill := func(row, col int, color uint32) {
		x := origin.X + float32(col*minimapCell)
		y := origin.Y + float32(row*minimapCell)
		drawList.AddRectFilled(imgui.NewVec2(x, y), imgui.NewVec2(x+minimapCell-1, y+minimapCell-1), color)
	}

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			cell := b.At(row, col)
			if cell.Occupied {
				fill(row, col, imgui.ColorU32Vec4(colorVec(cell.Color)))
			} else {
				fill(row, col, empty)
			}
		}
	}
	if s.Active != nil {
		color := imgui.ColorU32Vec4(colorVec(s.Active.Kind.Color()))
		for _, p := range s.Active.Cells() {
			if p.Row >= 0 {
				fill(p.Row, p.Col, color)
			}
		}
	}

	// Reserve the space the draw list used.
	imgui.Dummy(imgui.NewVec2(float32(b.Width()*minimapCell), float32(b.Height()*minimapCell)))
	imgui.End()
}

func renderSpawns(counts map[shape.Kind]int) {
	if !imgui.BeginV("Spawns", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	total := 0
	maxCount := 1
	for _, n := range counts {
		total += n
		maxCount = max(maxCount, n)
	}
	imgui.Text(fmt.Sprintf("Total pieces: %d", total))

	const barWidth = 120
	for _, k := range shape.Kinds {
		n := counts[k]
		imgui.Text(fmt.Sprintf("%s %5d", k, n))
		imgui.SameLine()
		drawList := imgui.WindowDrawList()
		pos := imgui.CursorScreenPos()
		w := float32(barWidth * n / maxCount)
		drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+w, pos.Y+10), imgui.ColorU32Vec4(colorVec(k.Color())))
		imgui.NewLine()
	}

	imgui.End()
}
