package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/shape"
)

const (
	originX = 2
	originY = 1
	// Each cell is two columns wide so squares look square.
	cellWidth = 2
)

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	alertStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func colorStyle(c shape.Color) tcell.Style {
	r, g, b := c.RGB()
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func (ui *terminalUI) putCell(col, row int, style tcell.Style, ch rune) {
	x := originX + 1 + col*cellWidth
	y := originY + 1 + row
	for i := 0; i < cellWidth; i++ {
		ui.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (ui *terminalUI) text(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		ui.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (ui *terminalUI) draw(s engine.Snapshot) {
	ui.screen.Clear()
	b := s.Board
	flashing := time.Now().Before(ui.flashUntil)

	// Frame
	right := originX + 1 + b.Width()*cellWidth
	bottom := originY + 1 + b.Height()
	for y := originY; y <= bottom; y++ {
		ui.screen.SetContent(originX, y, '│', nil, frameStyle)
		ui.screen.SetContent(right, y, '│', nil, frameStyle)
	}
	for x := originX; x <= right; x++ {
		ui.screen.SetContent(x, bottom, '─', nil, frameStyle)
	}
	ui.screen.SetContent(originX, bottom, '└', nil, frameStyle)
	ui.screen.SetContent(right, bottom, '┘', nil, frameStyle)

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			cell := b.At(row, col)
			switch {
			case cell.Occupied && flashing:
				ui.putCell(col, row, tcell.StyleDefault.Background(tcell.ColorWhite), ' ')
			case cell.Occupied:
				ui.putCell(col, row, colorStyle(cell.Color), ' ')
			default:
				ui.putCell(col, row, dimStyle, '·')
			}
		}
	}

	if s.Active != nil {
		ghost := *s.Active
		ghost.Pos.Row = piece.HardDropRow(ghost, b)
		for _, p := range ghost.Cells() {
			if p.Row >= 0 {
				ui.putCell(p.Col, p.Row, dimStyle, '░')
			}
		}
		for _, p := range s.Active.Cells() {
			if p.Row >= 0 {
				ui.putCell(p.Col, p.Row, colorStyle(s.Active.Kind.Color()), ' ')
			}
		}
	}

	// Side panel
	px := right + 3
	ui.text(px, originY+1, textStyle, fmt.Sprintf("Score  %d", s.Score))
	ui.text(px, originY+2, textStyle, fmt.Sprintf("Best   %d", s.HighScore))
	ui.text(px, originY+3, textStyle, fmt.Sprintf("Lines  %d", s.Lines))
	ui.text(px, originY+4, textStyle, fmt.Sprintf("Level  %d", s.Level))
	ui.text(px, originY+5, dimStyle, fmt.Sprintf("Speed  %s", s.FallInterval))

	ui.text(px, originY+7, textStyle, "Next")
	if s.Phase != engine.Idle {
		for _, off := range s.Next.Rotation(0) {
			p := board.Point{Row: originY + 9 + off.Row, Col: px + 2 + (off.Col+1)*cellWidth}
			style := colorStyle(s.Next.Color())
			ui.screen.SetContent(p.Col, p.Row, ' ', nil, style)
			ui.screen.SetContent(p.Col+1, p.Row, ' ', nil, style)
		}
	}

	ui.text(px, originY+12, dimStyle, "← →  move")
	ui.text(px, originY+13, dimStyle, "↑/␣  rotate")
	ui.text(px, originY+14, dimStyle, "↓    drop")
	ui.text(px, originY+15, dimStyle, "R    restart")
	ui.text(px, originY+16, dimStyle, "Esc  quit")

	if ui.message != "" {
		style := textStyle
		if s.Phase == engine.GameOver {
			style = alertStyle
		}
		ui.text(originX, bottom+1, style, ui.message)
	}

	ui.screen.Show()
}
