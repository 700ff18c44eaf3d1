package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/shape"
)

const (
	windowWidth   = 1280
	windowHeight  = 720
	cellSize      = 28
	boardLeft     = 40
	boardTop      = 40
	flashDuration = 350 * time.Millisecond

	// Held movement keys repeat after repeatDelay frames, every repeatEvery frames.
	repeatDelay = 12
	repeatEvery = 3
)

var (
	errQuit        = errors.New("quit")
	backgroundGrey = color.RGBA{0x1a, 0x1a, 0x1f, 0xff}
	emptyGrey      = color.RGBA{0x26, 0x26, 0x2e, 0xff}
	ghostGrey      = color.RGBA{0x55, 0x55, 0x5e, 0xff}
	flashWhite     = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

type game struct {
	engine    *engine.Engine
	backend   *debugui_ebiten.ImguiBackend
	inspector *debugui.Inspector

	width, height int

	// Engine callbacks run on the timer goroutine; Update drains these.
	locks  chan engine.LockEvent
	phases chan engine.Phase

	flashUntil time.Time
	message    string
}

func newGame(cfg engine.Config) *game {
	return &game{
		width:   cfg.Width,
		height:  cfg.Height,
		locks:   make(chan engine.LockEvent, 16),
		phases:  make(chan engine.Phase, 4),
		message: "Press Enter to start",
	}
}

func (g *game) onLock(ev engine.LockEvent) {
	select {
	case g.locks <- ev:
	default:
	}
}

func (g *game) onPhase(p engine.Phase) {
	select {
	case g.phases <- p:
	default:
	}
}

func (g *game) drainEvents(now time.Time) {
	for {
		select {
		case ev := <-g.locks:
			if ev.Cleared > 0 {
				g.flashUntil = now.Add(flashDuration)
			}
		case p := <-g.phases:
			switch p {
			case engine.GameOver:
				g.message = "Game Over! Press Enter to restart"
			case engine.Playing:
				g.message = ""
			case engine.Idle:
				g.message = "Press Enter to start"
			}
		default:
			return
		}
	}
}

func (g *game) Update() error {
	g.backend.BeginFrame()
	defer g.backend.EndFrame()

	g.drainEvents(time.Now())
	g.inspector.Render()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.inspector.Toggle()
	}
	if g.inspector.Input().WantCaptureKeyboard {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	cmds, restart := mapKeys(g.engine.Snapshot().Phase, keyTriggered)
	if restart {
		g.engine.StartOrRestart()
	}
	for _, cmd := range cmds {
		g.engine.HandleCommand(cmd)
	}
	return nil
}

// keyTriggered reports a fresh press, or a held key on its repeat frame.
func keyTriggered(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

// mapKeys turns this frame's input into engine commands. Restart is only
// offered when no game is in progress.
func mapKeys(phase engine.Phase, triggered func(ebiten.Key) bool) ([]engine.Command, bool) {
	if phase != engine.Playing {
		return nil, triggered(ebiten.KeyEnter) || triggered(ebiten.KeyR)
	}

	var cmds []engine.Command
	if triggered(ebiten.KeyArrowLeft) {
		cmds = append(cmds, engine.MoveLeft)
	}
	if triggered(ebiten.KeyArrowRight) {
		cmds = append(cmds, engine.MoveRight)
	}
	if triggered(ebiten.KeyArrowDown) {
		cmds = append(cmds, engine.SoftDrop)
	}
	if triggered(ebiten.KeyArrowUp) || triggered(ebiten.KeySpace) {
		cmds = append(cmds, engine.Rotate)
	}
	return cmds, false
}

func shapeColor(c shape.Color) color.RGBA {
	r, gr, b := c.RGB()
	return color.RGBA{r, gr, b, 0xff}
}

func drawCell(screen *ebiten.Image, row, col int, clr color.Color) {
	x := float32(boardLeft + col*cellSize)
	y := float32(boardTop + row*cellSize)
	vector.DrawFilledRect(screen, x+1, y+1, cellSize-2, cellSize-2, clr, false)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundGrey)
	s := g.engine.Snapshot()
	flashing := time.Now().Before(g.flashUntil)

	for row := 0; row < s.Board.Height(); row++ {
		for col := 0; col < s.Board.Width(); col++ {
			cell := s.Board.At(row, col)
			switch {
			case !cell.Occupied:
				drawCell(screen, row, col, emptyGrey)
			case flashing:
				drawCell(screen, row, col, flashWhite)
			default:
				drawCell(screen, row, col, shapeColor(cell.Color))
			}
		}
	}

	if s.Active != nil {
		ghost := *s.Active
		ghost.Pos.Row = piece.HardDropRow(ghost, s.Board)
		for _, p := range ghost.Cells() {
			if p.Row >= 0 {
				drawCell(screen, p.Row, p.Col, ghostGrey)
			}
		}
		clr := shapeColor(s.Active.Kind.Color())
		for _, p := range s.Active.Cells() {
			if p.Row >= 0 {
				drawCell(screen, p.Row, p.Col, clr)
			}
		}
	}

	panelX := boardLeft + g.width*cellSize + 30
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"Score: %d\nBest:  %d\nLines: %d\nLevel: %d\nSpeed: %s\n\nNext: %s",
		s.Score, s.HighScore, s.Lines, s.Level, s.FallInterval, s.Next), panelX, boardTop)

	next := shapeColor(s.Next.Color())
	for _, off := range s.Next.Rotation(0) {
		x := float32(panelX + (off.Col+1)*cellSize/2)
		y := float32(boardTop + 120 + (off.Row+1)*cellSize/2)
		vector.DrawFilledRect(screen, x, y, cellSize/2-1, cellSize/2-1, next, false)
	}

	ebitenutil.DebugPrintAt(screen,
		"Arrows: move/drop\nUp/Space: rotate\nEnter: start\nF1: inspector\nEsc: quit",
		panelX, boardTop+200)
	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, boardLeft, boardTop+g.height*cellSize+10)
	}

	g.backend.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
