package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/internal/log"
)

const (
	frameInterval = 16 * time.Millisecond
	flashDuration = 350 * time.Millisecond
)

type terminalUI struct {
	screen tcell.Screen
	sound  *sound
	logger *log.Logger

	// Engine callbacks run on the timer goroutine; the draw loop drains these.
	locks  chan engine.LockEvent
	phases chan engine.Phase

	flashUntil time.Time
	message    string
}

func newTerminalUI(logger *log.Logger, withSound bool) (*terminalUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	ui := &terminalUI{
		screen:  screen,
		logger:  logger,
		sound:   &sound{},
		locks:   make(chan engine.LockEvent, 16),
		phases:  make(chan engine.Phase, 4),
		message: "Press Enter to start",
	}

	if withSound {
		s, err := newSound()
		if err != nil {
			// Non-fatal, the game runs without sound.
			logger.Warnf("audio initialization failed: %v", err)
		}
		ui.sound = s
	}
	return ui, nil
}

func (ui *terminalUI) onLock(ev engine.LockEvent) {
	select {
	case ui.locks <- ev:
	default:
	}
}

func (ui *terminalUI) onPhase(p engine.Phase) {
	select {
	case ui.phases <- p:
	default:
	}
}

func (ui *terminalUI) run(game *engine.Engine) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := ui.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !ui.handleInput(game, ev) {
				return
			}

		case ev := <-ui.locks:
			if ev.Cleared > 0 {
				ui.flashUntil = time.Now().Add(flashDuration)
				ui.sound.lineClear(ev.Cleared)
			} else {
				ui.sound.lock()
			}

		case p := <-ui.phases:
			switch p {
			case engine.Playing:
				ui.message = ""
			case engine.GameOver:
				ui.message = "Game Over - Enter or R to restart"
				ui.sound.gameOver()
			case engine.Idle:
				ui.message = "Press Enter to start"
			}

		case <-ticker.C:
			ui.draw(game.Snapshot())
		}
	}
}

// handleInput returns false when the player quits.
func (ui *terminalUI) handleInput(game *engine.Engine, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			game.HandleCommand(engine.MoveLeft)
		case tcell.KeyRight:
			game.HandleCommand(engine.MoveRight)
		case tcell.KeyDown:
			game.HandleCommand(engine.SoftDrop)
		case tcell.KeyUp:
			game.HandleCommand(engine.Rotate)
		case tcell.KeyEnter:
			ui.restart(game)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				game.HandleCommand(engine.Rotate)
			case 'r', 'R':
				ui.restart(game)
			case 'q':
				return false
			}
		}

	case *tcell.EventResize:
		ui.screen.Sync()
	}
	return true
}

// restart only acts between games, so a stray key cannot end a run.
func (ui *terminalUI) restart(game *engine.Engine) {
	if game.Snapshot().Phase == engine.Playing {
		return
	}
	game.StartOrRestart()
}

func (ui *terminalUI) close() {
	ui.sound.close()
	ui.screen.Fini()
}
