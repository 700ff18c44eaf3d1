package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/internal/log"
	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulatedUI(t *testing.T) *terminalUI {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)

	return &terminalUI{
		screen: screen,
		sound:  &sound{},
		logger: log.Discard(),
		locks:  make(chan engine.LockEvent, 16),
		phases: make(chan engine.Phase, 4),
	}
}

func TestHandleInput(t *testing.T) {
	ui := newSimulatedUI(t)
	game, err := engine.New(engine.DefaultConfig(),
		engine.WithScheduler(engine.NewManualScheduler()),
		engine.WithRandom(engine.Sequence(shape.T)),
		engine.WithPhaseHandler(ui.onPhase))
	require.NoError(t, err)

	key := func(k tcell.Key, r rune) bool {
		return ui.handleInput(game, tcell.NewEventKey(k, r, tcell.ModNone))
	}

	assert.True(t, key(tcell.KeyEnter, 0))
	require.Equal(t, engine.Playing, game.Snapshot().Phase)
	assert.Equal(t, engine.Playing, <-ui.phases)

	assert.True(t, key(tcell.KeyLeft, 0))
	assert.Equal(t, 3, game.Snapshot().Active.Pos.Col)
	assert.True(t, key(tcell.KeyRight, 0))
	assert.True(t, key(tcell.KeyRight, 0))
	assert.Equal(t, 5, game.Snapshot().Active.Pos.Col)
	assert.True(t, key(tcell.KeyDown, 0))
	assert.Equal(t, 0, game.Snapshot().Active.Pos.Row)
	assert.True(t, key(tcell.KeyUp, 0))
	assert.True(t, key(tcell.KeyRune, ' '))
	assert.Equal(t, 2, game.Snapshot().Active.Rotation)

	// Restart keys are ignored mid-game.
	assert.True(t, key(tcell.KeyRune, 'r'))
	assert.Equal(t, 5, game.Snapshot().Active.Pos.Col)

	assert.False(t, key(tcell.KeyRune, 'q'))
	assert.False(t, key(tcell.KeyEscape, 0))
}

func TestDrawDoesNotPanic(t *testing.T) {
	ui := newSimulatedUI(t)
	game, err := engine.New(engine.DefaultConfig(), engine.WithScheduler(engine.NewManualScheduler()))
	require.NoError(t, err)

	assert.NotPanics(t, func() { ui.draw(game.Snapshot()) })
	game.StartOrRestart()
	ui.message = "Game Over"
	assert.NotPanics(t, func() { ui.draw(game.Snapshot()) })
}
