package main

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
)

func pressed(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, want := range keys {
			if k == want {
				return true
			}
		}
		return false
	}
}

func TestMapKeys(t *testing.T) {
	cmds, restart := mapKeys(engine.Playing, pressed(ebiten.KeyArrowLeft, ebiten.KeySpace))
	assert.False(t, restart)
	assert.Equal(t, []engine.Command{engine.MoveLeft, engine.Rotate}, cmds)

	cmds, restart = mapKeys(engine.Playing, pressed(ebiten.KeyEnter))
	assert.False(t, restart, "restart is ignored mid-game")
	assert.Empty(t, cmds)

	cmds, restart = mapKeys(engine.GameOver, pressed(ebiten.KeyR, ebiten.KeyArrowLeft))
	assert.True(t, restart)
	assert.Empty(t, cmds)

	_, restart = mapKeys(engine.Idle, pressed())
	assert.False(t, restart)
}

func TestDrainEvents(t *testing.T) {
	g := newGame(engine.DefaultConfig())
	now := time.Now()

	g.onPhase(engine.Playing)
	g.onLock(engine.LockEvent{Cleared: 0})
	g.drainEvents(now)
	assert.Empty(t, g.message)
	assert.True(t, g.flashUntil.IsZero())

	g.onLock(engine.LockEvent{Cleared: 2})
	g.onPhase(engine.GameOver)
	g.drainEvents(now)
	assert.Equal(t, now.Add(flashDuration), g.flashUntil)
	assert.Contains(t, g.message, "Game Over")
}
