package engine

import (
	"time"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/shape"
)

// Snapshot is a read-only copy of the game state for rendering.
type Snapshot struct {
	Board board.Board
	// Active is nil between a lock and the next spawn, and outside Playing
	// once the session has ended.
	Active       *piece.Piece
	Next         shape.Kind
	Score        int
	Lines        int
	Level        int
	HighScore    int
	FallInterval time.Duration
	Phase        Phase
}

// LockEvent is delivered after every lock, whether or not rows cleared.
type LockEvent struct {
	Piece        piece.Piece
	Cleared      int
	Score        int
	Lines        int
	FallInterval time.Duration
}
