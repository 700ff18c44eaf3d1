// Package piece moves and rotates the falling tetromino. Every operation takes
// the current Piece by value and returns a candidate; the board decides
// whether the candidate is legal.
package piece

import (
	"fmt"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/shape"
)

// SpawnRow is the pivot row of a freshly spawned piece. One row of the piece
// may sit above the visible board.
const SpawnRow = -1

// Piece is the active falling tetromino.
type Piece struct {
	Kind     shape.Kind
	Rotation int
	Pos      board.Point
}

// Spawn places kind at the spawn row, pivot in column col, rotation 0.
func Spawn(kind shape.Kind, col int) Piece {
	return Piece{Kind: kind, Pos: board.Point{Row: SpawnRow, Col: col}}
}

// Cells returns the absolute points the piece covers.
func (p Piece) Cells() [4]board.Point {
	return board.Cells(p.Kind, p.Rotation, p.Pos)
}

// Fits reports whether the piece is a legal placement on b.
func (p Piece) Fits(b board.Board) bool {
	return b.IsValidPlacement(p.Kind, p.Rotation, p.Pos)
}

// LockInto merges the piece into b.
func (p Piece) LockInto(b board.Board) board.Board {
	return b.Lock(p.Kind, p.Rotation, p.Pos)
}

func (p Piece) String() string {
	return fmt.Sprintf("%s/%d@(%d,%d)", p.Kind, p.Rotation, p.Pos.Row, p.Pos.Col)
}

func (p Piece) try(b board.Board, candidate Piece) (Piece, bool) {
	if !candidate.Fits(b) {
		return p, false
	}
	return candidate, true
}

// TryMove shifts the piece dCol columns. On collision the original piece is
// returned with false.
func TryMove(p Piece, b board.Board, dCol int) (Piece, bool) {
	next := p
	next.Pos.Col += dCol
	return p.try(b, next)
}

// TrySoftDrop moves the piece down one row.
func TrySoftDrop(p Piece, b board.Board) (Piece, bool) {
	next := p
	next.Pos.Row++
	return p.try(b, next)
}

// TryRotate advances the piece one state clockwise in place. There is no
// wall kick: if the rotated shape collides at the same pivot, the rotation is
// rejected.
func TryRotate(p Piece, b board.Board) (Piece, bool) {
	next := p
	next.Rotation = (p.Rotation + 1) % p.Kind.NumRotations()
	return p.try(b, next)
}

// HardDropRow returns the lowest pivot row the piece can reach by soft drops
// alone. Adapters use it to draw a landing preview.
func HardDropRow(p Piece, b board.Board) int {
	for {
		next, ok := TrySoftDrop(p, b)
		if !ok {
			return p.Pos.Row
		}
		p = next
	}
}
