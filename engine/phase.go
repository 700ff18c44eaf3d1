package engine

import "strconv"

// Phase is the coarse state of a game session.
type Phase int

const (
	Idle Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case GameOver:
		return "GameOver"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Command is a discrete player input.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	Rotate
)

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case SoftDrop:
		return "SoftDrop"
	case Rotate:
		return "Rotate"
	default:
		return "Command(" + strconv.Itoa(int(c)) + ")"
	}
}
