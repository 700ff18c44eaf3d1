// Package shape defines the seven tetromino kinds and their rotation states.
// Everything here is immutable lookup data.
package shape

import (
	"fmt"
	"strconv"
)

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Count is the number of distinct kinds.
const Count = 7

// Kinds lists every kind in declaration order.
var Kinds = [Count]Kind{I, O, T, S, Z, J, L}

// Offset is a (row, col) displacement from a piece's pivot. Rows grow downward.
type Offset struct {
	Row, Col int
}

// Rotation is one orientation of a kind, always exactly four cells.
type Rotation [4]Offset

// Color is an opaque display token, a "#RRGGBB" hex string.
type Color string

type definition struct {
	name      string
	rotations []Rotation
	color     Color
}

// Rotations are listed clockwise. Symmetric kinds carry only their distinct
// states, so O has one and I/S/Z have two.
var definitions = [Count]definition{
	I: {
		name: "I",
		rotations: []Rotation{
			{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
			{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		},
		color: "#33C3F0",
	},
	O: {
		name: "O",
		rotations: []Rotation{
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
		color: "#FEF7CD",
	},
	T: {
		name: "T",
		rotations: []Rotation{
			{{0, -1}, {0, 0}, {0, 1}, {1, 0}},
			{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
			{{0, -1}, {0, 0}, {0, 1}, {-1, 0}},
			{{-1, 0}, {0, 0}, {1, 0}, {0, -1}},
		},
		color: "#D946EF",
	},
	S: {
		name: "S",
		rotations: []Rotation{
			{{0, 0}, {0, 1}, {1, -1}, {1, 0}},
			{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		},
		color: "#7EE787",
	},
	Z: {
		name: "Z",
		rotations: []Rotation{
			{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
			{{-1, 1}, {0, 0}, {0, 1}, {1, 0}},
		},
		color: "#F97316",
	},
	J: {
		name: "J",
		rotations: []Rotation{
			{{0, -1}, {0, 0}, {0, 1}, {1, -1}},
			{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
			{{0, -1}, {0, 0}, {0, 1}, {-1, 1}},
			{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		},
		color: "#9B87F5",
	},
	L: {
		name: "L",
		rotations: []Rotation{
			{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
			{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
			{{0, -1}, {0, 0}, {0, 1}, {-1, -1}},
			{{-1, 0}, {0, 0}, {1, 0}, {1, -1}},
		},
		color: "#8A898C",
	},
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k < Count
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return definitions[k].name
}

// NumRotations returns how many distinct orientations k has.
func (k Kind) NumRotations() int {
	return len(definitions[k].rotations)
}

// Rotations returns the orientations of k in clockwise order.
// The returned slice is a copy.
func (k Kind) Rotations() []Rotation {
	src := definitions[k].rotations
	out := make([]Rotation, len(src))
	copy(out, src)
	return out
}

// Rotation returns orientation index idx, wrapping modulo NumRotations.
func (k Kind) Rotation(idx int) Rotation {
	rots := definitions[k].rotations
	n := len(rots)
	return rots[((idx%n)+n)%n]
}

// Color returns the display color of k.
func (k Kind) Color() Color {
	return definitions[k].color
}

// ParseKind maps a single-letter name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if definitions[k].name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// RGB decodes the hex color. Malformed tokens decode to mid grey.
func (c Color) RGB() (r, g, b uint8) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 0x80, 0x80, 0x80
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0x80, 0x80, 0x80
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
