package engine

import (
	"math/rand/v2"
	"sync"

	"github.com/plus3/blockfall/shape"
)

// RandomSource picks the kind of each new piece.
type RandomSource interface {
	NextKind() shape.Kind
}

// RandomFunc adapts a plain function to RandomSource.
type RandomFunc func() shape.Kind

func (f RandomFunc) NextKind() shape.Kind { return f() }

type uniformSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource draws kinds uniformly and independently from a seeded PCG
// generator. The same seed always yields the same sequence.
func NewRandomSource(seed uint64) RandomSource {
	return &uniformSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (u *uniformSource) NextKind() shape.Kind {
	u.mu.Lock()
	defer u.mu.Unlock()
	return shape.Kinds[u.rng.IntN(shape.Count)]
}

// Sequence replays kinds in order and then repeats from the start.
// Handy for scripted sessions.
func Sequence(kinds ...shape.Kind) RandomSource {
	if len(kinds) == 0 {
		kinds = []shape.Kind{shape.O}
	}
	var mu sync.Mutex
	i := 0
	return RandomFunc(func() shape.Kind {
		mu.Lock()
		defer mu.Unlock()
		k := kinds[i%len(kinds)]
		i++
		return k
	})
}
