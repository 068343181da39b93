package tetris

import "math/rand/v2"

// Random picks the shape and color of new pieces.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }
