// Package random wraps the explicit randomness every generation stage draws
// from. Nothing here touches global state: callers own the Source.
package random

import "math/rand/v2"

// Source is the subset of *rand.Rand the generator needs. Tests may supply
// their own scripted implementation.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// New returns a PCG-backed source; equal seeds produce equal streams.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Chance returns true with probability p. It always draws, so the stream
// position does not depend on p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Sign returns -1 or +1 with equal probability.
func Sign(src Source) int {
	if src.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Weighted returns an index into weights chosen proportionally to its value.
func Weighted(src Source, weights []int) int {
	var total int
	for _, w := range weights {
		total += w
	}
	r := src.IntN(total)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
