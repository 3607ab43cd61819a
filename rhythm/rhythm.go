package rhythm

import (
	"fmt"

	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/jsphweid/pianosight/util"
)

// Pick draws one duration pattern for a full measure. The returned slice is
// a copy and may be modified by the caller.
func Pick(src random.Source, p profile.Profile) []int {
	return clone(random.Pick(src, p.Rhythms))
}

// Fragment draws a pattern that fills one half of a split measure.
func Fragment(src random.Source, budget int) ([]int, error) {
	frags, ok := profile.Fragments(budget)
	if !ok {
		return nil, fmt.Errorf("no fragment catalog for %d eighths", budget)
	}
	return clone(random.Pick(src, frags)), nil
}

// Halves returns the lengths of the two parts of a split measure.
func Halves(p profile.Profile) (int, int) {
	return p.SplitPoint, p.TimeSignature.Budget() - p.SplitPoint
}

// Onsets returns the offset, in eighths, at which each duration starts.
func Onsets(pattern []int, start int) []int {
	res := make([]int, len(pattern))
	pos := start
	for i, d := range pattern {
		res[i] = pos
		pos += d
	}
	return res
}

// Check reports a pattern that does not add up to budget.
func Check(pattern []int, budget int) error {
	if total := util.Sum(pattern); total != uint64(budget) {
		return fmt.Errorf("pattern %v sums to %d, want %d", pattern, total, budget)
	}
	return nil
}

func clone(xs []int) []int {
	res := make([]int, len(xs))
	copy(res, xs)
	return res
}
