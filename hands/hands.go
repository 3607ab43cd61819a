// Package hands decides which hand plays each measure and groups the
// result into contiguous blocks.
package hands

import (
	"fmt"

	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/jsphweid/pianosight/util"
)

var singleHands = []model.Hand{model.HandRight, model.HandLeft}

// Schedule labels every measure in [0, n) and groups equal neighbours.
func Schedule(src random.Source, p profile.Profile, n int) []model.HandBlock {
	return Group(Labels(src, p, n))
}

// Labels returns one hand tag per measure following the tier's policy.
func Labels(src random.Source, p profile.Profile, n int) []model.Hand {
	switch p.Difficulty {
	case model.Beginner:
		return halves(src, n)
	case model.Elementary:
		return alternating(src, n, 2, p.SplitProb)
	case model.Intermediate:
		maxLen := 2
		if n <= 4 {
			maxLen = 1
		}
		return alternating(src, n, maxLen, 0)
	}
	labels := make([]model.Hand, n)
	for i := range labels {
		labels[i] = model.HandBoth
	}
	return labels
}

// halves gives the first half of the piece to one hand and the rest to the
// other.
func halves(src random.Source, n int) []model.Hand {
	first := random.Pick(src, singleHands)
	labels := make([]model.Hand, n)
	cut := n / 2
	if cut == 0 {
		cut = n
	}
	for i := range labels {
		if i < cut {
			labels[i] = first
		} else {
			labels[i] = first.Other()
		}
	}
	return labels
}

func alternating(src random.Source, n, maxLen int, splitProb float64) []model.Hand {
	labels := make([]model.Hand, 0, n)
	hand := random.Pick(src, singleHands)
	for len(labels) < n {
		if splitProb > 0 && random.Chance(src, splitProb) {
			labels = append(labels, model.HandSplit)
			continue
		}
		length := 1
		if maxLen > 1 {
			length += src.IntN(maxLen)
		}
		length = util.Min(length, n-len(labels))
		for i := 0; i < length; i++ {
			labels = append(labels, hand)
		}
		hand = hand.Other()
	}
	return labels
}

// Group merges runs of equal labels into half-open blocks.
func Group(labels []model.Hand) []model.HandBlock {
	var blocks []model.HandBlock
	for i, h := range labels {
		if len(blocks) > 0 && blocks[len(blocks)-1].Hand == h {
			blocks[len(blocks)-1].End = i + 1
			continue
		}
		blocks = append(blocks, model.HandBlock{Start: i, End: i + 1, Hand: h})
	}
	return blocks
}

// Check verifies that blocks partition [0, n) in increasing order.
func Check(blocks []model.HandBlock, n int) error {
	next := 0
	for _, b := range blocks {
		if b.Start != next {
			return fmt.Errorf("block %v starts at %d, want %d", b, b.Start, next)
		}
		if b.End <= b.Start {
			return fmt.Errorf("block %v is empty", b)
		}
		next = b.End
	}
	if next != n {
		return fmt.Errorf("blocks cover [0, %d), want [0, %d)", next, n)
	}
	return nil
}

// At returns the block containing measure m.
func At(blocks []model.HandBlock, m int) (model.HandBlock, bool) {
	for _, b := range blocks {
		if m >= b.Start && m < b.End {
			return b, true
		}
	}
	return model.HandBlock{}, false
}
