package hands

import (
	"fmt"
	"testing"

	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, d model.Difficulty) profile.Profile {
	p, err := profile.Lookup(model.FourFour, d)
	require.NoError(t, err)
	return p
}

func TestBlocksPartitionMeasures(t *testing.T) {
	for _, d := range model.Difficulties {
		p := lookup(t, d)
		for seed := uint64(0); seed < 50; seed++ {
			for _, n := range []int{1, 2, 3, 4, 6, 8, 12} {
				name := fmt.Sprintf("%s/seed%d/n%d", d, seed, n)
				blocks := Schedule(random.New(seed), p, n)
				assert.NoError(t, Check(blocks, n), name)
			}
		}
	}
}

func TestBeginnerSwitchesOnce(t *testing.T) {
	p := lookup(t, model.Beginner)
	for seed := uint64(0); seed < 30; seed++ {
		blocks := Schedule(random.New(seed), p, 4)
		require.Len(t, blocks, 2)
		assert.Equal(t, 2, blocks[0].Len())
		assert.Equal(t, blocks[0].Hand.Other(), blocks[1].Hand)
	}
	assert.Len(t, Schedule(random.New(1), p, 1), 1)
}

func TestIntermediateShortPiecesAlternateEveryMeasure(t *testing.T) {
	p := lookup(t, model.Intermediate)
	for seed := uint64(0); seed < 30; seed++ {
		blocks := Schedule(random.New(seed), p, 4)
		require.Len(t, blocks, 4)
		for i := 1; i < len(blocks); i++ {
			assert.Equal(t, blocks[i-1].Hand.Other(), blocks[i].Hand)
		}
	}
	for seed := uint64(0); seed < 30; seed++ {
		for _, b := range Schedule(random.New(seed), p, 8) {
			assert.LessOrEqual(t, b.Len(), 2)
			assert.NotEqual(t, model.HandSplit, b.Hand)
		}
	}
}

func TestElementaryEventuallySplits(t *testing.T) {
	p := lookup(t, model.Elementary)
	var splits int
	for seed := uint64(0); seed < 100; seed++ {
		for _, b := range Schedule(random.New(seed), p, 8) {
			if b.Hand == model.HandSplit {
				splits++
			}
		}
	}
	assert.Greater(t, splits, 0)
}

func TestAdvancedIsBothThroughout(t *testing.T) {
	blocks := Schedule(random.New(9), lookup(t, model.Advanced), 8)
	assert.Equal(t, []model.HandBlock{{Start: 0, End: 8, Hand: model.HandBoth}}, blocks)
}

func TestGroupAndAt(t *testing.T) {
	labels := []model.Hand{model.HandRight, model.HandRight, model.HandSplit, model.HandLeft}
	blocks := Group(labels)
	assert.Equal(t, []model.HandBlock{
		{Start: 0, End: 2, Hand: model.HandRight},
		{Start: 2, End: 3, Hand: model.HandSplit},
		{Start: 3, End: 4, Hand: model.HandLeft},
	}, blocks)

	b, ok := At(blocks, 2)
	assert.True(t, ok)
	assert.Equal(t, model.HandSplit, b.Hand)
	_, ok = At(blocks, 4)
	assert.False(t, ok)

	assert.Error(t, Check(blocks, 5))
}
