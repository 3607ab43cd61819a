package rhythm

import (
	"testing"

	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickFillsMeasure(t *testing.T) {
	src := random.New(11)
	for _, k := range profile.Keys() {
		p, err := profile.Lookup(k.TimeSignature, k.Difficulty)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			assert.NoError(t, Check(Pick(src, p), k.TimeSignature.Budget()))
		}
	}
}

func TestPickReturnsCopy(t *testing.T) {
	p, _ := profile.Lookup(model.FourFour, model.Beginner)
	src := random.New(1)
	pattern := Pick(src, p)
	pattern[0] = 99
	for _, r := range p.Rhythms {
		assert.NotContains(t, r, 99)
	}
}

func TestFragmentsAndHalves(t *testing.T) {
	src := random.New(5)
	for _, ts := range model.TimeSignatures {
		p, _ := profile.Lookup(ts, model.Elementary)
		first, second := Halves(p)
		assert.Equal(t, ts.Budget(), first+second)
		for _, half := range []int{first, second} {
			frag, err := Fragment(src, half)
			require.NoError(t, err)
			assert.NoError(t, Check(frag, half))
		}
	}
	_, err := Fragment(src, 5)
	assert.Error(t, err)
}

func TestOnsets(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4, 5}, Onsets([]int{2, 2, 1, 3}, 0))
	assert.Equal(t, []int{4, 6}, Onsets([]int{2, 2}, 4))
	assert.Error(t, Check([]int{4, 2}, 8))
}
