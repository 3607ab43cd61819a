package profile

import (
	"testing"

	"github.com/jsphweid/pianosight/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableIsExhaustive(t *testing.T) {
	assert.Len(t, Keys(), len(model.TimeSignatures)*len(model.Difficulties))
}

func TestCatalogsFillTheMeasure(t *testing.T) {
	for _, k := range Keys() {
		t.Run(k.String(), func(t *testing.T) {
			p, err := Lookup(k.TimeSignature, k.Difficulty)
			require.NoError(t, err)
			budget := k.TimeSignature.Budget()

			require.NotEmpty(t, p.Rhythms)
			for _, r := range p.Rhythms {
				assert.Equal(t, budget, sum(r), "%v", r)
			}

			require.NotEmpty(t, p.Accompaniment)
			for _, fig := range p.Accompaniment {
				var total int
				for _, s := range fig {
					assert.True(t, s.Tone >= 0 && s.Tone <= 2)
					total += s.Duration
				}
				assert.Equal(t, budget, total)
			}

			assert.True(t, p.RightRange.Low.Less(p.RightRange.High))
			assert.True(t, p.LeftRange.Low.Less(p.LeftRange.High))
			assert.GreaterOrEqual(t, p.RightRange.High.Index()-p.RightRange.Low.Index(), 7)
			assert.GreaterOrEqual(t, p.LeftRange.High.Index()-p.LeftRange.Low.Index(), 7)
		})
	}
}

func TestSplitFragmentsExistForBothHalves(t *testing.T) {
	for _, ts := range model.TimeSignatures {
		p, err := Lookup(ts, model.Elementary)
		require.NoError(t, err)
		for _, half := range []int{p.SplitPoint, ts.Budget() - p.SplitPoint} {
			frags, ok := Fragments(half)
			require.True(t, ok, "%s half %d", ts, half)
			for _, f := range frags {
				assert.Equal(t, half, sum(f))
			}
		}
	}
}

func TestOnlyLowestTierUsesGlobalDynamics(t *testing.T) {
	for _, k := range Keys() {
		p, _ := Lookup(k.TimeSignature, k.Difficulty)
		assert.Equal(t, k.Difficulty == model.Beginner, p.GlobalDynamics)
		if k.Difficulty == model.Beginner {
			assert.Zero(t, p.Rest)
		} else {
			assert.Zero(t, p.CrescDim)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("5/4", model.Beginner)
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	p, _ := Lookup(model.FourFour, model.Advanced)
	rest, slur := 0.5, 3.0
	q := p.Apply(Overrides{Rest: &rest, Slur: &slur})
	assert.Equal(t, 0.5, q.Rest)
	assert.Equal(t, 1.0, q.Slur)
	assert.Equal(t, p.Accent, q.Accent)
	assert.Equal(t, 0.08, p.Rest)
}

func sum(xs []int) int {
	var total int
	for _, x := range xs {
		total += x
	}
	return total
}
