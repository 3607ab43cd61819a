package melody

import (
	"fmt"
	"testing"

	"github.com/jsphweid/pianosight/chord"
	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	c4 = model.Pitch{Letter: 0, Octave: 4}
	c5 = model.Pitch{Letter: 0, Octave: 5}
)

func TestPool(t *testing.T) {
	assert := assert.New(t)

	pool := Pool(key.MustResolve("C"), profile.Range{Low: c4, High: c5})
	require.Len(t, pool, 8)
	assert.Equal(c4, pool[0])
	assert.Equal(c5, pool[7])

	g := key.MustResolve("G")
	pool = Pool(g, profile.Range{Low: c4, High: c5})
	require.Len(t, pool, 8)
	assert.Equal(c4, g.Spell(pool[0]))
	assert.Equal(c5, g.Spell(pool[7]))
	assert.Equal(3, pool[0].Letter)
}

func TestSlots(t *testing.T) {
	slots := Slots(model.FourFour, []int{2, 2, 4}, 3, 0, 5)
	assert.Equal(t, []Slot{
		{Measure: 3, Pos: 0, Duration: 2, Strong: true, Chord: 5},
		{Measure: 3, Pos: 2, Duration: 2, Strong: false, Chord: 5},
		{Measure: 3, Pos: 4, Duration: 4, Strong: true, Chord: 5},
	}, slots)
}

func line(harmonic bool, restProb float64) Line {
	var slots []Slot
	for m, root := range []int{0, 3, 4, 0} {
		slots = append(slots, Slots(model.FourFour, []int{2, 2, 2, 2}, m, 0, root)...)
	}
	return Line{
		Pool:          Pool(key.MustResolve("C"), profile.Range{Low: c4, High: model.Pitch{Letter: 4, Octave: 5}}),
		Slots:         slots,
		Harmonic:      harmonic,
		ChordToneProb: 0.3,
		LeapProb:      0.2,
		RestProb:      restProb,
		Resolve:       true,
	}
}

func TestGenerateResolvesToTonic(t *testing.T) {
	for _, harmonic := range []bool{true, false} {
		for seed := uint64(0); seed < 40; seed++ {
			t.Run(fmt.Sprintf("harmonic=%v/seed=%d", harmonic, seed), func(t *testing.T) {
				l := line(harmonic, 0.5)
				events := Generate(random.New(seed), l)
				require.Len(t, events, len(l.Slots))
				last := events[len(events)-1]
				assert.False(t, last.Rest)
				assert.Equal(t, 0, last.Pitch.Letter)
			})
		}
	}
}

func TestGenerateKeepsDurations(t *testing.T) {
	l := line(true, 0.5)
	events := Generate(random.New(3), l)
	for i, e := range events {
		assert.Equal(t, l.Slots[i].Duration, e.Duration)
	}
}

func TestRestsOnlyOnEligibleSlots(t *testing.T) {
	for seed := uint64(0); seed < 40; seed++ {
		l := line(false, 1)
		events := Generate(random.New(seed), l)
		assert.False(t, events[0].Rest)
		for i, e := range events {
			if e.Rest {
				assert.False(t, l.Slots[i].Strong)
				assert.LessOrEqual(t, l.Slots[i].Duration, 2)
				assert.True(t, e.Valid())
			}
		}
	}
}

func TestHarmonicStrongBeatsAreChordTones(t *testing.T) {
	for seed := uint64(0); seed < 40; seed++ {
		l := line(true, 0)
		l.Resolve = false
		events := Generate(random.New(seed), l)
		for i, e := range events {
			if l.Slots[i].Strong {
				assert.True(t, chord.IsTone(l.Slots[i].Chord, e.Pitch.Letter), "seed %d slot %d", seed, i)
			}
		}
	}
}

func TestWalkNeverRepeatsThreeTimes(t *testing.T) {
	pool := model.PitchRange(c4, model.Pitch{Letter: 1, Octave: 4})
	var slots []Slot
	for m := 0; m < 8; m++ {
		slots = append(slots, Slots(model.FourFour, []int{2, 2, 2, 2}, m, 0, 0)...)
	}
	for seed := uint64(0); seed < 40; seed++ {
		l := Line{Pool: pool, Slots: slots, LeapProb: 0.2}
		events := Generate(random.New(seed), l)
		for i := 2; i < len(events); i++ {
			same := events[i].Pitch == events[i-1].Pitch && events[i-1].Pitch == events[i-2].Pitch
			assert.False(t, same, "seed %d index %d", seed, i)
		}
	}
}

func TestNearest(t *testing.T) {
	pool := model.PitchRange(model.Pitch{Letter: 0, Octave: 3}, c5)
	isTonic := func(p model.Pitch) bool { return p.Letter == 0 }

	assert.Equal(t, 7, Nearest(pool, 9, isTonic))
	assert.Equal(t, 14, Nearest(pool, 12, isTonic))
	assert.Equal(t, 7, Nearest(pool, 10, isTonic))
	assert.Equal(t, 4, Nearest(pool, 4, func(model.Pitch) bool { return false }))
}

func TestVoicing(t *testing.T) {
	pool := Pool(key.MustResolve("C"), profile.Range{Low: model.Pitch{Letter: 0, Octave: 3}, High: model.Pitch{Letter: 4, Octave: 4}})

	v := Voicing(pool, 4)
	assert.Equal(t, model.Pitch{Letter: 4, Octave: 3}, pool[v[0]])
	assert.Equal(t, model.Pitch{Letter: 6, Octave: 3}, pool[v[1]])
	assert.Equal(t, model.Pitch{Letter: 1, Octave: 4}, pool[v[2]])

	// no D above B4, so the fifth is voiced below the root
	octave := model.PitchRange(c4, model.Pitch{Letter: 6, Octave: 4})
	v = Voicing(octave, 4)
	assert.Equal(t, [3]int{4, 6, 1}, v)
}

func TestAccompany(t *testing.T) {
	pool := Pool(key.MustResolve("C"), profile.Range{Low: model.Pitch{Letter: 0, Octave: 3}, High: model.Pitch{Letter: 4, Octave: 4}})
	figure := []profile.Step{{Tone: 0, Duration: 2}, {Tone: 1, Duration: 2}, {Tone: 2, Duration: 2}, {Tone: 1, Duration: 2}}

	events := Accompany(pool, figure, 4, false)
	require.Len(t, events, 4)
	assert.Equal(t, []int{4, 6, 1, 6}, []int{
		events[0].Pitch.Letter, events[1].Pitch.Letter, events[2].Pitch.Letter, events[3].Pitch.Letter,
	})

	events = Accompany(pool, figure, 4, true)
	assert.Equal(t, 0, events[3].Pitch.Letter)
}
