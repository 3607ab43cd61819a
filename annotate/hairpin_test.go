package annotate_test

import (
	"fmt"
	"testing"

	"github.com/jsphweid/pianosight/generator"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ measure, event int }

type hairpinSpan struct {
	voice      model.Voice
	start, end position
}

func spans(t *testing.T, s model.Score) []hairpinSpan {
	var res []hairpinSpan
	for _, v := range s.Voices() {
		var open *position
		for m, measure := range v.Measures {
			for i, e := range measure.Events {
				if e.HairpinStart != model.NoHairpin {
					require.Nil(t, open, "hairpin opened inside another at %d/%d", m, i)
					open = &position{m, i}
				}
				if e.HairpinEnd != model.NoHairpin {
					require.NotNil(t, open, "hairpin closed without start at %d/%d", m, i)
					res = append(res, hairpinSpan{v, *open, position{m, i}})
					open = nil
				}
			}
		}
		require.Nil(t, open, "unterminated hairpin")
	}
	return res
}

func onset(m model.Measure, event int) int {
	var pos int
	for _, e := range m.Events[:event] {
		pos += e.Duration
	}
	return pos
}

func lastNote(m model.Measure) int {
	for i := len(m.Events) - 1; i >= 0; i-- {
		if !m.Events[i].Rest {
			return i
		}
	}
	return -1
}

func TestBeginnerHairpinSpans(t *testing.T) {
	always := 1.0
	tuning := map[model.Difficulty]profile.Overrides{model.Beginner: {CrescDim: &always}}

	for _, ts := range model.TimeSignatures {
		t.Run(string(ts), func(t *testing.T) {
			var total int
			for seed := uint64(0); seed < 200; seed++ {
				score, err := generator.GenerateStrict(random.New(seed), generator.Params{
					Key:           "C",
					TimeSignature: string(ts),
					Measures:      8,
					Difficulty:    string(model.Beginner),
					Tuning:        tuning,
				})
				require.NoError(t, err)
				budget := ts.Budget()

				covered := map[int]bool{}
				for _, sp := range spans(t, score) {
					total++
					desc := fmt.Sprintf("seed %d span %v-%v", seed, sp.start, sp.end)
					assert.NotEqual(t, sp.start, sp.end, desc)

					for _, m := range []int{sp.start.measure, sp.end.measure} {
						assert.False(t, covered[m], "%s reuses measure %d", desc, m)
					}
					covered[sp.start.measure] = true
					covered[sp.end.measure] = true

					measure := sp.voice.Measures[sp.start.measure]
					assert.Equal(t, measure.FirstNote(), sp.start.event, desc)
					switch sp.end.measure {
					case sp.start.measure + 1:
						assert.Equal(t, sp.voice.Measures[sp.end.measure].FirstNote(), sp.end.event, desc)
					case sp.start.measure:
						var n int
						for _, e := range measure.Events[sp.start.event : sp.end.event+1] {
							if !e.Rest {
								n++
							}
						}
						assert.GreaterOrEqual(t, n, 2, desc)
						if sp.end.event != lastNote(measure) {
							assert.Less(t, sp.end.event, lastNote(measure), desc)
							assert.Less(t, onset(measure, sp.end.event), budget*3/4, desc)
						}
					default:
						t.Errorf("%s spans more than two measures", desc)
					}
				}
			}
			assert.Greater(t, total, 0)
		})
	}
}
