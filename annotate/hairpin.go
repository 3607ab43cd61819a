package annotate

import (
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
)

type shape int

const (
	threeQuarters shape = iota
	fullMeasure
	intoNext
)

var shapes = []shape{threeQuarters, fullMeasure, intoNext}

// hairpinSpan runs from event start of measure m to event end of measure
// endMeasure, both in voice v.
type hairpinSpan struct {
	v               *model.Voice
	m, start        int
	endMeasure, end int
}

// Hairpins adds up to four crescendo or diminuendo spans, none sharing a
// measure with another. Every span covers at least two notes.
func Hairpins(src random.Source, p profile.Profile, s model.Score) model.Score {
	s.RightHand = s.RightHand.Clone()
	s.LeftHand = s.LeftHand.Clone()
	if !random.Chance(src, p.CrescDim) {
		return s
	}
	count := 1 + random.Weighted(src, hairpinWeights)
	used := make(map[int]bool)
	// measures that cannot start a span stay that way as more get used
	dead := make(map[int]bool)
	for placed := 0; placed < count; {
		var free []int
		for _, m := range noteBearing(s) {
			if !used[m] && !dead[m] {
				free = append(free, m)
			}
		}
		if len(free) == 0 {
			break
		}
		m := random.Pick(src, free)
		sh := shape(src.IntN(len(shapes)))
		h := random.Pick(src, []model.Hairpin{model.Crescendo, model.Diminuendo})

		sp, ok := plan(&s, m, sh, used)
		if !ok {
			dead[m] = true
			continue
		}
		used[sp.m] = true
		used[sp.endMeasure] = true
		sp.v.Measures[sp.m].Events[sp.start] = sp.v.Measures[sp.m].Events[sp.start].WithHairpinStart(h)
		sp.v.Measures[sp.endMeasure].Events[sp.end] = sp.v.Measures[sp.endMeasure].Events[sp.end].WithHairpinEnd(h)
		placed++
	}
	return s
}

// plan tries the drawn shape first and then the others in order, keeping
// the first one that spans two notes or more.
func plan(s *model.Score, m int, drawn shape, used map[int]bool) (hairpinSpan, bool) {
	v := firstVoiceWithNotes(s, m)
	order := []shape{drawn}
	for _, sh := range shapes {
		if sh != drawn {
			order = append(order, sh)
		}
	}
	for _, sh := range order {
		if sp, ok := shaped(v, m, sh, s.TimeSignature.Budget(), used); ok {
			return sp, true
		}
	}
	return hairpinSpan{}, false
}

func shaped(v *model.Voice, m int, sh shape, budget int, used map[int]bool) (hairpinSpan, bool) {
	measure := v.Measures[m]
	sp := hairpinSpan{v: v, m: m, start: measure.FirstNote(), endMeasure: m}

	switch sh {
	case threeQuarters:
		sp.end = lastNoteBefore(measure, budget*3/4, lastNote(measure))
	case fullMeasure:
		sp.end = lastNote(measure)
	case intoNext:
		next := m + 1
		if next >= len(v.Measures) || used[next] || !v.Measures[next].HasNotes() {
			return sp, false
		}
		sp.endMeasure, sp.end = next, v.Measures[next].FirstNote()
		return sp, true
	}
	return sp, notesBetween(measure, sp.start, sp.end) >= 2
}

func notesBetween(m model.Measure, from, to int) int {
	var n int
	for i := from; i >= 0 && i <= to; i++ {
		if !m.Events[i].Rest {
			n++
		}
	}
	return n
}

func lastNote(m model.Measure) int {
	for i := len(m.Events) - 1; i >= 0; i-- {
		if !m.Events[i].Rest {
			return i
		}
	}
	return -1
}

// lastNoteBefore returns the last note that starts before offset limit and
// comes before event index last, or -1 when there is none.
func lastNoteBefore(m model.Measure, limit, last int) int {
	res := -1
	pos := 0
	for i, e := range m.Events {
		if pos >= limit || i >= last {
			break
		}
		if !e.Rest {
			res = i
		}
		pos += e.Duration
	}
	return res
}
