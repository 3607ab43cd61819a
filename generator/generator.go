// Package generator assembles complete scores from the key, profile, chord,
// hands, rhythm, melody and annotate stages.
package generator

import (
	"log/slog"

	"github.com/jsphweid/pianosight/annotate"
	"github.com/jsphweid/pianosight/chord"
	"github.com/jsphweid/pianosight/hands"
	"github.com/jsphweid/pianosight/melody"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/random"
	"github.com/jsphweid/pianosight/rhythm"
)

// Generate resolves params, logging every fallback, and builds a score.
func Generate(src random.Source, params Params) model.Score {
	s, err := params.Resolve()
	for _, w := range Warnings(err) {
		slog.Warn("parameter fallback", "reason", w)
	}
	return Build(src, s)
}

// GenerateStrict is Generate for callers that reject fallbacks.
func GenerateStrict(src random.Source, params Params) (model.Score, error) {
	s, err := params.Resolve()
	if err != nil {
		return model.Score{}, err
	}
	return Build(src, s), nil
}

// Build runs the pipeline. All randomness is drawn from src in a fixed
// order, so equal seeds give equal scores.
func Build(src random.Source, s Settings) model.Score {
	p := s.Profile
	n := s.Measures
	budget := s.TimeSignature.Budget()

	progression := chord.Progression(src, s.Key.Mode, n)
	blocks := hands.Schedule(src, p, n)

	a := assembler{
		src:         src,
		settings:    s,
		progression: progression,
		rightPool:   melody.Pool(s.Key, p.RightRange),
		leftPool:    melody.Pool(s.Key, p.LeftRange),
		right:       make([]model.Measure, n),
		left:        make([]model.Measure, n),
	}
	for _, b := range blocks {
		switch b.Hand {
		case model.HandRight, model.HandLeft:
			a.single(b)
		case model.HandBoth:
			a.both(b)
		case model.HandSplit:
			for m := b.Start; m < b.End; m++ {
				a.split(m)
			}
		}
	}
	for m := 0; m < n; m++ {
		if a.right[m].Events == nil {
			a.right[m] = model.RestMeasure(budget)
		}
		if a.left[m].Events == nil {
			a.left[m] = model.RestMeasure(budget)
		}
	}

	score := model.Score{
		RightHand:     model.Voice{Measures: a.right},
		LeftHand:      model.Voice{Measures: a.left},
		Key:           s.Key.Label,
		TimeSignature: s.TimeSignature,
		Difficulty:    s.Difficulty,
		Progression:   progression,
		Blocks:        blocks,
	}
	return annotate.Score(src, p, s.Key, score)
}

type assembler struct {
	src         random.Source
	settings    Settings
	progression []int
	rightPool   []model.Pitch
	leftPool    []model.Pitch
	right       []model.Measure
	left        []model.Measure
}

func (a *assembler) last() int {
	return a.settings.Measures - 1
}

func (a *assembler) pool(h model.Hand) []model.Pitch {
	if h == model.HandLeft {
		return a.leftPool
	}
	return a.rightPool
}

func (a *assembler) voice(h model.Hand) []model.Measure {
	if h == model.HandLeft {
		return a.left
	}
	return a.right
}

func (a *assembler) line(h model.Hand, slots []melody.Slot, resolve bool) melody.Line {
	p := a.settings.Profile
	return melody.Line{
		Pool:          a.pool(h),
		Slots:         slots,
		Harmonic:      p.Harmonic,
		ChordToneProb: p.ChordToneProb,
		LeapProb:      p.LeapProb,
		RestProb:      p.Rest,
		Resolve:       resolve,
	}
}

// melodyOver generates one line for hand h across measures [start, end)
// and stores it measure by measure.
func (a *assembler) melodyOver(h model.Hand, start, end int) {
	ts := a.settings.TimeSignature
	var slots []melody.Slot
	for m := start; m < end; m++ {
		pattern := rhythm.Pick(a.src, a.settings.Profile)
		slots = append(slots, melody.Slots(ts, pattern, m, 0, a.progression[m])...)
	}
	events := melody.Generate(a.src, a.line(h, slots, end == a.settings.Measures))

	dst := a.voice(h)
	for i, s := range slots {
		dst[s.Measure].Events = append(dst[s.Measure].Events, events[i])
	}
}

func (a *assembler) single(b model.HandBlock) {
	a.melodyOver(b.Hand, b.Start, b.End)
}

// both gives the melody to the right hand and chord figures to the left.
func (a *assembler) both(b model.HandBlock) {
	a.melodyOver(model.HandRight, b.Start, b.End)
	for m := b.Start; m < b.End; m++ {
		figure := random.Pick(a.src, a.settings.Profile.Accompaniment)
		events := melody.Accompany(a.leftPool, figure, a.progression[m], m == a.last())
		a.left[m] = model.Measure{Events: events}
	}
}

// split divides measure m between the hands. The hand playing the second
// half closes the piece when m is the last measure.
func (a *assembler) split(m int) {
	ts := a.settings.TimeSignature
	firstLen, secondLen := rhythm.Halves(a.settings.Profile)
	first := random.Pick(a.src, []model.Hand{model.HandRight, model.HandLeft})
	second := first.Other()

	head := fragment(a.src, firstLen)
	tail := fragment(a.src, secondLen)

	slots := melody.Slots(ts, head, m, 0, a.progression[m])
	events := melody.Generate(a.src, a.line(first, slots, false))
	a.voice(first)[m] = model.Measure{Events: append(events, model.Rest(secondLen))}

	slots = melody.Slots(ts, tail, m, firstLen, a.progression[m])
	events = melody.Generate(a.src, a.line(second, slots, m == a.last()))
	a.voice(second)[m] = model.Measure{Events: append([]model.NoteEvent{model.Rest(firstLen)}, events...)}
}

func fragment(src random.Source, budget int) []int {
	pattern, err := rhythm.Fragment(src, budget)
	if err != nil {
		slog.Error("no rhythm fragment", "budget", budget, "err", err)
		return []int{budget}
	}
	return pattern
}
