// Package annotate adds articulation and expression markings to generated
// measures. Every stage returns new values and leaves its input untouched.
package annotate

import (
	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
)

// Cycle is the phrase-level dynamics sequence, one entry every two measures.
var Cycle = []model.Dynamic{model.Forte, model.Piano, model.MezzoForte, model.MezzoPiano}

const phraseLength = 2

// hairpinWeights favour a single hairpin once any are drawn.
var hairpinWeights = []int{55, 25, 12, 8}

// Score runs every stage in order: per measure articulation, accidentals
// and accents, then dynamics and hairpins across the whole piece.
func Score(src random.Source, p profile.Profile, k key.Key, s model.Score) model.Score {
	s.RightHand = Voice(src, p, k, s.RightHand)
	s.LeftHand = Voice(src, p, k, s.LeftHand)
	s = Dynamics(src, p, s)
	if p.GlobalDynamics {
		s = Hairpins(src, p, s)
	}
	return s
}

// Voice annotates every note-bearing measure of v.
func Voice(src random.Source, p profile.Profile, k key.Key, v model.Voice) model.Voice {
	res := v.Clone()
	for i, m := range res.Measures {
		if !m.HasNotes() {
			continue
		}
		m = Articulate(src, p, m)
		m = Accidentals(src, p, k, m)
		m = Accents(src, p, m)
		res.Measures[i] = m
	}
	return res
}

// Articulate either marks every short note staccato or scans for slurs.
func Articulate(src random.Source, p profile.Profile, m model.Measure) model.Measure {
	if random.Chance(src, p.Staccato) {
		res := m.Clone()
		for i, e := range res.Events {
			if e.Duration <= p.StaccatoMaxDuration {
				res.Events[i] = e.WithStaccato()
			}
		}
		return res
	}
	return Slurs(src, p.Slur, m)
}

// Slurs groups 2 or 3 consecutive legato notes, scanning left to right.
func Slurs(src random.Source, prob float64, m model.Measure) model.Measure {
	res := m.Clone()
	if prob <= 0 {
		return res
	}
	events := res.Events
	for i := 0; i < len(events); {
		if !legato(events[i]) || !random.Chance(src, prob) {
			i++
			continue
		}
		end := i + 2 + src.IntN(2)
		if end > len(events) {
			end = len(events)
		}
		if end-i < 2 || !allLegato(events[i:end]) {
			i++
			continue
		}
		events[i] = events[i].WithSlurStart()
		events[end-1] = events[end-1].WithSlurEnd()
		i = end
	}
	return res
}

func legato(e model.NoteEvent) bool {
	return !e.Rest && !e.Staccato
}

func allLegato(events []model.NoteEvent) bool {
	for _, e := range events {
		if !legato(e) {
			return false
		}
	}
	return true
}

// Accidentals raises sharpenable degrees of the key.
func Accidentals(src random.Source, p profile.Profile, k key.Key, m model.Measure) model.Measure {
	res := m.Clone()
	if p.Accidental <= 0 || len(k.Sharpenable) == 0 {
		return res
	}
	for i, e := range res.Events {
		if e.Rest || !k.IsSharpenable(e.Pitch.Letter) {
			continue
		}
		if random.Chance(src, p.Accidental) {
			res.Events[i] = e.WithRaised()
		}
	}
	return res
}

// Accents marks legato notes.
func Accents(src random.Source, p profile.Profile, m model.Measure) model.Measure {
	res := m.Clone()
	if p.Accent <= 0 {
		return res
	}
	for i, e := range res.Events {
		if legato(e) && random.Chance(src, p.Accent) {
			res.Events[i] = e.WithAccent()
		}
	}
	return res
}
