// Package profile holds the immutable difficulty table: rhythm catalogs,
// hand ranges and embellishment probabilities keyed by time signature and
// difficulty.
package profile

import (
	"fmt"

	"github.com/jsphweid/pianosight/model"
)

// Range bounds a hand's note pool in written (C-relative) pitches.
type Range struct {
	Low  model.Pitch
	High model.Pitch
}

// Step is one note of a left-hand accompaniment figure. Tone indexes the
// triad: 0 root, 1 third, 2 fifth.
type Step struct {
	Tone     int
	Duration int
}

type Probabilities struct {
	Rest       float64 `json:"rest" yaml:"rest"`
	Staccato   float64 `json:"staccato" yaml:"staccato"`
	Slur       float64 `json:"slur" yaml:"slur"`
	Accidental float64 `json:"accidental" yaml:"accidental"`
	Accent     float64 `json:"accent" yaml:"accent"`
	CrescDim   float64 `json:"cresc_dim" yaml:"cresc_dim"`
}

type Profile struct {
	TimeSignature model.TimeSignature
	Difficulty    model.Difficulty

	Rhythms       [][]int
	Accompaniment [][]Step
	RightRange    Range
	LeftRange     Range

	// Harmonic tiers steer the melody toward chord tones; the others use a
	// constrained random walk.
	Harmonic      bool
	ChordToneProb float64
	LeapProb      float64

	// GlobalDynamics selects the sparse, piece-wide dynamics placement and
	// enables hairpins. Otherwise dynamics follow a fixed cycle.
	GlobalDynamics bool

	StaccatoMaxDuration int
	SplitProb           float64
	SplitPoint          int

	Probabilities
}

type Key struct {
	TimeSignature model.TimeSignature
	Difficulty    model.Difficulty
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.TimeSignature, k.Difficulty)
}

type tier struct {
	rightRange     Range
	leftRange      Range
	harmonic       bool
	globalDynamics bool
	splitProb      float64
	probs          Probabilities
}

func pitch(letter, octave int) model.Pitch {
	return model.Pitch{Letter: letter, Octave: octave}
}

var tiers = map[model.Difficulty]tier{
	model.Beginner: {
		rightRange:     Range{pitch(0, 4), pitch(0, 5)},
		leftRange:      Range{pitch(0, 3), pitch(0, 4)},
		globalDynamics: true,
		probs:          Probabilities{CrescDim: 0.85},
	},
	model.Elementary: {
		rightRange: Range{pitch(0, 4), pitch(4, 5)},
		leftRange:  Range{pitch(0, 3), pitch(4, 4)},
		splitProb:  0.15,
		probs: Probabilities{
			Rest: 0.03, Staccato: 0.10, Slur: 0.10, Accidental: 0.05, Accent: 0.05,
		},
	},
	model.Intermediate: {
		rightRange: Range{pitch(0, 4), pitch(4, 5)},
		leftRange:  Range{pitch(0, 3), pitch(4, 4)},
		harmonic:   true,
		probs: Probabilities{
			Rest: 0.04, Staccato: 0.12, Slur: 0.15, Accidental: 0.08, Accent: 0.08,
		},
	},
	model.Advanced: {
		rightRange: Range{pitch(5, 3), pitch(0, 6)},
		leftRange:  Range{pitch(3, 2), pitch(4, 4)},
		harmonic:   true,
		probs: Probabilities{
			Rest: 0.08, Staccato: 0.20, Slur: 0.25, Accidental: 0.12, Accent: 0.12,
		},
	},
}

var rhythms = map[model.TimeSignature]map[model.Difficulty][][]int{
	model.FourFour: {
		model.Beginner:     {{8}, {4, 4}},
		model.Elementary:   {{8}, {4, 4}, {2, 2, 4}, {4, 2, 2}},
		model.Intermediate: {{4, 4}, {2, 2, 4}, {4, 2, 2}, {2, 2, 2, 2}, {2, 4, 2}},
		model.Advanced: {
			{4, 4}, {2, 2, 4}, {4, 2, 2}, {2, 2, 2, 2}, {2, 4, 2},
			{1, 1, 2, 2, 2}, {2, 2, 1, 1, 2}, {2, 2, 2, 1, 1}, {4, 2, 1, 1},
			{3, 1, 4}, {3, 1, 2, 2},
		},
	},
	model.ThreeFour: {
		model.Beginner:     {{6}, {4, 2}, {2, 4}},
		model.Elementary:   {{6}, {4, 2}, {2, 4}, {2, 2, 2}},
		model.Intermediate: {{2, 2, 2}, {4, 2}, {2, 4}},
		model.Advanced: {
			{2, 2, 2}, {1, 1, 2, 2}, {2, 1, 1, 2}, {2, 2, 1, 1}, {4, 1, 1}, {1, 1, 4},
			{3, 1, 2},
		},
	},
	model.TwoFour: {
		model.Beginner:     {{4}, {2, 2}},
		model.Elementary:   {{4}, {2, 2}},
		model.Intermediate: {{2, 2}, {4}},
		model.Advanced:     {{2, 2}, {1, 1, 2}, {2, 1, 1}, {1, 1, 1, 1}, {3, 1}},
	},
}

var accompaniment = map[model.TimeSignature]map[model.Difficulty][][]Step{
	model.FourFour: {
		model.Beginner:   {{{0, 8}}, {{0, 4}, {2, 4}}},
		model.Elementary: {{{0, 8}}, {{0, 4}, {2, 4}}},
		model.Intermediate: {
			{{0, 8}}, {{0, 4}, {2, 4}}, {{0, 2}, {1, 2}, {2, 2}, {1, 2}},
		},
		model.Advanced: {
			{{0, 8}}, {{0, 4}, {2, 4}}, {{0, 2}, {1, 2}, {2, 2}, {1, 2}},
			{{0, 2}, {2, 2}, {1, 2}, {2, 2}}, {{0, 2}, {1, 2}, {0, 2}, {2, 2}},
		},
	},
	model.ThreeFour: {
		model.Beginner:     {{{0, 6}}, {{0, 4}, {2, 2}}},
		model.Elementary:   {{{0, 6}}, {{0, 4}, {2, 2}}},
		model.Intermediate: {{{0, 6}}, {{0, 4}, {2, 2}}, {{0, 2}, {1, 2}, {2, 2}}},
		model.Advanced: {
			{{0, 6}}, {{0, 4}, {2, 2}}, {{0, 2}, {1, 2}, {2, 2}}, {{0, 2}, {2, 2}, {1, 2}},
		},
	},
	model.TwoFour: {
		model.Beginner:     {{{0, 4}}, {{0, 2}, {2, 2}}},
		model.Elementary:   {{{0, 4}}, {{0, 2}, {2, 2}}, {{0, 2}, {1, 2}}},
		model.Intermediate: {{{0, 4}}, {{0, 2}, {2, 2}}, {{0, 2}, {1, 2}}},
		model.Advanced: {
			{{0, 4}}, {{0, 2}, {2, 2}}, {{0, 2}, {1, 2}}, {{0, 1}, {2, 1}, {1, 1}, {2, 1}},
		},
	},
}

// fragments are keyed by the length, in eighths, of one half of a split
// measure.
var fragments = map[int][][]int{
	4: {{4}, {2, 2}},
	2: {{2}, {1, 1}},
}

var splitPoints = map[model.TimeSignature]int{
	model.FourFour:  4,
	model.ThreeFour: 4,
	model.TwoFour:   2,
}

var table = build()

func build() map[Key]Profile {
	res := make(map[Key]Profile)
	for _, ts := range model.TimeSignatures {
		for _, d := range model.Difficulties {
			t := tiers[d]
			res[Key{ts, d}] = Profile{
				TimeSignature:       ts,
				Difficulty:          d,
				Rhythms:             rhythms[ts][d],
				Accompaniment:       accompaniment[ts][d],
				RightRange:          t.rightRange,
				LeftRange:           t.leftRange,
				Harmonic:            t.harmonic,
				ChordToneProb:       0.3,
				LeapProb:            0.2,
				GlobalDynamics:      t.globalDynamics,
				StaccatoMaxDuration: 2,
				SplitProb:           t.splitProb,
				SplitPoint:          splitPoints[ts],
				Probabilities:       t.probs,
			}
		}
	}
	return res
}

// Lookup returns the profile for a time signature and difficulty.
func Lookup(ts model.TimeSignature, d model.Difficulty) (Profile, error) {
	p, ok := table[Key{ts, d}]
	if !ok {
		return Profile{}, fmt.Errorf("no profile for %s", Key{ts, d})
	}
	return p, nil
}

// Keys lists every combination present in the table.
func Keys() []Key {
	var res []Key
	for _, ts := range model.TimeSignatures {
		for _, d := range model.Difficulties {
			if _, ok := table[Key{ts, d}]; ok {
				res = append(res, Key{ts, d})
			}
		}
	}
	return res
}

// Fragments returns the rhythm sub-catalog for one half of a split measure.
func Fragments(budget int) ([][]int, bool) {
	f, ok := fragments[budget]
	return f, ok
}

// Overrides replaces individual probabilities. Nil fields keep the table
// value.
type Overrides struct {
	Rest       *float64 `json:"rest,omitempty" yaml:"rest,omitempty"`
	Staccato   *float64 `json:"staccato,omitempty" yaml:"staccato,omitempty"`
	Slur       *float64 `json:"slur,omitempty" yaml:"slur,omitempty"`
	Accidental *float64 `json:"accidental,omitempty" yaml:"accidental,omitempty"`
	Accent     *float64 `json:"accent,omitempty" yaml:"accent,omitempty"`
	CrescDim   *float64 `json:"cresc_dim,omitempty" yaml:"cresc_dim,omitempty"`
	Split      *float64 `json:"split,omitempty" yaml:"split,omitempty"`
}

// Apply returns a copy of p with the overrides applied. Values are clamped
// to [0, 1].
func (p Profile) Apply(o Overrides) Profile {
	set := func(dst *float64, v *float64) {
		if v == nil {
			return
		}
		*dst = clamp01(*v)
	}
	set(&p.Rest, o.Rest)
	set(&p.Staccato, o.Staccato)
	set(&p.Slur, o.Slur)
	set(&p.Accidental, o.Accidental)
	set(&p.Accent, o.Accent)
	set(&p.CrescDim, o.CrescDim)
	set(&p.SplitProb, o.Split)
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
