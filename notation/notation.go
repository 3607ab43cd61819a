// Package notation computes the glyph layout a staff renderer needs for
// each event: where it sits on the staff and how it is drawn.
package notation

import (
	"fmt"

	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
)

type Clef string

const (
	Treble Clef = "treble"
	Bass   Clef = "bass"
)

type Head string

const (
	Whole  Head = "whole"
	Open   Head = "open"
	Filled Head = "filled"
)

type Stem string

const (
	StemNone Stem = ""
	StemUp   Stem = "up"
	StemDown Stem = "down"
)

// middle C is staff position 0; each step is one line or space
var middleC = model.Pitch{Letter: 0, Octave: 4}

// middle line and outermost lines of each staff
var staves = map[Clef]struct{ middle, bottom, top int }{
	Treble: {middle: 6, bottom: 2, top: 10},
	Bass:   {middle: -6, bottom: -10, top: -2},
}

type shape struct {
	head   Head
	dotted bool
	flags  int
}

// shapes by duration in eighths
var shapes = map[int]shape{
	1: {Filled, false, 1},
	2: {Filled, false, 0},
	3: {Filled, true, 0},
	4: {Open, false, 0},
	6: {Open, true, 0},
	8: {Whole, false, 0},
}

type Glyph struct {
	Measure  int  `json:"measure"`
	Offset   int  `json:"offset"`
	Duration int  `json:"duration"`
	Rest     bool `json:"rest,omitempty"`

	Position int    `json:"position"`
	Letter   string `json:"letter,omitempty"`
	Octave   int    `json:"octave,omitempty"`
	Ledgers  []int  `json:"ledgers,omitempty"`
	Head     Head   `json:"head"`
	Dotted   bool   `json:"dotted,omitempty"`
	Flags    int    `json:"flags,omitempty"`
	Stem     Stem   `json:"stem,omitempty"`

	Raised       bool          `json:"raised,omitempty"`
	Staccato     bool          `json:"staccato,omitempty"`
	Accent       bool          `json:"accent,omitempty"`
	SlurStart    bool          `json:"slur_start,omitempty"`
	SlurEnd      bool          `json:"slur_end,omitempty"`
	Dynamic      model.Dynamic `json:"dynamic,omitempty"`
	HairpinStart model.Hairpin `json:"hairpin_start,omitempty"`
	HairpinEnd   model.Hairpin `json:"hairpin_end,omitempty"`
}

type Staff struct {
	Clef   Clef    `json:"clef"`
	Glyphs []Glyph `json:"glyphs"`
}

type Layout struct {
	Key           string              `json:"key"`
	Signature     string              `json:"signature"`
	TimeSignature model.TimeSignature `json:"time_signature"`
	Measures      int                 `json:"measures"`
	Staves        []Staff             `json:"staves"`
}

// Build lays out the right hand on a treble staff and the left hand on a
// bass staff.
func Build(score model.Score) (Layout, error) {
	k, err := key.Resolve(score.Key)
	if err != nil {
		return Layout{}, err
	}
	res := Layout{
		Key:           k.Label,
		Signature:     k.ABC(),
		TimeSignature: score.TimeSignature,
		Measures:      score.NumMeasures(),
	}
	for i, v := range score.Voices() {
		clef := []Clef{Treble, Bass}[i]
		staff, err := lay(k, clef, score.TimeSignature.Budget(), v)
		if err != nil {
			return Layout{}, fmt.Errorf("%s staff: %w", clef, err)
		}
		res.Staves = append(res.Staves, staff)
	}
	return res, nil
}

func lay(k key.Key, clef Clef, budget int, v model.Voice) (Staff, error) {
	staff := Staff{Clef: clef}
	for m, measure := range v.Measures {
		offset := 0
		for i, e := range measure.Events {
			sh, ok := shapes[e.Duration]
			if e.Rest && e.Duration == budget {
				// a bar of rest is a whole rest in any meter
				sh, ok = shapes[8], true
			}
			if !ok {
				return Staff{}, fmt.Errorf("measure %d event %d: no glyph for %d eighths", m, i, e.Duration)
			}
			g := Glyph{
				Measure:  m,
				Offset:   offset,
				Duration: e.Duration,
				Rest:     e.Rest,
				Position: staves[clef].middle,
				Head:     sh.head,
				Dotted:   sh.dotted,
				Flags:    sh.flags,
				Dynamic:  e.Dynamic,
			}
			if !e.Rest {
				written := k.Spell(e.Pitch)
				g.Position = Position(written)
				g.Letter = string("CDEFGAB"[written.Letter])
				g.Octave = written.Octave
				g.Ledgers = Ledgers(clef, g.Position)
				if sh.head != Whole {
					g.Stem = StemDirection(clef, g.Position)
				}
				g.Raised = e.Raised
				g.Staccato = e.Staccato
				g.Accent = e.Accent
				g.SlurStart = e.SlurStart
				g.SlurEnd = e.SlurEnd
				g.HairpinStart = e.HairpinStart
				g.HairpinEnd = e.HairpinEnd
			}
			staff.Glyphs = append(staff.Glyphs, g)
			offset += e.Duration
		}
	}
	return staff, nil
}

// Position is the number of staff steps from middle C.
func Position(written model.Pitch) int {
	return written.Index() - middleC.Index()
}

// StemDirection points stems down from the middle line upward.
func StemDirection(clef Clef, position int) Stem {
	if position >= staves[clef].middle {
		return StemDown
	}
	return StemUp
}

// Ledgers lists the ledger line positions needed to reach position.
func Ledgers(clef Clef, position int) []int {
	s := staves[clef]
	var res []int
	for l := s.bottom - 2; l >= position; l -= 2 {
		res = append(res, l)
	}
	for l := s.top + 2; l <= position; l += 2 {
		res = append(res, l)
	}
	return res
}
