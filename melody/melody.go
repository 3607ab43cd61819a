// Package melody turns rhythmic slots into pitched lines by walking a
// cursor over a hand's note pool.
package melody

import (
	"github.com/jsphweid/pianosight/chord"
	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/jsphweid/pianosight/util"
)

const maxWalkRetries = 20

// Slot is one rhythmic position to be filled with a note or a rest.
type Slot struct {
	Measure  int
	Pos      int // offset from the start of the measure, in eighths
	Duration int
	Strong   bool
	Chord    int
}

// Line describes one hand's phrase inside a block.
type Line struct {
	Pool  []model.Pitch
	Slots []Slot

	Harmonic      bool
	ChordToneProb float64
	LeapProb      float64
	RestProb      float64

	// Resolve marks the line that ends the piece; its last slot always
	// lands on the tonic.
	Resolve bool
}

// Pool lists the tonic-relative pitches whose written form lies inside r.
func Pool(k key.Key, r profile.Range) []model.Pitch {
	return model.PitchRange(k.Unspell(r.Low), k.Unspell(r.High))
}

// Slots expands a duration pattern starting at pos within measure m.
func Slots(ts model.TimeSignature, pattern []int, m, pos, chordRoot int) []Slot {
	res := make([]Slot, len(pattern))
	for i, d := range pattern {
		res[i] = Slot{Measure: m, Pos: pos, Duration: d, Strong: ts.IsStrong(pos), Chord: chordRoot}
		pos += d
	}
	return res
}

// Generate fills every slot of the line. The result has one event per slot.
func Generate(src random.Source, line Line) []model.NoteEvent {
	pool := line.Pool
	events := make([]model.NoteEvent, 0, len(line.Slots))
	cursor := src.IntN(len(pool))
	var prev []int

	for i, s := range line.Slots {
		last := i == len(line.Slots)-1
		if line.RestProb > 0 && restable(line, i, s) && random.Chance(src, line.RestProb) {
			events = append(events, model.Rest(s.Duration))
			continue
		}

		if line.Harmonic {
			cursor = harmonicStep(src, line, s, cursor)
		} else {
			cursor = walk(src, line, cursor, prev)
		}
		if last && line.Resolve {
			cursor = Nearest(pool, cursor, func(p model.Pitch) bool { return p.Letter == 0 })
		}

		prev = append(prev, cursor)
		if len(prev) > 2 {
			prev = prev[1:]
		}
		events = append(events, model.Note(pool[cursor], s.Duration))
	}
	return events
}

// restable reports whether slot i may become a rest: a short weak-beat slot
// that neither opens the line nor closes a resolving one.
func restable(line Line, i int, s Slot) bool {
	if i == 0 || s.Strong || s.Duration > 2 {
		return false
	}
	return !(line.Resolve && i == len(line.Slots)-1)
}

func harmonicStep(src random.Source, line Line, s Slot, cursor int) int {
	isChordTone := func(p model.Pitch) bool { return chord.IsTone(s.Chord, p.Letter) }
	if s.Strong {
		return Nearest(line.Pool, cursor, isChordTone)
	}
	if random.Chance(src, line.ChordToneProb) {
		return Nearest(line.Pool, cursor, isChordTone)
	}
	return util.Clamp(cursor+random.Sign(src), 0, len(line.Pool)-1)
}

// walk moves by one or two steps and never lets the same index sound three
// times in a row.
func walk(src random.Source, line Line, cursor int, prev []int) int {
	top := len(line.Pool) - 1
	repeats := func(c int) bool {
		return len(prev) == 2 && prev[0] == c && prev[1] == c
	}
	for attempt := 0; attempt < maxWalkRetries; attempt++ {
		step := 1
		if random.Chance(src, line.LeapProb) {
			step = 2
		}
		next := util.Clamp(cursor+step*random.Sign(src), 0, top)
		if !repeats(next) {
			return next
		}
	}
	if cursor < top {
		return cursor + 1
	}
	return cursor - 1
}

// Nearest returns the pool index closest to cursor whose pitch satisfies
// match, preferring the lower index on ties. It returns cursor when nothing
// matches.
func Nearest(pool []model.Pitch, cursor int, match func(model.Pitch) bool) int {
	best, bestDist := cursor, -1
	for i, p := range pool {
		if !match(p) {
			continue
		}
		d := util.Abs(i - cursor)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Voicing places the triad on root inside the pool: the root as low as
// possible, then the third and fifth above it (below when the pool runs
// out).
func Voicing(pool []model.Pitch, root int) [3]int {
	tones := chord.Tones(root)
	var v [3]int
	v[0] = find(pool, 0, 1, tones[0])
	if v[0] < 0 {
		v[0] = 0
	}
	for i := 1; i < 3; i++ {
		idx := find(pool, v[i-1]+1, 1, tones[i])
		if idx < 0 {
			idx = find(pool, v[i-1]-1, -1, tones[i])
		}
		if idx < 0 {
			idx = v[i-1]
		}
		v[i] = idx
	}
	return v
}

func find(pool []model.Pitch, from, dir, letter int) int {
	for i := from; i >= 0 && i < len(pool); i += dir {
		if pool[i].Letter == letter {
			return i
		}
	}
	return -1
}

// Accompany renders a left-hand figure over the chord of one measure. When
// resolve is set the figure's last note moves to the nearest tonic.
func Accompany(pool []model.Pitch, figure []profile.Step, root int, resolve bool) []model.NoteEvent {
	v := Voicing(pool, root)
	events := make([]model.NoteEvent, len(figure))
	for i, step := range figure {
		idx := v[step.Tone]
		if resolve && i == len(figure)-1 {
			idx = Nearest(pool, idx, func(p model.Pitch) bool { return p.Letter == 0 })
		}
		events[i] = model.Note(pool[idx], step.Duration)
	}
	return events
}
