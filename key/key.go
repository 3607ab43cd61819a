// Package key resolves key labels such as "F#m" or "D dor" into a tonic,
// a mode and the interval tables the rest of the engine works with.
package key

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/pianosight/model"
)

var ErrInvalidKey = errors.New("invalid key")

type Mode string

const (
	Major      Mode = "major"
	Minor      Mode = "minor"
	Dorian     Mode = "dorian"
	Mixolydian Mode = "mixolydian"
	Lydian     Mode = "lydian"
	Phrygian   Mode = "phrygian"
)

var Modes = []Mode{Major, Minor, Dorian, Mixolydian, Lydian, Phrygian}

// semitone offsets of each scale degree from the tonic
var modeIntervals = map[Mode][7]int{
	Major:      {0, 2, 4, 5, 7, 9, 11},
	Minor:      {0, 2, 3, 5, 7, 8, 10},
	Dorian:     {0, 2, 3, 5, 7, 9, 10},
	Mixolydian: {0, 2, 4, 5, 7, 9, 10},
	Lydian:     {0, 2, 4, 6, 7, 9, 11},
	Phrygian:   {0, 1, 3, 5, 7, 8, 10},
}

var modeTokens = map[string]Mode{
	"maj":        Major,
	"major":      Major,
	"ion":        Major,
	"ionian":     Major,
	"min":        Minor,
	"minor":      Minor,
	"aeo":        Minor,
	"aeolian":    Minor,
	"dor":        Dorian,
	"dorian":     Dorian,
	"mix":        Mixolydian,
	"mixolydian": Mixolydian,
	"lyd":        Lydian,
	"lydian":     Lydian,
	"phr":        Phrygian,
	"phrygian":   Phrygian,
}

var labelSuffix = map[Mode]string{
	Major:      "",
	Minor:      "m",
	Dorian:     " dor",
	Mixolydian: " mix",
	Lydian:     " lyd",
	Phrygian:   " phr",
}

var abcSuffix = map[Mode]string{
	Major:      "",
	Minor:      "m",
	Dorian:     "Dor",
	Mixolydian: "Mix",
	Lydian:     "Lyd",
	Phrygian:   "Phr",
}

const letters = "CDEFGAB"

var naturalSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// Supported lists the key labels offered to players, grouped by mode.
var Supported = []string{
	"C", "G", "D", "A", "E", "B", "F", "Bb", "Eb", "Ab",
	"Am", "Em", "Bm", "F#m", "Dm", "Gm", "Cm", "Fm",
	"D dor", "G dor", "A dor", "C dor",
	"G mix", "C mix", "D mix", "F mix",
	"F lyd", "C lyd", "G lyd", "Bb lyd",
	"E phr", "A phr", "B phr", "D phr",
}

type Key struct {
	Label        string
	Tonic        int // letter index of the tonic, 0 = C
	Accidental   int // -1 flat, 0 natural, +1 sharp
	Mode         Mode
	RootSemitone int // may be -1 for Cb
	Intervals    [7]int
	Sharpenable  []int // scale degrees eligible for a raised accidental
}

// Resolve parses a key label. Only an unrecognized tonic letter is an error;
// an unknown mode suffix falls back to major.
func Resolve(label string) (Key, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return Key{}, fmt.Errorf("%w: empty label", ErrInvalidKey)
	}
	tonic := strings.IndexByte(letters, upper(s[0]))
	if tonic < 0 {
		return Key{}, fmt.Errorf("%w: unknown tonic %q", ErrInvalidKey, s[:1])
	}

	rest := s[1:]
	accidental := 0
	if strings.HasPrefix(rest, "#") {
		accidental = 1
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "b") {
		accidental = -1
		rest = rest[1:]
	}

	mode := parseMode(rest)
	k := Key{
		Tonic:        tonic,
		Accidental:   accidental,
		Mode:         mode,
		RootSemitone: naturalSemitones[tonic] + accidental,
		Intervals:    modeIntervals[mode],
	}
	k.Sharpenable = sharpenable(mode, k.Intervals)
	k.Label = k.tonicName() + labelSuffix[mode]
	return k, nil
}

// MustResolve is Resolve for labels known to be valid.
func MustResolve(label string) Key {
	k, err := Resolve(label)
	if err != nil {
		panic(err)
	}
	return k
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func parseMode(suffix string) Mode {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" {
		return Major
	}
	// an explicit mode token wins wherever it appears, so "Em phr" is
	// phrygian
	for _, f := range strings.Fields(strings.ToLower(trimmed)) {
		if mode, ok := modeTokens[f]; ok {
			return mode
		}
	}
	// a lone lowercase m, as in "Am" or "F#m"
	if strings.Fields(trimmed)[0] == "m" {
		return Minor
	}
	return Major
}

// sharpenable keeps the sixth and seventh degrees whose raised form does not
// run into the next scale step, i.e. those a whole step below it.
func sharpenable(mode Mode, intervals [7]int) []int {
	if mode == Major || mode == Lydian {
		return nil
	}
	var res []int
	for _, deg := range []int{5, 6} {
		next := 12
		if deg < 6 {
			next = intervals[deg+1]
		}
		if next-intervals[deg] == 2 {
			res = append(res, deg)
		}
	}
	return res
}

func (k Key) tonicName() string {
	name := string(letters[k.Tonic])
	switch k.Accidental {
	case 1:
		name += "#"
	case -1:
		name += "b"
	}
	return name
}

func (k Key) String() string {
	return k.Label
}

// ABC returns the key as written in an ABC "K:" field.
func (k Key) ABC() string {
	return k.tonicName() + abcSuffix[k.Mode]
}

func (k Key) IsSharpenable(degree int) bool {
	for _, d := range k.Sharpenable {
		if d == degree {
			return true
		}
	}
	return false
}

// Spell converts a tonic-relative pitch into a C-relative one (real staff
// letter and octave).
func (k Key) Spell(p model.Pitch) model.Pitch {
	return model.PitchAt(p.Index() + k.Tonic)
}

// Unspell is the inverse of Spell.
func (k Key) Unspell(written model.Pitch) model.Pitch {
	return model.PitchAt(written.Index() - k.Tonic)
}

// MIDINote maps a tonic-relative pitch to a MIDI note number (C4 = 60).
func (k Key) MIDINote(p model.Pitch, raised bool) int {
	note := (p.Octave+1)*12 + k.RootSemitone + k.Intervals[p.Letter]
	if raised {
		note++
	}
	return note
}

// Alteration is the key-signature accidental of a degree on the staff: -1
// flat, 0 natural, +1 sharp.
func (k Key) Alteration(degree int) int {
	letter := (k.Tonic + degree) % 7
	diff := (k.RootSemitone + k.Intervals[degree] - naturalSemitones[letter]) % 12
	if diff > 6 {
		diff -= 12
	}
	if diff < -6 {
		diff += 12
	}
	return diff
}
