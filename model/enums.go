package model

import "fmt"

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Elementary   Difficulty = "elementary"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists every tier from lowest to highest.
var Difficulties = []Difficulty{Beginner, Elementary, Intermediate, Advanced}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

type TimeSignature string

const (
	FourFour  TimeSignature = "4/4"
	ThreeFour TimeSignature = "3/4"
	TwoFour   TimeSignature = "2/4"
)

var TimeSignatures = []TimeSignature{FourFour, ThreeFour, TwoFour}

func ParseTimeSignature(s string) (TimeSignature, error) {
	for _, ts := range TimeSignatures {
		if string(ts) == s {
			return ts, nil
		}
	}
	return "", fmt.Errorf("unsupported time signature %q", s)
}

// Budget is the length of one measure in eighth notes.
func (ts TimeSignature) Budget() int {
	switch ts {
	case FourFour:
		return 8
	case ThreeFour:
		return 6
	case TwoFour:
		return 4
	}
	return 0
}

// Beats is the numerator of the signature.
func (ts TimeSignature) Beats() int {
	return ts.Budget() / 2
}

// IsStrong reports whether an offset (in eighths) from the start of a
// measure falls on a harmonically emphasized beat.
func (ts TimeSignature) IsStrong(pos int) bool {
	if ts == FourFour {
		return pos == 0 || pos == 4
	}
	return pos == 0
}

// Hand tags which hands perform a block of measures.
type Hand string

const (
	HandRight Hand = "rh"
	HandLeft  Hand = "lh"
	HandBoth  Hand = "both"
	HandSplit Hand = "split"
)

// Other returns the opposite single hand. Both and split are returned as is.
func (h Hand) Other() Hand {
	switch h {
	case HandRight:
		return HandLeft
	case HandLeft:
		return HandRight
	}
	return h
}

// Plays reports whether the given single hand has notes in a block tagged h.
func (h Hand) Plays(single Hand) bool {
	return h == single || h == HandBoth || h == HandSplit
}

type Dynamic string

const (
	Piano      Dynamic = "p"
	MezzoPiano Dynamic = "mp"
	MezzoForte Dynamic = "mf"
	Forte      Dynamic = "f"
	NoDynamic  Dynamic = ""
)

// Dynamics is ordered from softest to loudest.
var Dynamics = []Dynamic{Piano, MezzoPiano, MezzoForte, Forte}

type Hairpin string

const (
	Crescendo  Hairpin = "crescendo"
	Diminuendo Hairpin = "diminuendo"
	NoHairpin  Hairpin = ""
)
