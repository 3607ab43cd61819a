// Package abc writes scores as ABC notation and reads them back.
package abc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
)

const letters = "CDEFGAB"

var voiceTags = [2]string{"[V:RH clef=treble]", "[V:LH clef=bass]"}

// Tune is a score plus the ABC header fields that are not part of it.
type Tune struct {
	Number int
	Title  string
	Score  model.Score
}

// Encode writes t to w.
func Encode(w io.Writer, t Tune) error {
	k, err := key.Resolve(t.Score.Key)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "X:%d\n", t.Number)
	fmt.Fprintf(bw, "T:%s\n", t.Title)
	fmt.Fprintf(bw, "M:%s\n", t.Score.TimeSignature)
	fmt.Fprintf(bw, "L:1/8\n")
	fmt.Fprintf(bw, "%%%%staves {RH LH}\n")
	fmt.Fprintf(bw, "K:%s\n", k.ABC())
	for i, v := range t.Score.Voices() {
		fmt.Fprintf(bw, "%s %s\n", voiceTags[i], voiceLine(k, v))
	}
	return bw.Flush()
}

// Format returns the encoded tune as a string.
func Format(t Tune) (string, error) {
	var sb strings.Builder
	if err := Encode(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func voiceLine(k key.Key, v model.Voice) string {
	measures := make([]string, len(v.Measures))
	for i, m := range v.Measures {
		tokens := make([]string, len(m.Events))
		for j, e := range m.Events {
			tokens[j] = Token(k, e)
		}
		measures[i] = strings.Join(tokens, " ")
	}
	return strings.Join(measures, " | ") + " |]"
}

var hairpinOpen = map[model.Hairpin]string{model.Crescendo: "!<(!", model.Diminuendo: "!>(!"}
var hairpinClose = map[model.Hairpin]string{model.Crescendo: "!<)!", model.Diminuendo: "!>)!"}

// Token renders one event. Pitches are transposed from scale degrees to
// staff letters; a raised degree is written with the accidental that lifts
// the key-signature note by a semitone.
func Token(k key.Key, e model.NoteEvent) string {
	var sb strings.Builder
	if e.SlurStart {
		sb.WriteString("(")
	}
	sb.WriteString(hairpinOpen[e.HairpinStart])
	sb.WriteString(hairpinClose[e.HairpinEnd])
	if e.Dynamic != model.NoDynamic {
		sb.WriteString("!" + string(e.Dynamic) + "!")
	}
	if e.Accent {
		sb.WriteString("!>!")
	}
	if e.Staccato {
		sb.WriteString(".")
	}
	if e.Rest {
		sb.WriteString("z")
	} else {
		if e.Raised {
			sb.WriteString(raise(k.Alteration(e.Pitch.Letter)))
		}
		sb.WriteString(pitchName(k.Spell(e.Pitch)))
	}
	if e.Duration != 1 {
		fmt.Fprintf(&sb, "%d", e.Duration)
	}
	if e.SlurEnd {
		sb.WriteString(")")
	}
	return sb.String()
}

func raise(alteration int) string {
	switch {
	case alteration < 0:
		return "="
	case alteration > 0:
		return "^^"
	}
	return "^"
}

// pitchName spells a written pitch: upper case up to octave 4 with a comma
// per octave below it, lower case from octave 5 with an apostrophe per
// octave above it.
func pitchName(p model.Pitch) string {
	name := letters[p.Letter : p.Letter+1]
	if p.Octave <= 4 {
		return name + strings.Repeat(",", 4-p.Octave)
	}
	return strings.ToLower(name) + strings.Repeat("'", p.Octave-5)
}
