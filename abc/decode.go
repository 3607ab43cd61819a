package abc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
)

// Decode reads a tune written by Encode. Header fields other than X, T, M
// and K are ignored. Difficulty, progression and hand blocks are not part
// of the notation and stay empty.
func Decode(r io.Reader) (Tune, error) {
	var (
		t      Tune
		k      key.Key
		hasKey bool
	)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		if field, value, ok := header(text); ok {
			var err error
			switch field {
			case 'X':
				t.Number, err = strconv.Atoi(value)
			case 'T':
				t.Title = value
			case 'M':
				t.Score.TimeSignature, err = model.ParseTimeSignature(value)
			case 'K':
				k, err = key.Resolve(value)
				t.Score.Key = k.Label
				hasKey = true
			}
			if err != nil {
				return Tune{}, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}

		if !hasKey {
			return Tune{}, fmt.Errorf("line %d: music before K: field", line)
		}
		var target *model.Voice
		switch {
		case strings.HasPrefix(text, "[V:RH"):
			target = &t.Score.RightHand
		case strings.HasPrefix(text, "[V:LH"):
			target = &t.Score.LeftHand
		default:
			return Tune{}, fmt.Errorf("line %d: expected a voice tag", line)
		}
		end := strings.IndexByte(text, ']')
		voice, err := parseVoice(k, text[end+1:])
		if err != nil {
			return Tune{}, fmt.Errorf("line %d: %w", line, err)
		}
		*target = voice
	}
	if err := scanner.Err(); err != nil {
		return Tune{}, err
	}
	if !hasKey {
		return Tune{}, fmt.Errorf("missing K: field")
	}
	return t, nil
}

// header splits "K:Am" style lines.
func header(text string) (byte, string, bool) {
	if len(text) < 2 || text[1] != ':' || text[0] < 'A' || text[0] > 'Z' {
		return 0, "", false
	}
	return text[0], strings.TrimSpace(text[2:]), true
}

func parseVoice(k key.Key, body string) (model.Voice, error) {
	var v model.Voice
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "|]")
	for i, chunk := range strings.Split(body, "|") {
		var m model.Measure
		for _, tok := range strings.Fields(chunk) {
			e, err := ParseToken(k, tok)
			if err != nil {
				return model.Voice{}, fmt.Errorf("measure %d: %w", i, err)
			}
			m.Events = append(m.Events, e)
		}
		v.Measures = append(v.Measures, m)
	}
	return v, nil
}

// ParseToken is the inverse of Token.
func ParseToken(k key.Key, tok string) (model.NoteEvent, error) {
	var (
		e model.NoteEvent
		s = tok
	)
	bad := func(msg string) (model.NoteEvent, error) {
		return model.NoteEvent{}, fmt.Errorf("token %q: %s", tok, msg)
	}

	if strings.HasPrefix(s, "(") {
		e.SlurStart = true
		s = s[1:]
	}
	for strings.HasPrefix(s, "!") {
		end := strings.IndexByte(s[1:], '!')
		if end < 0 {
			return bad("unterminated decoration")
		}
		deco := s[1 : end+1]
		s = s[end+2:]
		switch deco {
		case "<(":
			e.HairpinStart = model.Crescendo
		case ">(":
			e.HairpinStart = model.Diminuendo
		case "<)":
			e.HairpinEnd = model.Crescendo
		case ">)":
			e.HairpinEnd = model.Diminuendo
		case ">":
			e.Accent = true
		case "p", "mp", "mf", "f":
			e.Dynamic = model.Dynamic(deco)
		default:
			return bad("unknown decoration " + deco)
		}
	}
	if strings.HasPrefix(s, ".") {
		e.Staccato = true
		s = s[1:]
	}
	for len(s) > 0 && (s[0] == '^' || s[0] == '=') {
		e.Raised = true
		s = s[1:]
	}
	if strings.HasSuffix(s, ")") {
		e.SlurEnd = true
		s = s[:len(s)-1]
	}
	if s == "" {
		return bad("missing pitch")
	}

	if s[0] == 'z' {
		e.Rest = true
		s = s[1:]
	} else {
		idx := strings.IndexByte(letters, s[0]&^0x20)
		if idx < 0 {
			return bad("unknown pitch")
		}
		octave := 4
		if s[0] >= 'a' {
			octave = 5
		}
		s = s[1:]
		for len(s) > 0 && (s[0] == ',' || s[0] == '\'') {
			if s[0] == ',' {
				octave--
			} else {
				octave++
			}
			s = s[1:]
		}
		e.Pitch = k.Unspell(model.Pitch{Letter: idx, Octave: octave})
	}

	e.Duration = 1
	if s != "" {
		d, err := strconv.Atoi(s)
		if err != nil || d <= 0 {
			return bad("bad duration")
		}
		e.Duration = d
	}
	if e.Rest && (e.Staccato || e.Accent || e.Raised || e.SlurStart || e.SlurEnd ||
		e.HairpinStart != model.NoHairpin || e.HairpinEnd != model.NoHairpin) {
		return bad("marking on a rest")
	}
	return e, nil
}
