package annotate

import (
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
	"github.com/jsphweid/pianosight/random"
	"github.com/jsphweid/pianosight/util"
)

// Dynamics places dynamic markings. Profiles with GlobalDynamics get a few
// markings spread over the piece; the rest follow Cycle.
func Dynamics(src random.Source, p profile.Profile, s model.Score) model.Score {
	s.RightHand = s.RightHand.Clone()
	s.LeftHand = s.LeftHand.Clone()
	if p.GlobalDynamics {
		global(src, &s)
	} else {
		cycle(&s)
	}
	return s
}

// cycle marks the first note of every phrase in each voice.
func cycle(s *model.Score) {
	n := s.NumMeasures()
	for _, v := range []*model.Voice{&s.RightHand, &s.LeftHand} {
		for start := 0; start < n; start += phraseLength {
			d := Cycle[(start/phraseLength)%len(Cycle)]
			end := util.Min(start+phraseLength, n)
			for m := start; m < end; m++ {
				if idx := v.Measures[m].FirstNote(); idx >= 0 {
					mark(v, m, idx, d)
					break
				}
			}
		}
	}
}

// global places one to three markings evenly over the note-bearing
// measures, never repeating a marking twice in a row.
func global(src random.Source, s *model.Score) {
	bearing := noteBearing(*s)
	if len(bearing) == 0 {
		return
	}
	count := util.Min(1+src.IntN(3), len(bearing))
	prev := model.NoDynamic
	for k := 0; k < count; k++ {
		m := bearing[k*len(bearing)/count]
		d := pickDynamic(src, prev)
		prev = d
		v := firstVoiceWithNotes(s, m)
		mark(v, m, v.Measures[m].FirstNote(), d)
	}
}

func pickDynamic(src random.Source, prev model.Dynamic) model.Dynamic {
	choices := make([]model.Dynamic, 0, len(model.Dynamics))
	for _, d := range model.Dynamics {
		if d != prev {
			choices = append(choices, d)
		}
	}
	return random.Pick(src, choices)
}

func mark(v *model.Voice, m, idx int, d model.Dynamic) {
	v.Measures[m].Events[idx] = v.Measures[m].Events[idx].WithDynamic(d)
}

func noteBearing(s model.Score) []int {
	var res []int
	for m := 0; m < s.NumMeasures(); m++ {
		if s.RightHand.Measures[m].HasNotes() || s.LeftHand.Measures[m].HasNotes() {
			res = append(res, m)
		}
	}
	return res
}

// firstVoiceWithNotes prefers the right hand. Callers guarantee that one of
// the voices has a note in measure m.
func firstVoiceWithNotes(s *model.Score, m int) *model.Voice {
	if s.RightHand.Measures[m].HasNotes() {
		return &s.RightHand
	}
	return &s.LeftHand
}
