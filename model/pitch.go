package model

import "fmt"

// Pitch is a diatonic step counted from the tonic of the key (Letter 0 is
// the tonic) in a given octave.
type Pitch struct {
	Letter int `json:"letter"`
	Octave int `json:"octave"`
}

// Index is the absolute diatonic index, used for ordering and distances.
func (p Pitch) Index() int {
	return p.Octave*7 + p.Letter
}

func (p Pitch) Less(o Pitch) bool {
	return p.Index() < o.Index()
}

func (p Pitch) String() string {
	return fmt.Sprintf("%d/%d", p.Letter, p.Octave)
}

// PitchAt is the inverse of Index.
func PitchAt(index int) Pitch {
	octave := index / 7
	letter := index % 7
	if letter < 0 {
		letter += 7
		octave--
	}
	return Pitch{Letter: letter, Octave: octave}
}

// PitchRange returns every pitch from lo to hi inclusive, in ascending order.
func PitchRange(lo, hi Pitch) []Pitch {
	var res []Pitch
	for i := lo.Index(); i <= hi.Index(); i++ {
		res = append(res, PitchAt(i))
	}
	return res
}
