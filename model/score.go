package model

type Measure struct {
	Events []NoteEvent `json:"events"`
}

// Duration is the sum of event durations in eighths.
func (m Measure) Duration() int {
	var total int
	for _, e := range m.Events {
		total += e.Duration
	}
	return total
}

// HasNotes reports whether at least one event is pitched.
func (m Measure) HasNotes() bool {
	return m.FirstNote() >= 0
}

// FirstNote returns the index of the first pitched event, or -1.
func (m Measure) FirstNote() int {
	for i, e := range m.Events {
		if !e.Rest {
			return i
		}
	}
	return -1
}

// RestMeasure is a measure made of a single full-length rest.
func RestMeasure(budget int) Measure {
	return Measure{Events: []NoteEvent{Rest(budget)}}
}

// Clone returns a deep copy so annotation stages never share backing arrays.
func (m Measure) Clone() Measure {
	events := make([]NoteEvent, len(m.Events))
	copy(events, m.Events)
	return Measure{Events: events}
}

type Voice struct {
	Measures []Measure `json:"measures"`
}

func (v Voice) Clone() Voice {
	measures := make([]Measure, len(v.Measures))
	for i, m := range v.Measures {
		measures[i] = m.Clone()
	}
	return Voice{Measures: measures}
}

// HandBlock is a half-open range of measure indices performed by Hand.
type HandBlock struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Hand  Hand `json:"hand"`
}

func (b HandBlock) Len() int {
	return b.End - b.Start
}

type Score struct {
	RightHand     Voice         `json:"right_hand"`
	LeftHand      Voice         `json:"left_hand"`
	Key           string        `json:"key"`
	TimeSignature TimeSignature `json:"time_signature"`
	Difficulty    Difficulty    `json:"difficulty"`
	Progression   []int         `json:"progression"`
	Blocks        []HandBlock   `json:"blocks"`
}

// NumMeasures is the shared measure count of both voices.
func (s Score) NumMeasures() int {
	return len(s.RightHand.Measures)
}

// Voices returns the right hand followed by the left hand.
func (s Score) Voices() []Voice {
	return []Voice{s.RightHand, s.LeftHand}
}
