package model

// NoteEvent is a single rest or pitched note. Values are built with Note or
// Rest and refined through the With* methods, which return modified copies.
// On a rest every With* method except WithDynamic is a no-op.
type NoteEvent struct {
	Rest         bool    `json:"rest,omitempty"`
	Pitch        Pitch   `json:"pitch"`
	Duration     int     `json:"duration"`
	Staccato     bool    `json:"staccato,omitempty"`
	Accent       bool    `json:"accent,omitempty"`
	SlurStart    bool    `json:"slur_start,omitempty"`
	SlurEnd      bool    `json:"slur_end,omitempty"`
	Raised       bool    `json:"raised,omitempty"`
	Dynamic      Dynamic `json:"dynamic,omitempty"`
	HairpinStart Hairpin `json:"hairpin_start,omitempty"`
	HairpinEnd   Hairpin `json:"hairpin_end,omitempty"`
}

func Note(p Pitch, duration int) NoteEvent {
	return NoteEvent{Pitch: p, Duration: duration}
}

func Rest(duration int) NoteEvent {
	return NoteEvent{Rest: true, Duration: duration}
}

func (n NoteEvent) WithPitch(p Pitch) NoteEvent {
	if n.Rest {
		return n
	}
	n.Pitch = p
	return n
}

func (n NoteEvent) WithStaccato() NoteEvent {
	if n.Rest {
		return n
	}
	n.Staccato = true
	return n
}

func (n NoteEvent) WithAccent() NoteEvent {
	if n.Rest {
		return n
	}
	n.Accent = true
	return n
}

func (n NoteEvent) WithSlurStart() NoteEvent {
	if n.Rest {
		return n
	}
	n.SlurStart = true
	return n
}

func (n NoteEvent) WithSlurEnd() NoteEvent {
	if n.Rest {
		return n
	}
	n.SlurEnd = true
	return n
}

func (n NoteEvent) WithRaised() NoteEvent {
	if n.Rest {
		return n
	}
	n.Raised = true
	return n
}

func (n NoteEvent) WithDynamic(d Dynamic) NoteEvent {
	n.Dynamic = d
	return n
}

func (n NoteEvent) WithHairpinStart(h Hairpin) NoteEvent {
	if n.Rest {
		return n
	}
	n.HairpinStart = h
	return n
}

func (n NoteEvent) WithHairpinEnd(h Hairpin) NoteEvent {
	if n.Rest {
		return n
	}
	n.HairpinEnd = h
	return n
}

// Valid reports whether the event respects the rest invariant and has a
// positive duration.
func (n NoteEvent) Valid() bool {
	if n.Duration <= 0 {
		return false
	}
	if !n.Rest {
		return true
	}
	return n.Pitch == Pitch{} && !n.Staccato && !n.Accent && !n.SlurStart &&
		!n.SlurEnd && !n.Raised && n.HairpinStart == NoHairpin && n.HairpinEnd == NoHairpin
}
