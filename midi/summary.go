package midi

import (
	"gitlab.com/gomidi/midi/v2/smf"
)

type TrackSummary struct {
	Name     string  `json:"name"`
	Notes    int     `json:"notes"`
	Lowest   uint8   `json:"lowest"`
	Highest  uint8   `json:"highest"`
	Channels []uint8 `json:"channels"`
}

type Summary struct {
	TicksPerQuarter int            `json:"ticks_per_quarter"`
	BPM             float64        `json:"bpm"`
	Meter           [2]uint8       `json:"meter"`
	Length          uint32         `json:"length"`
	Tracks          []TrackSummary `json:"tracks"`
}

// Summarize walks every track once and reports names, note counts and
// ranges along with the first tempo and meter found.
func Summarize(s *smf.SMF) Summary {
	var res Summary
	if tf, ok := s.TimeFormat.(smf.MetricTicks); ok {
		res.TicksPerQuarter = int(tf)
	}
	for _, track := range s.Tracks {
		var ts TrackSummary
		var tick uint32
		seen := map[uint8]bool{}
		for _, event := range track {
			tick += event.Delta
			msg := event.Message

			var (
				name         string
				bpm          float64
				num, denom   uint8
				ch, key, vel uint8
			)
			switch {
			case msg.GetMetaTrackName(&name):
				ts.Name = name
			case msg.GetMetaTempo(&bpm):
				if res.BPM == 0 {
					res.BPM = bpm
				}
			case msg.GetMetaMeter(&num, &denom):
				if res.Meter[0] == 0 {
					res.Meter = [2]uint8{num, denom}
				}
			case msg.GetNoteOn(&ch, &key, &vel) && vel > 0:
				if ts.Notes == 0 || key < ts.Lowest {
					ts.Lowest = key
				}
				if ts.Notes == 0 || key > ts.Highest {
					ts.Highest = key
				}
				ts.Notes++
				if !seen[ch] {
					seen[ch] = true
					ts.Channels = append(ts.Channels, ch)
				}
			}
		}
		if tick > res.Length {
			res.Length = tick
		}
		res.Tracks = append(res.Tracks, ts)
	}
	return res
}

// Notes is the total number of sounding notes across all tracks.
func (s Summary) Notes() int {
	var total int
	for _, t := range s.Tracks {
		total += t.Notes
	}
	return total
}
