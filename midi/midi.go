package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	TicksPerQuarter = 480
	TicksPerEighth  = TicksPerQuarter / 2

	// gap keeps repeated pitches from running into each other
	releaseGap = 10

	DefaultVelocity = 72
	accentBoost     = 16
	hairpinRange    = 16
)

var velocities = map[model.Dynamic]int{
	model.Forte:      100,
	model.MezzoForte: 80,
	model.MezzoPiano: 64,
	model.Piano:      48,
}

var trackNames = [2]string{"Right Hand", "Left Hand"}

// Velocity maps a dynamic marking to a note-on velocity.
func Velocity(d model.Dynamic) int {
	if v, ok := velocities[d]; ok {
		return v
	}
	return DefaultVelocity
}

type timed struct {
	tick uint32
	msg  smf.Message
}

type mark struct {
	tick    uint32
	dynamic model.Dynamic
}

type span struct {
	start, end uint32
	hairpin    model.Hairpin
}

// Build renders a score as a type 1 SMF: a conductor track followed by one
// track per hand on channels 0 and 1. Tempo is in quarter notes per minute.
func Build(score model.Score, bpm float64) (*smf.SMF, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("tempo must be positive, got %v", bpm)
	}
	k, err := key.Resolve(score.Key)
	if err != nil {
		return nil, err
	}

	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var conductor smf.Track
	conductor = append(conductor,
		smf.Event{Message: smf.MetaTrackSequenceName(fmt.Sprintf("%s %s", k.Label, score.TimeSignature))},
		smf.Event{Message: smf.MetaMeter(uint8(score.TimeSignature.Beats()), 4)},
		smf.Event{Message: smf.MetaTempo(bpm)},
		smf.Event{Message: smf.EOT},
	)
	if err := s.Add(conductor); err != nil {
		return nil, err
	}

	marks, spans := expression(score)
	for i, v := range score.Voices() {
		track := voiceTrack(k, v, uint8(i), trackNames[i], marks, spans)
		if err := s.Add(track); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Write encodes the score as a standard MIDI file.
func Write(w io.Writer, score model.Score, bpm float64) error {
	s, err := Build(score, bpm)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("error writing midi: %w", err)
	}
	return nil
}

// expression collects dynamic marks and hairpin spans from both voices in
// tick order.
func expression(score model.Score) ([]mark, []span) {
	var marks []mark
	var spans []span
	for _, v := range score.Voices() {
		var tick uint32
		open := map[model.Hairpin]uint32{}
		for _, m := range v.Measures {
			for _, e := range m.Events {
				if e.Dynamic != model.NoDynamic {
					marks = append(marks, mark{tick, e.Dynamic})
				}
				if e.HairpinStart != model.NoHairpin {
					open[e.HairpinStart] = tick
				}
				if e.HairpinEnd != model.NoHairpin {
					if start, ok := open[e.HairpinEnd]; ok {
						spans = append(spans, span{start, tick, e.HairpinEnd})
						delete(open, e.HairpinEnd)
					}
				}
				tick += uint32(e.Duration * TicksPerEighth)
			}
		}
	}
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].tick < marks[j].tick })
	return marks, spans
}

func velocityAt(tick uint32, e model.NoteEvent, marks []mark, spans []span) uint8 {
	v := DefaultVelocity
	for _, m := range marks {
		if m.tick > tick {
			break
		}
		v = Velocity(m.dynamic)
	}
	for _, s := range spans {
		// a hairpin on a single onset has nothing to ramp across
		if s.end <= s.start || tick < s.start || tick > s.end {
			continue
		}
		progress := float64(tick-s.start) / float64(s.end-s.start)
		delta := int(progress*hairpinRange + 0.5)
		if s.hairpin == model.Diminuendo {
			delta = -delta
		}
		v += delta
	}
	if e.Accent {
		v += accentBoost
	}
	return uint8(min(max(v, 1), 127))
}

func voiceTrack(k key.Key, v model.Voice, ch uint8, name string, marks []mark, spans []span) smf.Track {
	var events []timed
	var tick uint32
	for _, m := range v.Measures {
		for _, e := range m.Events {
			length := uint32(e.Duration * TicksPerEighth)
			if !e.Rest {
				sounding := length - releaseGap
				if e.Staccato {
					sounding = length / 2
				}
				note := uint8(k.MIDINote(e.Pitch, e.Raised))
				events = append(events,
					timed{tick, smf.Message(midi.NoteOn(ch, note, velocityAt(tick, e, marks, spans)))},
					timed{tick + sounding, smf.Message(midi.NoteOff(ch, note))},
				)
			}
			tick += length
		}
	}

	// note-offs sort ahead of note-ons on the same tick
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick == events[j].tick {
			return isNoteOff(events[i].msg) && !isNoteOff(events[j].msg)
		}
		return events[i].tick < events[j].tick
	})

	track := smf.Track{
		{Message: smf.MetaTrackSequenceName(name)},
		{Message: smf.Message(midi.ProgramChange(ch, 0))},
	}
	var last uint32
	for _, e := range events {
		track = append(track, smf.Event{Delta: e.tick - last, Message: e.msg})
		last = e.tick
	}
	// close the track at the end of the final measure
	return append(track, smf.Event{Delta: tick - last, Message: smf.EOT})
}

func isNoteOff(msg smf.Message) bool {
	var ch, key, vel uint8
	return msg.GetNoteOff(&ch, &key, &vel)
}

// ReadFile parses a standard MIDI file from disk.
func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// smf.ReadFrom may panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = &blank, fmt.Errorf("error parsing midi file... %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %w", err)
	}
	return Read(dat)
}

// Read parses a standard MIDI file held in memory.
func Read(dat []byte) (*smf.SMF, error) {
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file... %w", err)
	}
	if len(res.Tracks) == 0 {
		return nil, errors.New("midi file has no tracks")
	}
	return res, nil
}
