// Package sample cuts short audition excerpts out of rendered MIDI files.
package sample

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteKey struct{ ch, key uint8 }

// Create returns the ticks in [from, to) of every track of mf. Setup
// events ahead of the window (names, tempo, meter, programs) are moved to
// its start and notes still sounding at its end are cut off there.
func Create(mf *smf.SMF, from, to uint32) (*smf.SMF, error) {
	if to <= from {
		return nil, fmt.Errorf("empty excerpt [%d, %d)", from, to)
	}
	res := smf.NewSMF1()
	res.TimeFormat = mf.TimeFormat
	for _, track := range mf.Tracks {
		if err := res.Add(cut(track, from, to)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Measures is Create over whole measures of ticksPerMeasure ticks.
func Measures(mf *smf.SMF, ticksPerMeasure uint32, first, last int) (*smf.SMF, error) {
	return Create(mf, uint32(first)*ticksPerMeasure, uint32(last)*ticksPerMeasure)
}

func cut(track smf.Track, from, to uint32) smf.Track {
	var (
		res       smf.Track
		abs, last uint32
		open      = map[noteKey]bool{}
	)
	emit := func(at uint32, msg smf.Message) {
		res = append(res, smf.Event{Delta: at - last, Message: msg})
		last = at
	}

	for _, evt := range track {
		abs += evt.Delta
		msg := evt.Message
		var ch, key, vel uint8
		switch {
		case bytes.Equal(msg, smf.EOT):
		case msg.GetNoteOn(&ch, &key, &vel) && vel > 0:
			if abs < from || abs >= to {
				continue
			}
			open[noteKey{ch, key}] = true
			emit(abs-from, msg)
		case msg.GetNoteOff(&ch, &key, &vel) || msg.GetNoteOn(&ch, &key, &vel):
			k := noteKey{ch, key}
			if !open[k] {
				continue
			}
			delete(open, k)
			emit(min(abs, to)-from, msg)
		default:
			if abs < to {
				emit(max(abs, from)-from, msg)
			}
		}
	}

	for k := range open {
		emit(to-from, smf.Message(midi.NoteOff(k.ch, k.key)))
	}
	emit(to-from, smf.EOT)
	return res
}
