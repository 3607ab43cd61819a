package sample

import (
	"testing"

	pmidi "github.com/jsphweid/pianosight/midi"
	"github.com/jsphweid/pianosight/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func scale() model.Score {
	var rh model.Voice
	for m := 0; m < 4; m++ {
		rh.Measures = append(rh.Measures, model.Measure{Events: []model.NoteEvent{
			model.Note(model.Pitch{Letter: m, Octave: 4}, 2),
			model.Note(model.Pitch{Letter: m + 1, Octave: 4}, 2),
		}})
	}
	lh := model.Voice{Measures: []model.Measure{
		{Events: []model.NoteEvent{model.Note(model.Pitch{Letter: 0, Octave: 3}, 4)}},
		{Events: []model.NoteEvent{model.Rest(4)}},
		{Events: []model.NoteEvent{model.Rest(4)}},
		{Events: []model.NoteEvent{model.Rest(4)}},
	}}
	return model.Score{Key: "C", TimeSignature: model.TwoFour, RightHand: rh, LeftHand: lh}
}

func keys(track smf.Track) []uint8 {
	var res []uint8
	for _, e := range track {
		var ch, key, vel uint8
		if e.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			res = append(res, key)
		}
	}
	return res
}

func length(track smf.Track) uint32 {
	var total uint32
	for _, e := range track {
		total += e.Delta
	}
	return total
}

func TestMeasures(t *testing.T) {
	assert := assert.New(t)

	full, err := pmidi.Build(scale(), 120)
	require.NoError(t, err)

	perMeasure := uint32(4 * pmidi.TicksPerEighth)
	ex, err := Measures(full, perMeasure, 1, 3)
	require.NoError(t, err)
	require.Len(t, ex.Tracks, 3)
	assert.Equal(full.TimeFormat, ex.TimeFormat)

	assert.Equal([]uint8{62, 64, 64, 65}, keys(ex.Tracks[1]))
	assert.Empty(keys(ex.Tracks[2]))
	for _, track := range ex.Tracks {
		assert.Equal(2*perMeasure, length(track))
	}

	assert.InDelta(120, pmidi.Summarize(ex).BPM, 0.01)
}

func TestCreateClosesHangingNotes(t *testing.T) {
	full, err := pmidi.Build(scale(), 120)
	require.NoError(t, err)

	ex, err := Create(full, 0, 300)
	require.NoError(t, err)

	lh := ex.Tracks[2]
	var on, off int
	for _, e := range lh {
		var ch, key, vel uint8
		switch {
		case e.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
			on++
		case e.Message.GetNoteOff(&ch, &key, &vel):
			off++
		}
	}
	assert.Equal(t, 1, on)
	assert.Equal(t, 1, off)
	assert.Equal(t, uint32(300), length(lh))
}

func TestCreateRejectsEmptyWindow(t *testing.T) {
	full, err := pmidi.Build(scale(), 120)
	require.NoError(t, err)
	_, err = Create(full, 10, 10)
	assert.Error(t, err)
}
