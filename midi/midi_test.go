package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/pianosight/generator"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func tiny() model.Score {
	c4 := model.Pitch{Letter: 0, Octave: 4}
	e4 := model.Pitch{Letter: 2, Octave: 4}
	return model.Score{
		Key:           "C",
		TimeSignature: model.TwoFour,
		RightHand: model.Voice{Measures: []model.Measure{
			{Events: []model.NoteEvent{
				model.Note(c4, 2).WithDynamic(model.Forte),
				model.Note(e4, 2).WithStaccato().WithAccent(),
			}},
			{Events: []model.NoteEvent{model.Rest(2), model.Note(c4, 2)}},
		}},
		LeftHand: model.Voice{Measures: []model.Measure{
			model.RestMeasure(4),
			{Events: []model.NoteEvent{model.Note(model.Pitch{Letter: 4, Octave: 3}, 4).WithRaised()}},
		}},
	}
}

type noteOn struct {
	tick     uint32
	ch, key  uint8
	velocity uint8
}

func noteOns(track smf.Track) []noteOn {
	var res []noteOn
	var tick uint32
	for _, e := range track {
		tick += e.Delta
		var ch, key, vel uint8
		if e.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			res = append(res, noteOn{tick, ch, key, vel})
		}
	}
	return res
}

func TestBuild(t *testing.T) {
	assert := assert.New(t)

	s, err := Build(tiny(), 90)
	require.NoError(t, err)
	require.Len(t, s.Tracks, 3)
	assert.Equal(smf.MetricTicks(TicksPerQuarter), s.TimeFormat)

	rh := noteOns(s.Tracks[1])
	assert.Equal([]noteOn{
		{0, 0, 60, 100},
		{480, 0, 64, 116},
		{1440, 0, 60, 100},
	}, rh)

	lh := noteOns(s.Tracks[2])
	// G3 raised, under the forte marked in the right hand
	assert.Equal([]noteOn{{960, 1, 56, 100}}, lh)
}

func TestNoteLengths(t *testing.T) {
	s, err := Build(tiny(), 120)
	require.NoError(t, err)

	var tick uint32
	starts := map[uint8]uint32{}
	lengths := map[uint32]uint32{}
	for _, e := range s.Tracks[1] {
		tick += e.Delta
		var ch, key, vel uint8
		switch {
		case e.Message.GetNoteOn(&ch, &key, &vel):
			starts[key] = tick
		case e.Message.GetNoteOff(&ch, &key, &vel):
			lengths[starts[key]] = tick - starts[key]
		}
	}
	assert.Equal(t, uint32(470), lengths[0])
	assert.Equal(t, uint32(240), lengths[480], "staccato sounds half")
	assert.Equal(t, uint32(1920), tick, "track closes at the end of the last measure")
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(tiny(), 0)
	assert.Error(t, err)

	bad := tiny()
	bad.Key = "X"
	_, err = Build(bad, 100)
	assert.Error(t, err)
}

func TestVelocity(t *testing.T) {
	assert.Equal(t, 100, Velocity(model.Forte))
	assert.Equal(t, 80, Velocity(model.MezzoForte))
	assert.Equal(t, 64, Velocity(model.MezzoPiano))
	assert.Equal(t, 48, Velocity(model.Piano))
	assert.Equal(t, 72, Velocity(model.NoDynamic))
}

func TestHairpinRamp(t *testing.T) {
	spans := []span{{start: 0, end: 960, hairpin: model.Crescendo}}
	plain := model.Note(model.Pitch{}, 1)

	assert.Equal(t, uint8(72), velocityAt(0, plain, nil, spans))
	assert.Equal(t, uint8(80), velocityAt(480, plain, nil, spans))
	assert.Equal(t, uint8(88), velocityAt(960, plain, nil, spans))
	assert.Equal(t, uint8(72), velocityAt(1200, plain, nil, spans))

	spans[0].hairpin = model.Diminuendo
	marks := []mark{{0, model.Piano}}
	assert.Equal(t, uint8(32), velocityAt(960, plain, marks, spans))
	assert.Equal(t, uint8(48), velocityAt(960, plain.WithAccent(), marks, spans))

	point := []span{{start: 480, end: 480, hairpin: model.Diminuendo}}
	assert.Equal(t, uint8(80), velocityAt(480, plain, []mark{{0, model.MezzoForte}}, point))
}

func TestWriteAndSummarize(t *testing.T) {
	assert := assert.New(t)

	score := generator.Generate(random.New(7), generator.Params{Key: "Am", TimeSignature: "3/4", Measures: 8, Difficulty: "advanced"})
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, score, 100))

	path := filepath.Join(t.TempDir(), "out.mid")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	s, err := ReadFile(path)
	require.NoError(t, err)

	sum := Summarize(s)
	assert.Equal(TicksPerQuarter, sum.TicksPerQuarter)
	assert.InDelta(100, sum.BPM, 0.01)
	assert.Equal(uint8(3), sum.Meter[0])
	assert.Equal(uint32(8*6*TicksPerEighth), sum.Length)
	require.Len(t, sum.Tracks, 3)
	assert.Equal("Right Hand", sum.Tracks[1].Name)
	assert.Equal("Left Hand", sum.Tracks[2].Name)

	var sounding int
	for _, v := range score.Voices() {
		for _, m := range v.Measures {
			for _, e := range m.Events {
				if !e.Rest {
					sounding++
				}
			}
		}
	}
	assert.Equal(sounding, sum.Notes())
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "junk.mid")
	require.NoError(t, os.WriteFile(path, []byte("not midi"), 0o644))
	_, err = ReadFile(path)
	assert.Error(t, err)
}
