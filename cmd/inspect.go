package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/pianosight/abc"
	"github.com/jsphweid/pianosight/midi"
	"github.com/jsphweid/pianosight/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Inspects an exported .abc or .mid file",
	Long:  `Inspects an exported .abc or .mid file and prints a summary of its voices.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		switch strings.ToLower(filepath.Ext(path)) {
		case ".abc":
			return inspectABC(path)
		case ".mid", ".midi":
			return inspectMIDI(path)
		}
		return fmt.Errorf("cannot inspect %s: expected .abc or .mid", path)
	},
}

// counts tallies the events of one voice.
type counts struct {
	notes, rests, raised, staccato, accents, slurs, dynamics, hairpins int
	lowest, highest                                                     model.Pitch
}

func count(v model.Voice) counts {
	var c counts
	for _, m := range v.Measures {
		for _, e := range m.Events {
			if e.Rest {
				c.rests++
				continue
			}
			if c.notes == 0 || e.Pitch.Less(c.lowest) {
				c.lowest = e.Pitch
			}
			if c.notes == 0 || c.highest.Less(e.Pitch) {
				c.highest = e.Pitch
			}
			c.notes++
			if e.Raised {
				c.raised++
			}
			if e.Staccato {
				c.staccato++
			}
			if e.Accent {
				c.accents++
			}
			if e.SlurStart {
				c.slurs++
			}
			if e.Dynamic != "" {
				c.dynamics++
			}
			if e.HairpinStart != "" {
				c.hairpins++
			}
		}
	}
	return c
}

func inspectABC(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	t, err := abc.Decode(f)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	heading(t.Title)
	row("key", t.Score.Key)
	row("time", t.Score.TimeSignature)
	row("measures", t.Score.NumMeasures())
	for i, v := range t.Score.Voices() {
		c := count(v)
		fmt.Println(rule(32))
		heading([]string{"Right hand", "Left hand"}[i])
		row("notes", c.notes)
		row("rests", c.rests)
		if c.notes > 0 {
			row("range", fmt.Sprintf("%v to %v (degree/octave)", c.lowest, c.highest))
		}
		row("raised", c.raised)
		row("staccato", c.staccato)
		row("accents", c.accents)
		row("slurs", c.slurs)
		row("dynamics", c.dynamics)
		row("hairpins", c.hairpins)
	}
	return nil
}

func inspectMIDI(path string) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	sum := midi.Summarize(s)

	heading(filepath.Base(path))
	row("resolution", fmt.Sprintf("%d ticks/quarter", sum.TicksPerQuarter))
	row("tempo", fmt.Sprintf("%.0f bpm", sum.BPM))
	row("meter", fmt.Sprintf("%d/%d", sum.Meter[0], sum.Meter[1]))
	row("length", fmt.Sprintf("%d ticks", sum.Length))
	row("notes", sum.Notes())
	for _, t := range sum.Tracks {
		fmt.Println(rule(32))
		heading(t.Name)
		row("notes", t.Notes)
		if t.Notes > 0 {
			row("range", fmt.Sprintf("%d to %d", t.Lowest, t.Highest))
			row("channels", t.Channels)
		}
	}
	return nil
}
