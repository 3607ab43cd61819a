package generator

import (
	"errors"
	"fmt"

	"github.com/jsphweid/pianosight/hands"
	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
)

// Verify checks the structural guarantees every generated score keeps and
// returns one joined error listing each violation.
func Verify(s model.Score) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	k, err := key.Resolve(s.Key)
	if err != nil {
		return err
	}
	n := s.NumMeasures()
	if len(s.LeftHand.Measures) != n {
		fail("voices differ in length: %d vs %d", n, len(s.LeftHand.Measures))
		return errors.Join(errs...)
	}
	if len(s.Progression) != n {
		fail("progression has %d chords for %d measures", len(s.Progression), n)
	}
	if err := hands.Check(s.Blocks, n); err != nil {
		errs = append(errs, err)
	}

	budget := s.TimeSignature.Budget()
	for vi, v := range s.Voices() {
		name := []string{"rh", "lh"}[vi]
		for m, measure := range v.Measures {
			if d := measure.Duration(); d != budget {
				fail("%s measure %d lasts %d eighths, want %d", name, m, d, budget)
			}
			for i, e := range measure.Events {
				if !e.Valid() {
					fail("%s measure %d event %d is malformed", name, m, i)
				}
				if e.Raised && !k.IsSharpenable(e.Pitch.Letter) {
					fail("%s measure %d event %d raises degree %d", name, m, i, e.Pitch.Letter)
				}
			}
			if err := checkSlurs(measure); err != nil {
				fail("%s measure %d: %v", name, m, err)
			}
		}
		if n > 0 && len(v.Measures[n-1].Events) > 0 {
			events := v.Measures[n-1].Events
			if last := events[len(events)-1]; !last.Rest && last.Pitch.Letter != 0 {
				fail("%s ends on degree %d", name, last.Pitch.Letter)
			}
		}
	}
	return errors.Join(errs...)
}

func checkSlurs(m model.Measure) error {
	open := -1
	for i, e := range m.Events {
		if e.SlurStart {
			if open >= 0 {
				return fmt.Errorf("slur opened at %d inside another", i)
			}
			open = i
		}
		if open >= 0 && (e.Rest || e.Staccato) {
			return fmt.Errorf("slur over rest or staccato at %d", i)
		}
		if e.SlurEnd {
			if open < 0 {
				return fmt.Errorf("slur closed at %d without opening", i)
			}
			if l := i - open + 1; l < 2 || l > 3 {
				return fmt.Errorf("slur of %d notes", l)
			}
			open = -1
		}
	}
	if open >= 0 {
		return fmt.Errorf("slur opened at %d never closes", open)
	}
	return nil
}
