package generator

import (
	"errors"
	"fmt"

	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
)

var ErrInvalidParameter = errors.New("invalid parameter")

const (
	DefaultKey           = "C"
	DefaultTimeSignature = model.FourFour
	DefaultDifficulty    = model.Intermediate
	DefaultMeasures      = 4
	MaxMeasures          = 64
)

// Params are the caller-facing generation options. Empty fields take the
// defaults above.
type Params struct {
	Key           string
	TimeSignature string
	Measures      int
	Difficulty    string

	// Tuning overrides profile probabilities per difficulty.
	Tuning map[model.Difficulty]profile.Overrides
}

// Settings are validated parameters ready for Build.
type Settings struct {
	Key           key.Key
	TimeSignature model.TimeSignature
	Measures      int
	Difficulty    model.Difficulty
	Profile       profile.Profile
}

// Resolve validates p. Invalid values are replaced by their default and
// reported in the returned error, which joins one wrapped error per
// fallback. The Settings are always usable.
func (p Params) Resolve() (Settings, error) {
	var errs []error
	s := Settings{
		Key:           key.MustResolve(DefaultKey),
		TimeSignature: DefaultTimeSignature,
		Measures:      DefaultMeasures,
		Difficulty:    DefaultDifficulty,
	}

	if p.Key != "" {
		k, err := key.Resolve(p.Key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w, using %s", err, DefaultKey))
		} else {
			s.Key = k
		}
	}
	if p.TimeSignature != "" {
		ts, err := model.ParseTimeSignature(p.TimeSignature)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v, using %s", ErrInvalidParameter, err, DefaultTimeSignature))
		} else {
			s.TimeSignature = ts
		}
	}
	if p.Difficulty != "" {
		d, err := model.ParseDifficulty(p.Difficulty)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v, using %s", ErrInvalidParameter, err, DefaultDifficulty))
		} else {
			s.Difficulty = d
		}
	}
	switch {
	case p.Measures < 0 || p.Measures > MaxMeasures:
		errs = append(errs, fmt.Errorf("%w: measure count %d outside [1, %d], using %d",
			ErrInvalidParameter, p.Measures, MaxMeasures, DefaultMeasures))
	case p.Measures > 0:
		s.Measures = p.Measures
	}

	prof, err := profile.Lookup(s.TimeSignature, s.Difficulty)
	if err != nil {
		// every enum combination is in the table
		panic(err)
	}
	if o, ok := p.Tuning[s.Difficulty]; ok {
		prof = prof.Apply(o)
	}
	s.Profile = prof

	return s, errors.Join(errs...)
}

// Warnings flattens the error returned by Resolve into messages.
func Warnings(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var res []string
		for _, e := range joined.Unwrap() {
			res = append(res, e.Error())
		}
		return res
	}
	return []string{err.Error()}
}

// Describe is a short human label, e.g. "Am 3/4, 8 bars, advanced".
func (s Settings) Describe() string {
	return fmt.Sprintf("%s %s, %d bars, %s", s.Key.Label, s.TimeSignature, s.Measures, s.Difficulty)
}
