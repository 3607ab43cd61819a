package generator

import (
	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/random"
)

// Pool lists the settings a random generation may choose from.
type Pool struct {
	Keys           []string              `json:"keys" yaml:"keys"`
	TimeSignatures []model.TimeSignature `json:"time_signatures" yaml:"time_signatures"`
	Measures       []int                 `json:"measures" yaml:"measures"`
}

// Union returns the entries of p followed by those of o not already
// present.
func (p Pool) Union(o Pool) Pool {
	return Pool{
		Keys:           union(p.Keys, o.Keys),
		TimeSignatures: union(p.TimeSignatures, o.TimeSignatures),
		Measures:       union(p.Measures, o.Measures),
	}
}

func union[T comparable](a, b []T) []T {
	seen := make(map[T]bool)
	var res []T
	for _, xs := range [][]T{a, b} {
		for _, x := range xs {
			if !seen[x] {
				seen[x] = true
				res = append(res, x)
			}
		}
	}
	return res
}

var (
	BasePool = Pool{
		Keys:           []string{"C", "Am", "F", "Dm"},
		TimeSignatures: []model.TimeSignature{model.FourFour, model.TwoFour},
		Measures:       []int{4, 6},
	}
	IntermediateExtra = Pool{
		Keys:           []string{"G", "Em", "Bb", "Gm"},
		TimeSignatures: []model.TimeSignature{model.ThreeFour},
		Measures:       []int{8},
	}
	FullPool = Pool{
		Keys:           key.Supported,
		TimeSignatures: model.TimeSignatures,
		Measures:       []int{4, 6, 8, 12, 16},
	}
)

// PoolFor widens base with the difficulty: intermediate adds the extras,
// advanced may use anything.
func PoolFor(base, extra Pool, d model.Difficulty) Pool {
	switch d {
	case model.Intermediate:
		return base.Union(extra)
	case model.Advanced:
		return FullPool
	}
	return base
}

// Randomize picks a key, time signature and measure count from pool. Empty
// pool fields leave the parameter at its default.
func Randomize(src random.Source, pool Pool, d model.Difficulty) Params {
	params := Params{Difficulty: string(d)}
	if len(pool.Keys) > 0 {
		params.Key = random.Pick(src, pool.Keys)
	}
	if len(pool.TimeSignatures) > 0 {
		params.TimeSignature = string(random.Pick(src, pool.TimeSignatures))
	}
	if len(pool.Measures) > 0 {
		params.Measures = random.Pick(src, pool.Measures)
	}
	return params
}
