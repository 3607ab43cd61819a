// Package config reads the optional YAML file holding generation defaults,
// random-generation pools and probability tuning.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/pianosight/constants"
	"github.com/jsphweid/pianosight/generator"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/profile"
)

type Defaults struct {
	Key           string  `yaml:"key" json:"key"`
	TimeSignature string  `yaml:"time_signature" json:"time_signature"`
	Measures      int     `yaml:"measures" json:"measures"`
	Difficulty    string  `yaml:"difficulty" json:"difficulty"`
	BPM           float64 `yaml:"bpm" json:"bpm"`
}

// Random holds the pools used by random generation: Base for the lower
// tiers, widened by IntermediateExtra for intermediate.
type Random struct {
	Base              generator.Pool `yaml:"base" json:"base"`
	IntermediateExtra generator.Pool `yaml:"intermediate_extra" json:"intermediate_extra"`
}

type Config struct {
	Defaults Defaults                               `yaml:"defaults" json:"defaults"`
	Random   Random                                 `yaml:"random" json:"random"`
	Tuning   map[model.Difficulty]profile.Overrides `yaml:"tuning,omitempty" json:"tuning,omitempty"`
}

func Default() Config {
	return Config{
		Defaults: Defaults{
			Key:           generator.DefaultKey,
			TimeSignature: string(generator.DefaultTimeSignature),
			Measures:      generator.DefaultMeasures,
			Difficulty:    string(generator.DefaultDifficulty),
			BPM:           constants.DefaultBPM,
		},
		Random: Random{
			// copies, so decoding never writes through to the package pools
			Base:              generator.Pool{}.Union(generator.BasePool),
			IntermediateExtra: generator.Pool{}.Union(generator.IntermediateExtra),
		},
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the generator would otherwise replace.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Params().Resolve(); err != nil {
		errs = append(errs, err)
	}
	if c.Defaults.BPM <= 0 {
		errs = append(errs, fmt.Errorf("bpm must be positive, got %v", c.Defaults.BPM))
	}
	for _, pool := range []generator.Pool{c.Random.Base, c.Random.IntermediateExtra} {
		for _, ts := range pool.TimeSignatures {
			if _, err := model.ParseTimeSignature(string(ts)); err != nil {
				errs = append(errs, err)
			}
		}
		for _, n := range pool.Measures {
			if n <= 0 || n > generator.MaxMeasures {
				errs = append(errs, fmt.Errorf("random measure count %d out of range", n))
			}
		}
	}
	for d := range c.Tuning {
		if _, err := model.ParseDifficulty(string(d)); err != nil {
			errs = append(errs, fmt.Errorf("tuning: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Params turns the defaults into generator parameters carrying the tuning.
func (c Config) Params() generator.Params {
	return generator.Params{
		Key:           c.Defaults.Key,
		TimeSignature: c.Defaults.TimeSignature,
		Measures:      c.Defaults.Measures,
		Difficulty:    c.Defaults.Difficulty,
		Tuning:        c.Tuning,
	}
}

// Pool returns the random-generation pool for a difficulty.
func (c Config) Pool(d model.Difficulty) generator.Pool {
	return generator.PoolFor(c.Random.Base, c.Random.IntermediateExtra, d)
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
