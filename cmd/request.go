package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/pianosight/abc"
	"github.com/jsphweid/pianosight/config"
	"github.com/jsphweid/pianosight/generator"
	"github.com/jsphweid/pianosight/midi"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/notation"
	"github.com/jsphweid/pianosight/random"
)

var formats = map[string]string{
	"abc":    ".abc",
	"json":   ".json",
	"yaml":   ".yaml",
	"midi":   ".mid",
	"layout": ".layout.json",
}

// generated is one finished generation and what went into it.
type generated struct {
	Seed     uint64
	Warnings []string
	Score    model.Score
}

// requestParams turns a request into generator parameters. Empty fields
// take the config defaults; Random draws key, time signature and length
// from the config pool for the difficulty.
func requestParams(src random.Source, c config.Config, req model.GenerateRequest) generator.Params {
	p := c.Params()
	if req.Difficulty != "" {
		p.Difficulty = req.Difficulty
	}
	if req.Random {
		d, err := model.ParseDifficulty(p.Difficulty)
		if err != nil {
			d = generator.DefaultDifficulty
		}
		r := generator.Randomize(src, c.Pool(d), d)
		r.Difficulty = p.Difficulty
		r.Tuning = c.Tuning
		return r
	}
	if req.Key != "" {
		p.Key = req.Key
	}
	if req.TimeSignature != "" {
		p.TimeSignature = req.TimeSignature
	}
	if req.Measures != 0 {
		p.Measures = req.Measures
	}
	return p
}

// generate runs one generation. Without a seed a fresh one is drawn so
// the result can always be reproduced.
func generate(c config.Config, req model.GenerateRequest) generated {
	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}
	src := random.New(seed)
	params := requestParams(src, c, req)
	settings, err := params.Resolve()
	warnings := generator.Warnings(err)
	for _, w := range warnings {
		slog.Warn("parameter fallback", "reason", w, "seed", seed)
	}
	slog.Debug("generating", "seed", seed, "settings", settings.Describe())
	return generated{
		Seed:     seed,
		Warnings: warnings,
		Score:    generator.Build(src, settings),
	}
}

func title(s model.Score) string {
	return fmt.Sprintf("Sight-reading in %s, %s", s.Key, s.Difficulty)
}

// render writes s to w in one of formats.
func render(w io.Writer, s model.Score, format string, bpm float64) error {
	switch format {
	case "abc":
		return abc.Encode(w, abc.Tune{Number: 1, Title: title(s), Score: s})
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		return yaml.NewEncoder(w).Encode(s)
	case "midi":
		return midi.Write(w, s, bpm)
	case "layout":
		layout, err := notation.Build(s)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(layout)
	}
	return fmt.Errorf("unknown format %q", format)
}
