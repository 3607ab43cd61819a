package cmd

import (
	"fmt"

	"github.com/jsphweid/pianosight/chord"
	"github.com/jsphweid/pianosight/generator"
	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/util"
	"github.com/spf13/cobra"
)

var reportOpts struct {
	count      int
	seed       uint64
	difficulty string
}

func init() {
	f := reportCmd.Flags()
	f.IntVarP(&reportOpts.count, "count", "n", 100, "scores to generate per difficulty")
	f.Uint64Var(&reportOpts.seed, "seed", 1, "seed of the first score")
	f.StringVarP(&reportOpts.difficulty, "difficulty", "d", "", "only this difficulty")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates a seeded batch and verifies it",
	Long: `Generates a batch of random scores from consecutive seeds for each
difficulty, checks every score's structural guarantees and reports how often
each kind of marking appears.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulties := model.Difficulties
		if reportOpts.difficulty != "" {
			d, err := model.ParseDifficulty(reportOpts.difficulty)
			if err != nil {
				return err
			}
			difficulties = []model.Difficulty{d}
		}

		var failed int
		for _, d := range difficulties {
			r := analyze(d, reportOpts.seed, reportOpts.count)
			r.print()
			failed += len(r.failures)
		}
		if failed > 0 {
			return fmt.Errorf("%d scores failed verification", failed)
		}
		return nil
	},
}

type failure struct {
	seed uint64
	err  error
}

type batchReport struct {
	difficulty model.Difficulty
	scores     int
	measures   int
	splits     int
	cadences   map[string]int
	rh, lh     counts
	failures   []failure
}

func (c *counts) add(o counts) {
	c.notes += o.notes
	c.rests += o.rests
	c.raised += o.raised
	c.staccato += o.staccato
	c.accents += o.accents
	c.slurs += o.slurs
	c.dynamics += o.dynamics
	c.hairpins += o.hairpins
}

// splits counts the measures shared out between the hands.
func splits(s model.Score) int {
	var res int
	for _, b := range s.Blocks {
		if b.Hand == model.HandSplit {
			res += b.Len()
		}
	}
	return res
}

func analyze(d model.Difficulty, first uint64, n int) batchReport {
	r := batchReport{difficulty: d, cadences: map[string]int{}}
	for i := 0; i < n; i++ {
		seed := first + uint64(i)
		g := generate(cfg, model.GenerateRequest{Difficulty: string(d), Random: true, Seed: &seed})
		if err := generator.Verify(g.Score); err != nil {
			r.failures = append(r.failures, failure{seed, err})
		}
		r.scores++
		r.measures += g.Score.NumMeasures()
		r.splits += splits(g.Score)
		if k, err := key.Resolve(g.Score.Key); err == nil {
			r.cadences[chord.CreateProgressionKey(k, g.Score.Progression)]++
		}
		r.rh.add(count(g.Score.RightHand))
		r.lh.add(count(g.Score.LeftHand))
	}
	return r
}

func mostCommon(m map[string]int) string {
	var best string
	for _, k := range util.GetKeys(m) {
		if best == "" || m[k] > m[best] {
			best = k
		}
	}
	return best
}

func perMeasure(v, measures int) string {
	if measures == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%.2f/bar)", v, float64(v)/float64(measures))
}

func (r batchReport) print() {
	heading(fmt.Sprintf("%s: %d scores, %d measures", r.difficulty, r.scores, r.measures))
	fmt.Println(rule(40))
	row("split bars", r.splits)
	row("progressions", fmt.Sprintf("%d distinct, most common %s", len(r.cadences), mostCommon(r.cadences)))
	both := r.rh
	both.add(r.lh)
	row("notes", perMeasure(both.notes, r.measures))
	row("rests", perMeasure(both.rests, r.measures))
	row("raised", perMeasure(both.raised, r.measures))
	row("staccato", perMeasure(both.staccato, r.measures))
	row("accents", perMeasure(both.accents, r.measures))
	row("slurs", perMeasure(both.slurs, r.measures))
	row("dynamics", perMeasure(both.dynamics, r.measures))
	row("hairpins", perMeasure(both.hairpins, r.measures))
	if len(r.failures) == 0 {
		row("verified", "all")
	}
	for _, f := range r.failures {
		fmt.Println(failStyle.Render(fmt.Sprintf("seed %d: %v", f.seed, f.err)))
	}
	fmt.Println()
}
