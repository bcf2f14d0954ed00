package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/delaneyj/fastreactor/affordability"
	"github.com/delaneyj/fastreactor/reactor"
	"github.com/delaneyj/fastreactor/render"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/urfave/cli/v3"
)

const (
	configKey        = "config"
	formatKey        = "format"
	rateKey          = "rate"
	topKey           = "top"
	minPopulationKey = "min-population"
	sweepRateKey     = "sweep-rate"
	sweepPopKey      = "sweep-min-population"
)

func main() {
	cmd := &cli.Command{
		Name:  "affordability",
		Usage: "Rank metro areas by the cost of buying a median home",
		Commands: []*cli.Command{
			{
				Name:  "rank",
				Usage: "Render rankings, once per swept rate and population floor",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    configKey,
						Aliases: []string{"c"},
						Usage:   "YAML dataset, the bundled sample when empty",
						Sources: cli.EnvVars("FASTREACTOR_CONFIG"),
					},
					&cli.StringFlag{
						Name:    formatKey,
						Aliases: []string{"f"},
						Usage:   "table, pretty, markdown, html or csv",
						Value:   string(render.FormatTable),
						Sources: cli.EnvVars("FASTREACTOR_FORMAT"),
					},
					&cli.FloatFlag{
						Name:    rateKey,
						Usage:   "Annual mortgage rate in percent",
						Sources: cli.EnvVars("FASTREACTOR_RATE"),
					},
					&cli.IntFlag{
						Name:    topKey,
						Usage:   "Only keep the N most affordable metros",
						Sources: cli.EnvVars("FASTREACTOR_TOP"),
					},
					&cli.IntFlag{
						Name:    minPopulationKey,
						Usage:   "Skip metros smaller than this",
						Sources: cli.EnvVars("FASTREACTOR_MIN_POPULATION"),
					},
					&cli.FloatSliceFlag{
						Name:  sweepRateKey,
						Usage: "Rates to render after the initial one",
					},
					&cli.IntSliceFlag{
						Name:  sweepPopKey,
						Usage: "Population floors to render at every swept rate",
					},
				},
				Action: rankAction,
			},
			{
				Name:  "sample",
				Usage: "Print the bundled dataset as YAML",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := cmd.Root().Writer.Write(affordability.SampleConfig())
					return err
				},
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rankAction(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	defer func() {
		log.Printf("ranking finished in %v", time.Since(start))
	}()

	cfg := affordability.DefaultConfig()
	if path := cmd.String(configKey); path != "" {
		var err error
		if cfg, err = affordability.LoadConfig(path); err != nil {
			return err
		}
	}
	if cmd.IsSet(rateKey) {
		cfg.Loan.RatePercent = cmd.Float(rateKey)
	}
	if cmd.IsSet(topKey) {
		cfg.Filter.TopN = int(cmd.Int(topKey))
	}
	if cmd.IsSet(minPopulationKey) {
		cfg.Filter.MinPopulation = cmd.Int(minPopulationKey)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := render.ParseFormat(cmd.String(formatKey))
	if err != nil {
		return err
	}

	return run(cmd.Root().Writer, cfg, format, sweep{
		rates:       cmd.FloatSlice(sweepRateKey),
		populations: cmd.IntSlice(sweepPopKey),
	})
}

type sweep struct {
	rates       []float64
	populations []int64
}

// run renders whenever the rankings change. Sweeping only sets inputs; the
// watcher does the rendering and skips results it has already written.
func run(w io.Writer, cfg affordability.Config, format render.Format, sw sweep) error {
	tr := reactor.NewTracker()
	m := affordability.NewModel(tr, cfg)

	var summary affordability.Summary
	unbind, err := m.BindSummary(&summary)
	if err != nil {
		return err
	}
	defer unbind()

	var (
		renderErr error
		seen      = mapset.NewThreadUnsafeSet[uint64]()
	)
	o := reactor.Watch[[]affordability.Ranking](m.Rankings(), func(rows []affordability.Ranking) {
		loan := m.Loan().Peek()
		title := fmt.Sprintf(
			"%.2f%% over %d years, metros over %s",
			loan.RatePercent, loan.TermYears, render.Population(m.MinPopulation.Peek()),
		)

		digest := render.Digest(rows)
		if !seen.Add(digest) {
			log.Printf("%s: unchanged (%016x)", title, digest)
			return
		}
		if renderErr != nil {
			return
		}
		if err := render.Write(w, format, title, rows); err != nil {
			renderErr = fmt.Errorf("can't render %s: %w", format, err)
		}
	})
	defer o.Dispose()

	rates := append([]float64{cfg.Loan.RatePercent}, sw.rates...)
	populations := append([]int64{cfg.Filter.MinPopulation}, sw.populations...)
	for _, rate := range rates {
		// back to the first floor while still at the previous rate, which
		// was already rendered, so every rate starts from the first floor
		m.MinPopulation.Set(populations[0])
		m.Rate.Set(rate)
		for _, pop := range populations {
			m.MinPopulation.Set(pop)
		}
	}

	log.Printf(
		"%d metros ranked at %.2f%%, most affordable %q, least %q",
		summary.Ranked, summary.RatePercent, summary.MostAffordable, summary.LeastAffordable,
	)
	return renderErr
}
