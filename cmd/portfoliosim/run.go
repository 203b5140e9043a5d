package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"portfoliosim/internal/projector"
	"portfoliosim/internal/report"
	"portfoliosim/internal/summary"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	configPath string
	scenario   string
	format     string
	out        string

	sims    int
	years   int
	seed    int64
	workers int
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "execute the portfolio projection and render the result" }
func (*runCmd) Usage() string {
	return `portfoliosim run [-config <file>] [-scenario <name>] [-format table|csv] [-o <file>]

  Runs the Monte Carlo projection and prints a summary table, or the full
  result table as CSV.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Path to the YAML configuration file")
	f.StringVar(&c.scenario, "scenario", "", "Run a stored scenario instead of the config file")
	f.StringVar(&c.format, "format", "table", "Output format: table or csv")
	f.StringVar(&c.out, "o", "", "Write output to a file instead of stdout")
	f.IntVar(&c.sims, "sims", 0, "Override the simulation count")
	f.IntVar(&c.years, "years", 0, "Override the projection year count")
	f.Int64Var(&c.seed, "seed", 0, "Override the random seed")
	f.IntVar(&c.workers, "workers", 0, "Override the worker count (1 = single shared stream)")
}

func (c *runCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configPath, c.scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.sims > 0 {
		cfg.Simulation.Sims = c.sims
	}
	if c.years > 0 {
		cfg.Simulation.Years = c.years
	}
	if c.seed != 0 {
		cfg.Simulation.Seed = c.seed
	}
	if c.workers > 0 {
		cfg.Simulation.Workers = c.workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	rows := projector.RunConfigured(cfg)

	w := os.Stdout
	if c.out != "" {
		f, err := os.Create(c.out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		w = f
	}

	switch c.format {
	case "csv":
		if err := report.WriteCSV(w, rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	case "table":
		fmt.Fprint(w, report.FormatRunReport(summary.Summarize(rows)))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
