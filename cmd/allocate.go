package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/chart"
	"github.com/etnz/fundsim/renderer"
	"github.com/google/subcommands"
)

type allocateCmd struct {
	strategy string
	profile  string
	period   int
	json     bool
	png      string
}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "select and weight funds with a strategy" }
func (*allocateCmd) Usage() string {
	return `fsim allocate [-strategy <name> | -profile <name>] [-json] [-png <file>] [<fund>...]

  Selects up to 5 of the given funds, or of every fund of the catalog, and
  weights them according to the strategy. Prints the weights and the
  portfolio's expected return and volatility.

  Strategies: ` + strings.Join(strategyNames(), ", ") + `
`
}

func (c *allocateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.strategy, "strategy", fundsim.Conservative.String(), "The allocation strategy.")
	f.StringVar(&c.profile, "profile", "", "A risk profile, overrides -strategy with the profile's strategy.")
	f.IntVar(&c.period, "period", fundsim.DefaultPeriod, "Trailing years of the annualized return and volatility, 0 for the full history.")
	f.BoolVar(&c.json, "json", false, "Print the allocation as JSON.")
	f.StringVar(&c.png, "png", "", "Also draw the allocation as a pie chart in this PNG file.")
}

func (c *allocateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	strategy, err := c.chosen()
	if err != nil {
		return fail("%v", err)
	}
	a, err := analyze(ctx, f.Args(), fundsim.WithPeriod(c.period))
	if err != nil {
		return fail("%v", err)
	}
	res, err := fundsim.Allocate(strategy, a.Metrics)
	if err != nil {
		return fail("allocating: %v", err)
	}

	if c.png != "" {
		if err := writeChart(c.png, func() ([]byte, error) { return chart.Allocation(res) }); err != nil {
			return fail("%v", err)
		}
	}
	if c.json {
		return printJSON(res)
	}
	md := renderer.RenderAllocation(renderer.NewAllocationReport(res))
	if excluded := a.Excluded(); len(excluded) > 0 {
		md += fmt.Sprintf("\nExcluded for lack of data: %s\n", strings.Join(excluded, ", "))
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// chosen returns the strategy of the profile if any, the strategy flag otherwise.
func (c *allocateCmd) chosen() (fundsim.Strategy, error) {
	if c.profile != "" {
		p, err := fundsim.ParseRiskProfile(c.profile)
		if err != nil {
			return 0, err
		}
		return p.Strategy(), nil
	}
	return fundsim.ParseStrategy(c.strategy)
}

func strategyNames() []string {
	var names []string
	for _, s := range fundsim.Strategies() {
		names = append(names, s.String())
	}
	return names
}

// writeChart writes the image drawn by draw in file.
func writeChart(file string, draw func() ([]byte, error)) error {
	img, err := draw()
	if err != nil {
		return fmt.Errorf("drawing %s: %w", file, err)
	}
	if err := os.WriteFile(file, img, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "chart written to %s\n", file)
	return nil
}
