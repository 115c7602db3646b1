package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/date"
	"github.com/etnz/fundsim/renderer"
	"github.com/google/subcommands"
)

type metricsCmd struct {
	period int
	json   bool
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "compute the return, volatility and dividends of funds" }
func (*metricsCmd) Usage() string {
	return `fsim metrics [-period <years>] [-json] [<fund>...]

  Computes the annualized return and volatility, the YTD return and the
  dividends of the given funds, or of every fund of the catalog.

  Funds without enough data are excluded, with the reason.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.period, "period", fundsim.DefaultPeriod, "Trailing years of the annualized return and volatility, 0 for the full history.")
	f.BoolVar(&c.json, "json", false, "Print the metrics as JSON.")
}

func (c *metricsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today := date.Today()
	a, err := analyze(ctx, f.Args(), fundsim.WithPeriod(c.period), fundsim.WithToday(today))
	if err != nil {
		return fail("%v", err)
	}
	if c.json {
		return printJSON(a.Metrics)
	}
	printMarkdown(renderer.RenderMetrics(renderer.NewMetricsReport(a, c.period, today)))
	return subcommands.ExitSuccess
}
