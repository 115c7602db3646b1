package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/chart"
	"github.com/google/subcommands"
)

type chartCmd struct {
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the price history of funds" }
func (*chartCmd) Usage() string {
	return `fsim chart [-o <file>] <fund>...

  Draws the closing prices of the funds, rebased to 100 on their first
  common day, in a PNG file.

  Allocations and projections are drawn with the -png flag of allocate
  and project.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "history.png", "The PNG file to write.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return fail("at least one fund is required")
	}
	p, done, err := openProvider()
	if err != nil {
		return fail("%v", err)
	}
	defer done()

	ids := fundIDs(f.Args())
	series := make(map[string]fundsim.Series, len(ids))
	for _, id := range ids {
		s, err := p.Series(ctx, id)
		if err != nil {
			return fail("%v", err)
		}
		series[id] = s
	}
	if err := writeChart(c.output, func() ([]byte, error) { return chart.History(series, ids) }); err != nil {
		return fail("%v", err)
	}
	fmt.Println(c.output)
	return subcommands.ExitSuccess
}
