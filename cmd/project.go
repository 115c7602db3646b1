package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/chart"
	"github.com/etnz/fundsim/renderer"
	"github.com/google/subcommands"
)

type projectCmd struct {
	amount      string
	currency    string
	rate        float64
	years       int
	compounding string
	age         int
	period      int
	json        bool
	png         string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the growth of an investment" }
func (*projectCmd) Usage() string {
	return `fsim project [-amount <amount>] [-rate <percent>] [-years <n>] [-compounding continuous|annual] [-age <age>] [-period <years>] [<fund>...]

  Prints the value of an investment at the end of each year.

  When funds are given, the rate is the equal weighted annualized return of
  their whole history, or of their last -period years: log returns with
  continuous compounding, geometric returns with annual compounding.
  Otherwise the -rate flag is used.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "10000", "The initial amount.")
	f.StringVar(&c.currency, "currency", "", "ISO code of the currency. Defaults to FUNDSIM_CURRENCY.")
	f.Float64Var(&c.rate, "rate", 7, "The yearly rate in percent, when no fund is given.")
	f.IntVar(&c.years, "years", 10, "The number of years.")
	f.StringVar(&c.compounding, "compounding", fundsim.Continuous.String(), "continuous or annual.")
	f.IntVar(&c.age, "age", 0, "The investor's current age, to show the age of each year.")
	f.IntVar(&c.period, "period", 0, "Trailing years of the fund returns, 0 for the full history.")
	f.BoolVar(&c.json, "json", false, "Print the projection as JSON.")
	f.StringVar(&c.png, "png", "", "Also draw the projection in this PNG file.")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := fundsim.ParseCompounding(c.compounding)
	if err != nil {
		return fail("%v", err)
	}
	currency := c.currency
	if currency == "" {
		currency = cfg.Currency
	}
	initial, err := fundsim.ParseMoney(c.amount, currency)
	if err != nil {
		return fail("%v", err)
	}
	if !initial.IsPositive() {
		return fail("-amount must be positive, got %s", initial)
	}

	rate := fundsim.Percent(c.rate).Rate()
	if f.NArg() > 0 {
		p, done, err := openProvider()
		if err != nil {
			return fail("%v", err)
		}
		defer done()
		if rate, err = fundsim.ProjectionRate(ctx, fundsim.TrailingProvider(p, c.period), fundIDs(f.Args()), mode); err != nil {
			return fail("computing the rate: %v", err)
		}
	}

	values, err := fundsim.ProjectMoney(initial, rate, c.years, mode)
	if err != nil {
		return fail("%v", err)
	}
	r := renderer.NewProjectionReport(initial, rate, mode, values, c.age)

	if c.png != "" {
		title := fmt.Sprintf("%s at %s", initial, r.Rate)
		if err := writeChart(c.png, func() ([]byte, error) { return chart.Projection(title, values, c.age) }); err != nil {
			return fail("%v", err)
		}
	}
	if c.json {
		return printJSON(r)
	}
	printMarkdown(renderer.RenderProjection(r))
	return subcommands.ExitSuccess
}
