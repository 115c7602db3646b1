package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/renderer"
	"github.com/google/subcommands"
)

type simulateCmd struct {
	answers     string
	strategy    string
	equal       bool
	amount      string
	years       int
	age         int
	retire      int
	compounding string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "classify, allocate and project in one go" }
func (*simulateCmd) Usage() string {
	return `fsim simulate [-answers <answers>] [-strategy <name>] [-equal] [-amount <amount>] [-years <n>] [-age <age> -retire <age>] [<fund>...]

  Runs the whole simulation: finds the risk profile from the questionnaire
  (asked interactively without -answers), allocates the given funds, or
  every fund of the catalog, with the profile's strategy, and projects the
  amount at the portfolio's expected return.

  -strategy skips the questionnaire. -equal weights the selected funds
  equally whatever the profile. With -age and -retire the projection runs
  until the retirement age instead of -years.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.answers, "answers", "", "The 8 answers of the questionnaire, like abcdabcd.")
	f.StringVar(&c.strategy, "strategy", "", "The allocation strategy, instead of the questionnaire's.")
	f.BoolVar(&c.equal, "equal", false, "Weight the selected funds equally (the personalized strategy).")
	f.StringVar(&c.amount, "amount", "10000", "The initial amount.")
	f.IntVar(&c.years, "years", 10, "The number of years.")
	f.IntVar(&c.age, "age", 0, "The investor's current age.")
	f.IntVar(&c.retire, "retire", 0, "The retirement age, with -age.")
	f.StringVar(&c.compounding, "compounding", fundsim.Annual.String(), "continuous or annual.")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := fundsim.ParseCompounding(c.compounding)
	if err != nil {
		return fail("%v", err)
	}
	initial, err := fundsim.ParseMoney(c.amount, cfg.Currency)
	if err != nil {
		return fail("%v", err)
	}
	if !initial.IsPositive() {
		return fail("-amount must be positive, got %s", initial)
	}

	years := c.years
	if c.retire > 0 {
		if c.age <= 0 || c.retire <= c.age {
			return fail("-retire %d needs an -age below it", c.retire)
		}
		years = c.retire - c.age
	}

	var md strings.Builder
	var strategy fundsim.Strategy
	if c.strategy != "" {
		if strategy, err = fundsim.ParseStrategy(c.strategy); err != nil {
			return fail("%v", err)
		}
	} else {
		profile, err := questionnaire(c.answers, os.Stdin, os.Stdout)
		if err != nil {
			return fail("%v", err)
		}
		strategy = profile.Profile.Strategy()
		md.WriteString(renderer.RenderProfile(profile))
		md.WriteString("\n")
	}
	if c.equal {
		strategy = fundsim.Personalized
	}

	a, err := analyze(ctx, f.Args())
	if err != nil {
		return fail("%v", err)
	}
	res, err := fundsim.Allocate(strategy, a.Metrics)
	if err != nil {
		return fail("allocating: %v", err)
	}
	md.WriteString(renderer.RenderAllocation(renderer.NewAllocationReport(res)))
	if excluded := a.Excluded(); len(excluded) > 0 {
		fmt.Fprintf(&md, "\nExcluded for lack of data: %s\n", strings.Join(excluded, ", "))
	}

	rate := res.PortfolioReturn.Rate()
	final, err := fundsim.ProjectFinal(initial.Float(), rate, years, mode)
	if err != nil {
		return fail("%v", err)
	}
	values, err := fundsim.ProjectMoney(initial, rate, years, mode)
	if err != nil {
		return fail("%v", err)
	}
	if c.retire > 0 {
		fmt.Fprintf(&md, "\nAt %d, in %d years: **%s**\n", c.retire, years, fundsim.M(final, initial.Currency()).Round())
	} else {
		fmt.Fprintf(&md, "\nIn %d years: **%s**\n", years, fundsim.M(final, initial.Currency()).Round())
	}
	md.WriteString("\n")
	md.WriteString(renderer.RenderProjection(renderer.NewProjectionReport(initial, rate, mode, values, c.age)))

	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
