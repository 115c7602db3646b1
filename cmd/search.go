package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fundsim/eodhd"
	"github.com/google/subcommands"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search funds on EODHD" }
func (*searchCmd) Usage() string {
	return `fsim search <search term>

  Searches for funds via EOD Historical Data API and prints their tickers.

  Requires the FUNDSIM_EODHD_API_KEY environment variable.
`
}

func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return fail("a search term is required")
	}
	if cfg.EODHDKey == "" {
		return fail("EODHD API key is not set, use the FUNDSIM_EODHD_API_KEY environment variable")
	}
	term := strings.Join(f.Args(), " ")

	results, err := eodhd.New(cfg.EODHDKey, cfg.CacheDir, cfg.CachePeriod).Search(ctx, term)
	if err != nil {
		return fail("searching %q: %v", term, err)
	}
	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", term)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), term)
	for _, item := range results {
		fmt.Printf("%-14s %s\n", item.Ticker(), item.Name)
		fmt.Printf("%-14s %s, %s, previous close %.2f on %s\n\n", "", item.Type, item.Currency, item.PreviousClose, item.PreviousCloseDate)
	}
	return subcommands.ExitSuccess
}
