package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/store"
	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download fund histories into the data directory" }
func (*fetchCmd) Usage() string {
	return `fsim fetch [<fund>...]

  Downloads the daily closes and dividends of the given funds, or of every
  fund of the catalog, from the configured source (-source) and writes one
  file per fund in the data directory (-data).

  Funds that could not be downloaded are listed in fondos_no_disponibles.json.
`
}

func (*fetchCmd) SetFlags(*flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := fundIDs(f.Args())
	funds := make([]fundsim.Fund, len(ids))
	for i, id := range ids {
		funds[i] = fundsim.Describe(id)
	}

	r, err := store.Download(ctx, remote(), store.NewFiles(cfg.DataDir), funds, cfg.Workers)
	if err != nil {
		return fail("downloading: %v", err)
	}
	fmt.Printf("%d fund(s) saved in %s\n", len(r.Saved), cfg.DataDir)
	for _, err := range r.Failures {
		fmt.Printf("  unavailable %v\n", err)
	}
	return subcommands.ExitSuccess
}
