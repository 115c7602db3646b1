package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/renderer"
	"github.com/etnz/fundsim/store"
	"github.com/google/subcommands"
)

type fundsCmd struct {
	local bool
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list the funds of the catalog" }
func (*fundsCmd) Usage() string {
	return `fsim funds [-local]

  Lists the funds of the catalog, and whether their history file is in the
  data directory. With -local, lists the fund files of the data directory
  instead, including funds outside the catalog.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.local, "local", false, "List the fund files of the data directory.")
}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	files := store.NewFiles(cfg.DataDir)
	r := &renderer.CatalogReport{}
	if c.local {
		funds, err := files.List()
		if err != nil {
			return fail("listing %s: %v", cfg.DataDir, err)
		}
		for _, fund := range funds {
			r.Funds = append(r.Funds, renderer.CatalogRow{Fund: fund, Available: true})
		}
	} else {
		for _, fund := range fundsim.Catalog {
			_, err := os.Stat(filepath.Join(cfg.DataDir, fund.FileName()))
			r.Funds = append(r.Funds, renderer.CatalogRow{Fund: fund, Available: err == nil})
		}
	}
	printMarkdown(renderer.RenderCatalog(r))
	return subcommands.ExitSuccess
}
