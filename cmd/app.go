// Package cmd implements the fsim CLI application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/config"
	"github.com/etnz/fundsim/eodhd"
	"github.com/etnz/fundsim/store"
	"github.com/etnz/fundsim/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// Commands are the fsim subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"funds": {
		&fundsCmd{},
		&fetchCmd{},
		&searchCmd{},
	},
	"analysis": {
		&metricsCmd{},
		&allocateCmd{},
		&projectCmd{},
		&classifyCmd{},
		&simulateCmd{},
		&chartCmd{},
	},
	"help": {
		&topicCmd{},
		&assistCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	envFile   = flag.String("env", ".env", "File of environment variables to load.")
	dataFlag  = flag.String("data", "", "Directory of the fund files. Overrides FUNDSIM_DATA.")
	dbFlag    = flag.String("db", "", "SQLite cache of fund histories, refreshed daily from the source. Overrides FUNDSIM_DB.")
	srcFlag   = flag.String("source", "", "Source of fund histories, yahoo or eodhd. Overrides FUNDSIM_SOURCE.")
	workers   = flag.Int("workers", 0, "Number of concurrent fetches. Overrides FUNDSIM_WORKERS.")
	verbosity = flag.String("log-level", "", "Log level, debug, info, warn or error. Overrides FUNDSIM_LOG_LEVEL.")
	logJSON   = flag.Bool("log-json", false, "Log as JSON lines.")
)

// cfg is the configuration after Setup.
var cfg = &config.Config{DataDir: "Data", Source: config.SourceYahoo, Workers: 1, Currency: "MXN", LogLevel: "info", LogFormat: "console"}

// Setup loads the configuration, applies the global flags, and sets the
// logging up. It must be called after flag.Parse.
func Setup() error {
	c, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *dataFlag != "" {
		c.DataDir = *dataFlag
	}
	if *dbFlag != "" {
		c.DBPath = *dbFlag
	}
	if *srcFlag != "" {
		c.Source = *srcFlag
	}
	if *workers > 0 {
		c.Workers = *workers
	}
	if *verbosity != "" {
		c.LogLevel = *verbosity
	}
	if *logJSON {
		c.LogFormat = "json"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := SetupLogging(c.LogLevel, c.LogFormat, os.Stderr); err != nil {
		return err
	}
	cfg = c
	return nil
}

// remote returns the configured online source of fund histories.
func remote() fundsim.SeriesProvider {
	if cfg.Source == config.SourceEODHD {
		return eodhd.New(cfg.EODHDKey, cfg.CacheDir, cfg.CachePeriod)
	}
	return &yahoo.Client{}
}

// openProvider returns the provider of fund histories used by the
// analysis commands: the SQLite cache over the online source when a
// database is configured, the local fund files otherwise.
//
// close must be called once done.
func openProvider() (p fundsim.SeriesProvider, close func(), err error) {
	if cfg.DBPath == "" {
		return store.NewFiles(cfg.DataDir), func() {}, nil
	}
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("db", cfg.DBPath).Str("source", cfg.Source).Msg("using the cache")
	return &store.Cached{Cache: db, Source: remote()}, func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("closing the cache")
		}
	}, nil
}

// fundIDs returns the funds named in args, or every fund of the catalog.
// Names are resolved to symbols through the catalog.
func fundIDs(args []string) []string {
	if len(args) == 0 {
		ids := make([]string, len(fundsim.Catalog))
		for i, f := range fundsim.Catalog {
			ids[i] = f.Symbol
		}
		return ids
	}
	ids := make([]string, len(args))
	for i, a := range args {
		ids[i] = fundsim.Describe(a).Symbol
	}
	return ids
}

// analyze computes the metrics of the funds in args.
func analyze(ctx context.Context, args []string, opts ...fundsim.MetricsOption) (fundsim.Analysis, error) {
	p, done, err := openProvider()
	if err != nil {
		return fundsim.Analysis{}, err
	}
	defer done()
	return fundsim.AnalyzeFunds(ctx, p, fundIDs(args), cfg.Workers, opts...)
}

// fail prints the error and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
