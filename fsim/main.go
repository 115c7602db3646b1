// Command fsim analyzes funds, allocates a portfolio and projects its growth.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/cmd"
	"github.com/etnz/fundsim/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

const name = "fsim"

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// COMP_LINE and COMP_INSTALL are handled here, and exit.
	completion(commander).Complete(name)

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	code := commander.Execute(ctx)
	stop()
	os.Exit(int(code))
}

// completion describes the fsim command line for shell completion.
func completion(commander *subcommands.Commander) *complete.Command {
	var symbols []string
	for _, f := range fundsim.Catalog {
		symbols = append(symbols, f.Symbol)
	}
	funds := predict.Set(symbols)
	topics, _ := docs.GetAllTopics()

	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch c.Name() {
		case "topic":
			sub.Args = predict.Set(topics)
		case "classify", "search", "assist", "help", "flags", "commands":
		default:
			sub.Args = funds
		}
		root.Sub[c.Name()] = sub
	})
	return root
}

// flagPredictors predicts the values of known flags.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case f.Name == "strategy":
			var names []string
			for _, s := range fundsim.Strategies() {
				names = append(names, s.String())
			}
			flags[f.Name] = predict.Set(names)
		case f.Name == "profile":
			flags[f.Name] = predict.Set{"conservative", "moderate", "aggressive", "very-aggressive"}
		case f.Name == "compounding":
			flags[f.Name] = predict.Set{"continuous", "annual"}
		case f.Name == "source":
			flags[f.Name] = predict.Set{"yahoo", "eodhd"}
		case f.Name == "png" || f.Name == "o":
			flags[f.Name] = predict.Files("*.png")
		case f.Name == "env" || f.Name == "db":
			flags[f.Name] = predict.Files("*")
		case f.Name == "data":
			flags[f.Name] = predict.Dirs("*")
		case f.Name == "log-level":
			flags[f.Name] = predict.Set{"debug", "info", "warn", "error"}
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
