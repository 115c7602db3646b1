package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/etnz/fundsim/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fsim assist [<question>]

  Starts a conversation with an analyst able to compute fund metrics,
  allocations, projections and risk profiles. Requires GEMINI_API_KEY.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("initializing Gemini's client: %v", err)
	}
	p, done, err := openProvider()
	if err != nil {
		return fail("%v", err)
	}
	defer done()

	analyst := agent.NewAnalyst(&agent.Tools{Provider: p, Workers: cfg.Workers})
	a := agent.New(os.Stdout, os.Stdin, analyst, agent.NewTrader())
	a.Print = func(_ io.Writer, md string) { printMarkdown(md) }
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail("agent failed: %v", err)
	}
	return subcommands.ExitSuccess
}
