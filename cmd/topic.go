package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fundsim/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `fsim topic [<topic>...]

  Shows the documentation of the topics, '*' for all of them. Without topic,
  lists them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail("reading doc: %v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
