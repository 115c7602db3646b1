package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/renderer"
	"github.com/google/subcommands"
)

type classifyCmd struct {
	json bool
}

func (*classifyCmd) Name() string     { return "classify" }
func (*classifyCmd) Synopsis() string { return "find your risk profile from the questionnaire" }
func (*classifyCmd) Usage() string {
	return `fsim classify [-json] [<answers>]

  Scores the 8 answers of the risk questionnaire, each a letter from a to d,
  like "abcdabcd", and prints the risk profile and its strategy.

  Without answers, asks the questions one by one.
`
}

func (c *classifyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the profile as JSON.")
}

func (c *classifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := questionnaire(strings.Join(f.Args(), ""), os.Stdin, os.Stdout)
	if err != nil {
		return fail("%v", err)
	}
	if c.json {
		return printJSON(r)
	}
	printMarkdown(renderer.RenderProfile(r))
	return subcommands.ExitSuccess
}

// questionnaire scores the answers, asking them on r and w when empty.
func questionnaire(answers string, r io.Reader, w io.Writer) (*renderer.ProfileReport, error) {
	var parsed [fundsim.QuestionCount]fundsim.Answer
	var err error
	if answers == "" {
		parsed, err = ask(r, w)
	} else {
		parsed, err = fundsim.ParseAnswers(answers)
	}
	if err != nil {
		return nil, err
	}
	score, err := fundsim.Score(parsed)
	if err != nil {
		return nil, err
	}
	profile, err := fundsim.ProfileForScore(score)
	if err != nil {
		return nil, err
	}
	return renderer.NewProfileReport(parsed, score, profile), nil
}

// ask asks every question until it gets a valid answer.
func ask(r io.Reader, w io.Writer) (answers [fundsim.QuestionCount]fundsim.Answer, err error) {
	in := bufio.NewScanner(r)
	for i, q := range fundsim.Questionnaire {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Text)
		for j, choice := range q.Choices {
			fmt.Fprintf(w, "   %c) %s\n", 'a'+j, choice)
		}
		for {
			fmt.Fprint(w, "> ")
			if !in.Scan() {
				if err := in.Err(); err != nil {
					return answers, err
				}
				return answers, fmt.Errorf("%w: question %d left unanswered", fundsim.ErrInvalidAnswer, i+1)
			}
			a, err := fundsim.ParseAnswer(strings.TrimSpace(in.Text()))
			if err == nil {
				answers[i] = a
				break
			}
			fmt.Fprintln(w, "Please answer a, b, c or d.")
		}
	}
	return answers, nil
}
