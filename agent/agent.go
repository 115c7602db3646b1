// Package agent implements a conversational fund analyst on top of Gemini.
//
// A facilitator talks to the user and delegates to experts: the Analyst
// computes with fundsim, the Trader searches the news.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, it defaults to a plain print to w.
	Print func(w io.Writer, markdown string)
}

// New creates an Agent reading the user from r and answering to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start creates the chats of the facilitator and every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session. prompts are sent first, as if typed by the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to fsim assist. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)
		input, more, err := a.next(&prompts)
		if err != nil || !more {
			return err
		}
		if input == "" {
			continue
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.print(text(content))
	}
}

// next returns the next user input, from the pending prompts first. It
// returns false when the session is over.
func (a *Agent) next(prompts *[]string) (string, bool, error) {
	var input string
	if len(*prompts) > 0 {
		input, *prompts = strings.TrimSpace((*prompts)[0]), (*prompts)[1:]
		fmt.Fprintln(a.w, input)
	} else {
		line, err := a.r.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			return "", false, nil // Ctrl+D
		}
		if err != nil && err != io.EOF {
			return "", false, err
		}
		input = strings.TrimSpace(line)
	}
	if input == "bye" {
		return "", false, nil
	}
	return input, true, nil
}

func (a *Agent) print(markdown string) {
	if a.Print != nil {
		a.Print(a.w, markdown)
		return
	}
	fmt.Fprintln(a.w, markdown)
}

// text concatenates the text parts of a content.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
