// Package agent implements the interactive assistant over the ledger. It
// wires a Gemini chat session to a library of functions exposing the
// ledger operations, so the model can query and mutate the ledger on the
// user's behalf.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the assistant that handles the chat session.
type Agent struct {
	w          io.Writer
	r          *bufio.Reader
	Accountant *Expert
	// Render formats the model's markdown answers for the terminal. Left
	// nil, answers are printed verbatim.
	Render func(string) string
}

// New creates a new Agent reading user input from r and writing the
// conversation to w (typically os.Stdin and os.Stdout).
func New(w io.Writer, r io.Reader, accountant *Expert) *Agent {
	return &Agent{
		w:          w,
		r:          bufio.NewReader(r),
		Accountant: accountant,
	}
}

// Start creates the underlying chat sessions.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	return a.Accountant.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive REPL session. Items in prompts are consumed
// as if the user had typed them, before reading from the input; the
// session ends on "bye" or EOF.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Accountant.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to pfm assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D.
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Accountant.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		answer := content.Parts[0].Text
		if a.Render != nil {
			answer = a.Render(answer)
		}
		fmt.Fprintln(a.w, answer)
	}
}
