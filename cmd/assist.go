package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/forex/agent"
	"github.com/etnz/forex/logger"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct {
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fx assist [-model <name>] [question...]

  Starts an interactive session with an assistant that reads the books and
  knows the exchange market. The arguments are asked as a first question.
  Gemini credentials are read from the environment (GEMINI_API_KEY).
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", agent.DefaultModel, "Gemini model")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	settings, ledger, status := load()
	if status != subcommands.ExitSuccess {
		return status
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	log := logger.Named(appLogger(), "assist")
	accountant := agent.NewAccountant(c.model, ledger, accounting(settings))
	accountant.Log = log
	dealer := agent.NewDealer(c.model)
	dealer.Log = log
	a := agent.New(stdout, os.Stdin, accountant, dealer)
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
