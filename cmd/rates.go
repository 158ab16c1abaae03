package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack/agent"
)

type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "look up current fixed-deposit promotional rates" }
func (*ratesCmd) Usage() string {
	return `wt rates

  Asks the lookup agent for the promotional fixed-deposit rates Malaysian
  banks currently offer. Needs GEMINI_API_KEY in the environment or a .env
  file. The book is not touched.

`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	scout, err := agent.NewScout(ctx)
	if err != nil {
		return fail(err)
	}
	text, sources, err := scout.DepositRates(ctx)
	if err != nil {
		return fail(err)
	}

	printMarkdown(text)
	for _, src := range sources {
		fmt.Fprintf(os.Stderr, "  source: %s (%s)\n", src.Title, src.URL)
	}
	return subcommands.ExitSuccess
}
