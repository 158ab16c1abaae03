package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack/renderer"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show the portfolio, or one holding in detail" }
func (*holdingsCmd) Usage() string {
	return `wt holdings [<holding>]

  Without arguments, renders the portfolio report: every holding with units
  remaining, its valuation, and the totals. With a symbol or id, renders
  that holding in detail with its purchase history.

`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}

	if f.NArg() > 0 {
		h, err := resolveHolding(book.Ledger, f.Arg(0))
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.HoldingMarkdown(h))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.HoldingsMarkdown(book.Ledger))
	return subcommands.ExitSuccess
}
