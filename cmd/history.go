package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the fund valuation snapshot history" }
func (*historyCmd) Usage() string {
	return `wt history

  Lists the captured fund valuation snapshots in date order: total cost,
  total value, and P&L for each day a snapshot was taken.

`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HistoryMarkdown(book.Ledger))
	return subcommands.ExitSuccess
}
