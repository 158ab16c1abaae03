package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack/renderer"
)

// The two log listing commands: sales and dividends. Both are read-only
// renderings of the append-only logs.

type salesCmd struct{}

func (*salesCmd) Name() string     { return "sales" }
func (*salesCmd) Synopsis() string { return "list the sale log" }
func (*salesCmd) Usage() string {
	return `wt sales

  Lists every recorded sale with its proceeds, and the total.

`
}

func (c *salesCmd) SetFlags(f *flag.FlagSet) {}

func (c *salesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SalesMarkdown(book.Ledger))
	return subcommands.ExitSuccess
}

type dividendLogCmd struct{}

func (*dividendLogCmd) Name() string     { return "dividends" }
func (*dividendLogCmd) Synopsis() string { return "list the dividend log" }
func (*dividendLogCmd) Usage() string {
	return `wt dividends

  Lists every recorded dividend with the units held at the time, and the
  total received.

`
}

func (c *dividendLogCmd) SetFlags(f *flag.FlagSet) {}

func (c *dividendLogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.DividendsMarkdown(book.Ledger))
	return subcommands.ExitSuccess
}
