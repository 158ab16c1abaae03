package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack"
	"github.com/shopspring/decimal"
)

type dividendCmd struct {
	date  string
	notes string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend received on a holding" }
func (*dividendCmd) Usage() string {
	return `wt dividend [-d <date>] [-notes <text>] <holding> <amount>

  Records a dividend. The log snapshots the units held at recording time;
  the holding itself is untouched.

Usage Examples:
$ wt dividend MAYBANK 58.00 -notes "final FY24"

`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "payment date, defaults to today")
	f.StringVar(&c.notes, "notes", "", "free-form note on this payment")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usageError("dividend wants <holding> <amount>, got %d arguments", f.NArg())
	}
	amount, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return usageError("invalid amount %q: %v", f.Arg(1), err)
	}
	date, err := parseDateFlag(c.date)
	if err != nil {
		return usageError("%v", err)
	}

	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	h, err := resolveHolding(book.Ledger, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	ev, err := book.Ledger.RecordDividend(h.ID, wealthtrack.M(amount, ""), date, c.notes)
	if err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded %s dividend on %s (%s units held).\n", ev.Amount, h.Symbol, ev.UnitsHeld)
	return subcommands.ExitSuccess
}
