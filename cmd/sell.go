package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack"
	"github.com/shopspring/decimal"
)

type sellCmd struct {
	date string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale, reducing the units held" }
func (*sellCmd) Usage() string {
	return `wt sell [-d <date>] <holding> <units> <price>

  Records a sale. <holding> is a symbol or a holding id. Selling more units
  than held clamps the position at zero and prints a warning; the sale log
  keeps the quantity you entered. The average cost never changes on a sale.

Usage Examples:
$ wt sell MAYBANK 100 9.80

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "sale date, defaults to today")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		return usageError("sell wants <holding> <units> <price>, got %d arguments", f.NArg())
	}
	units, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return usageError("invalid units %q: %v", f.Arg(1), err)
	}
	price, err := decimal.NewFromString(f.Arg(2))
	if err != nil {
		return usageError("invalid price %q: %v", f.Arg(2), err)
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
	ev, warn, err := book.Ledger.RecordSale(h.ID, wealthtrack.Q(units), wealthtrack.M(price, ""), date)
	if err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}

	if warn != nil {
		fmt.Fprintln(os.Stderr, "Warning:", warn)
	}
	fmt.Printf("Sold %s %s for %s. %s units remain.\n", ev.Units, h.Symbol, ev.Proceeds, h.Units)
	return subcommands.ExitSuccess
}
