package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack"
	"github.com/shopspring/decimal"
)

type buyCmd struct {
	kind     string
	name     string
	agent    string
	date     string
	currency string
	notes    string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase of shares or fund units" }
func (*buyCmd) Usage() string {
	return `wt buy [-k share|fund] [-n <name>] [-a <agent>] [-d <date>] [-c <currency>] <symbol> <units> <price>

  Records a purchase. The first purchase of a symbol creates the holding;
  later purchases fold into it, recomputing the weighted-average cost.

Usage Examples:
$ wt buy -k fund -n "Global Index Fund" -a FundSupermart GIF 100 2.00
$ wt buy -a Rakuten MAYBANK 200 9.15

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "share", "kind of instrument: share or fund")
	f.StringVar(&c.name, "n", "", "display name, defaults to the symbol")
	f.StringVar(&c.agent, "a", "", "broker or platform the purchase went through")
	f.StringVar(&c.date, "d", "", "purchase date, defaults to today (see 'wt topic dates')")
	f.StringVar(&c.currency, "c", "", "currency code, defaults to "+wealthtrack.DefaultCurrency)
	f.StringVar(&c.notes, "notes", "", "free-form notes on the holding")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		return usageError("buy wants <symbol> <units> <price>, got %d arguments", f.NArg())
	}
	symbol := f.Arg(0)
	units, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return usageError("invalid units %q: %v", f.Arg(1), err)
	}
	price, err := decimal.NewFromString(f.Arg(2))
	if err != nil {
		return usageError("invalid price %q: %v", f.Arg(2), err)
	}
	kind, err := wealthtrack.ParseKind(c.kind)
	if err != nil {
		return usageError("%v", err)
	}
	date, err := parseDateFlag(c.date)
	if err != nil {
		return usageError("%v", err)
	}

	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	h, err := book.Ledger.RecordPurchase(wealthtrack.PurchaseInput{
		Kind:      kind,
		Symbol:    symbol,
		Name:      c.name,
		Agent:     c.agent,
		Units:     wealthtrack.Q(units),
		UnitPrice: wealthtrack.M(price, c.currency),
		Date:      date,
		Notes:     c.notes,
	})
	if err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}

	fmt.Printf("Bought %s %s. Now holding %s units at %s average cost.\n",
		units, h.Symbol, h.Units, h.AvgCost)
	return subcommands.ExitSuccess
}
