package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack"
	"github.com/khlim/wealthtrack/renderer"
	"github.com/shopspring/decimal"
)

// The fixed-deposit commands: fd (list), fd-add, and fd-collect.

type fdListCmd struct {
	history bool
}

func (*fdListCmd) Name() string     { return "fd" }
func (*fdListCmd) Synopsis() string { return "list fixed deposits" }
func (*fdListCmd) Usage() string {
	return `wt fd [-history]

  Lists the live certificates with their interest and maturity value,
  flagging the matured ones. -history lists the collected certificates
  instead.

`
}

func (c *fdListCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.history, "history", false, "list collected certificates instead of live ones")
}

func (c *fdListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	if c.history {
		printMarkdown(renderer.MaturitiesMarkdown(book))
	} else {
		printMarkdown(renderer.DepositsMarkdown(book, wealthtrack.Today()))
	}
	return subcommands.ExitSuccess
}

type fdAddCmd struct {
	bank     string
	slip     string
	start    string
	maturity string
	rate     string
	currency string
	remarks  string
}

func (*fdAddCmd) Name() string     { return "fd-add" }
func (*fdAddCmd) Synopsis() string { return "record a new fixed-deposit certificate" }
func (*fdAddCmd) Usage() string {
	return `wt fd-add -bank <bank> -start <date> -maturity <date> -rate <pct> [-slip <no>] [-c <currency>] [-remarks <text>] <principal>

  Records a certificate. Interest is simple interest over the actual tenure:
  principal * rate/100 * days/365.

Usage Examples:
$ wt fd-add -bank "Maybank" -slip 123456 -start 2025-01-15 -maturity 2026-01-15 -rate 3.85 10000

`
}

func (c *fdAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bank, "bank", "", "bank holding the deposit")
	f.StringVar(&c.slip, "slip", "", "certificate or slip number")
	f.StringVar(&c.start, "start", "", "placement date")
	f.StringVar(&c.maturity, "maturity", "", "maturity date")
	f.StringVar(&c.rate, "rate", "", "annual interest rate, in percent")
	f.StringVar(&c.currency, "c", "", "currency code, defaults to "+wealthtrack.DefaultCurrency)
	f.StringVar(&c.remarks, "remarks", "", "free-form remarks")
}

func (c *fdAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("fd-add wants exactly one <principal>, got %d arguments", f.NArg())
	}
	principal, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		return usageError("invalid principal %q: %v", f.Arg(0), err)
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return usageError("invalid rate %q: %v", c.rate, err)
	}
	start, err := wealthtrack.ParseDate(c.start)
	if err != nil {
		return usageError("invalid start date: %v", err)
	}
	maturity, err := wealthtrack.ParseDate(c.maturity)
	if err != nil {
		return usageError("invalid maturity date: %v", err)
	}
	currency := c.currency
	if currency == "" {
		currency = wealthtrack.DefaultCurrency
	}

	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	fd, err := book.AddDeposit(wealthtrack.FixedDeposit{
		Bank:      c.bank,
		Slip:      c.slip,
		Start:     start,
		Maturity:  maturity,
		Rate:      rate,
		Principal: wealthtrack.M(principal, currency),
		Remarks:   c.remarks,
	})
	if err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded %s deposit at %s, %s%% until %s. At maturity: %s.\n",
		fd.Principal, fd.Bank, fd.Rate, fd.Maturity, fd.MaturityValue())
	return subcommands.ExitSuccess
}

type fdCollectCmd struct {
	date     string
	action   string
	start    string
	maturity string
	rate     string
	amount   string
}

func (*fdCollectCmd) Name() string     { return "fd-collect" }
func (*fdCollectCmd) Synopsis() string { return "settle a matured fixed deposit" }
func (*fdCollectCmd) Usage() string {
	return `wt fd-collect [-d <date>] -action withdraw|renew [renewal flags] <deposit>

  Settles a certificate, identified by id or slip number. The maturity log
  always gets an entry snapshotting the terms and interest earned. With
  -action withdraw the certificate is removed. With -action renew it is
  replaced: pass -start, -maturity, -rate for the new terms; -principal
  defaults to the old principal.

Usage Examples:
$ wt fd-collect -action withdraw 123456
$ wt fd-collect -action renew -start 2026-01-15 -maturity 2027-01-15 -rate 3.60 123456

`
}

func (c *fdCollectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "collection date, defaults to today")
	f.StringVar(&c.action, "action", "withdraw", "what happens to the certificate: withdraw or renew")
	f.StringVar(&c.start, "start", "", "renewal placement date")
	f.StringVar(&c.maturity, "maturity", "", "renewal maturity date")
	f.StringVar(&c.rate, "rate", "", "renewal annual rate, in percent")
	f.StringVar(&c.amount, "principal", "", "renewal principal, defaults to the old principal")
}

func (c *fdCollectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("fd-collect wants exactly one <deposit>, got %d arguments", f.NArg())
	}
	action, err := wealthtrack.ParseMaturityAction(c.action)
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
	fd, err := resolveDeposit(book, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	var renewed *wealthtrack.FixedDeposit
	if action == wealthtrack.Renew {
		renewed, err = c.renewal(*fd)
		if err != nil {
			return usageError("%v", err)
		}
	}

	entry, err := book.CollectDeposit(fd.ID, date, action, renewed)
	if err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}

	fmt.Printf("Collected %s deposit at %s: %s interest earned at %s%%.\n",
		entry.Principal, entry.Bank, entry.Interest, entry.Rate)
	if action == wealthtrack.Renew {
		fmt.Printf("Renewed until %s at %s%%.\n", renewed.Maturity, renewed.Rate)
	}
	return subcommands.ExitSuccess
}

// renewal builds the replacement certificate from the renewal flags, keeping
// the old certificate's bank and slip.
func (c *fdCollectCmd) renewal(old wealthtrack.FixedDeposit) (*wealthtrack.FixedDeposit, error) {
	start, err := wealthtrack.ParseDate(c.start)
	if err != nil {
		return nil, fmt.Errorf("renewal needs -start: %w", err)
	}
	maturity, err := wealthtrack.ParseDate(c.maturity)
	if err != nil {
		return nil, fmt.Errorf("renewal needs -maturity: %w", err)
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return nil, fmt.Errorf("renewal needs -rate: %w", err)
	}
	principal := old.Principal
	if c.amount != "" {
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			return nil, fmt.Errorf("invalid renewal principal %q: %w", c.amount, err)
		}
		principal = wealthtrack.M(amount, old.Principal.Currency())
	}
	return &wealthtrack.FixedDeposit{
		Bank:      old.Bank,
		Slip:      old.Slip,
		Start:     start,
		Maturity:  maturity,
		Rate:      rate,
		Principal: principal,
		Remarks:   old.Remarks,
	}, nil
}
