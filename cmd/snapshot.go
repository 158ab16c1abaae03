package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type snapshotCmd struct {
	date string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "capture today's fund valuation snapshot" }
func (*snapshotCmd) Usage() string {
	return `wt snapshot [-d <date>]

  Sums cost and market value over every fund holding with units remaining
  and stores the result in the valuation history. Capturing twice on the
  same day overwrites the first capture.

`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "snapshot date, defaults to today")
}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	date, err := parseDateFlag(c.date)
	if err != nil {
		return usageError("%v", err)
	}

	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	snap := book.Ledger.CaptureValuationSnapshot(date)
	if err := SaveBook(book); err != nil {
		return fail(err)
	}

	fmt.Printf("Snapshot %s: cost %s, value %s, P&L %s.\n",
		snap.Date, snap.TotalCost, snap.TotalValue,
		snap.TotalValue.Sub(snap.TotalCost).SignedString())
	return subcommands.ExitSuccess
}
