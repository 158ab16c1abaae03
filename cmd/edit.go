package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type editCmd struct {
	name   string
	agent  string
	notes  string
	delete bool
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a holding's details, or delete it" }
func (*editCmd) Usage() string {
	return `wt edit [-n <name>] [-a <agent>] [-notes <text>] [-delete] <holding>

  Edits the free-form fields of a holding; omitted flags leave their field
  unchanged. Units and average cost only move through buy and sell.
  -delete removes the holding entirely; its sale and dividend log entries
  survive.

`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "new display name")
	f.StringVar(&c.agent, "a", "", "new agent")
	f.StringVar(&c.notes, "notes", "", "new notes")
	f.BoolVar(&c.delete, "delete", false, "delete the holding")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("edit wants exactly one <holding>, got %d arguments", f.NArg())
	}

	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	h, err := resolveHolding(book.Ledger, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	if c.delete {
		if err := book.Ledger.DeleteHolding(h.ID); err != nil {
			return fail(err)
		}
		if err := SaveBook(book); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted holding %s (%s).\n", h.Symbol, h.ID)
		return subcommands.ExitSuccess
	}

	if c.name == "" && c.agent == "" && c.notes == "" {
		return usageError("nothing to change: pass -n, -a, -notes, or -delete")
	}
	if err := book.Ledger.UpdateDetails(h.ID, c.name, c.agent, c.notes); err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}
	fmt.Printf("Updated holding %s.\n", h.Symbol)
	return subcommands.ExitSuccess
}
