package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack"
)

type exportCmd struct {
	format  string
	section string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the book as CSV or JSON" }
func (*exportCmd) Usage() string {
	return `wt export [-format csv|json] [-section <name>]

  Writes to stdout. CSV exports one section as a flat table; sections:
  ` + strings.Join(wealthtrack.CSVSections(), ", ") + `.
  JSON exports the whole book in its native layout.

Usage Examples:
$ wt export -format csv -section sales > sales.csv
$ wt export -format json > backup.json

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "output format: csv or json")
	f.StringVar(&c.section, "section", "investments", "book section to export as csv")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}

	switch c.format {
	case "csv":
		if err := wealthtrack.ExportCSV(os.Stdout, book, c.section); err != nil {
			return fail(err)
		}
	case "json":
		if err := wealthtrack.EncodeBook(os.Stdout, book); err != nil {
			return fail(err)
		}
	default:
		return usageError("unknown format %q, want csv or json", c.format)
	}
	return subcommands.ExitSuccess
}
