// Package cmd implements the wt command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack"
)

// Commands lists every subcommand of the wt tool, in help order.
// A main package registers them all and executes the selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&dividendCmd{},
	&priceCmd{},
	&editCmd{},
	&snapshotCmd{},
	&holdingsCmd{},
	&historyCmd{},
	&salesCmd{},
	&dividendLogCmd{},
	&fdListCmd{},
	&fdAddCmd{},
	&fdCollectCmd{},
	&ratesCmd{},
	&exportCmd{},
	&topicCmd{},
}

// As a CLI application the process is short lived, so the book location is a
// plain global flag shared by every command.
var bookFile = flag.String("f", defaultBookFile(), "path to the book file")

func defaultBookFile() string {
	if path := os.Getenv("WT_FILE"); path != "" {
		return path
	}
	return wealthtrack.DefaultBookFile
}

// LoadBook reads the book from the app book file, empty on first run.
func LoadBook() (*wealthtrack.Book, error) {
	return wealthtrack.Load(*bookFile)
}

// SaveBook persists the whole book back to the app book file. Every mutating
// command calls it exactly once, after its single mutation succeeded.
func SaveBook(b *wealthtrack.Book) error {
	return wealthtrack.Save(*bookFile, b)
}

// printMarkdown renders a markdown report for the terminal. When rendering
// fails (no TTY capabilities, broken style) the raw markdown is still usable,
// so print that instead.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// parseDateFlag parses an optional date flag. Empty means the zero Date,
// which the engine resolves to today.
func parseDateFlag(s string) (wealthtrack.Date, error) {
	if s == "" {
		return wealthtrack.Date{}, nil
	}
	return wealthtrack.ParseDate(s)
}

// resolveHolding accepts a holding id or a symbol. A symbol held both as a
// share and as a fund is ambiguous and must be addressed by id.
func resolveHolding(l *wealthtrack.Ledger, key string) (*wealthtrack.Holding, error) {
	if h := l.Holding(key); h != nil {
		return h, nil
	}
	var matches []*wealthtrack.Holding
	for h := range l.Holdings() {
		if strings.EqualFold(h.Symbol, key) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no holding matches %q", key)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d holdings, use the holding id instead", key, len(matches))
	}
}

// resolveDeposit accepts a fixed-deposit id or slip number.
func resolveDeposit(b *wealthtrack.Book, key string) (*wealthtrack.FixedDeposit, error) {
	if fd := b.Deposit(key); fd != nil {
		return fd, nil
	}
	var matches []*wealthtrack.FixedDeposit
	for i := range b.Deposits {
		if strings.EqualFold(b.Deposits[i].Slip, key) {
			matches = append(matches, &b.Deposits[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no fixed deposit matches %q", key)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d fixed deposits, use the deposit id instead", key, len(matches))
	}
}
