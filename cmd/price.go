package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/khlim/wealthtrack"
	"github.com/khlim/wealthtrack/agent"
	"github.com/shopspring/decimal"
)

type priceCmd struct{}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "update a holding's market price, by hand or by lookup" }
func (*priceCmd) Usage() string {
	return `wt price <holding> [<price>]

  With an explicit price, sets the holding's market price directly. Without
  one, asks the lookup agent to search for the latest price (needs
  GEMINI_API_KEY, see 'wt topic book'). A lookup failure changes nothing.

Usage Examples:
$ wt price MAYBANK 9.41
$ wt price GIF

`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		return usageError("price wants <holding> [<price>], got %d arguments", f.NArg())
	}

	book, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	h, err := resolveHolding(book.Ledger, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	var price decimal.Decimal
	if f.NArg() == 2 {
		price, err = decimal.NewFromString(f.Arg(1))
		if err != nil {
			return usageError("invalid price %q: %v", f.Arg(1), err)
		}
	} else {
		scout, err := agent.NewScout(ctx)
		if err != nil {
			return fail(err)
		}
		quote, err := scout.Quote(ctx, h.Symbol, h.Name)
		if err != nil {
			return fail(err)
		}
		price = quote.Price
		if quote.Currency != "" && quote.Currency != h.Currency {
			fmt.Fprintf(os.Stderr, "Warning: quote is in %s, holding is kept in %s\n", quote.Currency, h.Currency)
		}
		for _, src := range quote.Sources {
			fmt.Fprintf(os.Stderr, "  source: %s (%s)\n", src.Title, src.URL)
		}
	}

	if err := book.Ledger.UpdateMarketPrice(h.ID, wealthtrack.M(price, h.Currency), time.Now()); err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}

	fmt.Printf("%s price set to %s. Unrealized P&L: %s (%s).\n",
		h.Symbol, h.CurrentPrice, h.UnrealizedPL().SignedString(), h.PLPercent())
	return subcommands.ExitSuccess
}
