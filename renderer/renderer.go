// Package renderer turns book state into markdown reports. It only formats:
// every figure is computed by the wealthtrack package, and the markdown is
// meant to go through a terminal renderer or straight into a file.
package renderer

import (
	"fmt"
	"strings"

	"github.com/khlim/wealthtrack"
)

// HoldingsMarkdown renders the portfolio report: one row per holding with
// units remaining, then the portfolio totals.
func HoldingsMarkdown(l *wealthtrack.Ledger) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Portfolio\n\n")
	fmt.Fprintln(&b, "| Symbol | Name | Kind | Agent | Units | Avg Cost | Market | Value | P&L | P&L % |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|---:|---:|---:|---:|")

	for h := range l.Holdings(wealthtrack.Active()) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			h.Symbol,
			h.Name,
			h.Kind,
			h.Agent,
			h.Units,
			h.AvgCost,
			h.MarketPrice(),
			h.MarketValue(),
			h.UnrealizedPL().SignedString(),
			h.PLPercent(),
		)
	}

	s := l.Summarize()
	fmt.Fprintf(&b, "| **Total (%d)** | | | | | %s | | %s | %s | %s |\n",
		s.Holdings,
		s.TotalCost,
		s.TotalValue,
		s.PL().SignedString(),
		s.PLPercent(),
	)
	return b.String()
}

// HoldingMarkdown renders one holding in detail, with its acquisition history.
func HoldingMarkdown(h *wealthtrack.Holding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s (%s)\n\n", h.Name, h.Symbol)
	fmt.Fprintf(&b, "- Kind: %s\n", h.Kind)
	fmt.Fprintf(&b, "- Agent: %s\n", h.Agent)
	fmt.Fprintf(&b, "- Units: %s\n", h.Units)
	fmt.Fprintf(&b, "- Average cost: %s\n", h.AvgCost)
	fmt.Fprintf(&b, "- Market price: %s\n", h.MarketPrice())
	if !h.LastPriceUpdate.IsZero() {
		fmt.Fprintf(&b, "- Price updated: %s\n", h.LastPriceUpdate.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "- Unrealized P&L: %s (%s)\n", h.UnrealizedPL().SignedString(), h.PLPercent())
	if h.Notes != "" {
		fmt.Fprintf(&b, "- Notes: %s\n", h.Notes)
	}

	fmt.Fprint(&b, "\n## Purchases\n\n")
	fmt.Fprintln(&b, "| Date | Units | Unit Price | Cost | Agent |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	for _, ev := range h.Purchases {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			ev.Date, ev.Units, ev.UnitPrice, ev.Cost, ev.Agent)
	}
	return b.String()
}

// HistoryMarkdown renders the fund valuation trend from the snapshot log.
func HistoryMarkdown(l *wealthtrack.Ledger) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Fund Valuation History\n\n")
	fmt.Fprintln(&b, "| Date | Cost | Value | P&L |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, s := range l.Snapshots() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			s.Date,
			s.TotalCost,
			s.TotalValue,
			s.TotalValue.Sub(s.TotalCost).SignedString(),
		)
	}
	return b.String()
}

// SalesMarkdown renders the disposal log.
func SalesMarkdown(l *wealthtrack.Ledger) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Sales\n\n")
	fmt.Fprintln(&b, "| Date | Name | Agent | Units | Unit Price | Proceeds |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	var total wealthtrack.Money
	for _, ev := range l.Sales() {
		total = total.Add(ev.Proceeds)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			ev.Date, ev.Name, ev.Agent, ev.Units, ev.UnitPrice, ev.Proceeds)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | %s |\n", total)
	return b.String()
}

// DividendsMarkdown renders the dividend log, resolving holding names where
// the holding still exists.
func DividendsMarkdown(l *wealthtrack.Ledger) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Dividends\n\n")
	fmt.Fprintln(&b, "| Date | Holding | Amount | Units Held | Notes |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|:---|")
	var total wealthtrack.Money
	for _, ev := range l.Dividends() {
		name := ev.HoldingID
		if h := l.Holding(ev.HoldingID); h != nil {
			name = h.Symbol
		}
		total = total.Add(ev.Amount)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			ev.Date, name, ev.Amount, ev.UnitsHeld, ev.Notes)
	}
	fmt.Fprintf(&b, "| **Total** | | %s | | |\n", total)
	return b.String()
}

// DepositsMarkdown renders the live fixed-deposit certificates. Certificates
// matured on or before today are flagged in the last column.
func DepositsMarkdown(b *wealthtrack.Book, today wealthtrack.Date) string {
	var sb strings.Builder

	fmt.Fprint(&sb, "# Fixed Deposits\n\n")
	fmt.Fprintln(&sb, "| Bank | Slip | Start | Maturity | Rate | Principal | Interest | At Maturity | |")
	fmt.Fprintln(&sb, "|:---|:---|:---|:---|---:|---:|---:|---:|:---|")
	for _, fd := range b.Deposits {
		flag := ""
		if !today.Before(fd.Maturity) {
			flag = "matured"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s%% | %s | %s | %s | %s |\n",
			fd.Bank,
			fd.Slip,
			fd.Start,
			fd.Maturity,
			fd.Rate,
			fd.Principal,
			fd.Interest(),
			fd.MaturityValue(),
			flag,
		)
	}
	fmt.Fprintf(&sb, "| **Total** | | | | | %s | | | |\n", b.TotalPrincipal())
	return sb.String()
}

// MaturitiesMarkdown renders the collected-certificate log.
func MaturitiesMarkdown(b *wealthtrack.Book) string {
	var sb strings.Builder

	fmt.Fprint(&sb, "# Collected Fixed Deposits\n\n")
	fmt.Fprintln(&sb, "| Date | Bank | Slip | Principal | Interest | Rate | Year |")
	fmt.Fprintln(&sb, "|:---|:---|:---|---:|---:|---:|---:|")
	for _, m := range b.Maturities {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s%% | %d |\n",
			m.Date, m.Bank, m.Slip, m.Principal, m.Interest, m.Rate, m.Year)
	}
	return sb.String()
}
