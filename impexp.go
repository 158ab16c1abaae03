package wealthtrack

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSV projections over the book, for spreadsheets. Each section of the book
// exports as its own flat table; amounts are written as plain decimals
// without currency symbols so they import as numbers.

// CSVSections lists the exportable section names, in menu order.
func CSVSections() []string {
	return []string{"investments", "purchases", "sales", "dividends", "fund-history", "fd", "fd-history"}
}

// ExportCSV writes one section of the book as CSV.
func ExportCSV(w io.Writer, b *Book, section string) error {
	cw := csv.NewWriter(w)
	var err error
	switch section {
	case "investments":
		err = exportHoldings(cw, b.Ledger)
	case "purchases":
		err = exportPurchases(cw, b.Ledger)
	case "sales":
		err = exportSales(cw, b.Ledger)
	case "dividends":
		err = exportDividends(cw, b.Ledger)
	case "fund-history":
		err = exportSnapshots(cw, b.Ledger)
	case "fd":
		err = exportDeposits(cw, b)
	case "fd-history":
		err = exportMaturities(cw, b)
	default:
		return invalidInput("unknown export section %q, want one of %v", section, CSVSections())
	}
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// pct formats a Percent as a bare number for CSV cells.
func pct(p Percent) string { return strconv.FormatFloat(float64(p), 'f', 2, 64) }

func exportHoldings(cw *csv.Writer, l *Ledger) error {
	if err := cw.Write([]string{"symbol", "name", "kind", "agent", "currency", "units", "averageCost", "costBasis", "marketPrice", "marketValue", "pl", "plPct", "lastPurchase", "notes"}); err != nil {
		return err
	}
	for h := range l.Holdings() {
		err := cw.Write([]string{
			h.Symbol,
			h.Name,
			h.Kind.String(),
			h.Agent,
			h.Currency,
			h.Units.String(),
			h.AvgCost.Decimal().String(),
			h.CostBasis().Decimal().String(),
			h.MarketPrice().Decimal().String(),
			h.MarketValue().Decimal().String(),
			h.UnrealizedPL().Decimal().String(),
			pct(h.PLPercent()),
			h.LastPurchase.String(),
			h.Notes,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func exportPurchases(cw *csv.Writer, l *Ledger) error {
	if err := cw.Write([]string{"symbol", "date", "units", "unitPrice", "cost", "agent"}); err != nil {
		return err
	}
	for h := range l.Holdings() {
		for _, ev := range h.Purchases {
			err := cw.Write([]string{
				h.Symbol,
				ev.Date.String(),
				ev.Units.String(),
				ev.UnitPrice.Decimal().String(),
				ev.Cost.Decimal().String(),
				ev.Agent,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func exportSales(cw *csv.Writer, l *Ledger) error {
	if err := cw.Write([]string{"date", "name", "agent", "units", "unitPrice", "proceeds", "currency"}); err != nil {
		return err
	}
	for _, ev := range l.sales {
		err := cw.Write([]string{
			ev.Date.String(),
			ev.Name,
			ev.Agent,
			ev.Units.String(),
			ev.UnitPrice.Decimal().String(),
			ev.Proceeds.Decimal().String(),
			ev.Proceeds.Currency(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func exportDividends(cw *csv.Writer, l *Ledger) error {
	if err := cw.Write([]string{"date", "holding", "amount", "currency", "unitsHeld", "notes"}); err != nil {
		return err
	}
	for _, ev := range l.dividends {
		name := ev.HoldingID
		if h := l.Holding(ev.HoldingID); h != nil {
			name = h.Symbol
		}
		err := cw.Write([]string{
			ev.Date.String(),
			name,
			ev.Amount.Decimal().String(),
			ev.Amount.Currency(),
			ev.UnitsHeld.String(),
			ev.Notes,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func exportSnapshots(cw *csv.Writer, l *Ledger) error {
	if err := cw.Write([]string{"date", "totalCost", "totalValue", "pl"}); err != nil {
		return err
	}
	for _, s := range l.Snapshots() {
		err := cw.Write([]string{
			s.Date.String(),
			s.TotalCost.Decimal().String(),
			s.TotalValue.Decimal().String(),
			s.TotalValue.Sub(s.TotalCost).Decimal().String(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func exportDeposits(cw *csv.Writer, b *Book) error {
	if err := cw.Write([]string{"bank", "slip", "start", "maturity", "ratePct", "principal", "currency", "interest", "maturityValue", "remarks"}); err != nil {
		return err
	}
	for _, fd := range b.Deposits {
		err := cw.Write([]string{
			fd.Bank,
			fd.Slip,
			fd.Start.String(),
			fd.Maturity.String(),
			fd.Rate.String(),
			fd.Principal.Decimal().String(),
			fd.Principal.Currency(),
			fd.Interest().Decimal().String(),
			fd.MaturityValue().Decimal().String(),
			fd.Remarks,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func exportMaturities(cw *csv.Writer, b *Book) error {
	if err := cw.Write([]string{"date", "bank", "slip", "principal", "interest", "ratePct", "year"}); err != nil {
		return err
	}
	for _, m := range b.Maturities {
		err := cw.Write([]string{
			m.Date.String(),
			m.Bank,
			m.Slip,
			m.Principal.Decimal().String(),
			m.Interest.Decimal().String(),
			m.Rate.String(),
			fmt.Sprint(m.Year),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
