package wealthtrack

import "fmt"

// This file holds the derived read-only figures. They are pure functions over
// the current state, recomputed on every call and never cached or persisted,
// so report totals always reconcile against the underlying event logs.

// Range is an inclusive date range. A zero bound is open on that side.
type Range struct {
	From Date
	To   Date
}

// Contains reports whether the day falls inside the range.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Summary aggregates valuation over a set of holdings.
type Summary struct {
	Holdings   int
	TotalCost  Money
	TotalValue Money
}

// PL returns the total unrealized profit or loss.
func (s Summary) PL() Money { return s.TotalValue.Sub(s.TotalCost) }

// PLPercent returns the total profit or loss relative to cost, and zero when
// the cost basis is zero.
func (s Summary) PLPercent() Percent {
	if s.TotalCost.IsZero() {
		return 0
	}
	return s.PL().Ratio(s.TotalCost)
}

// Summarize computes portfolio totals over holdings with units remaining that
// pass the given filters: total cost at average cost, and total value at the
// last known market price (falling back to average cost).
func (l *Ledger) Summarize(filters ...func(*Holding) bool) Summary {
	var s Summary
	filters = append(filters, Active())
	for h := range l.Holdings(filters...) {
		s.Holdings++
		s.TotalCost = s.TotalCost.Add(h.CostBasis())
		s.TotalValue = s.TotalValue.Add(h.MarketValue())
	}
	return s
}

// UnrealizedPL returns the holding's profit or loss at the last known price.
func (h *Holding) UnrealizedPL() Money {
	return h.MarketPrice().Sub(h.AvgCost).Mul(h.Units)
}

// PLPercent returns the holding's profit or loss relative to its average
// cost, and zero when the average cost is zero.
func (h *Holding) PLPercent() Percent {
	if h.AvgCost.IsZero() {
		return 0
	}
	return h.MarketPrice().Sub(h.AvgCost).Ratio(h.AvgCost)
}

// DividendYield returns the dividends received on a holding within the range,
// relative to the present-day cost basis of the currently held units. This is
// a deliberate approximation: yield is not computed against historical
// positions, so it answers "what did this position pay me relative to what it
// costs me today". Zero when the cost basis is zero.
func (l *Ledger) DividendYield(holdingID string, r Range) (Percent, error) {
	h := l.Holding(holdingID)
	if h == nil {
		return 0, fmt.Errorf("holding %q: %w", holdingID, ErrNotFound)
	}
	basis := h.CostBasis()
	if basis.IsZero() {
		return 0, nil
	}
	var total Money
	for _, d := range l.dividends {
		if d.HoldingID == holdingID && r.Contains(d.Date) {
			total = total.Add(d.Amount)
		}
	}
	return total.Ratio(basis), nil
}
