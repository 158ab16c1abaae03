package wealthtrack

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaleEvent is an immutable, append-only record of one disposal. It snapshots
// the holding's name and agent so the record survives holding deletion, and
// it keeps the literal quantity the user entered even when that quantity
// exceeded the position (see Ledger.RecordSale).
type SaleEvent struct {
	ID        string
	HoldingID string
	Date      Date
	Units     Quantity
	UnitPrice Money
	Proceeds  Money // Units * UnitPrice
	Name      string
	Agent     string
}

// DividendEvent is an immutable, append-only record of a dividend received on
// a holding. It snapshots the units held at the moment of recording and never
// affects the holding's units or average cost.
type DividendEvent struct {
	ID        string
	HoldingID string
	Date      Date
	Amount    Money
	UnitsHeld Quantity
	Notes     string
}

// Ledger owns the collection of holdings and the append-only logs of sales,
// dividends, and valuation snapshots. It is a pure in-memory component: the
// host loads it before the first operation, calls at most one mutating
// operation at a time, and persists the book after every mutation.
type Ledger struct {
	holdings  []*Holding
	sales     []SaleEvent
	dividends []DividendEvent
	snapshots []ValuationSnapshot
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Holding returns the holding with this id, or nil if unknown.
func (l *Ledger) Holding(id string) *Holding {
	for _, h := range l.holdings {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// findBySymbol returns the holding matching the normalized symbol and kind,
// or nil. Symbols match case-insensitively; the same symbol may legitimately
// exist once as a share and once as a fund.
func (l *Ledger) findBySymbol(symbol string, kind Kind) *Holding {
	for _, h := range l.holdings {
		if h.Kind == kind && strings.EqualFold(h.Symbol, symbol) {
			return h
		}
	}
	return nil
}

// PurchaseInput describes one buy action.
type PurchaseInput struct {
	Kind      Kind
	Symbol    string
	Name      string
	Agent     string
	Units     Quantity
	UnitPrice Money // per-unit price; an empty currency defaults to DefaultCurrency
	Date      Date  // zero defaults to today
	Notes     string
}

// RecordPurchase folds a purchase into the matching holding, or creates a new
// holding on the first purchase of a (symbol, kind) pair. Accumulation
// recomputes the weighted-average cost, appends the purchase to the
// acquisition history, and applies the agent merge rule: a second distinct
// agent turns the holding's agent into AgentMultiple for good.
func (l *Ledger) RecordPurchase(in PurchaseInput) (*Holding, error) {
	if in.Symbol == "" {
		return nil, invalidInput("purchase symbol is missing")
	}
	if !in.Units.IsPositive() {
		return nil, invalidInput("purchase units must be positive, got %s", in.Units)
	}
	if !in.UnitPrice.IsPositive() {
		return nil, invalidInput("purchase unit price must be positive, got %s", in.UnitPrice.Decimal())
	}
	if in.Date.IsZero() {
		in.Date = Today()
	}
	currency := in.UnitPrice.Currency()
	if currency == "" {
		currency = DefaultCurrency
	}

	ev := PurchaseEvent{
		ID:        uuid.NewString(),
		Date:      in.Date,
		Units:     in.Units,
		UnitPrice: M(in.UnitPrice.Decimal(), currency),
		Agent:     in.Agent,
	}
	ev.Cost = ev.UnitPrice.Mul(ev.Units)

	if h := l.findBySymbol(in.Symbol, in.Kind); h != nil {
		if currency != h.Currency {
			return nil, invalidInput("purchase currency %s does not match holding currency %s", currency, h.Currency)
		}
		h.accumulate(ev)
		return h, nil
	}

	h := &Holding{
		ID:           uuid.NewString(),
		Kind:         in.Kind,
		Symbol:       in.Symbol,
		Name:         in.Name,
		Agent:        in.Agent,
		Currency:     currency,
		Units:        ev.Units,
		AvgCost:      ev.UnitPrice,
		LastPurchase: ev.Date,
		CurrentPrice: ev.UnitPrice, // a fresh position is worth what was just paid
		Notes:        in.Notes,
		Purchases:    []PurchaseEvent{ev},
	}
	if h.Name == "" {
		h.Name = h.Symbol
	}
	l.holdings = append(l.holdings, h)
	return h, nil
}

// RecordSale reduces the holding's units and appends a SaleEvent. When the
// requested quantity exceeds the units held, the holding is clamped at zero
// units but the sale is logged with the full requested quantity, an honest
// record of what the user entered; the returned *OversellWarning is non-nil
// in that case and the operation still succeeds. The average cost is never
// recalculated on a sale.
func (l *Ledger) RecordSale(holdingID string, units Quantity, unitPrice Money, on Date) (SaleEvent, *OversellWarning, error) {
	if !units.IsPositive() {
		return SaleEvent{}, nil, invalidInput("sale units must be positive, got %s", units)
	}
	h := l.Holding(holdingID)
	if h == nil {
		return SaleEvent{}, nil, fmt.Errorf("holding %q: %w", holdingID, ErrNotFound)
	}
	if on.IsZero() {
		on = Today()
	}
	if unitPrice.Currency() == "" {
		unitPrice = M(unitPrice.Decimal(), h.Currency)
	}

	ev := SaleEvent{
		ID:        uuid.NewString(),
		HoldingID: h.ID,
		Date:      on,
		Units:     units,
		UnitPrice: unitPrice,
		Proceeds:  unitPrice.Mul(units),
		Name:      h.Name,
		Agent:     h.Agent,
	}

	var warn *OversellWarning
	remaining := h.Units.Sub(units)
	if remaining.IsNegative() {
		warn = &OversellWarning{Requested: units, Held: h.Units}
		remaining = Q(0)
	}
	h.Units = remaining
	l.sales = append(l.sales, ev)
	return ev, warn, nil
}

// RecordDividend appends a DividendEvent snapshotting the current units held.
// The holding itself is not mutated.
func (l *Ledger) RecordDividend(holdingID string, amount Money, on Date, notes string) (DividendEvent, error) {
	h := l.Holding(holdingID)
	if h == nil {
		return DividendEvent{}, fmt.Errorf("holding %q: %w", holdingID, ErrNotFound)
	}
	if on.IsZero() {
		on = Today()
	}
	if amount.Currency() == "" {
		amount = M(amount.Decimal(), h.Currency)
	}
	ev := DividendEvent{
		ID:        uuid.NewString(),
		HoldingID: h.ID,
		Date:      on,
		Amount:    amount,
		UnitsHeld: h.Units,
		Notes:     notes,
	}
	l.dividends = append(l.dividends, ev)
	return ev, nil
}

// UpdateMarketPrice sets the holding's current price and records the fetch
// time. Negative prices are rejected; zero is accepted as a legitimate quote.
func (l *Ledger) UpdateMarketPrice(holdingID string, price Money, at time.Time) error {
	if price.IsNegative() {
		return invalidInput("market price cannot be negative, got %s", price.Decimal())
	}
	h := l.Holding(holdingID)
	if h == nil {
		return fmt.Errorf("holding %q: %w", holdingID, ErrNotFound)
	}
	h.CurrentPrice = M(price.Decimal(), h.Currency)
	h.LastPriceUpdate = at
	return nil
}

// UpdateDetails edits the free-form fields of a holding. Empty arguments
// leave the corresponding field unchanged. Structural fields (units, average
// cost, history) can only move through RecordPurchase and RecordSale.
func (l *Ledger) UpdateDetails(holdingID, name, agent, notes string) error {
	h := l.Holding(holdingID)
	if h == nil {
		return fmt.Errorf("holding %q: %w", holdingID, ErrNotFound)
	}
	if name != "" {
		h.Name = name
	}
	if agent != "" {
		h.Agent = agent
	}
	if notes != "" {
		h.Notes = notes
	}
	return nil
}

// DeleteHolding removes a holding unconditionally, even when units remain.
// Sale and dividend logs reference it by id and survive the deletion; a
// depleted holding (zero units) is otherwise retained forever.
func (l *Ledger) DeleteHolding(id string) error {
	for i, h := range l.holdings {
		if h.ID == id {
			l.holdings = slices.Delete(l.holdings, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("holding %q: %w", id, ErrNotFound)
}

// Holdings returns an iterator over holdings that pass all given filters.
// With no filters, every holding is yielded. Holdings are yielded in
// insertion order; callers must not mutate them.
func (l *Ledger) Holdings(filters ...func(*Holding) bool) iter.Seq[*Holding] {
	return func(yield func(*Holding) bool) {
		for _, h := range l.holdings {
			accepted := true
			for _, filter := range filters {
				if !filter(h) {
					accepted = false
					break
				}
			}
			if !accepted {
				continue
			}
			if !yield(h) {
				return
			}
		}
	}
}

// ByKind filters holdings by kind.
func ByKind(k Kind) func(*Holding) bool {
	return func(h *Holding) bool { return h.Kind == k }
}

// ByCurrency filters holdings by currency code.
func ByCurrency(currency string) func(*Holding) bool {
	return func(h *Holding) bool { return h.Currency == currency }
}

// Active filters holdings that still hold units. Depleted positions stay in
// the book but are excluded from most reports.
func Active() func(*Holding) bool {
	return func(h *Holding) bool { return h.Units.IsPositive() }
}

// Sales returns a copy of the sale log, in order of entry.
func (l *Ledger) Sales() []SaleEvent { return slices.Clone(l.sales) }

// Dividends returns a copy of the dividend log, in order of entry.
func (l *Ledger) Dividends() []DividendEvent { return slices.Clone(l.dividends) }

// DividendsOf returns the dividend log entries for one holding, in order of entry.
func (l *Ledger) DividendsOf(holdingID string) []DividendEvent {
	var out []DividendEvent
	for _, d := range l.dividends {
		if d.HoldingID == holdingID {
			out = append(out, d)
		}
	}
	return out
}
