package wealthtrack

import (
	"time"
)

// AgentMultiple is the sentinel agent name a holding takes once it has been
// built from purchases through more than one distinct broker or channel.
const AgentMultiple = "Multiple"

// DefaultCurrency is assumed when a purchase does not state a currency.
const DefaultCurrency = "MYR"

// PurchaseEvent is the immutable record of one buy folded into a holding.
// Events are append-only: they are never mutated or removed individually,
// so the acquisition history always reconciles with the holding totals.
type PurchaseEvent struct {
	ID        string
	Date      Date
	Units     Quantity
	UnitPrice Money
	Cost      Money // Units * UnitPrice at the time of entry
	Agent     string
}

// Holding is a position in one tradable instrument, aggregated across all
// purchases of the same (symbol, kind) pair regardless of agent.
type Holding struct {
	ID       string
	Kind     Kind
	Symbol   string
	Name     string
	Agent    string // a single agent name, or AgentMultiple
	Currency string

	Units   Quantity // total units currently held, never negative
	AvgCost Money    // weighted-average unit cost across all purchases

	LastPurchase    Date      // date of the most recent purchase activity
	CurrentPrice    Money     // last fetched market price, zero if never fetched
	LastPriceUpdate time.Time // zero if never fetched

	Notes     string
	Purchases []PurchaseEvent // acquisition history, in order of entry
}

// legacyBackfill synthesizes the single purchase event representing a
// holding's pre-history units and cost. Holdings recorded before acquisition
// histories existed have an empty Purchases slice; the backfill keeps the
// invariant that history sums reconcile with the holding totals.
func (h *Holding) legacyBackfill() {
	if len(h.Purchases) > 0 {
		return
	}
	h.Purchases = append(h.Purchases, PurchaseEvent{
		ID:        "legacy-" + h.ID,
		Date:      h.LastPurchase,
		Units:     h.Units,
		UnitPrice: h.AvgCost,
		Cost:      h.AvgCost.Mul(h.Units),
		Agent:     h.Agent,
	})
}

// accumulate folds one purchase into the holding: total units grow, the
// average cost is recomputed as the cost-weighted mean, and the purchase is
// appended to the acquisition history. Sales never enter this computation;
// only new purchases dilute the average cost.
func (h *Holding) accumulate(ev PurchaseEvent) {
	h.legacyBackfill()

	oldCost := h.AvgCost.Mul(h.Units)
	newUnits := h.Units.Add(ev.Units)
	if newUnits.IsZero() {
		// unreachable while purchases require positive units
		h.AvgCost = M(0, h.Currency)
	} else {
		h.AvgCost = oldCost.Add(ev.Cost).DivUnits(newUnits)
	}
	h.Units = newUnits

	if h.Agent == AgentMultiple || h.Agent != ev.Agent {
		h.Agent = AgentMultiple
	}
	h.LastPurchase = ev.Date
	h.Purchases = append(h.Purchases, ev)
}

// MarketPrice returns the last fetched price, falling back to the average
// cost when no price was ever fetched.
func (h *Holding) MarketPrice() Money {
	if h.CurrentPrice.IsZero() {
		return h.AvgCost
	}
	return h.CurrentPrice
}

// CostBasis returns the total cost of the currently held units at average cost.
func (h *Holding) CostBasis() Money { return h.AvgCost.Mul(h.Units) }

// MarketValue returns the value of the currently held units at market price.
func (h *Holding) MarketValue() Money { return h.MarketPrice().Mul(h.Units) }
