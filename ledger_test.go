package wealthtrack

import (
	"errors"
	"math"
	"testing"
	"time"
)

// buy is a test helper recording a purchase that must succeed.
func buy(t *testing.T, l *Ledger, kind Kind, symbol, agent string, units, price float64, on string) *Holding {
	t.Helper()
	h, err := l.RecordPurchase(PurchaseInput{
		Kind:      kind,
		Symbol:    symbol,
		Agent:     agent,
		Units:     Q(units),
		UnitPrice: M(price, ""),
		Date:      MustParseDate(on),
	})
	if err != nil {
		t.Fatalf("RecordPurchase(%s) error = %v", symbol, err)
	}
	return h
}

func approx(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if g := got.Decimal().InexactFloat64(); math.Abs(g-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, g, want)
	}
}

func TestRecordPurchase_WeightedAverage(t *testing.T) {
	l := NewLedger()

	h := buy(t, l, Fund, "GIF", "FSM", 100, 2.00, "2025-01-10")
	if !h.Units.Equal(Q(100)) {
		t.Errorf("Units = %s, want 100", h.Units)
	}
	approx(t, "AvgCost", h.AvgCost, 2.00)
	if h.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", h.Currency, DefaultCurrency)
	}
	if h.Name != "GIF" {
		t.Errorf("Name = %q, want the symbol", h.Name)
	}
	if !h.CurrentPrice.Equal(h.AvgCost) {
		t.Errorf("a fresh holding should be priced at its purchase price")
	}

	// same symbol, case-insensitive, folds into the same holding
	h2 := buy(t, l, Fund, "gif", "FSM", 50, 3.00, "2025-02-10")
	if h2 != h {
		t.Fatal("purchase of the same symbol created a second holding")
	}
	if !h.Units.Equal(Q(150)) {
		t.Errorf("Units = %s, want 150", h.Units)
	}
	approx(t, "AvgCost", h.AvgCost, 350.0/150.0)
	if h.Agent != "FSM" {
		t.Errorf("Agent = %q, want FSM", h.Agent)
	}
	if h.LastPurchase != MustParseDate("2025-02-10") {
		t.Errorf("LastPurchase = %v, want the latest purchase date", h.LastPurchase)
	}

	// a different agent flips the holding to Multiple for good
	buy(t, l, Fund, "GIF", "OtherBroker", 20, 1.00, "2025-03-10")
	if h.Agent != AgentMultiple {
		t.Errorf("Agent = %q, want %q", h.Agent, AgentMultiple)
	}
	approx(t, "AvgCost", h.AvgCost, 370.0/170.0)
	if len(h.Purchases) != 3 {
		t.Fatalf("Purchases = %d events, want 3", len(h.Purchases))
	}

	// going back to the first agent does not undo Multiple
	buy(t, l, Fund, "GIF", "FSM", 10, 1.00, "2025-04-10")
	if h.Agent != AgentMultiple {
		t.Errorf("Agent = %q, want %q to stick", h.Agent, AgentMultiple)
	}
}

func TestRecordPurchase_KindsAreDistinct(t *testing.T) {
	l := NewLedger()
	share := buy(t, l, Share, "ABC", "X", 10, 1, "2025-01-01")
	fund := buy(t, l, Fund, "ABC", "X", 20, 2, "2025-01-01")
	if share == fund {
		t.Fatal("the same symbol as share and fund must be two holdings")
	}
	if share.ID == fund.ID {
		t.Fatal("two holdings share an id")
	}
}

func TestRecordPurchase_Invalid(t *testing.T) {
	l := NewLedger()

	tests := []struct {
		name string
		in   PurchaseInput
	}{
		{"missing symbol", PurchaseInput{Units: Q(1), UnitPrice: M(1, "")}},
		{"zero units", PurchaseInput{Symbol: "A", Units: Q(0), UnitPrice: M(1, "")}},
		{"negative units", PurchaseInput{Symbol: "A", Units: Q(-1), UnitPrice: M(1, "")}},
		{"zero price", PurchaseInput{Symbol: "A", Units: Q(1), UnitPrice: M(0, "")}},
		{"negative price", PurchaseInput{Symbol: "A", Units: Q(1), UnitPrice: M(-1, "")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.RecordPurchase(tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
	if n := len(l.holdings); n != 0 {
		t.Errorf("rejected purchases left %d holdings behind", n)
	}
}

func TestRecordPurchase_CurrencyMismatch(t *testing.T) {
	l := NewLedger()
	h, err := l.RecordPurchase(PurchaseInput{Kind: Share, Symbol: "AAPL", Units: Q(5), UnitPrice: M(150, "USD")})
	if err != nil {
		t.Fatalf("RecordPurchase() error = %v", err)
	}
	if h.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", h.Currency)
	}
	_, err = l.RecordPurchase(PurchaseInput{Kind: Share, Symbol: "AAPL", Units: Q(5), UnitPrice: M(600, "MYR")})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("cross-currency accumulation error = %v, want ErrInvalidInput", err)
	}
	if !h.Units.Equal(Q(5)) {
		t.Errorf("failed purchase mutated the holding: Units = %s", h.Units)
	}
}

func TestRecordSale(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "MAYBANK", "Rakuten", 170, 2.00, "2025-01-10")
	avgBefore := h.AvgCost

	ev, warn, err := l.RecordSale(h.ID, Q(70), M(2.50, ""), MustParseDate("2025-02-01"))
	if err != nil {
		t.Fatalf("RecordSale() error = %v", err)
	}
	if warn != nil {
		t.Fatalf("unexpected oversell warning: %v", warn)
	}
	if !h.Units.Equal(Q(100)) {
		t.Errorf("Units = %s, want 100", h.Units)
	}
	approx(t, "Proceeds", ev.Proceeds, 175)
	if ev.Proceeds.Currency() != DefaultCurrency {
		t.Errorf("Proceeds currency = %q, want the holding currency", ev.Proceeds.Currency())
	}
	if ev.Name != h.Name || ev.Agent != h.Agent {
		t.Errorf("sale did not snapshot name/agent: %q %q", ev.Name, ev.Agent)
	}
	if !h.AvgCost.Equal(avgBefore) {
		t.Errorf("AvgCost changed on a sale: %s -> %s", avgBefore.Decimal(), h.AvgCost.Decimal())
	}
}

func TestRecordSale_OversellClampsToZero(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "MAYBANK", "Rakuten", 170, 2.00, "2025-01-10")
	avgBefore := h.AvgCost

	ev, warn, err := l.RecordSale(h.ID, Q(200), M(2.50, ""), MustParseDate("2025-02-01"))
	if err != nil {
		t.Fatalf("RecordSale() error = %v", err)
	}
	if warn == nil {
		t.Fatal("expected an oversell warning")
	}
	if !warn.Requested.Equal(Q(200)) || !warn.Held.Equal(Q(170)) {
		t.Errorf("warning = requested %s held %s, want 200/170", warn.Requested, warn.Held)
	}
	if !h.Units.IsZero() {
		t.Errorf("Units = %s, want clamped to zero", h.Units)
	}
	// the log keeps the literal requested quantity
	if !ev.Units.Equal(Q(200)) {
		t.Errorf("logged Units = %s, want the literal 200", ev.Units)
	}
	approx(t, "Proceeds", ev.Proceeds, 500)
	if !h.AvgCost.Equal(avgBefore) {
		t.Errorf("AvgCost changed on an oversell: %s", h.AvgCost.Decimal())
	}
	if len(l.Sales()) != 1 {
		t.Fatalf("sale log has %d entries, want 1", len(l.Sales()))
	}
}

func TestRecordSale_Errors(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "ABC", "X", 10, 1, "2025-01-01")

	if _, _, err := l.RecordSale("nope", Q(1), M(1, ""), Date{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown holding error = %v, want ErrNotFound", err)
	}
	if _, _, err := l.RecordSale(h.ID, Q(0), M(1, ""), Date{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero units error = %v, want ErrInvalidInput", err)
	}
	if len(l.Sales()) != 0 {
		t.Errorf("failed sales were logged")
	}
}

func TestRecordDividend(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "MAYBANK", "Rakuten", 100, 9.00, "2025-01-10")

	ev, err := l.RecordDividend(h.ID, M(58, ""), MustParseDate("2025-03-01"), "final FY24")
	if err != nil {
		t.Fatalf("RecordDividend() error = %v", err)
	}
	if !ev.UnitsHeld.Equal(Q(100)) {
		t.Errorf("UnitsHeld = %s, want the units at recording time", ev.UnitsHeld)
	}
	if !h.Units.Equal(Q(100)) {
		t.Errorf("dividend mutated the holding units")
	}

	// selling afterwards does not rewrite the snapshot
	if _, _, err := l.RecordSale(h.ID, Q(40), M(9, ""), Date{}); err != nil {
		t.Fatalf("RecordSale() error = %v", err)
	}
	if got := l.DividendsOf(h.ID); len(got) != 1 || !got[0].UnitsHeld.Equal(Q(100)) {
		t.Errorf("dividend snapshot changed after a sale: %+v", got)
	}

	if _, err := l.RecordDividend("nope", M(1, ""), Date{}, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown holding error = %v, want ErrNotFound", err)
	}
}

func TestUpdateMarketPrice(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "ABC", "X", 10, 2, "2025-01-01")
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if err := l.UpdateMarketPrice(h.ID, M(2.5, ""), at); err != nil {
		t.Fatalf("UpdateMarketPrice() error = %v", err)
	}
	approx(t, "CurrentPrice", h.CurrentPrice, 2.5)
	if h.CurrentPrice.Currency() != h.Currency {
		t.Errorf("price currency = %q, want the holding currency", h.CurrentPrice.Currency())
	}
	if !h.LastPriceUpdate.Equal(at) {
		t.Errorf("LastPriceUpdate = %v, want %v", h.LastPriceUpdate, at)
	}

	if err := l.UpdateMarketPrice(h.ID, M(-1, ""), at); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative price error = %v, want ErrInvalidInput", err)
	}
	// zero is a legitimate quote
	if err := l.UpdateMarketPrice(h.ID, M(0, ""), at); err != nil {
		t.Errorf("zero price error = %v, want nil", err)
	}
}

func TestDeleteHolding_LogsSurvive(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "ABC", "X", 10, 2, "2025-01-01")
	if _, _, err := l.RecordSale(h.ID, Q(5), M(3, ""), Date{}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordDividend(h.ID, M(1, ""), Date{}, ""); err != nil {
		t.Fatal(err)
	}

	if err := l.DeleteHolding(h.ID); err != nil {
		t.Fatalf("DeleteHolding() error = %v", err)
	}
	if l.Holding(h.ID) != nil {
		t.Error("holding still present after deletion")
	}
	if len(l.Sales()) != 1 || len(l.Dividends()) != 1 {
		t.Error("event logs did not survive the holding's deletion")
	}
	if err := l.DeleteHolding(h.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second deletion error = %v, want ErrNotFound", err)
	}
}

func TestHoldingsFilters(t *testing.T) {
	l := NewLedger()
	buy(t, l, Share, "A", "X", 10, 1, "2025-01-01")
	f := buy(t, l, Fund, "B", "X", 20, 1, "2025-01-01")
	depleted := buy(t, l, Fund, "C", "X", 5, 1, "2025-01-01")
	if _, _, err := l.RecordSale(depleted.ID, Q(5), M(1, ""), Date{}); err != nil {
		t.Fatal(err)
	}

	count := func(filters ...func(*Holding) bool) int {
		n := 0
		for range l.Holdings(filters...) {
			n++
		}
		return n
	}

	if got := count(); got != 3 {
		t.Errorf("no filter yields %d, want 3", got)
	}
	if got := count(ByKind(Fund)); got != 2 {
		t.Errorf("ByKind(Fund) yields %d, want 2", got)
	}
	if got := count(Active()); got != 2 {
		t.Errorf("Active() yields %d, want 2", got)
	}
	if got := count(ByKind(Fund), Active()); got != 1 {
		t.Errorf("ByKind(Fund)+Active() yields %d, want 1", got)
	}
	if got := count(ByCurrency("MYR")); got != 3 {
		t.Errorf("ByCurrency(MYR) yields %d, want 3", got)
	}

	for h := range l.Holdings(ByKind(Fund), Active()) {
		if h != f {
			t.Errorf("unexpected holding %s", h.Symbol)
		}
	}
}

func TestLegacyBackfill(t *testing.T) {
	// a holding loaded from a legacy book has totals but no purchase history
	l := NewLedger()
	h := &Holding{
		ID:           "legacy-id",
		Kind:         Fund,
		Symbol:       "OLD",
		Name:         "Old Fund",
		Agent:        "FSM",
		Currency:     DefaultCurrency,
		Units:        Q(100),
		AvgCost:      M(2, DefaultCurrency),
		LastPurchase: MustParseDate("2020-05-01"),
	}
	l.holdings = append(l.holdings, h)

	buy(t, l, Fund, "OLD", "FSM", 50, 3, "2025-02-10")

	if len(h.Purchases) != 2 {
		t.Fatalf("Purchases = %d events, want backfill + new purchase", len(h.Purchases))
	}
	backfill := h.Purchases[0]
	if backfill.ID != "legacy-legacy-id" {
		t.Errorf("backfill ID = %q", backfill.ID)
	}
	if !backfill.Units.Equal(Q(100)) {
		t.Errorf("backfill Units = %s, want the pre-history position", backfill.Units)
	}
	approx(t, "backfill Cost", backfill.Cost, 200)
	approx(t, "AvgCost", h.AvgCost, 350.0/150.0)

	// history sums reconcile with the holding totals
	var total Quantity
	for _, ev := range h.Purchases {
		total = total.Add(ev.Units)
	}
	if !total.Equal(h.Units) {
		t.Errorf("history units %s do not reconcile with holding units %s", total, h.Units)
	}
}
