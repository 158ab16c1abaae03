package wealthtrack

import (
	"errors"
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	l := NewLedger()
	a := buy(t, l, Share, "A", "X", 100, 2.00, "2025-01-10")
	buy(t, l, Fund, "B", "X", 50, 4.00, "2025-01-10")
	drained := buy(t, l, Share, "C", "X", 10, 1.00, "2025-01-10")
	if _, _, err := l.RecordSale(drained.ID, Q(10), M(1, ""), Date{}); err != nil {
		t.Fatal(err)
	}
	if err := l.UpdateMarketPrice(a.ID, M(2.50, ""), MustParseDate("2025-06-01").time()); err != nil {
		t.Fatal(err)
	}

	s := l.Summarize()
	if s.Holdings != 2 {
		t.Errorf("Holdings = %d, want 2 (depleted positions excluded)", s.Holdings)
	}
	approx(t, "TotalCost", s.TotalCost, 400)
	// A at fetched price, B falls back to cost
	approx(t, "TotalValue", s.TotalValue, 250+200)
	approx(t, "PL", s.PL(), 50)
	if got := float64(s.PLPercent()); math.Abs(got-12.5) > 1e-9 {
		t.Errorf("PLPercent = %v, want 12.5", got)
	}

	funds := l.Summarize(ByKind(Fund))
	if funds.Holdings != 1 {
		t.Errorf("fund Holdings = %d, want 1", funds.Holdings)
	}
	approx(t, "fund TotalCost", funds.TotalCost, 200)
}

func TestSummary_ZeroCostGuard(t *testing.T) {
	var s Summary
	if got := s.PLPercent(); got != 0 {
		t.Errorf("PLPercent on zero cost = %v, want 0", got)
	}
}

func TestHoldingPL(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "A", "X", 100, 2.00, "2025-01-10")

	// no fetched price: valued at cost, zero P&L
	if !h.UnrealizedPL().IsZero() {
		t.Errorf("UnrealizedPL with no price = %s, want 0", h.UnrealizedPL().Decimal())
	}
	if got := h.PLPercent(); got != 0 {
		t.Errorf("PLPercent with no price = %v, want 0", got)
	}

	if err := l.UpdateMarketPrice(h.ID, M(2.50, ""), MustParseDate("2025-06-01").time()); err != nil {
		t.Fatal(err)
	}
	approx(t, "UnrealizedPL", h.UnrealizedPL(), 50)
	if got := float64(h.PLPercent()); math.Abs(got-25) > 1e-9 {
		t.Errorf("PLPercent = %v, want 25", got)
	}

	zero := &Holding{Units: Q(10)}
	if got := zero.PLPercent(); got != 0 {
		t.Errorf("PLPercent on zero avg cost = %v, want 0", got)
	}
}

func TestDividendYield(t *testing.T) {
	l := NewLedger()
	h := buy(t, l, Share, "MAYBANK", "Rakuten", 100, 2.00, "2025-01-10")
	for _, d := range []struct {
		date   string
		amount float64
	}{
		{"2025-02-01", 99}, // before the range
		{"2025-03-01", 10},
		{"2025-06-01", 15},
		{"2025-09-01", 99}, // after the range
	} {
		if _, err := l.RecordDividend(h.ID, M(d.amount, ""), MustParseDate(d.date), ""); err != nil {
			t.Fatal(err)
		}
	}

	r := Range{From: MustParseDate("2025-03-01"), To: MustParseDate("2025-06-30")}
	got, err := l.DividendYield(h.ID, r)
	if err != nil {
		t.Fatalf("DividendYield() error = %v", err)
	}
	// 25 received over a 200 cost basis
	if math.Abs(float64(got)-12.5) > 1e-9 {
		t.Errorf("DividendYield = %v, want 12.5", got)
	}

	// an open range counts everything
	all, err := l.DividendYield(h.ID, Range{})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(all)-(223.0/200.0*100)) > 1e-9 {
		t.Errorf("open range yield = %v, want %v", all, 223.0/200.0*100)
	}

	if _, err := l.DividendYield("nope", Range{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown holding error = %v, want ErrNotFound", err)
	}

	// a sold-out position has a zero basis; yield is defined as zero
	if _, _, err := l.RecordSale(h.ID, Q(100), M(2, ""), Date{}); err != nil {
		t.Fatal(err)
	}
	drained, err := l.DividendYield(h.ID, Range{})
	if err != nil {
		t.Fatal(err)
	}
	if drained != 0 {
		t.Errorf("yield on zero basis = %v, want 0", drained)
	}
}

func TestRangeContains(t *testing.T) {
	from, to := MustParseDate("2025-03-01"), MustParseDate("2025-06-30")
	tests := []struct {
		r    Range
		d    string
		want bool
	}{
		{Range{From: from, To: to}, "2025-03-01", true},
		{Range{From: from, To: to}, "2025-06-30", true},
		{Range{From: from, To: to}, "2025-02-28", false},
		{Range{From: from, To: to}, "2025-07-01", false},
		{Range{From: from}, "2099-01-01", true},
		{Range{To: to}, "1999-01-01", true},
		{Range{}, "2025-01-01", true},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(MustParseDate(tt.d)); got != tt.want {
			t.Errorf("Range%v.Contains(%s) = %v, want %v", tt.r, tt.d, got, tt.want)
		}
	}
}
