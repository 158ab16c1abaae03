package wealthtrack

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func deposit(t *testing.T, b *Book, bank, slip, start, maturity string, rate, principal float64) FixedDeposit {
	t.Helper()
	fd, err := b.AddDeposit(FixedDeposit{
		Bank:      bank,
		Slip:      slip,
		Start:     MustParseDate(start),
		Maturity:  MustParseDate(maturity),
		Rate:      decimal.NewFromFloat(rate),
		Principal: M(principal, DefaultCurrency),
	})
	if err != nil {
		t.Fatalf("AddDeposit(%s) error = %v", slip, err)
	}
	return fd
}

func TestFixedDepositInterest(t *testing.T) {
	tests := []struct {
		name            string
		start, maturity string
		rate, principal float64
		want            float64
	}{
		{"one exact year", "2025-01-01", "2026-01-01", 3.65, 10000, 365},
		{"six months", "2025-01-01", "2025-07-01", 3.65, 10000, 181},
		{"leap year tenure", "2024-01-01", "2025-01-01", 3.65, 10000, 366},
		{"zero rate", "2025-01-01", "2026-01-01", 0, 10000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := FixedDeposit{
				Start:     MustParseDate(tt.start),
				Maturity:  MustParseDate(tt.maturity),
				Rate:      decimal.NewFromFloat(tt.rate),
				Principal: M(tt.principal, DefaultCurrency),
			}
			approx(t, "Interest", fd.Interest(), tt.want)
			approx(t, "MaturityValue", fd.MaturityValue(), tt.principal+tt.want)
		})
	}
}

func TestAddDeposit_Invalid(t *testing.T) {
	b := NewBook()
	tests := []struct {
		name string
		fd   FixedDeposit
	}{
		{"zero principal", FixedDeposit{Start: MustParseDate("2025-01-01"), Maturity: MustParseDate("2026-01-01"), Principal: M(0, "MYR")}},
		{"negative rate", FixedDeposit{Start: MustParseDate("2025-01-01"), Maturity: MustParseDate("2026-01-01"), Rate: decimal.NewFromInt(-1), Principal: M(100, "MYR")}},
		{"maturity before start", FixedDeposit{Start: MustParseDate("2026-01-01"), Maturity: MustParseDate("2025-01-01"), Principal: M(100, "MYR")}},
		{"maturity equals start", FixedDeposit{Start: MustParseDate("2025-01-01"), Maturity: MustParseDate("2025-01-01"), Principal: M(100, "MYR")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.AddDeposit(tt.fd); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
	if len(b.Deposits) != 0 {
		t.Errorf("rejected deposits were stored")
	}
}

func TestCollectDeposit_Withdraw(t *testing.T) {
	b := NewBook()
	fd := deposit(t, b, "Maybank", "123456", "2025-01-01", "2026-01-01", 3.65, 10000)
	deposit(t, b, "CIMB", "777", "2025-02-01", "2026-02-01", 3.50, 5000)

	on := MustParseDate("2026-01-02")
	entry, err := b.CollectDeposit(fd.ID, on, Withdraw, nil)
	if err != nil {
		t.Fatalf("CollectDeposit() error = %v", err)
	}

	if entry.Bank != "Maybank" || entry.Slip != "123456" {
		t.Errorf("log entry did not snapshot the certificate: %+v", entry)
	}
	approx(t, "Interest", entry.Interest, 365)
	if entry.Year != 2026 {
		t.Errorf("Year = %d, want the collection year", entry.Year)
	}
	if b.Deposit(fd.ID) != nil {
		t.Error("withdrawn certificate still in the book")
	}
	if len(b.Deposits) != 1 {
		t.Errorf("Deposits = %d, want the other certificate only", len(b.Deposits))
	}
	if len(b.Maturities) != 1 {
		t.Errorf("Maturities = %d, want 1", len(b.Maturities))
	}
}

func TestCollectDeposit_Renew(t *testing.T) {
	b := NewBook()
	fd := deposit(t, b, "Maybank", "123456", "2025-01-01", "2026-01-01", 3.65, 10000)

	renewed := FixedDeposit{
		Bank:      "Maybank",
		Slip:      "123456",
		Start:     MustParseDate("2026-01-01"),
		Maturity:  MustParseDate("2027-01-01"),
		Rate:      decimal.NewFromFloat(3.40),
		Principal: M(10000, DefaultCurrency),
	}
	entry, err := b.CollectDeposit(fd.ID, MustParseDate("2026-01-01"), Renew, &renewed)
	if err != nil {
		t.Fatalf("CollectDeposit() error = %v", err)
	}
	// the log snapshots the old terms
	if !entry.Rate.Equal(decimal.NewFromFloat(3.65)) {
		t.Errorf("logged Rate = %s, want the matured certificate's rate", entry.Rate)
	}

	got := b.Deposit(fd.ID)
	if got == nil {
		t.Fatal("renewal lost the certificate's id")
	}
	if !got.Rate.Equal(decimal.NewFromFloat(3.40)) {
		t.Errorf("Rate = %s, want the renewal rate", got.Rate)
	}
	if got.Maturity != MustParseDate("2027-01-01") {
		t.Errorf("Maturity = %v, want the renewal maturity", got.Maturity)
	}
	if len(b.Deposits) != 1 {
		t.Errorf("Deposits = %d, want 1", len(b.Deposits))
	}
}

func TestCollectDeposit_Errors(t *testing.T) {
	b := NewBook()
	fd := deposit(t, b, "Maybank", "123456", "2025-01-01", "2026-01-01", 3.65, 10000)

	if _, err := b.CollectDeposit("nope", Date{}, Withdraw, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
	if _, err := b.CollectDeposit(fd.ID, Date{}, Renew, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("renew without replacement error = %v, want ErrInvalidInput", err)
	}
	if len(b.Maturities) != 0 {
		t.Errorf("failed collections were logged")
	}
}

func TestParseMaturityAction(t *testing.T) {
	for _, a := range []MaturityAction{Withdraw, Renew} {
		got, err := ParseMaturityAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseMaturityAction(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseMaturityAction("keep"); err == nil {
		t.Error("ParseMaturityAction(keep) expected an error")
	}
}

func TestTotalPrincipal(t *testing.T) {
	b := NewBook()
	if !b.TotalPrincipal().IsZero() {
		t.Error("empty book has a non-zero principal")
	}
	deposit(t, b, "Maybank", "1", "2025-01-01", "2026-01-01", 3, 10000)
	deposit(t, b, "CIMB", "2", "2025-01-01", "2026-01-01", 3, 5000)
	approx(t, "TotalPrincipal", b.TotalPrincipal(), 15000)
}
