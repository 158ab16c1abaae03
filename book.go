package wealthtrack

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Book is the whole persisted state of the tracker: the portfolio ledger,
// the fixed-deposit records, and the sections belonging to modules this tool
// records but does not compute on. Those opaque sections are carried as raw
// JSON so a load/save cycle never loses sibling-module data.
type Book struct {
	Ledger     *Ledger
	Deposits   []FixedDeposit
	Maturities []MaturityLog

	// Opaque sections, preserved verbatim across load/save.
	Transactions json.RawMessage
	ParentLogs   json.RawMessage
	TaxItems     json.RawMessage
	SalaryLogs   json.RawMessage
}

// NewBook creates an empty book, the state of a first run.
func NewBook() *Book {
	return &Book{Ledger: NewLedger()}
}

// Deposit returns the fixed deposit with this id, or nil if unknown.
func (b *Book) Deposit(id string) *FixedDeposit {
	for i := range b.Deposits {
		if b.Deposits[i].ID == id {
			return &b.Deposits[i]
		}
	}
	return nil
}

// AddDeposit validates and stores a new certificate, assigning it an id.
func (b *Book) AddDeposit(fd FixedDeposit) (FixedDeposit, error) {
	if !fd.Principal.IsPositive() {
		return FixedDeposit{}, invalidInput("deposit principal must be positive, got %s", fd.Principal.Decimal())
	}
	if fd.Rate.IsNegative() {
		return FixedDeposit{}, invalidInput("deposit rate cannot be negative, got %s", fd.Rate)
	}
	if !fd.Start.Before(fd.Maturity) {
		return FixedDeposit{}, invalidInput("deposit maturity %s must be after start %s", fd.Maturity, fd.Start)
	}
	if fd.ID == "" {
		fd.ID = uuid.NewString()
	}
	b.Deposits = append(b.Deposits, fd)
	return fd, nil
}

// DeleteDeposit removes a certificate without logging a collection.
func (b *Book) DeleteDeposit(id string) error {
	for i := range b.Deposits {
		if b.Deposits[i].ID == id {
			b.Deposits = slices.Delete(b.Deposits, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("fixed deposit %q: %w", id, ErrNotFound)
}

// CollectDeposit settles a matured certificate. It appends a MaturityLog
// snapshotting the certificate's terms and earned interest, then either
// removes the certificate (Withdraw) or replaces it with the renewed one
// (Renew). For a renewal the replacement keeps the certificate's id.
func (b *Book) CollectDeposit(id string, on Date, action MaturityAction, renewed *FixedDeposit) (MaturityLog, error) {
	fd := b.Deposit(id)
	if fd == nil {
		return MaturityLog{}, fmt.Errorf("fixed deposit %q: %w", id, ErrNotFound)
	}
	if on.IsZero() {
		on = Today()
	}

	entry := MaturityLog{
		ID:        uuid.NewString(),
		Date:      on,
		Bank:      fd.Bank,
		Slip:      fd.Slip,
		Principal: fd.Principal,
		Interest:  fd.Interest(),
		Rate:      fd.Rate,
		Year:      on.Year(),
	}

	switch action {
	case Withdraw:
		if err := b.DeleteDeposit(id); err != nil {
			return MaturityLog{}, err
		}
	case Renew:
		if renewed == nil {
			return MaturityLog{}, invalidInput("renewal requires the replacement certificate")
		}
		next := *renewed
		next.ID = fd.ID
		if !next.Start.Before(next.Maturity) {
			return MaturityLog{}, invalidInput("deposit maturity %s must be after start %s", next.Maturity, next.Start)
		}
		*fd = next
	default:
		return MaturityLog{}, invalidInput("unknown maturity action %d", action)
	}

	b.Maturities = append(b.Maturities, entry)
	return entry, nil
}

// TotalPrincipal sums the principal across all live certificates.
func (b *Book) TotalPrincipal() Money {
	var total Money
	for _, fd := range b.Deposits {
		total = total.Add(fd.Principal)
	}
	return total
}
