package wealthtrack

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FixedDeposit is one fixed-deposit certificate.
type FixedDeposit struct {
	ID        string
	Bank      string
	Slip      string // certificate/slip number
	Start     Date
	Maturity  Date
	Rate      decimal.Decimal // annual interest rate, in percent
	Principal Money
	Remarks   string
}

// Interest returns the simple interest earned over the certificate's tenure:
// principal * rate/100 * days/365.
func (fd FixedDeposit) Interest() Money {
	days := decimal.NewFromInt(int64(fd.Start.DaysUntil(fd.Maturity)))
	factor := fd.Rate.Div(decimal.NewFromInt(100)).Mul(days).Div(decimal.NewFromInt(365))
	return M(fd.Principal.Decimal().Mul(factor), fd.Principal.Currency())
}

// MaturityValue returns principal plus interest at maturity.
func (fd FixedDeposit) MaturityValue() Money {
	return fd.Principal.Add(fd.Interest())
}

// MaturityAction is what happens to a certificate when it is collected.
type MaturityAction int

const (
	// Withdraw removes the certificate; the money left the deposit.
	Withdraw MaturityAction = iota
	// Renew replaces the certificate with a new one (typically same bank,
	// new dates and rate), keeping its identity in the book.
	Renew
)

func (a MaturityAction) String() string {
	switch a {
	case Withdraw:
		return "withdraw"
	case Renew:
		return "renew"
	default:
		return "unknown"
	}
}

// ParseMaturityAction parses a string into a MaturityAction.
func ParseMaturityAction(s string) (MaturityAction, error) {
	switch s {
	case "withdraw":
		return Withdraw, nil
	case "renew":
		return Renew, nil
	default:
		return 0, fmt.Errorf("unknown maturity action: %q", s)
	}
}

// MaturityLog is the immutable record of one collected certificate. It
// snapshots the bank, slip, principal, and rate so the record survives the
// certificate's withdrawal.
type MaturityLog struct {
	ID        string
	Date      Date
	Bank      string
	Slip      string
	Principal Money
	Interest  Money
	Rate      decimal.Decimal
	Year      int
}
