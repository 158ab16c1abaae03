package wealthtrack

import (
	"log"
	"slices"

	"github.com/google/uuid"
)

// ValuationSnapshot is one point-in-time aggregate over all fund holdings
// with units remaining: total cost basis and total market value. Snapshots
// feed the historical trend report; at most one exists per calendar day.
type ValuationSnapshot struct {
	ID         string
	Date       Date
	TotalCost  Money
	TotalValue Money
}

// CaptureValuationSnapshot computes today's fund totals and stores them. A
// second capture on the same calendar day overwrites the first, keeping its
// id, so the operation is idempotent per day and the trend chart never gets
// duplicate points.
func (l *Ledger) CaptureValuationSnapshot(today Date) ValuationSnapshot {
	if today.IsZero() {
		today = Today()
	}

	var cost, value Money
	for h := range l.Holdings(ByKind(Fund), Active()) {
		cost = cost.Add(h.CostBasis())
		value = value.Add(h.MarketValue())
	}

	snap := ValuationSnapshot{ID: uuid.NewString(), Date: today, TotalCost: cost, TotalValue: value}
	for i, existing := range l.snapshots {
		if existing.Date == today {
			snap.ID = existing.ID
			l.snapshots[i] = snap
			log.Printf("%v: replaced valuation snapshot cost=%s value=%s", today, cost.Decimal(), value.Decimal())
			return snap
		}
	}
	l.snapshots = append(l.snapshots, snap)
	return snap
}

// Snapshots returns a copy of the valuation snapshots sorted by date.
func (l *Ledger) Snapshots() []ValuationSnapshot {
	out := slices.Clone(l.snapshots)
	slices.SortStableFunc(out, func(a, b ValuationSnapshot) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
	return out
}
