// Package report renders a ledger snapshot into downloadable
// documents. Rendering is a pure function of the snapshot and an
// optional date range; nothing here touches ledger state.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmorpir/ampaconta/internal/model"
)

// Snapshot is the ledger data a report consumes.
type Snapshot struct {
	Transactions   []model.Transaction
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Currency       string
}

// Range filters transactions by date, inclusive on both ends. A zero
// bound leaves that side open.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d time.Time) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// filter returns the transactions inside the range, preserving order.
func filter(txs []model.Transaction, r Range) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// categoryTotals sums amounts per category for one kind, in first-seen
// order, over an already-filtered slice.
func categoryTotals(txs []model.Transaction, kind model.Kind) ([]string, []decimal.Decimal) {
	idx := make(map[string]int)
	var names []string
	var totals []decimal.Decimal
	for _, tx := range txs {
		if tx.Kind != kind {
			continue
		}
		i, ok := idx[tx.Category]
		if !ok {
			i = len(names)
			idx[tx.Category] = i
			names = append(names, tx.Category)
			totals = append(totals, decimal.Zero)
		}
		totals[i] = totals[i].Add(tx.Amount)
	}
	return names, totals
}
