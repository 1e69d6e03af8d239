// Package model defines domain types for the association ledger.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used everywhere a transaction
// date is stored or displayed.
const DateLayout = "2006-01-02"

// Kind distinguishes money coming in from money going out. The sign of
// a movement is carried here, never by a negative amount.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Label returns the human-facing Spanish label for the kind.
func (k Kind) Label() string {
	if k == Income {
		return "Ingreso"
	}
	return "Gasto"
}

// Transaction is one ledger entry. The ID is issued by the ledger at
// creation time and stays stable for the life of the record.
type Transaction struct {
	ID          int64
	Date        time.Time
	Kind        Kind
	Category    string
	Amount      decimal.Decimal
	Description string
}

// DateString returns the storage form of the transaction date.
func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}
