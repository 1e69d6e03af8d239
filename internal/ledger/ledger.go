// Package ledger owns the in-memory transaction table and the initial
// balance scalar, and keeps both durable through the table store. The
// two aggregates persist independently: transaction mutations rewrite
// only the transactions table, balance changes only the balance table.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmorpir/ampaconta/internal/model"
	"github.com/rmorpir/ampaconta/internal/store"
)

const (
	transactionsTable = "transactions"
	balanceTable      = "balance"
)

// ErrUnknownID is returned by Update and Delete when no transaction
// carries the given ID. The in-memory state is left untouched.
var ErrUnknownID = errors.New("ledger: unknown transaction id")

// ErrNotLoaded is returned when a mutation runs before Load.
var ErrNotLoaded = errors.New("ledger: not loaded")

// Ledger is the authoritative in-memory ledger state.
type Ledger struct {
	store *store.Store

	txs     []model.Transaction
	nextID  int64
	initial decimal.Decimal
	loaded  bool
}

// New creates a ledger backed by the given store. Call Load before
// anything else.
func New(st *store.Store) *Ledger {
	return &Ledger{store: st}
}

// Load hydrates both tables from durable storage. An absent
// transactions table means an empty ledger with the known columns; an
// absent balance table means an initial balance of zero.
func (l *Ledger) Load(ctx context.Context) error {
	t, err := l.store.Load(ctx, transactionsTable)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}
	l.txs, l.nextID = decodeTransactions(t)

	b, err := l.store.Load(ctx, balanceTable)
	if err != nil {
		return fmt.Errorf("loading balance: %w", err)
	}
	l.initial = decodeBalance(b)

	l.loaded = true
	return nil
}

// Add appends one transaction, issues its stable ID, and persists the
// transactions table. The date defaults to today when zero. Whatever
// category and amount the caller passes are stored verbatim.
func (l *Ledger) Add(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	if !l.loaded {
		return model.Transaction{}, ErrNotLoaded
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	l.nextID++
	tx.ID = l.nextID
	l.txs = append(l.txs, tx)

	if err := l.persistTransactions(ctx); err != nil {
		l.txs = l.txs[:len(l.txs)-1]
		l.nextID--
		return model.Transaction{}, err
	}
	return tx, nil
}

// Update replaces every field of the identified transaction and
// persists. The ID itself is immutable; a zero date keeps the old one.
func (l *Ledger) Update(ctx context.Context, id int64, tx model.Transaction) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	i := l.indexOf(id)
	if i < 0 {
		return ErrUnknownID
	}

	prev := l.txs[i]
	tx.ID = id
	if tx.Date.IsZero() {
		tx.Date = prev.Date
	}
	l.txs[i] = tx

	if err := l.persistTransactions(ctx); err != nil {
		l.txs[i] = prev
		return err
	}
	return nil
}

// Delete removes the identified transaction, compacting the ordered
// table, and persists. Positions of later entries shift down by one.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	i := l.indexOf(id)
	if i < 0 {
		return ErrUnknownID
	}

	prev := l.txs[i]
	l.txs = append(l.txs[:i], l.txs[i+1:]...)

	if err := l.persistTransactions(ctx); err != nil {
		l.txs = append(l.txs[:i], append([]model.Transaction{prev}, l.txs[i:]...)...)
		return err
	}
	return nil
}

// SetInitialBalance replaces the scalar and persists the balance table
// only; the transactions table is not rewritten.
func (l *Ledger) SetInitialBalance(ctx context.Context, v decimal.Decimal) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	prev := l.initial
	l.initial = v

	if err := l.persistBalance(ctx); err != nil {
		l.initial = prev
		return err
	}
	return nil
}

// InitialBalance returns the stored scalar.
func (l *Ledger) InitialBalance() decimal.Decimal { return l.initial }

// Balance recomputes the running balance from a full scan:
// initial + Σincome − Σexpense. Table sizes are hundreds of rows, so
// there is no caching.
func (l *Ledger) Balance() decimal.Decimal {
	total := l.initial
	for _, tx := range l.txs {
		if tx.Kind == model.Income {
			total = total.Add(tx.Amount)
		} else {
			total = total.Sub(tx.Amount)
		}
	}
	return total
}

// Transactions returns a snapshot of the ordered table. Indexes into
// the snapshot shift when entries are deleted; the IDs are the stable
// handles.
func (l *Ledger) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Get returns the transaction with the given ID.
func (l *Ledger) Get(id int64) (model.Transaction, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Transaction{}, false
	}
	return l.txs[i], true
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.txs) }

// Search returns transactions whose description contains the query,
// case-insensitively, preserving order.
func (l *Ledger) Search(query string) []model.Transaction {
	q := strings.ToLower(query)
	var out []model.Transaction
	for _, tx := range l.txs {
		if strings.Contains(strings.ToLower(tx.Description), q) {
			out = append(out, tx)
		}
	}
	return out
}

// Between returns transactions within [start, end], inclusive. A zero
// bound leaves that side open.
func (l *Ledger) Between(start, end time.Time) []model.Transaction {
	var out []model.Transaction
	for _, tx := range l.txs {
		if !start.IsZero() && tx.Date.Before(start) {
			continue
		}
		if !end.IsZero() && tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// CategoryTotal pairs a category with its summed amount.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// TotalsByCategory sums amounts per category for one kind, in
// first-seen order.
func (l *Ledger) TotalsByCategory(kind model.Kind) []CategoryTotal {
	idx := make(map[string]int)
	var out []CategoryTotal
	for _, tx := range l.txs {
		if tx.Kind != kind {
			continue
		}
		i, ok := idx[tx.Category]
		if !ok {
			i = len(out)
			idx[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
	}
	return out
}

func (l *Ledger) indexOf(id int64) int {
	for i, tx := range l.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) persistTransactions(ctx context.Context) error {
	return l.store.Save(ctx, transactionsTable, encodeTransactions(l.txs))
}

func (l *Ledger) persistBalance(ctx context.Context) error {
	return l.store.Save(ctx, balanceTable, encodeBalance(l.initial))
}
