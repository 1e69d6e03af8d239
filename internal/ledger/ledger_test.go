package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmorpir/ampaconta/internal/model"
	"github.com/rmorpir/ampaconta/internal/store"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := t.TempDir()
	l := New(store.New(dir, nil))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l, dir
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func addTx(t *testing.T, l *Ledger, kind model.Kind, category, amount, desc, date string) model.Transaction {
	t.Helper()
	tx, err := l.Add(context.Background(), model.Transaction{
		Date:        mustDate(t, date),
		Kind:        kind,
		Category:    category,
		Amount:      dec(amount),
		Description: desc,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return tx
}

func TestBalanceInvariant(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		txs     [][3]string // kind, amount, date
		want    string
	}{
		{"empty ledger", "0", nil, "0"},
		{"initial only", "250.50", nil, "250.50"},
		{"income only", "0", [][3]string{{"income", "10", "2024-01-01"}, {"income", "2.25", "2024-01-02"}}, "12.25"},
		{"mixed", "100", [][3]string{{"income", "50", "2024-02-01"}, {"expense", "20", "2024-02-02"}, {"expense", "5.75", "2024-02-03"}}, "124.25"},
		{"expense past zero", "0", [][3]string{{"expense", "40", "2024-03-01"}}, "-40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger(t)
			ctx := context.Background()
			if err := l.SetInitialBalance(ctx, dec(tt.initial)); err != nil {
				t.Fatal(err)
			}
			for _, row := range tt.txs {
				addTx(t, l, model.Kind(row[0]), "Otros", row[1], "", row[2])
			}
			if got := l.Balance(); !got.Equal(dec(tt.want)) {
				t.Errorf("Balance() = %s, want %s", got, tt.want)
			}
		})
	}
}

// The worked example: 100 initial, +50 income, -20 expense, then the
// income entry is removed and the expense moves up to position 0.
func TestScenarioDeleteShiftsBalance(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	if err := l.SetInitialBalance(ctx, dec("100")); err != nil {
		t.Fatal(err)
	}
	income := addTx(t, l, model.Income, "Donación", "50", "x", "2024-01-01")
	addTx(t, l, model.Expense, "Otros", "20", "y", "2024-01-02")

	if got := l.Balance(); !got.Equal(dec("130")) {
		t.Fatalf("Balance() = %s, want 130", got)
	}

	if err := l.Delete(ctx, income.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := l.Balance(); !got.Equal(dec("80")) {
		t.Errorf("Balance() after delete = %s, want 80", got)
	}

	txs := l.Transactions()
	if len(txs) != 1 {
		t.Fatalf("len(Transactions()) = %d, want 1", len(txs))
	}
	if txs[0].Kind != model.Expense || !txs[0].Amount.Equal(dec("20")) {
		t.Errorf("remaining row = %+v, want the expense of 20", txs[0])
	}
}

// Snapshot positions are not stable handles: deleting row i moves the
// row formerly at i+1 into i. IDs are what survives.
func TestSnapshotIndexShiftAfterDelete(t *testing.T) {
	l, _ := newTestLedger(t)

	first := addTx(t, l, model.Income, "Otros", "1", "first", "2024-01-01")
	second := addTx(t, l, model.Income, "Otros", "2", "second", "2024-01-02")
	third := addTx(t, l, model.Income, "Otros", "3", "third", "2024-01-03")

	before := l.Transactions()
	if before[1].ID != second.ID {
		t.Fatalf("setup: position 1 holds #%d, want #%d", before[1].ID, second.ID)
	}

	if err := l.Delete(context.Background(), first.ID); err != nil {
		t.Fatal(err)
	}

	after := l.Transactions()
	if after[0].ID != second.ID {
		t.Errorf("after delete, position 0 holds #%d, want #%d", after[0].ID, second.ID)
	}
	// A caller still using the pre-delete position 1 now reaches a
	// different logical record.
	if after[1].ID != third.ID {
		t.Errorf("after delete, position 1 holds #%d, want #%d", after[1].ID, third.ID)
	}
}

func TestUpdateReplacesAllFields(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	tx := addTx(t, l, model.Income, "Donación", "50", "old", "2024-01-01")

	err := l.Update(ctx, tx.ID, model.Transaction{
		Date:        mustDate(t, "2024-02-02"),
		Kind:        model.Expense,
		Category:    "Verbena",
		Amount:      dec("12.50"),
		Description: "new",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, ok := l.Get(tx.ID)
	if !ok {
		t.Fatal("updated transaction vanished")
	}
	if got.Kind != model.Expense || got.Category != "Verbena" ||
		!got.Amount.Equal(dec("12.50")) || got.Description != "new" ||
		got.DateString() != "2024-02-02" {
		t.Errorf("updated row = %+v", got)
	}
	if got.ID != tx.ID {
		t.Errorf("ID changed on update: %d -> %d", tx.ID, got.ID)
	}
}

func TestUnknownIDLeavesStateUntouched(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	tx := addTx(t, l, model.Income, "Otros", "10", "keep", "2024-01-01")

	for _, id := range []int64{-1, 0, tx.ID + 1} {
		if err := l.Update(ctx, id, model.Transaction{Amount: dec("99")}); !errors.Is(err, ErrUnknownID) {
			t.Errorf("Update(%d) err = %v, want ErrUnknownID", id, err)
		}
		if err := l.Delete(ctx, id); !errors.Is(err, ErrUnknownID) {
			t.Errorf("Delete(%d) err = %v, want ErrUnknownID", id, err)
		}
	}

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	if got, _ := l.Get(tx.ID); !got.Amount.Equal(dec("10")) {
		t.Errorf("surviving row mutated: %+v", got)
	}
}

func TestMutateBeforeLoad(t *testing.T) {
	l := New(store.New(t.TempDir(), nil))
	ctx := context.Background()

	if _, err := l.Add(ctx, model.Transaction{}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Add before Load err = %v, want ErrNotLoaded", err)
	}
	if err := l.SetInitialBalance(ctx, dec("1")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("SetInitialBalance before Load err = %v, want ErrNotLoaded", err)
	}
}

func TestAddDefaultsDateToToday(t *testing.T) {
	l, _ := newTestLedger(t)

	tx, err := l.Add(context.Background(), model.Transaction{
		Kind:   model.Income,
		Amount: dec("5"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if tx.DateString() != time.Now().Format(model.DateLayout) {
		t.Errorf("default date = %s, want today", tx.DateString())
	}
}

func TestReloadKeepsIDsAndBalance(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	l := New(store.New(dir, nil))
	if err := l.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := l.SetInitialBalance(ctx, dec("7.50")); err != nil {
		t.Fatal(err)
	}
	a := addTx(t, l, model.Income, "Subvención", "100", "ayto", "2024-05-01")
	b := addTx(t, l, model.Expense, "Verbena", "33.10", "globos", "2024-06-15")

	reloaded := New(store.New(dir, nil))
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if !reloaded.InitialBalance().Equal(dec("7.50")) {
		t.Errorf("InitialBalance = %s, want 7.50", reloaded.InitialBalance())
	}
	if !reloaded.Balance().Equal(l.Balance()) {
		t.Errorf("Balance = %s, want %s", reloaded.Balance(), l.Balance())
	}
	for _, want := range []model.Transaction{a, b} {
		got, ok := reloaded.Get(want.ID)
		if !ok {
			t.Fatalf("transaction #%d missing after reload", want.ID)
		}
		if got.Category != want.Category || !got.Amount.Equal(want.Amount) {
			t.Errorf("reloaded #%d = %+v, want %+v", want.ID, got, want)
		}
	}

	// New IDs keep counting past the reloaded maximum.
	c := addTx(t, reloaded, model.Income, "Otros", "1", "", "2024-07-01")
	if c.ID <= b.ID {
		t.Errorf("new ID %d not past reloaded max %d", c.ID, b.ID)
	}
}

func TestLegacyFileWithoutIDColumn(t *testing.T) {
	dir := t.TempDir()
	legacy := "date,type,category,amount,description\n" +
		"2024-01-01,income,Donación,50,x\n" +
		"2024-01-02,expense,Otros,20,y\n"
	if err := os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}

	l := New(store.New(dir, nil))
	if err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	txs := l.Transactions()
	if len(txs) != 2 {
		t.Fatalf("len = %d, want 2", len(txs))
	}
	if txs[0].ID != 1 || txs[1].ID != 2 {
		t.Errorf("assigned IDs = %d, %d, want 1, 2", txs[0].ID, txs[1].ID)
	}
	if !l.Balance().Equal(dec("30")) {
		t.Errorf("Balance = %s, want 30", l.Balance())
	}
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	dir := t.TempDir()
	data := "id,date,type,category,amount,description\n" +
		"1,2024-01-01,income,Otros,50,ok\n" +
		"2,not-a-date,income,Otros,50,bad date\n" +
		"3,2024-01-03,income,Otros,not-a-number,bad amount\n"
	if err := os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	l := New(store.New(dir, nil))
	if err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1 (malformed rows skipped)", l.Len())
	}
}

func TestBalancePersistsIndependently(t *testing.T) {
	l, dir := newTestLedger(t)
	ctx := context.Background()

	addTx(t, l, model.Income, "Otros", "10", "", "2024-01-01")

	txPath := filepath.Join(dir, "transactions.csv")
	before, err := os.ReadFile(txPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := l.SetInitialBalance(ctx, dec("500")); err != nil {
		t.Fatal(err)
	}

	after, err := os.ReadFile(txPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("setting the balance rewrote the transactions table")
	}

	balData, err := os.ReadFile(filepath.Join(dir, "balance.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "balance\n500\n"; string(balData) != want {
		t.Errorf("balance.csv = %q, want %q", balData, want)
	}
}

func TestSearchAndBetween(t *testing.T) {
	l, _ := newTestLedger(t)

	addTx(t, l, model.Income, "Cuota de socios", "10", "Cuota Enero", "2024-01-10")
	addTx(t, l, model.Income, "Cuota de socios", "10", "cuota febrero", "2024-02-10")
	addTx(t, l, model.Expense, "Verbena", "30", "fiesta fin de curso", "2024-06-20")

	if got := l.Search("CUOTA"); len(got) != 2 {
		t.Errorf("Search(CUOTA) = %d rows, want 2", len(got))
	}
	if got := l.Search("nothing"); len(got) != 0 {
		t.Errorf("Search(nothing) = %d rows, want 0", len(got))
	}

	got := l.Between(mustDate(t, "2024-02-01"), mustDate(t, "2024-06-20"))
	if len(got) != 2 {
		t.Errorf("Between = %d rows, want 2 (inclusive end)", len(got))
	}

	if got := l.Between(time.Time{}, time.Time{}); len(got) != 3 {
		t.Errorf("open Between = %d rows, want 3", len(got))
	}
}

func TestTotalsByCategory(t *testing.T) {
	l, _ := newTestLedger(t)

	addTx(t, l, model.Income, "Donación", "10", "", "2024-01-01")
	addTx(t, l, model.Income, "Otros", "5", "", "2024-01-02")
	addTx(t, l, model.Income, "Donación", "2.50", "", "2024-01-03")
	addTx(t, l, model.Expense, "Verbena", "99", "", "2024-01-04")

	totals := l.TotalsByCategory(model.Income)
	if len(totals) != 2 {
		t.Fatalf("len = %d, want 2", len(totals))
	}
	if totals[0].Category != "Donación" || !totals[0].Total.Equal(dec("12.50")) {
		t.Errorf("totals[0] = %+v, want Donación 12.50", totals[0])
	}
	if totals[1].Category != "Otros" || !totals[1].Total.Equal(dec("5")) {
		t.Errorf("totals[1] = %+v, want Otros 5", totals[1])
	}
}
