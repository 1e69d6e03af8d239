package ledger

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmorpir/ampaconta/internal/model"
	"github.com/rmorpir/ampaconta/internal/store"
)

var transactionColumns = []string{"id", "date", "type", "category", "amount", "description"}

var balanceColumns = []string{"balance"}

func encodeTransactions(txs []model.Transaction) store.Table {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			tx.DateString(),
			string(tx.Kind),
			tx.Category,
			tx.Amount.String(),
			tx.Description,
		})
	}
	return store.Table{Header: transactionColumns, Rows: rows}
}

// decodeTransactions maps table rows back to transactions and returns
// the highest ID seen so issuing can resume past it. Files written
// before the id column existed get fresh sequential IDs. Rows that
// don't parse are skipped rather than failing the whole load.
func decodeTransactions(t store.Table) ([]model.Transaction, int64) {
	if t.Empty() {
		return nil, 0
	}

	idCol := t.Column("id")
	dateCol := t.Column("date")
	typeCol := t.Column("type")
	catCol := t.Column("category")
	amountCol := t.Column("amount")
	descCol := t.Column("description")

	var txs []model.Transaction
	var maxID int64
	for _, row := range t.Rows {
		tx := model.Transaction{
			Kind:        model.Kind(field(row, typeCol)),
			Category:    field(row, catCol),
			Description: field(row, descCol),
		}

		d, err := time.Parse(model.DateLayout, field(row, dateCol))
		if err != nil {
			continue
		}
		tx.Date = d

		amt, err := decimal.NewFromString(field(row, amountCol))
		if err != nil {
			continue
		}
		tx.Amount = amt

		if id, err := strconv.ParseInt(field(row, idCol), 10, 64); err == nil && id > 0 {
			tx.ID = id
		} else {
			maxID++
			tx.ID = maxID
		}
		if tx.ID > maxID {
			maxID = tx.ID
		}

		txs = append(txs, tx)
	}
	return txs, maxID
}

func encodeBalance(v decimal.Decimal) store.Table {
	return store.Table{
		Header: balanceColumns,
		Rows:   [][]string{{v.String()}},
	}
}

// decodeBalance reads the single-row balance table, defaulting to zero
// when the table is empty or unparseable.
func decodeBalance(t store.Table) decimal.Decimal {
	if t.Empty() {
		return decimal.Zero
	}
	col := t.Column("balance")
	v, err := decimal.NewFromString(field(t.Rows[0], col))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// field returns row[i] or "" when the column is missing or the row is
// too short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
