package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Movimientos"

// XLSX renders the snapshot as a spreadsheet: a summary block followed
// by one row per transaction. Amounts are written as numbers so the
// spreadsheet can keep computing on them.
func XLSX(snap Snapshot, r Range) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("report: naming sheet: %w", err)
	}

	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	if err := set(1, 1, "Saldo Inicial"); err != nil {
		return nil, err
	}
	_ = set(2, 1, num(snap.InitialBalance))
	_ = set(1, 2, "Saldo Actual")
	_ = set(2, 2, num(snap.CurrentBalance))

	headers := []string{"ID", "Fecha", "Tipo", "Categoría", "Cantidad", "Descripción"}
	headerRow := 4
	for i, h := range headers {
		if err := set(i+1, headerRow, h); err != nil {
			return nil, err
		}
	}

	for i, tx := range filter(snap.Transactions, r) {
		row := headerRow + 1 + i
		_ = set(1, row, tx.ID)
		_ = set(2, row, tx.DateString())
		_ = set(3, row, tx.Kind.Label())
		_ = set(4, row, tx.Category)
		_ = set(5, row, num(tx.Amount))
		_ = set(6, row, tx.Description)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: writing xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func num(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func money(d decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "€"
	}
	return currency + d.StringFixed(2)
}
