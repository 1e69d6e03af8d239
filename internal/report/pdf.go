package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rmorpir/ampaconta/internal/model"
)

// PDF renders the snapshot as a financial report document.
func PDF(snap Snapshot, r Range) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10,
		tr(fmt.Sprintf("Informe Financiero AMPA - %s", time.Now().Format("02/01/2006"))),
		"", 1, "L", false, 0, "")
	if !r.Start.IsZero() || !r.End.IsZero() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(rangeLabel(r)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Balance summary
	pdf.SetFont("Helvetica", "B", 11)
	summary := [][2]string{
		{"Saldo Inicial", money(snap.InitialBalance, snap.Currency)},
		{"Saldo Actual", money(snap.CurrentBalance, snap.Currency)},
	}
	for _, row := range summary {
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(50, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, tr(row[1]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	// Transaction table
	txs := filter(snap.Transactions, r)
	if len(txs) > 0 {
		headers := []string{"Fecha", "Tipo", "Categoría", "Cantidad", "Descripción"}
		widths := []float64{24, 20, 42, 26, 78}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, tx := range txs {
			pdf.CellFormat(widths[0], 6, tx.DateString(), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 6, tr(tx.Kind.Label()), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[2], 6, tr(tx.Category), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[3], 6, tr(money(tx.Amount, snap.Currency)), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 6, tr(clip(tx.Description, 48)), "1", 1, "L", false, 0, "")
		}
		pdf.Ln(8)

		writeTotals(pdf, tr, txs, snap.Currency, model.Income, "Ingresos por categoría")
		writeTotals(pdf, tr, txs, snap.Currency, model.Expense, "Gastos por categoría")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTotals(pdf *fpdf.Fpdf, tr func(string) string, txs []model.Transaction, currency string, kind model.Kind, title string) {
	names, totals := categoryTotals(txs, kind)
	if len(names) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i, name := range names {
		pdf.CellFormat(60, 6, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, tr(money(totals[i], currency)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func rangeLabel(r Range) string {
	start, end := "...", "..."
	if !r.Start.IsZero() {
		start = r.Start.Format(model.DateLayout)
	}
	if !r.End.IsZero() {
		end = r.End.Format(model.DateLayout)
	}
	return fmt.Sprintf("Periodo: %s a %s", start, end)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
