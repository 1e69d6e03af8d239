package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rmorpir/ampaconta/internal/backup"
	"github.com/rmorpir/ampaconta/internal/model"
)

// RenderTransactions writes the movements as a bordered table.
func RenderTransactions(w io.Writer, txs []model.Transaction, currency string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Fecha", "Tipo", "Categoría", "Cantidad", "Descripción"})

	for _, tx := range txs {
		amount := FormatSigned(tx.Amount, tx.Kind == model.Expense, currency)
		t.AppendRow(table.Row{
			tx.ID,
			tx.DateString(),
			tx.Kind.Label(),
			tx.Category,
			amount,
			Clip(tx.Description, 40),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Cantidad", Align: text.AlignRight},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// RenderBackups writes the backup listing, newest first.
func RenderBackups(w io.Writer, infos []backup.Info) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Archivo", "Fecha", "Bytes"})
	for _, b := range infos {
		t.AppendRow(table.Row{b.Name, b.ModTime.Format("2006-01-02 15:04:05"), b.SizeBytes})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
