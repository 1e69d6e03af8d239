package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/cli"
	"github.com/rmorpir/ampaconta/internal/model"
)

var (
	flagListSearch string
	flagListFrom   string
	flagListTo     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recorded movements",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagListSearch, "search", "s", "", "Filter by description substring")
	listCmd.Flags().StringVar(&flagListFrom, "from", "", "Start date YYYY-MM-DD")
	listCmd.Flags().StringVar(&flagListTo, "to", "", "End date YYYY-MM-DD")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	from, err := parseDate(flagListFrom)
	if err != nil {
		return err
	}
	to, err := parseDate(flagListTo)
	if err != nil {
		return err
	}

	cfg, _, led, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	var txs []model.Transaction
	if flagListSearch != "" {
		txs = led.Search(flagListSearch)
	} else {
		txs = led.Transactions()
	}
	txs = filterRange(txs, from, to)

	cli.RenderTransactions(os.Stdout, txs, cfg.General.Currency)
	return nil
}

func filterRange(txs []model.Transaction, from, to time.Time) []model.Transaction {
	if from.IsZero() && to.IsZero() {
		return txs
	}
	var out []model.Transaction
	for _, tx := range txs {
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Date.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
