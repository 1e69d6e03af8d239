package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/cli"
	"github.com/rmorpir/ampaconta/internal/model"
)

var (
	flagAddKind     string
	flagAddCategory string
	flagAddAmount   string
	flagAddDesc     string
	flagAddDate     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a movement from the command line",
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddKind, "type", "t", "", "Movement type: income or expense (required)")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "Otros", "Category label")
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount, e.g. 25.50 (required)")
	addCmd.Flags().StringVarP(&flagAddDesc, "desc", "m", "", "Description")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Date YYYY-MM-DD (default: today)")
	_ = addCmd.MarkFlagRequired("type")
	_ = addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	kind := model.Kind(flagAddKind)
	if !kind.Valid() {
		return fmt.Errorf("invalid type %q (want income or expense)", flagAddKind)
	}

	amount, err := decimal.NewFromString(flagAddAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", flagAddAmount, err)
	}

	date, err := parseDate(flagAddDate)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, _, led, err := openLedger(ctx)
	if err != nil {
		return err
	}

	tx, err := led.Add(ctx, model.Transaction{
		Date:        date,
		Kind:        kind,
		Category:    flagAddCategory,
		Amount:      amount,
		Description: flagAddDesc,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded #%d: %s %s %s (%s)\n",
		tx.ID, tx.DateString(), tx.Kind.Label(),
		cli.FormatAmount(tx.Amount, cfg.General.Currency), tx.Category)
	return nil
}
