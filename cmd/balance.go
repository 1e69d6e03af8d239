package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/cli"
)

var flagSetInitial string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current balance",
	RunE:  runBalance,
}

func init() {
	balanceCmd.Flags().StringVar(&flagSetInitial, "set-initial", "", "Replace the initial balance")
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, _, led, err := openLedger(ctx)
	if err != nil {
		return err
	}

	if flagSetInitial != "" {
		v, err := decimal.NewFromString(flagSetInitial)
		if err != nil {
			return fmt.Errorf("invalid initial balance %q: %w", flagSetInitial, err)
		}
		if err := led.SetInitialBalance(ctx, v); err != nil {
			return err
		}
	}

	currency := cfg.General.Currency
	fmt.Printf("Saldo inicial: %s\n", cli.FormatAmount(led.InitialBalance(), currency))
	fmt.Printf("Saldo actual:  %s\n", cli.FormatAmount(led.Balance(), currency))
	return nil
}
