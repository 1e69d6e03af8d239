package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/cli"
	"github.com/rmorpir/ampaconta/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage mode and ledger summary",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, st, led, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	mode := "local"
	if st.RemoteEnabled() {
		mode = "local + drive mirror"
		if st.Degraded() {
			mode = "local (drive mirror unreachable)"
		}
	}

	fmt.Printf("Data dir:    %s\n", cfg.DataDir())
	fmt.Printf("Config:      %s\n", config.ConfigPath())
	fmt.Printf("Storage:     %s\n", mode)
	if err := st.LastRemoteError(); err != nil {
		fmt.Printf("Last error:  %v\n", err)
	}
	fmt.Printf("Movements:   %d\n", led.Len())
	fmt.Printf("Balance:     %s\n", cli.FormatAmount(led.Balance(), cfg.General.Currency))
	return nil
}
