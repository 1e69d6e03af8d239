package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/report"
)

var (
	flagReportFrom   string
	flagReportTo     string
	flagReportFormat string
	flagReportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a financial report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportFrom, "from", "", "Start date YYYY-MM-DD")
	reportCmd.Flags().StringVar(&flagReportTo, "to", "", "End date YYYY-MM-DD")
	reportCmd.Flags().StringVarP(&flagReportFormat, "format", "f", "pdf", "Output format: pdf or xlsx")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Output file (default: informe_YYYYMMDD.<format>)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	from, err := parseDate(flagReportFrom)
	if err != nil {
		return err
	}
	to, err := parseDate(flagReportTo)
	if err != nil {
		return err
	}

	cfg, _, led, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	snap := report.Snapshot{
		Transactions:   led.Transactions(),
		InitialBalance: led.InitialBalance(),
		CurrentBalance: led.Balance(),
		Currency:       cfg.General.Currency,
	}
	rng := report.Range{Start: from, End: to}

	var data []byte
	switch flagReportFormat {
	case "pdf":
		data, err = report.PDF(snap, rng)
	case "xlsx":
		data, err = report.XLSX(snap, rng)
	default:
		return fmt.Errorf("unknown format %q (want pdf or xlsx)", flagReportFormat)
	}
	if err != nil {
		return err
	}

	out := flagReportOut
	if out == "" {
		out = fmt.Sprintf("informe_%s.%s", time.Now().Format("20060102"), flagReportFormat)
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("Report written to %s (%d bytes)\n", out, len(data))
	return nil
}
