package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/auth"
	"github.com/rmorpir/ampaconta/internal/config"
	"github.com/rmorpir/ampaconta/internal/drive"
	"github.com/rmorpir/ampaconta/internal/ledger"
	"github.com/rmorpir/ampaconta/internal/model"
	"github.com/rmorpir/ampaconta/internal/store"
	"github.com/rmorpir/ampaconta/internal/tui"
)

var (
	flagDataDir   string
	flagQuiet     bool
	flagLocalOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "ampaconta",
	Short: "Association treasury ledger",
	Long: "Record income and expense movements, track the balance, and export reports.\n" +
		"Tables are CSV files on local disk, optionally mirrored to a Google Drive folder.",
	RunE: runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: config value or ./data)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagLocalOnly, "local-only", false, "Skip the Drive mirror even when credentials are present")
}

// loadConfigOrDefault loads config, returning defaults on error so
// commands still run against local files with a corrupted config.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Ignoring unreadable config: %v\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// openStore builds the table store: local data directory plus the Drive
// mirror when a complete credential set is in the environment. A Drive
// setup failure downgrades to local-only with a notice, never an error.
func openStore(ctx context.Context) (config.Config, *store.Store, store.Remote) {
	cfg := loadConfigOrDefault()
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}

	var remote store.Remote
	if !flagLocalOnly {
		creds := config.RemoteCredentialsFromEnv()
		if creds.Complete() {
			backend, err := drive.New(ctx, creds, cfg.Drive.FolderID)
			if err != nil {
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "  Drive unavailable, using local storage: %v\n", err)
				}
			} else {
				remote = backend
			}
		}
	}

	return cfg, store.New(cfg.DataDir(), remote), remote
}

// openLedger is the shared loading path used by all commands.
func openLedger(ctx context.Context) (config.Config, *store.Store, *ledger.Ledger, error) {
	cfg, st, _ := openStore(ctx)

	led := ledger.New(st)
	if err := led.Load(ctx); err != nil {
		return cfg, st, nil, err
	}

	if st.Degraded() && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Remote mirror unreachable, continuing on local files\n")
	}
	return cfg, st, led, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	creds, err := auth.CredentialsFromEnv()
	if err != nil {
		return fmt.Errorf("login disabled: set AMPA_ADMIN_USER and AMPA_ADMIN_PASS_SHA256 (or AMPA_ADMIN_PASS): %w", err)
	}

	ctx := cmd.Context()
	cfg, st, led, err := openLedger(ctx)
	if err != nil {
		return err
	}

	return tui.Run(cfg, auth.NewGate(creds), led, st)
}

// parseDate parses a --from/--to style argument. Empty is a zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}
