package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/backup"
	"github.com/rmorpir/ampaconta/internal/cli"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage timestamped copies of the ledger tables",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Back up the transaction and balance tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, _, remote := openStore(ctx)

		made, err := backup.New(cfg.DataDir(), remote).Create(ctx)
		if err != nil {
			return err
		}
		if len(made) == 0 {
			fmt.Println("Nothing to back up yet.")
			return nil
		}
		for _, info := range made {
			sync := ""
			if info.RemoteSync {
				sync = " (mirrored)"
			}
			fmt.Printf("  %s%s\n", info.Name, sync)
		}
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, remote := openStore(cmd.Context())
		infos, err := backup.New(cfg.DataDir(), remote).List()
		if err != nil {
			return err
		}
		cli.RenderBackups(os.Stdout, infos)
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore a backup over the live table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, remote := openStore(cmd.Context())
		if err := backup.New(cfg.DataDir(), remote).Restore(args[0]); err != nil {
			return err
		}
		fmt.Printf("Restored %s\n", args[0])
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}
