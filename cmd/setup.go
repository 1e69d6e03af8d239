package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmorpir/ampaconta/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg := loadConfigOrDefault()

	fmt.Println()
	fmt.Println("  Welcome to ampaconta!")
	fmt.Println()

	// 1. Data directory
	fmt.Println("  1. Data directory for the CSV tables")
	fmt.Printf("     Current: %s\n", cfg.DataDir())
	fmt.Print("     > ")
	dir, _ := reader.ReadString('\n')
	if dir = strings.TrimSpace(dir); dir != "" {
		cfg.General.DataDir = dir
	}
	fmt.Println()

	// 2. Currency symbol
	fmt.Println("  2. Currency symbol")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	cur, _ := reader.ReadString('\n')
	if cur = strings.TrimSpace(cur); cur != "" {
		cfg.General.Currency = cur
	}
	fmt.Println()

	// 3. Drive folder
	fmt.Println("  3. Google Drive folder ID for the mirror")
	fmt.Println("     Leave blank to keep the current value; credentials come from GCP_* env vars.")
	fmt.Printf("     Current: %s\n", cfg.Drive.FolderID)
	fmt.Print("     > ")
	folder, _ := reader.ReadString('\n')
	if folder = strings.TrimSpace(folder); folder != "" {
		cfg.Drive.FolderID = folder
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `ampaconta setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
