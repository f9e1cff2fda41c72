package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/xpense/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	fmt.Printf("    Default days: %d\n", cfg.General.DefaultDays)
	fmt.Printf("    Database:     %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.Monthly != nil {
		fmt.Printf("    Monthly: %.2f\n", *cfg.Budget.Monthly)
	} else {
		fmt.Println("    Monthly: not set (stored budget applies)")
	}
	fmt.Println()

	fmt.Println("  [Rates]")
	fmt.Printf("    Endpoint: %s\n", cfg.Rates.BaseURL)
	fmt.Printf("    Base:     %s\n", cfg.Rates.BaseCurrency)
	fmt.Printf("    API key:  %s\n", config.MaskKey(cfg.Rates.APIKey))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    TUI log file: %s\n", cfg.LogPath())
	fmt.Println()

	fmt.Println("  Run `xpense setup` to reconfigure.")
	return nil
}
