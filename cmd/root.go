// Package cmd implements the xpense CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/logging"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/store"
	"github.com/theirongolddev/xpense/internal/tui/theme"
)

var (
	flagDays     int
	flagDBPath   string
	flagCurrency string
	flagQuiet    bool
	flagVerbose  bool
)

var (
	cfg config.Config
	log = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:               "xpense",
	Short:             "Terminal expense tracker and calculator",
	Long:              "Track expenses against budgets, convert currencies, and keep a calculator tape, all from the terminal.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagCurrency, "currency", "c", "", "Display currency code for this run")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings and hints")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// prepare loads configuration and the logger before any command runs.
func prepare(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Development = cfg.Log.Development
	if flagVerbose {
		logCfg.Level = "debug"
		logCfg.Development = true
	}
	if cmd.Name() == "tui" {
		logCfg = logging.FileConfig(cfg.Log.Level, cfg.LogPath())
	}
	log = logging.NewOrNop(logCfg)

	theme.SetActive(cfg.Appearance.Theme)

	if flagDays <= 0 {
		flagDays = cfg.General.DefaultDays
	}
	if flagDays <= 0 {
		flagDays = 30
	}
	return nil
}

// openStore opens the expense database.
func openStore() (*store.DB, error) {
	path := cfg.DBPath()
	if flagDBPath != "" {
		path = flagDBPath
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", zap.String("path", path))
	return db, nil
}

// displayCurrency resolves the currency used for output: the --currency
// flag, then the stored selection, then the config default.
func displayCurrency(db *store.DB) model.Currency {
	if flagCurrency != "" {
		if c, ok := model.CurrencyByCode(flagCurrency); ok {
			return c
		}
		warnf("unknown currency %q, using stored currency", flagCurrency)
	}
	if ok, err := db.HasCurrency(); err == nil && ok {
		c, err := db.Currency()
		if err == nil {
			return c
		}
		log.Warn("reading currency", zap.Error(err))
	}
	if c, ok := model.CurrencyByCode(cfg.General.Currency); ok {
		return c
	}
	return model.DefaultCurrency
}

func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

func today() string {
	return time.Now().Format(model.DateLayout)
}
