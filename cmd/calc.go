package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/xpense/internal/calc"
	"github.com/theirongolddev/xpense/internal/history"
)

var calcCmd = &cobra.Command{
	Use:   "calc <keys>",
	Short: "Run key presses through the calculator",
	Long: `Feed a key sequence to the calculator and print the resulting display.

Keys: digits, '.', + - * /, '=' for equals, '%' percent, 'C' clear,
'<' backspace, '~' toggle sign. Completed equations are saved to the
calculator history shared with the TUI.`,
	Example: `  xpense calc "5+3="
  xpense calc "2+3*4="
  xpense calc 12.5 / 4 =`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
}

func runCalc(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	tape, err := history.Load(db)
	if err != nil {
		log.Warn("loading calculator history", zap.Error(err))
	}

	ev := calc.New(tape)
	st, unknown := calc.Run(ev, calc.Tokenize(strings.Join(args, " ")))
	if len(unknown) > 0 {
		warnf("ignored keys: %s", strings.Join(unknown, " "))
	}

	if err := tape.Sync(db); err != nil {
		log.Error("saving calculator history", zap.Error(err))
		warnf("could not save history: %v", err)
	}

	if st.Equation != "" {
		fmt.Printf("  %s\n", st.Equation)
	}
	fmt.Printf("  %s\n", st.Display())
	if st.Preview != "" {
		fmt.Printf("  %s\n", st.Preview)
	}
	return nil
}
