package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/rates"
	"github.com/theirongolddev/xpense/internal/store"
)

var flagRatesBase string

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show cached exchange rates",
	Args:  cobra.NoArgs,
	RunE:  runRatesShow,
}

var ratesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download fresh exchange rates",
	Args:  cobra.NoArgs,
	RunE:  runRatesFetch,
}

var ratesConvertCmd = &cobra.Command{
	Use:     "convert <amount> <from> <to>",
	Short:   "Convert an amount using cached rates",
	Example: "  xpense rates convert 100 USD EUR",
	Args:    cobra.ExactArgs(3),
	RunE:    runRatesConvert,
}

func init() {
	ratesFetchCmd.Flags().StringVar(&flagRatesBase, "base", "", "Base currency (default from config)")
	ratesCmd.AddCommand(ratesFetchCmd, ratesConvertCmd)
	rootCmd.AddCommand(ratesCmd)
}

func runRatesFetch(cmd *cobra.Command, _ []string) error {
	base := flagRatesBase
	if base == "" {
		base = cfg.Rates.BaseCurrency
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := fetchRates(cmd.Context(), base)
	if err != nil {
		return err
	}
	if err := db.SaveRates(r); err != nil {
		return fmt.Errorf("caching rates: %w", err)
	}
	fmt.Printf("  Fetched %d rates against %s\n", len(r.Rates), r.Base)
	return nil
}

func fetchRates(ctx context.Context, base string) (model.ExchangeRates, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	client := rates.NewClient(cfg.Rates.BaseURL, cfg.Rates.APIKey)
	r, err := client.Fetch(ctx, base)
	if err != nil {
		log.Warn("rate fetch failed", zap.String("base", base), zap.Error(err))
		if errors.Is(err, rates.ErrUnauthorized) {
			return r, fmt.Errorf("%w; set [rates] api_key or XPENSE_RATES_API_KEY", err)
		}
		return r, err
	}
	log.Info("rates fetched", zap.String("base", r.Base), zap.Int("count", len(r.Rates)))
	return r, nil
}

func runRatesShow(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := loadCachedRates(db)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(r.Rates))
	for code := range r.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		name := ""
		if c, ok := model.CurrencyByCode(code); ok {
			name = c.Name
		}
		rows = append(rows, []string{code, name, cli.FormatRate(r.Rates[code])})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("1 %s =  (updated %s)", r.Base, cli.FormatAge(r.LastUpdated)),
		Headers:  []string{"Code", "Currency", "Rate"},
		Rows:     rows,
		LeftCols: 2,
	}))
	return nil
}

func runRatesConvert(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := loadCachedRates(db)
	if err != nil {
		return err
	}
	out, err := rates.Convert(r, amount, from, to)
	if err != nil {
		return err
	}

	fromSym, toSym := from+" ", to+" "
	if c, ok := model.CurrencyByCode(from); ok {
		fromSym = c.Symbol
	}
	if c, ok := model.CurrencyByCode(to); ok {
		toSym = c.Symbol
	}
	fmt.Printf("  %s = %s\n", cli.FormatMoney(amount, fromSym), cli.FormatMoney(out, toSym))
	fmt.Println(cli.Muted(fmt.Sprintf("  rates as of %s", cli.FormatAge(r.LastUpdated))))
	return nil
}

func loadCachedRates(db *store.DB) (model.ExchangeRates, error) {
	r, err := db.LoadRates()
	if errors.Is(err, store.ErrNotFound) {
		return r, errors.New("no exchange rates cached; run `xpense rates fetch` first")
	}
	return r, err
}
