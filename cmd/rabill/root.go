package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pmis/billing"
	"pmis/logger"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rabill",
		Short: "Compute, render and submit running account bills",
		Long: `rabill works with PMIS running account (RA) bills outside the web UI.

It computes the bill summary and ledger from the raw figures, renders a frozen
bill as an HTML or PDF document, and submits bills to a PMIS server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("locale", billing.DefaultLocale, "Locale used to format amounts")
	root.PersistentFlags().String("symbol", billing.DefaultSymbol, "Currency symbol")

	root.AddCommand(
		newComputeCmd(),
		newRenderCmd(),
		newSubmitCmd(),
		newSchemaCmd(),
		newCategoriesCmd(),
	)
	return root
}

func moneyFormatter(cmd *cobra.Command) billing.MoneyFormatter {
	locale, _ := cmd.Flags().GetString("locale")
	symbol, _ := cmd.Flags().GetString("symbol")
	return billing.NewMoneyFormatter(locale, symbol)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func main() {
	cfg := logger.DefaultConfig()
	cfg.Output = "stderr"
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	} else {
		cfg.Level = "warn"
	}
	if err := logger.Setup(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.WithComponent("rabill")

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
