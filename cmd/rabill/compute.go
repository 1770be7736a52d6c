package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pmis/billing"
	"pmis/utils"
)

// computeFlags maps each flag to the form field it fills.
var computeFlags = []struct {
	name  string
	field billing.Field
	usage string
}{
	{"gross", billing.FieldGrossAmount, "Gross work value"},
	{"tax-rate", billing.FieldTaxRatePercent, "Tax (GST) rate in percent"},
	{"withholding", billing.FieldWithholdingCategory, "Withholding category, see 'rabill categories'"},
	{"cess-rate", billing.FieldCessRatePercent, "Labour cess rate in percent"},
	{"retention-rate", billing.FieldRetentionRatePercent, "Retention rate in percent"},
	{"mobilization", billing.FieldMobilizationRecovery, "Mobilization advance recovery"},
	{"material", billing.FieldMaterialRecovery, "Material advance recovery"},
	{"insurance", billing.FieldInsuranceRecovery, "Insurance recovery"},
	{"penalty", billing.FieldPenaltyAmount, "Penalty"},
	{"price-adjustment", billing.FieldPriceAdjustment, "Price adjustment deduction"},
	{"other", billing.FieldOtherDeductions, "Other deductions"},
}

func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the summary and ledger of a bill",
		Long: `Compute derives tax, deductions and net payable from the raw bill figures.

Blank or unparsable amounts count as zero, as they do in the bill form.`,
		Example: `  rabill compute --gross 100000 --tax-rate 18 --withholding 194C_INDIVIDUAL \
    --cess-rate 1 --retention-rate 5 --mobilization 2000`,
		Args: cobra.NoArgs,
		RunE: runCompute,
	}
	for _, f := range computeFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().Bool("json", false, "Print the summary and ledger as JSON")
	return cmd
}

func runCompute(cmd *cobra.Command, _ []string) error {
	in := billing.NewBillInput("")
	for _, f := range computeFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.name)
		if err := in.Set(f.field, v); err != nil {
			return err
		}
	}

	summary := billing.Compute(in)
	ledger := billing.BuildLedger(in, summary)
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Input   billing.BillInput      `json:"input"`
			Summary billing.DerivedSummary `json:"summary"`
			Ledger  billing.Ledger         `json:"ledger"`
		}{in, summary, ledger})
	}

	fmt.Fprint(out, ledger.Text(moneyFormatter(cmd)))
	fmt.Fprintln(out, utils.AmountInWords(summary.NetPayable.Decimal))
	return nil
}
