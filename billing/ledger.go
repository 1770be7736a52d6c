package billing

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type LineKind string

const (
	LineGross           LineKind = "gross"
	LineTax             LineKind = "tax"
	LineTotal           LineKind = "total"
	LineWithholding     LineKind = "withholding"
	LineCess            LineKind = "cess"
	LineRetention       LineKind = "retention"
	LineRecoveries      LineKind = "recoveries"
	LineOther           LineKind = "other"
	LineTotalDeductions LineKind = "total_deductions"
	LineNetPayable      LineKind = "net_payable"

	LineMobilization    LineKind = "mobilization_recovery"
	LineMaterial        LineKind = "material_recovery"
	LineInsurance       LineKind = "insurance_recovery"
	LinePenalty         LineKind = "penalty"
	LinePriceAdjustment LineKind = "price_adjustment"
	LineOtherDeductions LineKind = "other_deductions"
)

// DeductionOrder is the statutory order of the deduction lines.
var DeductionOrder = []LineKind{
	LineWithholding,
	LineCess,
	LineRetention,
	LineRecoveries,
	LineOther,
}

// LedgerLine is one row of the running ledger. Grouped rows carry their
// parts in Components.
type LedgerLine struct {
	Kind       LineKind     `json:"kind"`
	Label      string       `json:"label"`
	Amount     Amount       `json:"amount"`
	Deduction  bool         `json:"deduction,omitempty"`
	Subtotal   bool         `json:"subtotal,omitempty"`
	Emphasis   bool         `json:"emphasis,omitempty"`
	Components []LedgerLine `json:"components,omitempty"`
}

type Ledger struct {
	Lines []LedgerLine `json:"lines"`
}

// BuildLedger lays the summary out as gross, tax, total, the five deduction
// lines, total deductions and net payable. Every line is present even when
// its amount is zero.
func BuildLedger(in BillInput, s DerivedSummary) Ledger {
	lines := []LedgerLine{
		{Kind: LineGross, Label: "Gross amount", Amount: s.GrossAmount},
		{Kind: LineTax, Label: fmt.Sprintf("Tax @ %s%%", in.TaxRatePercent.String()), Amount: s.TaxAmount},
		{Kind: LineTotal, Label: "Total (incl. tax)", Amount: s.TotalAmount, Subtotal: true},
		{
			Kind:      LineWithholding,
			Label:     fmt.Sprintf("Withholding %s @ %s%%", in.WithholdingCategory.Label(), in.WithholdingRatePercent.String()),
			Amount:    s.WithholdingAmount,
			Deduction: true,
		},
		{Kind: LineCess, Label: fmt.Sprintf("Cess @ %s%%", in.CessRatePercent.String()), Amount: s.CessAmount, Deduction: true},
		{Kind: LineRetention, Label: fmt.Sprintf("Retention @ %s%%", in.RetentionRatePercent.String()), Amount: s.RetentionAmount, Deduction: true},
		{
			Kind:      LineRecoveries,
			Label:     "Recoveries",
			Amount:    s.RecoveriesAmount,
			Deduction: true,
			Components: []LedgerLine{
				{Kind: LineMobilization, Label: "Mobilization advance recovery", Amount: in.MobilizationRecovery, Deduction: true},
				{Kind: LineMaterial, Label: "Material recovery", Amount: in.MaterialRecovery, Deduction: true},
				{Kind: LineInsurance, Label: "Insurance recovery", Amount: in.InsuranceRecovery, Deduction: true},
			},
		},
		{
			Kind:      LineOther,
			Label:     "Other deductions",
			Amount:    s.OtherAmount,
			Deduction: true,
			Components: []LedgerLine{
				{Kind: LinePenalty, Label: "Penalty", Amount: in.PenaltyAmount, Deduction: true},
				{Kind: LinePriceAdjustment, Label: "Price adjustment", Amount: in.PriceAdjustment, Deduction: true},
				{Kind: LineOtherDeductions, Label: "Other deductions", Amount: in.OtherDeductions, Deduction: true},
			},
		},
		{Kind: LineTotalDeductions, Label: "Total deductions", Amount: s.TotalDeductions, Deduction: true, Subtotal: true},
		{Kind: LineNetPayable, Label: "Net payable", Amount: s.NetPayable, Emphasis: true},
	}
	return Ledger{Lines: lines}
}

// Line looks up a top-level line by kind.
func (l Ledger) Line(kind LineKind) (LedgerLine, bool) {
	for _, ln := range l.Lines {
		if ln.Kind == kind {
			return ln, true
		}
	}
	return LedgerLine{}, false
}

// Deductions returns the deduction lines in display order, without the
// total.
func (l Ledger) Deductions() []LedgerLine {
	var out []LedgerLine
	for _, ln := range l.Lines {
		if ln.Deduction && !ln.Subtotal {
			out = append(out, ln)
		}
	}
	return out
}

// Text renders the ledger as aligned plain text.
func (l Ledger) Text(f MoneyFormatter) string {
	type row struct {
		label, amount string
		rule          bool
	}
	var rows []row
	add := func(ln LedgerLine, indent string) {
		amt := f.Money(ln.Amount)
		if ln.Deduction {
			amt = f.Deduction(ln.Amount)
		}
		label := indent + ln.Label
		if ln.Emphasis {
			label = strings.ToUpper(label)
		}
		rows = append(rows, row{label, amt, ln.Subtotal || ln.Emphasis})
	}
	for _, ln := range l.Lines {
		add(ln, "")
		for _, c := range ln.Components {
			if !c.Amount.IsZero() {
				add(c, "  - ")
			}
		}
	}

	lw, aw := 0, 0
	for _, r := range rows {
		lw = max(lw, utf8.RuneCountInString(r.label))
		aw = max(aw, utf8.RuneCountInString(r.amount))
	}

	var b strings.Builder
	for _, r := range rows {
		if r.rule {
			b.WriteString(strings.Repeat("-", lw+2+aw))
			b.WriteByte('\n')
		}
		pad := lw - utf8.RuneCountInString(r.label) + 2 + aw - utf8.RuneCountInString(r.amount)
		b.WriteString(r.label)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(r.amount)
		b.WriteByte('\n')
	}
	return b.String()
}
