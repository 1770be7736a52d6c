package billing

// DerivedSummary holds every figure computed from a BillInput. It is never
// edited directly.
type DerivedSummary struct {
	GrossAmount       Amount `json:"gross_amount"`
	TaxAmount         Amount `json:"tax_amount"`
	TotalAmount       Amount `json:"total_amount"`
	WithholdingAmount Amount `json:"withholding_amount"`
	CessAmount        Amount `json:"cess_amount"`
	RetentionAmount   Amount `json:"retention_amount"`
	RecoveriesAmount  Amount `json:"recoveries_amount"`
	OtherAmount       Amount `json:"other_amount"`
	TotalDeductions   Amount `json:"total_deductions"`
	NetPayable        Amount `json:"net_payable"`
}

// Compute derives the bill summary. Every percentage is taken of the gross
// amount. Negative inputs flow through; nothing is clamped or rounded.
func Compute(in BillInput) DerivedSummary {
	gross := in.GrossAmount

	var s DerivedSummary
	s.GrossAmount = gross
	s.TaxAmount = gross.Percent(in.TaxRatePercent)
	s.TotalAmount = gross.Plus(s.TaxAmount)

	s.WithholdingAmount = gross.Percent(in.WithholdingRatePercent)
	s.CessAmount = gross.Percent(in.CessRatePercent)
	s.RetentionAmount = gross.Percent(in.RetentionRatePercent)

	s.RecoveriesAmount = in.MobilizationRecovery.
		Plus(in.MaterialRecovery).
		Plus(in.InsuranceRecovery)
	s.OtherAmount = in.PenaltyAmount.
		Plus(in.PriceAdjustment).
		Plus(in.OtherDeductions)

	s.TotalDeductions = s.WithholdingAmount.
		Plus(s.CessAmount).
		Plus(s.RetentionAmount).
		Plus(s.RecoveriesAmount).
		Plus(s.OtherAmount)
	s.NetPayable = s.TotalAmount.Minus(s.TotalDeductions)
	return s
}

// Equal reports whether two summaries carry the same values.
func (s DerivedSummary) Equal(o DerivedSummary) bool {
	pairs := [][2]Amount{
		{s.GrossAmount, o.GrossAmount},
		{s.TaxAmount, o.TaxAmount},
		{s.TotalAmount, o.TotalAmount},
		{s.WithholdingAmount, o.WithholdingAmount},
		{s.CessAmount, o.CessAmount},
		{s.RetentionAmount, o.RetentionAmount},
		{s.RecoveriesAmount, o.RecoveriesAmount},
		{s.OtherAmount, o.OtherAmount},
		{s.TotalDeductions, o.TotalDeductions},
		{s.NetPayable, o.NetPayable},
	}
	for _, p := range pairs {
		if !p[0].Equal(p[1].Decimal) {
			return false
		}
	}
	return true
}
