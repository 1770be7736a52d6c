package billing

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BillInput is the form state of one RA bill as the user types it.
type BillInput struct {
	ProjectRef      string `json:"project_ref" jsonschema:"title=Project reference"`
	CounterpartyRef string `json:"counterparty_ref" jsonschema:"title=Contractor / vendor reference"`
	BillNo          string `json:"bill_no" jsonschema:"title=RA bill number,readOnly=true"`
	WorkOrderNo     string `json:"work_order_no,omitempty"`
	InvoiceNo       string `json:"invoice_no,omitempty"`
	PeriodStart     string `json:"period_start,omitempty" jsonschema:"format=date"`
	PeriodEnd       string `json:"period_end,omitempty" jsonschema:"format=date"`
	SubmissionDate  string `json:"submission_date,omitempty" jsonschema:"format=date"`

	GrossAmount            Amount              `json:"gross_amount"`
	TaxRatePercent         Amount              `json:"tax_rate_percent"`
	WithholdingCategory    WithholdingCategory `json:"withholding_category"`
	WithholdingRatePercent Amount              `json:"withholding_rate_percent" jsonschema:"readOnly=true"`
	CessRatePercent        Amount              `json:"cess_rate_percent"`
	RetentionRatePercent   Amount              `json:"retention_rate_percent"`

	MobilizationRecovery Amount `json:"mobilization_recovery"`
	MaterialRecovery     Amount `json:"material_recovery"`
	PenaltyAmount        Amount `json:"penalty_amount"`
	PriceAdjustment      Amount `json:"price_adjustment"`
	InsuranceRecovery    Amount `json:"insurance_recovery"`
	OtherDeductions      Amount `json:"other_deductions"`
}

// NewBillInput returns an empty bill carrying the given bill number.
func NewBillInput(billNo string) BillInput {
	return BillInput{
		BillNo:              billNo,
		WithholdingCategory: WithholdingNone,
	}
}

// NewBillNo generates a bill number of the form RA-20060102-1A2B3C4D.
func NewBillNo(now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("RA-%s-%s", now.Format("20060102"), strings.ToUpper(id[:8]))
}

// ApplyWithholdingCategory sets the category and overwrites the rate with the
// table value, whatever the rate held before.
func (in *BillInput) ApplyWithholdingCategory(c WithholdingCategory) {
	if !c.Valid() {
		c = WithholdingNone
	}
	in.WithholdingCategory = c
	in.WithholdingRatePercent = WithholdingRate(c)
}

// Field names a form field as it appears on the wire.
type Field string

const (
	FieldBillNo          Field = "bill_no"
	FieldProjectRef      Field = "project_ref"
	FieldCounterpartyRef Field = "counterparty_ref"
	FieldWorkOrderNo     Field = "work_order_no"
	FieldInvoiceNo       Field = "invoice_no"
	FieldPeriodStart     Field = "period_start"
	FieldPeriodEnd       Field = "period_end"
	FieldSubmissionDate  Field = "submission_date"

	FieldGrossAmount            Field = "gross_amount"
	FieldTaxRatePercent         Field = "tax_rate_percent"
	FieldWithholdingCategory    Field = "withholding_category"
	FieldWithholdingRatePercent Field = "withholding_rate_percent"
	FieldCessRatePercent        Field = "cess_rate_percent"
	FieldRetentionRatePercent   Field = "retention_rate_percent"
	FieldMobilizationRecovery   Field = "mobilization_recovery"
	FieldMaterialRecovery       Field = "material_recovery"
	FieldPenaltyAmount          Field = "penalty_amount"
	FieldPriceAdjustment        Field = "price_adjustment"
	FieldInsuranceRecovery      Field = "insurance_recovery"
	FieldOtherDeductions        Field = "other_deductions"
)

// EditOrder is the order in which a batch of edits is applied. The category
// goes first so a rate derived from it is in place before anything else.
var EditOrder = []Field{
	FieldWithholdingCategory,
	FieldProjectRef,
	FieldCounterpartyRef,
	FieldWorkOrderNo,
	FieldInvoiceNo,
	FieldPeriodStart,
	FieldPeriodEnd,
	FieldSubmissionDate,
	FieldGrossAmount,
	FieldTaxRatePercent,
	FieldCessRatePercent,
	FieldRetentionRatePercent,
	FieldMobilizationRecovery,
	FieldMaterialRecovery,
	FieldPenaltyAmount,
	FieldPriceAdjustment,
	FieldInsuranceRecovery,
	FieldOtherDeductions,
	FieldWithholdingRatePercent,
}

func (in *BillInput) textField(f Field) *string {
	switch f {
	case FieldProjectRef:
		return &in.ProjectRef
	case FieldCounterpartyRef:
		return &in.CounterpartyRef
	case FieldWorkOrderNo:
		return &in.WorkOrderNo
	case FieldInvoiceNo:
		return &in.InvoiceNo
	case FieldPeriodStart:
		return &in.PeriodStart
	case FieldPeriodEnd:
		return &in.PeriodEnd
	case FieldSubmissionDate:
		return &in.SubmissionDate
	}
	return nil
}

func (in *BillInput) numericField(f Field) *Amount {
	switch f {
	case FieldGrossAmount:
		return &in.GrossAmount
	case FieldTaxRatePercent:
		return &in.TaxRatePercent
	case FieldCessRatePercent:
		return &in.CessRatePercent
	case FieldRetentionRatePercent:
		return &in.RetentionRatePercent
	case FieldMobilizationRecovery:
		return &in.MobilizationRecovery
	case FieldMaterialRecovery:
		return &in.MaterialRecovery
	case FieldPenaltyAmount:
		return &in.PenaltyAmount
	case FieldPriceAdjustment:
		return &in.PriceAdjustment
	case FieldInsuranceRecovery:
		return &in.InsuranceRecovery
	case FieldOtherDeductions:
		return &in.OtherDeductions
	}
	return nil
}

// Set applies one edit given as the raw text of the form field.
func (in *BillInput) Set(f Field, text string) error {
	switch {
	case f == FieldWithholdingCategory:
		in.ApplyWithholdingCategory(ParseWithholdingCategory(text))
		return nil
	case f == FieldWithholdingRatePercent:
		return &FieldError{Field: f, Err: ErrRateNotEditable}
	case f == FieldBillNo:
		return &FieldError{Field: f, Err: ErrNotEditable}
	}
	if p := in.textField(f); p != nil {
		*p = strings.TrimSpace(text)
		return nil
	}
	if p := in.numericField(f); p != nil {
		*p = ParseAmount(text)
		return nil
	}
	return &FieldError{Field: f, Err: ErrUnknownField}
}

// SetAll applies a batch of edits in EditOrder. Keys not in the form are
// reported after every known field has been applied, the alphabetically
// first one if there are several.
func (in *BillInput) SetAll(values map[string]string) error {
	var firstErr error
	seen := make(map[string]bool, len(values))
	for _, f := range EditOrder {
		v, ok := values[string(f)]
		if !ok {
			continue
		}
		seen[string(f)] = true
		if err := in.Set(f, v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}
	var unknown []string
	for k := range values {
		if !seen[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return &FieldError{Field: Field(unknown[0]), Err: ErrUnknownField}
	}
	return nil
}
