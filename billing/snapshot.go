package billing

import "strings"

// Party is the display data of a project or a counterparty as it stood when
// the bill was generated.
type Party struct {
	Ref         string `json:"ref" bson:"ref"`
	Name        string `json:"name" bson:"name"`
	AddressLine string `json:"address_line,omitempty" bson:"address_line,omitempty"`
	City        string `json:"city,omitempty" bson:"city,omitempty"`
	State       string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode     string `json:"pincode,omitempty" bson:"pincode,omitempty"`
	GSTIN       string `json:"gstin,omitempty" bson:"gstin,omitempty"`
}

// DisplayName falls back to the reference when no name was resolved.
func (p Party) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.Ref
}

// Address joins the non-empty address parts.
func (p Party) Address() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.AddressLine, p.City, p.State} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	a := strings.Join(parts, ", ")
	if p.Pincode != "" {
		if a != "" {
			a += " - "
		}
		a += p.Pincode
	}
	return a
}

// Snapshot is the frozen bill handed to the gateway and fed to the document
// renderer.
type Snapshot struct {
	Input        BillInput      `json:"input" bson:"input"`
	Summary      DerivedSummary `json:"summary" bson:"summary"`
	Project      Party          `json:"project" bson:"project"`
	Counterparty Party          `json:"counterparty" bson:"counterparty"`
}

// Freeze recouples the withholding rate, recomputes the summary and takes
// the party references from the input.
func Freeze(in BillInput, project, counterparty Party) Snapshot {
	in.ApplyWithholdingCategory(in.WithholdingCategory)
	project.Ref = in.ProjectRef
	counterparty.Ref = in.CounterpartyRef
	return Snapshot{
		Input:        in,
		Summary:      Compute(in),
		Project:      project,
		Counterparty: counterparty,
	}
}

// Validate checks the fields that gate saving.
func (in BillInput) Validate() error {
	if strings.TrimSpace(in.ProjectRef) == "" {
		return &ValidationError{Field: FieldProjectRef, Err: ErrMissingReference}
	}
	if strings.TrimSpace(in.CounterpartyRef) == "" {
		return &ValidationError{Field: FieldCounterpartyRef, Err: ErrMissingReference}
	}
	if strings.TrimSpace(in.BillNo) == "" {
		return &ValidationError{Field: FieldBillNo, Err: ErrMissingReference}
	}
	return nil
}
