package models

import (
	"time"

	"pmis/billing"
)

type ContactEntry struct {
	Number string `json:"number" bson:"number" db:"number"`
	Label  string `json:"label" bson:"label" db:"label"`
}

// Signatory is one named signature line of the certification block.
type Signatory struct {
	Role        string `json:"role" bson:"role"`
	Name        string `json:"name" bson:"name"`
	Designation string `json:"designation,omitempty" bson:"designation,omitempty"`
}

// Organization is the issuing authority printed on every RA bill.
type Organization struct {
	ID           int64          `json:"id" bson:"_id,omitempty" db:"id"`
	Name         string         `json:"name" bson:"name" db:"name"`
	Address      string         `json:"address" bson:"address" db:"address"`
	City         string         `json:"city" bson:"city" db:"city"`
	State        string         `json:"state" bson:"state" db:"state"`
	Pincode      string         `json:"pincode" bson:"pincode" db:"pincode"`
	GSTIN        string         `json:"gstin" bson:"gstin" db:"gstin"`
	Footnote     string         `json:"footnote" bson:"footnote" db:"footnote"`
	Contacts     []ContactEntry `json:"contacts" bson:"contacts" db:"contacts"`
	EMDAmount    billing.Amount `json:"emd_amount" bson:"emd_amount" db:"emd_amount"`
	EMDReference string         `json:"emd_reference" bson:"emd_reference" db:"emd_reference"`
	Signatories  []Signatory    `json:"signatories" bson:"signatories" db:"signatories"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at" db:"created_at"`
}

// DefaultSignatories is used when the organization lists none.
var DefaultSignatories = []Signatory{
	{Role: "Prepared by"},
	{Role: "Checked by"},
	{Role: "Certified by"},
	{Role: "Approved for payment"},
}

// SignatureLines returns the configured signatories or the defaults.
func (o *Organization) SignatureLines() []Signatory {
	if o == nil || len(o.Signatories) == 0 {
		return DefaultSignatories
	}
	return o.Signatories
}

// ContactLine joins the contact numbers as "number (label), ...".
func (o *Organization) ContactLine() string {
	if o == nil {
		return ""
	}
	s := ""
	for i, c := range o.Contacts {
		if i > 0 {
			s += ", "
		}
		s += c.Number
		if c.Label != "" {
			s += " (" + c.Label + ")"
		}
	}
	return s
}
