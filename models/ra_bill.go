package models

import (
	"time"

	"pmis/billing"
)

const RABillStatusGenerated = "generated"

// RABill is a generated bill as stored. The snapshot never changes after
// insert; only the document fields are filled in later.
type RABill struct {
	ID                int64            `json:"id,omitempty" bson:"seq,omitempty" db:"id"`
	BillNo            string           `json:"bill_no" bson:"_id" db:"bill_no"`
	Status            string           `json:"status" bson:"status" db:"status"`
	Snapshot          billing.Snapshot `json:"snapshot" bson:"snapshot" db:"snapshot"`
	Fingerprint       string           `json:"fingerprint" bson:"fingerprint" db:"fingerprint"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at" db:"created_at"`
	DocumentURL       *string          `json:"document_url,omitempty" bson:"document_url,omitempty" db:"document_url"`
	DocumentCreatedAt *time.Time       `json:"document_created_at,omitempty" bson:"document_created_at,omitempty" db:"document_created_at"`
}

// RABillFilter narrows a bill listing. Empty fields match everything.
type RABillFilter struct {
	ProjectRef      string
	CounterpartyRef string
	Limit           int
}

// Draft is a bill still being edited.
type Draft struct {
	ID        string            `json:"draft_id"`
	Input     billing.BillInput `json:"input"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// DraftView is a draft together with everything derived from it.
type DraftView struct {
	DraftID string                 `json:"draft_id"`
	State   string                 `json:"state"`
	Input   billing.BillInput      `json:"input"`
	Summary billing.DerivedSummary `json:"summary"`
	Ledger  billing.Ledger         `json:"ledger"`
}

// NewDraftView recomputes the summary and ledger of an editor.
func NewDraftView(id string, e *billing.Editor) DraftView {
	return DraftView{
		DraftID: id,
		State:   e.State().String(),
		Input:   e.Input(),
		Summary: e.Summary(),
		Ledger:  e.Ledger(),
	}
}
