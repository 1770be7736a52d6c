package billing

import (
	"context"
	"errors"
)

// State is the position of an editor in its one-way lifecycle.
type State int

const (
	StateEditing State = iota
	StateSaved
	StatePreviewing
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSaved:
		return "saved"
	case StatePreviewing:
		return "previewing"
	}
	return "unknown"
}

// Editor owns one bill while it is being filled in. The summary is
// recomputed on every accepted edit, so it never lags the input.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	input   BillInput
	summary DerivedSummary
	state   State
	frozen  Snapshot
}

// NewEditor opens an empty bill with the given number.
func NewEditor(billNo string) *Editor {
	return ResumeEditor(NewBillInput(billNo))
}

// ResumeEditor reopens a stored draft.
func ResumeEditor(in BillInput) *Editor {
	in.ApplyWithholdingCategory(in.WithholdingCategory)
	return &Editor{input: in, summary: Compute(in)}
}

func (e *Editor) State() State            { return e.state }
func (e *Editor) Input() BillInput        { return e.input }
func (e *Editor) Summary() DerivedSummary { return e.summary }

// Ledger returns the presenter view of the current summary.
func (e *Editor) Ledger() Ledger {
	return BuildLedger(e.input, e.summary)
}

// Set applies one field edit and recomputes.
func (e *Editor) Set(f Field, text string) error {
	if e.state != StateEditing {
		return ErrFrozen
	}
	if err := e.input.Set(f, text); err != nil {
		return err
	}
	e.summary = Compute(e.input)
	return nil
}

// SetAll applies a batch of edits and recomputes once. Valid edits in the
// batch are kept even when another one is rejected.
func (e *Editor) SetAll(values map[string]string) error {
	if e.state != StateEditing {
		return ErrFrozen
	}
	err := e.input.SetAll(values)
	e.summary = Compute(e.input)
	return err
}

// SelectWithholding changes the category and with it the rate.
func (e *Editor) SelectWithholding(c WithholdingCategory) error {
	if e.state != StateEditing {
		return ErrFrozen
	}
	e.input.ApplyWithholdingCategory(c)
	e.summary = Compute(e.input)
	return nil
}

// Save validates the bill, freezes it and hands it to the gateway. The
// editor only leaves the editing state once the gateway acknowledges; on any
// error the input is left untouched so the user can fix it and retry.
func (e *Editor) Save(ctx context.Context, gw Gateway, project, counterparty Party) (Snapshot, error) {
	if e.state != StateEditing {
		return Snapshot{}, ErrFrozen
	}
	if err := e.input.Validate(); err != nil {
		return Snapshot{}, err
	}

	snap := Freeze(e.input, project, counterparty)
	if err := gw.Submit(ctx, snap); err != nil {
		var gerr *GatewayError
		if errors.As(err, &gerr) {
			return Snapshot{}, gerr
		}
		return Snapshot{}, &GatewayError{Err: err}
	}

	e.frozen = snap
	e.state = StateSaved
	return snap, nil
}

// Preview moves a saved bill to the previewing state and returns the frozen
// snapshot. It can be called repeatedly.
func (e *Editor) Preview() (Snapshot, error) {
	if e.state == StateEditing {
		return Snapshot{}, ErrNotSaved
	}
	e.state = StatePreviewing
	return e.frozen, nil
}
