package billing

import (
	"context"
	"errors"
	"testing"
)

type recordingGateway struct {
	calls int
	got   Snapshot
	err   error
}

func (g *recordingGateway) Submit(_ context.Context, snap Snapshot) error {
	g.calls++
	g.got = snap
	return g.err
}

func filledEditor(t *testing.T) *Editor {
	t.Helper()
	e := NewEditor("RA-20260101-ABCDEF12")
	err := e.SetAll(map[string]string{
		"project_ref":            "PRJ-1",
		"counterparty_ref":       "VND-9",
		"gross_amount":           "100000",
		"tax_rate_percent":       "18",
		"withholding_category":   "194C_INDIVIDUAL",
		"cess_rate_percent":      "1",
		"retention_rate_percent": "5",
		"mobilization_recovery":  "2000",
	})
	if err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	return e
}

func TestEditorRecomputesOnEveryEdit(t *testing.T) {
	e := NewEditor("RA-1")
	if err := e.Set(FieldGrossAmount, "1000"); err != nil {
		t.Fatal(err)
	}
	assertAmount(t, "net", e.Summary().NetPayable, "1000")

	if err := e.Set(FieldTaxRatePercent, "10"); err != nil {
		t.Fatal(err)
	}
	assertAmount(t, "net", e.Summary().NetPayable, "1100")

	if err := e.SelectWithholding(Withholding194JProfessional); err != nil {
		t.Fatal(err)
	}
	assertAmount(t, "net", e.Summary().NetPayable, "1000")

	if err := e.Set(FieldGrossAmount, "oops"); err != nil {
		t.Fatal(err)
	}
	assertAmount(t, "net", e.Summary().NetPayable, "0")
}

func TestEditorSaveValidatesReferences(t *testing.T) {
	e := NewEditor("RA-1")
	_ = e.Set(FieldGrossAmount, "500")
	gw := &recordingGateway{}

	_, err := e.Save(context.Background(), gw, Party{}, Party{})
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("err = %v, want ErrMissingReference", err)
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times", gw.calls)
	}
	if e.State() != StateEditing {
		t.Errorf("state = %s", e.State())
	}
	if err := e.Set(FieldProjectRef, "P"); err != nil {
		t.Errorf("editing blocked after validation failure: %v", err)
	}
}

func TestEditorSaveGatewayFailureKeepsEditing(t *testing.T) {
	e := filledEditor(t)
	gw := &recordingGateway{err: errors.New("connection refused")}

	_, err := e.Save(context.Background(), gw, Party{Name: "Ring Road"}, Party{Name: "Acme"})
	var gerr *GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v, want GatewayError", err)
	}
	if !gerr.Retryable() {
		t.Error("transport failure should be retryable")
	}
	if e.State() != StateEditing {
		t.Errorf("state = %s", e.State())
	}
	assertAmount(t, "gross kept", e.Input().GrossAmount, "100000")

	gw.err = nil
	snap, err := e.Save(context.Background(), gw, Party{Name: "Ring Road"}, Party{Name: "Acme"})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if gw.calls != 2 {
		t.Errorf("calls = %d", gw.calls)
	}
	assertAmount(t, "net", snap.Summary.NetPayable, "109000")
	if snap.Project.Ref != "PRJ-1" || snap.Counterparty.Ref != "VND-9" {
		t.Errorf("refs not filled: %+v %+v", snap.Project, snap.Counterparty)
	}
}

func TestEditorIsOneWay(t *testing.T) {
	e := filledEditor(t)
	if _, err := e.Preview(); !errors.Is(err, ErrNotSaved) {
		t.Fatalf("preview before save: %v", err)
	}

	gw := &recordingGateway{}
	if _, err := e.Save(context.Background(), gw, Party{}, Party{}); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateSaved {
		t.Fatalf("state = %s", e.State())
	}

	if err := e.Set(FieldGrossAmount, "1"); !errors.Is(err, ErrFrozen) {
		t.Errorf("Set after save: %v", err)
	}
	if err := e.SetAll(map[string]string{"gross_amount": "1"}); !errors.Is(err, ErrFrozen) {
		t.Errorf("SetAll after save: %v", err)
	}
	if err := e.SelectWithholding(WithholdingNone); !errors.Is(err, ErrFrozen) {
		t.Errorf("SelectWithholding after save: %v", err)
	}
	if _, err := e.Save(context.Background(), gw, Party{}, Party{}); !errors.Is(err, ErrFrozen) {
		t.Errorf("second save: %v", err)
	}

	snap, err := e.Preview()
	if err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePreviewing {
		t.Errorf("state = %s", e.State())
	}
	if !snap.Summary.Equal(gw.got.Summary) {
		t.Error("preview snapshot differs from the one submitted")
	}
	if _, err := e.Preview(); err != nil {
		t.Errorf("second preview: %v", err)
	}
}

func TestResumeEditorRecouplesRate(t *testing.T) {
	in := NewBillInput("RA-1")
	in.GrossAmount = amt("1000")
	in.WithholdingCategory = Withholding194COthers
	in.WithholdingRatePercent = amt("50")

	e := ResumeEditor(in)
	assertAmount(t, "rate", e.Input().WithholdingRatePercent, "2")
	assertAmount(t, "withholding", e.Summary().WithholdingAmount, "20")
}
