package document

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"pmis/billing"
	"pmis/models"
)

func sampleSnapshot() billing.Snapshot {
	in := billing.NewBillInput("RA-20260101-ABCDEF12")
	in.ProjectRef = "PRJ-1"
	in.CounterpartyRef = "VND-9"
	in.WorkOrderNo = "WO/22/17"
	in.PeriodStart = "2026-01-01"
	in.PeriodEnd = "2026-01-31"
	in.GrossAmount = billing.ParseAmount("100000")
	in.TaxRatePercent = billing.ParseAmount("18")
	in.ApplyWithholdingCategory(billing.Withholding194CIndividual)
	in.CessRatePercent = billing.ParseAmount("1")
	in.RetentionRatePercent = billing.ParseAmount("5")
	in.MobilizationRecovery = billing.ParseAmount("2000")
	return billing.Freeze(in,
		billing.Party{Name: "Industrial Area Ring Road"},
		billing.Party{Name: "Acme Infra Pvt Ltd", City: "Pune", Pincode: "411001", GSTIN: "27AAAAA0000A1Z5"},
	)
}

func sampleOrg() *models.Organization {
	return &models.Organization{
		Name:         "Industrial Development Corporation",
		Address:      "Plot 4, MIDC",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411019",
		GSTIN:        "27BBBBB1111B1Z5",
		Contacts:     []models.ContactEntry{{Number: "020-1234567", Label: "Office"}},
		EMDAmount:    billing.ParseAmount("250000"),
		EMDReference: "BG/2025/118",
		Signatories: []models.Signatory{
			{Role: "Prepared by", Name: "R. Kulkarni", Designation: "Junior Engineer"},
			{Role: "Approved by", Name: "S. Deshmukh", Designation: "Executive Engineer"},
		},
	}
}

func newTestRenderer(t *testing.T, at time.Time) *Renderer {
	t.Helper()
	r, err := NewRenderer(billing.NewMoneyFormatter("en", "₹"))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	r.Now = func() time.Time { return at }
	return r
}

func TestBuildHasSixSectionsInOrder(t *testing.T) {
	doc, err := Build(sampleSnapshot(), sampleOrg(), billing.NewMoneyFormatter("en", "₹"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{SectionParties, SectionGross, SectionDeductions, SectionNetPayable, SectionEMD, SectionCertification}
	if len(doc.Sections) != len(want) {
		t.Fatalf("sections = %d", len(doc.Sections))
	}
	for i, k := range want {
		if doc.Sections[i].Key != k {
			t.Errorf("section %d = %s, want %s", i, doc.Sections[i].Key, k)
		}
	}
	if doc.GeneratedAt != "" {
		t.Errorf("Build stamped a time: %q", doc.GeneratedAt)
	}
}

func TestNetPayableSectionRepeatsChain(t *testing.T) {
	doc, err := Build(sampleSnapshot(), sampleOrg(), billing.NewMoneyFormatter("en", "₹"))
	if err != nil {
		t.Fatal(err)
	}
	sec, ok := doc.Section(SectionNetPayable)
	if !ok {
		t.Fatal("no net payable section")
	}

	wantValues := []string{
		"₹118,000.00",
		"(₹1,000.00)",
		"(₹1,000.00)",
		"(₹5,000.00)",
		"(₹2,000.00)",
		"(₹0.00)",
		"₹109,000.00",
		"One Lakh Nine Thousand Rupees Only",
	}
	if len(sec.Rows) != len(wantValues) {
		t.Fatalf("rows = %+v", sec.Rows)
	}
	for i, v := range wantValues {
		if sec.Rows[i].Value != v {
			t.Errorf("row %d (%s) = %q, want %q", i, sec.Rows[i].Label, sec.Rows[i].Value, v)
		}
	}
	for _, r := range sec.Rows[1:6] {
		if !strings.HasPrefix(r.Label, "Less: ") {
			t.Errorf("chain row %q lacks Less:", r.Label)
		}
	}
	if !sec.Rows[6].Emphasis {
		t.Error("net payable not emphasized")
	}
}

func TestDeductionsSectionOrder(t *testing.T) {
	doc, _ := Build(sampleSnapshot(), nil, billing.DefaultMoneyFormatter())
	sec, _ := doc.Section(SectionDeductions)

	var top []string
	for _, r := range sec.Rows {
		if !r.Indent && !r.Subtotal {
			top = append(top, r.Label)
		}
	}
	prefixes := []string{"Withholding", "Cess", "Retention", "Recoveries", "Other deductions"}
	if len(top) != len(prefixes) {
		t.Fatalf("top rows = %v", top)
	}
	for i, p := range prefixes {
		if !strings.HasPrefix(top[i], p) {
			t.Errorf("row %d = %q, want prefix %q", i, top[i], p)
		}
	}
}

func TestEMDAndCertification(t *testing.T) {
	doc, _ := Build(sampleSnapshot(), sampleOrg(), billing.NewMoneyFormatter("en", "₹"))
	emd, _ := doc.Section(SectionEMD)
	if emd.Rows[0].Value != "₹250,000.00" {
		t.Errorf("emd = %q", emd.Rows[0].Value)
	}
	cert, _ := doc.Section(SectionCertification)
	if len(cert.Rows) != 3 || cert.Rows[1].Value != "R. Kulkarni, Junior Engineer" {
		t.Errorf("certification rows = %+v", cert.Rows)
	}

	bare, _ := Build(sampleSnapshot(), nil, billing.NewMoneyFormatter("en", "₹"))
	cert, _ = bare.Section(SectionCertification)
	if len(cert.Rows) != 1+len(models.DefaultSignatories) {
		t.Errorf("default signatories missing: %+v", cert.Rows)
	}
	emd, _ = bare.Section(SectionEMD)
	if emd.Rows[0].Value != "₹0.00" {
		t.Errorf("emd without org = %q", emd.Rows[0].Value)
	}
}

var footerRe = regexp.MustCompile(`(?s)<footer>.*</footer>`)

func TestRenderIsStable(t *testing.T) {
	at := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	a, err := newTestRenderer(t, at).RenderHTML(sampleSnapshot(), sampleOrg())
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestRenderer(t, at).RenderHTML(sampleSnapshot(), sampleOrg())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same snapshot rendered differently")
	}

	c, err := newTestRenderer(t, at.Add(48*time.Hour)).RenderHTML(sampleSnapshot(), sampleOrg())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, c) {
		t.Fatal("footer timestamp missing")
	}
	if !bytes.Equal(footerRe.ReplaceAll(a, nil), footerRe.ReplaceAll(c, nil)) {
		t.Error("timestamp leaked outside the footer")
	}
	if !bytes.Contains(a, []byte("01-Feb-2026 10:30:00 UTC")) {
		t.Error("timestamp not printed")
	}
}

func TestRenderHTMLContent(t *testing.T) {
	html, err := newTestRenderer(t, time.Unix(0, 0)).RenderHTML(sampleSnapshot(), sampleOrg())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Industrial Development Corporation",
		"RA-20260101-ABCDEF12",
		"Acme Infra Pvt Ltd",
		"2026-01-01 to 2026-01-31",
		"₹109,000.00",
		"One Lakh Nine Thousand Rupees Only",
		"BG/2025/118",
		`class="certification"`,
	} {
		if !strings.Contains(string(html), want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(sampleSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d", len(a))
	}
	b, _ := Fingerprint(sampleSnapshot())
	if a != b {
		t.Error("fingerprint not stable")
	}

	snap := sampleSnapshot()
	snap.Input.PenaltyAmount = billing.ParseAmount("1")
	snap.Summary = billing.Compute(snap.Input)
	c, _ := Fingerprint(snap)
	if a == c {
		t.Error("fingerprint ignores amounts")
	}
}
