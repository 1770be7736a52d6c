package document

import (
	"strings"

	"pmis/billing"
	"pmis/models"
	"pmis/utils"
)

// Section keys in print order.
const (
	SectionParties       = "parties"
	SectionGross         = "gross"
	SectionDeductions    = "deductions"
	SectionNetPayable    = "net_payable"
	SectionEMD           = "emd"
	SectionCertification = "certification"
)

var sectionOrder = []string{
	SectionParties,
	SectionGross,
	SectionDeductions,
	SectionNetPayable,
	SectionEMD,
	SectionCertification,
}

type Row struct {
	Label     string
	Value     string
	Indent    bool
	Deduction bool
	Subtotal  bool
	Emphasis  bool
}

type Section struct {
	Key   string
	Title string
	Rows  []Row
}

type Letterhead struct {
	Name     string
	Address  string
	GSTIN    string
	Contacts string
	Footnote string
}

// Document is everything the template prints. All values are formatted
// strings so the template holds no logic beyond layout.
type Document struct {
	Letterhead      Letterhead
	BillNo          string
	Sections        []Section
	NetPayable      string
	NetPayableWords string
	Signatories     []models.Signatory
	Fingerprint     string
	GeneratedAt     string
}

// Section returns the section with the given key.
func (d Document) Section(key string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Build lays a frozen snapshot out in the six fixed sections. It does not
// read the clock; GeneratedAt is left for the caller.
func Build(snap billing.Snapshot, org *models.Organization, money billing.MoneyFormatter) (Document, error) {
	fp, err := Fingerprint(snap)
	if err != nil {
		return Document{}, err
	}

	in, s := snap.Input, snap.Summary
	ledger := billing.BuildLedger(in, s)

	doc := Document{
		Letterhead:      letterhead(org),
		BillNo:          in.BillNo,
		NetPayable:      money.Money(s.NetPayable),
		NetPayableWords: utils.AmountInWords(s.NetPayable.Decimal),
		Signatories:     org.SignatureLines(),
		Fingerprint:     fp,
	}

	for _, key := range sectionOrder {
		switch key {
		case SectionParties:
			doc.Sections = append(doc.Sections, partiesSection(snap))
		case SectionGross:
			doc.Sections = append(doc.Sections, grossSection(ledger, money))
		case SectionDeductions:
			doc.Sections = append(doc.Sections, deductionsSection(ledger, money))
		case SectionNetPayable:
			doc.Sections = append(doc.Sections, netPayableSection(ledger, money, doc.NetPayableWords))
		case SectionEMD:
			doc.Sections = append(doc.Sections, emdSection(org, money))
		case SectionCertification:
			doc.Sections = append(doc.Sections, certificationSection(doc.Signatories))
		}
	}
	return doc, nil
}

func letterhead(org *models.Organization) Letterhead {
	if org == nil {
		return Letterhead{}
	}
	addr := joinNonEmpty(", ", org.Address, org.City, org.State)
	if org.Pincode != "" {
		addr = joinNonEmpty(" - ", addr, org.Pincode)
	}
	return Letterhead{
		Name:     org.Name,
		Address:  addr,
		GSTIN:    org.GSTIN,
		Contacts: org.ContactLine(),
		Footnote: org.Footnote,
	}
}

func partiesSection(snap billing.Snapshot) Section {
	in := snap.Input
	period := joinNonEmpty(" to ", in.PeriodStart, in.PeriodEnd)
	rows := []Row{
		{Label: "Project", Value: snap.Project.DisplayName()},
		{Label: "Project reference", Value: dash(in.ProjectRef)},
		{Label: "Contractor / vendor", Value: snap.Counterparty.DisplayName()},
		{Label: "Vendor address", Value: dash(snap.Counterparty.Address())},
		{Label: "Vendor GSTIN", Value: dash(snap.Counterparty.GSTIN)},
		{Label: "RA bill no.", Value: dash(in.BillNo)},
		{Label: "Work order no.", Value: dash(in.WorkOrderNo)},
		{Label: "Invoice no.", Value: dash(in.InvoiceNo)},
		{Label: "Bill period", Value: dash(period)},
		{Label: "Submission date", Value: dash(in.SubmissionDate)},
	}
	return Section{Key: SectionParties, Title: "Bill particulars", Rows: rows}
}

func grossSection(l billing.Ledger, money billing.MoneyFormatter) Section {
	var rows []Row
	for _, k := range []billing.LineKind{billing.LineGross, billing.LineTax, billing.LineTotal} {
		ln, _ := l.Line(k)
		rows = append(rows, Row{Label: ln.Label, Value: money.Money(ln.Amount), Subtotal: ln.Subtotal})
	}
	return Section{Key: SectionGross, Title: "Gross value and tax", Rows: rows}
}

func deductionsSection(l billing.Ledger, money billing.MoneyFormatter) Section {
	var rows []Row
	for _, ln := range l.Deductions() {
		rows = append(rows, Row{Label: ln.Label, Value: money.Deduction(ln.Amount), Deduction: true})
		for _, c := range ln.Components {
			rows = append(rows, Row{Label: c.Label, Value: money.Deduction(c.Amount), Deduction: true, Indent: true})
		}
	}
	total, _ := l.Line(billing.LineTotalDeductions)
	rows = append(rows, Row{Label: total.Label, Value: money.Deduction(total.Amount), Deduction: true, Subtotal: true})
	return Section{Key: SectionDeductions, Title: "Statutory and other deductions", Rows: rows}
}

// netPayableSection repeats the whole subtraction chain so the figure can be
// checked line by line.
func netPayableSection(l billing.Ledger, money billing.MoneyFormatter, words string) Section {
	total, _ := l.Line(billing.LineTotal)
	rows := []Row{{Label: total.Label, Value: money.Money(total.Amount)}}
	for _, ln := range l.Deductions() {
		rows = append(rows, Row{Label: "Less: " + ln.Label, Value: money.Deduction(ln.Amount), Deduction: true})
	}
	net, _ := l.Line(billing.LineNetPayable)
	rows = append(rows,
		Row{Label: net.Label, Value: money.Money(net.Amount), Emphasis: true},
		Row{Label: "In words", Value: words},
	)
	return Section{Key: SectionNetPayable, Title: "Net payable computation", Rows: rows}
}

func emdSection(org *models.Organization, money billing.MoneyFormatter) Section {
	var amt billing.Amount
	ref := ""
	if org != nil {
		amt = org.EMDAmount
		ref = org.EMDReference
	}
	rows := []Row{
		{Label: "Earnest money deposit (held separately, not part of this bill)", Value: money.Money(amt)},
	}
	if ref != "" {
		rows = append(rows, Row{Label: "EMD reference", Value: ref})
	}
	return Section{Key: SectionEMD, Title: "Earnest money deposit", Rows: rows}
}

func certificationSection(signatories []models.Signatory) Section {
	rows := []Row{{
		Label: "Certified that the work billed has been executed as per the work order and the amounts above are correct.",
	}}
	for _, s := range signatories {
		rows = append(rows, Row{Label: s.Role, Value: joinNonEmpty(", ", s.Name, s.Designation)})
	}
	return Section{Key: SectionCertification, Title: "Certification", Rows: rows}
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
