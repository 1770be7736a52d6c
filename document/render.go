package document

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"pmis/billing"
	"pmis/models"
)

//go:embed templates/ra_bill.html
var templateFS embed.FS

// Renderer turns frozen snapshots into print-ready HTML.
type Renderer struct {
	tmpl  *template.Template
	money billing.MoneyFormatter

	// Now stamps the footer. Tests pin it.
	Now func() time.Time
}

func NewRenderer(money billing.MoneyFormatter) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/ra_bill.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, money: money, Now: time.Now}, nil
}

// Build lays out the snapshot with the renderer's money format.
func (r *Renderer) Build(snap billing.Snapshot, org *models.Organization) (Document, error) {
	return Build(snap, org, r.money)
}

// RenderHTML builds and executes the document, stamping the footer with the
// current time.
func (r *Renderer) RenderHTML(snap billing.Snapshot, org *models.Organization) ([]byte, error) {
	doc, err := r.Build(snap, org)
	if err != nil {
		return nil, err
	}
	doc.GeneratedAt = r.Now().UTC().Format("02-Jan-2006 15:04:05 MST")
	return r.Execute(doc)
}

// Execute renders an already built document.
func (r *Renderer) Execute(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
