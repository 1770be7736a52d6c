package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pmis/billing"
	"pmis/document"
	"pmis/export"
	"pmis/models"
	"pmis/repository"
	"pmis/storage"
)

// RABillHandler serves generated bills and their documents.
type RABillHandler struct {
	Bills    repository.RABillRepository
	Gateway  *repository.BillGateway
	Docs     *repository.DocumentRepository
	Renderer *document.Renderer
	Printer  document.Printer
	Store    storage.ObjectStore
	Money    billing.MoneyFormatter
	Now      func() time.Time
}

// CreateBill is the server end of the persistence gateway. Derived figures
// sent by the client are discarded and recomputed.
func (h *RABillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var snap billing.Snapshot
	if !decodeJSON(w, r, &snap) {
		return
	}
	if err := snap.Input.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	bill, err := h.Gateway.Store(r.Context(), billing.Freeze(snap.Input, snap.Project, snap.Counterparty))
	if errors.Is(err, billing.ErrDuplicateBill) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store bill: "+err.Error())
		return
	}

	log.Info().Str("bill_no", bill.BillNo).Str("fingerprint", bill.Fingerprint).Msg("ra bill stored")
	writeOK(w, http.StatusCreated, "RA bill stored", bill)
}

func (h *RABillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.RABillFilter{
		ProjectRef:      q.Get("project_ref"),
		CounterpartyRef: q.Get("counterparty_ref"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	list, err := h.Bills.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*models.RABill{}
	}
	writeOK(w, http.StatusOK, "", list)
}

func (h *RABillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}
	writeOK(w, http.StatusOK, "", bill)
}

// PreviewBill renders the bill document as HTML.
func (h *RABillHandler) PreviewBill(w http.ResponseWriter, r *http.Request) {
	html, _, ok := h.render(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

// BillPDF prints the document, uploads it and records its URL on the bill.
func (h *RABillHandler) BillPDF(w http.ResponseWriter, r *http.Request) {
	html, bill, ok := h.render(w, r)
	if !ok {
		return
	}

	pdf, err := h.Printer.Print(r.Context(), html)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate PDF: "+err.Error())
		return
	}

	now := h.now()
	name := fmt.Sprintf("ra_bill_%s_%d.pdf", bill.BillNo, now.Unix())
	url, err := h.Store.Put(r.Context(), name, pdf, "application/pdf")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save PDF: "+err.Error())
		return
	}

	if err := h.Bills.SetDocument(r.Context(), bill.BillNo, url, now.UTC()); err != nil {
		// the file is already stored; the caller still gets its URL
		log.Error().Err(err).Str("bill_no", bill.BillNo).Msg("failed to record document url")
	} else if bill.DocumentURL != nil && *bill.DocumentURL != url {
		if err := h.Store.Delete(r.Context(), *bill.DocumentURL); err != nil {
			log.Warn().Err(err).Str("bill_no", bill.BillNo).Msg("failed to delete previous document")
		}
	}

	writeOK(w, http.StatusOK, "PDF generated", map[string]string{
		"bill_no":      bill.BillNo,
		"document_url": url,
	})
}

func (h *RABillHandler) LedgerXLSX(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}
	data, err := export.LedgerXLSX(bill.Snapshot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build workbook: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_ledger.xlsx"`, bill.BillNo))
	_, _ = w.Write(data)
}

type computeResponse struct {
	Input   billing.BillInput      `json:"input"`
	Summary billing.DerivedSummary `json:"summary"`
	Ledger  billing.Ledger         `json:"ledger"`
	Text    string                 `json:"text"`
}

// Compute previews the summary of an input without storing anything.
func (h *RABillHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var in billing.BillInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ApplyWithholdingCategory(in.WithholdingCategory)
	s := billing.Compute(in)
	l := billing.BuildLedger(in, s)
	writeOK(w, http.StatusOK, "", computeResponse{Input: in, Summary: s, Ledger: l, Text: l.Text(h.Money)})
}

func (h *RABillHandler) Schema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	b, err := billing.InputSchema().MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_, _ = w.Write(b)
}

func (h *RABillHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "", billing.RateTable())
}

func (h *RABillHandler) render(w http.ResponseWriter, r *http.Request) ([]byte, *models.RABill, bool) {
	billNo := chi.URLParam(r, "billNo")
	bill, org, err := h.Docs.Load(r.Context(), billNo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	if bill == nil {
		writeError(w, http.StatusNotFound, "RA bill not found")
		return nil, nil, false
	}
	html, err := h.Renderer.RenderHTML(bill.Snapshot, org)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render bill: "+err.Error())
		return nil, nil, false
	}
	return html, bill, true
}

func (h *RABillHandler) loadBill(w http.ResponseWriter, r *http.Request) (*models.RABill, bool) {
	bill, err := h.Bills.GetByBillNo(r.Context(), chi.URLParam(r, "billNo"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if bill == nil {
		writeError(w, http.StatusNotFound, "RA bill not found")
		return nil, false
	}
	return bill, true
}

func (h *RABillHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
