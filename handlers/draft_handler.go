package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pmis/billing"
	"pmis/models"
	"pmis/repository"
)

// DraftHandler serves bills that are still being edited.
type DraftHandler struct {
	Drafts repository.DraftStore
	Bills  *repository.BillGateway
	Now    func() time.Time
}

func NewDraftHandler(drafts repository.DraftStore, bills *repository.BillGateway) *DraftHandler {
	return &DraftHandler{Drafts: drafts, Bills: bills, Now: time.Now}
}

type generateRequest struct {
	Project      billing.Party `json:"project"`
	Counterparty billing.Party `json:"counterparty"`
}

// CreateDraft starts an empty bill with a fresh bill number. An optional
// body of field edits is applied before the draft is stored.
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &values) {
			return
		}
	}

	e := billing.NewEditor(billing.NewBillNo(h.Now()))
	if err := e.SetAll(values); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d := &models.Draft{ID: uuid.NewString(), Input: e.Input()}
	if err := h.Drafts.Save(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save draft: "+err.Error())
		return
	}
	writeOK(w, http.StatusCreated, "Draft created", models.NewDraftView(d.ID, e))
}

func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	writeOK(w, http.StatusOK, "", models.NewDraftView(d.ID, billing.ResumeEditor(d.Input)))
}

// UpdateDraft applies a batch of field edits. A rejected edit leaves the
// stored draft as it was.
func (h *DraftHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	var values map[string]string
	if !decodeJSON(w, r, &values) {
		return
	}

	e := billing.ResumeEditor(d.Input)
	if err := e.SetAll(values); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: err.Error(),
			Data:    models.NewDraftView(d.ID, billing.ResumeEditor(d.Input)),
		})
		return
	}

	d.Input = e.Input()
	if err := h.Drafts.Save(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save draft: "+err.Error())
		return
	}
	writeOK(w, http.StatusOK, "", models.NewDraftView(d.ID, e))
}

func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Drafts.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete draft: "+err.Error())
		return
	}
	writeOK(w, http.StatusOK, "Draft deleted successfully", nil)
}

// GenerateDraft saves the draft through the editor. Validation failures
// answer 422 and gateway failures 502; the draft is kept in both cases so
// the user can fix it and retry.
func (h *DraftHandler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	var req generateRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	var stored *models.RABill
	gw := billing.GatewayFunc(func(ctx context.Context, snap billing.Snapshot) error {
		bill, err := h.Bills.Store(ctx, snap)
		stored = bill
		return err
	})

	e := billing.ResumeEditor(d.Input)
	if _, err := e.Save(r.Context(), gw, req.Project, req.Counterparty); err != nil {
		status := http.StatusInternalServerError
		var verr *billing.ValidationError
		var gerr *billing.GatewayError
		switch {
		case errors.As(err, &verr):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, billing.ErrDuplicateBill):
			status = http.StatusConflict
		case errors.As(err, &gerr):
			status = http.StatusBadGateway
		}
		writeJSON(w, status, ApiResponse{
			Success: false,
			Message: err.Error(),
			Data:    models.NewDraftView(d.ID, e),
		})
		return
	}

	if err := h.Drafts.Delete(r.Context(), d.ID); err != nil {
		log.Warn().Err(err).Str("draft_id", d.ID).Msg("generated bill but could not drop draft")
	}
	writeOK(w, http.StatusCreated, "RA bill generated", stored)
}

func (h *DraftHandler) load(w http.ResponseWriter, r *http.Request) (*models.Draft, bool) {
	id := chi.URLParam(r, "id")
	d, err := h.Drafts.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Draft not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return d, true
}
