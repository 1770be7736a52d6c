package handlers

import (
	"net/http"
	"strings"

	"pmis/models"
	"pmis/repository"
)

type OrganizationHandler struct {
	Repo repository.OrganizationRepository
}

func (h *OrganizationHandler) SaveOrganization(w http.ResponseWriter, r *http.Request) {
	var org models.Organization
	if !decodeJSON(w, r, &org) {
		return
	}
	if strings.TrimSpace(org.Name) == "" {
		writeError(w, http.StatusBadRequest, "Organization name is required")
		return
	}

	if err := h.Repo.SaveOrganization(r.Context(), &org); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save organization: "+err.Error())
		return
	}
	writeOK(w, http.StatusCreated, "Organization saved", org)
}

func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.Repo.GetOrganization(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if org == nil {
		writeError(w, http.StatusNotFound, "Organization details not found")
		return
	}
	writeOK(w, http.StatusOK, "", org)
}
