package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/umay/internal/utils"
)

func (h *Handler) listCities(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.DirectoryService.Cities(r.Context()), http.StatusOK)
}

func (h *Handler) listInstitutions(w http.ResponseWriter, r *http.Request) {
	institutions, err := h.services.DirectoryService.Institutions(r.Context(), chi.URLParam(r, "city"))
	if err != nil {
		writeError(w, r, "*Handler.listInstitutions", err)
		return
	}

	utils.WriteJSON(w, institutions, http.StatusOK)
}
