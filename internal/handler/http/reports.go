package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/utils"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	dashboard, err := h.services.RecordService.Dashboard(r.Context(), account)
	if err != nil {
		writeError(w, r, "*Handler.dashboard", err)
		return
	}

	utils.WriteJSON(w, dashboard, http.StatusOK)
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	criteria, err := filter.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, "*Handler.analytics", err)
		return
	}

	stats, err := h.services.RecordService.Analytics(r.Context(), account, criteria)
	if err != nil {
		writeError(w, r, "*Handler.analytics", err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

// export sends the filtered records as csv, xlsx or pdf. The query
// parameters are the ones of the record search.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	criteria, err := filter.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, "*Handler.export", err)
		return
	}

	format := report.Format(chi.URLParam(r, "format"))
	file, err := h.services.RecordService.Export(r.Context(), account, criteria, format)
	if err != nil {
		writeError(w, r, "*Handler.export", err)
		return
	}

	utils.WriteAttachment(w, file.Name, file.ContentType, file.Body)
}
