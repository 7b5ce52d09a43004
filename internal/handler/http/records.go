package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	criteria, err := filter.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, "*Handler.listRecords", err)
		return
	}

	records, err := h.services.RecordService.Search(r.Context(), account, criteria)
	if err != nil {
		writeError(w, r, "*Handler.listRecords", err)
		return
	}
	if records == nil {
		records = []models.BirthRecord{}
	}

	utils.WriteJSON(w, models.RecordList{Records: records, Length: len(records)}, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	var record models.BirthRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.createRecord").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return
	}

	created, err := h.services.RecordService.Create(r.Context(), account, record)
	if err != nil {
		writeError(w, r, "*Handler.createRecord", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	record, err := h.services.RecordService.Get(r.Context(), account, id)
	if err != nil {
		writeError(w, r, "*Handler.getRecord", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var record models.BirthRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.updateRecord").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return
	}

	updated, err := h.services.RecordService.Update(r.Context(), account, id, record)
	if err != nil {
		writeError(w, r, "*Handler.updateRecord", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.RecordService.Delete(r.Context(), account, id); err != nil {
		writeError(w, r, "*Handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordFilters(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	opts, err := h.services.RecordService.FilterOptions(r.Context(), account)
	if err != nil {
		writeError(w, r, "*Handler.recordFilters", err)
		return
	}

	utils.WriteJSON(w, opts, http.StatusOK)
}
