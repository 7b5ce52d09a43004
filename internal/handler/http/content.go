package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

// listFeed returns the published articles of a feed, newest first.
// Query: category, limit.
func (h *Handler) listFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var limit uint64
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.WriteError(w, app.MsgInvalidDataProvided, "limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	articles, err := h.services.ContentService.ListPublished(r.Context(), pathFeed(r), query.Get("category"), limit)
	if err != nil {
		writeError(w, r, "*Handler.listFeed", err)
		return
	}

	utils.WriteJSON(w, nonNilArticles(articles), http.StatusOK)
}

func (h *Handler) viewArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	article, err := h.services.ContentService.ViewPublished(r.Context(), pathFeed(r), id)
	if err != nil {
		writeError(w, r, "*Handler.viewArticle", err)
		return
	}

	utils.WriteJSON(w, article, http.StatusOK)
}

func (h *Handler) adminListFeed(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	articles, err := h.services.ContentService.List(r.Context(), account, pathFeed(r), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, "*Handler.adminListFeed", err)
		return
	}

	utils.WriteJSON(w, nonNilArticles(articles), http.StatusOK)
}

func (h *Handler) createArticle(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	article, ok := decodeArticle(w, r, "*Handler.createArticle")
	if !ok {
		return
	}
	article.Feed = pathFeed(r)

	created, err := h.services.ContentService.Create(r.Context(), account, article)
	if err != nil {
		writeError(w, r, "*Handler.createArticle", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateArticle(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	article, ok := decodeArticle(w, r, "*Handler.updateArticle")
	if !ok {
		return
	}
	article.ID = id
	article.Feed = pathFeed(r)

	updated, err := h.services.ContentService.Update(r.Context(), account, article)
	if err != nil {
		writeError(w, r, "*Handler.updateArticle", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteArticle(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.ContentService.Delete(r.Context(), account, pathFeed(r), id); err != nil {
		writeError(w, r, "*Handler.deleteArticle", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) generateArticle(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.generateArticle").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return
	}

	draft, err := h.services.ContentService.Generate(r.Context(), account, pathFeed(r), req)
	if err != nil {
		writeError(w, r, "*Handler.generateArticle", err)
		return
	}

	utils.WriteJSON(w, draft, http.StatusCreated)
}

func (h *Handler) approveArticle(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	article, err := h.services.ContentService.Approve(r.Context(), account, pathFeed(r), id)
	if err != nil {
		writeError(w, r, "*Handler.approveArticle", err)
		return
	}

	utils.WriteJSON(w, article, http.StatusOK)
}

func (h *Handler) rejectArticle(w http.ResponseWriter, r *http.Request) {
	account, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.ContentService.Reject(r.Context(), account, pathFeed(r), id); err != nil {
		writeError(w, r, "*Handler.rejectArticle", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeArticle(w http.ResponseWriter, r *http.Request, funcName string) (models.Article, bool) {
	var article models.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return models.Article{}, false
	}
	return article, true
}

func nonNilArticles(articles []models.Article) []models.Article {
	if articles == nil {
		return []models.Article{}
	}
	return articles
}
