package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

// pathID parses the {id} URL parameter. On failure it replies 400 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteError(w, app.MsgInvalidID, "id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func pathFeed(r *http.Request) models.Feed {
	return models.Feed(chi.URLParam(r, "feed"))
}

// actor returns the authenticated account. It replies 401 when the auth
// middleware did not run.
func actor(w http.ResponseWriter, r *http.Request) (models.Account, bool) {
	account, ok := currentAccount(r)
	if !ok {
		utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, "", http.StatusUnauthorized)
	}
	return account, ok
}
