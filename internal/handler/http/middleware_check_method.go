// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A known path requested with a method it does not serve gets the same
// JSON 404 as an unknown path, so clients cannot probe the route table.
// Requests the router can route after all are passed through.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		logger.FromRequest(r).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("method is not served")
		utils.WriteError(w, app.MsgNotFound, "", http.StatusNotFound)
	}
}
