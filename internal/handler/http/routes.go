package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/verify", h.verifyEmail)
		r.Post("/api/auth/otp", h.requestOTP)
		r.Post("/api/auth/password/reset", h.resetPassword)

		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/directory", h.listCities)
		r.Get("/api/directory/{city}", h.listInstitutions)

		r.Get("/api/content/{feed}", h.listFeed)
		r.Get("/api/content/{feed}/{id}", h.viewArticle)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/me", h.me)

		r.Get("/api/records", h.listRecords)
		r.Post("/api/records", h.createRecord)
		r.Get("/api/records/filters", h.recordFilters)
		r.Get("/api/records/{id}", h.getRecord)
		r.Put("/api/records/{id}", h.updateRecord)
		r.Delete("/api/records/{id}", h.deleteRecord)

		r.Get("/api/dashboard", h.dashboard)
		r.Get("/api/analytics", h.analytics)
		r.Get("/api/export/{format}", h.export)

		r.Get("/api/admin/content/{feed}", h.adminListFeed)
		r.Post("/api/admin/content/{feed}", h.createArticle)
		r.Post("/api/admin/content/{feed}/generate", h.generateArticle)
		r.Put("/api/admin/content/{feed}/{id}", h.updateArticle)
		r.Delete("/api/admin/content/{feed}/{id}", h.deleteArticle)
		r.Post("/api/admin/content/{feed}/{id}/approve", h.approveArticle)
		r.Post("/api/admin/content/{feed}/{id}/reject", h.rejectArticle)

		r.Post("/api/admin/media", h.uploadMedia)
	})

	if h.cfg.MediaDir != "" {
		router.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(filesOnly{http.Dir(h.cfg.MediaDir)})))
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
