package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns moderation router
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	// Any authenticated user may file a report.
	r.Post("/reports", h.CreateReport)

	// Review actions are admin-only.
	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/reports", h.ListReports)
		r.Post("/reports/{id}/resolve", h.ResolveReport)
		r.Post("/warnings", h.WarnUser)
		r.Get("/warnings/{userID}", h.ListWarnings)
	})

	return r
}
