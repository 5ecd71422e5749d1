package relationship

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the relationship router.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// All relationship operations require an authenticated caller.
	r.Use(authMiddleware)

	r.Post("/follow/{username}", h.Follow)
	r.Post("/unfollow/{username}", h.Unfollow)
	r.Post("/block/{username}", h.Block)
	r.Post("/unblock/{username}", h.Unblock)

	r.Get("/following/{username}", h.Following)
	r.Get("/followers/{username}", h.Followers)
	r.Get("/blocked-list", h.BlockedList)

	return r
}
