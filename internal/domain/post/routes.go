package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the post CRUD router, mounted at /posts.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/like", h.Like)
	r.Delete("/{id}/like", h.Unlike)

	r.Get("/{id}/comments", h.ListComments)
	r.Post("/{id}/comments", h.CreateComment)

	return r
}

// FeedRoutes returns the feed router, mounted at /feed.
func (h *Handler) FeedRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.Feed)

	return r
}

// HashtagRoutes returns the hashtag router, mounted at /hashtags.
// Hashtags are public, like the original trending-tags feed.
func (h *Handler) HashtagRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListHashtags)
	r.Get("/{tag}", h.GetHashtag)

	return r
}

// CommentRoutes returns the comment router, mounted at /comments.
func (h *Handler) CommentRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Delete("/{id}", h.DeleteComment)

	return r
}
