package post

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulseapp/pulse-api/internal/domain/user"
	"github.com/pulseapp/pulse-api/internal/middleware"
	"github.com/pulseapp/pulse-api/internal/pkg/response"
	"github.com/pulseapp/pulse-api/internal/pkg/validator"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Handler handles post HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates post handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /posts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreatePostRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.CreatePost(r.Context(), userID, req.Content)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, PostFromEntity(p))
}

// List handles GET /posts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	posts, total, err := h.service.ListPosts(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, PostsFromEntities(posts), buildMeta(total, page, pageSize))
}

// Feed handles GET /feed — posts from followed users
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, pageSize := pagination(r)

	posts, total, err := h.service.Feed(r.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, PostsFromEntities(posts), buildMeta(total, page, pageSize))
}

// Get handles GET /posts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, PostFromEntity(p))
}

// Update handles PUT /posts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.UpdatePost(r.Context(), userID, postID, req.Content)
	if err != nil {
		h.postError(w, err)
		return
	}

	response.OK(w, PostFromEntity(p))
}

// Delete handles DELETE /posts/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	isAdmin := middleware.GetRole(r.Context()) == string(user.RoleAdmin)
	if err := h.service.DeletePost(r.Context(), userID, postID, isAdmin); err != nil {
		h.postError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Post deleted successfully"})
}

// Like handles POST /posts/{id}/like
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Like(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.NotFound(w, "Post not found")
		case errors.Is(err, ErrAlreadyLiked):
			response.BadRequest(w, "You have already liked this post")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Post liked"})
}

// Unlike handles DELETE /posts/{id}/like
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Unlike(r.Context(), userID, postID); err != nil {
		if errors.Is(err, ErrLikeNotFound) {
			response.NotFound(w, "Like not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "Post unliked"})
}

// CreateComment handles POST /posts/{id}/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.CreateComment(r.Context(), userID, postID, req.Content)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, CommentFromEntity(c))
}

// ListComments handles GET /posts/{id}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}

	items := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		items = append(items, CommentFromEntity(c))
	}
	response.OK(w, items)
}

// DeleteComment handles DELETE /comments/{id}
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	commentID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), userID, commentID); err != nil {
		switch {
		case errors.Is(err, ErrCommentNotFound):
			response.NotFound(w, "Comment not found")
		case errors.Is(err, ErrNotAuthor):
			response.Forbidden(w, "You can only delete your own comments")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Comment deleted successfully"})
}

// ListHashtags handles GET /hashtags
func (h *Handler) ListHashtags(w http.ResponseWriter, r *http.Request) {
	_, pageSize := pagination(r)

	tags, err := h.service.ListHashtags(r.Context(), pageSize)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*HashtagResponse, 0, len(tags))
	for _, t := range tags {
		items = append(items, &HashtagResponse{
			Tag:        t.Tag,
			Count:      t.Count,
			LastUsedAt: t.LastUsedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	response.OK(w, items)
}

// GetHashtag handles GET /hashtags/{tag}
func (h *Handler) GetHashtag(w http.ResponseWriter, r *http.Request) {
	tag := strings.ToLower(chi.URLParam(r, "tag"))
	if tag == "" {
		response.BadRequest(w, "Hashtag is required")
		return
	}
	page, pageSize := pagination(r)

	hashtag, posts, total, err := h.service.HashtagPosts(r.Context(), tag, pageSize, (page-1)*pageSize)
	if err != nil {
		if errors.Is(err, ErrHashtagNotFound) {
			response.NotFound(w, fmt.Sprintf("Hashtag #%s not found", tag))
			return
		}
		response.InternalError(w)
		return
	}

	response.WithMeta(w, map[string]interface{}{
		"hashtag": "#" + hashtag.Tag,
		"posts":   PostsFromEntities(posts),
	}, buildMeta(total, page, pageSize))
}

func (h *Handler) postError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.NotFound(w, "Post not found")
	case errors.Is(err, ErrNotAuthor):
		response.Forbidden(w, "You can only modify your own posts")
	default:
		response.InternalError(w)
	}
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		response.BadRequest(w, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

func pagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}
	return page, pageSize
}

func buildMeta(total, page, pageSize int) response.Meta {
	pages := (total + pageSize - 1) / pageSize
	return response.Meta{
		Total:   total,
		Page:    page,
		Limit:   pageSize,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
