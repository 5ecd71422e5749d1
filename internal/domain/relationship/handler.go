package relationship

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulseapp/pulse-api/internal/middleware"
	"github.com/pulseapp/pulse-api/internal/pkg/response"
)

// IdentityResolver looks up a single identity by username. Returns
// (nil, nil) when the username is unknown.
type IdentityResolver interface {
	ResolveUsername(ctx context.Context, username string) (*Identity, error)
}

// Handler handles relationship HTTP requests.
type Handler struct {
	service  *Service
	resolver IdentityResolver
}

// NewHandler creates relationship handler.
func NewHandler(service *Service, resolver IdentityResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// Follow handles POST /follow/{username}
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	target, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.Follow(r.Context(), actorID, target.ID); err != nil {
		switch {
		case errors.Is(err, ErrSelfReference):
			response.BadRequest(w, "You cannot follow yourself")
		case errors.Is(err, ErrBlocked):
			response.Forbidden(w, "Follow action not allowed due to block relationship")
		case errors.Is(err, ErrAlreadyFollowing):
			response.BadRequest(w, fmt.Sprintf("You are already following %s", target.Username))
		default:
			h.storeError(w, err)
		}
		return
	}

	response.OK(w, map[string]string{"message": fmt.Sprintf("You are now following %s", target.Username)})
}

// Unfollow handles POST /unfollow/{username}
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	target, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.Unfollow(r.Context(), actorID, target.ID); err != nil {
		h.storeError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": fmt.Sprintf("You unfollowed %s", target.Username)})
}

// Block handles POST /block/{username}
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	target, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.Block(r.Context(), actorID, target.ID); err != nil {
		switch {
		case errors.Is(err, ErrSelfReference):
			response.BadRequest(w, "You cannot block yourself")
		case errors.Is(err, ErrAlreadyBlocked):
			response.BadRequest(w, fmt.Sprintf("You have already blocked %s", target.Username))
		default:
			h.storeError(w, err)
		}
		return
	}

	response.OK(w, map[string]string{"message": fmt.Sprintf("You have blocked %s", target.Username)})
}

// Unblock handles POST /unblock/{username}
func (h *Handler) Unblock(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	target, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.Unblock(r.Context(), actorID, target.ID); err != nil {
		if errors.Is(err, ErrNotBlocked) {
			response.BadRequest(w, fmt.Sprintf("%s is not blocked", target.Username))
			return
		}
		h.storeError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": fmt.Sprintf("You have unblocked %s", target.Username)})
}

// Following handles GET /following/{username}
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	target, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	identities, err := h.service.ListFollowing(r.Context(), target.ID)
	if err != nil {
		h.storeError(w, err)
		return
	}

	response.OK(w, SummariesFromIdentities(identities))
}

// Followers handles GET /followers/{username}
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	target, ok := h.resolveTarget(w, r)
	if !ok {
		return
	}

	identities, err := h.service.ListFollowers(r.Context(), target.ID)
	if err != nil {
		h.storeError(w, err)
		return
	}

	response.OK(w, SummariesFromIdentities(identities))
}

// BlockedList handles GET /blocked-list
func (h *Handler) BlockedList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	identities, err := h.service.ListBlocked(r.Context(), userID)
	if err != nil {
		h.storeError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"blocked_users": SummariesFromIdentities(identities)})
}

// resolveTarget resolves the {username} route param to an identity,
// writing the error response itself when resolution fails.
func (h *Handler) resolveTarget(w http.ResponseWriter, r *http.Request) (*Identity, bool) {
	if middleware.GetUserID(r.Context()) == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return nil, false
	}

	username := chi.URLParam(r, "username")
	if username == "" {
		response.BadRequest(w, "Username is required")
		return nil, false
	}

	target, err := h.resolver.ResolveUsername(r.Context(), username)
	if err != nil {
		response.InternalError(w)
		return nil, false
	}
	if target == nil {
		response.NotFound(w, "User not found")
		return nil, false
	}
	return target, true
}

func (h *Handler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrStoreUnavailable) {
		response.ServiceUnavailable(w)
		return
	}
	response.InternalError(w)
}
