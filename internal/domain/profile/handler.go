package profile

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulseapp/pulse-api/internal/domain/user"
	"github.com/pulseapp/pulse-api/internal/middleware"
	"github.com/pulseapp/pulse-api/internal/pkg/response"
	"github.com/pulseapp/pulse-api/internal/pkg/validator"
)

// Handler handles profile HTTP requests
type Handler struct {
	users user.Repository
}

// NewHandler creates profile handler
func NewHandler(users user.Repository) *Handler {
	return &Handler{users: users}
}

// Me handles GET /profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, FromEntity(u))
}

// Get handles GET /profile/{username}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		response.BadRequest(w, "Username is required")
		return
	}

	u, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, FromEntity(u))
}

// Update handles PUT /profile/update
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	// Partial update: only provided fields change.
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = sql.NullString{String: *req.Bio, Valid: *req.Bio != ""}
	}
	if req.AvatarURL != nil {
		u.AvatarURL = sql.NullString{String: *req.AvatarURL, Valid: *req.AvatarURL != ""}
	}

	if err := h.users.Update(r.Context(), u); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			response.BadRequest(w, "A user with that email already exists")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "Profile updated successfully"})
}
