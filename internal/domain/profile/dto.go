package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulseapp/pulse-api/internal/domain/user"
)

// UpdateProfileRequest for PUT /profile/update
type UpdateProfileRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=512"`
}

// ProfileResponse represents a user profile in API responses
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// FromEntity converts a user entity to a profile response
func FromEntity(u *user.User) *ProfileResponse {
	return &ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio.String,
		AvatarURL: u.Avatar(),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
