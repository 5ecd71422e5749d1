package relationship

import "github.com/google/uuid"

// UserSummary is the wire projection for follower/following/blocked lists.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// SummariesFromIdentities converts resolved identities to API responses.
func SummariesFromIdentities(identities []Identity) []UserSummary {
	items := make([]UserSummary, 0, len(identities))
	for _, id := range identities {
		items = append(items, UserSummary{
			ID:        id.ID,
			Username:  id.Username,
			FirstName: id.FirstName,
			LastName:  id.LastName,
			AvatarURL: id.AvatarURL,
		})
	}
	return items
}
