package post

import (
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest for POST /posts
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// UpdatePostRequest for PUT /posts/{id}
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// CreateCommentRequest for POST /posts/{id}/comments
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID           uuid.UUID `json:"id"`
	AuthorID     uuid.UUID `json:"author_id"`
	Username     string    `json:"username"`
	Content      string    `json:"content"`
	Hashtags     []string  `json:"hashtags"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

// HashtagResponse represents a hashtag in API responses
type HashtagResponse struct {
	Tag        string `json:"tag"`
	Count      int    `json:"count"`
	LastUsedAt string `json:"last_used_at"`
}

// PostFromEntity converts entity to response
func PostFromEntity(p *Post) *PostResponse {
	tags := p.Hashtags
	if tags == nil {
		tags = []string{}
	}
	return &PostResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Username:     p.AuthorUsername,
		Content:      p.Content,
		Hashtags:     tags,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

// PostsFromEntities converts a page of posts
func PostsFromEntities(posts []*Post) []*PostResponse {
	items := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, PostFromEntity(p))
	}
	return items
}

// CommentFromEntity converts entity to response
func CommentFromEntity(c *Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Username:  c.AuthorUsername,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
