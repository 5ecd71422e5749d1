package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines post data access interface
type Repository interface {
	// CreatePost inserts the post and links its hashtags, adjusting
	// usage counts, in one transaction.
	CreatePost(ctx context.Context, post *Post, tags []string) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]*Post, int, error)
	// ListPostsByAuthors powers the feed. An empty author set yields an
	// empty page, not an error.
	ListPostsByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*Post, int, error)
	UpdatePost(ctx context.Context, post *Post, tags []string) error
	DeletePost(ctx context.Context, id uuid.UUID) error

	CreateLike(ctx context.Context, postID, userID uuid.UUID) error
	DeleteLike(ctx context.Context, postID, userID uuid.UUID) error

	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error

	ListHashtags(ctx context.Context, limit int) ([]*Hashtag, error)
	GetHashtag(ctx context.Context, tag string) (*Hashtag, error)
	ListPostsByHashtag(ctx context.Context, tag string, limit, offset int) ([]*Post, int, error)
}
