package post

import (
	"time"

	"github.com/google/uuid"
)

// MaxContentLength bounds post and comment bodies.
const MaxContentLength = 280

// Post represents a user post
type Post struct {
	ID             uuid.UUID `db:"id"`
	AuthorID       uuid.UUID `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
	Content        string    `db:"content"`
	LikeCount      int       `db:"like_count"`
	CommentCount   int       `db:"comment_count"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`

	// Hashtags referenced by the post content, loaded with the post.
	Hashtags []string `db:"-"`
}

// Like represents a like on a post. One like per (post, user).
type Like struct {
	PostID    uuid.UUID `db:"post_id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Comment represents a comment on a post
type Comment struct {
	ID             uuid.UUID `db:"id"`
	PostID         uuid.UUID `db:"post_id"`
	AuthorID       uuid.UUID `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Hashtag tracks a tag and its usage count across posts
type Hashtag struct {
	Tag        string    `db:"tag"`
	Count      int       `db:"count"`
	LastUsedAt time.Time `db:"last_used_at"`
}
