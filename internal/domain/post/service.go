package post

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FollowProvider exposes the relationship engine's outgoing-follow
// adjacency, used to assemble the feed.
type FollowProvider interface {
	FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Service handles post business logic
type Service struct {
	repo    Repository
	follows FollowProvider
}

// NewService creates post service
func NewService(repo Repository, follows FollowProvider) *Service {
	return &Service{repo: repo, follows: follows}
}

// CreatePost creates a post for the author, extracting hashtags from
// the content.
func (s *Service) CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*Post, error) {
	now := time.Now()
	p := &Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tags := ExtractHashtags(content)
	if err := s.repo.CreatePost(ctx, p, tags); err != nil {
		return nil, err
	}

	p.Hashtags = tags
	return s.repo.GetPost(ctx, p.ID)
}

// GetPost returns a single post
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	p, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// ListPosts returns a page of all posts, newest first
func (s *Service) ListPosts(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	return s.repo.ListPosts(ctx, limit, offset)
}

// Feed returns a page of posts authored by users the caller follows
func (s *Service) Feed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Post, int, error) {
	authorIDs, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListPostsByAuthors(ctx, authorIDs, limit, offset)
}

// UpdatePost updates a post's content; only the author may update.
func (s *Service) UpdatePost(ctx context.Context, actorID, postID uuid.UUID, content string) (*Post, error) {
	p, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	if p.AuthorID != actorID {
		return nil, ErrNotAuthor
	}

	p.Content = content
	if err := s.repo.UpdatePost(ctx, p, ExtractHashtags(content)); err != nil {
		return nil, err
	}
	return s.repo.GetPost(ctx, postID)
}

// DeletePost deletes a post; the author or an admin may delete.
func (s *Service) DeletePost(ctx context.Context, actorID, postID uuid.UUID, isAdmin bool) error {
	p, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPostNotFound
	}
	if p.AuthorID != actorID && !isAdmin {
		return ErrNotAuthor
	}

	return s.repo.DeletePost(ctx, postID)
}

// Like records a like; one per (post, user).
func (s *Service) Like(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPostNotFound
	}

	return s.repo.CreateLike(ctx, postID, userID)
}

// Unlike removes a like
func (s *Service) Unlike(ctx context.Context, userID, postID uuid.UUID) error {
	return s.repo.DeleteLike(ctx, postID, userID)
}

// CreateComment adds a comment to a post
func (s *Service) CreateComment(ctx context.Context, authorID, postID uuid.UUID, content string) (*Comment, error) {
	p, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	now := time.Now()
	c := &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetComment(ctx, c.ID)
}

// ListComments lists a post's comments, newest first
func (s *Service) ListComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	p, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	return s.repo.ListComments(ctx, postID)
}

// DeleteComment deletes a comment; only its author may delete.
func (s *Service) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if c.AuthorID != actorID {
		return ErrNotAuthor
	}

	return s.repo.DeleteComment(ctx, commentID)
}

// ListHashtags returns the most used hashtags
func (s *Service) ListHashtags(ctx context.Context, limit int) ([]*Hashtag, error) {
	return s.repo.ListHashtags(ctx, limit)
}

// HashtagPosts returns the hashtag and a page of its posts
func (s *Service) HashtagPosts(ctx context.Context, tag string, limit, offset int) (*Hashtag, []*Post, int, error) {
	h, err := s.repo.GetHashtag(ctx, tag)
	if err != nil {
		return nil, nil, 0, err
	}
	if h == nil {
		return nil, nil, 0, ErrHashtagNotFound
	}

	posts, total, err := s.repo.ListPostsByHashtag(ctx, tag, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}
	return h, posts, total, nil
}
