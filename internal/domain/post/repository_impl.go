package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new post repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const postColumns = `
	p.id, p.author_id, u.username AS author_username, p.content,
	(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
	(SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id) AS comment_count,
	p.created_at, p.updated_at
`

func (r *repository) CreatePost(ctx context.Context, post *Post, tags []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("post repository begin create: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, query, post.ID, post.AuthorID, post.Content, post.CreatedAt, post.UpdatedAt); err != nil {
		return fmt.Errorf("post repository create: %w", err)
	}

	if err := linkHashtags(ctx, tx, post.ID, tags); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = $1`
	var post Post
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("post repository get: %w", err)
	}

	if err := r.attachHashtags(ctx, []*Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) ListPosts(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, fmt.Errorf("post repository count: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`
	var posts []*Post
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("post repository list: %w", err)
	}

	if err := r.attachHashtags(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *repository) ListPostsByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*Post, int, error) {
	if len(authorIDs) == 0 {
		return []*Post{}, 0, nil
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts WHERE author_id = ANY($1)`, pq.Array(authorIDs)); err != nil {
		return nil, 0, fmt.Errorf("post repository count by authors: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.author_id = ANY($1)
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3
	`
	var posts []*Post
	if err := r.db.SelectContext(ctx, &posts, query, pq.Array(authorIDs), limit, offset); err != nil {
		return nil, 0, fmt.Errorf("post repository list by authors: %w", err)
	}

	if err := r.attachHashtags(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *repository) UpdatePost(ctx context.Context, post *Post, tags []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("post repository begin update: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE posts SET content = $2, updated_at = NOW() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, post.ID, post.Content); err != nil {
		return fmt.Errorf("post repository update: %w", err)
	}

	if err := unlinkHashtags(ctx, tx, post.ID); err != nil {
		return err
	}
	if err := linkHashtags(ctx, tx, post.ID, tags); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("post repository begin delete: %w", err)
	}
	defer tx.Rollback()

	if err := unlinkHashtags(ctx, tx, id); err != nil {
		return err
	}

	// Likes and comments go with the post (ON DELETE CASCADE).
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("post repository delete: %w", err)
	}

	return tx.Commit()
}

func (r *repository) CreateLike(ctx context.Context, postID, userID uuid.UUID) error {
	query := `INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, NOW())`
	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyLiked
		}
		return fmt.Errorf("post repository create like: %w", err)
	}
	return nil
}

func (r *repository) DeleteLike(ctx context.Context, postID, userID uuid.UUID) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("post repository delete like: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *repository) CreateComment(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO post_comments (id, post_id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("post repository create comment: %w", err)
	}
	return nil
}

func (r *repository) GetComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.username AS author_username, c.content, c.created_at, c.updated_at
		FROM post_comments c JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	var comment Comment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("post repository get comment: %w", err)
	}
	return &comment, nil
}

func (r *repository) ListComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.username AS author_username, c.content, c.created_at, c.updated_at
		FROM post_comments c JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id
	`
	var comments []*Comment
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("post repository list comments: %w", err)
	}
	return comments, nil
}

func (r *repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("post repository delete comment: %w", err)
	}
	return nil
}

func (r *repository) ListHashtags(ctx context.Context, limit int) ([]*Hashtag, error) {
	query := `SELECT tag, count, last_used_at FROM hashtags WHERE count > 0 ORDER BY count DESC, tag LIMIT $1`
	var tags []*Hashtag
	if err := r.db.SelectContext(ctx, &tags, query, limit); err != nil {
		return nil, fmt.Errorf("post repository list hashtags: %w", err)
	}
	return tags, nil
}

func (r *repository) GetHashtag(ctx context.Context, tag string) (*Hashtag, error) {
	query := `SELECT tag, count, last_used_at FROM hashtags WHERE tag = $1`
	var h Hashtag
	if err := r.db.GetContext(ctx, &h, query, tag); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("post repository get hashtag: %w", err)
	}
	return &h, nil
}

func (r *repository) ListPostsByHashtag(ctx context.Context, tag string, limit, offset int) ([]*Post, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM post_hashtags WHERE tag = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, tag); err != nil {
		return nil, 0, fmt.Errorf("post repository count by hashtag: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN post_hashtags ph ON ph.post_id = p.id
		WHERE ph.tag = $1
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3
	`
	var posts []*Post
	if err := r.db.SelectContext(ctx, &posts, query, tag, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("post repository list by hashtag: %w", err)
	}

	if err := r.attachHashtags(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// attachHashtags loads hashtags for a batch of posts in one query.
func (r *repository) attachHashtags(ctx context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(posts))
	byID := make(map[uuid.UUID]*Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	rows := []struct {
		PostID uuid.UUID `db:"post_id"`
		Tag    string    `db:"tag"`
	}{}
	query := `SELECT post_id, tag FROM post_hashtags WHERE post_id = ANY($1) ORDER BY tag`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("post repository attach hashtags: %w", err)
	}

	for _, row := range rows {
		if p, ok := byID[row.PostID]; ok {
			p.Hashtags = append(p.Hashtags, row.Tag)
		}
	}
	return nil
}

// linkHashtags upserts tags with usage counts and links them to the post.
func linkHashtags(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID, tags []string) error {
	for _, tag := range tags {
		upsert := `
			INSERT INTO hashtags (tag, count, last_used_at) VALUES ($1, 1, NOW())
			ON CONFLICT (tag) DO UPDATE SET count = hashtags.count + 1, last_used_at = NOW()
		`
		if _, err := tx.ExecContext(ctx, upsert, tag); err != nil {
			return fmt.Errorf("post repository upsert hashtag %q: %w", tag, err)
		}
		link := `INSERT INTO post_hashtags (post_id, tag) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, link, postID, tag); err != nil {
			return fmt.Errorf("post repository link hashtag %q: %w", tag, err)
		}
	}
	return nil
}

// unlinkHashtags removes the post's tag links and decrements usage counts.
func unlinkHashtags(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID) error {
	decrement := `
		UPDATE hashtags SET count = GREATEST(count - 1, 0)
		WHERE tag IN (SELECT tag FROM post_hashtags WHERE post_id = $1)
	`
	if _, err := tx.ExecContext(ctx, decrement, postID); err != nil {
		return fmt.Errorf("post repository decrement hashtags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_hashtags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("post repository unlink hashtags: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == "23505"
}
