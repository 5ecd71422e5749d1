package relationship

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

// postgresGraph implements GraphStore over adjacency-list tables with
// composite primary keys (user_follows, user_blocks).
type postgresGraph struct {
	db *sqlx.DB
}

// NewPostgresGraph creates a PostgreSQL-backed graph store.
func NewPostgresGraph(db *sqlx.DB) GraphStore {
	return &postgresGraph{db: db}
}

func (g *postgresGraph) HasFollowEdge(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_follows WHERE follower_id = $1 AND followee_id = $2)`
	var exists bool
	if err := g.db.GetContext(ctx, &exists, query, followerID, followeeID); err != nil {
		return false, fmt.Errorf("graph store has follow edge: %w", err)
	}
	return exists, nil
}

func (g *postgresGraph) HasBlockEdge(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2)`
	var exists bool
	if err := g.db.GetContext(ctx, &exists, query, blockerID, blockedID); err != nil {
		return false, fmt.Errorf("graph store has block edge: %w", err)
	}
	return exists, nil
}

func (g *postgresGraph) CreateFollowEdge(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `INSERT INTO user_follows (follower_id, followee_id, created_at) VALUES ($1, $2, NOW())`
	if _, err := g.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		// Two concurrent follows race past the engine's existence check;
		// the composite primary key is the authority.
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("graph store create follow edge: %w", err)
	}
	return nil
}

func (g *postgresGraph) DeleteFollowEdge(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `DELETE FROM user_follows WHERE follower_id = $1 AND followee_id = $2`
	if _, err := g.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("graph store delete follow edge: %w", err)
	}
	return nil
}

// CreateBlockEdge severs follow edges in both directions and records the
// block inside a single transaction.
func (g *postgresGraph) CreateBlockEdge(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("graph store begin block tx: %w", err)
	}
	defer tx.Rollback()

	unfollow := `DELETE FROM user_follows
		WHERE (follower_id = $1 AND followee_id = $2)
		   OR (follower_id = $2 AND followee_id = $1)`
	if _, err := tx.ExecContext(ctx, unfollow, blockerID, blockedID); err != nil {
		return fmt.Errorf("graph store sever follow edges: %w", err)
	}

	block := `INSERT INTO user_blocks (blocker_id, blocked_id, created_at) VALUES ($1, $2, NOW())`
	if _, err := tx.ExecContext(ctx, block, blockerID, blockedID); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyBlocked
		}
		return fmt.Errorf("graph store create block edge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("graph store commit block tx: %w", err)
	}
	return nil
}

func (g *postgresGraph) DeleteBlockEdge(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	query := `DELETE FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2`
	if _, err := g.db.ExecContext(ctx, query, blockerID, blockedID); err != nil {
		return fmt.Errorf("graph store delete block edge: %w", err)
	}
	return nil
}

func (g *postgresGraph) Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT followee_id FROM user_follows WHERE follower_id = $1 ORDER BY created_at, followee_id`
	var ids []uuid.UUID
	if err := g.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("graph store following: %w", err)
	}
	return ids, nil
}

func (g *postgresGraph) Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT follower_id FROM user_follows WHERE followee_id = $1 ORDER BY created_at, follower_id`
	var ids []uuid.UUID
	if err := g.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("graph store followers: %w", err)
	}
	return ids, nil
}

func (g *postgresGraph) Blocked(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT blocked_id FROM user_blocks WHERE blocker_id = $1 ORDER BY created_at, blocked_id`
	var ids []uuid.UUID
	if err := g.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("graph store blocked: %w", err)
	}
	return ids, nil
}

func (g *postgresGraph) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateUniqueViolation
}
