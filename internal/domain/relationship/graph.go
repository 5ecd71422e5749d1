package relationship

import (
	"context"

	"github.com/google/uuid"
)

// GraphStore defines the follow/block graph data access interface.
//
// The store owns per-statement atomicity and uniqueness enforcement for
// edges (composite-key constraints); the engine layers policy on top and
// implements no mutual exclusion of its own.
type GraphStore interface {
	HasFollowEdge(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	HasBlockEdge(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)

	CreateFollowEdge(ctx context.Context, followerID, followeeID uuid.UUID) error
	DeleteFollowEdge(ctx context.Context, followerID, followeeID uuid.UUID) error

	// CreateBlockEdge deletes follow edges between the pair in both
	// directions and creates the block edge, all as one transaction.
	// Partial application (follows severed but no block created) must
	// be impossible.
	CreateBlockEdge(ctx context.Context, blockerID, blockedID uuid.UUID) error
	DeleteBlockEdge(ctx context.Context, blockerID, blockedID uuid.UUID) error

	// Adjacency reads. Order is deterministic: edge creation time, then id.
	Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Blocked(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// Ping reports store connectivity for health checks.
	Ping(ctx context.Context) error
}
