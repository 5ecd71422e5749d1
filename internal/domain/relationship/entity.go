package relationship

import (
	"time"

	"github.com/google/uuid"
)

// FollowEdge represents a directed "follows" relation between two users.
// At most one edge exists per ordered (follower, followee) pair.
type FollowEdge struct {
	FollowerID uuid.UUID `db:"follower_id" json:"follower_id"`
	FolloweeID uuid.UUID `db:"followee_id" json:"followee_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// BlockEdge represents a directed "blocks" relation. A block between two
// users, in either direction, excludes any follow edge between them.
type BlockEdge struct {
	BlockerID uuid.UUID `db:"blocker_id" json:"blocker_id"`
	BlockedID uuid.UUID `db:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PairState is the relationship state for one ordered (actor, target) pair.
type PairState string

const (
	StateNone      PairState = "none"
	StateFollowing PairState = "following"
	StateBlocked   PairState = "blocked"
)
