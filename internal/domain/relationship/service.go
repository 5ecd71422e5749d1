package relationship

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Identity is the display projection of a user resolved from the
// identity store.
type Identity struct {
	ID        uuid.UUID
	Username  string
	FirstName string
	LastName  string
	AvatarURL *string
}

// IdentityDirectory resolves user ids to display projections in one
// batched lookup. Unknown ids are skipped, not errors.
type IdentityDirectory interface {
	Resolve(ctx context.Context, ids []uuid.UUID) ([]Identity, error)
}

// Service is the single authority for mutating and querying the
// follow/block graph. It trusts resolved ids; username resolution and
// authentication happen before invocation.
type Service struct {
	graph     GraphStore
	directory IdentityDirectory
}

// NewService creates the relationship service.
func NewService(graph GraphStore, directory IdentityDirectory) *Service {
	return &Service{graph: graph, directory: directory}
}

// Follow creates a follow edge from actor to target.
//
// A block between the pair, in either direction, takes precedence and
// forbids the follow regardless of who blocked whom.
func (s *Service) Follow(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrSelfReference
	}

	blockedByActor, err := s.graph.HasBlockEdge(ctx, actorID, targetID)
	if err != nil {
		return storeErr(err)
	}
	blockedByTarget, err := s.graph.HasBlockEdge(ctx, targetID, actorID)
	if err != nil {
		return storeErr(err)
	}
	if blockedByActor || blockedByTarget {
		return ErrBlocked
	}

	following, err := s.graph.HasFollowEdge(ctx, actorID, targetID)
	if err != nil {
		return storeErr(err)
	}
	if following {
		return ErrAlreadyFollowing
	}

	return storeErr(s.graph.CreateFollowEdge(ctx, actorID, targetID))
}

// Unfollow removes the follow edge from actor to target. Removing an
// absent edge is a successful no-op; destroying is naturally idempotent.
func (s *Service) Unfollow(ctx context.Context, actorID, targetID uuid.UUID) error {
	return storeErr(s.graph.DeleteFollowEdge(ctx, actorID, targetID))
}

// Block creates a block edge from actor to target, atomically severing
// any follow edges between the pair in both directions first.
func (s *Service) Block(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrSelfReference
	}

	blocked, err := s.graph.HasBlockEdge(ctx, actorID, targetID)
	if err != nil {
		return storeErr(err)
	}
	if blocked {
		return ErrAlreadyBlocked
	}

	return storeErr(s.graph.CreateBlockEdge(ctx, actorID, targetID))
}

// Unblock removes the block edge from actor to target. It never
// recreates prior follow edges; the pair returns to a neutral state.
func (s *Service) Unblock(ctx context.Context, actorID, targetID uuid.UUID) error {
	blocked, err := s.graph.HasBlockEdge(ctx, actorID, targetID)
	if err != nil {
		return storeErr(err)
	}
	if !blocked {
		return ErrNotBlocked
	}

	return storeErr(s.graph.DeleteBlockEdge(ctx, actorID, targetID))
}

// State reports the relationship state for the ordered (actor, target)
// pair. A pair is never simultaneously following and blocked.
func (s *Service) State(ctx context.Context, actorID, targetID uuid.UUID) (PairState, error) {
	blocked, err := s.graph.HasBlockEdge(ctx, actorID, targetID)
	if err != nil {
		return StateNone, storeErr(err)
	}
	if blocked {
		return StateBlocked, nil
	}

	following, err := s.graph.HasFollowEdge(ctx, actorID, targetID)
	if err != nil {
		return StateNone, storeErr(err)
	}
	if following {
		return StateFollowing, nil
	}
	return StateNone, nil
}

// ListFollowing returns users the given user follows.
func (s *Service) ListFollowing(ctx context.Context, userID uuid.UUID) ([]Identity, error) {
	ids, err := s.graph.Following(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.directory.Resolve(ctx, ids)
}

// ListFollowers returns users following the given user.
func (s *Service) ListFollowers(ctx context.Context, userID uuid.UUID) ([]Identity, error) {
	ids, err := s.graph.Followers(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.directory.Resolve(ctx, ids)
}

// ListBlocked returns users blocked by the given user.
func (s *Service) ListBlocked(ctx context.Context, userID uuid.UUID) ([]Identity, error) {
	ids, err := s.graph.Blocked(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.directory.Resolve(ctx, ids)
}

// FollowingIDs returns raw followee ids, for components that assemble
// their own projections (feed).
func (s *Service) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.graph.Following(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

// storeErr marks store failures as unavailable while letting the
// store's own conflict sentinels (constraint races) pass through.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAlreadyFollowing) || errors.Is(err, ErrAlreadyBlocked) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
