package relationship

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type pair struct {
	from uuid.UUID
	to   uuid.UUID
}

// fakeGraph is an in-memory GraphStore with the same edge semantics as
// the Postgres adjacency tables.
type fakeGraph struct {
	follows map[pair]bool
	blocks  map[pair]bool
	err     error
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		follows: map[pair]bool{},
		blocks:  map[pair]bool{},
	}
}

func (g *fakeGraph) HasFollowEdge(ctx context.Context, from, to uuid.UUID) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.follows[pair{from, to}], nil
}

func (g *fakeGraph) HasBlockEdge(ctx context.Context, from, to uuid.UUID) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.blocks[pair{from, to}], nil
}

func (g *fakeGraph) CreateFollowEdge(ctx context.Context, from, to uuid.UUID) error {
	if g.err != nil {
		return g.err
	}
	if g.follows[pair{from, to}] {
		return ErrAlreadyFollowing
	}
	g.follows[pair{from, to}] = true
	return nil
}

func (g *fakeGraph) DeleteFollowEdge(ctx context.Context, from, to uuid.UUID) error {
	if g.err != nil {
		return g.err
	}
	delete(g.follows, pair{from, to})
	return nil
}

func (g *fakeGraph) CreateBlockEdge(ctx context.Context, from, to uuid.UUID) error {
	if g.err != nil {
		return g.err
	}
	if g.blocks[pair{from, to}] {
		return ErrAlreadyBlocked
	}
	delete(g.follows, pair{from, to})
	delete(g.follows, pair{to, from})
	g.blocks[pair{from, to}] = true
	return nil
}

func (g *fakeGraph) DeleteBlockEdge(ctx context.Context, from, to uuid.UUID) error {
	if g.err != nil {
		return g.err
	}
	delete(g.blocks, pair{from, to})
	return nil
}

func (g *fakeGraph) Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if g.err != nil {
		return nil, g.err
	}
	var ids []uuid.UUID
	for p := range g.follows {
		if p.from == userID {
			ids = append(ids, p.to)
		}
	}
	return ids, nil
}

func (g *fakeGraph) Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if g.err != nil {
		return nil, g.err
	}
	var ids []uuid.UUID
	for p := range g.follows {
		if p.to == userID {
			ids = append(ids, p.from)
		}
	}
	return ids, nil
}

func (g *fakeGraph) Blocked(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if g.err != nil {
		return nil, g.err
	}
	var ids []uuid.UUID
	for p := range g.blocks {
		if p.from == userID {
			ids = append(ids, p.to)
		}
	}
	return ids, nil
}

func (g *fakeGraph) Ping(ctx context.Context) error { return g.err }

type fakeDirectory struct {
	users map[uuid.UUID]Identity
}

func (d *fakeDirectory) Resolve(ctx context.Context, ids []uuid.UUID) ([]Identity, error) {
	var out []Identity
	for _, id := range ids {
		if identity, ok := d.users[id]; ok {
			out = append(out, identity)
		}
	}
	return out, nil
}

func newTestService(graph *fakeGraph) *Service {
	return NewService(graph, &fakeDirectory{users: map[uuid.UUID]Identity{}})
}

func TestFollow(t *testing.T) {
	graph := newFakeGraph()
	svc := newTestService(graph)
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Follow(context.Background(), alice, bob); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	state, err := svc.State(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state != StateFollowing {
		t.Fatalf("expected following state, got %s", state)
	}

	// Follows are one-directional.
	reverse, _ := svc.State(context.Background(), bob, alice)
	if reverse != StateNone {
		t.Fatalf("expected none for reverse direction, got %s", reverse)
	}
}

func TestFollowSelf(t *testing.T) {
	svc := newTestService(newFakeGraph())
	alice := uuid.New()

	if err := svc.Follow(context.Background(), alice, alice); !errors.Is(err, ErrSelfReference) {
		t.Fatalf("expected ErrSelfReference, got %v", err)
	}
}

func TestFollowTwice(t *testing.T) {
	svc := newTestService(newFakeGraph())
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Follow(context.Background(), alice, bob); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}
	if err := svc.Follow(context.Background(), alice, bob); !errors.Is(err, ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}
}

func TestFollowForbiddenWhenBlockedEitherDirection(t *testing.T) {
	ctx := context.Background()

	t.Run("actor blocked target", func(t *testing.T) {
		svc := newTestService(newFakeGraph())
		alice, bob := uuid.New(), uuid.New()

		if err := svc.Block(ctx, alice, bob); err != nil {
			t.Fatalf("block failed: %v", err)
		}
		if err := svc.Follow(ctx, alice, bob); !errors.Is(err, ErrBlocked) {
			t.Fatalf("expected ErrBlocked, got %v", err)
		}
	})

	t.Run("target blocked actor", func(t *testing.T) {
		svc := newTestService(newFakeGraph())
		alice, bob := uuid.New(), uuid.New()

		if err := svc.Block(ctx, bob, alice); err != nil {
			t.Fatalf("block failed: %v", err)
		}
		if err := svc.Follow(ctx, alice, bob); !errors.Is(err, ErrBlocked) {
			t.Fatalf("expected ErrBlocked, got %v", err)
		}
	})
}

func TestUnfollowIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeGraph())
	alice, bob := uuid.New(), uuid.New()

	// Unfollowing without a follow edge succeeds.
	if err := svc.Unfollow(ctx, alice, bob); err != nil {
		t.Fatalf("unfollow of absent edge failed: %v", err)
	}

	if err := svc.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := svc.Unfollow(ctx, alice, bob); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if err := svc.Unfollow(ctx, alice, bob); err != nil {
		t.Fatalf("repeated unfollow failed: %v", err)
	}

	state, _ := svc.State(ctx, alice, bob)
	if state != StateNone {
		t.Fatalf("expected none after unfollow, got %s", state)
	}
}

func TestBlockSeversFollowsBothDirections(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	svc := newTestService(graph)
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := svc.Follow(ctx, bob, alice); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	if err := svc.Block(ctx, alice, bob); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	if following, _ := graph.HasFollowEdge(ctx, alice, bob); following {
		t.Fatal("actor's follow edge survived the block")
	}
	if following, _ := graph.HasFollowEdge(ctx, bob, alice); following {
		t.Fatal("target's follow edge survived the block")
	}

	state, _ := svc.State(ctx, alice, bob)
	if state != StateBlocked {
		t.Fatalf("expected blocked state, got %s", state)
	}
}

func TestBlockSelf(t *testing.T) {
	svc := newTestService(newFakeGraph())
	alice := uuid.New()

	if err := svc.Block(context.Background(), alice, alice); !errors.Is(err, ErrSelfReference) {
		t.Fatalf("expected ErrSelfReference, got %v", err)
	}
}

func TestBlockTwice(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeGraph())
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Block(ctx, alice, bob); err != nil {
		t.Fatalf("first block failed: %v", err)
	}
	if err := svc.Block(ctx, alice, bob); !errors.Is(err, ErrAlreadyBlocked) {
		t.Fatalf("expected ErrAlreadyBlocked, got %v", err)
	}
}

func TestUnblockRequiresBlock(t *testing.T) {
	svc := newTestService(newFakeGraph())
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Unblock(context.Background(), alice, bob); !errors.Is(err, ErrNotBlocked) {
		t.Fatalf("expected ErrNotBlocked, got %v", err)
	}
}

func TestUnblockDoesNotRestoreFollows(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	svc := newTestService(graph)
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := svc.Block(ctx, alice, bob); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if err := svc.Unblock(ctx, alice, bob); err != nil {
		t.Fatalf("unblock failed: %v", err)
	}

	state, _ := svc.State(ctx, alice, bob)
	if state != StateNone {
		t.Fatalf("expected neutral state after unblock, got %s", state)
	}

	// The pair can follow again from scratch.
	if err := svc.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("follow after unblock failed: %v", err)
	}
}

func TestStateNeverFollowingAndBlocked(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	svc := newTestService(graph)
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := svc.Block(ctx, alice, bob); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	if following, _ := graph.HasFollowEdge(ctx, alice, bob); following {
		t.Fatal("pair is simultaneously following and blocked")
	}
}

func TestListsResolveIdentities(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	alice, bob := uuid.New(), uuid.New()

	directory := &fakeDirectory{users: map[uuid.UUID]Identity{
		alice: {ID: alice, Username: "alice"},
		bob:   {ID: bob, Username: "bob"},
	}}
	svc := NewService(graph, directory)

	if err := svc.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	following, err := svc.ListFollowing(ctx, alice)
	if err != nil {
		t.Fatalf("list following failed: %v", err)
	}
	if len(following) != 1 || following[0].Username != "bob" {
		t.Fatalf("unexpected following list: %+v", following)
	}

	followers, err := svc.ListFollowers(ctx, bob)
	if err != nil {
		t.Fatalf("list followers failed: %v", err)
	}
	if len(followers) != 1 || followers[0].Username != "alice" {
		t.Fatalf("unexpected followers list: %+v", followers)
	}

	if err := svc.Block(ctx, alice, bob); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	blocked, err := svc.ListBlocked(ctx, alice)
	if err != nil {
		t.Fatalf("list blocked failed: %v", err)
	}
	if len(blocked) != 1 || blocked[0].Username != "bob" {
		t.Fatalf("unexpected blocked list: %+v", blocked)
	}
}

func TestStoreFailureMarkedUnavailable(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.err = errors.New("connection refused")
	svc := newTestService(graph)
	alice, bob := uuid.New(), uuid.New()

	if err := svc.Follow(ctx, alice, bob); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := svc.Block(ctx, alice, bob); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.ListFollowing(ctx, alice); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestConflictRacePassesThrough(t *testing.T) {
	// A unique-constraint race surfaces from the store as the conflict
	// sentinel, not as unavailability.
	ctx := context.Background()
	graph := newFakeGraph()
	alice, bob := uuid.New(), uuid.New()

	graph.follows[pair{alice, bob}] = true
	err := graph.CreateFollowEdge(ctx, alice, bob)
	if !errors.Is(err, ErrAlreadyFollowing) {
		t.Fatalf("fake store should return ErrAlreadyFollowing, got %v", err)
	}
	if got := storeErr(err); !errors.Is(got, ErrAlreadyFollowing) || errors.Is(got, ErrStoreUnavailable) {
		t.Fatalf("conflict sentinel should pass through storeErr, got %v", got)
	}
}
