package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pulseapp/pulse-api/internal/domain/user"
	"github.com/pulseapp/pulse-api/internal/pkg/jwt"
	"github.com/pulseapp/pulse-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byID        map[uuid.UUID]*user.User
	createErr   error
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	copied := *u
	f.byID[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	copied := *u
	f.byID[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func newTestService(repo user.Repository) (*Service, *jwt.Service) {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtService, nil), jwtService
}

func TestSignup(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	resp, err := svc.Signup(context.Background(), &SignupRequest{
		Username: "alice",
		Email:    "Alice@Example.COM",
		Password: "s3cретpass",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if resp.Username != "alice" {
		t.Fatalf("unexpected username: %q", resp.Username)
	}
	if resp.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", resp.Email)
	}
	if resp.Role != string(user.RoleUser) {
		t.Fatalf("expected default role user, got %q", resp.Role)
	}

	stored, _ := repo.GetByUsername(context.Background(), "alice")
	if stored == nil {
		t.Fatal("user was not persisted")
	}
	if stored.PasswordHash == "s3cретpass" || stored.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}
	if !password.Verify("s3cретpass", stored.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "other@example.com", Password: "password1"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(ctx, &SignupRequest{Username: "bob", Email: "A@Example.com", Password: "password1"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestSignupConstraintRace(t *testing.T) {
	// The pre-checks can miss a concurrent insert; the repository's
	// constraint error must still map to the conflict sentinel.
	repo := newFakeUserRepo()
	repo.createErr = user.ErrUsernameAlreadyUsed
	svc, _ := newTestService(repo)

	_, err := svc.Signup(context.Background(), &SignupRequest{Username: "alice", Email: "a@example.com", Password: "password1"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, jwtService := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatal("missing tokens")
	}
	if resp.Tokens.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Fatalf("unexpected expires_in: %d", resp.Tokens.ExpiresIn)
	}

	claims, err := jwtService.ValidateAccessToken(resp.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("issued access token does not validate: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected claims username: %q", claims.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(newFakeUserRepo())

	if _, err := svc.Login(context.Background(), &LoginRequest{Username: "ghost", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshWithoutRedis(t *testing.T) {
	// Refresh token storage requires Redis; without it every refresh is
	// rejected rather than silently accepted.
	svc, _ := newTestService(newFakeUserRepo())

	if _, err := svc.Refresh(context.Background(), "some-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefreshRequiresToken(t *testing.T) {
	svc, _ := newTestService(newFakeUserRepo())

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
	if err := svc.Logout(context.Background(), ""); !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "a@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	resp, err := svc.GetCurrentUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get current user failed: %v", err)
	}
	if resp.Username != "alice" {
		t.Fatalf("unexpected username: %q", resp.Username)
	}

	if _, err := svc.GetCurrentUser(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
