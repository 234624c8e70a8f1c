package app

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"studymate-service/internal/domain"
)

type fakeUserStore struct {
	nextID int64
	byName map[string]domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byName: make(map[string]domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, username, passwordHash string) (domain.User, error) {
	if _, ok := f.byName[username]; ok {
		return domain.User{}, domain.ErrUsernameTaken
	}
	f.nextID++
	user := domain.User{ID: f.nextID, Username: username, PasswordHash: passwordHash}
	f.byName[username] = user
	return user, nil
}

func (f *fakeUserStore) ByUsername(_ context.Context, username string) (domain.User, error) {
	user, ok := f.byName[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

type fakeTokenIssuer struct{ err error }

func (f fakeTokenIssuer) Issue(user domain.User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + user.Username, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, fakeTokenIssuer{})

	user, err := service.Register(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatalf("expected bcrypt hash, got %q", user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, fakeTokenIssuer{})
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := service.Register(ctx, "alice", "other")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, fakeTokenIssuer{})
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, err := service.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice" || token != "token-for-alice" {
		t.Fatalf("unexpected login result: %+v %q", user, token)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, fakeTokenIssuer{})
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, unknownErr := service.Login(ctx, "nobody", "s3cret")
	_, _, badPassErr := service.Login(ctx, "alice", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownErr)
	}
	if !errors.Is(badPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", badPassErr)
	}
}
