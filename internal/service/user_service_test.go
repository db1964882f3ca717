package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bscheucher/keeper-server/internal/auth"
	dom "github.com/bscheucher/keeper-server/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeUserRepo struct {
	users  map[string]dom.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]dom.User)}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	if r.err != nil {
		return dom.User{}, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, username, passwordHash string) (dom.User, error) {
	if r.err != nil {
		return dom.User{}, r.err
	}
	if _, ok := r.users[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	r.nextID++
	u := dom.User{ID: r.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.users[username] = u
	return u, nil
}

func newUserService(repo *fakeUserRepo, tokens *auth.Tokens) *UserService {
	return NewUserService(repo, auth.NewHasher(), tokens)
}

func TestUserService_RegisterThenLogin(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokens([]byte("secret"), time.Hour)
	repo := newFakeUserRepo()
	svc := newUserService(repo, tokens)

	u, err := svc.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.PasswordHash == "pw1" {
		t.Fatalf("stored hash must not be the plaintext")
	}

	tok, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	userID, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != u.ID {
		t.Fatalf("token subject %d, want %d", userID, u.ID)
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newUserService(repo, auth.NewTokens([]byte("secret"), time.Hour))

	if _, err := svc.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "pw2")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate register must not mutate the store, have %d users", len(repo.users))
	}
}

func TestUserService_RegisterEmptyInput(t *testing.T) {
	t.Parallel()

	svc := newUserService(newFakeUserRepo(), auth.NewTokens([]byte("secret"), time.Hour))

	for _, tc := range []struct{ username, password string }{
		{"", "pw"},
		{"alice", ""},
		{"   ", "pw"},
	} {
		if _, err := svc.Register(context.Background(), tc.username, tc.password); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Register(%q, %q): expected ErrInvalidInput, got %v", tc.username, tc.password, err)
		}
	}
}

func TestUserService_LoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newUserService(repo, auth.NewTokens([]byte("secret"), time.Hour))

	if _, err := svc.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, errWrongPassword := svc.Login(context.Background(), "alice", "nope")
	_, errUnknownUser := svc.Login(context.Background(), "nobody", "pw1")

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestUserService_LoginStoreError(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.err = errors.New("connection refused")
	svc := newUserService(repo, auth.NewTokens([]byte("secret"), time.Hour))

	_, err := svc.Login(context.Background(), "alice", "pw1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("store failure must not look like bad credentials, got %v", err)
	}
}
