package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bscheucher/keeper-server/internal/auth"
	dom "github.com/bscheucher/keeper-server/internal/domain"
	"github.com/bscheucher/keeper-server/internal/repo"
	"github.com/bscheucher/keeper-server/internal/utils"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password.
// Keeping a single error kind and message means a caller cannot probe which
// usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

var (
	ErrInvalidInput  = errors.New("username and password required")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserService handles registration and login.
type UserService struct {
	repo   repo.UserRepo
	hasher *auth.Hasher
	tokens *auth.Tokens
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo, hasher *auth.Hasher, tokens *auth.Tokens) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates a new user with a hashed password. A single INSERT: on any
// failure nothing is persisted.
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidInput
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, username, hash)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Login checks the credentials and issues a session token bound to the
// user's ID. No session record is kept server-side.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.ID)
}
