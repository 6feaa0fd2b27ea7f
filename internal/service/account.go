package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shubhamkumaar/socioBuy-backend/internal/auth"
	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
)

// AccountStore is the storage contract required by the account service.
type AccountStore interface {
	CreateUser(ctx context.Context, user domain.User) error
	UserExists(ctx context.Context, email, phone string) (bool, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	SetContacts(ctx context.Context, phone string, contacts []string) error
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string, now time.Time) (bool, error)
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Contacts []string
}

// Session is an authenticated user plus its freshly issued token.
type Session struct {
	User  domain.User
	Token string
}

// AccountService handles registration, login and token lifecycle.
type AccountService struct {
	repo   AccountStore
	tokens *auth.Manager
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewAccountService constructs an AccountService.
func NewAccountService(repo AccountStore, tokens *auth.Manager, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		nowFn:  time.Now,
	}
}

// WithClock overrides the time provider, used in tests.
func (s *AccountService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Register creates a user after verifying the email and phone are unused,
// then issues a session token.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (Session, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	email := normalizeEmail(input.Email)

	switch {
	case name == "":
		return Session{}, ValidationError("name is required")
	case phone == "":
		return Session{}, ValidationError("phone is required")
	case email == "":
		return Session{}, ValidationError("email is required")
	case len(input.Password) < 8:
		return Session{}, ValidationError("password must be at least 8 characters")
	}

	exists, err := s.repo.UserExists(ctx, email, phone)
	if err != nil {
		return Session{}, StoreError("check existing user", err)
	}
	if exists {
		return Session{}, ConflictError("a user with this email or phone already exists")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return Session{}, StoreError("hash password", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Phone:        phone,
		Email:        email,
		Contacts:     input.Contacts,
		PasswordHash: hash,
		CreatedAt:    s.nowFn().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return Session{}, StoreError("create user", err)
	}

	token, _, err := s.tokens.Issue(user.Email, user.Name, user.Phone)
	if err != nil {
		return Session{}, StoreError("issue token", err)
	}

	s.logger.Info("user registered", "userId", user.ID)
	return Session{User: user, Token: token}, nil
}

// Login verifies credentials and issues a session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ValidationError("email and password are required")
	}

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, NotFoundError("user not found")
		}
		return Session{}, StoreError("fetch user", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return Session{}, UnauthorizedError("incorrect password")
	}

	token, _, err := s.tokens.Issue(user.Email, user.Name, user.Phone)
	if err != nil {
		return Session{}, StoreError("issue token", err)
	}
	return Session{User: user, Token: token}, nil
}

// Logout revokes the token id until the token's own expiry.
func (s *AccountService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ValidationError("token id is required")
	}
	if err := s.repo.RevokeToken(ctx, tokenID, expiresAt); err != nil {
		return StoreError("revoke token", err)
	}
	return nil
}

// RevokeSession parses a raw bearer token and revokes its id until the
// token's own expiry.
func (s *AccountService) RevokeSession(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return UnauthorizedError("could not validate credentials")
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.Logout(ctx, claims.ID, expiresAt)
}

// Authenticate parses a bearer token, rejects revoked tokens and resolves
// the current user.
func (s *AccountService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.User{}, UnauthorizedError("could not validate credentials")
	}

	revoked, err := s.repo.IsTokenRevoked(ctx, claims.ID, s.nowFn().UTC())
	if err != nil {
		return domain.User{}, StoreError("check token revocation", err)
	}
	if revoked {
		return domain.User{}, UnauthorizedError("token has been revoked")
	}

	user, err := s.repo.UserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, UnauthorizedError("could not validate credentials")
		}
		return domain.User{}, StoreError("fetch user", err)
	}
	return user, nil
}

// UpdateContacts replaces the user's stored raw contact list.
func (s *AccountService) UpdateContacts(ctx context.Context, phone string, contacts []string) error {
	if strings.TrimSpace(phone) == "" {
		return ValidationError("phone is required")
	}
	if err := s.repo.SetContacts(ctx, phone, contacts); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError("user not found")
		}
		return StoreError("update contacts", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
