package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/domain"
)

// AuthService handles registration and credential checks
type AuthService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	startingCash decimal.Decimal
}

// NewAuthService creates a new AuthService. Every new account starts with
// startingCash on its balance.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, startingCash decimal.Decimal) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		hasher:       hasher,
		startingCash: startingCash,
	}
}

// Register creates a new account. The username must be unused and the
// password must match its confirmation.
func (s *AuthService) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: missing username", domain.ErrInvalidInput)
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, domain.ErrUsernameTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if password == "" || password != confirmation {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Cash:         s.startingCash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index catches the race where two registrations for the
	// same username pass the lookup above concurrently.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate checks a username/password pair and returns the matching
// user. Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
