package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jlbarros/tasko/core"
)

// AuthService implements registration, login and per-request identity
// resolution over the storage, hashing, token and throttle ports.
type AuthService struct {
	db        core.StorageAdapter
	passwords core.PasswordHandler
	tokens    core.TokenCodec
	throttle  core.LoginThrottle
}

func NewAuthService(db core.StorageAdapter, passwords core.PasswordHandler, tokens core.TokenCodec, throttle core.LoginThrottle) *AuthService {
	return &AuthService{
		db:        db,
		passwords: passwords,
		tokens:    tokens,
		throttle:  throttle,
	}
}

// Register creates a new user account with a freshly generated ID.
func (s *AuthService) Register(ctx context.Context, input core.RegisterInput) (*core.User, error) {
	// Step 1: Sanitize inputs. The password is validated but never
	// sanitized; stripping characters would silently change it.
	email := core.SanitizeInput(input.Email)
	name := core.SanitizeInput(input.Name)

	// Step 2: Validate, in order: email format, password strength,
	// name length. Each failure carries its specific reason.
	if err := core.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := core.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := core.ValidateName(name); err != nil {
		return nil, err
	}

	// Step 3: Enforce email uniqueness before insert.
	existing, err := s.db.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrEmailTaken
	}

	// Step 4: Hash the password.
	hashed, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 5: Persist the user.
	user := &core.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
		IsActive:     true,
	}

	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and issues an access token.
//
// Lookup failure and password mismatch both surface as
// core.ErrInvalidCredentials; only the throttle rejection is distinct.
func (s *AuthService) Login(ctx context.Context, input core.LoginInput) (*core.LoginResult, error) {
	if err := core.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	// The throttle counts attempts, not failures: a valid password
	// still consumes a slot until the success below resets the window.
	if !s.throttle.Allow(input.Email) {
		return nil, core.ErrRateLimited
	}

	user, err := s.db.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.passwords.Verify(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, core.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, core.ErrInactiveUser
	}

	now := time.Now().UTC()
	if err := s.db.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	// A successful login clears the identity's attempt window.
	s.throttle.Reset(input.Email)

	token, expiresAt, err := s.tokens.Issue(user, now)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &core.LoginResult{
		User:        user,
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
	}, nil
}

// Logout revokes the presented token.
//
// Revocation is a documented no-op: tokens are stateless and there is
// no denylist store, so the token simply remains valid until expiry.
// Adding real revocation would change observable behavior and needs a
// product decision first.
func (s *AuthService) Logout(token string) error {
	_ = token
	return nil
}

// ResolveToken verifies a bearer token and loads the account it names.
// This is a strict total-order gate: token verification, subject
// parsing, account lookup and the active check each fail closed with
// core.ErrInvalidToken (or ErrInactiveUser), never yielding a partial
// identity.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*core.User, error) {
	claims, err := s.tokens.Verify(token, time.Now().UTC())
	if err != nil {
		return nil, core.ErrInvalidToken
	}

	user, err := s.db.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, core.ErrInactiveUser
	}

	return user, nil
}
