// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/taibuivan/facetrace/internal/platform/constants"
	"github.com/taibuivan/facetrace/internal/platform/dberr"
	"github.com/taibuivan/facetrace/pkg/uuid"
)

// # Collaborators

// PasswordHasher turns plaintext passwords into one-way hashes and checks them.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	IssueToken(userID string) (string, error)
}

// # Use Case Payloads

// RegisterInput contains the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful register or login.
type Session struct {
	User  *User
	Token string
}

// Service implements the authentication rules.
//
// Every method returns either a domain error from constants.go (an
// [apperr.AppError]) or an opaque wrapped error that the boundary reports
// as Internal.
type Service struct {
	repository UserRepository
	hasher     PasswordHasher
	tokens     TokenIssuer
}

// NewService constructs a new [Service].
func NewService(repository UserRepository, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{
		repository: repository,
		hasher:     hasher,
		tokens:     tokens,
	}
}

// # Use Cases

/*
Register creates an account and opens a session for it.

Description: Enforces the password policy, rejects a taken email, then hashes
the password and persists the account before signing its first token.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Session: The created user and its session token
  - error: ErrWeakPassword, ErrPasswordTooLong, ErrUserExists or an internal failure
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {

	// ── 1. Password Policy ───────────────────────────────────────────────

	if utf8.RuneCountInString(input.Password) < constants.MinPasswordLength {
		return nil, ErrWeakPassword
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	// ── 2. Uniqueness Check ──────────────────────────────────────────────

	_, err := service.repository.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, dberr.ErrNotFound):
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	// ── 3. Hashing ───────────────────────────────────────────────────────

	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	// ── 4. Persistence ───────────────────────────────────────────────────

	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}

	// The unique index still guards against a concurrent registration
	// that slipped in after the check above.
	if err := service.repository.Create(ctx, user); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	// ── 5. Session ───────────────────────────────────────────────────────

	token, err := service.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

/*
Login checks credentials and opens a new session.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *Session: The authenticated user and a fresh session token
  - error: ErrUserNotFound, ErrNoPasswordSet, ErrInvalidCredentials or an internal failure
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {

	// ── 1. Lookup ────────────────────────────────────────────────────────

	user, err := service.repository.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: login: %w", err)
	}

	// ── 2. Credential Check ──────────────────────────────────────────────

	if !user.HasPassword() {
		return nil, ErrNoPasswordSet
	}
	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// ── 3. Session ───────────────────────────────────────────────────────

	token, err := service.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: login: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

// Logout ends a session. Sessions are not tracked server-side, so there is
// nothing to revoke and the call always succeeds; the boundary clears the cookie.
func (service *Service) Logout(_ context.Context) error {
	return nil
}
