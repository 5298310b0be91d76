// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taibuivan/facetrace/internal/auth"
	"github.com/taibuivan/facetrace/internal/platform/dberr"
)

// memoryUserRepository is an in-memory [auth.UserRepository] keyed by email.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]auth.User

	// err, when set, is returned by every call.
	err error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]auth.User)}
}

func (repository *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.err != nil {
		return nil, repository.err
	}

	user, ok := repository.users[email]
	if !ok {
		return nil, fmt.Errorf("find user by email: %w", dberr.ErrNotFound)
	}
	return &user, nil
}

func (repository *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.err != nil {
		return repository.err
	}
	if _, ok := repository.users[user.Email]; ok {
		return fmt.Errorf("create user: %w", dberr.ErrDuplicate)
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	repository.users[user.Email] = *user
	return nil
}

// put seeds an account directly, bypassing registration.
func (repository *memoryUserRepository) put(user auth.User) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.users[user.Email] = user
}

func (repository *memoryUserRepository) count() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.users)
}

// racingUserRepository never sees an existing email on lookup but rejects the
// insert, like a concurrent registration winning the unique index.
type racingUserRepository struct {
	*memoryUserRepository
}

func (repository racingUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return nil, fmt.Errorf("find user by email: %w", dberr.ErrNotFound)
}

func (repository racingUserRepository) Create(_ context.Context, _ *auth.User) error {
	return fmt.Errorf("create user: %w", dberr.ErrDuplicate)
}
