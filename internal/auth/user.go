// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements cookie-based session authentication for Facetrace.
//
// # Architecture
//
// The package follows the platform's vertical-slice layout:
//   - user.go            : the User entity.
//   - store.go           : the [UserRepository] contract.
//   - store_postgres.go  : the PostgreSQL credential store.
//   - service.go         : register / login / logout rules.
//   - http.go            : the /api/auth HTTP boundary.
//
// Sessions are stateless. The session token is a signed cookie and nothing
// about it is stored server-side.
package auth

import "time"

// User represents a registered account.
//
// # Rules
//   - Email is unique and compared exactly as stored.
//   - PasswordHash may be empty for accounts created outside registration.
//   - The hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account can log in with a password.
func (user *User) HasPassword() bool {
	return user.PasswordHash != ""
}
