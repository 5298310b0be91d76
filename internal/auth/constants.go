// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "github.com/taibuivan/facetrace/internal/platform/apperr"

// # Request Fields

const (
	fieldName     = "name"
	fieldEmail    = "email"
	fieldPassword = "password"
)

// Upper bounds on free-text input. Anything longer is rejected at the boundary.
const (
	maxNameLength  = 100
	maxEmailLength = 254
)

// maxPasswordBytes is the bcrypt input limit. Longer passwords cannot be hashed.
const maxPasswordBytes = 72

// # Responses

const (
	msgRegistered = "Registration successful!"
	msgLoggedIn   = "Login successful!"
	msgLoggedOut  = "logout Successfully"

	msgRegisterFailed = "Internal Server Error: Could not register user."
	msgLoginFailed    = "Internal Server Error: Could not log in."
	msgLogoutFailed   = "Internal Server Error: Could not log out."
)

// # Domain Errors

var (
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = apperr.Conflict("user already registered")

	// ErrWeakPassword is returned when the password is shorter than the policy allows.
	ErrWeakPassword = apperr.ValidationError("password must be at least 6 characters")

	// ErrPasswordTooLong is returned when the password exceeds [maxPasswordBytes].
	ErrPasswordTooLong = apperr.ValidationError("password must be at most 72 bytes")

	// ErrUserNotFound is returned when no account matches the login email.
	ErrUserNotFound = apperr.NotFound("user does not exist")

	// ErrNoPasswordSet is returned for accounts that have no password hash.
	ErrNoPasswordSet = apperr.Unauthenticated("This account was not set up with a password. Please check your registration method.")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = apperr.Unauthenticated("password is incorrect")
)
