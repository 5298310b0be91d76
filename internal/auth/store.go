// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for the credential store.
//
// Implementations report a missing row with [dberr.ErrNotFound] and an email
// collision with [dberr.ErrDuplicate] somewhere in the returned error chain.
type UserRepository interface {

	/*
		FindByEmail returns the account registered with the given email.

		Parameters:
		  - context: context.Context
		  - email: string, matched exactly

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or a retrieval failure
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new account. The store sets CreatedAt and
		UpdatedAt on the passed entity.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrDuplicate or a persistence failure
	*/
	Create(context context.Context, user *User) error
}
