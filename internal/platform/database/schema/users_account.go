// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns created by data/migrations,
// so queries never spell identifiers by hand.
package schema

import "strings"

// UserAccountTable represents the 'users.account' table.
type UserAccountTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account.
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Password:  "passwordhash",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Projection returns the select list used to hydrate an account.
// The password hash is nullable and is read as an empty string.
func (t UserAccountTable) Projection() string {
	return strings.Join([]string{
		t.ID,
		t.Name,
		t.Email,
		"COALESCE(" + t.Password + ", '')",
		t.CreatedAt,
		t.UpdatedAt,
	}, ", ")
}
