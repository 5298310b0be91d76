// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/facetrace/internal/platform/database/schema"
	"github.com/taibuivan/facetrace/internal/platform/dberr"
)

var account = schema.UserAccount

// Queries are built once from the schema definition.
var (
	findByEmailQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		account.Projection(), account.Table, account.Email)

	createQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING %s, %s`,
		account.Table, account.ID, account.Name, account.Email, account.Password,
		account.CreatedAt, account.UpdatedAt)
)

// Querier is the slice of *pgxpool.Pool the repository uses.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresUserRepository implements [UserRepository] on the users.account table.
type PostgresUserRepository struct {
	pool Querier
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool Querier) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByEmail implements [UserRepository].
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(ctx, findByEmailQuery, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find user by email")
	}

	return user, nil
}

// Create implements [UserRepository].
//
// Timestamps come from the database clock and are written back to user.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	err := repository.pool.QueryRow(ctx, createQuery,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create user")
	}

	return nil
}

// scanUser hydrates a [User] from a row selected with the account projection.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
